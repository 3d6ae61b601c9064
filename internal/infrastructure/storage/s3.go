// Package storage guarda os documentos anexados ao cadastro em um bucket S3
// (ou compatível, via endpoint customizado).
package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/credsim/bandeiras-api/internal/application/enrollment"
	"github.com/credsim/bandeiras-api/pkg/config"
)

var _ enrollment.DocumentStore = (*S3DocumentStore)(nil)

const keyPrefix = "card-flags"

// S3DocumentStore armazena documentos de clientes no S3.
type S3DocumentStore struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

// NewS3DocumentStore configura o cliente S3. Com cfg.Endpoint definido usa
// path-style (MinIO e afins); vazio usa o endpoint padrão da AWS.
func NewS3DocumentStore(ctx context.Context, cfg config.S3Config) (*S3DocumentStore, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("carregando config AWS: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	publicURL := fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	if cfg.Endpoint != "" {
		publicURL = strings.TrimSuffix(cfg.Endpoint, "/") + "/" + cfg.Bucket
	}

	return &S3DocumentStore{client: client, bucket: cfg.Bucket, publicURL: publicURL}, nil
}

// Upload grava o arquivo sob card-flags/<categoria>/<uuid>-<nome> e devolve a URL.
func (s *S3DocumentStore) Upload(ctx context.Context, category, filename, contentType string, body io.Reader, size int64) (string, error) {
	key := fmt.Sprintf("%s/%s/%s-%s", keyPrefix, category, uuid.New().String(), sanitizeFilename(filename))

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return s.publicURL + "/" + key, nil
}

// Delete remove o objeto da URL devolvida por Upload. URLs de fora do bucket
// são ignoradas sem erro (chamadas são sempre best-effort).
func (s *S3DocumentStore) Delete(ctx context.Context, fileURL string) error {
	key, ok := s.keyFromURL(fileURL)
	if !ok {
		return nil
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (s *S3DocumentStore) keyFromURL(fileURL string) (string, bool) {
	if !strings.HasPrefix(fileURL, s.publicURL+"/") {
		return "", false
	}
	key := strings.TrimPrefix(fileURL, s.publicURL+"/")
	if key == "" {
		return "", false
	}
	return key, true
}

// sanitizeFilename limita o nome ao basename, troca espaços e remove
// caracteres problemáticos para chaves S3 e URLs.
func sanitizeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.ReplaceAll(name, " ", "_")

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "arquivo"
	}
	return url.PathEscape(b.String())
}
