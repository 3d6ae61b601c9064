package enrollment

import (
	"context"
	"io"

	"github.com/credsim/bandeiras-api/internal/domain/repository"
)

// Categorias de documento do cadastro; viram prefixos no storage.
const (
	CategoryDocument   = "documents"
	CategoryInvoice    = "invoices"
	CategoryEnergyBill = "energy-bills"
)

// TxRunner executa fn numa transação com repositórios atados a ela. Usado
// para criar o agregado (Client + ClientFlags + SalesReport) e para a
// mudança de status com recomputação do status geral.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		clients repository.ClientRepository,
		clientFlags repository.ClientFlagRepository,
		sales repository.SalesReportRepository,
	) error) error
}

// DocumentStore armazena os documentos anexados ao cadastro.
type DocumentStore interface {
	// Upload grava o arquivo e devolve a URL pública.
	Upload(ctx context.Context, category, filename, contentType string, body io.Reader, size int64) (string, error)
	// Delete remove o objeto da URL; usado em compensação e troca de documento.
	Delete(ctx context.Context, fileURL string) error
}

// StatusCache cache curto da projeção pública de status.
type StatusCache interface {
	Get(ctx context.Context, lookup string) ([]byte, bool, error)
	Set(ctx context.Context, lookup string, payload []byte) error
	Invalidate(ctx context.Context, lookups ...string) error
}

// FileInput um arquivo recebido no multipart.
type FileInput struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// Files os três documentos do cadastro. No Create todos são obrigatórios;
// na troca de documentos qualquer subconjunto não-vazio serve.
type Files struct {
	Document   *FileInput
	Invoice    *FileInput
	EnergyBill *FileInput
}
