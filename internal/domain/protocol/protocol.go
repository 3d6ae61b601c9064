// Package protocol gera e valida protocolos públicos de acompanhamento.
//
// Formato: YYYYMMDD-RRRRRR, onde RRRRRR é um sufixo aleatório de 6 dígitos.
// A unicidade é garantida pela constraint do banco; colisões são tratadas
// pelo caller com nova geração.
package protocol

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"time"
)

var pattern = regexp.MustCompile(`^\d{8}-\d{6}$`)

const (
	suffixMin = 100000
	suffixMax = 999999
)

// Generate produz um protocolo para a data informada com sufixo aleatório
// em [100000, 999999].
func Generate(now time.Time) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(suffixMax-suffixMin+1))
	if err != nil {
		return "", fmt.Errorf("gerando sufixo do protocolo: %w", err)
	}
	return fmt.Sprintf("%s-%06d", now.Format("20060102"), suffixMin+n.Int64()), nil
}

// Valid informa se a string tem o formato de protocolo.
func Valid(s string) bool {
	return pattern.MatchString(s)
}
