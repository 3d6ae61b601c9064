package dto

import (
	"regexp"
	"strings"
)

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// Sanitize remove tags HTML e espaços das pontas de um campo de texto livre
// vindo do caller. Aplicado pelos Validate() antes de qualquer checagem.
func Sanitize(s string) string {
	return strings.TrimSpace(htmlTagPattern.ReplaceAllString(s, ""))
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail checagem superficial de email (formato, não entregabilidade).
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

var digitsPattern = regexp.MustCompile(`^\d+$`)

// OnlyDigits informa se a string é composta só de dígitos.
func OnlyDigits(s string) bool {
	return digitsPattern.MatchString(s)
}
