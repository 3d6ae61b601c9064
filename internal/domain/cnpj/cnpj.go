// Package cnpj valida números de CNPJ (Cadastro Nacional da Pessoa Jurídica).
package cnpj

import "strings"

// Normalize remove pontuação (pontos, barra e hífen) e espaços, devolvendo
// apenas os dígitos informados.
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(14)
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Valid verifica um CNPJ já normalizado: 14 dígitos, não todos iguais e com
// os dois dígitos verificadores corretos (módulo 11 com pesos 2..9 cíclicos).
func Valid(cnpj string) bool {
	if len(cnpj) != 14 {
		return false
	}
	for _, r := range cnpj {
		if r < '0' || r > '9' {
			return false
		}
	}

	// CNPJs com todos os dígitos iguais passam no checksum mas são inválidos.
	allSame := true
	for i := 1; i < 14; i++ {
		if cnpj[i] != cnpj[0] {
			allSame = false
			break
		}
	}
	if allSame {
		return false
	}

	if checkDigit(cnpj[:12]) != int(cnpj[12]-'0') {
		return false
	}
	return checkDigit(cnpj[:13]) == int(cnpj[13]-'0')
}

// checkDigit computa o dígito verificador da sequência: pesos começam em 2 no
// dígito menos significativo e crescem até 9, reiniciando em 2.
func checkDigit(digits string) int {
	sum := 0
	weight := 2
	for i := len(digits) - 1; i >= 0; i-- {
		sum += int(digits[i]-'0') * weight
		weight++
		if weight > 9 {
			weight = 2
		}
	}
	rest := sum % 11
	if rest < 2 {
		return 0
	}
	return 11 - rest
}
