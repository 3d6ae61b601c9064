package protocol

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Formato(t *testing.T) {
	now := time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC)

	for i := 0; i < 100; i++ {
		p, err := Generate(now)
		require.NoError(t, err)
		assert.True(t, Valid(p), "protocolo %q fora do formato", p)
		assert.True(t, strings.HasPrefix(p, "20250315-"))

		suffix, err := strconv.Atoi(p[9:])
		require.NoError(t, err)
		assert.GreaterOrEqual(t, suffix, 100000)
		assert.LessOrEqual(t, suffix, 999999)
	}
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("20250315-123456"))

	assert.False(t, Valid(""))
	assert.False(t, Valid("20250315-12345"))   // sufixo curto
	assert.False(t, Valid("20250315-1234567")) // sufixo longo
	assert.False(t, Valid("2025031-123456"))   // data curta
	assert.False(t, Valid("20250315123456"))   // sem hífen
	assert.False(t, Valid("20250315-12345a"))
	assert.False(t, Valid(" 20250315-123456"))
}
