package helpers

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDCodeGenerator_ProducesParsableCodes(t *testing.T) {
	gen := UUIDCodeGenerator{}

	code := gen.NewCode()
	require.NotEmpty(t, code)
	_, err := uuid.Parse(code)
	assert.NoError(t, err)
}

func TestUUIDCodeGenerator_CodesDiffer(t *testing.T) {
	gen := UUIDCodeGenerator{}

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		code := gen.NewCode()
		assert.False(t, seen[code], "duplicate code %s", code)
		seen[code] = true
	}
}
