package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatBRL(t *testing.T) {
	assert.Equal(t, "R$ 100,00", FormatBRL(100))
	assert.Equal(t, "R$ 1.234,50", FormatBRL(1234.5))
	assert.Equal(t, "R$ 0,00", FormatBRL(0))
}
