package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePasswordStrong(t *testing.T) {
	assert.Empty(t, ValidatePassword("Correto#Cavalo1"))
}

func TestValidatePasswordCollectsAllViolations(t *testing.T) {
	violations := ValidatePassword("abc")

	require.Len(t, violations, 4)
	assert.Contains(t, violations, "A senha deve ter pelo menos 8 caracteres")
	assert.Contains(t, violations, "A senha deve conter pelo menos uma letra maiúscula")
	assert.Contains(t, violations, "A senha deve conter pelo menos um número")
	assert.Contains(t, violations, "A senha deve conter pelo menos um caractere especial")
}

func TestValidatePasswordSingleViolation(t *testing.T) {
	violations := ValidatePassword("Senha1Forte")

	require.Len(t, violations, 1)
	assert.Contains(t, violations[0], "caractere especial")
}

func TestValidatePasswordEmpty(t *testing.T) {
	violations := ValidatePassword("")
	assert.Len(t, violations, 5)
}
