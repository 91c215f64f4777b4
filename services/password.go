package services

import (
	"regexp"
)

var (
	passwordUpper   = regexp.MustCompile(`[A-Z]`)
	passwordLower   = regexp.MustCompile(`[a-z]`)
	passwordDigit   = regexp.MustCompile(`[0-9]`)
	passwordSpecial = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)
)

// ValidatePassword checks the signup password policy and returns every
// unmet rule at once so the UI can show the full list, not just the first
// failure. An empty slice means the password is acceptable.
func ValidatePassword(password string) []string {
	var violations []string

	if len(password) < 8 {
		violations = append(violations, "A senha deve ter pelo menos 8 caracteres")
	}
	if !passwordUpper.MatchString(password) {
		violations = append(violations, "A senha deve conter pelo menos uma letra maiúscula")
	}
	if !passwordLower.MatchString(password) {
		violations = append(violations, "A senha deve conter pelo menos uma letra minúscula")
	}
	if !passwordDigit.MatchString(password) {
		violations = append(violations, "A senha deve conter pelo menos um número")
	}
	if !passwordSpecial.MatchString(password) {
		violations = append(violations, "A senha deve conter pelo menos um caractere especial")
	}

	return violations
}
