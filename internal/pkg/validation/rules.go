package validation

import (
	"regexp"
)

// Validation rule patterns
var (
	// Email validation pattern
	EmailPattern = `^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`

	// Username pattern - lowercase letters, digits, underscores, 3-30 chars
	UsernamePattern = `^[a-z0-9_]{3,30}$`

	// Password min length
	PasswordMinLength = 8
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Email    *regexp.Regexp
	Username *regexp.Regexp
}{
	Email:    regexp.MustCompile(EmailPattern),
	Username: regexp.MustCompile(UsernamePattern),
}

// IsValidEmail reports whether the value looks like an email address
func IsValidEmail(value string) bool {
	return CompiledPatterns.Email.MatchString(value)
}

// IsValidUsername reports whether the value is an acceptable username
func IsValidUsername(value string) bool {
	return CompiledPatterns.Username.MatchString(value)
}

// IsValidPassword reports whether the password meets the minimum length
func IsValidPassword(value string) bool {
	return len(value) >= PasswordMinLength
}
