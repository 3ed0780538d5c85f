package security

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Password length bounds.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 128
)

// Username length bounds.
const (
	MinUsernameLength = 3
	MaxUsernameLength = 50
)

var (
	upperPattern    = regexp.MustCompile(`[A-Z]`)
	lowerPattern    = regexp.MustCompile(`[a-z]`)
	digitPattern    = regexp.MustCompile(`[0-9]`)
	specialPattern  = regexp.MustCompile(`[!@#$%^&*()_+\-=\[\]{};':"\\|,.<>/?]`)
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
)

var commonPasswords = []string{"password", "12345678", "admin123", "password123", "qwerty123"}

// WeakPasswordError lists every strength rule a candidate password broke.
type WeakPasswordError struct {
	Violations []string
}

func (e *WeakPasswordError) Error() string {
	return "password does not meet requirements: " + strings.Join(e.Violations, "; ")
}

// ValidatePasswordStrength returns a *WeakPasswordError when password breaks any rule.
func ValidatePasswordStrength(password string) error {
	var violations []string
	length := utf8.RuneCountInString(password)
	if length < MinPasswordLength {
		violations = append(violations, "Password must be at least 8 characters long")
	}
	if length > MaxPasswordLength {
		violations = append(violations, "Password must be less than 128 characters")
	}
	if !upperPattern.MatchString(password) {
		violations = append(violations, "Password must contain at least one uppercase letter")
	}
	if !lowerPattern.MatchString(password) {
		violations = append(violations, "Password must contain at least one lowercase letter")
	}
	if !digitPattern.MatchString(password) {
		violations = append(violations, "Password must contain at least one number")
	}
	if !specialPattern.MatchString(password) {
		violations = append(violations, "Password must contain at least one special character")
	}
	lowered := strings.ToLower(password)
	for _, common := range commonPasswords {
		if lowered == common {
			violations = append(violations, "Password is too common. Please choose a more unique password")
			break
		}
	}
	if len(violations) > 0 {
		return &WeakPasswordError{Violations: violations}
	}
	return nil
}

// ValidateUsername checks the admin username format.
func ValidateUsername(username string) error {
	length := utf8.RuneCountInString(username)
	switch {
	case length < MinUsernameLength:
		return errors.New("Username must be at least 3 characters long")
	case length > MaxUsernameLength:
		return errors.New("Username must be less than 50 characters")
	case !usernamePattern.MatchString(username):
		return errors.New("Username can only contain letters, numbers, underscores, and hyphens")
	}
	return nil
}
