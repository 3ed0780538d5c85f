package security

import (
	"errors"
	"strings"
	"testing"
)

func TestValidatePasswordStrength(t *testing.T) {
	cases := []struct {
		name       string
		password   string
		violations int
	}{
		{name: "strong", password: "Secret1!", violations: 0},
		{name: "short", password: "Se1!", violations: 1},
		{name: "no upper", password: "secret1!", violations: 1},
		{name: "no lower", password: "SECRET1!", violations: 1},
		{name: "no digit", password: "Secret!!", violations: 1},
		{name: "no special", password: "Secret11", violations: 1},
		{name: "too long", password: "Aa1!" + strings.Repeat("x", MaxPasswordLength), violations: 1},
		{name: "empty", password: "", violations: 5},
	}
	for _, tc := range cases {
		err := ValidatePasswordStrength(tc.password)
		if tc.violations == 0 {
			if err != nil {
				t.Fatalf("%s: expected no error, got %v", tc.name, err)
			}
			continue
		}
		var weak *WeakPasswordError
		if !errors.As(err, &weak) {
			t.Fatalf("%s: expected WeakPasswordError, got %v", tc.name, err)
		}
		if len(weak.Violations) != tc.violations {
			t.Fatalf("%s: expected %d violations, got %v", tc.name, tc.violations, weak.Violations)
		}
	}
}

func TestValidatePasswordStrengthRejectsCommonPasswords(t *testing.T) {
	err := ValidatePasswordStrength("Password123")
	var weak *WeakPasswordError
	if !errors.As(err, &weak) {
		t.Fatalf("expected WeakPasswordError, got %v", err)
	}
	found := false
	for _, v := range weak.Violations {
		if strings.Contains(v, "too common") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected common password violation, got %v", weak.Violations)
	}
}

func TestValidateUsername(t *testing.T) {
	valid := []string{"admin", "site_admin", "ops-1"}
	for _, name := range valid {
		if err := ValidateUsername(name); err != nil {
			t.Fatalf("expected %q to be valid, got %v", name, err)
		}
	}
	invalid := []string{"", "ab", strings.Repeat("a", 51), "admin user", "admin@site"}
	for _, name := range invalid {
		if err := ValidateUsername(name); err == nil {
			t.Fatalf("expected %q to be rejected", name)
		}
	}
}
