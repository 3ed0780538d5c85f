package security

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasherRoundTrip(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	hash, err := h.Hash("Secret1!")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "Secret1!" {
		t.Fatalf("expected hash to differ from plaintext")
	}
	if !h.Verify("Secret1!", hash) {
		t.Fatalf("expected password to verify")
	}
	if h.Verify("Secret2!", hash) {
		t.Fatalf("expected other password to be rejected")
	}
}

func TestBcryptHasherSaltsEachHash(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	first, errFirst := h.Hash("Secret1!")
	second, errSecond := h.Hash("Secret1!")
	if errFirst != nil || errSecond != nil {
		t.Fatalf("hash: %v %v", errFirst, errSecond)
	}
	if first == second {
		t.Fatalf("expected distinct salts")
	}
}

func TestBcryptHasherDefaultCost(t *testing.T) {
	h := NewBcryptHasher(0)
	if h.Cost() != 12 {
		t.Fatalf("expected default cost 12, got %d", h.Cost())
	}
	hash, err := h.Hash("Secret1!")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		t.Fatalf("cost: %v", err)
	}
	if cost != 12 {
		t.Fatalf("expected stored cost 12, got %d", cost)
	}
}

func TestBcryptHasherMalformedHash(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	for _, hash := range []string{"", "not-a-hash", "$2a$12$short"} {
		if h.Verify("Secret1!", hash) {
			t.Fatalf("expected malformed hash %q to be rejected", hash)
		}
	}
}

func TestBcryptHasherAcceptsPolicyMaximumLength(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	password := "Aa1!" + strings.Repeat("x", MaxPasswordLength-4)
	hash, err := h.Hash(password)
	if err != nil {
		t.Fatalf("expected long password to hash, got %v", err)
	}
	if !h.Verify(password, hash) {
		t.Fatalf("expected long password to verify")
	}
}
