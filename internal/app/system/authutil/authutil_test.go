package authutil

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func init() {
	// keep the suite fast
	Configure(bcrypt.MinCost)
}

func TestHashPassword_Valid(t *testing.T) {
	password := "abc123"

	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	if hash == "" {
		t.Error("expected hash to be non-empty")
	}
	if hash == password {
		t.Error("hash should not equal plain password")
	}
	// bcrypt hashes start with $2a$ or $2b$
	if hash[0] != '$' {
		t.Error("expected bcrypt hash to start with $")
	}
}

func TestHashPassword_Empty(t *testing.T) {
	if _, err := HashPassword(""); err != ErrPasswordEmpty {
		t.Errorf("expected ErrPasswordEmpty, got %v", err)
	}
}

func TestHashPassword_DifferentHashesForSamePassword(t *testing.T) {
	hash1, err := HashPassword("abc123")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	hash2, err := HashPassword("abc123")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	// bcrypt uses random salt, so hashes should be different
	if hash1 == hash2 {
		t.Error("expected different hashes for same password (random salt)")
	}
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("abc123")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	tests := []struct {
		name     string
		hash     string
		password string
		want     bool
	}{
		{"correct", hash, "abc123", true},
		{"wrong", hash, "abc124", false},
		{"empty password", hash, "", false},
		{"empty hash", "", "abc123", false},
		{"garbage hash", "not-a-hash", "abc123", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CheckPassword(tt.hash, tt.password); got != tt.want {
				t.Errorf("CheckPassword = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfigure_IgnoresOutOfRange(t *testing.T) {
	before := Cost()
	Configure(bcrypt.MaxCost + 1)
	if Cost() != before {
		t.Errorf("cost changed to %d", Cost())
	}
	Configure(0)
	if Cost() != before {
		t.Errorf("cost changed to %d", Cost())
	}
}
