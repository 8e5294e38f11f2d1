// internal/app/system/authutil/authutil.go
package authutil

import (
	"errors"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor used unless Configure says otherwise.
const DefaultCost = 12

// ErrPasswordEmpty is returned when hashing an empty secret.
var ErrPasswordEmpty = errors.New("password is required")

var (
	mu   sync.RWMutex
	cost = DefaultCost
)

// Configure sets the bcrypt cost. Values outside bcrypt's range are ignored.
func Configure(c int) {
	if c < bcrypt.MinCost || c > bcrypt.MaxCost {
		return
	}
	mu.Lock()
	cost = c
	mu.Unlock()
}

// Cost returns the current bcrypt cost.
func Cost() int {
	mu.RLock()
	defer mu.RUnlock()
	return cost
}

// HashPassword hashes a plain-text secret with bcrypt.
// Secrets are never stored or returned in clear text.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrPasswordEmpty
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), Cost())
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored hash.
func CheckPassword(hash, password string) bool {
	if hash == "" || password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
