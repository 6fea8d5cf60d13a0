// Package auth provides the credential adapters: bcrypt password hashing and
// HS256 JWT issuance/verification. Both implement ports interfaces so the
// application layer never touches crypto primitives directly.
package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/mwestberg/todo-api/internal/ports"
)

// Compile-time check that PasswordHasher implements ports.PasswordHasher.
var _ ports.PasswordHasher = (*PasswordHasher)(nil)

// PasswordHasher hashes and verifies passwords with bcrypt. bcrypt embeds a
// per-password salt in the hash and compares in constant time, which covers
// the credential verifier contract directly.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher creates a PasswordHasher with the given bcrypt cost.
// Costs below bcrypt.MinCost are raised to bcrypt.DefaultCost.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash generates a bcrypt hash of the given password.
func (h *PasswordHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(bytes), nil
}

// Verify reports whether the provided password matches the hash.
func (h *PasswordHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
