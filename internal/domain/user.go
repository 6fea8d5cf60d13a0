package domain

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
)

// Validation messages shared across entities.
const (
	msgRequired       = "is required"
	msgMustNotBeEmpty = "must not be empty"
)

// Credential constraints for registration.
const (
	MinUsernameLen = 3
	MaxUsernameLen = 255
	MinPasswordLen = 8
)

// User represents an account that owns tasks. The password itself is never
// stored; only the bcrypt hash is persisted, and no representation leaving
// the service carries the hash.
type User struct {
	ID             int64
	Username       string
	Email          string
	HashedPassword string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ValidateRegistration checks the raw registration input before any hashing
// or persistence happens. Returns a *ValidationError with per-field details,
// or nil if all rules pass.
func ValidateRegistration(username, email, password string) error {
	fields := make(map[string]string)

	switch {
	case strings.TrimSpace(username) == "":
		fields["username"] = msgRequired
	case len(username) < MinUsernameLen:
		fields["username"] = fmt.Sprintf("must be at least %d characters", MinUsernameLen)
	case len(username) > MaxUsernameLen:
		fields["username"] = fmt.Sprintf("must be at most %d characters", MaxUsernameLen)
	}

	if strings.TrimSpace(email) == "" {
		fields["email"] = msgRequired
	} else if !validEmail(email) {
		fields["email"] = "must be a valid email address"
	}

	if password == "" {
		fields["password"] = msgRequired
	} else if len(password) < MinPasswordLen {
		fields["password"] = fmt.Sprintf("must be at least %d characters", MinPasswordLen)
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// validEmail reports whether addr parses as a bare RFC 5322 address.
// Display names ("Alice <a@x.com>") are rejected.
func validEmail(addr string) bool {
	parsed, err := mail.ParseAddress(addr)
	if err != nil {
		return false
	}
	return parsed.Address == addr
}
