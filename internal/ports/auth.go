package ports

// PasswordHasher is the outbound port for irreversible password hashing.
// Implementations salt per password and compare in constant time.
type PasswordHasher interface {
	// Hash returns the irreversible hash of password.
	Hash(password string) (string, error)

	// Verify reports whether password matches hash.
	Verify(password, hash string) bool
}

// TokenManager is the outbound port for issuing and verifying signed,
// time-limited access tokens. The signing key is process-wide configuration
// loaded once at startup.
type TokenManager interface {
	// Issue signs a token binding the given subject (username) with the
	// configured lifetime. Returns the token string and its lifetime in
	// seconds.
	Issue(subject string) (token string, expiresIn int64, err error)

	// Verify checks signature and expiry and returns the subject.
	// Any failure (malformed, expired, bad signature) is reported as an
	// error; callers map it to domain.ErrUnauthorized.
	Verify(token string) (subject string, err error)
}
