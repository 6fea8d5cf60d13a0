// Package app provides application services that orchestrate use cases by
// coordinating between domain logic and infrastructure through port
// interfaces.
package app

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mwestberg/todo-api/internal/domain"
	"github.com/mwestberg/todo-api/internal/ports"
)

// Compile-time check that AuthService implements ports.AuthService.
var _ ports.AuthService = (*AuthService)(nil)

// bearerTokenType is the token_type advertised on every successful login.
const bearerTokenType = "bearer"

// AuthService implements ports.AuthService. It owns the credential rules:
// registration validation, password hashing, and the deliberately uniform
// failure mode for login and token resolution.
type AuthService struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenManager
	logger *slog.Logger
}

// NewAuthService creates an AuthService.
func NewAuthService(users ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenManager, logger *slog.Logger) *AuthService {
	return &AuthService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		logger: logger,
	}
}

// Register validates the input, hashes the password, and persists the new
// active account. A username or email already in use surfaces as
// domain.ErrConflict whether it is caught by the pre-check or by the unique
// constraint underneath.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	s.logger.InfoContext(ctx, "registering user", slog.String("username", username))

	if err := domain.ValidateRegistration(username, email, password); err != nil {
		return nil, err
	}

	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return nil, domain.ErrConflict
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, domain.ErrConflict
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to hash password",
			slog.String("operation", "Register"),
			slog.Any("error", err),
		)
		return nil, err
	}

	user := &domain.User{
		Username:       username,
		Email:          email,
		HashedPassword: hash,
		IsActive:       true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if !errors.Is(err, domain.ErrConflict) {
			s.logger.ErrorContext(ctx, "failed to create user",
				slog.String("operation", "Register"),
				slog.Any("error", err),
			)
		}
		return nil, err
	}

	s.logger.InfoContext(ctx, "user registered",
		slog.String("username", username),
		slog.Int64("user_id", user.ID),
	)
	return user, nil
}

// Login verifies the credentials and issues an access token. Unknown
// username, inactive account, and wrong password all take the same path out:
// domain.ErrUnauthorized with no distinguishing detail.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.TokenPair, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		s.logger.ErrorContext(ctx, "failed to look up user",
			slog.String("operation", "Login"),
			slog.Any("error", err),
		)
		return nil, err
	}

	if !user.IsActive || !s.hasher.Verify(password, user.HashedPassword) {
		return nil, domain.ErrUnauthorized
	}

	token, expiresIn, err := s.tokens.Issue(user.Username)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to issue token",
			slog.String("operation", "Login"),
			slog.Any("error", err),
		)
		return nil, err
	}

	s.logger.InfoContext(ctx, "user logged in", slog.Int64("user_id", user.ID))
	return &ports.TokenPair{
		AccessToken: token,
		TokenType:   bearerTokenType,
		ExpiresIn:   expiresIn,
	}, nil
}

// ResolveCaller verifies the token and loads the account it names. A valid
// signature is not enough: the account must still exist and be active, so a
// deactivated user's outstanding tokens stop working immediately.
func (s *AuthService) ResolveCaller(ctx context.Context, token string) (*domain.User, error) {
	subject, err := s.tokens.Verify(token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.users.GetByUsername(ctx, subject)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		s.logger.ErrorContext(ctx, "failed to resolve caller",
			slog.String("operation", "ResolveCaller"),
			slog.Any("error", err),
		)
		return nil, err
	}
	if !user.IsActive {
		return nil, domain.ErrUnauthorized
	}

	return user, nil
}
