package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/mwestberg/todo-api/internal/adapters/http/dto"
	"github.com/mwestberg/todo-api/internal/domain"
	"github.com/mwestberg/todo-api/internal/ports"
)

// callerKey is the context key for the authenticated caller.
type callerKey struct{}

// WithCaller returns a new context carrying the authenticated caller.
func WithCaller(ctx context.Context, caller *domain.User) context.Context {
	return context.WithValue(ctx, callerKey{}, caller)
}

// CallerFromContext extracts the authenticated caller stored by RequireAuth.
// Returns nil if the request did not pass through RequireAuth.
func CallerFromContext(ctx context.Context) *domain.User {
	if caller, ok := ctx.Value(callerKey{}).(*domain.User); ok {
		return caller
	}
	return nil
}

// RequireAuth returns middleware that resolves the Authorization bearer
// token to an active account and stores it in the request context. Missing
// or malformed headers, bad tokens, and tokens for deactivated accounts all
// produce the same 401 response.
func RequireAuth(auth ports.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				dto.WriteErrorResponse(w, r, domain.ErrUnauthorized)
				return
			}

			caller, err := auth.ResolveCaller(r.Context(), token)
			if err != nil {
				dto.WriteErrorResponse(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), caller)))
		})
	}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header value. The scheme comparison is case-insensitive per RFC 9110.
func bearerToken(header string) (string, bool) {
	const prefix = "bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}
