package dto

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwestberg/todo-api/internal/domain"
)

func TestNewErrorResponseStatusMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "validation", err: &domain.ValidationError{Fields: map[string]string{"title": "is required"}}, wantStatus: http.StatusUnprocessableEntity},
		{name: "unauthorized", err: domain.ErrUnauthorized, wantStatus: http.StatusUnauthorized},
		{name: "not found", err: domain.ErrNotFound, wantStatus: http.StatusNotFound},
		{name: "conflict", err: domain.ErrConflict, wantStatus: http.StatusConflict},
		{name: "unavailable", err: domain.ErrUnavailable, wantStatus: http.StatusBadGateway},
		{name: "wrapped not found", err: errors.Join(errors.New("fetching task"), domain.ErrNotFound), wantStatus: http.StatusNotFound},
		{name: "unknown", err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks/5", nil)

			resp := NewErrorResponse(req, tt.err)

			assert.Equal(t, tt.wantStatus, resp.Status)
			assert.Equal(t, http.StatusText(tt.wantStatus), resp.Title)
			assert.Equal(t, "/api/v1/tasks/5", resp.Instance)
		})
	}
}

func TestNewErrorResponseHidesSensitiveDetail(t *testing.T) {
	t.Parallel()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)

	resp := NewErrorResponse(req, domain.ErrUnauthorized)
	assert.Equal(t, "Unauthorized", resp.Detail)

	resp = NewErrorResponse(req, errors.New("dial tcp 10.0.0.3:5432: connection refused"))
	assert.Equal(t, "Internal Server Error", resp.Detail,
		"infrastructure errors must not leak into the body")
}

func TestNewErrorResponseValidationDetails(t *testing.T) {
	t.Parallel()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tasks", nil)

	resp := NewErrorResponse(req, &domain.ValidationError{Fields: map[string]string{
		"title":  "is required",
		"status": `invalid: "archived"`,
	}})

	require.Len(t, resp.Errors, 2)
	assert.Equal(t, "body.status", resp.Errors[0].Location, "details are sorted by location")
	assert.Equal(t, "body.title", resp.Errors[1].Location)
	assert.Equal(t, "is required", resp.Errors[1].Message)
}

func TestWriteErrorResponse(t *testing.T) {
	t.Parallel()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks/5", nil)
	rec := httptest.NewRecorder()

	WriteErrorResponse(rec, req, domain.ErrNotFound)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
	assert.Empty(t, rec.Header().Get("WWW-Authenticate"))
}

func TestWriteErrorResponseUnauthorizedChallenge(t *testing.T) {
	t.Parallel()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	rec := httptest.NewRecorder()

	WriteErrorResponse(rec, req, domain.ErrUnauthorized)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
}
