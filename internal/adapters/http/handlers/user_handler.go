package handlers

import (
	"net/http"

	"github.com/mwestberg/todo-api/internal/adapters/http/dto"
)

// UserHandler handles endpoints about the authenticated account itself.
type UserHandler struct{}

// NewUserHandler creates a new UserHandler.
func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

// Me handles GET /api/v1/users/me. The auth middleware has already resolved
// the account, so this is a pure projection.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	u := caller(w, r)
	if u == nil {
		return
	}
	writeJSON(w, http.StatusOK, dto.ToUserResponse(u))
}
