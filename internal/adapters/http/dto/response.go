package dto

import (
	"time"

	"github.com/mwestberg/todo-api/internal/domain"
	"github.com/mwestberg/todo-api/internal/ports"
)

// UserResponse represents an account in HTTP responses. It deliberately has
// no field for the password hash; the hash never crosses this boundary.
type UserResponse struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
}

// ToUserResponse converts a domain User entity to an HTTP response DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

// TokenResponse represents a successful login in HTTP responses.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// ToTokenResponse converts a ports.TokenPair to an HTTP response DTO.
func ToTokenResponse(p *ports.TokenPair) TokenResponse {
	return TokenResponse{
		AccessToken: p.AccessToken,
		TokenType:   p.TokenType,
		ExpiresIn:   p.ExpiresIn,
	}
}

// TaskResponse represents a single task in HTTP responses.
type TaskResponse struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority"`
	DueDate     *string `json:"due_date"`
	CompletedAt *string `json:"completed_at"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// ToTaskResponse converts a domain Task entity to an HTTP response DTO.
// The owner ID is not echoed; a caller only ever sees their own tasks.
func ToTaskResponse(t *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status.String(),
		Priority:    t.Priority.String(),
		DueDate:     formatOptionalTime(t.DueDate),
		CompletedAt: formatOptionalTime(t.CompletedAt),
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   t.UpdatedAt.Format(time.RFC3339),
	}
}

// TaskListResponse represents a list of tasks in HTTP responses.
type TaskListResponse struct {
	Tasks []TaskResponse `json:"tasks"`
	Count int            `json:"count"`
}

// ToTaskListResponse converts a slice of domain Task entities to an HTTP
// list response DTO.
func ToTaskListResponse(tasks []domain.Task) TaskListResponse {
	items := make([]TaskResponse, len(tasks))
	for i := range tasks {
		items[i] = ToTaskResponse(&tasks[i])
	}
	return TaskListResponse{
		Tasks: items,
		Count: len(items),
	}
}

// SummaryResponse represents the per-status task aggregate in HTTP responses.
type SummaryResponse struct {
	Total          int     `json:"total"`
	Todo           int     `json:"todo"`
	InProgress     int     `json:"in_progress"`
	Completed      int     `json:"completed"`
	CompletionRate float64 `json:"completion_rate"`
}

// ToSummaryResponse converts a domain TaskSummary to an HTTP response DTO.
func ToSummaryResponse(s *domain.TaskSummary) SummaryResponse {
	return SummaryResponse{
		Total:          s.Total,
		Todo:           s.Todo,
		InProgress:     s.InProgress,
		Completed:      s.Completed,
		CompletionRate: s.CompletionRate,
	}
}

// HealthResponse represents the health endpoint body. Checks is populated
// only on readiness, mapping checker name to "ok" or the failure message.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// VersionResponse represents the version endpoint body.
type VersionResponse struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
}

func formatOptionalTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
