package ports

import (
	"context"
	"time"

	"github.com/mwestberg/todo-api/internal/domain"
)

// TokenPair is the result of a successful login.
type TokenPair struct {
	AccessToken string
	TokenType   string
	ExpiresIn   int64
}

// AuthService defines the service port for identity operations.
// Implemented by the application layer; called by inbound adapters.
type AuthService interface {
	// Register creates a new user account. Returns domain.ErrConflict if the
	// username or email is already taken, and domain.ErrValidation when the
	// input fails format or length checks. The returned user never carries
	// the password hash into any outbound representation.
	Register(ctx context.Context, username, email, password string) (*domain.User, error)

	// Login verifies credentials and issues a signed, time-limited access
	// token. Unknown username, inactive account, and wrong password all
	// return the same domain.ErrUnauthorized.
	Login(ctx context.Context, username, password string) (*TokenPair, error)

	// ResolveCaller verifies the presented token and returns the identity
	// used for every subsequent ownership check. Any verification failure,
	// including a token for a user that no longer exists or is inactive,
	// returns domain.ErrUnauthorized.
	ResolveCaller(ctx context.Context, token string) (*domain.User, error)
}

// TaskService defines the service port for owner-scoped task operations.
// Every method takes the resolved caller; addressing a task not owned by the
// caller behaves identically to the task not existing (domain.ErrNotFound).
type TaskService interface {
	// Create creates a task owned by the caller. Status is forced to todo
	// and the owner is forced to the caller regardless of input.
	Create(ctx context.Context, caller *domain.User, in CreateTaskInput) (*domain.Task, error)

	// Get returns one of the caller's tasks by ID.
	Get(ctx context.Context, caller *domain.User, taskID int64) (*domain.Task, error)

	// List returns the caller's tasks, optionally filtered by status,
	// ordered by ID ascending.
	List(ctx context.Context, caller *domain.User, filter domain.TaskFilter) ([]domain.Task, error)

	// Update applies a partial update to one of the caller's tasks inside a
	// storage transaction so the CompletedAt invariant cannot be observed
	// violated.
	Update(ctx context.Context, caller *domain.User, taskID int64, patch domain.TaskPatch) (*domain.Task, error)

	// Delete removes one of the caller's tasks.
	Delete(ctx context.Context, caller *domain.User, taskID int64) error

	// Summary aggregates the caller's tasks by status.
	Summary(ctx context.Context, caller *domain.User) (*domain.TaskSummary, error)
}

// CreateTaskInput carries the caller-supplied fields for task creation.
// Priority defaults to domain.DefaultPriority when empty.
type CreateTaskInput struct {
	Title       string
	Description string
	Priority    string
	DueDate     *time.Time
}
