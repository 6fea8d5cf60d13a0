package ports

import (
	"context"

	"github.com/mwestberg/todo-api/internal/domain"
)

// UserRepository is the outbound port for user persistence.
type UserRepository interface {
	// Create persists a new user and fills in store-assigned fields
	// (ID, timestamps). Returns domain.ErrConflict when the username or
	// email is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID returns a user by ID, or domain.ErrNotFound.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByUsername returns a user by exact username, or domain.ErrNotFound.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// GetByEmail returns a user by exact email, or domain.ErrNotFound.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// TaskRepository is the outbound port for task persistence. Every lookup is
// scoped by owner: a task that exists under a different owner is reported as
// domain.ErrNotFound, which is what keeps non-owned IDs unconfirmable.
type TaskRepository interface {
	// Create persists a new task and fills in store-assigned fields.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID returns the task with the given ID owned by ownerID,
	// or domain.ErrNotFound.
	GetByID(ctx context.Context, ownerID, id int64) (*domain.Task, error)

	// ListByOwner returns ownerID's tasks matching the filter, ordered by
	// ID ascending.
	ListByOwner(ctx context.Context, ownerID int64, filter domain.TaskFilter) ([]domain.Task, error)

	// UpdateInTx runs apply on the task (fetched under a transaction) and
	// persists the result atomically, so concurrent read-modify-write cycles
	// on the same task serialize. Returns domain.ErrNotFound when ownerID
	// does not own a task with the given ID; an error from apply aborts the
	// transaction and propagates unchanged.
	UpdateInTx(ctx context.Context, ownerID, id int64, apply func(*domain.Task) error) (*domain.Task, error)

	// Delete removes the task with the given ID owned by ownerID,
	// or returns domain.ErrNotFound.
	Delete(ctx context.Context, ownerID, id int64) error
}
