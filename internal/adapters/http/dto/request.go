package dto

import (
	"strings"
	"time"

	"github.com/mwestberg/todo-api/internal/domain"
	"github.com/mwestberg/todo-api/internal/ports"
)

const msgRequired = "is required"

// RegisterRequest represents the JSON body for creating a new account.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate applies the registration rules. The credential policy lives in
// the domain so the transport cannot drift from it.
func (r *RegisterRequest) Validate() error {
	return domain.ValidateRegistration(r.Username, r.Email, r.Password)
}

// LoginRequest represents the JSON body for obtaining an access token.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate checks that both credentials are present. Whether they are
// correct is decided later, with a deliberately uniform failure.
func (r *LoginRequest) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(r.Username) == "" {
		fields["username"] = msgRequired
	}
	if r.Password == "" {
		fields["password"] = msgRequired
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// CreateTaskRequest represents the JSON body for creating a new task.
// Status is not accepted here; every task starts at todo.
type CreateTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Priority    string     `json:"priority,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// Validate checks the creation input against the task field rules.
func (r *CreateTaskRequest) Validate() error {
	task := domain.Task{
		Title:       r.Title,
		Description: r.Description,
		Status:      domain.StatusTodo,
		Priority:    domain.DefaultPriority,
	}
	if r.Priority != "" {
		task.Priority = domain.TaskPriority(r.Priority)
	}
	return task.Validate()
}

// ToInput converts the request to the service-level creation input.
func (r *CreateTaskRequest) ToInput() ports.CreateTaskInput {
	return ports.CreateTaskInput{
		Title:       r.Title,
		Description: r.Description,
		Priority:    r.Priority,
		DueDate:     r.DueDate,
	}
}

// UpdateTaskRequest represents the JSON body for partially updating a task.
// All fields are optional; nil means "do not change this field".
type UpdateTaskRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Status      *string    `json:"status,omitempty"`
	Priority    *string    `json:"priority,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// Validate checks that any provided fields carry acceptable values.
func (r *UpdateTaskRequest) Validate() error {
	patch := r.ToPatch()
	return patch.Validate()
}

// ToPatch converts the request to a domain patch.
func (r *UpdateTaskRequest) ToPatch() domain.TaskPatch {
	return domain.TaskPatch{
		Title:       r.Title,
		Description: r.Description,
		Status:      r.Status,
		Priority:    r.Priority,
		DueDate:     r.DueDate,
	}
}
