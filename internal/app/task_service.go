package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/mwestberg/todo-api/internal/domain"
	"github.com/mwestberg/todo-api/internal/ports"
)

// Compile-time check that TaskService implements ports.TaskService.
var _ ports.TaskService = (*TaskService)(nil)

// TaskService implements ports.TaskService. Ownership is enforced
// structurally: every repository call is scoped by the caller's ID, so there
// is no code path that could reveal another user's task.
type TaskService struct {
	tasks  ports.TaskRepository
	logger *slog.Logger
	now    func() time.Time
}

// NewTaskService creates a TaskService.
func NewTaskService(tasks ports.TaskRepository, logger *slog.Logger) *TaskService {
	return &TaskService{
		tasks:  tasks,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Create creates a task owned by the caller. The status always starts at
// todo and the priority defaults when the input leaves it empty; neither the
// owner nor the completion timestamp is caller-controlled.
func (s *TaskService) Create(ctx context.Context, caller *domain.User, in ports.CreateTaskInput) (*domain.Task, error) {
	s.logger.InfoContext(ctx, "creating task", slog.Int64("user_id", caller.ID))

	priority := domain.DefaultPriority
	if in.Priority != "" {
		priority = domain.TaskPriority(in.Priority)
	}

	task := &domain.Task{
		UserID:      caller.ID,
		Title:       in.Title,
		Description: in.Description,
		Status:      domain.StatusTodo,
		Priority:    priority,
		DueDate:     in.DueDate,
	}
	if err := task.Validate(); err != nil {
		return nil, err
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		s.logger.ErrorContext(ctx, "failed to create task",
			slog.String("operation", "Create"),
			slog.Int64("user_id", caller.ID),
			slog.Any("error", err),
		)
		return nil, err
	}

	s.logger.InfoContext(ctx, "task created",
		slog.Int64("user_id", caller.ID),
		slog.Int64("task_id", task.ID),
	)
	return task, nil
}

// Get returns one of the caller's tasks by ID.
func (s *TaskService) Get(ctx context.Context, caller *domain.User, taskID int64) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, caller.ID, taskID)
	if err != nil {
		s.logStoreError(ctx, "Get", caller.ID, taskID, err)
		return nil, err
	}
	return task, nil
}

// List returns the caller's tasks matching the filter.
func (s *TaskService) List(ctx context.Context, caller *domain.User, filter domain.TaskFilter) ([]domain.Task, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, &domain.ValidationError{
			Fields: map[string]string{"status": "invalid: " + filter.Status.String()},
		}
	}

	tasks, err := s.tasks.ListByOwner(ctx, caller.ID, filter)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list tasks",
			slog.String("operation", "List"),
			slog.Int64("user_id", caller.ID),
			slog.Any("error", err),
		)
		return nil, err
	}
	return tasks, nil
}

// Update applies a partial update to one of the caller's tasks. The patch is
// validated first, then applied inside the repository transaction so a
// status transition and its completion timestamp land together.
func (s *TaskService) Update(ctx context.Context, caller *domain.User, taskID int64, patch domain.TaskPatch) (*domain.Task, error) {
	s.logger.InfoContext(ctx, "updating task",
		slog.Int64("user_id", caller.ID),
		slog.Int64("task_id", taskID),
	)

	if err := patch.Validate(); err != nil {
		return nil, err
	}

	task, err := s.tasks.UpdateInTx(ctx, caller.ID, taskID, func(t *domain.Task) error {
		patch.Apply(t, s.now())
		return t.Validate()
	})
	if err != nil {
		s.logStoreError(ctx, "Update", caller.ID, taskID, err)
		return nil, err
	}
	return task, nil
}

// Delete removes one of the caller's tasks.
func (s *TaskService) Delete(ctx context.Context, caller *domain.User, taskID int64) error {
	s.logger.InfoContext(ctx, "deleting task",
		slog.Int64("user_id", caller.ID),
		slog.Int64("task_id", taskID),
	)

	if err := s.tasks.Delete(ctx, caller.ID, taskID); err != nil {
		s.logStoreError(ctx, "Delete", caller.ID, taskID, err)
		return err
	}
	return nil
}

// Summary aggregates the caller's tasks by status.
func (s *TaskService) Summary(ctx context.Context, caller *domain.User) (*domain.TaskSummary, error) {
	tasks, err := s.tasks.ListByOwner(ctx, caller.ID, domain.TaskFilter{})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to summarize tasks",
			slog.String("operation", "Summary"),
			slog.Int64("user_id", caller.ID),
			slog.Any("error", err),
		)
		return nil, err
	}

	summary := domain.NewTaskSummary(tasks)
	return &summary, nil
}

// logStoreError records unexpected store failures. Not-found and validation
// outcomes are normal control flow and stay out of the error log.
func (s *TaskService) logStoreError(ctx context.Context, op string, userID, taskID int64, err error) {
	if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrValidation) {
		return
	}
	s.logger.ErrorContext(ctx, "task store operation failed",
		slog.String("operation", op),
		slog.Int64("user_id", userID),
		slog.Int64("task_id", taskID),
		slog.Any("error", err),
	)
}
