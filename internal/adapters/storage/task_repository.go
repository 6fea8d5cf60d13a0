package storage

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mwestberg/todo-api/internal/domain"
	"github.com/mwestberg/todo-api/internal/ports"
)

// Compile-time check that TaskRepository implements ports.TaskRepository.
var _ ports.TaskRepository = (*TaskRepository)(nil)

// TaskRepository persists tasks with gorm. All lookups are owner-scoped so
// tasks owned by other users are indistinguishable from missing ones.
type TaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a gorm-backed task repository.
func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create persists a new task and writes the store-assigned ID and timestamps
// back to the given entity.
func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) error {
	rec := toTaskRecord(task)
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return unavailable("creating task", err)
	}

	*task = *rec.toDomain()
	return nil
}

// GetByID returns the owner's task with the given ID, or domain.ErrNotFound.
func (r *TaskRepository) GetByID(ctx context.Context, ownerID, id int64) (*domain.Task, error) {
	rec, err := fetchTask(r.db.WithContext(ctx), ownerID, id)
	if err != nil {
		return nil, err
	}
	return rec.toDomain(), nil
}

// ListByOwner returns the owner's tasks matching the filter, oldest first.
func (r *TaskRepository) ListByOwner(ctx context.Context, ownerID int64, filter domain.TaskFilter) ([]domain.Task, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", ownerID)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status.String())
	}

	var recs []taskRecord
	if err := query.Order("id ASC").Find(&recs).Error; err != nil {
		return nil, unavailable("listing tasks", err)
	}

	tasks := make([]domain.Task, len(recs))
	for i := range recs {
		tasks[i] = *recs[i].toDomain()
	}
	return tasks, nil
}

// UpdateInTx fetches the owner's task inside a transaction, runs apply on it,
// and saves the result. An error from apply rolls the transaction back and
// propagates unchanged, so domain validation failures leave no trace.
func (r *TaskRepository) UpdateInTx(ctx context.Context, ownerID, id int64, apply func(*domain.Task) error) (*domain.Task, error) {
	var updated *domain.Task
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec, err := fetchTask(tx, ownerID, id)
		if err != nil {
			return err
		}

		task := rec.toDomain()
		if err := apply(task); err != nil {
			return err
		}

		if err := tx.Save(toTaskRecord(task)).Error; err != nil {
			return unavailable("saving task", err)
		}

		updated = task
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the owner's task with the given ID. A delete that matches
// no row reports domain.ErrNotFound, covering both missing and non-owned IDs.
func (r *TaskRepository) Delete(ctx context.Context, ownerID, id int64) error {
	res := r.db.WithContext(ctx).Where("user_id = ?", ownerID).Delete(&taskRecord{}, id)
	if res.Error != nil {
		return unavailable("deleting task", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func fetchTask(db *gorm.DB, ownerID, id int64) (*taskRecord, error) {
	var rec taskRecord
	if err := db.First(&rec, "user_id = ? AND id = ?", ownerID, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, unavailable("fetching task", err)
	}
	return &rec, nil
}
