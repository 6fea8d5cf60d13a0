package storage

import (
	"time"

	"github.com/mwestberg/todo-api/internal/domain"
)

// userRecord is the gorm mapping for users. Username and email carry unique
// indexes; the registration conflict checks in the app layer are a courtesy,
// these constraints are the source of truth.
type userRecord struct {
	ID             int64  `gorm:"primaryKey"`
	Username       string `gorm:"size:255;not null;uniqueIndex"`
	Email          string `gorm:"size:255;not null;uniqueIndex"`
	HashedPassword string `gorm:"size:255;not null"`
	IsActive       bool   `gorm:"not null;default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (userRecord) TableName() string { return "users" }

// taskRecord is the gorm mapping for tasks. UserID is indexed because every
// read is owner-scoped.
type taskRecord struct {
	ID          int64  `gorm:"primaryKey"`
	UserID      int64  `gorm:"not null;index"`
	Title       string `gorm:"size:255;not null"`
	Description string `gorm:"type:text"`
	Status      string `gorm:"size:32;not null;index"`
	Priority    string `gorm:"size:32;not null"`
	DueDate     *time.Time
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (taskRecord) TableName() string { return "tasks" }

func toUserRecord(u *domain.User) *userRecord {
	return &userRecord{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		HashedPassword: u.HashedPassword,
		IsActive:       u.IsActive,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

func (r *userRecord) toDomain() *domain.User {
	return &domain.User{
		ID:             r.ID,
		Username:       r.Username,
		Email:          r.Email,
		HashedPassword: r.HashedPassword,
		IsActive:       r.IsActive,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

func toTaskRecord(t *domain.Task) *taskRecord {
	return &taskRecord{
		ID:          t.ID,
		UserID:      t.UserID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status.String(),
		Priority:    t.Priority.String(),
		DueDate:     t.DueDate,
		CompletedAt: t.CompletedAt,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func (r *taskRecord) toDomain() *domain.Task {
	return &domain.Task{
		ID:          r.ID,
		UserID:      r.UserID,
		Title:       r.Title,
		Description: r.Description,
		Status:      domain.TaskStatus(r.Status),
		Priority:    domain.TaskPriority(r.Priority),
		DueDate:     r.DueDate,
		CompletedAt: r.CompletedAt,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
