package storage

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mwestberg/todo-api/internal/domain"
	"github.com/mwestberg/todo-api/internal/ports"
)

// Compile-time check that UserRepository implements ports.UserRepository.
var _ ports.UserRepository = (*UserRepository)(nil)

// UserRepository persists users with gorm.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a gorm-backed user repository.
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create persists a new user. A duplicate username or email surfaces as
// domain.ErrConflict; the store-assigned ID and timestamps are written back
// to the given entity.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	rec := toUserRecord(user)
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrConflict
		}
		return unavailable("creating user", err)
	}

	*user = *rec.toDomain()
	return nil
}

// GetByID returns a user by ID, or domain.ErrNotFound.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.getOne(ctx, "id = ?", id)
}

// GetByUsername returns a user by exact username, or domain.ErrNotFound.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getOne(ctx, "username = ?", username)
}

// GetByEmail returns a user by exact email, or domain.ErrNotFound.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, "email = ?", email)
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	var rec userRecord
	if err := r.db.WithContext(ctx).First(&rec, query, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, unavailable("fetching user", err)
	}
	return rec.toDomain(), nil
}
