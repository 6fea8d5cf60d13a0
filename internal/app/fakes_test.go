package app

import (
	"context"
	"sort"

	"github.com/mwestberg/todo-api/internal/domain"
	"github.com/mwestberg/todo-api/internal/ports"
)

// fakeUserRepo is an in-memory ports.UserRepository for service tests.
// Set failWith to force every call to error.
type fakeUserRepo struct {
	users    map[int64]*domain.User
	nextID   int64
	failWith error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*domain.User), nextID: 1}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	if f.failWith != nil {
		return f.failWith
	}
	for _, u := range f.users {
		if u.Username == user.Username || u.Email == user.Email {
			return domain.ErrConflict
		}
	}
	user.ID = f.nextID
	f.nextID++
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	if u, ok := f.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	for _, u := range f.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

// fakeTaskRepo is an in-memory ports.TaskRepository for service tests.
type fakeTaskRepo struct {
	tasks    map[int64]*domain.Task
	nextID   int64
	failWith error
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[int64]*domain.Task), nextID: 1}
}

func (f *fakeTaskRepo) Create(_ context.Context, task *domain.Task) error {
	if f.failWith != nil {
		return f.failWith
	}
	task.ID = f.nextID
	f.nextID++
	cp := *task
	f.tasks[task.ID] = &cp
	return nil
}

func (f *fakeTaskRepo) GetByID(_ context.Context, ownerID, id int64) (*domain.Task, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	if t, ok := f.tasks[id]; ok && t.UserID == ownerID {
		cp := *t
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeTaskRepo) ListByOwner(_ context.Context, ownerID int64, filter domain.TaskFilter) ([]domain.Task, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	var out []domain.Task
	for _, t := range f.tasks {
		if t.UserID != ownerID {
			continue
		}
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeTaskRepo) UpdateInTx(ctx context.Context, ownerID, id int64, apply func(*domain.Task) error) (*domain.Task, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	current, err := f.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if err := apply(current); err != nil {
		return nil, err
	}
	cp := *current
	f.tasks[id] = &cp
	return current, nil
}

func (f *fakeTaskRepo) Delete(_ context.Context, ownerID, id int64) error {
	if f.failWith != nil {
		return f.failWith
	}
	if t, ok := f.tasks[id]; ok && t.UserID == ownerID {
		delete(f.tasks, id)
		return nil
	}
	return domain.ErrNotFound
}

// fakeHasher marks hashes with a recognizable prefix instead of bcrypt so
// tests stay fast.
type fakeHasher struct {
	failWith error
}

func (f *fakeHasher) Hash(password string) (string, error) {
	if f.failWith != nil {
		return "", f.failWith
	}
	return "hashed:" + password, nil
}

func (f *fakeHasher) Verify(password, hash string) bool {
	return hash == "hashed:"+password
}

// fakeTokens issues "token-for:<subject>" and verifies only that shape.
type fakeTokens struct {
	issueErr  error
	verifyErr error
	expiresIn int64
}

func (f *fakeTokens) Issue(subject string) (string, int64, error) {
	if f.issueErr != nil {
		return "", 0, f.issueErr
	}
	return "token-for:" + subject, f.expiresIn, nil
}

func (f *fakeTokens) Verify(token string) (string, error) {
	if f.verifyErr != nil {
		return "", f.verifyErr
	}
	const prefix = "token-for:"
	if len(token) <= len(prefix) || token[:len(prefix)] != prefix {
		return "", domain.ErrUnauthorized
	}
	return token[len(prefix):], nil
}

var (
	_ ports.UserRepository = (*fakeUserRepo)(nil)
	_ ports.TaskRepository = (*fakeTaskRepo)(nil)
	_ ports.PasswordHasher = (*fakeHasher)(nil)
	_ ports.TokenManager   = (*fakeTokens)(nil)
)
