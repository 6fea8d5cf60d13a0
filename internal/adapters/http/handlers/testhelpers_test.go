package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mwestberg/todo-api/internal/adapters/http/middleware"
	"github.com/mwestberg/todo-api/internal/domain"
	"github.com/mwestberg/todo-api/internal/ports"
)

var testTime = time.Date(2026, 2, 12, 15, 4, 5, 0, time.UTC)

func withChiParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func withCaller(r *http.Request, u *domain.User) *http.Request {
	return r.WithContext(middleware.WithCaller(r.Context(), u))
}

func validUser() *domain.User {
	return &domain.User{
		ID:        1,
		Username:  "alice",
		Email:     "alice@example.com",
		IsActive:  true,
		CreatedAt: testTime,
		UpdatedAt: testTime,
	}
}

func validTask() domain.Task {
	return domain.Task{
		ID:        1,
		UserID:    1,
		Title:     "Buy groceries",
		Status:    domain.StatusTodo,
		Priority:  domain.PriorityMedium,
		CreatedAt: testTime,
		UpdatedAt: testTime,
	}
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(v); err != nil {
		t.Fatalf("failed to encode JSON body: %v", err)
	}
	return buf
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var result T
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode JSON response: %v", err)
	}
	return result
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Errorf("status = %d, want %d; body = %s", rec.Code, want, rec.Body.String())
	}
}

// stubAuthService returns canned results for each AuthService method.
type stubAuthService struct {
	registerUser *domain.User
	registerErr  error
	loginPair    *ports.TokenPair
	loginErr     error
	caller       *domain.User
	callerErr    error
}

func (s *stubAuthService) Register(context.Context, string, string, string) (*domain.User, error) {
	return s.registerUser, s.registerErr
}

func (s *stubAuthService) Login(context.Context, string, string) (*ports.TokenPair, error) {
	return s.loginPair, s.loginErr
}

func (s *stubAuthService) ResolveCaller(context.Context, string) (*domain.User, error) {
	if s.callerErr != nil {
		return nil, s.callerErr
	}
	return s.caller, nil
}

// stubTaskService returns canned results for each TaskService method and
// records the inputs it saw.
type stubTaskService struct {
	task    *domain.Task
	tasks   []domain.Task
	summary *domain.TaskSummary
	err     error

	gotInput  ports.CreateTaskInput
	gotFilter domain.TaskFilter
	gotPatch  domain.TaskPatch
	gotID     int64
}

func (s *stubTaskService) Create(_ context.Context, _ *domain.User, in ports.CreateTaskInput) (*domain.Task, error) {
	s.gotInput = in
	return s.task, s.err
}

func (s *stubTaskService) Get(_ context.Context, _ *domain.User, id int64) (*domain.Task, error) {
	s.gotID = id
	return s.task, s.err
}

func (s *stubTaskService) List(_ context.Context, _ *domain.User, filter domain.TaskFilter) ([]domain.Task, error) {
	s.gotFilter = filter
	return s.tasks, s.err
}

func (s *stubTaskService) Update(_ context.Context, _ *domain.User, id int64, patch domain.TaskPatch) (*domain.Task, error) {
	s.gotID = id
	s.gotPatch = patch
	return s.task, s.err
}

func (s *stubTaskService) Delete(_ context.Context, _ *domain.User, id int64) error {
	s.gotID = id
	return s.err
}

func (s *stubTaskService) Summary(context.Context, *domain.User) (*domain.TaskSummary, error) {
	return s.summary, s.err
}

var (
	_ ports.AuthService = (*stubAuthService)(nil)
	_ ports.TaskService = (*stubTaskService)(nil)
)
