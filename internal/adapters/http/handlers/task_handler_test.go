package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mwestberg/todo-api/internal/adapters/http/dto"
	"github.com/mwestberg/todo-api/internal/adapters/http/handlers"
	"github.com/mwestberg/todo-api/internal/domain"
)

// --- Create ---

func TestCreateTask_Success(t *testing.T) {
	t.Parallel()
	task := validTask()
	svc := &stubTaskService{task: &task}
	h := handlers.NewTaskHandler(svc)

	body := jsonBody(t, dto.CreateTaskRequest{Title: "Buy groceries", Priority: "high"})
	rec := httptest.NewRecorder()
	req := withCaller(httptest.NewRequest(http.MethodPost, "/api/v1/tasks", body), validUser())
	h.Create(rec, req)

	requireStatus(t, rec, http.StatusCreated)
	resp := decodeJSON[dto.TaskResponse](t, rec)
	if resp.Title != "Buy groceries" {
		t.Errorf("Title = %q, want %q", resp.Title, "Buy groceries")
	}
	if svc.gotInput.Priority != "high" {
		t.Errorf("service received priority %q, want %q", svc.gotInput.Priority, "high")
	}
}

func TestCreateTask_ValidationError(t *testing.T) {
	t.Parallel()
	h := handlers.NewTaskHandler(&stubTaskService{})

	body := jsonBody(t, dto.CreateTaskRequest{Title: "  "})
	rec := httptest.NewRecorder()
	req := withCaller(httptest.NewRequest(http.MethodPost, "/api/v1/tasks", body), validUser())
	h.Create(rec, req)

	requireStatus(t, rec, http.StatusUnprocessableEntity)
}

func TestCreateTask_NoCaller(t *testing.T) {
	t.Parallel()
	h := handlers.NewTaskHandler(&stubTaskService{})

	body := jsonBody(t, dto.CreateTaskRequest{Title: "Buy groceries"})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tasks", body)
	h.Create(rec, req)

	requireStatus(t, rec, http.StatusUnauthorized)
}

// --- Get ---

func TestGetTask_Success(t *testing.T) {
	t.Parallel()
	task := validTask()
	svc := &stubTaskService{task: &task}
	h := handlers.NewTaskHandler(svc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks/1", nil)
	req = withCaller(withChiParams(req, map[string]string{"id": "1"}), validUser())
	h.Get(rec, req)

	requireStatus(t, rec, http.StatusOK)
	if svc.gotID != 1 {
		t.Errorf("service received id %d, want 1", svc.gotID)
	}
}

func TestGetTask_NotFound(t *testing.T) {
	t.Parallel()
	h := handlers.NewTaskHandler(&stubTaskService{err: domain.ErrNotFound})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks/999", nil)
	req = withCaller(withChiParams(req, map[string]string{"id": "999"}), validUser())
	h.Get(rec, req)

	requireStatus(t, rec, http.StatusNotFound)
}

func TestGetTask_BadID(t *testing.T) {
	t.Parallel()
	h := handlers.NewTaskHandler(&stubTaskService{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks/abc", nil)
	req = withCaller(withChiParams(req, map[string]string{"id": "abc"}), validUser())
	h.Get(rec, req)

	requireStatus(t, rec, http.StatusUnprocessableEntity)
}

// --- List ---

func TestListTasks_Success(t *testing.T) {
	t.Parallel()
	svc := &stubTaskService{tasks: []domain.Task{validTask()}}
	h := handlers.NewTaskHandler(svc)

	rec := httptest.NewRecorder()
	req := withCaller(httptest.NewRequest(http.MethodGet, "/api/v1/tasks?status=todo", nil), validUser())
	h.List(rec, req)

	requireStatus(t, rec, http.StatusOK)
	resp := decodeJSON[dto.TaskListResponse](t, rec)
	if resp.Count != 1 {
		t.Errorf("Count = %d, want 1", resp.Count)
	}
	if svc.gotFilter.Status != domain.StatusTodo {
		t.Errorf("service received filter %q, want %q", svc.gotFilter.Status, domain.StatusTodo)
	}
}

func TestListTasks_Empty(t *testing.T) {
	t.Parallel()
	h := handlers.NewTaskHandler(&stubTaskService{tasks: nil})

	rec := httptest.NewRecorder()
	req := withCaller(httptest.NewRequest(http.MethodGet, "/api/v1/tasks", nil), validUser())
	h.List(rec, req)

	requireStatus(t, rec, http.StatusOK)
	resp := decodeJSON[dto.TaskListResponse](t, rec)
	if resp.Count != 0 || resp.Tasks == nil {
		t.Errorf("want an empty tasks array, got %s", rec.Body.String())
	}
}

// --- Update ---

func TestUpdateTask_Success(t *testing.T) {
	t.Parallel()
	task := validTask()
	task.Status = domain.StatusCompleted
	svc := &stubTaskService{task: &task}
	h := handlers.NewTaskHandler(svc)

	status := "completed"
	body := jsonBody(t, dto.UpdateTaskRequest{Status: &status})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/tasks/1", body)
	req = withCaller(withChiParams(req, map[string]string{"id": "1"}), validUser())
	h.Update(rec, req)

	requireStatus(t, rec, http.StatusOK)
	if svc.gotPatch.Status == nil || *svc.gotPatch.Status != "completed" {
		t.Errorf("service received patch %+v, want status=completed", svc.gotPatch)
	}
}

func TestUpdateTask_InvalidStatus(t *testing.T) {
	t.Parallel()
	h := handlers.NewTaskHandler(&stubTaskService{})

	status := "archived"
	body := jsonBody(t, dto.UpdateTaskRequest{Status: &status})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/tasks/1", body)
	req = withCaller(withChiParams(req, map[string]string{"id": "1"}), validUser())
	h.Update(rec, req)

	requireStatus(t, rec, http.StatusUnprocessableEntity)
}

func TestUpdateTask_NotFound(t *testing.T) {
	t.Parallel()
	h := handlers.NewTaskHandler(&stubTaskService{err: domain.ErrNotFound})

	title := "new title"
	body := jsonBody(t, dto.UpdateTaskRequest{Title: &title})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/tasks/2", body)
	req = withCaller(withChiParams(req, map[string]string{"id": "2"}), validUser())
	h.Update(rec, req)

	requireStatus(t, rec, http.StatusNotFound)
}

// --- Delete ---

func TestDeleteTask_Success(t *testing.T) {
	t.Parallel()
	svc := &stubTaskService{}
	h := handlers.NewTaskHandler(svc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/tasks/1", nil)
	req = withCaller(withChiParams(req, map[string]string{"id": "1"}), validUser())
	h.Delete(rec, req)

	requireStatus(t, rec, http.StatusNoContent)
	if rec.Body.Len() != 0 {
		t.Errorf("204 response must have an empty body, got %q", rec.Body.String())
	}
}

func TestDeleteTask_NotFound(t *testing.T) {
	t.Parallel()
	h := handlers.NewTaskHandler(&stubTaskService{err: domain.ErrNotFound})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/tasks/999", nil)
	req = withCaller(withChiParams(req, map[string]string{"id": "999"}), validUser())
	h.Delete(rec, req)

	requireStatus(t, rec, http.StatusNotFound)
}

// --- Summary ---

func TestSummary_Success(t *testing.T) {
	t.Parallel()
	h := handlers.NewTaskHandler(&stubTaskService{
		summary: &domain.TaskSummary{Total: 4, Todo: 1, InProgress: 1, Completed: 2, CompletionRate: 50},
	})

	rec := httptest.NewRecorder()
	req := withCaller(httptest.NewRequest(http.MethodGet, "/api/v1/tasks/summary", nil), validUser())
	h.Summary(rec, req)

	requireStatus(t, rec, http.StatusOK)
	resp := decodeJSON[dto.SummaryResponse](t, rec)
	if resp.Total != 4 || resp.Completed != 2 || resp.CompletionRate != 50 {
		t.Errorf("unexpected summary: %+v", resp)
	}
}
