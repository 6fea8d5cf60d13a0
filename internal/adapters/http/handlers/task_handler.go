package handlers

import (
	"net/http"

	"github.com/mwestberg/todo-api/internal/adapters/http/dto"
	"github.com/mwestberg/todo-api/internal/domain"
	"github.com/mwestberg/todo-api/internal/ports"
)

// TaskHandler handles the owner-scoped task CRUD and summary endpoints.
// Every method resolves the caller first; the service layer never sees a
// task ID without the owner it must belong to.
type TaskHandler struct {
	tasks ports.TaskService
}

// NewTaskHandler creates a new TaskHandler backed by the given task service.
func NewTaskHandler(tasks ports.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// Create handles POST /api/v1/tasks.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	u := caller(w, r)
	if u == nil {
		return
	}

	var req dto.CreateTaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	task, err := h.tasks.Create(r.Context(), u, req.ToInput())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ToTaskResponse(task))
}

// Get handles GET /api/v1/tasks/{id}.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	u := caller(w, r)
	if u == nil {
		return
	}

	id, err := parseID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	task, err := h.tasks.Get(r.Context(), u, id)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToTaskResponse(task))
}

// List handles GET /api/v1/tasks. An optional status query parameter narrows
// the result; unknown values are rejected rather than matching nothing.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	u := caller(w, r)
	if u == nil {
		return
	}

	filter := domain.TaskFilter{
		Status: domain.TaskStatus(r.URL.Query().Get("status")),
	}

	tasks, err := h.tasks.List(r.Context(), u, filter)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToTaskListResponse(tasks))
}

// Update handles PATCH /api/v1/tasks/{id}.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	u := caller(w, r)
	if u == nil {
		return
	}

	id, err := parseID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.UpdateTaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	task, err := h.tasks.Update(r.Context(), u, id, req.ToPatch())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToTaskResponse(task))
}

// Delete handles DELETE /api/v1/tasks/{id}.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	u := caller(w, r)
	if u == nil {
		return
	}

	id, err := parseID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	if err := h.tasks.Delete(r.Context(), u, id); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Summary handles GET /api/v1/tasks/summary.
func (h *TaskHandler) Summary(w http.ResponseWriter, r *http.Request) {
	u := caller(w, r)
	if u == nil {
		return
	}

	summary, err := h.tasks.Summary(r.Context(), u)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToSummaryResponse(summary))
}
