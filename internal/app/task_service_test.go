package app

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwestberg/todo-api/internal/domain"
	"github.com/mwestberg/todo-api/internal/ports"
)

func newTaskFixture() (*TaskService, *fakeTaskRepo) {
	tasks := newFakeTaskRepo()
	svc := NewTaskService(tasks, discardLogger())
	return svc, tasks
}

func testCaller(id int64) *domain.User {
	return &domain.User{ID: id, Username: "alice", IsActive: true}
}

func strPtr(s string) *string { return &s }

func TestTaskServiceCreate(t *testing.T) {
	t.Parallel()
	svc, _ := newTaskFixture()
	caller := testCaller(7)

	due := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	task, err := svc.Create(context.Background(), caller, ports.CreateTaskInput{
		Title:       "write report",
		Description: "quarterly numbers",
		Priority:    "high",
		DueDate:     &due,
	})
	require.NoError(t, err)

	assert.NotZero(t, task.ID)
	assert.Equal(t, caller.ID, task.UserID)
	assert.Equal(t, domain.StatusTodo, task.Status, "new tasks always start at todo")
	assert.Equal(t, domain.PriorityHigh, task.Priority)
	assert.Equal(t, &due, task.DueDate)
	assert.Nil(t, task.CompletedAt)
}

func TestTaskServiceCreateDefaultsPriority(t *testing.T) {
	t.Parallel()
	svc, _ := newTaskFixture()

	task, err := svc.Create(context.Background(), testCaller(7), ports.CreateTaskInput{Title: "write report"})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultPriority, task.Priority)
}

func TestTaskServiceCreateValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   ports.CreateTaskInput
	}{
		{name: "empty title", in: ports.CreateTaskInput{Title: "   "}},
		{name: "title too long", in: ports.CreateTaskInput{Title: strings.Repeat("x", domain.MaxTitleLen+1)}},
		{name: "description too long", in: ports.CreateTaskInput{Title: "ok", Description: strings.Repeat("x", domain.MaxDescriptionLen+1)}},
		{name: "unknown priority", in: ports.CreateTaskInput{Title: "ok", Priority: "urgent"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, tasks := newTaskFixture()

			_, err := svc.Create(context.Background(), testCaller(7), tt.in)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Empty(t, tasks.tasks, "validation failures persist nothing")
		})
	}
}

func TestTaskServiceGetIsOwnerScoped(t *testing.T) {
	t.Parallel()
	svc, _ := newTaskFixture()
	ctx := context.Background()
	alice := testCaller(1)
	bob := testCaller(2)

	created, err := svc.Create(ctx, alice, ports.CreateTaskInput{Title: "write report"})
	require.NoError(t, err)

	got, err := svc.Get(ctx, alice, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = svc.Get(ctx, bob, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTaskServiceListFilter(t *testing.T) {
	t.Parallel()
	svc, _ := newTaskFixture()
	ctx := context.Background()
	alice := testCaller(1)

	first, err := svc.Create(ctx, alice, ports.CreateTaskInput{Title: "first"})
	require.NoError(t, err)
	second, err := svc.Create(ctx, alice, ports.CreateTaskInput{Title: "second"})
	require.NoError(t, err)
	_, err = svc.Update(ctx, alice, second.ID, domain.TaskPatch{Status: strPtr("completed")})
	require.NoError(t, err)

	all, err := svc.List(ctx, alice, domain.TaskFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	todos, err := svc.List(ctx, alice, domain.TaskFilter{Status: domain.StatusTodo})
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, first.ID, todos[0].ID)

	_, err = svc.List(ctx, alice, domain.TaskFilter{Status: "archived"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTaskServiceUpdate(t *testing.T) {
	t.Parallel()
	svc, _ := newTaskFixture()
	ctx := context.Background()
	alice := testCaller(1)

	created, err := svc.Create(ctx, alice, ports.CreateTaskInput{Title: "write report"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, alice, created.ID, domain.TaskPatch{
		Title:  strPtr("write final report"),
		Status: strPtr("completed"),
	})
	require.NoError(t, err)
	assert.Equal(t, "write final report", updated.Title)
	assert.Equal(t, domain.StatusCompleted, updated.Status)
	require.NotNil(t, updated.CompletedAt, "completing a task stamps CompletedAt")

	reopened, err := svc.Update(ctx, alice, created.ID, domain.TaskPatch{Status: strPtr("in_progress")})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInProgress, reopened.Status)
	assert.Nil(t, reopened.CompletedAt, "leaving completed clears CompletedAt")
}

func TestTaskServiceUpdateValidation(t *testing.T) {
	t.Parallel()
	svc, _ := newTaskFixture()
	ctx := context.Background()
	alice := testCaller(1)

	created, err := svc.Create(ctx, alice, ports.CreateTaskInput{Title: "write report"})
	require.NoError(t, err)

	tests := []struct {
		name  string
		patch domain.TaskPatch
	}{
		{name: "empty title", patch: domain.TaskPatch{Title: strPtr("  ")}},
		{name: "unknown status", patch: domain.TaskPatch{Status: strPtr("archived")}},
		{name: "unknown priority", patch: domain.TaskPatch{Priority: strPtr("urgent")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := svc.Update(ctx, alice, created.ID, tt.patch)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}

	unchanged, err := svc.Get(ctx, alice, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "write report", unchanged.Title)
	assert.Equal(t, domain.StatusTodo, unchanged.Status)
}

func TestTaskServiceUpdateNotOwned(t *testing.T) {
	t.Parallel()
	svc, _ := newTaskFixture()
	ctx := context.Background()
	alice := testCaller(1)
	bob := testCaller(2)

	created, err := svc.Create(ctx, alice, ports.CreateTaskInput{Title: "write report"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, bob, created.ID, domain.TaskPatch{Title: strPtr("hijacked")})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Update(ctx, alice, created.ID+100, domain.TaskPatch{Title: strPtr("missing")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTaskServiceDelete(t *testing.T) {
	t.Parallel()
	svc, _ := newTaskFixture()
	ctx := context.Background()
	alice := testCaller(1)
	bob := testCaller(2)

	created, err := svc.Create(ctx, alice, ports.CreateTaskInput{Title: "write report"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, bob, created.ID), domain.ErrNotFound)
	require.NoError(t, svc.Delete(ctx, alice, created.ID))
	assert.ErrorIs(t, svc.Delete(ctx, alice, created.ID), domain.ErrNotFound)
}

func TestTaskServiceSummary(t *testing.T) {
	t.Parallel()
	svc, _ := newTaskFixture()
	ctx := context.Background()
	alice := testCaller(1)
	bob := testCaller(2)

	for i, status := range []string{"todo", "in_progress", "completed", "completed"} {
		task, err := svc.Create(ctx, alice, ports.CreateTaskInput{Title: "task"})
		require.NoError(t, err)
		if status != "todo" {
			_, err = svc.Update(ctx, alice, task.ID, domain.TaskPatch{Status: strPtr(status)})
			require.NoError(t, err, "seeding task %d", i)
		}
	}
	_, err := svc.Create(ctx, bob, ports.CreateTaskInput{Title: "bob's task"})
	require.NoError(t, err)

	summary, err := svc.Summary(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, 4, summary.Total, "only the caller's tasks are counted")
	assert.Equal(t, 1, summary.Todo)
	assert.Equal(t, 1, summary.InProgress)
	assert.Equal(t, 2, summary.Completed)
	assert.InDelta(t, 50.0, summary.CompletionRate, 0.001)
}

func TestTaskServiceSummaryEmpty(t *testing.T) {
	t.Parallel()
	svc, _ := newTaskFixture()

	summary, err := svc.Summary(context.Background(), testCaller(1))
	require.NoError(t, err)
	assert.Zero(t, summary.Total)
	assert.Zero(t, summary.CompletionRate, "no tasks means a zero rate, not a division by zero")
}
