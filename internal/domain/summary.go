package domain

// TaskSummary aggregates one owner's tasks by status. The per-status counts
// always sum to Total.
type TaskSummary struct {
	Total          int
	Todo           int
	InProgress     int
	Completed      int
	CompletionRate float64
}

// NewTaskSummary computes the summary for a set of tasks belonging to a
// single owner. CompletionRate is the percentage of completed tasks, 0 when
// there are no tasks.
func NewTaskSummary(tasks []Task) TaskSummary {
	s := TaskSummary{Total: len(tasks)}
	for i := range tasks {
		switch tasks[i].Status {
		case StatusTodo:
			s.Todo++
		case StatusInProgress:
			s.InProgress++
		case StatusCompleted:
			s.Completed++
		}
	}
	if s.Total > 0 {
		s.CompletionRate = float64(s.Completed) / float64(s.Total) * 100
	}
	return s
}
