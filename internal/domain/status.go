package domain

// TaskStatus represents the completion state of a Task.
type TaskStatus string

const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in_progress"
	StatusCompleted  TaskStatus = "completed"
)

// IsValid returns true if the status is one of the defined constants.
func (s TaskStatus) IsValid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusCompleted:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (s TaskStatus) String() string {
	return string(s)
}
