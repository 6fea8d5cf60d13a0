package domain

// TaskPriority represents the urgency of a Task.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// DefaultPriority is applied when a task is created without an explicit
// priority.
const DefaultPriority = PriorityMedium

// IsValid returns true if the priority is one of the defined constants.
func (p TaskPriority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (p TaskPriority) String() string {
	return string(p)
}
