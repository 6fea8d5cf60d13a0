package domain

// TaskFilter holds optional filter criteria for listing tasks.
// Zero-value fields mean "no filter" for that dimension. Owner scoping is
// not part of the filter; every repository lookup takes the owner explicitly.
type TaskFilter struct {
	Status TaskStatus
}
