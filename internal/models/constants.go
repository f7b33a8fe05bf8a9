package models

// ProblemStatus is the administrative state of a submitted problem.
type ProblemStatus string

const (
	StatusPending    ProblemStatus = "pending"
	StatusInProgress ProblemStatus = "in-progress"
	StatusCompleted  ProblemStatus = "completed"
)

// Complexity is the difficulty bucket suggested by the analysis service.
type Complexity string

const (
	ComplexitySimple  Complexity = "simple"
	ComplexityMedium  Complexity = "medium"
	ComplexityComplex Complexity = "complex"
)

// StatusFilterAll matches every status on the dashboard.
const StatusFilterAll = "all"

// contains all valid problem statuses
var ValidStatuses = map[ProblemStatus]bool{
	StatusPending:    true,
	StatusInProgress: true,
	StatusCompleted:  true,
}

// contains all valid complexity levels
var ValidComplexities = map[Complexity]bool{
	ComplexitySimple:  true,
	ComplexityMedium:  true,
	ComplexityComplex: true,
}

func ValidStatusesList() []string {
	return []string{string(StatusPending), string(StatusInProgress), string(StatusCompleted)}
}

func ValidComplexitiesList() []string {
	return []string{string(ComplexitySimple), string(ComplexityMedium), string(ComplexityComplex)}
}

// IsValidStatusFilter reports whether filter is "all" or a known status.
func IsValidStatusFilter(filter string) bool {
	return filter == StatusFilterAll || ValidStatuses[ProblemStatus(filter)]
}
