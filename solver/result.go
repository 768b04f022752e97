package solver

import "fmt"

// CheckResult is the aggregate verdict of one check call across all
// consulted backends.
type CheckResult int

const (
	// Satisfiable and Unsatisfiable are the definitive verdicts.
	Satisfiable CheckResult = iota
	Unsatisfiable
	// Unknown means at least one backend answered but none decided.
	Unknown
	// Conflicting means two backends returned different definitive
	// verdicts for the same query.
	Conflicting
	// Error means no usable answer was obtained from any backend.
	Error
)

func (r CheckResult) String() string {
	switch r {
	case Satisfiable:
		return "sat"
	case Unsatisfiable:
		return "unsat"
	case Unknown:
		return "unknown"
	case Conflicting:
		return "conflicting"
	case Error:
		return "error"
	}
	panic(fmt.Sprintf("solver: invalid check result %d", int(r)))
}
