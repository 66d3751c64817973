package genetic

import (
	"errors"
	"fmt"
)

// ErrFamilySize is returned when a breeder receives a family it cannot recombine.
var ErrFamilySize = errors.New("unsupported family size")

// Direction tells the engine which way fitness improves.
type Direction int

const (
	// Maximize treats higher fitness as better (score variants).
	Maximize Direction = iota
	// Minimize treats lower fitness as better (conflict-count variants).
	Minimize
)

func (d Direction) String() string {
	switch d {
	case Maximize:
		return "max"
	case Minimize:
		return "min"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Better reports whether a is strictly better than b.
func (d Direction) Better(a, b float64) bool {
	if d == Minimize {
		return a < b
	}
	return a > b
}

// AtLeastAsGood reports whether a is better than or equal to b.
func (d Direction) AtLeastAsGood(a, b float64) bool {
	return !d.Better(b, a)
}

// Reached reports whether value satisfies threshold in this direction.
func (d Direction) Reached(value, threshold float64) bool {
	return d.AtLeastAsGood(value, threshold)
}

// Candidate is one complete proposed solution with a cached fitness.
type Candidate interface {
	// Fitness returns the value computed by the last Reevaluate.
	Fitness() float64
	// Reevaluate recomputes the fitness. Evaluators that embed a local-search
	// probe draw from rng and may modify the candidate.
	Reevaluate(rng *Stream)
	// Mutate applies exactly one elementary perturbation in place.
	Mutate(rng *Stream)
	fmt.Stringer
}

// Problem supplies the representation-specific operators for candidates of type C.
// Only one Problem is active per run, so the engine is parametrized on it at
// compile time.
type Problem[C Candidate] interface {
	// Direction is the improving direction of C's fitness.
	Direction() Direction
	// Threshold is the fitness value at which a run counts as solved.
	Threshold() float64
	// Initial returns size freshly placed and evaluated candidates.
	Initial(rng *Stream, size int) []C
	// Breed recombines family into a single new, unevaluated child.
	Breed(rng *Stream, family []C) (C, error)
}
