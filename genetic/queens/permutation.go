package queens

import (
	"fmt"

	"github.com/baldhumanity/queens-go/genetic"
)

// EvalMode selects how a Permutation computes its fitness.
type EvalMode int

const (
	// Incremental uses the diagonal occupancy tables followed by one
	// local-search probe.
	Incremental EvalMode = iota
	// Naive counts attacking pairs pairwise in O(n^2).
	Naive
)

// ParseEvalMode maps an evaluator name from the configuration to an EvalMode.
func ParseEvalMode(name string) (EvalMode, error) {
	switch name {
	case genetic.EvaluatorIncremental:
		return Incremental, nil
	case genetic.EvaluatorNaive:
		return Naive, nil
	default:
		return 0, fmt.Errorf("unknown evaluator '%s'", name)
	}
}

// Permutation places queen x in column x, row Rows[x]. Rows is always a
// permutation of 0..n-1, so no two queens share a row or a column.
// Value is the number of attacking ordered pairs; lower is better.
type Permutation struct {
	Rows  []int
	Value int
	Mode  EvalMode

	forward  []int
	backward []int
}

// NewPermutation wraps rows after checking it is a permutation.
// The returned candidate is not evaluated.
func NewPermutation(rows []int, mode EvalMode) (*Permutation, error) {
	if !isPermutation(rows) {
		return nil, fmt.Errorf("rows %v are not a permutation of 0..%d", rows, len(rows)-1)
	}
	return &Permutation{Rows: rows, Mode: mode}, nil
}

func (p *Permutation) Fitness() float64 {
	return float64(p.Value)
}

// Reevaluate recomputes the fitness. In Incremental mode the evaluation
// includes a single Probe, which may swap two rows.
func (p *Permutation) Reevaluate(rng *genetic.Stream) {
	if p.Mode == Naive {
		p.Value = AttackingPairs(rowsToCells(p.Rows))
		return
	}
	p.EvaluateDiagonals()
	p.Probe(rng)
}

// Mutate swaps the rows of two distinct random columns.
func (p *Permutation) Mutate(rng *genetic.Stream) {
	n := len(p.Rows)
	if n < 2 {
		return
	}
	i := rng.IntN(n)
	j := rng.IntN(n - 1)
	if j >= i {
		j++
	}
	p.Rows[i], p.Rows[j] = p.Rows[j], p.Rows[i]
}

// Valid reports whether Rows is still a permutation.
func (p *Permutation) Valid() bool {
	return isPermutation(p.Rows)
}

// Clone returns a deep copy without the evaluator tables.
func (p *Permutation) Clone() *Permutation {
	return &Permutation{
		Rows:  append([]int(nil), p.Rows...),
		Value: p.Value,
		Mode:  p.Mode,
	}
}

func (p *Permutation) String() string {
	return fmt.Sprintf("fitness=%d, queens=%v", p.Value, p.Rows)
}

func isPermutation(rows []int) bool {
	seen := make([]bool, len(rows))
	for _, y := range rows {
		if y < 0 || y >= len(rows) || seen[y] {
			return false
		}
		seen[y] = true
	}
	return true
}

// PermutationProblem breeds permutation candidates with PMX.
type PermutationProblem struct {
	N         int
	Crossover PMXMode
	Mode      EvalMode
}

// NewPermutationProblem builds the problem described by cfg.
func NewPermutationProblem(cfg genetic.QueensConfig) (*PermutationProblem, error) {
	crossover, err := ParsePMXMode(cfg.Crossover)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", genetic.ErrInvalidConfig, err)
	}
	mode, err := ParseEvalMode(cfg.Evaluator)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", genetic.ErrInvalidConfig, err)
	}
	if cfg.BoardSize < 2 {
		return nil, fmt.Errorf("%w: board_size must be at least 2", genetic.ErrInvalidConfig)
	}
	return &PermutationProblem{N: cfg.BoardSize, Crossover: crossover, Mode: mode}, nil
}

func (pp *PermutationProblem) Direction() genetic.Direction {
	return genetic.Minimize
}

func (pp *PermutationProblem) Threshold() float64 {
	return 0
}

// Initial returns size random, evaluated permutations.
func (pp *PermutationProblem) Initial(rng *genetic.Stream, size int) []*Permutation {
	population := make([]*Permutation, size)
	for i := range population {
		p := &Permutation{Rows: rng.Perm(pp.N), Mode: pp.Mode}
		p.Reevaluate(rng)
		population[i] = p
	}
	return population
}

// Breed crosses exactly two parents with PMX. Any other family size is a
// precondition violation and yields genetic.ErrFamilySize.
func (pp *PermutationProblem) Breed(rng *genetic.Stream, family []*Permutation) (*Permutation, error) {
	if len(family) != 2 {
		return nil, fmt.Errorf("%w: PMX needs exactly 2 parents, got %d", genetic.ErrFamilySize, len(family))
	}
	rows := PMX(rng, family[0].Rows, family[1].Rows, pp.Crossover)
	return &Permutation{Rows: rows, Mode: pp.Mode}, nil
}
