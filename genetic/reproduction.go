package genetic

import "fmt"

// Reproduction turns one population into the next: elitism, family
// partitioning, breeding and mutation of the children.
type Reproduction[C Candidate] struct {
	Config  *EngineConfig
	Problem Problem[C]

	// Bred counts every child produced since creation.
	Bred int
}

// NewReproduction creates a new reproduction manager.
func NewReproduction[C Candidate](config *EngineConfig, problem Problem[C]) *Reproduction[C] {
	return &Reproduction[C]{
		Config:  config,
		Problem: problem,
	}
}

// Reproduce creates the next generation from population.
//
// The strongest PopSize candidates are kept, then ChildrenPerCycle times the
// survivors are partitioned into random families of ParentsPerFamily, each
// family of two or more breeds one child, and the children of that round are
// mutated and re-evaluated. With KillParents the children alone form the next
// generation; otherwise they join the surviving parents.
func (r *Reproduction[C]) Reproduce(rng *Stream, population []C) ([]C, error) {
	species := FilterStrongest(population, r.Config.PopSize, r.Problem.Direction())

	var allChildren []C
	for round := 0; round < r.Config.ChildrenPerCycle; round++ {
		families := partition(rng, species, r.Config.ParentsPerFamily)
		species = make([]C, 0, len(species))

		children := make([]C, 0, len(families))
		for _, family := range families {
			if len(family) > 1 {
				child, err := r.Problem.Breed(rng, family)
				if err != nil {
					return nil, fmt.Errorf("breeding failed in round %d: %w", round, err)
				}
				children = append(children, child)
			}
			species = append(species, family...)
		}

		Mutate(rng, children, r.Config.MutationProbability)
		for _, child := range children {
			child.Reevaluate(rng)
		}
		r.Bred += len(children)

		allChildren = append(allChildren, children...)
	}

	if r.Config.KillParents {
		return allChildren, nil
	}
	return append(species, allChildren...), nil
}

// Mutate gives each candidate, independently with the given probability,
// exactly one elementary perturbation.
func Mutate[C Candidate](rng *Stream, candidates []C, probability float64) {
	for _, c := range candidates {
		if rng.Float64() < probability {
			c.Mutate(rng)
		}
	}
}

// partition draws the whole population without replacement into families of
// size members. The last family holds the remainder and may be smaller.
// The input slice is left untouched.
func partition[C Candidate](rng *Stream, population []C, size int) [][]C {
	pool := make([]C, len(population))
	copy(pool, population)

	families := make([][]C, 0, len(pool)/size+1)
	family := make([]C, 0, size)
	for len(pool) > 0 {
		next := rng.IntN(len(pool))
		family = append(family, pool[next])
		last := len(pool) - 1
		pool[next] = pool[last]
		pool = pool[:last]

		if len(family) == size {
			families = append(families, family)
			family = make([]C, 0, size)
		}
	}
	if len(family) > 0 {
		families = append(families, family)
	}
	return families
}
