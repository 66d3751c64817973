package genetic

import "sort"

// FilterStrongest keeps the capacity fittest candidates of population,
// ordered best first. It is a no-op when the population already fits.
// Ties keep their relative order.
func FilterStrongest[C Candidate](population []C, capacity int, dir Direction) []C {
	if len(population) <= capacity {
		return population
	}

	sort.SliceStable(population, func(i, j int) bool {
		return dir.Better(population[i].Fitness(), population[j].Fitness())
	})

	// Clear the dropped tail so truncated candidates can be collected.
	var zero C
	for i := capacity; i < len(population); i++ {
		population[i] = zero
	}
	return population[:capacity]
}

// bestIndex returns the index of the best candidate in population, preferring
// later entries on ties, or -1 for an empty population.
func bestIndex[C Candidate](population []C, dir Direction) int {
	best := -1
	for i, c := range population {
		if best < 0 || dir.AtLeastAsGood(c.Fitness(), population[best].Fitness()) {
			best = i
		}
	}
	return best
}
