package genetic

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// GenerationStats summarizes the fitness distribution of one generation.
type GenerationStats struct {
	Generation int
	Size       int
	Best       float64
	Mean       float64
	StdDev     float64
}

// newGenerationStats computes the statistics of population.
func newGenerationStats[C Candidate](generation int, population []C, dir Direction) GenerationStats {
	gs := GenerationStats{Generation: generation, Size: len(population)}
	if len(population) == 0 {
		return gs
	}

	fitnesses := make([]float64, len(population))
	for i, c := range population {
		fitnesses[i] = c.Fitness()
	}
	gs.Best = population[bestIndex(population, dir)].Fitness()
	gs.Mean, gs.StdDev = stat.MeanStdDev(fitnesses, nil)
	if len(fitnesses) < 2 {
		gs.StdDev = 0
	}
	return gs
}

// Summary aggregates the outcome of repeated runs.
type Summary struct {
	Runs              int
	Solved            int
	SuccessRate       float64
	MeanGenerations   float64
	StdDevGenerations float64
	MedianGenerations float64
	MeanBest          float64
	BestOverall       float64
}

// Summarize computes run statistics over results. Direction decides which
// best fitness counts as the overall best.
func Summarize[C Candidate](results []Result[C], dir Direction) Summary {
	s := Summary{Runs: len(results)}
	if len(results) == 0 {
		return s
	}

	generations := make([]float64, len(results))
	bests := make([]float64, len(results))
	for i, res := range results {
		generations[i] = float64(res.Generations)
		bests[i] = res.Fitness
		if res.Solved {
			s.Solved++
		}
		if i == 0 || dir.Better(res.Fitness, s.BestOverall) {
			s.BestOverall = res.Fitness
		}
	}

	s.SuccessRate = float64(s.Solved) / float64(s.Runs)
	s.MeanGenerations, s.StdDevGenerations = stat.MeanStdDev(generations, nil)
	if len(generations) < 2 {
		s.StdDevGenerations = 0
	}
	s.MeanBest = stat.Mean(bests, nil)

	sorted := append([]float64(nil), generations...)
	sort.Float64s(sorted)
	s.MedianGenerations = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	return s
}
