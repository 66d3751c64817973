package genetic

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Result is the outcome of a complete run.
type Result[C Candidate] struct {
	Best        C
	Fitness     float64
	Generations int
	Solved      bool
	Stagnated   bool
	Elapsed     time.Duration
}

// Population holds the state of one evolutionary run.
//
// C must be a comparable type (in practice a pointer), since the best
// candidate is located by identity when the run hands it to the caller.
type Population[C Candidate] struct {
	Config       *Config
	Problem      Problem[C]
	Members      []C // current generation
	Reproduction *Reproduction[C]
	Stagnation   *Stagnation
	Generation   int
	Best         C // best candidate found so far
	BestFitness  float64
	HasBest      bool
	History      []GenerationStats // History[0] describes the initial population
	Logger       *slog.Logger

	rng *Stream
	mu  sync.Mutex // held for a whole generation step
}

// NewPopulation creates a new Population and its initial generation.
// A zero Engine.Seed reseeds the random stream from OS entropy.
func NewPopulation[C Candidate](config *Config, problem Problem[C]) (*Population[C], error) {
	var rng *Stream
	if config.Engine.Seed != 0 {
		rng = NewStream(config.Engine.Seed)
	} else {
		var err error
		rng, err = NewEntropyStream()
		if err != nil {
			return nil, fmt.Errorf("failed to seed population: %w", err)
		}
	}
	return NewPopulationWithStream(config, problem, rng)
}

// NewPopulationWithStream is NewPopulation with a caller-provided random stream.
func NewPopulationWithStream[C Candidate](config *Config, problem Problem[C], rng *Stream) (*Population[C], error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	initial := problem.Initial(rng, config.Engine.PopSize)
	if len(initial) == 0 {
		return nil, fmt.Errorf("initial population is empty")
	}

	p := &Population[C]{
		Config:       config,
		Problem:      problem,
		Members:      initial,
		Reproduction: NewReproduction(&config.Engine, problem),
		Stagnation:   NewStagnation(&config.Engine, problem.Direction()),
		Logger:       slog.Default(),
		rng:          rng,
	}
	p.History = append(p.History, newGenerationStats(0, initial, problem.Direction()))
	return p, nil
}

// RunGeneration executes a single generation: selection, breeding, mutation
// and re-evaluation. It reports whether the best fitness seen so far has
// reached the success threshold.
func (p *Population[C]) RunGeneration() (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	dir := p.Problem.Direction()

	next, err := p.Reproduction.Reproduce(p.rng, p.Members)
	if err != nil {
		return false, fmt.Errorf("reproduction failed in generation %d: %w", p.Generation+1, err)
	}
	if len(next) == 0 {
		return false, fmt.Errorf("population extinct in generation %d", p.Generation+1)
	}

	p.Generation++
	p.Members = next

	gs := newGenerationStats(p.Generation, next, dir)
	p.History = append(p.History, gs)

	current := next[bestIndex(next, dir)]
	if !p.HasBest || dir.AtLeastAsGood(current.Fitness(), p.BestFitness) {
		if !p.HasBest || dir.Better(current.Fitness(), p.BestFitness) {
			p.Logger.Debug("new best candidate", "generation", p.Generation, "fitness", current.Fitness())
		}
		p.Best = current
		p.BestFitness = current.Fitness()
		p.HasBest = true
	}

	if interval := p.Config.Engine.LogInterval; interval > 0 && p.Generation%interval == 0 {
		p.Logger.Info("generation finished",
			"generation", p.Generation,
			"size", gs.Size,
			"generation_best", gs.Best,
			"mean", gs.Mean,
			"best", p.BestFitness,
		)
	}

	return dir.Reached(p.BestFitness, p.Problem.Threshold()), nil
}

// Run iterates generations until the threshold is reached, the iteration
// budget is exhausted, the run stagnates or ctx is cancelled. Failing to reach
// the threshold is not an error: the best candidate found is returned either way.
// The returned candidate is removed from the population.
//
// When Run.Checkpoint is set the population is saved every
// Run.CheckpointInterval generations, on cancellation, and once more before the
// best candidate is handed out, so a resumed run still holds it as a parent.
func (p *Population[C]) Run(ctx context.Context) (Result[C], error) {
	start := time.Now()
	var res Result[C]

	for p.Generation < p.Config.Engine.MaxIterations {
		if err := ctx.Err(); err != nil {
			p.checkpoint("cancelled")
			return res, err
		}

		solved, err := p.RunGeneration()
		if err != nil {
			return res, err
		}
		if solved {
			res.Solved = true
			break
		}
		if p.Stagnation.Update(p.BestFitness, p.Generation) {
			res.Stagnated = true
			p.Logger.Info("run stagnated", "generation", p.Generation, "last_improved", p.Stagnation.LastImproved)
			break
		}
		if interval := p.Config.Run.CheckpointInterval; interval > 0 && p.Generation%interval == 0 {
			p.checkpoint("interval")
		}
	}

	p.checkpoint("finished")

	res.Best = p.TakeBest()
	res.Fitness = p.BestFitness
	res.Generations = p.Generation
	res.Elapsed = time.Since(start)

	p.Logger.Info("run finished",
		"generations", res.Generations,
		"best", res.Fitness,
		"solved", res.Solved,
		"elapsed", res.Elapsed,
	)
	return res, nil
}

// Finished reports whether the iteration budget is spent or the threshold reached.
func (p *Population[C]) Finished() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.Generation >= p.Config.Engine.MaxIterations {
		return true
	}
	return p.HasBest && p.Problem.Direction().Reached(p.BestFitness, p.Problem.Threshold())
}

// checkpoint saves to Run.Checkpoint, if configured. A failed save is logged
// and does not stop the run.
func (p *Population[C]) checkpoint(reason string) {
	path := p.Config.Run.Checkpoint
	if path == "" {
		return
	}
	if err := p.SaveCheckpoint(path); err != nil {
		p.Logger.Warn("failed to save checkpoint", "path", path, "reason", reason, "error", err)
	}
}

// TakeBest returns the best candidate found so far and removes it from the
// current generation, if it is still a member, by swapping it with the last
// member and truncating. Ownership passes to the caller.
func (p *Population[C]) TakeBest() C {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, c := range p.Members {
		if any(c) == any(p.Best) {
			last := len(p.Members) - 1
			p.Members[i] = p.Members[last]
			var zero C
			p.Members[last] = zero
			p.Members = p.Members[:last]
			break
		}
	}
	return p.Best
}
