package genetic

// Stagnation tracks how long the best fitness of a run has gone without improving.
type Stagnation struct {
	Config       *EngineConfig
	Direction    Direction
	Best         float64
	LastImproved int
	Seen         bool
}

// NewStagnation creates a new stagnation tracker.
func NewStagnation(config *EngineConfig, dir Direction) *Stagnation {
	return &Stagnation{Config: config, Direction: dir}
}

// Update records the best fitness of generation and reports whether the run
// has stagnated, i.e. MaxStagnation generations passed without a strict
// improvement. A zero MaxStagnation never stagnates.
func (s *Stagnation) Update(best float64, generation int) bool {
	if !s.Seen || s.Direction.Better(best, s.Best) {
		s.Best = best
		s.LastImproved = generation
		s.Seen = true
	}
	if s.Config.MaxStagnation <= 0 {
		return false
	}
	return generation-s.LastImproved >= s.Config.MaxStagnation
}
