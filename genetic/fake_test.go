package genetic

import "fmt"

// scalar is a minimal candidate whose fitness is its value.
type scalar struct {
	Value float64
}

func (s *scalar) Fitness() float64 { return s.Value }
func (s *scalar) Reevaluate(_ *Stream) {}
func (s *scalar) Mutate(rng *Stream) { s.Value += float64(rng.IntN(3) - 1) }
func (s *scalar) String() string { return fmt.Sprintf("scalar(%g)", s.Value) }

type scalarProblem struct {
	dir       Direction
	threshold float64
	parents   int // exact family size Breed accepts; 0 accepts any size >= 2
	breedErr  error
}

func (p *scalarProblem) Direction() Direction { return p.dir }
func (p *scalarProblem) Threshold() float64 { return p.threshold }

func (p *scalarProblem) Initial(rng *Stream, size int) []*scalar {
	out := make([]*scalar, size)
	for i := range out {
		out[i] = &scalar{Value: float64(rng.IntN(100))}
	}
	return out
}

func (p *scalarProblem) Breed(_ *Stream, family []*scalar) (*scalar, error) {
	if p.breedErr != nil {
		return nil, p.breedErr
	}
	if p.parents > 0 && len(family) != p.parents {
		return nil, fmt.Errorf("%w: got %d", ErrFamilySize, len(family))
	}
	sum := 0.0
	for _, c := range family {
		sum += c.Value
	}
	return &scalar{Value: sum / float64(len(family))}, nil
}

func scalars(values ...float64) []*scalar {
	out := make([]*scalar, len(values))
	for i, v := range values {
		out[i] = &scalar{Value: v}
	}
	return out
}

func values(population []*scalar) []float64 {
	out := make([]float64, len(population))
	for i, c := range population {
		out[i] = c.Value
	}
	return out
}

// testConfig returns a valid configuration small enough for unit tests.
func testConfig() *Config {
	cfg := DefaultConfig()
	cfg.Engine.PopSize = 4
	cfg.Engine.MaxIterations = 50
	cfg.Engine.ChildrenPerCycle = 3
	cfg.Engine.Seed = 7
	cfg.Engine.LogInterval = 0
	cfg.Queens.BoardSize = 8
	return cfg
}
