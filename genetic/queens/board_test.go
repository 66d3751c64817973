package queens

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baldhumanity/queens-go/genetic"
)

func boardConfig(n int) genetic.QueensConfig {
	return genetic.QueensConfig{
		BoardSize:      n,
		Representation: genetic.RepresentationBoard,
		Crossover:      genetic.CrossoverVote,
		Evaluator:      genetic.EvaluatorNaive,
	}
}

func TestNewBoard(t *testing.T) {
	b, err := NewBoard(4, []Cell{{0, 1}, {1, 3}, {2, 0}, {3, 2}})
	require.NoError(t, err)
	assert.True(t, b.Consistent())

	b.Reevaluate(nil)
	assert.InDelta(t, 4+ScoreEpsilon, b.Score, 1e-12)
	assert.Equal(t, "score=4.000001, queens=[(0, 1) (1, 3) (2, 0) (3, 2)]", b.String())

	_, err = NewBoard(4, []Cell{{0, 0}, {0, 0}})
	assert.Error(t, err)
	_, err = NewBoard(4, []Cell{{4, 0}})
	assert.Error(t, err)
}

func TestBoardScoreNeverZero(t *testing.T) {
	b, err := NewBoard(3, []Cell{{0, 0}, {1, 1}, {2, 2}})
	require.NoError(t, err)
	b.Reevaluate(nil)
	assert.Greater(t, b.Score, 0.0)
	assert.False(t, genetic.Maximize.Reached(b.Score, 3))
}

func TestBoardMutate(t *testing.T) {
	rng := genetic.NewStream(101)
	problem, err := NewBoardProblem(boardConfig(6))
	require.NoError(t, err)

	for _, b := range problem.Initial(rng, 20) {
		before := b.Clone()
		b.Mutate(rng)
		require.True(t, b.Consistent())
		require.Len(t, b.Queens, 6)

		moved := 0
		for i := range b.Queens {
			if b.Queens[i] != before.Queens[i] {
				moved++
			}
		}
		assert.Equal(t, 1, moved)
	}

	full, err := NewBoard(2, []Cell{{0, 0}, {0, 1}, {1, 0}, {1, 1}})
	require.NoError(t, err)
	full.Mutate(rng)
	assert.True(t, full.Consistent())
	assert.Equal(t, []Cell{{0, 0}, {0, 1}, {1, 0}, {1, 1}}, full.Queens)
}

func TestVoteCrossover(t *testing.T) {
	rng := genetic.NewStream(111)
	problem, err := NewBoardProblem(boardConfig(8))
	require.NoError(t, err)

	for k := 0; k < 50; k++ {
		parents := problem.Initial(rng, 3)
		child := VoteCrossover(rng, parents, 8)
		require.True(t, child.Consistent())
		require.Len(t, child.Queens, 8)

		for _, q := range child.Queens {
			found := false
			for _, p := range parents {
				if p.occupied(q.X, q.Y) {
					found = true
					break
				}
			}
			assert.True(t, found, "queen %v not inherited", q)
		}
	}
}

func TestVoteCrossoverIdenticalParents(t *testing.T) {
	rng := genetic.NewStream(121)
	parent, err := NewBoard(4, []Cell{{0, 1}, {1, 3}, {2, 0}, {3, 2}})
	require.NoError(t, err)

	child := VoteCrossover(rng, []*Board{parent, parent.Clone()}, 4)
	assert.ElementsMatch(t, parent.Queens, child.Queens)
}

func TestBoardProblem(t *testing.T) {
	problem, err := NewBoardProblem(boardConfig(8))
	require.NoError(t, err)
	assert.Equal(t, genetic.Maximize, problem.Direction())
	assert.Equal(t, 8.0, problem.Threshold())

	rng := genetic.NewStream(131)
	initial := problem.Initial(rng, 4)
	for _, b := range initial {
		require.True(t, b.Consistent())
		require.Len(t, b.Queens, 8)
		assert.InDelta(t, float64(NonAttacked(b.Queens))+ScoreEpsilon, b.Score, 1e-12)
	}

	child, err := problem.Breed(rng, initial)
	require.NoError(t, err)
	assert.True(t, child.Consistent())

	_, err = problem.Breed(rng, initial[:1])
	assert.ErrorIs(t, err, genetic.ErrFamilySize)

	cfg := boardConfig(8)
	cfg.Crossover = genetic.CrossoverPMXSegment
	_, err = NewBoardProblem(cfg)
	assert.ErrorIs(t, err, genetic.ErrInvalidConfig)
}

func TestBoardRunKeepsBoardsConsistent(t *testing.T) {
	cfg := genetic.DefaultConfig()
	cfg.Engine.PopSize = 6
	cfg.Engine.ParentsPerFamily = 3
	cfg.Engine.MaxIterations = 40
	cfg.Engine.ChildrenPerCycle = 10
	cfg.Engine.MutationProbability = 0.5
	cfg.Engine.KillParents = false
	cfg.Engine.Seed = 9
	cfg.Engine.LogInterval = 0
	cfg.Queens = boardConfig(6)

	problem, err := NewBoardProblem(cfg.Queens)
	require.NoError(t, err)
	pop, err := genetic.NewPopulation[*Board](cfg, problem)
	require.NoError(t, err)

	res, err := pop.Run(context.Background())
	require.NoError(t, err)
	require.NotNil(t, res.Best)
	assert.True(t, res.Best.Consistent())
	assert.GreaterOrEqual(t, res.Fitness, pop.History[0].Best)
	for _, b := range pop.Members {
		require.True(t, b.Consistent())
	}
}
