package queens

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baldhumanity/queens-go/genetic"
)

func TestAttackingPairs(t *testing.T) {
	assert.Equal(t, 0, AttackingPairs(rowsToCells([]int{1, 3, 0, 2})))
	assert.Equal(t, 12, AttackingPairs(rowsToCells([]int{0, 1, 2, 3})))
	assert.Equal(t, 4, NonAttacked(rowsToCells([]int{1, 3, 0, 2})))
	assert.Equal(t, 0, NonAttacked(rowsToCells([]int{0, 1, 2, 3})))
}

func TestEvaluateDiagonalsMatchesPairwiseCount(t *testing.T) {
	rng := genetic.NewStream(11)
	for n := 2; n <= 30; n++ {
		for k := 0; k < 10; k++ {
			p := &Permutation{Rows: rng.Perm(n)}
			p.EvaluateDiagonals()
			require.Equal(t, AttackingPairs(rowsToCells(p.Rows)), p.Value, "rows %v", p.Rows)
		}
	}
}

func TestEvaluateDiagonalsPanicsOnInvalidRows(t *testing.T) {
	p := &Permutation{Rows: []int{0, 0, 1}}
	assert.Panics(t, func() { p.EvaluateDiagonals() })
}

func TestSwapDeltaMatchesRecount(t *testing.T) {
	rng := genetic.NewStream(21)
	for _, n := range []int{2, 3, 5, 8, 13} {
		for k := 0; k < 20; k++ {
			p := &Permutation{Rows: rng.Perm(n)}
			p.EvaluateDiagonals()
			for i := 0; i < n; i++ {
				for j := 0; j < n; j++ {
					if i == j {
						continue
					}
					swapped := append([]int(nil), p.Rows...)
					swapped[i], swapped[j] = swapped[j], swapped[i]
					want := AttackingPairs(rowsToCells(swapped)) - p.Value
					require.Equal(t, want, p.swapDelta(i, j), "rows %v swap %d,%d", p.Rows, i, j)
				}
			}
		}
	}
}

func TestProbeKeepsTablesCurrent(t *testing.T) {
	rng := genetic.NewStream(31)
	for k := 0; k < 200; k++ {
		p := &Permutation{Rows: rng.Perm(12)}
		p.EvaluateDiagonals()
		before := p.Value

		gain := p.Probe(rng)
		assert.GreaterOrEqual(t, gain, 0)
		assert.Equal(t, before-gain, p.Value)
		require.True(t, p.Valid())

		forward := append([]int(nil), p.forward...)
		backward := append([]int(nil), p.backward...)
		value := p.Value
		p.EvaluateDiagonals()
		require.Equal(t, forward, p.forward)
		require.Equal(t, backward, p.backward)
		require.Equal(t, p.Value, value)
	}
}

func TestProbeLeavesSolutionAlone(t *testing.T) {
	p := &Permutation{Rows: []int{1, 3, 0, 2}}
	p.EvaluateDiagonals()
	assert.Equal(t, 0, p.Probe(genetic.NewStream(1)))
	assert.Equal(t, []int{1, 3, 0, 2}, p.Rows)
}

func TestReevaluateModes(t *testing.T) {
	rng := genetic.NewStream(41)
	for k := 0; k < 50; k++ {
		naive := &Permutation{Rows: rng.Perm(10), Mode: Naive}
		incremental := naive.Clone()
		incremental.Mode = Incremental

		naive.Reevaluate(rng)
		incremental.Reevaluate(rng)

		assert.Equal(t, AttackingPairs(rowsToCells(naive.Rows)), naive.Value)
		assert.Equal(t, AttackingPairs(rowsToCells(incremental.Rows)), incremental.Value)
		assert.LessOrEqual(t, incremental.Value, naive.Value)
	}
}

func TestMutateSwapsTwoPositions(t *testing.T) {
	rng := genetic.NewStream(51)
	for k := 0; k < 100; k++ {
		p := &Permutation{Rows: rng.Perm(9)}
		before := append([]int(nil), p.Rows...)
		p.Mutate(rng)
		require.True(t, p.Valid())

		changed := 0
		for x := range before {
			if before[x] != p.Rows[x] {
				changed++
			}
		}
		assert.Equal(t, 2, changed)
	}

	single := &Permutation{Rows: []int{0}}
	single.Mutate(rng)
	assert.Equal(t, []int{0}, single.Rows)
}

func TestNewPermutation(t *testing.T) {
	p, err := NewPermutation([]int{2, 0, 1}, Naive)
	require.NoError(t, err)
	assert.Equal(t, Naive, p.Mode)

	_, err = NewPermutation([]int{2, 2, 1}, Naive)
	assert.Error(t, err)
	_, err = NewPermutation([]int{0, 3}, Naive)
	assert.Error(t, err)
}

func TestPermutationString(t *testing.T) {
	p := &Permutation{Rows: []int{1, 3, 0, 2}}
	p.Reevaluate(genetic.NewStream(1))
	assert.Equal(t, "fitness=0, queens=[1 3 0 2]", p.String())
}

func permutationConfig(n int) genetic.QueensConfig {
	return genetic.QueensConfig{
		BoardSize:      n,
		Representation: genetic.RepresentationPermutation,
		Crossover:      genetic.CrossoverPMXSegment,
		Evaluator:      genetic.EvaluatorIncremental,
	}
}

func TestPermutationProblem(t *testing.T) {
	problem, err := NewPermutationProblem(permutationConfig(8))
	require.NoError(t, err)
	assert.Equal(t, genetic.Minimize, problem.Direction())
	assert.Equal(t, 0.0, problem.Threshold())

	rng := genetic.NewStream(61)
	initial := problem.Initial(rng, 5)
	require.Len(t, initial, 5)
	for _, p := range initial {
		require.True(t, p.Valid())
		assert.Equal(t, AttackingPairs(rowsToCells(p.Rows)), p.Value)
	}

	child, err := problem.Breed(rng, initial[:2])
	require.NoError(t, err)
	assert.True(t, child.Valid())

	_, err = problem.Breed(rng, initial[:3])
	assert.ErrorIs(t, err, genetic.ErrFamilySize)
	_, err = problem.Breed(rng, initial[:1])
	assert.ErrorIs(t, err, genetic.ErrFamilySize)
}

func TestNewPermutationProblemRejectsBadOperators(t *testing.T) {
	cfg := permutationConfig(8)
	cfg.Crossover = genetic.CrossoverVote
	_, err := NewPermutationProblem(cfg)
	assert.ErrorIs(t, err, genetic.ErrInvalidConfig)

	cfg = permutationConfig(8)
	cfg.Evaluator = "fast"
	_, err = NewPermutationProblem(cfg)
	assert.ErrorIs(t, err, genetic.ErrInvalidConfig)
}

func TestSolveEightQueens(t *testing.T) {
	cfg := genetic.DefaultConfig()
	cfg.Engine.PopSize = 3
	cfg.Engine.MaxIterations = 1000
	cfg.Engine.ChildrenPerCycle = 100
	cfg.Engine.Seed = 2024
	cfg.Engine.LogInterval = 0
	cfg.Queens = permutationConfig(8)

	problem, err := NewPermutationProblem(cfg.Queens)
	require.NoError(t, err)
	pop, err := genetic.NewPopulation[*Permutation](cfg, problem)
	require.NoError(t, err)

	res, err := pop.Run(context.Background())
	require.NoError(t, err)
	require.True(t, res.Solved)
	assert.Equal(t, 0.0, res.Fitness)
	assert.True(t, res.Best.Valid())
	assert.Equal(t, 0, AttackingPairs(rowsToCells(res.Best.Rows)))
}

func TestSolveEightQueensWithPopulationFour(t *testing.T) {
	for _, crossover := range []string{genetic.CrossoverPMXUniform, genetic.CrossoverPMXSegment} {
		for _, evaluator := range []string{genetic.EvaluatorIncremental, genetic.EvaluatorNaive} {
			t.Run(crossover+"/"+evaluator, func(t *testing.T) {
				cfg := genetic.DefaultConfig()
				cfg.Engine.PopSize = 4
				cfg.Engine.MaxIterations = 1000
				cfg.Engine.ChildrenPerCycle = 100
				cfg.Engine.Seed = 2024
				cfg.Engine.LogInterval = 0
				cfg.Queens = permutationConfig(8)
				cfg.Queens.Crossover = crossover
				cfg.Queens.Evaluator = evaluator

				problem, err := NewPermutationProblem(cfg.Queens)
				require.NoError(t, err)
				pop, err := genetic.NewPopulation[*Permutation](cfg, problem)
				require.NoError(t, err)

				res, err := pop.Run(context.Background())
				require.NoError(t, err)
				require.True(t, res.Solved)
				assert.Equal(t, 0.0, res.Fitness)
				assert.True(t, res.Best.Valid())
				assert.Equal(t, 0, AttackingPairs(rowsToCells(res.Best.Rows)))
			})
		}
	}
}
