package queens

import (
	"fmt"
	"strings"

	"github.com/baldhumanity/queens-go/genetic"
)

// ScoreEpsilon offsets every board score so that no score is exactly zero.
const ScoreEpsilon = 0.000001

// Board places N queens freely on an N x N board. Cells is the dense
// occupancy grid indexed y*N+x and always mirrors Queens exactly.
// Score counts the queens nobody attacks, plus ScoreEpsilon; higher is better.
type Board struct {
	N      int
	Queens []Cell
	Cells  []bool
	Score  float64
}

// NewBoard builds a board from a list of queens. Queens must lie on the board
// and occupy distinct cells. The returned board is not evaluated.
func NewBoard(n int, queens []Cell) (*Board, error) {
	b := &Board{N: n, Queens: make([]Cell, 0, len(queens)), Cells: make([]bool, n*n)}
	for _, q := range queens {
		if q.X < 0 || q.X >= n || q.Y < 0 || q.Y >= n {
			return nil, fmt.Errorf("queen %v lies outside a %dx%d board", q, n, n)
		}
		if b.occupied(q.X, q.Y) {
			return nil, fmt.Errorf("two queens on cell %v", q)
		}
		b.place(q)
	}
	return b, nil
}

func (b *Board) occupied(x, y int) bool {
	return b.Cells[b.N*y+x]
}

func (b *Board) place(q Cell) {
	b.Cells[b.N*q.Y+q.X] = true
	b.Queens = append(b.Queens, q)
}

func (b *Board) Fitness() float64 {
	return b.Score
}

// Reevaluate recomputes the score with the pairwise conflict count.
func (b *Board) Reevaluate(_ *genetic.Stream) {
	b.Score = float64(NonAttacked(b.Queens)) + ScoreEpsilon
}

// Mutate moves one random queen to a random empty cell.
func (b *Board) Mutate(rng *genetic.Stream) {
	if len(b.Queens) == 0 || len(b.Queens) >= b.N*b.N {
		return
	}
	q := rng.IntN(len(b.Queens))
	for {
		x, y := rng.IntN(b.N), rng.IntN(b.N)
		if b.occupied(x, y) {
			continue
		}
		old := b.Queens[q]
		b.Cells[b.N*old.Y+old.X] = false
		b.Cells[b.N*y+x] = true
		b.Queens[q] = Cell{X: x, Y: y}
		return
	}
}

// Consistent reports whether Cells is exactly the indicator of Queens.
func (b *Board) Consistent() bool {
	if len(b.Cells) != b.N*b.N {
		return false
	}
	want := make([]bool, len(b.Cells))
	for _, q := range b.Queens {
		idx := b.N*q.Y + q.X
		if want[idx] {
			return false
		}
		want[idx] = true
	}
	for i := range want {
		if want[i] != b.Cells[i] {
			return false
		}
	}
	return true
}

// Clone returns a deep copy, grid included.
func (b *Board) Clone() *Board {
	return &Board{
		N:      b.N,
		Queens: append([]Cell(nil), b.Queens...),
		Cells:  append([]bool(nil), b.Cells...),
		Score:  b.Score,
	}
}

func (b *Board) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "score=%g, queens=[", b.Score)
	for i, q := range b.Queens {
		if i > 0 {
			sb.WriteString(" ")
		}
		fmt.Fprintf(&sb, "(%d, %d)", q.X, q.Y)
	}
	sb.WriteString("]")
	return sb.String()
}

// BoardProblem breeds free-placement boards with vote crossover.
type BoardProblem struct {
	N int
}

// NewBoardProblem builds the problem described by cfg.
func NewBoardProblem(cfg genetic.QueensConfig) (*BoardProblem, error) {
	if cfg.Crossover != genetic.CrossoverVote {
		return nil, fmt.Errorf("%w: board representation needs vote crossover, got '%s'", genetic.ErrInvalidConfig, cfg.Crossover)
	}
	if cfg.BoardSize < 2 {
		return nil, fmt.Errorf("%w: board_size must be at least 2", genetic.ErrInvalidConfig)
	}
	return &BoardProblem{N: cfg.BoardSize}, nil
}

func (bp *BoardProblem) Direction() genetic.Direction {
	return genetic.Maximize
}

// Threshold is reached when all N queens are unattacked.
func (bp *BoardProblem) Threshold() float64 {
	return float64(bp.N)
}

// Initial returns size boards with N queens on distinct random cells.
func (bp *BoardProblem) Initial(rng *genetic.Stream, size int) []*Board {
	population := make([]*Board, size)
	for i := range population {
		b := &Board{N: bp.N, Queens: make([]Cell, 0, bp.N), Cells: make([]bool, bp.N*bp.N)}
		for len(b.Queens) < bp.N {
			x, y := rng.IntN(bp.N), rng.IntN(bp.N)
			if !b.occupied(x, y) {
				b.place(Cell{X: x, Y: y})
			}
		}
		b.Reevaluate(rng)
		population[i] = b
	}
	return population
}

// Breed runs vote crossover over any family of two or more boards.
func (bp *BoardProblem) Breed(rng *genetic.Stream, family []*Board) (*Board, error) {
	if len(family) < 2 {
		return nil, fmt.Errorf("%w: vote crossover needs at least 2 parents, got %d", genetic.ErrFamilySize, len(family))
	}
	return VoteCrossover(rng, family, bp.N), nil
}

// VoteCrossover pools the queens of all parents and draws from the pool
// without replacement, keeping a queen whenever its cell is still free in the
// child, until the child holds n queens. The child never stacks two queens on
// one cell; it need not use every parent gene.
func VoteCrossover(rng *genetic.Stream, parents []*Board, n int) *Board {
	child := &Board{N: n, Queens: make([]Cell, 0, n), Cells: make([]bool, n*n)}

	pool := make([]Cell, 0, len(parents)*n)
	for _, p := range parents {
		pool = append(pool, p.Queens...)
	}

	for len(child.Queens) < n && len(pool) > 0 {
		next := rng.IntN(len(pool))
		q := pool[next]
		last := len(pool) - 1
		pool[next] = pool[last]
		pool = pool[:last]

		if !child.occupied(q.X, q.Y) {
			child.place(q)
		}
	}
	return child
}
