package queens

import (
	"fmt"

	"github.com/baldhumanity/queens-go/genetic"
)

// Diagonal occupancy for a permutation placement of n queens. Queen x sits on
// forward diagonal n-1+x-row(x) and backward diagonal x+row(x); both tables
// have 2n-1 entries. Rows and columns never collide in a permutation, so the
// fitness is
//
//	sum over queens of (forward occupancy - 1) + (backward occupancy - 1)
//
// which equals the number of attacking ordered pairs.

func forwardIndex(n, x, y int) int  { return n - 1 + x - y }
func backwardIndex(n, x, y int) int { return x + y }

// EvaluateDiagonals rebuilds the occupancy tables from scratch and sets the
// fitness. It panics if Rows is not a permutation of 0..n-1.
func (p *Permutation) EvaluateDiagonals() {
	n := len(p.Rows)
	size := 2*n - 1
	if size < 0 {
		size = 0
	}
	if len(p.forward) != size {
		p.forward = make([]int, size)
		p.backward = make([]int, size)
	} else {
		clear(p.forward)
		clear(p.backward)
	}

	seen := make([]bool, n)
	for x, y := range p.Rows {
		if y < 0 || y >= n || seen[y] {
			panic(fmt.Sprintf("queens: rows %v are not a permutation of 0..%d", p.Rows, n-1))
		}
		seen[y] = true
		p.forward[forwardIndex(n, x, y)]++
		p.backward[backwardIndex(n, x, y)]++
	}

	fitness := 0
	for x, y := range p.Rows {
		fitness += p.forward[forwardIndex(n, x, y)] - 1
		fitness += p.backward[backwardIndex(n, x, y)] - 1
	}
	p.Value = fitness
}

// alone reports whether queen x is the only queen on both of its diagonals.
func (p *Permutation) alone(x int) bool {
	n, y := len(p.Rows), p.Rows[x]
	return p.forward[forwardIndex(n, x, y)] == 1 && p.backward[backwardIndex(n, x, y)] == 1
}

// swapDelta returns the fitness change caused by exchanging the rows of
// queens i and j, read off the occupancy tables in constant time.
//
// Removing a queen from a diagonal holding c queens changes the fitness by
// -2(c-1), adding one to a diagonal holding c changes it by +2c. When both
// queens leave the same diagonal the change is -(4c-6); when both land on the
// same one it is 4c+2. Queens sharing a forward diagonal land on a shared
// backward diagonal after the swap and vice versa, and a swapped queen never
// lands on a diagonal either queen left, so the post-removal counts of the
// landing diagonals are the current ones.
func (p *Permutation) swapDelta(i, j int) int {
	n := len(p.Rows)
	ri, rj := p.Rows[i], p.Rows[j]
	f, b := p.forward, p.backward

	fi, fj := forwardIndex(n, i, ri), forwardIndex(n, j, rj)
	bi, bj := backwardIndex(n, i, ri), backwardIndex(n, j, rj)
	fi2, fj2 := forwardIndex(n, i, rj), forwardIndex(n, j, ri)
	bi2, bj2 := backwardIndex(n, i, rj), backwardIndex(n, j, ri)

	delta := 0
	switch {
	case fi == fj:
		// shared forward diagonal before, shared backward diagonal after
		delta -= 4*f[fi] - 6
		delta -= 2*(b[bi]-1) + 2*(b[bj]-1)
		delta += 2*f[fi2] + 2*f[fj2]
		delta += 4*b[bi2] + 2
	case bi == bj:
		// shared backward diagonal before, shared forward diagonal after
		delta -= 2*(f[fi]-1) + 2*(f[fj]-1)
		delta -= 4*b[bi] - 6
		delta += 4*f[fi2] + 2
		delta += 2*b[bi2] + 2*b[bj2]
	default:
		delta -= 2*(f[fi]-1) + 2*(f[fj]-1)
		delta -= 2*(b[bi]-1) + 2*(b[bj]-1)
		delta += 2*f[fi2] + 2*f[fj2]
		delta += 2*b[bi2] + 2*b[bj2]
	}
	return delta
}

// applySwap exchanges the rows of queens i and j and updates the tables.
func (p *Permutation) applySwap(i, j int) {
	n := len(p.Rows)
	ri, rj := p.Rows[i], p.Rows[j]

	p.forward[forwardIndex(n, i, ri)]--
	p.backward[backwardIndex(n, i, ri)]--
	p.forward[forwardIndex(n, j, rj)]--
	p.backward[backwardIndex(n, j, rj)]--

	p.Rows[i], p.Rows[j] = rj, ri

	p.forward[forwardIndex(n, i, rj)]++
	p.backward[backwardIndex(n, i, rj)]++
	p.forward[forwardIndex(n, j, ri)]++
	p.backward[backwardIndex(n, j, ri)]++
}

// Probe runs one hill-climbing step: it picks a random queen, finds the
// partner whose swap lowers the fitness the most and applies that swap if the
// improvement is strict. It returns the improvement, 0 when nothing was
// applied. The tables must be current (see EvaluateDiagonals).
func (p *Permutation) Probe(rng *genetic.Stream) int {
	n := len(p.Rows)
	if n < 2 {
		return 0
	}

	i := rng.IntN(n)
	iAlone := p.alone(i)

	bestJ, bestGain := -1, 0
	for j := 0; j < n; j++ {
		if j == i || (iAlone && p.alone(j)) {
			continue
		}
		if gain := -p.swapDelta(i, j); gain > bestGain {
			bestJ, bestGain = j, gain
		}
	}

	if bestJ < 0 {
		return 0
	}
	p.applySwap(i, bestJ)
	p.Value -= bestGain
	return bestGain
}
