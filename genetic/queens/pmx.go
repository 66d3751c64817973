package queens

import (
	"fmt"

	"github.com/baldhumanity/queens-go/genetic"
)

// PMXMode selects which positions take the second parent's gene.
type PMXMode int

const (
	// PMXUniform matches each position independently with probability 1/2.
	PMXUniform PMXMode = iota
	// PMXSegment matches a contiguous, wrapping run of n/2 positions
	// starting at a random offset.
	PMXSegment
)

// ParsePMXMode maps a crossover name from the configuration to a PMXMode.
func ParsePMXMode(name string) (PMXMode, error) {
	switch name {
	case genetic.CrossoverPMXUniform:
		return PMXUniform, nil
	case genetic.CrossoverPMXSegment:
		return PMXSegment, nil
	default:
		return 0, fmt.Errorf("unknown PMX crossover '%s'", name)
	}
}

// PMX performs partially-matched crossover of two permutations of equal
// length. The child starts as a copy of mother; for every selected position x
// the father's gene father[x] is moved to x by swapping it with whatever the
// child currently holds there, so the child stays a permutation throughout.
func PMX(rng *genetic.Stream, mother, father []int, mode PMXMode) []int {
	if len(mother) != len(father) {
		panic(fmt.Sprintf("queens: PMX parents differ in length (%d vs %d)", len(mother), len(father)))
	}
	n := len(mother)

	child := make([]int, n)
	copy(child, mother)
	pos := make([]int, n) // value -> position in child
	for x, y := range child {
		pos[y] = x
	}

	match := func(x int) {
		fatherY := father[x]
		fatherX := pos[fatherY]
		childY := child[x]

		child[fatherX] = childY
		pos[childY] = fatherX
		child[x] = fatherY
		pos[fatherY] = x
	}

	switch mode {
	case PMXSegment:
		if n == 0 {
			return child
		}
		start := rng.IntN(n)
		for k := 0; k < n/2; k++ {
			match((start + k) % n)
		}
	default:
		for x := 0; x < n; x++ {
			if rng.Float64() < 0.5 {
				match(x)
			}
		}
	}
	return child
}
