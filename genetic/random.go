package genetic

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
)

// Stream is the single random source shared by every stochastic step of a run
// (partitioning, breeding, mutation and the local-search probe).
// It is deterministic for a given seed and is not safe for concurrent use;
// the owning Population serializes access to it.
type Stream struct {
	src *rand.PCG
	rng *rand.Rand
}

// NewStream returns a stream seeded with the given value.
func NewStream(seed uint64) *Stream {
	src := rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	return &Stream{src: src, rng: rand.New(src)}
}

// NewEntropyStream returns a stream seeded from four 32-bit words of
// operating-system entropy. Runs started this way are not reproducible.
func NewEntropyStream() (*Stream, error) {
	var words [4]uint32
	if err := binary.Read(crand.Reader, binary.LittleEndian, &words); err != nil {
		return nil, fmt.Errorf("failed to read entropy for random stream: %w", err)
	}
	s := &Stream{}
	s.Reseed(words)
	return s, nil
}

// Reseed replaces the stream state with one derived from four 32-bit words.
func (s *Stream) Reseed(words [4]uint32) {
	hi := uint64(words[0])<<32 | uint64(words[1])
	lo := uint64(words[2])<<32 | uint64(words[3])
	s.src = rand.NewPCG(hi, lo)
	s.rng = rand.New(s.src)
}

// IntN returns a uniform integer in [0, n). It panics if n <= 0.
func (s *Stream) IntN(n int) int {
	return s.rng.IntN(n)
}

// Float64 returns a uniform float in [0, 1).
func (s *Stream) Float64() float64 {
	return s.rng.Float64()
}

// Perm returns a uniformly random permutation of 0..n-1.
func (s *Stream) Perm(n int) []int {
	return s.rng.Perm(n)
}

// MarshalBinary captures the generator state for checkpoints.
func (s *Stream) MarshalBinary() ([]byte, error) {
	return s.src.MarshalBinary()
}

// UnmarshalBinary restores a state captured by MarshalBinary.
func (s *Stream) UnmarshalBinary(data []byte) error {
	src := &rand.PCG{}
	if err := src.UnmarshalBinary(data); err != nil {
		return fmt.Errorf("failed to restore random stream: %w", err)
	}
	s.src = src
	s.rng = rand.New(src)
	return nil
}
