package genetic

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamIsDeterministic(t *testing.T) {
	a, b := NewStream(99), NewStream(99)
	for i := 0; i < 100; i++ {
		require.Equal(t, a.IntN(1000), b.IntN(1000))
	}
	assert.Equal(t, a.Perm(10), b.Perm(10))
}

func TestStreamStateRoundTrip(t *testing.T) {
	s := NewStream(5)
	s.IntN(10)

	state, err := s.MarshalBinary()
	require.NoError(t, err)

	restored := &Stream{}
	require.NoError(t, restored.UnmarshalBinary(state))
	for i := 0; i < 50; i++ {
		require.Equal(t, s.Float64(), restored.Float64())
	}
}

func TestEntropyStream(t *testing.T) {
	s, err := NewEntropyStream()
	require.NoError(t, err)

	perm := s.Perm(16)
	sort.Ints(perm)
	for i, v := range perm {
		assert.Equal(t, i, v)
	}
}

func TestStagnation(t *testing.T) {
	cfg := EngineConfig{MaxStagnation: 2}
	s := NewStagnation(&cfg, Minimize)

	assert.False(t, s.Update(5, 1))
	assert.False(t, s.Update(5, 2))
	assert.True(t, s.Update(5, 3))
	assert.False(t, s.Update(4, 4))
	assert.Equal(t, 4, s.LastImproved)

	never := NewStagnation(&EngineConfig{}, Maximize)
	for g := 1; g < 100; g++ {
		assert.False(t, never.Update(1, g))
	}
}
