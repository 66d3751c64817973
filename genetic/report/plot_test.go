package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baldhumanity/queens-go/genetic"
)

func TestHistoryPoints(t *testing.T) {
	history := []genetic.GenerationStats{
		{Generation: 0, Best: 10, Mean: 14},
		{Generation: 1, Best: 6, Mean: 9},
		{Generation: 2, Best: 0, Mean: 3},
	}

	best, mean := HistoryPoints(history)
	require.Len(t, best, 3)
	require.Len(t, mean, 3)
	assert.Equal(t, 2.0, best[2].X)
	assert.Equal(t, 0.0, best[2].Y)
	assert.Equal(t, 9.0, mean[1].Y)
}

func TestPlotHistoryWritesFile(t *testing.T) {
	history := []genetic.GenerationStats{
		{Generation: 0, Best: 10, Mean: 14},
		{Generation: 1, Best: 6, Mean: 9},
	}
	out := filepath.Join(t.TempDir(), "history.png")

	require.NoError(t, PlotHistory(history, "8 queens", out))

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestPlotHistoryRejectsEmpty(t *testing.T) {
	err := PlotHistory(nil, "empty", filepath.Join(t.TempDir(), "x.png"))
	assert.Error(t, err)
}
