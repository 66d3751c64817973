// Package report renders the fitness history of a run.
package report

import (
	"errors"
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/baldhumanity/queens-go/genetic"
)

// HistoryPoints converts a history into best and mean fitness series indexed
// by generation.
func HistoryPoints(history []genetic.GenerationStats) (best, mean plotter.XYs) {
	best = make(plotter.XYs, len(history))
	mean = make(plotter.XYs, len(history))
	for i, gs := range history {
		best[i].X = float64(gs.Generation)
		best[i].Y = gs.Best
		mean[i].X = float64(gs.Generation)
		mean[i].Y = gs.Mean
	}
	return best, mean
}

// PlotHistory draws best and mean fitness per generation and saves the chart
// to outPath. The image format follows the file extension.
func PlotHistory(history []genetic.GenerationStats, title, outPath string) error {
	if len(history) == 0 {
		return errors.New("cannot plot an empty history")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Generation"
	p.Y.Label.Text = "Fitness"

	bestPts, meanPts := HistoryPoints(history)

	bestLine, err := plotter.NewLine(bestPts)
	if err != nil {
		return fmt.Errorf("best series: %w", err)
	}
	meanLine, err := plotter.NewLine(meanPts)
	if err != nil {
		return fmt.Errorf("mean series: %w", err)
	}
	meanLine.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}

	p.Add(plotter.NewGrid(), bestLine, meanLine)
	p.Legend.Add("best", bestLine)
	p.Legend.Add("mean", meanLine)
	p.Legend.Top = true

	if err := p.Save(6*vg.Inch, 4*vg.Inch, outPath); err != nil {
		return fmt.Errorf("failed to save plot '%s': %w", outPath, err)
	}
	return nil
}
