package genetic

import (
	"compress/gzip"
	"encoding/gob"
	"fmt"
	"log/slog"
	"os"
)

// PopulationSaveData holds the parts of a Population needed to resume a run.
// The Config is not saved; the caller supplies it again on load.
type PopulationSaveData[C Candidate] struct {
	Members      []C
	Generation   int
	Best         C
	BestIndex    int // position of Best in Members, or -1
	BestFitness  float64
	HasBest      bool
	History      []GenerationStats
	Bred         int
	LastImproved int
	StagnantBest float64
	StagnantSeen bool
	RandState    []byte
}

// SaveCheckpoint saves the current state of the Population to a file.
// Uses gzip compression for smaller file size.
func (p *Population[C]) SaveCheckpoint(filePath string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	randState, err := p.rng.MarshalBinary()
	if err != nil {
		return fmt.Errorf("failed to marshal random state: %w", err)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create checkpoint file '%s': %w", filePath, err)
	}
	defer file.Close()

	gzWriter := gzip.NewWriter(file)

	bestIdx := -1
	for i, c := range p.Members {
		if p.HasBest && any(c) == any(p.Best) {
			bestIdx = i
			break
		}
	}

	saveData := PopulationSaveData[C]{
		Members:      p.Members,
		Generation:   p.Generation,
		Best:         p.Best,
		BestIndex:    bestIdx,
		BestFitness:  p.BestFitness,
		HasBest:      p.HasBest,
		History:      p.History,
		Bred:         p.Reproduction.Bred,
		LastImproved: p.Stagnation.LastImproved,
		StagnantBest: p.Stagnation.Best,
		StagnantSeen: p.Stagnation.Seen,
		RandState:    randState,
	}

	if err := gob.NewEncoder(gzWriter).Encode(saveData); err != nil {
		_ = gzWriter.Close()
		return fmt.Errorf("failed to encode population data: %w", err)
	}
	if err := gzWriter.Close(); err != nil {
		return fmt.Errorf("failed to flush checkpoint '%s': %w", filePath, err)
	}

	p.Logger.Info("checkpoint saved", "path", filePath, "generation", p.Generation)
	return nil
}

// LoadCheckpoint restores a Population from a checkpoint written by SaveCheckpoint.
// config and problem must describe the same run that was saved.
func LoadCheckpoint[C Candidate](checkpointPath string, config *Config, problem Problem[C]) (*Population[C], error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	file, err := os.Open(checkpointPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open checkpoint file '%s': %w", checkpointPath, err)
	}
	defer file.Close()

	gzReader, err := gzip.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader for checkpoint: %w", err)
	}
	defer gzReader.Close()

	var saveData PopulationSaveData[C]
	if err := gob.NewDecoder(gzReader).Decode(&saveData); err != nil {
		return nil, fmt.Errorf("failed to decode population data from checkpoint: %w", err)
	}
	if len(saveData.Members) == 0 {
		return nil, fmt.Errorf("checkpoint '%s' holds an empty population", checkpointPath)
	}

	rng := &Stream{}
	if err := rng.UnmarshalBinary(saveData.RandState); err != nil {
		return nil, err
	}

	p := &Population[C]{
		Config:       config,
		Problem:      problem,
		Members:      saveData.Members,
		Reproduction: NewReproduction(&config.Engine, problem),
		Stagnation:   NewStagnation(&config.Engine, problem.Direction()),
		Generation:   saveData.Generation,
		Best:         saveData.Best,
		BestFitness:  saveData.BestFitness,
		HasBest:      saveData.HasBest,
		History:      saveData.History,
		Logger:       slog.Default(),
		rng:          rng,
	}
	if saveData.BestIndex >= 0 && saveData.BestIndex < len(p.Members) {
		p.Best = p.Members[saveData.BestIndex]
	}
	p.Reproduction.Bred = saveData.Bred
	p.Stagnation.LastImproved = saveData.LastImproved
	p.Stagnation.Best = saveData.StagnantBest
	p.Stagnation.Seen = saveData.StagnantSeen

	p.Logger.Info("checkpoint loaded", "path", checkpointPath, "generation", p.Generation)
	return p, nil
}
