// Package archive persists the outcome of optimizer runs so repeated
// experiments can be compared afterwards.
package archive

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/baldhumanity/queens-go/genetic"
)

// ErrNotInitialized is returned by stores used before Init.
var ErrNotInitialized = errors.New("store is not initialized")

// RunRecord describes one finished run.
type RunRecord struct {
	ID             string        `json:"id"`
	Representation string        `json:"representation"`
	BoardSize      int           `json:"board_size"`
	Seed           uint64        `json:"seed"`
	Generations    int           `json:"generations"`
	Fitness        float64       `json:"fitness"`
	Solved         bool          `json:"solved"`
	Stagnated      bool          `json:"stagnated"`
	Solution       string        `json:"solution"`
	StartedAt      time.Time     `json:"started_at"`
	Elapsed        time.Duration `json:"elapsed"`
}

// Store defines persistence operations for run records and their
// per-generation history.
type Store interface {
	Init(ctx context.Context) error
	SaveRun(ctx context.Context, run RunRecord) error
	GetRun(ctx context.Context, id string) (RunRecord, bool, error)
	ListRuns(ctx context.Context) ([]RunRecord, error)
	SaveHistory(ctx context.Context, runID string, history []genetic.GenerationStats) error
	GetHistory(ctx context.Context, runID string) ([]genetic.GenerationStats, bool, error)
}

// NewRunID returns a fresh random run identifier.
func NewRunID() string {
	return uuid.NewString()
}

// NewStore returns an uninitialized store of the given kind.
func NewStore(kind, sqlitePath string) (Store, error) {
	switch kind {
	case "", genetic.StoreMemory:
		return NewMemoryStore(), nil
	case genetic.StoreSQLite:
		if sqlitePath == "" {
			return nil, errors.New("sqlite path is required")
		}
		return NewSQLiteStore(sqlitePath), nil
	default:
		return nil, fmt.Errorf("unsupported store backend: %s", kind)
	}
}

// CloseIfSupported closes store when the backend holds resources.
func CloseIfSupported(store Store) error {
	closer, ok := store.(interface{ Close() error })
	if !ok {
		return nil
	}
	return closer.Close()
}

// NewRunRecord fills a record from a finished run.
func NewRunRecord[C genetic.Candidate](id string, cfg *genetic.Config, seed uint64, startedAt time.Time, res genetic.Result[C]) RunRecord {
	return RunRecord{
		ID:             id,
		Representation: cfg.Queens.Representation,
		BoardSize:      cfg.Queens.BoardSize,
		Seed:           seed,
		Generations:    res.Generations,
		Fitness:        res.Fitness,
		Solved:         res.Solved,
		Stagnated:      res.Stagnated,
		Solution:       res.Best.String(),
		StartedAt:      startedAt,
		Elapsed:        res.Elapsed,
	}
}
