package archive

import (
	"context"
	"fmt"
	"io"
	"time"
)

// Recap reads the given runs back from store and writes one line per run,
// followed by the total number of runs the store holds.
func Recap(ctx context.Context, store Store, ids []string, w io.Writer) error {
	for _, id := range ids {
		run, ok, err := store.GetRun(ctx, id)
		if err != nil {
			return fmt.Errorf("get run %s: %w", id, err)
		}
		if !ok {
			return fmt.Errorf("run %s is missing from the archive", id)
		}
		history, _, err := store.GetHistory(ctx, id)
		if err != nil {
			return fmt.Errorf("get history %s: %w", id, err)
		}
		fmt.Fprintf(w, "%s  n=%d seed=%d solved=%t generations=%d fitness=%g recorded=%d elapsed=%s\n",
			run.ID, run.BoardSize, run.Seed, run.Solved, run.Generations, run.Fitness, len(history), run.Elapsed.Round(time.Millisecond))
	}

	runs, err := store.ListRuns(ctx)
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}
	fmt.Fprintf(w, "archive holds %d run(s)\n", len(runs))
	return nil
}
