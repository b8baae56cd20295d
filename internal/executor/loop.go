package executor

import (
	"context"
	"time"

	"github.com/vk/tradegrid/internal/ctxlog"
)

// Loop runs cycles on a fixed interval until ctx is cancelled. The first
// cycle starts immediately. A failed or aborted cycle is logged and the loop
// carries on; failed modules get their retry on the next natural cycle.
func Loop(ctx context.Context, e *Executor, interval time.Duration) error {
	logger := ctxlog.FromContext(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		res, err := e.RunCycle(ctx)
		switch {
		case err != nil && ctx.Err() != nil:
			logger.Info("Execution loop stopping.", "cycles", res.Cycle)
			return nil
		case err != nil:
			logger.Error("Cycle aborted.", "cycle", res.Cycle, "error", err)
		case res.Failed():
			logger.Warn("Cycle completed with module failures.", "cycle", res.Cycle,
				"failures", len(res.Failures), "skipped", len(res.Skipped))
		default:
			logger.Debug("Cycle completed.", "cycle", res.Cycle, "outputs", len(res.Outputs))
		}

		select {
		case <-ctx.Done():
			logger.Info("Execution loop stopping.", "cycles", res.Cycle)
			return nil
		case <-ticker.C:
		}
	}
}
