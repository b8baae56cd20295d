package app

import (
	"context"
	"fmt"
	"time"

	"github.com/vk/tradegrid/internal/assembler"
	"github.com/vk/tradegrid/internal/ctxlog"
	"github.com/vk/tradegrid/internal/executor"
)

// Run executes the main application logic: assemble the pipeline, drive the
// configured number of execution cycles, tear the pipeline down.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.config.HealthcheckPort > 0 {
		a.startHealthcheckServer(a.config.HealthcheckPort)
	}

	a.logger.Debug("Assembling pipeline from document...")
	pipe, err := assembler.Assemble(ctx, a.document, a.registry)
	if err != nil {
		return fmt.Errorf("failed to assemble pipeline: %w", err)
	}
	defer pipe.Teardown(ctx)
	a.logger.Info("🚀 Pipeline assembled, starting execution.", "modules", pipe.Len())

	exec := executor.New(pipe, a.config.WorkerCount)

	if a.config.Cycles == 0 {
		if err := executor.Loop(ctx, exec, a.config.Interval); err != nil {
			return fmt.Errorf("execution loop failed: %w", err)
		}
		a.logger.Info("🏁 Execution finished.")
		return nil
	}

	var firstAbort error
	for i := 0; i < a.config.Cycles; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return firstAbort
			case <-time.After(a.config.Interval):
			}
		}
		res, err := exec.RunCycle(ctx)
		switch {
		case err != nil && ctx.Err() != nil:
			return firstAbort
		case err != nil:
			a.logger.Error("Cycle aborted.", "cycle", res.Cycle, "error", err)
			if firstAbort == nil {
				firstAbort = err
			}
		case res.Failed():
			a.logger.Warn("Cycle completed with module failures.", "cycle", res.Cycle,
				"failures", len(res.Failures), "skipped", len(res.Skipped))
		}
	}

	a.logger.Info("🏁 Execution finished.")
	return firstAbort
}
