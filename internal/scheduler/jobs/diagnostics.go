package jobs

import (
	"context"
	"fmt"

	"github.com/macrolens/backend/internal/contracts"
	"github.com/macrolens/backend/internal/engine"
	"github.com/macrolens/backend/pkg/logger"
)

// DiagnosticsJob runs the invariants checker across the universe and
// logs the outcome. Results feed monitoring only; a failing invariant
// never stops the pipeline.
type DiagnosticsJob struct {
	engine *engine.Engine
	logger *logger.Logger
}

// NewDiagnosticsJob creates the diagnostics job.
func NewDiagnosticsJob(eng *engine.Engine, log *logger.Logger) *DiagnosticsJob {
	return &DiagnosticsJob{
		engine: eng,
		logger: log,
	}
}

// Name returns the job name.
func (j *DiagnosticsJob) Name() string {
	return "diagnostics"
}

// Schedule runs each morning before the European session.
func (j *DiagnosticsJob) Schedule() string {
	return "0 0 6 * * 1-5"
}

// Run executes the checks and summarizes the outcome.
func (j *DiagnosticsJob) Run(ctx context.Context) error {
	diags, err := j.engine.Diagnostics(ctx)
	if err != nil {
		return fmt.Errorf("run diagnostics: %w", err)
	}

	var warns, fails int
	for symbol, results := range diags {
		for _, r := range results {
			switch r.Level {
			case contracts.LevelWarn:
				warns++
				j.logger.WithFields(map[string]interface{}{
					"symbol":  symbol,
					"check":   r.Name,
					"message": r.Message,
				}).Warn("Invariant warning")
			case contracts.LevelFail:
				fails++
			}
		}
	}

	j.logger.WithFields(map[string]interface{}{
		"assets": len(diags),
		"warns":  warns,
		"fails":  fails,
	}).Info("Diagnostics completed")
	return nil
}
