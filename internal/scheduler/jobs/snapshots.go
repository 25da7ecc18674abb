package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/macrolens/backend/internal/contracts"
	"github.com/macrolens/backend/internal/factors"
	"github.com/macrolens/backend/internal/weights"
	"github.com/macrolens/backend/pkg/logger"
)

// SnapshotRefreshJob derives a fresh factor snapshot and stores it for
// every universe asset. The sub-scores are shared across assets; the
// per-asset weight tables turn them into direction.
type SnapshotRefreshJob struct {
	deriver   *factors.Deriver
	snapshots contracts.FactorSnapshotRepository
	universe  *weights.Universe
	logger    *logger.Logger
}

// NewSnapshotRefreshJob creates the snapshot refresh job.
func NewSnapshotRefreshJob(deriver *factors.Deriver, snapshots contracts.FactorSnapshotRepository, universe *weights.Universe, log *logger.Logger) *SnapshotRefreshJob {
	return &SnapshotRefreshJob{
		deriver:   deriver,
		snapshots: snapshots,
		universe:  universe,
		logger:    log,
	}
}

// Name returns the job name.
func (j *SnapshotRefreshJob) Name() string {
	return "factor_snapshot_refresh"
}

// Schedule runs nightly after the correlation refresh.
func (j *SnapshotRefreshJob) Schedule() string {
	return "0 30 23 * * 1-5"
}

// Run derives and persists the snapshot.
func (j *SnapshotRefreshJob) Run(ctx context.Context) error {
	asOf := time.Now().UTC()

	inputs, err := j.deriver.Derive(ctx, asOf)
	if err != nil {
		return fmt.Errorf("derive factors: %w", err)
	}
	if inputs.IsEmpty() {
		j.logger.Warn("Derived factor snapshot is entirely empty")
	}

	for _, symbol := range j.universe.Symbols() {
		if err := j.snapshots.Save(ctx, symbol, inputs, asOf); err != nil {
			return fmt.Errorf("save snapshot for %s: %w", symbol, err)
		}
	}

	j.logger.WithField("assets", len(j.universe.Assets)).Info("Factor snapshots refreshed")
	return nil
}
