package task

import (
	"context"
	"time"

	"github.com/ankibridge/ankibridge-service/internal/service"

	"go.uber.org/zap"
)

// RevisionPruneTask trims every note's revision history down to the
// configured limit.
type RevisionPruneTask struct {
	Svc      *service.Service
	Interval time.Duration
	Logger   *zap.Logger
}

func (t *RevisionPruneTask) Name() string { return "revision_prune" }

func (t *RevisionPruneTask) LoopInterval() time.Duration {
	if t.Interval <= 0 {
		return 6 * time.Hour
	}
	return t.Interval
}

func (t *RevisionPruneTask) IsStartupRun() bool { return false }

func (t *RevisionPruneTask) Run(ctx context.Context) error {
	pruned, err := t.Svc.PruneAllRevisions(ctx)
	if err != nil {
		return err
	}
	if t.Logger != nil && pruned > 0 {
		t.Logger.Debug("revision histories pruned", zap.Int("notes", pruned))
	}
	return nil
}
