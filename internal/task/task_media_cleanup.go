package task

import (
	"context"
	"strings"
	"time"

	"github.com/ankibridge/ankibridge-service/pkg/storage"

	"go.uber.org/zap"
)

// MediaCleanupTask deletes leftover temporary files from the media store.
// Interrupted uploads leave ".tmp" files behind.
type MediaCleanupTask struct {
	Store    storage.Storager
	Interval time.Duration
	Logger   *zap.Logger
}

func (t *MediaCleanupTask) Name() string { return "media_cleanup" }

func (t *MediaCleanupTask) LoopInterval() time.Duration {
	if t.Interval <= 0 {
		return time.Hour
	}
	return t.Interval
}

func (t *MediaCleanupTask) IsStartupRun() bool { return true }

func (t *MediaCleanupTask) Run(ctx context.Context) error {
	keys, err := t.Store.List()
	if err != nil {
		return err
	}
	removed := 0
	for _, key := range keys {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if !strings.HasSuffix(key, ".tmp") {
			continue
		}
		if err := t.Store.Delete(key); err != nil {
			return err
		}
		removed++
	}
	if t.Logger != nil && removed > 0 {
		t.Logger.Info("media temp files removed", zap.Int("count", removed))
	}
	return nil
}
