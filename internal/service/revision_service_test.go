package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/ankibridge/ankibridge-service/internal/domain"
	"github.com/ankibridge/ankibridge-service/internal/dto"
	"github.com/ankibridge/ankibridge-service/pkg/workerpool"

	dmp "github.com/sergi/go-diff/diffmatchpatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// withRevisionPool swaps in a real worker pool so async history writes run.
// The pool drains before the database and temp dir are torn down.
func withRevisionPool(t *testing.T, svc *Service) {
	t.Helper()
	cfg := workerpool.Config{MaxWorkers: 1, QueueSize: 16, WarningPercent: 0.8}
	svc.pool = workerpool.New(&cfg, zap.NewNop())
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		require.NoError(t, svc.pool.Shutdown(ctx))
	})
}

// waitForRevisions polls until the async history writes have landed.
func waitForRevisions(t *testing.T, svc *Service, noteID int64, want int) []*domain.NoteRevision {
	t.Helper()
	var out []*domain.NoteRevision
	require.Eventually(t, func() bool {
		revs, err := svc.NoteRevisions(context.Background(), noteID)
		if err != nil || len(revs) != want {
			return false
		}
		out = revs
		return true
	}, 3*time.Second, 20*time.Millisecond)
	return out
}

func TestUpdateNoteFieldsRecordsRevision(t *testing.T) {
	svc, ctx := newTestService(t, Config{RevisionLimit: 5})
	withRevisionPool(t, svc)

	noteID := mustAddBasicNote(t, svc, ctx, "der Hund", "the dog")

	require.NoError(t, svc.UpdateNoteFields(ctx, &dto.UpdateNoteInput{
		ID:     noteID,
		Fields: map[string]string{"Front": "die Katze"},
	}))

	revs := waitForRevisions(t, svc, noteID, 1)

	// The stored patch rebuilds the pre-edit state from the current one.
	differ := dmp.New()
	patches, err := differ.PatchFromText(revs[0].Patch)
	require.NoError(t, err)
	current := strings.Join([]string{"die Katze", "the dog"}, "\x1f")
	restored, applied := differ.PatchApply(patches, current)
	for _, ok := range applied {
		assert.True(t, ok)
	}
	assert.Equal(t, "der Hund\x1fthe dog", restored)
}

func TestRevisionHistoryIsPruned(t *testing.T) {
	svc, ctx := newTestService(t, Config{RevisionLimit: 2})
	withRevisionPool(t, svc)

	noteID := mustAddBasicNote(t, svc, ctx, "eins", "one")

	for _, front := range []string{"zwei", "drei", "vier"} {
		require.NoError(t, svc.UpdateNoteFields(ctx, &dto.UpdateNoteInput{
			ID:     noteID,
			Fields: map[string]string{"Front": front},
		}))
		waitForPoolIdle(t, svc)
	}

	revs := waitForRevisions(t, svc, noteID, 2)
	assert.Len(t, revs, 2)

	pruned, err := svc.PruneAllRevisions(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, pruned)
}

func TestRevisionsOffWhenLimitZero(t *testing.T) {
	svc, ctx := newTestService(t, Config{RevisionLimit: 0})
	withRevisionPool(t, svc)

	noteID := mustAddBasicNote(t, svc, ctx, "alt", "old")
	require.NoError(t, svc.UpdateNoteFields(ctx, &dto.UpdateNoteInput{
		ID:     noteID,
		Fields: map[string]string{"Front": "neu"},
	}))

	time.Sleep(100 * time.Millisecond)
	revs, err := svc.NoteRevisions(ctx, noteID)
	require.NoError(t, err)
	assert.Empty(t, revs)
}

func waitForPoolIdle(t *testing.T, svc *Service) {
	t.Helper()
	require.Eventually(t, func() bool {
		return svc.pool.ActiveCount() == 0 && svc.pool.QueuedCount() == 0
	}, 3*time.Second, 10*time.Millisecond)
}
