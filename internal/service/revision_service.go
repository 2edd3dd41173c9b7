package service

import (
	"context"
	"strings"

	"github.com/ankibridge/ankibridge-service/internal/domain"
	"github.com/ankibridge/ankibridge-service/pkg/code"
	"github.com/ankibridge/ankibridge-service/pkg/errors"
	"github.com/ankibridge/ankibridge-service/pkg/logger"
	"github.com/ankibridge/ankibridge-service/pkg/util"

	dmp "github.com/sergi/go-diff/diffmatchpatch"
	"go.uber.org/zap"
)

// fieldSep joins a note's fields into one revision text. The unit
// separator cannot appear in field content.
const fieldSep = "\x1f"

// recordRevisionAsync stores a patch from the new field state back to the
// previous one. The write happens on the worker pool so note updates do
// not wait on history bookkeeping.
func (s *Service) recordRevisionAsync(noteID int64, before []string, after []string) {
	if s.cfg.RevisionLimit <= 0 || s.pool == nil {
		return
	}
	beforeText := strings.Join(before, fieldSep)
	afterText := strings.Join(after, fieldSep)

	err := s.pool.SubmitAsync(context.Background(), func(ctx context.Context) error {
		differ := dmp.New()
		patches := differ.PatchMake(afterText, beforeText)
		rev := &domain.NoteRevision{
			NoteID:     noteID,
			Patch:      differ.PatchToText(patches),
			FieldsHash: util.EncodeSHA1(beforeText),
		}
		if _, err := s.revisions.Create(ctx, rev); err != nil {
			return err
		}
		return s.revisions.PruneToCount(ctx, noteID, s.cfg.RevisionLimit)
	})
	if err != nil {
		s.logger.Warn("revision write not queued", zap.Int64(logger.FieldNoteID, noteID), zap.Error(err))
	}
}

// NoteRevisions returns a note's stored revisions, newest first.
func (s *Service) NoteRevisions(ctx context.Context, noteID int64) ([]*domain.NoteRevision, error) {
	revs, err := s.revisions.ListByNoteID(ctx, noteID)
	if err != nil {
		return nil, errors.NewAppError(code.ErrorServerInternal, err)
	}
	return revs, nil
}

// PruneAllRevisions trims every note's history down to the configured
// limit. The background task calls this periodically.
func (s *Service) PruneAllRevisions(ctx context.Context) (int, error) {
	if s.cfg.RevisionLimit <= 0 {
		return 0, nil
	}
	noteIDs, err := s.revisions.ListNoteIDs(ctx)
	if err != nil {
		return 0, errors.NewAppError(code.ErrorServerInternal, err)
	}
	for _, id := range noteIDs {
		if err := s.revisions.PruneToCount(ctx, id, s.cfg.RevisionLimit); err != nil {
			return 0, errors.NewAppError(code.ErrorServerInternal, err)
		}
	}
	return len(noteIDs), nil
}
