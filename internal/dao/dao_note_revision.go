package dao

import (
	"context"

	"github.com/ankibridge/ankibridge-service/internal/domain"
	"github.com/ankibridge/ankibridge-service/internal/model"

	"github.com/pkg/errors"
)

type noteRevisionRepository struct {
	dao *Dao
}

// NewNoteRevisionRepository returns the note revision repository backed by
// this Dao.
func (d *Dao) NewNoteRevisionRepository() domain.NoteRevisionRepository {
	return &noteRevisionRepository{dao: d}
}

func (r *noteRevisionRepository) Create(ctx context.Context, rev *domain.NoteRevision) (*domain.NoteRevision, error) {
	m := revisionToModel(rev)
	if err := r.dao.DB(ctx).Create(m).Error; err != nil {
		return nil, errors.Wrap(err, "note revision create")
	}
	return revisionToDomain(m), nil
}

func (r *noteRevisionRepository) ListByNoteID(ctx context.Context, noteID int64) ([]*domain.NoteRevision, error) {
	var ms []*model.NoteRevision
	err := r.dao.DB(ctx).
		Where("note_id = ?", noteID).
		Order("id desc").
		Find(&ms).Error
	if err != nil {
		return nil, errors.Wrap(err, "note revision list by note")
	}
	out := make([]*domain.NoteRevision, 0, len(ms))
	for _, m := range ms {
		out = append(out, revisionToDomain(m))
	}
	return out, nil
}

func (r *noteRevisionRepository) PruneToCount(ctx context.Context, noteID int64, keep int) error {
	if keep < 0 {
		keep = 0
	}
	var keepIDs []int64
	err := r.dao.DB(ctx).Model(&model.NoteRevision{}).
		Where("note_id = ?", noteID).
		Order("id desc").
		Limit(keep).
		Pluck("id", &keepIDs).Error
	if err != nil {
		return errors.Wrap(err, "note revision prune select")
	}
	q := r.dao.DB(ctx).Where("note_id = ?", noteID)
	if len(keepIDs) > 0 {
		q = q.Where("id NOT IN ?", keepIDs)
	}
	if err := q.Delete(&model.NoteRevision{}).Error; err != nil {
		return errors.Wrap(err, "note revision prune delete")
	}
	return nil
}

func (r *noteRevisionRepository) ListNoteIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	err := r.dao.DB(ctx).Model(&model.NoteRevision{}).
		Distinct("note_id").
		Pluck("note_id", &ids).Error
	if err != nil {
		return nil, errors.Wrap(err, "note revision list note ids")
	}
	return ids, nil
}

func (r *noteRevisionRepository) DeleteByNoteIDs(ctx context.Context, noteIDs []int64) error {
	if len(noteIDs) == 0 {
		return nil
	}
	err := r.dao.DB(ctx).
		Where("note_id IN ?", noteIDs).
		Delete(&model.NoteRevision{}).Error
	if err != nil {
		return errors.Wrap(err, "note revision delete by note ids")
	}
	return nil
}
