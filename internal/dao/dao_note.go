package dao

import (
	"context"

	"github.com/ankibridge/ankibridge-service/internal/domain"
	"github.com/ankibridge/ankibridge-service/internal/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type noteRepository struct {
	dao *Dao
}

// NewNoteRepository returns the note repository backed by this Dao.
func (d *Dao) NewNoteRepository() domain.NoteRepository {
	return &noteRepository{dao: d}
}

func (r *noteRepository) GetByID(ctx context.Context, id int64) (*domain.Note, error) {
	var m model.Note
	err := r.dao.DB(ctx).Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "note get by id")
	}
	return noteToDomain(&m), nil
}

func (r *noteRepository) ListByIDs(ctx context.Context, ids []int64) ([]*domain.Note, error) {
	if len(ids) == 0 {
		return []*domain.Note{}, nil
	}
	var ms []*model.Note
	if err := r.dao.DB(ctx).Where("id IN ?", ids).Find(&ms).Error; err != nil {
		return nil, errors.Wrap(err, "note list by ids")
	}
	return notesToDomain(ms), nil
}

func (r *noteRepository) ListAll(ctx context.Context) ([]*domain.Note, error) {
	var ms []*model.Note
	if err := r.dao.DB(ctx).Find(&ms).Error; err != nil {
		return nil, errors.Wrap(err, "note list all")
	}
	return notesToDomain(ms), nil
}

func (r *noteRepository) ListByChecksum(ctx context.Context, modelID int64, checksum string) ([]*domain.Note, error) {
	var ms []*model.Note
	err := r.dao.DB(ctx).
		Where("model_id = ? AND checksum = ?", modelID, checksum).
		Find(&ms).Error
	if err != nil {
		return nil, errors.Wrap(err, "note list by checksum")
	}
	return notesToDomain(ms), nil
}

func (r *noteRepository) Create(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	m := noteToModel(note)
	if err := r.dao.DB(ctx).Create(m).Error; err != nil {
		return nil, errors.Wrap(err, "note create")
	}
	return noteToDomain(m), nil
}

func (r *noteRepository) Update(ctx context.Context, note *domain.Note) error {
	m := noteToModel(note)
	if err := r.dao.DB(ctx).Where("id = ?", m.ID).Save(m).Error; err != nil {
		return errors.Wrap(err, "note update")
	}
	return nil
}

func (r *noteRepository) Delete(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	if err := r.dao.DB(ctx).Where("id IN ?", ids).Delete(&model.Note{}).Error; err != nil {
		return errors.Wrap(err, "note delete")
	}
	return nil
}

func notesToDomain(ms []*model.Note) []*domain.Note {
	out := make([]*domain.Note, 0, len(ms))
	for _, m := range ms {
		out = append(out, noteToDomain(m))
	}
	return out
}
