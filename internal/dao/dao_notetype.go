package dao

import (
	"context"

	"github.com/ankibridge/ankibridge-service/internal/domain"
	"github.com/ankibridge/ankibridge-service/internal/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type noteTypeRepository struct {
	dao *Dao
}

// NewNoteTypeRepository returns the note type repository backed by this Dao.
func (d *Dao) NewNoteTypeRepository() domain.NoteTypeRepository {
	return &noteTypeRepository{dao: d}
}

func (r *noteTypeRepository) GetByID(ctx context.Context, id int64) (*domain.NoteType, error) {
	var m model.NoteType
	err := r.dao.DB(ctx).Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "note type get by id")
	}
	return noteTypeToDomain(&m), nil
}

func (r *noteTypeRepository) GetByName(ctx context.Context, name string) (*domain.NoteType, error) {
	var m model.NoteType
	err := r.dao.DB(ctx).Where("name = ?", name).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "note type get by name")
	}
	return noteTypeToDomain(&m), nil
}

func (r *noteTypeRepository) List(ctx context.Context) ([]*domain.NoteType, error) {
	var ms []*model.NoteType
	if err := r.dao.DB(ctx).Order("name asc").Find(&ms).Error; err != nil {
		return nil, errors.Wrap(err, "note type list")
	}
	out := make([]*domain.NoteType, 0, len(ms))
	for _, m := range ms {
		out = append(out, noteTypeToDomain(m))
	}
	return out, nil
}

func (r *noteTypeRepository) Create(ctx context.Context, nt *domain.NoteType) (*domain.NoteType, error) {
	m := noteTypeToModel(nt)
	if err := r.dao.DB(ctx).Create(m).Error; err != nil {
		return nil, errors.Wrap(err, "note type create")
	}
	return noteTypeToDomain(m), nil
}

func (r *noteTypeRepository) Update(ctx context.Context, nt *domain.NoteType) error {
	m := noteTypeToModel(nt)
	if err := r.dao.DB(ctx).Where("id = ?", m.ID).Save(m).Error; err != nil {
		return errors.Wrap(err, "note type update")
	}
	return nil
}

func (r *noteTypeRepository) Delete(ctx context.Context, id int64) error {
	if err := r.dao.DB(ctx).Where("id = ?", id).Delete(&model.NoteType{}).Error; err != nil {
		return errors.Wrap(err, "note type delete")
	}
	return nil
}
