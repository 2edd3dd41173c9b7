package dao

import (
	"context"

	"github.com/ankibridge/ankibridge-service/internal/domain"
	"github.com/ankibridge/ankibridge-service/internal/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type mediaRepository struct {
	dao *Dao
}

// NewMediaRepository returns the media metadata repository backed by this Dao.
func (d *Dao) NewMediaRepository() domain.MediaRepository {
	return &mediaRepository{dao: d}
}

func (r *mediaRepository) GetByFilename(ctx context.Context, filename string) (*domain.MediaFile, error) {
	var m model.MediaFile
	err := r.dao.DB(ctx).Where("filename = ?", filename).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "media get by filename")
	}
	return mediaToDomain(&m), nil
}

func (r *mediaRepository) List(ctx context.Context) ([]*domain.MediaFile, error) {
	var ms []*model.MediaFile
	if err := r.dao.DB(ctx).Order("filename asc").Find(&ms).Error; err != nil {
		return nil, errors.Wrap(err, "media list")
	}
	out := make([]*domain.MediaFile, 0, len(ms))
	for _, m := range ms {
		out = append(out, mediaToDomain(m))
	}
	return out, nil
}

func (r *mediaRepository) Upsert(ctx context.Context, mf *domain.MediaFile) (*domain.MediaFile, error) {
	m := mediaToModel(mf)
	err := r.dao.DB(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "filename"}},
		DoUpdates: clause.AssignmentColumns([]string{"sha1", "size", "updated_at"}),
	}).Create(m).Error
	if err != nil {
		return nil, errors.Wrap(err, "media upsert")
	}
	return r.GetByFilename(ctx, m.Filename)
}

func (r *mediaRepository) DeleteByFilename(ctx context.Context, filename string) error {
	err := r.dao.DB(ctx).
		Where("filename = ?", filename).
		Delete(&model.MediaFile{}).Error
	if err != nil {
		return errors.Wrap(err, "media delete by filename")
	}
	return nil
}
