package dao

import (
	"context"

	"github.com/ankibridge/ankibridge-service/internal/domain"
	"github.com/ankibridge/ankibridge-service/internal/model"

	"github.com/pkg/errors"
)

type reviewLogRepository struct {
	dao *Dao
}

// NewReviewLogRepository returns the review log repository backed by this Dao.
func (d *Dao) NewReviewLogRepository() domain.ReviewLogRepository {
	return &reviewLogRepository{dao: d}
}

func (r *reviewLogRepository) Create(ctx context.Context, entry *domain.ReviewLog) (*domain.ReviewLog, error) {
	m := reviewLogToModel(entry)
	if err := r.dao.DB(ctx).Create(m).Error; err != nil {
		return nil, errors.Wrap(err, "review log create")
	}
	return reviewLogToDomain(m), nil
}

func (r *reviewLogRepository) ListByCardID(ctx context.Context, cardID int64) ([]*domain.ReviewLog, error) {
	var ms []*model.ReviewLog
	err := r.dao.DB(ctx).
		Where("card_id = ?", cardID).
		Order("reviewed_at desc").
		Find(&ms).Error
	if err != nil {
		return nil, errors.Wrap(err, "review log list by card")
	}
	out := make([]*domain.ReviewLog, 0, len(ms))
	for _, m := range ms {
		out = append(out, reviewLogToDomain(m))
	}
	return out, nil
}
