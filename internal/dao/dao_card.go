package dao

import (
	"context"

	"github.com/ankibridge/ankibridge-service/internal/domain"
	"github.com/ankibridge/ankibridge-service/internal/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type cardRepository struct {
	dao *Dao
}

// NewCardRepository returns the card repository backed by this Dao.
func (d *Dao) NewCardRepository() domain.CardRepository {
	return &cardRepository{dao: d}
}

func (r *cardRepository) GetByID(ctx context.Context, id int64) (*domain.Card, error) {
	var m model.Card
	err := r.dao.DB(ctx).Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "card get by id")
	}
	return cardToDomain(&m), nil
}

func (r *cardRepository) ListByIDs(ctx context.Context, ids []int64) ([]*domain.Card, error) {
	if len(ids) == 0 {
		return []*domain.Card{}, nil
	}
	var ms []*model.Card
	if err := r.dao.DB(ctx).Where("id IN ?", ids).Find(&ms).Error; err != nil {
		return nil, errors.Wrap(err, "card list by ids")
	}
	return cardsToDomain(ms), nil
}

func (r *cardRepository) ListByNoteIDs(ctx context.Context, noteIDs []int64) ([]*domain.Card, error) {
	if len(noteIDs) == 0 {
		return []*domain.Card{}, nil
	}
	var ms []*model.Card
	if err := r.dao.DB(ctx).Where("note_id IN ?", noteIDs).Find(&ms).Error; err != nil {
		return nil, errors.Wrap(err, "card list by note ids")
	}
	return cardsToDomain(ms), nil
}

func (r *cardRepository) ListByDeckID(ctx context.Context, deckID int64) ([]*domain.Card, error) {
	var ms []*model.Card
	if err := r.dao.DB(ctx).Where("deck_id = ?", deckID).Find(&ms).Error; err != nil {
		return nil, errors.Wrap(err, "card list by deck")
	}
	return cardsToDomain(ms), nil
}

func (r *cardRepository) ListAll(ctx context.Context) ([]*domain.Card, error) {
	var ms []*model.Card
	if err := r.dao.DB(ctx).Find(&ms).Error; err != nil {
		return nil, errors.Wrap(err, "card list all")
	}
	return cardsToDomain(ms), nil
}

func (r *cardRepository) Create(ctx context.Context, card *domain.Card) (*domain.Card, error) {
	m := cardToModel(card)
	if err := r.dao.DB(ctx).Create(m).Error; err != nil {
		return nil, errors.Wrap(err, "card create")
	}
	return cardToDomain(m), nil
}

func (r *cardRepository) Update(ctx context.Context, card *domain.Card) error {
	m := cardToModel(card)
	if err := r.dao.DB(ctx).Where("id = ?", m.ID).Save(m).Error; err != nil {
		return errors.Wrap(err, "card update")
	}
	return nil
}

func (r *cardRepository) UpdateQueue(ctx context.Context, ids []int64, queue int, mod int64) error {
	if len(ids) == 0 {
		return nil
	}
	err := r.dao.DB(ctx).Model(&model.Card{}).
		Where("id IN ?", ids).
		Updates(map[string]interface{}{"queue": queue, "mod": mod}).Error
	if err != nil {
		return errors.Wrap(err, "card update queue")
	}
	return nil
}

func (r *cardRepository) MoveDeck(ctx context.Context, ids []int64, deckID int64, mod int64) error {
	if len(ids) == 0 {
		return nil
	}
	err := r.dao.DB(ctx).Model(&model.Card{}).
		Where("id IN ?", ids).
		Updates(map[string]interface{}{"deck_id": deckID, "mod": mod}).Error
	if err != nil {
		return errors.Wrap(err, "card move deck")
	}
	return nil
}

func (r *cardRepository) DeleteByNoteIDs(ctx context.Context, noteIDs []int64) error {
	if len(noteIDs) == 0 {
		return nil
	}
	if err := r.dao.DB(ctx).Where("note_id IN ?", noteIDs).Delete(&model.Card{}).Error; err != nil {
		return errors.Wrap(err, "card delete by note ids")
	}
	return nil
}

func (r *cardRepository) Delete(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	if err := r.dao.DB(ctx).Where("id IN ?", ids).Delete(&model.Card{}).Error; err != nil {
		return errors.Wrap(err, "card delete")
	}
	return nil
}

func cardsToDomain(ms []*model.Card) []*domain.Card {
	out := make([]*domain.Card, 0, len(ms))
	for _, m := range ms {
		out = append(out, cardToDomain(m))
	}
	return out
}
