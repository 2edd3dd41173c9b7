package dao

import (
	"context"

	"github.com/ankibridge/ankibridge-service/internal/domain"
	"github.com/ankibridge/ankibridge-service/internal/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type deckRepository struct {
	dao *Dao
}

// NewDeckRepository returns the deck repository backed by this Dao.
func (d *Dao) NewDeckRepository() domain.DeckRepository {
	return &deckRepository{dao: d}
}

func (r *deckRepository) GetByID(ctx context.Context, id int64) (*domain.Deck, error) {
	var m model.Deck
	err := r.dao.DB(ctx).Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "deck get by id")
	}
	return deckToDomain(&m), nil
}

func (r *deckRepository) GetByName(ctx context.Context, name string) (*domain.Deck, error) {
	var m model.Deck
	err := r.dao.DB(ctx).Where("name = ?", name).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "deck get by name")
	}
	return deckToDomain(&m), nil
}

func (r *deckRepository) List(ctx context.Context) ([]*domain.Deck, error) {
	var ms []*model.Deck
	if err := r.dao.DB(ctx).Order("name asc").Find(&ms).Error; err != nil {
		return nil, errors.Wrap(err, "deck list")
	}
	out := make([]*domain.Deck, 0, len(ms))
	for _, m := range ms {
		out = append(out, deckToDomain(m))
	}
	return out, nil
}

func (r *deckRepository) Create(ctx context.Context, deck *domain.Deck) (*domain.Deck, error) {
	m := deckToModel(deck)
	if err := r.dao.DB(ctx).Create(m).Error; err != nil {
		return nil, errors.Wrap(err, "deck create")
	}
	return deckToDomain(m), nil
}

func (r *deckRepository) Update(ctx context.Context, deck *domain.Deck) error {
	m := deckToModel(deck)
	if err := r.dao.DB(ctx).Where("id = ?", m.ID).Save(m).Error; err != nil {
		return errors.Wrap(err, "deck update")
	}
	return nil
}

func (r *deckRepository) Delete(ctx context.Context, id int64) error {
	if err := r.dao.DB(ctx).Where("id = ?", id).Delete(&model.Deck{}).Error; err != nil {
		return errors.Wrap(err, "deck delete")
	}
	return nil
}
