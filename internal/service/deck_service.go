package service

import (
	"context"
	"strings"

	"github.com/ankibridge/ankibridge-service/internal/domain"
	"github.com/ankibridge/ankibridge-service/internal/dto"
	"github.com/ankibridge/ankibridge-service/pkg/code"
	"github.com/ankibridge/ankibridge-service/pkg/errors"
	"github.com/ankibridge/ankibridge-service/pkg/logger"
	"github.com/ankibridge/ankibridge-service/pkg/util"

	"go.uber.org/zap"
)

const defaultDeckName = "Default"

// DeckNames returns every deck name.
func (s *Service) DeckNames(ctx context.Context) ([]string, error) {
	decks, err := s.decks.List(ctx)
	if err != nil {
		return nil, errors.NewAppError(code.ErrorServerInternal, err)
	}
	names := make([]string, 0, len(decks))
	for _, d := range decks {
		names = append(names, d.Name)
	}
	return names, nil
}

// DeckNamesAndIds returns deck names mapped to their IDs.
func (s *Service) DeckNamesAndIds(ctx context.Context) (map[string]int64, error) {
	decks, err := s.decks.List(ctx)
	if err != nil {
		return nil, errors.NewAppError(code.ErrorServerInternal, err)
	}
	out := make(map[string]int64, len(decks))
	for _, d := range decks {
		out[d.Name] = d.ID
	}
	return out, nil
}

// CreateDeck creates a deck and any missing parents, returning the leaf
// deck's ID. Creating an existing deck is a no-op that returns its ID.
func (s *Service) CreateDeck(ctx context.Context, name string) (int64, error) {
	deck, err := s.GetOrCreateDeck(ctx, name)
	if err != nil {
		return 0, err
	}
	return deck.ID, nil
}

// GetOrCreateDeck resolves a deck name, creating the full "::" chain as
// needed.
func (s *Service) GetOrCreateDeck(ctx context.Context, name string) (*domain.Deck, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = defaultDeckName
	}

	parts := strings.Split(name, "::")
	var leaf *domain.Deck
	for i := range parts {
		fullName := strings.Join(parts[:i+1], "::")
		deck, err := s.decks.GetByName(ctx, fullName)
		if err != nil {
			return nil, errors.NewAppError(code.ErrorServerInternal, err)
		}
		if deck == nil {
			deck, err = s.decks.Create(ctx, &domain.Deck{
				ID:   util.NewID(),
				Name: fullName,
				Mod:  nowUnix(),
			})
			if err != nil {
				return nil, errors.NewAppError(code.ErrorServerInternal, err)
			}
			s.logger.Info("deck created", zap.String(logger.FieldDeck, fullName), zap.Int64("id", deck.ID))
		}
		leaf = deck
	}
	return leaf, nil
}

// DeleteDecks removes the named decks. Cards and their notes are deleted
// only when cardsToo is set; otherwise the cards fall back into Default.
// The Default deck itself is never deleted.
func (s *Service) DeleteDecks(ctx context.Context, names []string, cardsToo bool) error {
	for _, name := range names {
		if name == defaultDeckName {
			return errors.NewAppError(code.ErrorDeckDefault, nil)
		}
		deck, err := s.decks.GetByName(ctx, name)
		if err != nil {
			return errors.NewAppError(code.ErrorServerInternal, err)
		}
		if deck == nil {
			continue
		}

		cards, err := s.cards.ListByDeckID(ctx, deck.ID)
		if err != nil {
			return errors.NewAppError(code.ErrorServerInternal, err)
		}

		if cardsToo {
			if err := s.deleteCardsAndOrphanedNotes(ctx, cards); err != nil {
				return err
			}
		} else if len(cards) > 0 {
			fallback, err := s.GetOrCreateDeck(ctx, defaultDeckName)
			if err != nil {
				return err
			}
			ids := cardIDs(cards)
			if err := s.cards.MoveDeck(ctx, ids, fallback.ID, nowUnix()); err != nil {
				return errors.NewAppError(code.ErrorServerInternal, err)
			}
		}

		if err := s.decks.Delete(ctx, deck.ID); err != nil {
			return errors.NewAppError(code.ErrorServerInternal, err)
		}
		s.logger.Info("deck deleted", zap.String(logger.FieldDeck, name), zap.Bool("cardsToo", cardsToo))
	}
	return nil
}

// ChangeDeck moves cards into the named deck, creating it if missing.
func (s *Service) ChangeDeck(ctx context.Context, cardIDs []int64, deckName string) error {
	deck, err := s.GetOrCreateDeck(ctx, deckName)
	if err != nil {
		return err
	}
	if err := s.cards.MoveDeck(ctx, cardIDs, deck.ID, nowUnix()); err != nil {
		return errors.NewAppError(code.ErrorServerInternal, err)
	}
	return nil
}

// GetDeckStats returns per-deck counters keyed by deck ID.
func (s *Service) GetDeckStats(ctx context.Context, names []string) (map[string]dto.DeckStatsResult, error) {
	now := nowUnix()
	out := make(map[string]dto.DeckStatsResult, len(names))
	for _, name := range names {
		deck, err := s.decks.GetByName(ctx, name)
		if err != nil {
			return nil, errors.NewAppError(code.ErrorServerInternal, err)
		}
		if deck == nil {
			return nil, errors.NewAppError(code.ErrorDeckNotFound, nil).WithDetails(name)
		}
		cards, err := s.cards.ListByDeckID(ctx, deck.ID)
		if err != nil {
			return nil, errors.NewAppError(code.ErrorServerInternal, err)
		}

		stats := dto.DeckStatsResult{DeckID: deck.ID, Name: deck.Name}
		for _, c := range cards {
			stats.TotalInDeck++
			if c.Queue == 0 {
				stats.NewCount++
			}
			if (c.Queue == 1 || c.Queue == 2) && c.Due <= now {
				stats.DueCount++
			}
		}
		out[formatID(deck.ID)] = stats
	}
	return out, nil
}

// deleteCardsAndOrphanedNotes removes cards, then any notes left with no
// cards at all, along with their revisions.
func (s *Service) deleteCardsAndOrphanedNotes(ctx context.Context, cards []*domain.Card) error {
	if len(cards) == 0 {
		return nil
	}
	noteIDs := make([]int64, 0, len(cards))
	seen := map[int64]bool{}
	for _, c := range cards {
		if !seen[c.NoteID] {
			seen[c.NoteID] = true
			noteIDs = append(noteIDs, c.NoteID)
		}
	}

	if err := s.cards.Delete(ctx, cardIDs(cards)); err != nil {
		return errors.NewAppError(code.ErrorServerInternal, err)
	}

	var orphaned []int64
	for _, noteID := range noteIDs {
		remaining, err := s.cards.ListByNoteIDs(ctx, []int64{noteID})
		if err != nil {
			return errors.NewAppError(code.ErrorServerInternal, err)
		}
		if len(remaining) == 0 {
			orphaned = append(orphaned, noteID)
		}
	}
	if len(orphaned) == 0 {
		return nil
	}
	if err := s.notes.Delete(ctx, orphaned); err != nil {
		return errors.NewAppError(code.ErrorServerInternal, err)
	}
	if err := s.revisions.DeleteByNoteIDs(ctx, orphaned); err != nil {
		return errors.NewAppError(code.ErrorServerInternal, err)
	}
	return nil
}

func cardIDs(cards []*domain.Card) []int64 {
	ids := make([]int64, 0, len(cards))
	for _, c := range cards {
		ids = append(ids, c.ID)
	}
	return ids
}
