package service

import (
	"context"

	"github.com/ankibridge/ankibridge-service/internal/domain"
	"github.com/ankibridge/ankibridge-service/internal/dto"
	"github.com/ankibridge/ankibridge-service/internal/model"
	"github.com/ankibridge/ankibridge-service/internal/search"
	"github.com/ankibridge/ankibridge-service/pkg/code"
	"github.com/ankibridge/ankibridge-service/pkg/errors"
)

// FindCards returns the IDs of cards matching the query. Deck and state
// clauses apply per card, note clauses per owning note.
func (s *Service) FindCards(ctx context.Context, query string) ([]int64, error) {
	q, err := search.Parse(query)
	if err != nil {
		return nil, errors.NewAppError(code.ErrorSearchSyntax, err).WithDetails(err.Error())
	}

	notes, err := s.notes.ListAll(ctx)
	if err != nil {
		return nil, errors.NewAppError(code.ErrorServerInternal, err)
	}
	env, err := s.buildSearchEnv(ctx, notes)
	if err != nil {
		return nil, err
	}

	var ids []int64
	for _, n := range notes {
		for _, c := range env.cardsByNote[n.ID] {
			if q.IsEmpty() || q.Matches(env.contextForCard(n, c)) {
				ids = append(ids, c.ID)
			}
		}
	}
	if ids == nil {
		ids = []int64{}
	}
	return ids, nil
}

// contextForCard narrows a note's search context to a single card.
func (e *searchEnv) contextForCard(n *domain.Note, c *domain.Card) *search.NoteContext {
	var deckNames []string
	if name, ok := e.deckNames[c.DeckID]; ok {
		deckNames = []string{name}
	}
	return &search.NoteContext{
		Note:       n,
		ModelName:  e.modelNames[n.ModelID],
		FieldNames: e.modelFields[n.ModelID],
		DeckNames:  deckNames,
		Cards:      []*domain.Card{c},
		Now:        e.now,
	}
}

// CardsInfo returns the full payload of each card, including the rendered
// question and answer sides. Unknown IDs are silently skipped.
func (s *Service) CardsInfo(ctx context.Context, cardIDs []int64) ([]*dto.CardInfoResult, error) {
	cards, err := s.cards.ListByIDs(ctx, cardIDs)
	if err != nil {
		return nil, errors.NewAppError(code.ErrorServerInternal, err)
	}

	out := make([]*dto.CardInfoResult, 0, len(cards))
	for _, c := range cards {
		note, err := s.notes.GetByID(ctx, c.NoteID)
		if err != nil {
			return nil, errors.NewAppError(code.ErrorServerInternal, err)
		}
		if note == nil {
			continue
		}
		m, err := s.models.GetByID(ctx, note.ModelID)
		if err != nil {
			return nil, errors.NewAppError(code.ErrorServerInternal, err)
		}

		info := &dto.CardInfoResult{
			CardID:   c.ID,
			NoteID:   c.NoteID,
			Fields:   map[string]dto.NoteInfoField{},
			Ord:      c.Ord,
			Type:     c.Type,
			Queue:    c.Queue,
			Due:      c.Due,
			Interval: c.Interval,
			Factor:   c.Factor,
			Reps:     c.Reps,
			Lapses:   c.Lapses,
			Mod:      c.Mod,
		}

		if deck, err := s.decks.GetByID(ctx, c.DeckID); err == nil && deck != nil {
			info.DeckName = deck.Name
		}

		if m != nil {
			info.ModelName = m.Name
			names := m.FieldNames()
			for i, name := range names {
				if i >= len(note.Fields) {
					break
				}
				info.Fields[name] = dto.NoteInfoField{Value: note.Fields[i], Order: i}
			}
			for _, t := range m.Templates {
				if t.Ord != c.Ord {
					continue
				}
				info.Question = renderTemplate(t.Qfmt, names, note.Fields, "")
				info.Answer = renderTemplate(t.Afmt, names, note.Fields, info.Question)
				break
			}
		}
		out = append(out, info)
	}
	return out, nil
}

// CardsToNotes returns the distinct owning note IDs of the given cards, in
// first-seen order.
func (s *Service) CardsToNotes(ctx context.Context, cardIDs []int64) ([]int64, error) {
	cards, err := s.cards.ListByIDs(ctx, cardIDs)
	if err != nil {
		return nil, errors.NewAppError(code.ErrorServerInternal, err)
	}
	seen := map[int64]bool{}
	out := make([]int64, 0, len(cards))
	for _, c := range cards {
		if !seen[c.NoteID] {
			seen[c.NoteID] = true
			out = append(out, c.NoteID)
		}
	}
	return out, nil
}

// Suspend moves the cards into the suspended queue. It reports whether any
// card actually changed.
func (s *Service) Suspend(ctx context.Context, cardIDs []int64) (bool, error) {
	cards, err := s.cards.ListByIDs(ctx, cardIDs)
	if err != nil {
		return false, errors.NewAppError(code.ErrorServerInternal, err)
	}
	var toChange []int64
	for _, c := range cards {
		if !c.IsSuspended() {
			toChange = append(toChange, c.ID)
		}
	}
	if len(toChange) == 0 {
		return false, nil
	}
	if err := s.cards.UpdateQueue(ctx, toChange, model.QueueSuspended, nowUnix()); err != nil {
		return false, errors.NewAppError(code.ErrorServerInternal, err)
	}
	return true, nil
}

// Unsuspend returns suspended cards to the queue implied by their type.
func (s *Service) Unsuspend(ctx context.Context, cardIDs []int64) (bool, error) {
	cards, err := s.cards.ListByIDs(ctx, cardIDs)
	if err != nil {
		return false, errors.NewAppError(code.ErrorServerInternal, err)
	}
	changed := false
	now := nowUnix()
	for _, c := range cards {
		if !c.IsSuspended() {
			continue
		}
		queue := model.QueueNew
		switch c.Type {
		case model.TypeLearning, model.TypeRelearning:
			queue = model.QueueLearning
		case model.TypeReview:
			queue = model.QueueReview
		}
		if err := s.cards.UpdateQueue(ctx, []int64{c.ID}, queue, now); err != nil {
			return false, errors.NewAppError(code.ErrorServerInternal, err)
		}
		changed = true
	}
	return changed, nil
}

// AreSuspended reports the suspension state per card, nil for unknown IDs.
func (s *Service) AreSuspended(ctx context.Context, cardIDs []int64) ([]*bool, error) {
	cards, err := s.cards.ListByIDs(ctx, cardIDs)
	if err != nil {
		return nil, errors.NewAppError(code.ErrorServerInternal, err)
	}
	byID := make(map[int64]*domain.Card, len(cards))
	for _, c := range cards {
		byID[c.ID] = c
	}
	out := make([]*bool, 0, len(cardIDs))
	for _, id := range cardIDs {
		c, ok := byID[id]
		if !ok {
			out = append(out, nil)
			continue
		}
		suspended := c.IsSuspended()
		out = append(out, &suspended)
	}
	return out, nil
}
