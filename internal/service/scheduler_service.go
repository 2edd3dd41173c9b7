package service

import (
	"context"
	"math"

	"github.com/ankibridge/ankibridge-service/internal/domain"
	"github.com/ankibridge/ankibridge-service/internal/dto"
	"github.com/ankibridge/ankibridge-service/internal/model"
	"github.com/ankibridge/ankibridge-service/pkg/code"
	"github.com/ankibridge/ankibridge-service/pkg/errors"
	"github.com/ankibridge/ankibridge-service/pkg/logger"

	"go.uber.org/zap"
)

// Answer ease values.
const (
	EaseAgain = 1
	EaseHard  = 2
	EaseGood  = 3
	EaseEasy  = 4
)

const daySeconds = 24 * 60 * 60

// IsFsrsActive reports whether the FSRS scheduler is enabled.
func (s *Service) IsFsrsActive(ctx context.Context) (bool, error) {
	return s.cfg.Fsrs, nil
}

// AnswerCards applies review answers. The reply holds one entry per
// answer, false where the card does not exist. Suspended cards stay
// suspended but still reschedule.
func (s *Service) AnswerCards(ctx context.Context, answers []dto.CardAnswer) ([]bool, error) {
	out := make([]bool, 0, len(answers))
	for _, a := range answers {
		card, err := s.cards.GetByID(ctx, a.CardID)
		if err != nil {
			return nil, errors.NewAppError(code.ErrorServerInternal, err)
		}
		if card == nil {
			out = append(out, false)
			continue
		}
		if a.Ease < EaseAgain || a.Ease > EaseEasy {
			return nil, errors.NewAppError(code.ErrorCardAnswer, nil)
		}

		intervalBefore := card.Interval
		if s.cfg.Fsrs {
			s.answerFsrs(card, a.Ease)
		} else {
			s.answerSm2(card, a.Ease)
		}
		card.Reps++
		card.Mod = nowUnix()
		card.Due = card.Mod + int64(card.Interval)*daySeconds

		if err := s.cards.Update(ctx, card); err != nil {
			return nil, errors.NewAppError(code.ErrorServerInternal, err)
		}

		_, err = s.reviews.Create(ctx, &domain.ReviewLog{
			CardID:          card.ID,
			Ease:            a.Ease,
			IntervalBefore:  intervalBefore,
			IntervalAfter:   card.Interval,
			FactorAfter:     card.Factor,
			StabilityAfter:  card.Stability,
			DifficultyAfter: card.Difficulty,
			ReviewedAt:      timeNow(),
		})
		if err != nil {
			return nil, errors.NewAppError(code.ErrorServerInternal, err)
		}

		s.logger.Debug("card answered",
			zap.Int64(logger.FieldCardID, card.ID),
			zap.Int("ease", a.Ease),
			zap.Int("interval", card.Interval),
		)
		out = append(out, true)
	}
	return out, nil
}

// answerSm2 applies the SM-2 step. Factor is in permille with a floor of
// 1300.
func (s *Service) answerSm2(card *domain.Card, ease int) {
	switch ease {
	case EaseAgain:
		card.Lapses++
		card.Interval = 1
		card.Factor = maxInt(1300, card.Factor-200)
		card.Type = model.TypeRelearning
		if !suspendedQueue(card) {
			card.Queue = model.QueueLearning
		}
	case EaseHard:
		card.Interval = maxInt(card.Interval+1, card.Interval*6/5)
		card.Factor = maxInt(1300, card.Factor-150)
		promote(card)
	case EaseGood:
		card.Interval = maxInt(card.Interval+1, card.Interval*card.Factor/1000)
		promote(card)
	case EaseEasy:
		card.Interval = maxInt(card.Interval+1, card.Interval*card.Factor/1000*13/10)
		card.Factor += 150
		promote(card)
	}
}

// answerFsrs applies a compact FSRS step: difficulty drifts with the
// answer, stability grows on success and collapses on a lapse, and the
// next interval is the 90% retention point.
func (s *Service) answerFsrs(card *domain.Card, ease int) {
	if card.Difficulty == 0 {
		card.Difficulty = 5.0
	}
	if card.Stability == 0 {
		card.Stability = 1.0
	}

	card.Difficulty = clampFloat(card.Difficulty+float64(EaseGood-ease)*0.8, 1.0, 10.0)

	switch ease {
	case EaseAgain:
		card.Lapses++
		card.Stability = math.Max(0.5, card.Stability*0.3)
		card.Type = model.TypeRelearning
		if !suspendedQueue(card) {
			card.Queue = model.QueueLearning
		}
	default:
		growth := 1.0 + (11.0-card.Difficulty)*0.1*float64(ease-1)
		card.Stability *= growth
		promote(card)
	}

	// Stability is measured in days at 90% retention.
	card.Interval = maxInt(1, int(math.Round(card.Stability)))
}

// promote moves a non-suspended card into the review queue.
func promote(card *domain.Card) {
	card.Type = model.TypeReview
	if !suspendedQueue(card) {
		card.Queue = model.QueueReview
	}
}

func suspendedQueue(card *domain.Card) bool {
	return card.Queue == model.QueueSuspended
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
