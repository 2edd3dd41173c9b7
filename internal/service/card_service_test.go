package service

import (
	"testing"

	"github.com/ankibridge/ankibridge-service/internal/dto"
	"github.com/ankibridge/ankibridge-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardsInfoRendersTemplates(t *testing.T) {
	svc, ctx := newTestService(t, Config{})
	noteID := mustAddBasicNote(t, svc, ctx, "der Hund", "the dog")

	cards, err := svc.FindCards(ctx, "")
	require.NoError(t, err)
	require.Len(t, cards, 1)

	infos, err := svc.CardsInfo(ctx, cards)
	require.NoError(t, err)
	require.Len(t, infos, 1)

	info := infos[0]
	assert.Equal(t, cards[0], info.CardID)
	assert.Equal(t, noteID, info.NoteID)
	assert.Equal(t, "Default", info.DeckName)
	assert.Equal(t, "Basic", info.ModelName)
	assert.Equal(t, "der Hund", info.Question)
	assert.Equal(t, "der Hund<hr>the dog", info.Answer)
	assert.Equal(t, model.QueueNew, info.Queue)
	assert.Equal(t, model.InitialFactor, info.Factor)
}

func TestCardsToNotes(t *testing.T) {
	svc, ctx := newTestService(t, Config{})
	dog := mustAddBasicNote(t, svc, ctx, "der Hund", "the dog")
	cat := mustAddBasicNote(t, svc, ctx, "die Katze", "the cat")

	cards, err := svc.FindCards(ctx, "")
	require.NoError(t, err)
	require.Len(t, cards, 2)

	notes, err := svc.CardsToNotes(ctx, cards)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{dog, cat}, notes)
}

func TestSuspendLifecycle(t *testing.T) {
	svc, ctx := newTestService(t, Config{})
	mustAddBasicNote(t, svc, ctx, "der Hund", "the dog")

	cards, err := svc.FindCards(ctx, "")
	require.NoError(t, err)
	require.Len(t, cards, 1)

	changed, err := svc.Suspend(ctx, cards)
	require.NoError(t, err)
	assert.True(t, changed)

	states, err := svc.AreSuspended(ctx, append(cards, 99999))
	require.NoError(t, err)
	require.Len(t, states, 2)
	require.NotNil(t, states[0])
	assert.True(t, *states[0])
	assert.Nil(t, states[1])

	// Suspending again changes nothing.
	changed, err = svc.Suspend(ctx, cards)
	require.NoError(t, err)
	assert.False(t, changed)

	changed, err = svc.Unsuspend(ctx, cards)
	require.NoError(t, err)
	assert.True(t, changed)

	states, err = svc.AreSuspended(ctx, cards)
	require.NoError(t, err)
	require.NotNil(t, states[0])
	assert.False(t, *states[0])
}

func TestSuspendedCardsFoundByState(t *testing.T) {
	svc, ctx := newTestService(t, Config{})
	mustAddBasicNote(t, svc, ctx, "der Hund", "the dog")

	cards, err := svc.FindCards(ctx, "is:suspended")
	require.NoError(t, err)
	assert.Empty(t, cards)

	all, err := svc.FindCards(ctx, "")
	require.NoError(t, err)
	_, err = svc.Suspend(ctx, all)
	require.NoError(t, err)

	cards, err = svc.FindCards(ctx, "is:suspended")
	require.NoError(t, err)
	assert.Equal(t, all, cards)
}

func TestAnswerCardsSm2(t *testing.T) {
	svc, ctx := newTestService(t, Config{})
	mustAddBasicNote(t, svc, ctx, "der Hund", "the dog")

	cards, err := svc.FindCards(ctx, "")
	require.NoError(t, err)
	require.Len(t, cards, 1)

	oks, err := svc.AnswerCards(ctx, []dto.CardAnswer{
		{CardID: cards[0], Ease: EaseGood},
		{CardID: 99999, Ease: EaseGood},
	})
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false}, oks)

	infos, err := svc.CardsInfo(ctx, cards)
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, model.QueueReview, infos[0].Queue)
	assert.Equal(t, 1, infos[0].Reps)
	assert.GreaterOrEqual(t, infos[0].Interval, 1)
	assert.Greater(t, infos[0].Due, int64(0))
}

func TestAnswerCardsAgainLapses(t *testing.T) {
	svc, ctx := newTestService(t, Config{})
	mustAddBasicNote(t, svc, ctx, "der Hund", "the dog")

	cards, err := svc.FindCards(ctx, "")
	require.NoError(t, err)

	_, err = svc.AnswerCards(ctx, []dto.CardAnswer{{CardID: cards[0], Ease: EaseGood}})
	require.NoError(t, err)
	_, err = svc.AnswerCards(ctx, []dto.CardAnswer{{CardID: cards[0], Ease: EaseAgain}})
	require.NoError(t, err)

	infos, err := svc.CardsInfo(ctx, cards)
	require.NoError(t, err)
	assert.Equal(t, 1, infos[0].Lapses)
	assert.Equal(t, model.QueueLearning, infos[0].Queue)
	assert.Less(t, infos[0].Factor, model.InitialFactor)
}

func TestIsFsrsActive(t *testing.T) {
	svc, ctx := newTestService(t, Config{})
	active, err := svc.IsFsrsActive(ctx)
	require.NoError(t, err)
	assert.False(t, active)

	svc, ctx = newTestService(t, Config{Fsrs: true})
	active, err = svc.IsFsrsActive(ctx)
	require.NoError(t, err)
	assert.True(t, active)
}

func TestAnswerCardsFsrsMaintainsMemoryState(t *testing.T) {
	svc, ctx := newTestService(t, Config{Fsrs: true})
	mustAddBasicNote(t, svc, ctx, "der Hund", "the dog")

	cards, err := svc.FindCards(ctx, "")
	require.NoError(t, err)

	_, err = svc.AnswerCards(ctx, []dto.CardAnswer{{CardID: cards[0], Ease: EaseGood}})
	require.NoError(t, err)
	_, err = svc.AnswerCards(ctx, []dto.CardAnswer{{CardID: cards[0], Ease: EaseEasy}})
	require.NoError(t, err)

	infos, err := svc.CardsInfo(ctx, cards)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, infos[0].Interval, 1)
	assert.Equal(t, model.QueueReview, infos[0].Queue)
}

func TestAnswerCardsRejectsBadEase(t *testing.T) {
	svc, ctx := newTestService(t, Config{})
	mustAddBasicNote(t, svc, ctx, "der Hund", "the dog")

	cards, err := svc.FindCards(ctx, "")
	require.NoError(t, err)

	_, err = svc.AnswerCards(ctx, []dto.CardAnswer{{CardID: cards[0], Ease: 7}})
	require.Error(t, err)
}
