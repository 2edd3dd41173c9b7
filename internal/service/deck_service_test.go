package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateDeckBuildsHierarchy(t *testing.T) {
	svc, ctx := newTestService(t, Config{})

	id, err := svc.CreateDeck(ctx, "German::Vocab::Animals")
	require.NoError(t, err)
	assert.NotZero(t, id)

	names, err := svc.DeckNames(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		"Default",
		"German",
		"German::Vocab",
		"German::Vocab::Animals",
	}, names)

	// Creating again returns the same deck.
	again, err := svc.CreateDeck(ctx, "German::Vocab::Animals")
	require.NoError(t, err)
	assert.Equal(t, id, again)
}

func TestDeleteDecksMovesCardsToDefault(t *testing.T) {
	svc, ctx := newTestService(t, Config{})
	ensureBasicModel(t, svc, ctx)

	_, err := svc.AddNote(ctx, basicNote("German", "der Hund", "the dog"))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteDecks(ctx, []string{"German"}, false))

	names, err := svc.DeckNames(ctx)
	require.NoError(t, err)
	assert.NotContains(t, names, "German")

	// The note's card survived in Default.
	ids, err := svc.FindCards(ctx, "deck:Default")
	require.NoError(t, err)
	assert.Len(t, ids, 1)
}

func TestDeleteDecksWithCards(t *testing.T) {
	svc, ctx := newTestService(t, Config{})
	ensureBasicModel(t, svc, ctx)

	noteID, err := svc.AddNote(ctx, basicNote("German", "der Hund", "the dog"))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteDecks(ctx, []string{"German"}, true))

	infos, err := svc.NotesInfo(ctx, []int64{noteID})
	require.NoError(t, err)
	assert.Empty(t, infos)
}

func TestDeleteDefaultDeckRefused(t *testing.T) {
	svc, ctx := newTestService(t, Config{})
	require.Error(t, svc.DeleteDecks(ctx, []string{"Default"}, false))
}

func TestChangeDeck(t *testing.T) {
	svc, ctx := newTestService(t, Config{})
	noteID := mustAddBasicNote(t, svc, ctx, "der Hund", "the dog")

	cards, err := svc.FindCards(ctx, "")
	require.NoError(t, err)
	require.Len(t, cards, 1)

	require.NoError(t, svc.ChangeDeck(ctx, cards, "Moved"))

	moved, err := svc.FindCards(ctx, "deck:Moved")
	require.NoError(t, err)
	assert.Equal(t, cards, moved)

	// The owning note is untouched.
	infos, err := svc.NotesInfo(ctx, []int64{noteID})
	require.NoError(t, err)
	require.Len(t, infos, 1)
}

func TestGetDeckStats(t *testing.T) {
	svc, ctx := newTestService(t, Config{})
	mustAddBasicNote(t, svc, ctx, "der Hund", "the dog")
	mustAddBasicNote(t, svc, ctx, "die Katze", "the cat")

	stats, err := svc.GetDeckStats(ctx, []string{"Default"})
	require.NoError(t, err)
	require.Len(t, stats, 1)
	for _, s := range stats {
		assert.Equal(t, "Default", s.Name)
		assert.EqualValues(t, 2, s.TotalInDeck)
		assert.EqualValues(t, 2, s.NewCount)
		assert.EqualValues(t, 0, s.DueCount)
	}

	_, err = svc.GetDeckStats(ctx, []string{"Missing"})
	require.Error(t, err)
}
