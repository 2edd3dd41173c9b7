package service

import (
	"testing"

	"github.com/ankibridge/ankibridge-service/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddNote(t *testing.T) {
	svc, ctx := newTestService(t, Config{})
	ensureBasicModel(t, svc, ctx)

	id, err := svc.AddNote(ctx, basicNote("Default", "der Hund", "the dog"))
	require.NoError(t, err)
	assert.NotZero(t, id)

	infos, err := svc.NotesInfo(ctx, []int64{id})
	require.NoError(t, err)
	require.Len(t, infos, 1)

	info := infos[0]
	assert.Equal(t, id, info.NoteID)
	assert.Equal(t, "Basic", info.ModelName)
	assert.Equal(t, "der Hund", info.Fields["Front"].Value)
	assert.Equal(t, 0, info.Fields["Front"].Order)
	assert.Equal(t, "the dog", info.Fields["Back"].Value)
	assert.NotZero(t, info.Mod)
	assert.Len(t, info.Cards, 1)
}

func TestAddNoteRejectsDuplicate(t *testing.T) {
	svc, ctx := newTestService(t, Config{})
	ensureBasicModel(t, svc, ctx)

	_, err := svc.AddNote(ctx, basicNote("Default", "der Hund", "the dog"))
	require.NoError(t, err)

	_, err = svc.AddNote(ctx, basicNote("Default", "der Hund", "anything"))
	require.Error(t, err)

	// Same first field is fine when the caller allows duplicates.
	dup := basicNote("Default", "der Hund", "anything")
	dup.Options = &dto.NoteOptions{AllowDuplicate: true}
	_, err = svc.AddNote(ctx, dup)
	require.NoError(t, err)
}

func TestAddNoteRejectsEmptyFirstField(t *testing.T) {
	svc, ctx := newTestService(t, Config{})
	ensureBasicModel(t, svc, ctx)

	_, err := svc.AddNote(ctx, basicNote("Default", "", "the dog"))
	require.Error(t, err)

	// HTML-only content counts as empty.
	_, err = svc.AddNote(ctx, basicNote("Default", "<br>", "the dog"))
	require.Error(t, err)
}

func TestAddNoteRejectsUnknownField(t *testing.T) {
	svc, ctx := newTestService(t, Config{})
	ensureBasicModel(t, svc, ctx)

	_, err := svc.AddNote(ctx, &dto.NoteInput{
		DeckName:  "Default",
		ModelName: "Basic",
		Fields:    map[string]string{"Front": "x", "Bogus": "y"},
	})
	require.Error(t, err)
}

func TestAddNotesReportsPerNoteOutcome(t *testing.T) {
	svc, ctx := newTestService(t, Config{})
	ensureBasicModel(t, svc, ctx)

	ids, err := svc.AddNotes(ctx, []*dto.NoteInput{
		basicNote("Default", "eins", "one"),
		basicNote("Default", "", "broken"),
		basicNote("Default", "zwei", "two"),
	})
	require.NoError(t, err)
	require.Len(t, ids, 3)
	assert.NotNil(t, ids[0])
	assert.Nil(t, ids[1])
	assert.NotNil(t, ids[2])
}

func TestCanAddNotes(t *testing.T) {
	svc, ctx := newTestService(t, Config{})
	mustAddBasicNote(t, svc, ctx, "der Hund", "the dog")

	oks, err := svc.CanAddNotes(ctx, []*dto.NoteInput{
		basicNote("Default", "die Katze", "the cat"),
		basicNote("Default", "der Hund", "duplicate"),
		basicNote("Default", "", "empty"),
	})
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false, false}, oks)
}

func TestUpdateNoteFieldsBumpsMod(t *testing.T) {
	svc, ctx := newTestService(t, Config{})
	id := mustAddBasicNote(t, svc, ctx, "der Hund", "the dog")

	before, err := svc.NotesModTime(ctx, []int64{id})
	require.NoError(t, err)
	require.Len(t, before, 1)

	err = svc.UpdateNoteFields(ctx, &dto.UpdateNoteInput{
		ID:     id,
		Fields: map[string]string{"Back": "the hound"},
	})
	require.NoError(t, err)

	infos, err := svc.NotesInfo(ctx, []int64{id})
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, "the hound", infos[0].Fields["Back"].Value)
	assert.Equal(t, "der Hund", infos[0].Fields["Front"].Value)
	assert.GreaterOrEqual(t, infos[0].Mod, before[0].Mod)
}

func TestUpdateNoteFieldsUnknownNote(t *testing.T) {
	svc, ctx := newTestService(t, Config{})
	err := svc.UpdateNoteFields(ctx, &dto.UpdateNoteInput{
		ID:     12345,
		Fields: map[string]string{"Front": "x"},
	})
	require.Error(t, err)
}

func TestAddAndRemoveTags(t *testing.T) {
	svc, ctx := newTestService(t, Config{})
	id := mustAddBasicNote(t, svc, ctx, "der Hund", "the dog")

	require.NoError(t, svc.AddTags(ctx, []int64{id}, "german animals"))

	infos, err := svc.NotesInfo(ctx, []int64{id})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"german", "animals"}, infos[0].Tags)

	require.NoError(t, svc.RemoveTags(ctx, []int64{id}, "animals"))
	infos, err = svc.NotesInfo(ctx, []int64{id})
	require.NoError(t, err)
	assert.Equal(t, []string{"german"}, infos[0].Tags)
}

func TestDeleteNotesRemovesCards(t *testing.T) {
	svc, ctx := newTestService(t, Config{})
	id := mustAddBasicNote(t, svc, ctx, "der Hund", "the dog")

	require.NoError(t, svc.DeleteNotes(ctx, []int64{id}))

	infos, err := svc.NotesInfo(ctx, []int64{id})
	require.NoError(t, err)
	assert.Empty(t, infos)

	cards, err := svc.FindCards(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, cards)
}

func TestFindNotes(t *testing.T) {
	svc, ctx := newTestService(t, Config{})
	dog := mustAddBasicNote(t, svc, ctx, "der Hund", "the dog")
	cat := mustAddBasicNote(t, svc, ctx, "die Katze", "the cat")
	require.NoError(t, svc.AddTags(ctx, []int64{dog}, "animals"))

	all, err := svc.FindNotes(ctx, "")
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{dog, cat}, all)

	tagged, err := svc.FindNotes(ctx, "tag:animals")
	require.NoError(t, err)
	assert.Equal(t, []int64{dog}, tagged)

	byWord, err := svc.FindNotes(ctx, "katze")
	require.NoError(t, err)
	assert.Equal(t, []int64{cat}, byWord)

	byDeck, err := svc.FindNotes(ctx, "deck:Default -tag:animals")
	require.NoError(t, err)
	assert.Equal(t, []int64{cat}, byDeck)

	_, err = svc.FindNotes(ctx, `deck:"broken`)
	require.Error(t, err)
}

func TestNotesModTime(t *testing.T) {
	svc, ctx := newTestService(t, Config{})
	id := mustAddBasicNote(t, svc, ctx, "der Hund", "the dog")

	mods, err := svc.NotesModTime(ctx, []int64{id, 99999})
	require.NoError(t, err)
	require.Len(t, mods, 1)
	assert.Equal(t, id, mods[0].NoteID)
	assert.NotZero(t, mods[0].Mod)
}
