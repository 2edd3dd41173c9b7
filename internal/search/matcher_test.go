package search

import (
	"testing"
	"time"

	"github.com/ankibridge/ankibridge-service/internal/domain"
	"github.com/ankibridge/ankibridge-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func germanNote(now int64) *NoteContext {
	return &NoteContext{
		Note: &domain.Note{
			ID:     1,
			Fields: []string{"der <b>Hund</b>", "the dog"},
			Tags:   []string{"animals", "german"},
		},
		ModelName:  "Basic",
		FieldNames: []string{"Front", "Back"},
		DeckNames:  []string{"German::Vocab"},
		Cards: []*domain.Card{
			{ID: 10, Queue: model.QueueNew},
			{ID: 11, Queue: model.QueueReview, Due: now - 60},
		},
		Now: now,
	}
}

func TestQueryMatches(t *testing.T) {
	now := time.Now().Unix()
	nc := germanNote(now)

	tests := []struct {
		name  string
		query string
		want  bool
	}{
		{"empty query matches", "", true},
		{"word in field", "hund", true},
		{"word ignores html tags", "dog", true},
		{"missing word", "katze", false},
		{"negated missing word", "-katze", true},
		{"exact deck", `deck:"German::Vocab"`, true},
		{"parent deck matches subdeck", "deck:German", true},
		{"other deck", "deck:French", false},
		{"tag exact", "tag:animals", true},
		{"tag wildcard", "tag:anim*", true},
		{"tag case insensitive", "tag:ANIMALS", true},
		{"tag missing", "tag:leech", false},
		{"tag none on tagged note", "tag:none", false},
		{"note type", "note:Basic", true},
		{"note type mismatch", "note:Cloze", false},
		{"field value", "Front:*Hund*", true},
		{"field value wrong field", "Back:*Hund*", false},
		{"field name case insensitive", "front:*hund*", true},
		{"is new", "is:new", true},
		{"is due", "is:due", true},
		{"is suspended", "is:suspended", false},
		{"anded clauses", "deck:German tag:animals hund", true},
		{"anded clauses one fails", "deck:German tag:leech", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := Parse(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, q.Matches(nc))
		})
	}
}

func TestQueryMatchesUntaggedNote(t *testing.T) {
	nc := &NoteContext{
		Note:       &domain.Note{Fields: []string{"x"}},
		FieldNames: []string{"Front"},
	}
	q, err := Parse("tag:none")
	require.NoError(t, err)
	assert.True(t, q.Matches(nc))
}

func TestIsDueRespectsTimestamp(t *testing.T) {
	now := time.Now().Unix()
	nc := &NoteContext{
		Note:       &domain.Note{Fields: []string{"x"}},
		FieldNames: []string{"Front"},
		Cards: []*domain.Card{
			{Queue: model.QueueReview, Due: now + 3600},
		},
		Now: now,
	}
	q, err := Parse("is:due")
	require.NoError(t, err)
	assert.False(t, q.Matches(nc))
}
