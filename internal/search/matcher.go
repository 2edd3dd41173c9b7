package search

import (
	"regexp"
	"strings"
	"sync"

	"github.com/ankibridge/ankibridge-service/internal/domain"
	"github.com/ankibridge/ankibridge-service/internal/model"
	"github.com/ankibridge/ankibridge-service/pkg/util"
)

// NoteContext bundles everything a query can inspect about one note.
type NoteContext struct {
	Note      *domain.Note
	ModelName string
	// FieldNames the note type's field names in ordinal order, parallel to
	// Note.Fields
	FieldNames []string
	// DeckNames the decks the note's cards sit in
	DeckNames []string
	Cards     []*domain.Card
	// Now unix timestamp used for is:due
	Now int64
}

// Matches reports whether the note satisfies every clause.
func (q *Query) Matches(nc *NoteContext) bool {
	for _, t := range q.Terms {
		if t.matches(nc) == t.Neg {
			return false
		}
	}
	return true
}

func (t Term) matches(nc *NoteContext) bool {
	switch t.Kind {
	case KindWord:
		needle := strings.ToLower(t.Value)
		for _, f := range nc.Note.Fields {
			if strings.Contains(strings.ToLower(util.StripHTML(f)), needle) {
				return true
			}
		}
		return false
	case KindDeck:
		for _, name := range nc.DeckNames {
			if WildcardMatch(t.Value, name) || deckPrefixMatch(t.Value, name) {
				return true
			}
		}
		return false
	case KindTag:
		if t.Value == "none" {
			return len(nc.Note.Tags) == 0
		}
		for _, tag := range nc.Note.Tags {
			if WildcardMatch(t.Value, tag) {
				return true
			}
		}
		return false
	case KindModel:
		return WildcardMatch(t.Value, nc.ModelName)
	case KindField:
		for i, name := range nc.FieldNames {
			if !strings.EqualFold(name, t.Key) || i >= len(nc.Note.Fields) {
				continue
			}
			if WildcardMatch(t.Value, util.StripHTML(nc.Note.Fields[i])) {
				return true
			}
		}
		return false
	case KindState:
		return t.matchesState(nc)
	}
	return false
}

func (t Term) matchesState(nc *NoteContext) bool {
	for _, c := range nc.Cards {
		switch t.Value {
		case StateNew:
			if c.Queue == model.QueueNew {
				return true
			}
		case StateDue:
			if (c.Queue == model.QueueLearning || c.Queue == model.QueueReview) && c.Due <= nc.Now {
				return true
			}
		case StateSuspended:
			if c.Queue == model.QueueSuspended {
				return true
			}
		case StateReview:
			if c.Queue == model.QueueReview {
				return true
			}
		case StateLearn:
			if c.Queue == model.QueueLearning {
				return true
			}
		}
	}
	return false
}

// deckPrefixMatch also accepts subdecks, so deck:Parent finds Parent::Child.
func deckPrefixMatch(pattern, name string) bool {
	return strings.HasPrefix(strings.ToLower(name), strings.ToLower(pattern)+"::")
}

var (
	wildcardMu    sync.Mutex
	wildcardCache = map[string]*regexp.Regexp{}
)

// WildcardMatch compares case-insensitively, with "*" matching any run and
// "_" matching one character.
func WildcardMatch(pattern, s string) bool {
	re, err := compileWildcard(pattern)
	if err != nil {
		return strings.EqualFold(pattern, s)
	}
	return re.MatchString(s)
}

func compileWildcard(pattern string) (*regexp.Regexp, error) {
	wildcardMu.Lock()
	defer wildcardMu.Unlock()
	if re, ok := wildcardCache[pattern]; ok {
		return re, nil
	}

	var sb strings.Builder
	sb.WriteString("(?i)^")
	for _, r := range pattern {
		switch r {
		case '*':
			sb.WriteString(".*")
		case '_':
			sb.WriteString(".")
		default:
			sb.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	sb.WriteString("$")

	re, err := regexp.Compile(sb.String())
	if err != nil {
		return nil, err
	}
	wildcardCache[pattern] = re
	return re, nil
}
