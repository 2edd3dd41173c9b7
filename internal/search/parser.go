// Package search implements the note query language used by findNotes and
// findCards: bare words, deck:/tag:/note:/is: selectors, field:value pairs,
// quoted phrases and "-" negation. Terms combine with AND.
package search

import (
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
)

// Term kinds.
const (
	KindWord  = "word"
	KindDeck  = "deck"
	KindTag   = "tag"
	KindModel = "note"
	KindField = "field"
	KindState = "is"
)

// State values accepted by is:.
const (
	StateNew       = "new"
	StateDue       = "due"
	StateSuspended = "suspended"
	StateReview    = "review"
	StateLearn     = "learn"
)

// Term one search clause.
type Term struct {
	// Neg inverts the clause
	Neg bool
	// Kind one of the Kind constants
	Kind string
	// Key field name, only set for KindField
	Key string
	// Value the text to match, wildcards allowed
	Value string
}

// Query a parsed search string. An empty query matches everything.
type Query struct {
	Terms []Term
}

// IsEmpty reports whether the query has no clauses.
func (q *Query) IsEmpty() bool {
	return len(q.Terms) == 0
}

// Parsed queries are cached since clients tend to repeat searches.
var parseCache = cache.New(5*time.Minute, 10*time.Minute)

// Parse compiles a search string, serving repeats from cache.
func Parse(input string) (*Query, error) {
	if cached, ok := parseCache.Get(input); ok {
		return cached.(*Query), nil
	}
	q, err := parse(input)
	if err != nil {
		return nil, err
	}
	parseCache.Set(input, q, cache.DefaultExpiration)
	return q, nil
}

func parse(input string) (*Query, error) {
	tokens, err := tokenize(input)
	if err != nil {
		return nil, err
	}

	q := &Query{}
	for _, tok := range tokens {
		neg := false
		if strings.HasPrefix(tok, "-") && len(tok) > 1 {
			neg = true
			tok = tok[1:]
		}

		key, value, found := strings.Cut(tok, ":")
		if !found {
			q.Terms = append(q.Terms, Term{Neg: neg, Kind: KindWord, Value: tok})
			continue
		}

		switch strings.ToLower(key) {
		case "deck":
			q.Terms = append(q.Terms, Term{Neg: neg, Kind: KindDeck, Value: value})
		case "tag":
			q.Terms = append(q.Terms, Term{Neg: neg, Kind: KindTag, Value: value})
		case "note":
			q.Terms = append(q.Terms, Term{Neg: neg, Kind: KindModel, Value: value})
		case "is":
			state := strings.ToLower(value)
			switch state {
			case StateNew, StateDue, StateSuspended, StateReview, StateLearn:
				q.Terms = append(q.Terms, Term{Neg: neg, Kind: KindState, Value: state})
			default:
				return nil, errors.Errorf("unknown state %q", value)
			}
		default:
			// Any other selector is treated as a field name.
			q.Terms = append(q.Terms, Term{Neg: neg, Kind: KindField, Key: key, Value: value})
		}
	}
	return q, nil
}

// tokenize splits on whitespace while keeping quoted runs together. Quotes
// may wrap a whole token or just a selector's value, as in deck:"My Deck".
func tokenize(input string) ([]string, error) {
	var tokens []string
	var cur strings.Builder
	inQuote := false
	hasContent := false

	flush := func() {
		if hasContent {
			tokens = append(tokens, cur.String())
		}
		cur.Reset()
		hasContent = false
	}

	for _, r := range input {
		switch {
		case r == '"':
			inQuote = !inQuote
			hasContent = true
		case !inQuote && (r == ' ' || r == '\t' || r == '\n' || r == '\r'):
			flush()
		default:
			cur.WriteRune(r)
			hasContent = true
		}
	}
	if inQuote {
		return nil, errors.New("unbalanced quotes")
	}
	flush()
	return tokens, nil
}
