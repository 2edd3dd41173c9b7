// Package domain defines the collection domain models and repository
// interfaces.
package domain

import (
	"time"

	"github.com/ankibridge/ankibridge-service/internal/model"
)

// Deck a card deck. Names form a hierarchy with "::" separators.
type Deck struct {
	ID          int64
	Name        string
	Description string
	// Config is a JSON blob of per-deck option overrides.
	Config    string
	Mod       int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Field one field of a note type.
type Field struct {
	Name        string
	Ord         int
	Collapsed   bool
	Description string
}

// Template one card template of a note type.
type Template struct {
	Name string
	Ord  int
	Qfmt string
	Afmt string
}

// NoteType a note model: field schema plus card templates.
type NoteType struct {
	ID        int64
	Name      string
	Fields    []Field
	Templates []Template
	CSS       string
	IsCloze   bool
	Mod       int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FieldNames returns the field names in ordinal order.
func (m *NoteType) FieldNames() []string {
	names := make([]string, 0, len(m.Fields))
	for _, f := range m.Fields {
		names = append(names, f.Name)
	}
	return names
}

// Note one note: ordered field values for a note type.
type Note struct {
	ID        int64
	ModelID   int64
	Fields    []string
	Tags      []string
	Checksum  string
	Mod       int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FirstField returns the note's first field, the one used for duplicate
// detection.
func (n *Note) FirstField() string {
	if len(n.Fields) == 0 {
		return ""
	}
	return n.Fields[0]
}

// Card one reviewable card.
type Card struct {
	ID         int64
	NoteID     int64
	DeckID     int64
	Ord        int
	Type       int
	Queue      int
	Due        int64
	Interval   int
	Factor     int
	Reps       int
	Lapses     int
	Stability  float64
	Difficulty float64
	Mod        int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsSuspended reports whether the card sits in the suspended queue.
func (c *Card) IsSuspended() bool {
	return c.Queue == model.QueueSuspended
}

// ReviewLog one answered card.
type ReviewLog struct {
	ID              int64
	CardID          int64
	Ease            int
	IntervalBefore  int
	IntervalAfter   int
	FactorAfter     int
	StabilityAfter  float64
	DifficultyAfter float64
	TimeTakenMs     int64
	ReviewedAt      time.Time
}

// NoteRevision one stored note history entry.
type NoteRevision struct {
	ID         int64
	NoteID     int64
	Patch      string
	FieldsHash string
	CreatedAt  time.Time
}

// MediaFile stored media metadata.
type MediaFile struct {
	ID        int64
	Filename  string
	Sha1      string
	Size      int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DeckStats per-deck card counts.
type DeckStats struct {
	DeckID     int64
	Name       string
	NewCount   int64
	DueCount   int64
	TotalCount int64
}
