package domain

import "context"

// DeckRepository deck persistence.
type DeckRepository interface {
	// GetByID fetches a deck by ID
	GetByID(ctx context.Context, id int64) (*Deck, error)

	// GetByName fetches a deck by its exact name
	GetByName(ctx context.Context, name string) (*Deck, error)

	// List returns every deck ordered by name
	List(ctx context.Context) ([]*Deck, error)

	// Create inserts a deck
	Create(ctx context.Context, deck *Deck) (*Deck, error)

	// Update persists changes to a deck
	Update(ctx context.Context, deck *Deck) error

	// Delete removes a deck
	Delete(ctx context.Context, id int64) error
}

// NoteTypeRepository note type (model) persistence.
type NoteTypeRepository interface {
	// GetByID fetches a note type by ID
	GetByID(ctx context.Context, id int64) (*NoteType, error)

	// GetByName fetches a note type by its exact name
	GetByName(ctx context.Context, name string) (*NoteType, error)

	// List returns every note type ordered by name
	List(ctx context.Context) ([]*NoteType, error)

	// Create inserts a note type
	Create(ctx context.Context, m *NoteType) (*NoteType, error)

	// Update persists changes to a note type
	Update(ctx context.Context, m *NoteType) error

	// Delete removes a note type
	Delete(ctx context.Context, id int64) error
}

// NoteRepository note persistence.
type NoteRepository interface {
	// GetByID fetches a note by ID
	GetByID(ctx context.Context, id int64) (*Note, error)

	// ListByIDs fetches notes by ID, silently skipping missing ones
	ListByIDs(ctx context.Context, ids []int64) ([]*Note, error)

	// ListAll returns every note
	ListAll(ctx context.Context) ([]*Note, error)

	// ListByChecksum returns notes of a model sharing the duplicate checksum
	ListByChecksum(ctx context.Context, modelID int64, checksum string) ([]*Note, error)

	// Create inserts a note
	Create(ctx context.Context, note *Note) (*Note, error)

	// Update persists changes to a note
	Update(ctx context.Context, note *Note) error

	// Delete removes notes by ID
	Delete(ctx context.Context, ids []int64) error
}

// CardRepository card persistence.
type CardRepository interface {
	// GetByID fetches a card by ID
	GetByID(ctx context.Context, id int64) (*Card, error)

	// ListByIDs fetches cards by ID, silently skipping missing ones
	ListByIDs(ctx context.Context, ids []int64) ([]*Card, error)

	// ListByNoteIDs returns the cards of the given notes
	ListByNoteIDs(ctx context.Context, noteIDs []int64) ([]*Card, error)

	// ListByDeckID returns the cards of a deck
	ListByDeckID(ctx context.Context, deckID int64) ([]*Card, error)

	// ListAll returns every card
	ListAll(ctx context.Context) ([]*Card, error)

	// Create inserts a card
	Create(ctx context.Context, card *Card) (*Card, error)

	// Update persists changes to a card
	Update(ctx context.Context, card *Card) error

	// UpdateQueue moves cards into a queue
	UpdateQueue(ctx context.Context, ids []int64, queue int, mod int64) error

	// MoveDeck moves cards into another deck
	MoveDeck(ctx context.Context, ids []int64, deckID int64, mod int64) error

	// DeleteByNoteIDs removes all cards belonging to the given notes
	DeleteByNoteIDs(ctx context.Context, noteIDs []int64) error

	// Delete removes cards by ID
	Delete(ctx context.Context, ids []int64) error
}

// ReviewLogRepository review history persistence.
type ReviewLogRepository interface {
	// Create appends a review entry
	Create(ctx context.Context, entry *ReviewLog) (*ReviewLog, error)

	// ListByCardID returns a card's reviews, newest first
	ListByCardID(ctx context.Context, cardID int64) ([]*ReviewLog, error)
}

// NoteRevisionRepository note history persistence.
type NoteRevisionRepository interface {
	// Create appends a revision
	Create(ctx context.Context, rev *NoteRevision) (*NoteRevision, error)

	// ListByNoteID returns a note's revisions, newest first
	ListByNoteID(ctx context.Context, noteID int64) ([]*NoteRevision, error)

	// PruneToCount keeps only the newest keep revisions per note
	PruneToCount(ctx context.Context, noteID int64, keep int) error

	// ListNoteIDs returns the distinct note IDs that have revisions
	ListNoteIDs(ctx context.Context) ([]int64, error)

	// DeleteByNoteIDs removes all revisions of the given notes
	DeleteByNoteIDs(ctx context.Context, noteIDs []int64) error
}

// MediaRepository media metadata persistence.
type MediaRepository interface {
	// GetByFilename fetches one media row
	GetByFilename(ctx context.Context, filename string) (*MediaFile, error)

	// List returns every media row ordered by filename
	List(ctx context.Context) ([]*MediaFile, error)

	// Upsert inserts or replaces the row for a filename
	Upsert(ctx context.Context, mf *MediaFile) (*MediaFile, error)

	// DeleteByFilename removes one media row
	DeleteByFilename(ctx context.Context, filename string) error
}
