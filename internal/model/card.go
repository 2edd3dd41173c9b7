package model

import (
	"github.com/ankibridge/ankibridge-service/pkg/timex"
)

// Card queues.
const (
	QueueSuspended = -1
	QueueNew       = 0
	QueueLearning  = 1
	QueueReview    = 2
)

// Card types.
const (
	TypeNew        = 0
	TypeLearning   = 1
	TypeReview     = 2
	TypeRelearning = 3
)

// InitialFactor the SM-2 starting ease factor, in permille.
const InitialFactor = 2500

// Card one reviewable card, generated from a note by one of its note
// type's templates. Due is a unix timestamp for learning/review cards and a
// position counter for new cards.
type Card struct {
	ID       int64 `gorm:"column:id;primaryKey" json:"id"`
	NoteID   int64 `gorm:"column:note_id;index" json:"noteId"`
	DeckID   int64 `gorm:"column:deck_id;index" json:"deckId"`
	Ord      int   `gorm:"column:ord" json:"ord"`
	Type     int   `gorm:"column:type" json:"type"`
	Queue    int   `gorm:"column:queue;index" json:"queue"`
	Due      int64 `gorm:"column:due" json:"due"`
	Interval int   `gorm:"column:interval" json:"interval"`
	Factor   int   `gorm:"column:factor" json:"factor"`
	Reps     int   `gorm:"column:reps" json:"reps"`
	Lapses   int   `gorm:"column:lapses" json:"lapses"`

	// FSRS memory state, only maintained while the FSRS scheduler is active.
	Stability  float64 `gorm:"column:stability" json:"stability"`
	Difficulty float64 `gorm:"column:difficulty" json:"difficulty"`

	Mod       int64      `gorm:"column:mod;index" json:"mod"`
	CreatedAt timex.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt timex.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (*Card) TableName() string {
	return "card"
}

// IsSuspended reports whether the card sits in the suspended queue.
func (c *Card) IsSuspended() bool {
	return c.Queue == QueueSuspended
}

// IsDue reports whether the card is due at the given unix timestamp.
// New cards are always considered due.
func (c *Card) IsDue(now int64) bool {
	switch c.Queue {
	case QueueNew:
		return true
	case QueueLearning, QueueReview:
		return c.Due <= now
	}
	return false
}
