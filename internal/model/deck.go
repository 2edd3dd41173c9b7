package model

import (
	"github.com/ankibridge/ankibridge-service/pkg/timex"
)

// DefaultDeckName the deck every collection starts with. It cannot be
// deleted; cards from deleted decks fall back into it.
const DefaultDeckName = "Default"

// Deck a card deck. Names form a hierarchy with "::" separators.
type Deck struct {
	ID          int64      `gorm:"column:id;primaryKey" json:"id"`
	Name        string     `gorm:"column:name;uniqueIndex;size:512" json:"name"`
	Description string     `gorm:"column:description" json:"description"`
	Config      string     `gorm:"column:config" json:"config"`
	Mod         int64      `gorm:"column:mod" json:"mod"`
	CreatedAt   timex.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt   timex.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (*Deck) TableName() string {
	return "deck"
}
