// Package model defines the collection data models.
package model

import (
	"gorm.io/gorm"
)

// AutoMigrate migrates one named table, or every collection table when key
// is empty.
func AutoMigrate(db *gorm.DB, key string) error {
	switch key {
	case "Deck":
		return db.AutoMigrate(Deck{})
	case "NoteType":
		return db.AutoMigrate(NoteType{})
	case "Note":
		return db.AutoMigrate(Note{})
	case "Card":
		return db.AutoMigrate(Card{})
	case "ReviewLog":
		return db.AutoMigrate(ReviewLog{})
	case "NoteRevision":
		return db.AutoMigrate(NoteRevision{})
	case "MediaFile":
		return db.AutoMigrate(MediaFile{})
	case "":
		return db.AutoMigrate(
			Deck{},
			NoteType{},
			Note{},
			Card{},
			ReviewLog{},
			NoteRevision{},
			MediaFile{},
		)
	}
	return nil
}
