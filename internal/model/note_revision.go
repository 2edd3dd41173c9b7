package model

import (
	"github.com/ankibridge/ankibridge-service/pkg/timex"
)

// NoteRevision one historical version of a note's field payload, stored as
// a diff-match-patch text patch against the previous version. Revisions are
// pruned by the background task.
type NoteRevision struct {
	ID         int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	NoteID     int64      `gorm:"column:note_id;index" json:"noteId"`
	Patch      string     `gorm:"column:patch" json:"patch"`
	FieldsHash string     `gorm:"column:fields_hash" json:"fieldsHash"`
	CreatedAt  timex.Time `gorm:"column:created_at" json:"createdAt"`
}

func (*NoteRevision) TableName() string {
	return "note_revision"
}
