package model

import (
	"github.com/ankibridge/ankibridge-service/pkg/timex"
)

// FieldDef one field of a note type. Collapsed controls whether editors
// show the field folded by default.
type FieldDef struct {
	Name        string `json:"name"`
	Ord         int    `json:"ord"`
	Collapsed   bool   `json:"collapsed"`
	Description string `json:"description,omitempty"`
}

// TemplateDef one card template of a note type. Qfmt and Afmt hold the
// question and answer format strings with {{Field}} substitutions.
type TemplateDef struct {
	Name string `json:"name"`
	Ord  int    `json:"ord"`
	Qfmt string `json:"qfmt"`
	Afmt string `json:"afmt"`
}

// NoteType a note model: the field schema plus the card templates that
// generate cards from a note.
type NoteType struct {
	ID        int64         `gorm:"column:id;primaryKey" json:"id"`
	Name      string        `gorm:"column:name;uniqueIndex;size:512" json:"name"`
	Fields    []FieldDef    `gorm:"column:fields;serializer:json" json:"fields"`
	Templates []TemplateDef `gorm:"column:templates;serializer:json" json:"templates"`
	CSS       string        `gorm:"column:css" json:"css"`
	IsCloze   bool          `gorm:"column:is_cloze" json:"isCloze"`
	Mod       int64         `gorm:"column:mod" json:"mod"`
	CreatedAt timex.Time    `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt timex.Time    `gorm:"column:updated_at" json:"updatedAt"`
}

func (*NoteType) TableName() string {
	return "note_type"
}

// FieldNames returns the field names in ordinal order.
func (m *NoteType) FieldNames() []string {
	names := make([]string, 0, len(m.Fields))
	for _, f := range m.Fields {
		names = append(names, f.Name)
	}
	return names
}

// FieldOrd returns the ordinal of a field name, or -1 when absent.
func (m *NoteType) FieldOrd(name string) int {
	for _, f := range m.Fields {
		if f.Name == name {
			return f.Ord
		}
	}
	return -1
}
