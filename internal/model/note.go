package model

import (
	"strings"

	"github.com/ankibridge/ankibridge-service/pkg/timex"
)

// Note field values for one note type instance. Fields are stored by
// ordinal, parallel to the note type's field definitions. Tags are kept
// space joined with leading and trailing spaces so tag search can use
// substring matching on " tag ".
type Note struct {
	ID        int64      `gorm:"column:id;primaryKey" json:"id"`
	ModelID   int64      `gorm:"column:model_id;index" json:"modelId"`
	Fields    []string   `gorm:"column:fields;serializer:json" json:"fields"`
	Tags      string     `gorm:"column:tags" json:"tags"`
	Checksum  string     `gorm:"column:checksum;index" json:"checksum"`
	Mod       int64      `gorm:"column:mod;index" json:"mod"`
	CreatedAt timex.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt timex.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (*Note) TableName() string {
	return "note"
}

// TagList splits the padded tag string into a clean slice.
func (n *Note) TagList() []string {
	return SplitTags(n.Tags)
}

// SetTags stores a tag slice in padded form.
func (n *Note) SetTags(tags []string) {
	n.Tags = JoinTags(tags)
}

// HasTag reports whether the note carries the tag.
func (n *Note) HasTag(tag string) bool {
	return strings.Contains(n.Tags, " "+tag+" ")
}

// SplitTags splits a padded tag string.
func SplitTags(s string) []string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return []string{}
	}
	return fields
}

// JoinTags joins tags into the padded storage form, dropping duplicates and
// empty entries.
func JoinTags(tags []string) string {
	seen := map[string]bool{}
	var clean []string
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		clean = append(clean, t)
	}
	if len(clean) == 0 {
		return ""
	}
	return " " + strings.Join(clean, " ") + " "
}
