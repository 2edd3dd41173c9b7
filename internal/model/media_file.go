package model

import (
	"github.com/ankibridge/ankibridge-service/pkg/timex"
)

// MediaFile metadata for one stored media file. The bytes themselves live
// on the storage backend under Filename.
type MediaFile struct {
	ID        int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Filename  string     `gorm:"column:filename;uniqueIndex;size:512" json:"filename"`
	Sha1      string     `gorm:"column:sha1;index" json:"sha1"`
	Size      int64      `gorm:"column:size" json:"size"`
	CreatedAt timex.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt timex.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (*MediaFile) TableName() string {
	return "media_file"
}
