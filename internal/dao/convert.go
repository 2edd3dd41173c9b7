package dao

import (
	"time"

	"github.com/ankibridge/ankibridge-service/internal/domain"
	"github.com/ankibridge/ankibridge-service/internal/model"
	"github.com/ankibridge/ankibridge-service/pkg/timex"

	"github.com/jinzhu/copier"
)

// copyOption converts between the storage time type and time.Time so the
// struct copies below stay field-name driven.
var copyOption = copier.Option{
	DeepCopy: true,
	Converters: []copier.TypeConverter{
		{
			SrcType: timex.Time{},
			DstType: time.Time{},
			Fn: func(src interface{}) (interface{}, error) {
				return src.(timex.Time).Time(), nil
			},
		},
		{
			SrcType: time.Time{},
			DstType: timex.Time{},
			Fn: func(src interface{}) (interface{}, error) {
				return timex.FromTime(src.(time.Time)), nil
			},
		},
	},
}

func deckToDomain(m *model.Deck) *domain.Deck {
	var d domain.Deck
	_ = copier.CopyWithOption(&d, m, copyOption)
	return &d
}

func deckToModel(d *domain.Deck) *model.Deck {
	var m model.Deck
	_ = copier.CopyWithOption(&m, d, copyOption)
	return &m
}

func noteTypeToDomain(m *model.NoteType) *domain.NoteType {
	var d domain.NoteType
	_ = copier.CopyWithOption(&d, m, copyOption)
	return &d
}

func noteTypeToModel(d *domain.NoteType) *model.NoteType {
	var m model.NoteType
	_ = copier.CopyWithOption(&m, d, copyOption)
	return &m
}

func noteToDomain(m *model.Note) *domain.Note {
	d := &domain.Note{}
	_ = copier.CopyWithOption(d, m, copyOption)
	d.Tags = m.TagList()
	return d
}

func noteToModel(d *domain.Note) *model.Note {
	m := &model.Note{}
	_ = copier.CopyWithOption(m, d, copyOption)
	m.SetTags(d.Tags)
	return m
}

func cardToDomain(m *model.Card) *domain.Card {
	var d domain.Card
	_ = copier.CopyWithOption(&d, m, copyOption)
	return &d
}

func cardToModel(d *domain.Card) *model.Card {
	var m model.Card
	_ = copier.CopyWithOption(&m, d, copyOption)
	return &m
}

func reviewLogToDomain(m *model.ReviewLog) *domain.ReviewLog {
	var d domain.ReviewLog
	_ = copier.CopyWithOption(&d, m, copyOption)
	return &d
}

func reviewLogToModel(d *domain.ReviewLog) *model.ReviewLog {
	var m model.ReviewLog
	_ = copier.CopyWithOption(&m, d, copyOption)
	return &m
}

func revisionToDomain(m *model.NoteRevision) *domain.NoteRevision {
	var d domain.NoteRevision
	_ = copier.CopyWithOption(&d, m, copyOption)
	return &d
}

func revisionToModel(d *domain.NoteRevision) *model.NoteRevision {
	var m model.NoteRevision
	_ = copier.CopyWithOption(&m, d, copyOption)
	return &m
}

func mediaToDomain(m *model.MediaFile) *domain.MediaFile {
	var d domain.MediaFile
	_ = copier.CopyWithOption(&d, m, copyOption)
	return &d
}

func mediaToModel(d *domain.MediaFile) *model.MediaFile {
	var m model.MediaFile
	_ = copier.CopyWithOption(&m, d, copyOption)
	return &m
}
