package model

import (
	"github.com/ankibridge/ankibridge-service/pkg/timex"
)

// ReviewLog one answered card.
type ReviewLog struct {
	ID              int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	CardID          int64      `gorm:"column:card_id;index" json:"cardId"`
	Ease            int        `gorm:"column:ease" json:"ease"`
	IntervalBefore  int        `gorm:"column:interval_before" json:"intervalBefore"`
	IntervalAfter   int        `gorm:"column:interval_after" json:"intervalAfter"`
	FactorAfter     int        `gorm:"column:factor_after" json:"factorAfter"`
	StabilityAfter  float64    `gorm:"column:stability_after" json:"stabilityAfter"`
	DifficultyAfter float64    `gorm:"column:difficulty_after" json:"difficultyAfter"`
	TimeTakenMs     int64      `gorm:"column:time_taken_ms" json:"timeTakenMs"`
	ReviewedAt      timex.Time `gorm:"column:reviewed_at" json:"reviewedAt"`
}

func (*ReviewLog) TableName() string {
	return "review_log"
}
