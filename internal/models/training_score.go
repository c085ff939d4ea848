package models

import (
	"time"

	"github.com/lib/pq"
)

// TrainingScore holds the outcome of one finished dual n-back session.
type TrainingScore struct {
	ID               uint   `gorm:"primaryKey"`
	UserID           uint   `gorm:"index"`
	SessionDate      string `gorm:"size:10"`
	NLevel           int
	Rounds           int
	DurationSeconds  int
	PositionAccuracy int
	SymbolAccuracy   int
	OverallAccuracy  int
	// RecentAccuracy is the trailing accuracy window at the time the
	// session ended, newest last.
	RecentAccuracy pq.Int64Array `gorm:"type:bigint[]"`
	CreatedAt      time.Time
}
