package models

import (
	"time"

	"github.com/lib/pq"
)

// DailyLog summarizes one protocol day. One row per user per date.
type DailyLog struct {
	ID                uint   `gorm:"primaryKey"`
	UserID            uint   `gorm:"index:idx_daily_logs_user_date,unique"`
	Date              string `gorm:"size:10;index:idx_daily_logs_user_date,unique"`
	Level             int
	CompletionPercent int
	ItemsCompleted    int
	ItemsTotal        int
	WaterOz           int
	TaskSwitches      int
	// CompletedItemIDs records which schedule items were finished.
	CompletedItemIDs pq.StringArray `gorm:"type:text[]"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
