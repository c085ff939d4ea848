package repository

import (
	"context"

	"gorm.io/gorm/clause"

	"github.com/billyribeiro-ux/cognition-os/internal/database"
	"github.com/billyribeiro-ux/cognition-os/internal/models"
)

// UpsertDailyLog writes a day's summary, replacing any earlier summary
// for the same user and date.
func UpsertDailyLog(ctx context.Context, log *models.DailyLog) error {
	return database.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"level", "completion_percent", "items_completed", "items_total",
				"water_oz", "task_switches", "completed_item_ids", "updated_at",
			}),
		}).
		Create(log).Error
}

// GetDailyLogs returns a user's day summaries, newest first.
func GetDailyLogs(ctx context.Context, userID uint, limit int) ([]models.DailyLog, error) {
	var logs []models.DailyLog
	q := database.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&logs).Error
	return logs, err
}

// GetDailyLog returns the summary for one date, if present.
func GetDailyLog(ctx context.Context, userID uint, date string) (*models.DailyLog, error) {
	var log models.DailyLog
	err := database.DB.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		First(&log).Error
	if err != nil {
		return nil, err
	}
	return &log, nil
}
