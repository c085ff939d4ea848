package repository

import (
	"context"
	"time"

	"github.com/billyribeiro-ux/cognition-os/internal/database"
	"github.com/billyribeiro-ux/cognition-os/internal/models"
)

// TimelineDataPoint is one chartable sample of a training metric.
type TimelineDataPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

func SaveTrainingScore(ctx context.Context, score *models.TrainingScore) error {
	return database.DB.WithContext(ctx).Create(score).Error
}

// GetTrainingScores returns a user's sessions, oldest first.
func GetTrainingScores(ctx context.Context, userID uint) ([]models.TrainingScore, error) {
	var scores []models.TrainingScore
	err := database.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&scores).Error
	return scores, err
}

// GetRecentTrainingScores returns a user's latest sessions, newest first.
func GetRecentTrainingScores(ctx context.Context, userID uint, limit int) ([]models.TrainingScore, error) {
	var scores []models.TrainingScore
	err := database.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&scores).Error
	return scores, err
}

// GetScoreTimeline returns one training metric over time for the
// progress charts. metricKey selects the column.
func GetScoreTimeline(ctx context.Context, userID uint, metricKey string) ([]TimelineDataPoint, error) {
	column, ok := scoreMetricColumns[metricKey]
	if !ok {
		column = "overall_accuracy"
	}

	var data []TimelineDataPoint
	query := `
		SELECT created_at AS date, ` + column + `::float AS value
		FROM training_scores
		WHERE user_id = ?
		ORDER BY created_at;
	`
	err := database.DB.WithContext(ctx).Raw(query, userID).Scan(&data).Error
	return data, err
}

// scoreMetricColumns maps API metric keys to columns. The map doubles
// as an allowlist so no caller input reaches the SQL text.
var scoreMetricColumns = map[string]string{
	"overall_accuracy":  "overall_accuracy",
	"position_accuracy": "position_accuracy",
	"symbol_accuracy":   "symbol_accuracy",
	"n_level":           "n_level",
	"duration_seconds":  "duration_seconds",
}
