package repository

import (
	"context"

	"github.com/billyribeiro-ux/cognition-os/internal/database"
	"github.com/billyribeiro-ux/cognition-os/internal/models"
)

// GetOrCreateUserByDevice resolves a device token to its user row,
// creating the row on first contact.
func GetOrCreateUserByDevice(ctx context.Context, deviceToken string) (*models.User, error) {
	var user models.User
	result := database.DB.WithContext(ctx).
		Where(models.User{DeviceToken: deviceToken}).
		FirstOrCreate(&user)
	return &user, result.Error
}

func GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	result := database.DB.WithContext(ctx).First(&user, id)
	return &user, result.Error
}

func DeleteUser(ctx context.Context, userID uint) error {
	db := database.DB.WithContext(ctx)
	if err := db.Where("user_id = ?", userID).Delete(&models.KVEntry{}).Error; err != nil {
		return err
	}
	if err := db.Where("user_id = ?", userID).Delete(&models.TrainingScore{}).Error; err != nil {
		return err
	}
	if err := db.Where("user_id = ?", userID).Delete(&models.DailyLog{}).Error; err != nil {
		return err
	}
	return db.Delete(&models.User{}, userID).Error
}
