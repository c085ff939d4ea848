package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/billyribeiro-ux/cognition-os/internal/database"
	"github.com/billyribeiro-ux/cognition-os/internal/models"
	"github.com/billyribeiro-ux/cognition-os/internal/storage"
)

// UserKV is the database-backed implementation of the storage.KV port,
// scoped to one user. Each subsystem blob lives in its own row.
type UserKV struct {
	userID uint
}

var _ storage.KV = (*UserKV)(nil)

// NewUserKV returns the KV view for one user.
func NewUserKV(userID uint) *UserKV {
	return &UserKV{userID: userID}
}

func (kv *UserKV) Get(key string) (string, bool) {
	var entry models.KVEntry
	err := database.DB.
		Where("user_id = ? AND key = ?", kv.userID, key).
		First(&entry).Error
	if err != nil {
		return "", false
	}
	return entry.Value, true
}

func (kv *UserKV) Set(key, value string) error {
	query := `
		INSERT INTO kv_entries (user_id, key, value, updated_at)
		VALUES (?, ?, ?, NOW())
		ON CONFLICT (user_id, key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = NOW();
	`
	return database.DB.Exec(query, kv.userID, key, value).Error
}

func (kv *UserKV) Remove(key string) error {
	err := database.DB.
		Where("user_id = ? AND key = ?", kv.userID, key).
		Delete(&models.KVEntry{}).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}

// ListEntriesByKey returns every user's blob stored under the given
// key. The daily scheduler uses this to walk all streak records.
func ListEntriesByKey(ctx context.Context, key string) ([]models.KVEntry, error) {
	var entries []models.KVEntry
	err := database.DB.WithContext(ctx).
		Where("key = ?", key).
		Find(&entries).Error
	return entries, err
}
