package models

import "time"

// KVEntry is one persisted subsystem blob. The drill engine, the streak
// tracker and the card store each keep their full state as a single
// JSON value under a well-known key.
type KVEntry struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index:idx_kv_user_key,unique"`
	Key       string `gorm:"size:64;index:idx_kv_user_key,unique"`
	Value     string `gorm:"type:text"`
	UpdatedAt time.Time
}
