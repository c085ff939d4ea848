package models

import "time"

// User is an anonymous training profile. There are no credentials; a
// device token carried in the session cookie binds a browser to its row.
type User struct {
	ID          uint   `gorm:"primaryKey"`
	DeviceToken string `gorm:"uniqueIndex;size:64"`
	CreatedAt   time.Time
}
