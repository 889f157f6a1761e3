package model

import "time"

// Carts are anonymous; the id is a UUID assigned on creation and is the
// only handle a client ever gets.
type Cart struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
