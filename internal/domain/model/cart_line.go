package model

import "time"

// One (product, quantity) pair inside a cart. The composite unique index
// keeps a cart from holding two lines for the same product; adds merge by
// incrementing Quantity instead.
type CartLine struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"-"`
	CartID    string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_cart_product" json:"-"`
	ProductID int64     `gorm:"not null;uniqueIndex:idx_cart_product" json:"product"`
	Quantity  int64     `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"-"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"-"`
}
