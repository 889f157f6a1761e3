package model

import (
	"time"

	"github.com/lib/pq"
)

type Category string

const (
	CategoryCelular     Category = "celular"
	CategoryNotebook    Category = "notebook"
	CategorySmartwatch  Category = "smartwatch"
	CategoryAuriculares Category = "auriculares"
	CategoryGeneral     Category = "general"
)

// Categories returns the allowed category values in a fixed order.
func Categories() []Category {
	return []Category{
		CategoryCelular,
		CategoryNotebook,
		CategorySmartwatch,
		CategoryAuriculares,
		CategoryGeneral,
	}
}

// Status=false is a soft delete. Rows are never removed physically.
type Product struct {
	ID          int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string         `gorm:"type:varchar(255);not null" json:"title"`
	Description string         `gorm:"type:text;not null" json:"description"`
	Code        string         `gorm:"type:varchar(100);not null;uniqueIndex" json:"code"`
	Price       float64        `gorm:"not null" json:"price"`
	Stock       int64          `gorm:"not null" json:"stock"`
	Category    Category       `gorm:"type:varchar(20);not null;index" json:"category"`
	Status      bool           `gorm:"not null;default:true" json:"status"`
	Thumbnails  pq.StringArray `gorm:"type:text[]" json:"thumbnails"`
	CreatedAt   time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
