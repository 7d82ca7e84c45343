package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultProductImage is the placeholder applied when no image is supplied.
const DefaultProductImage = "assets/img/placeholder.png"

// Product is a catalog record. The wire representation is camelCase.
type Product struct {
	ID          int             `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name        string          `gorm:"column:name;size:200;not null" json:"name"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null" json:"price"`
	Description string          `gorm:"column:description;size:1000" json:"description"`
	Image       string          `gorm:"column:image;size:500" json:"image"`
	Category    string          `gorm:"column:category;size:100;not null" json:"category"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}
