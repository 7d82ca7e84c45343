package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLine is one cart row for a distinct product. Product fields are
// denormalized at add time so the cart renders without a catalog join.
type CartLine struct {
	ID              int             `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ProductID       int             `gorm:"column:product_id;not null" json:"productId"`
	ProductName     string          `gorm:"column:product_name;size:200;not null" json:"productName"`
	ProductPrice    decimal.Decimal `gorm:"column:product_price;type:numeric(12,2);not null" json:"productPrice"`
	ProductImage    string          `gorm:"column:product_image;size:500" json:"productImage"`
	ProductCategory string          `gorm:"column:product_category;size:100" json:"productCategory"`
	Quantity        int             `gorm:"column:quantity;not null" json:"quantity"`
	AddedAt         time.Time       `gorm:"column:added_at;autoCreateTime" json:"addedAt"`
}

// Total is the derived line total, always recomputed.
func (l CartLine) Total() decimal.Decimal {
	return l.ProductPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
