package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is a submitted customer order persisted by the backend.
type Order struct {
	ID              int             `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	CustomerName    string          `gorm:"column:customer_name;size:200;not null" json:"customerName"`
	CustomerPhone   string          `gorm:"column:customer_phone;size:20;not null" json:"customerPhone"`
	CustomerAddress string          `gorm:"column:customer_address;size:500;not null" json:"customerAddress"`
	Note            string          `gorm:"column:note;size:1000" json:"note"`
	TotalPrice      decimal.Decimal `gorm:"column:total_price;type:numeric(12,2);not null" json:"totalPrice"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}

// OrderItem snapshots one cart line at submission time.
type OrderItem struct {
	ID           int             `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	OrderID      int             `gorm:"column:order_id;not null" json:"orderId"`
	ProductID    int             `gorm:"column:product_id;not null" json:"productId"`
	ProductName  string          `gorm:"column:product_name;size:200;not null" json:"productName"`
	ProductPrice decimal.Decimal `gorm:"column:product_price;type:numeric(12,2);not null" json:"productPrice"`
	Quantity     int             `gorm:"column:quantity;not null" json:"quantity"`
	TotalPrice   decimal.Decimal `gorm:"column:total_price;type:numeric(12,2);not null" json:"totalPrice"`
}
