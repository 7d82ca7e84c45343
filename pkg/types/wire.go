package types

import "github.com/shopspring/decimal"

// Wire payloads shared by the REST backend and the remote gateway client.
// Field naming at this boundary is camelCase regardless of internal naming.

type OrderRequest struct {
	CustomerName    string             `json:"customerName" validate:"required"`
	CustomerPhone   string             `json:"customerPhone" validate:"required"`
	CustomerAddress string             `json:"customerAddress" validate:"required"`
	Note            string             `json:"note,omitempty"`
	TotalPrice      decimal.Decimal    `json:"totalPrice"`
	Items           []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

type OrderItemRequest struct {
	ProductID    int             `json:"productId" validate:"required"`
	ProductName  string          `json:"productName" validate:"required"`
	ProductPrice decimal.Decimal `json:"productPrice"`
	Quantity     int             `json:"quantity" validate:"required,min=1"`
	TotalPrice   decimal.Decimal `json:"totalPrice"`
}

type OrderCreated struct {
	Message    string          `json:"message"`
	OrderID    int             `json:"orderId"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

// Message is the error body shape: {"message": "..."}.
type Message struct {
	Message string `json:"message"`
}
