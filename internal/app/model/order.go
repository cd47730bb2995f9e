package model

import (
	"time"
)

type OrderStatus string

const (
	// OrderStatusCompleted is the only status orders are created with.
	// The system models no pending or fulfillment lifecycle.
	OrderStatusCompleted OrderStatus = "completed"
)

type Order struct {
	ID          uint        `json:"id"`
	UserID      uint        `json:"user_id"`
	TotalAmount float64     `json:"total_amount"`
	Status      OrderStatus `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
}

type OrderItem struct {
	ID        uint    `json:"id"`
	OrderID   uint    `json:"order_id"`
	ProductID uint    `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"` // unit price snapshot taken at order time
}

// OrderItemDetail joins an order item with the live product record.
// Product is nil when the product has since been deleted.
type OrderItemDetail struct {
	OrderItem
	Product *Product `json:"product"`
}

type OrderWithItems struct {
	Order
	Items []OrderItemDetail `json:"items"`
}
