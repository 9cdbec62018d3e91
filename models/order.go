package models

import "time"

type Order struct {
	ID          int         `json:"id"`
	OrderNumber string      `json:"order_number"`
	UserID      int         `json:"user_id"`
	Subtotal    float64     `json:"subtotal"`
	Discount    float64     `json:"discount"`
	Tax         float64     `json:"tax"`
	Total       float64     `json:"total"`
	Currency    string      `json:"currency"`
	Status      string      `json:"status"`
	Notes       *string     `json:"notes,omitempty"`
	Items       []OrderItem `json:"items,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

type OrderItem struct {
	ID          int     `json:"id"`
	OrderID     int     `json:"order_id"`
	ProductID   int     `json:"product_id"`
	ProductName string  `json:"product_name,omitempty"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Total       float64 `json:"total"`
}
