package models

import "time"

// PlaceOrderRequest is the body of POST /api/home/order/place-order
type PlaceOrderRequest struct {
	UserID string `json:"userId"`
}

// Order status values
const (
	OrderStatusPending = "pending"
)

// Order represents a placed customer order
type Order struct {
	ID          string       `json:"_id"`
	UserID      string       `json:"customerId"`
	Sellers     []SellerCart `json:"products"`
	Price       float64      `json:"price"`
	ShippingFee float64      `json:"shipping_fee"`
	Status      string       `json:"delivery_status"`
	CreatedAt   time.Time    `json:"createdAt"`
}
