package model

import "time"

// OrderStatus is the fulfilment state of an order.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusShipped   OrderStatus = "shipped"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed from s.
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransitionTo reports whether an administrative move from s to next is
// allowed: pending -> shipped -> delivered, and pending|shipped -> cancelled.
// Backward or status-skipping moves are rejected.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusShipped || next == StatusCancelled
	case StatusShipped:
		return next == StatusDelivered || next == StatusCancelled
	}
	return false
}

// ShippingAddress is the destination recorded on an order. All fields are
// required at checkout.
type ShippingAddress struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
}

// Complete reports whether every required shipping field is non-empty.
func (a *ShippingAddress) Complete() bool {
	return a.Name != "" && a.Phone != "" && a.Address != "" &&
		a.City != "" && a.State != "" && a.Zip != "" && a.Country != ""
}

// Order is an immutable record of a completed checkout. Items are a deep copy
// of the cart at placement time; after creation only administrative status
// and tracking updates touch it.
type Order struct {
	ID             string          `json:"id"`
	UserID         string          `json:"userId"`
	UserName       string          `json:"userName"`
	Email          string          `json:"email"`
	Items          []CartItem      `json:"items"`
	Subtotal       int64           `json:"subtotal"`
	DiscountAmount int64           `json:"discountAmount"`
	CouponCode     string          `json:"couponCode,omitempty"`
	Total          int64           `json:"total"`
	Status         OrderStatus     `json:"status"`
	TrackingID     string          `json:"trackingId"`
	TrackingURL    string          `json:"trackingUrl,omitempty"`
	Channel        string          `json:"channel,omitempty"`
	Shipping       ShippingAddress `json:"shipping"`
	CreatedAt      time.Time       `json:"createdAt"`
}
