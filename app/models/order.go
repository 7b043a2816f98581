package models

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// PaymentMethod is how the customer pays for an order.
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "CASH"
	PaymentOnline PaymentMethod = "ONLINE"
)

// ParsePaymentMethod validates a client-supplied payment method string.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(strings.ToUpper(strings.TrimSpace(s))) {
	case PaymentCash:
		return PaymentCash, nil
	case PaymentOnline:
		return PaymentOnline, nil
	default:
		return "", fmt.Errorf("invalid payment method %q", s)
	}
}

// Payment status values. Cash orders complete immediately; online orders
// stay pending until the gateway signature is verified.
const (
	PaymentStatusPending   = "PENDING"
	PaymentStatusCompleted = "COMPLETED"
)

// PaymentDetails records the gateway's view of a payment. The gateway
// fields stay empty for cash orders.
type PaymentDetails struct {
	GatewayOrderID   string `gorm:"size:100" json:"razorpayOrderId"`
	GatewayPaymentID string `gorm:"size:100" json:"razorpayPaymentId"`
	GatewaySignature string `gorm:"size:200" json:"razorpaySignature"`
	Status           string `gorm:"size:20" json:"status"`
}

// Order is a placed order. OrderID is the human-facing identifier shown
// on receipts; the numeric gorm.Model ID is internal.
type Order struct {
	gorm.Model
	OrderID        string         `gorm:"uniqueIndex;size:40;not null" json:"orderId"`
	CustomerName   string         `gorm:"size:255;not null" json:"customerName"`
	MobileNumber   string         `gorm:"size:20;not null" json:"mobileNumber"`
	Subtotal       float64        `json:"subtotal"`
	Tax            float64        `json:"tax"`
	GrandTotal     float64        `json:"grandTotal"`
	PaymentMethod  PaymentMethod  `gorm:"size:10;not null" json:"paymentMethod"`
	Items          []OrderItem    `gorm:"foreignKey:OrderRef;constraint:OnDelete:CASCADE" json:"items"`
	PaymentDetails PaymentDetails `gorm:"embedded;embeddedPrefix:payment_" json:"paymentDetails"`
}

// OrderItem is a line on an order. Name and Price are copied from the
// item at purchase time so later catalog edits do not rewrite history.
type OrderItem struct {
	gorm.Model
	OrderRef uint    `gorm:"not null;index" json:"-"`
	ItemID   string  `gorm:"size:36;not null" json:"itemId"`
	Name     string  `gorm:"size:255;not null" json:"name"`
	Price    float64 `gorm:"not null" json:"price"`
	Quantity int     `gorm:"not null" json:"quantity"`
}
