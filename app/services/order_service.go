package services

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/quodex/invizo/app/models"
	"github.com/quodex/invizo/app/repositories"
	"github.com/quodex/invizo/pkg/logger"
	"github.com/quodex/invizo/pkg/metrics"
	"github.com/quodex/invizo/pkg/razorpay"
	"gorm.io/gorm"
)

// PaymentGateway is the slice of the gateway client the order flow needs.
// Satisfied by *razorpay.Client; tests substitute a fake.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, amount float64, currency string) (*razorpay.Order, error)
	KeyID() string
}

// OrderService owns the order lifecycle: checkout, payment verification,
// listing, deletion and the dashboard rollup.
type OrderService struct {
	orders  *repositories.OrderRepository
	items   *repositories.ItemRepository
	gateway PaymentGateway
	secret  string // gateway key secret, used to verify signatures
}

func NewOrderService(orders *repositories.OrderRepository, items *repositories.ItemRepository, gateway PaymentGateway, secret string) *OrderService {
	return &OrderService{orders: orders, items: items, gateway: gateway, secret: secret}
}

// OrderLineInput is one cart line in a checkout request.
type OrderLineInput struct {
	ItemID   string  `json:"itemId" validate:"required"`
	Name     string  `json:"name" validate:"required"`
	Price    float64 `json:"price" validate:"required,gte=0"`
	Quantity int     `json:"quantity" validate:"required,gte=1"`
}

// CreateOrderInput is the checkout payload. Totals are supplied by the
// client and stored as-is; the terminal UI owns the arithmetic.
type CreateOrderInput struct {
	CustomerName  string           `json:"customerName" validate:"required,min=2,max=255"`
	MobileNumber  string           `json:"mobileNumber" validate:"required,min=7,max=20"`
	Items         []OrderLineInput `json:"items"`
	Subtotal      float64          `json:"subtotal" validate:"gte=0"`
	Tax           float64          `json:"tax" validate:"gte=0"`
	GrandTotal    float64          `json:"grandTotal" validate:"gte=0"`
	PaymentMethod string           `json:"paymentMethod" validate:"required"`
}

// CreateOrder persists a checkout. Cash orders complete immediately;
// online orders stay pending until VerifyPayment succeeds. The gateway
// itself is not contacted here: the client registers the payment via
// CreateGatewayOrder and posts the callback to VerifyPayment.
func (s *OrderService) CreateOrder(ctx context.Context, in CreateOrderInput) (models.Order, error) {
	method, err := models.ParsePaymentMethod(in.PaymentMethod)
	if err != nil {
		return models.Order{}, wrap(ErrInvalid, err)
	}
	if len(in.Items) == 0 {
		return models.Order{}, wrap(ErrInvalid, fmt.Errorf("order must contain at least one item"))
	}

	order := models.Order{
		OrderID:       newOrderID(),
		CustomerName:  in.CustomerName,
		MobileNumber:  in.MobileNumber,
		Subtotal:      in.Subtotal,
		Tax:           in.Tax,
		GrandTotal:    in.GrandTotal,
		PaymentMethod: method,
	}
	for _, line := range in.Items {
		order.Items = append(order.Items, models.OrderItem{
			ItemID:   line.ItemID,
			Name:     line.Name,
			Price:    line.Price,
			Quantity: line.Quantity,
		})
	}

	if method == models.PaymentCash {
		order.PaymentDetails.Status = models.PaymentStatusCompleted
	} else {
		order.PaymentDetails.Status = models.PaymentStatusPending
	}

	if err := s.orders.CreateWithItems(&order); err != nil {
		return models.Order{}, fmt.Errorf("order: create: %w", err)
	}

	metrics.OrdersCreated.WithLabelValues(string(method)).Inc()
	logger.Info("order: created",
		"order_id", order.OrderID,
		"method", method,
		"grand_total", order.GrandTotal,
		"lines", len(order.Items))

	return order, nil
}

// CreateGatewayOrder registers a payment with the gateway. The client
// opens the gateway widget against the returned order and reports the
// outcome through VerifyPayment.
func (s *OrderService) CreateGatewayOrder(ctx context.Context, amount float64, currency string) (*razorpay.Order, string, error) {
	if amount <= 0 {
		return nil, "", wrap(ErrInvalid, fmt.Errorf("amount must be positive"))
	}
	gw, err := s.gateway.CreateOrder(ctx, amount, currency)
	if err != nil {
		return nil, "", wrap(ErrUpstream, err)
	}
	return gw, s.gateway.KeyID(), nil
}

// VerifyPaymentInput carries the gateway callback fields posted by the
// checkout page after a successful payment.
type VerifyPaymentInput struct {
	OrderID          string `json:"orderId" validate:"required"`
	GatewayOrderID   string `json:"razorpayOrderId" validate:"required"`
	GatewayPaymentID string `json:"razorpayPaymentId" validate:"required"`
	GatewaySignature string `json:"razorpaySignature" validate:"required"`
}

// VerifyPayment checks the gateway signature and marks the order paid.
// Verification is idempotent: re-posting the same valid callback for an
// already completed order succeeds without modification.
func (s *OrderService) VerifyPayment(in VerifyPaymentInput) (models.Order, error) {
	order, err := s.orders.FindByOrderID(in.OrderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Order{}, wrap(ErrNotFound, fmt.Errorf("order %s", in.OrderID))
	}
	if err != nil {
		return models.Order{}, fmt.Errorf("order: load: %w", err)
	}

	if !s.signatureValid(in.GatewayOrderID, in.GatewayPaymentID, in.GatewaySignature) {
		metrics.PaymentVerifications.WithLabelValues("mismatch").Inc()
		logger.Warn("order: payment signature mismatch", "order_id", in.OrderID)
		return models.Order{}, wrap(ErrPaymentVerification, fmt.Errorf("signature mismatch for order %s", in.OrderID))
	}

	// Idempotent re-verify of an already completed payment.
	if order.PaymentDetails.Status == models.PaymentStatusCompleted &&
		order.PaymentDetails.GatewayOrderID == in.GatewayOrderID &&
		order.PaymentDetails.GatewayPaymentID == in.GatewayPaymentID {
		return order, nil
	}

	order.PaymentDetails.GatewayOrderID = in.GatewayOrderID
	order.PaymentDetails.GatewayPaymentID = in.GatewayPaymentID
	order.PaymentDetails.GatewaySignature = in.GatewaySignature
	order.PaymentDetails.Status = models.PaymentStatusCompleted
	if err := s.orders.Update(&order); err != nil {
		return models.Order{}, fmt.Errorf("order: update payment: %w", err)
	}

	metrics.PaymentVerifications.WithLabelValues("ok").Inc()
	logger.Info("order: payment verified", "order_id", order.OrderID, "gateway_payment_id", in.GatewayPaymentID)
	return order, nil
}

// signatureValid recomputes the expected HMAC-SHA256 of
// "<gatewayOrderID>|<gatewayPaymentID>" and compares in constant time.
func (s *OrderService) signatureValid(gwOrderID, gwPaymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(s.secret))
	mac.Write([]byte(gwOrderID + "|" + gwPaymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// Latest returns all orders, newest first.
func (s *OrderService) Latest() ([]models.Order, error) {
	return s.orders.LatestFirst()
}

// Delete removes an order and its lines.
func (s *OrderService) Delete(orderID string) error {
	order, err := s.orders.FindByOrderID(orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return wrap(ErrNotFound, fmt.Errorf("order %s", orderID))
	}
	if err != nil {
		return fmt.Errorf("order: load: %w", err)
	}

	if err := s.orders.DeleteWithItems(&order); err != nil {
		return fmt.Errorf("order: delete: %w", err)
	}
	logger.Info("order: deleted", "order_id", orderID)
	return nil
}

// Dashboard is the admin landing rollup.
type Dashboard struct {
	TodaySales   float64        `json:"todaySales"`
	TodayOrders  int64          `json:"todayOrders"`
	RecentOrders []models.Order `json:"recentOrders"`
}

// DashboardStats computes today's sales, today's order count and the
// five most recent orders.
func (s *OrderService) DashboardStats() (Dashboard, error) {
	now := time.Now()

	sales, err := s.orders.SumSalesByDate(now)
	if err != nil {
		return Dashboard{}, fmt.Errorf("order: dashboard sales: %w", err)
	}
	count, err := s.orders.CountByDate(now)
	if err != nil {
		return Dashboard{}, fmt.Errorf("order: dashboard count: %w", err)
	}
	recent, err := s.orders.Recent(5)
	if err != nil {
		return Dashboard{}, fmt.Errorf("order: dashboard recent: %w", err)
	}

	return Dashboard{TodaySales: sales, TodayOrders: count, RecentOrders: recent}, nil
}

// newOrderID mints a human-facing order id. Random suffix rather than a
// timestamp so concurrent checkouts can never collide.
func newOrderID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		// crypto/rand failing means the process is in serious trouble.
		panic(fmt.Sprintf("order id entropy: %v", err))
	}
	return "ORD" + hex.EncodeToString(b[:])
}
