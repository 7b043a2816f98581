// Package razorpay talks to the Razorpay Orders API. Only the small
// slice of the API the checkout flow needs is implemented.
package razorpay

import (
	"context"
	"fmt"
	"time"

	"github.com/quodex/invizo/config"
	"github.com/quodex/invizo/pkg/httpx"
)

// Client calls the payment gateway using key-id / key-secret basic auth.
type Client struct {
	keyID   string
	secret  string
	baseURL string
}

// New builds a Client from configuration.
func New() *Client {
	return &Client{
		keyID:   config.RazorpayKeyID(),
		secret:  config.RazorpaySecret(),
		baseURL: config.RazorpayBaseURL(),
	}
}

// NewWithCredentials builds a Client with explicit credentials and base URL.
func NewWithCredentials(keyID, secret, baseURL string) *Client {
	return &Client{keyID: keyID, secret: secret, baseURL: baseURL}
}

// KeyID returns the public key id. Checkout pages need it to open the
// payment widget.
func (c *Client) KeyID() string { return c.keyID }

// Order is a gateway order as returned by the Orders API.
type Order struct {
	ID        string `json:"id"`
	Entity    string `json:"entity"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Status    string `json:"status"`
	Receipt   string `json:"receipt"`
	CreatedAt int64  `json:"created_at"`
}

type createOrderRequest struct {
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	Receipt        string `json:"receipt"`
	PaymentCapture int    `json:"payment_capture"`
}

// CreateOrder registers an order with the gateway. amount is in currency
// units (rupees); the API wants the smallest unit, so it is multiplied
// by 100. Payments are auto-captured.
func (c *Client) CreateOrder(ctx context.Context, amount float64, currency string) (*Order, error) {
	if currency == "" {
		currency = "INR"
	}
	payload := createOrderRequest{
		Amount:         int64(amount * 100),
		Currency:       currency,
		Receipt:        fmt.Sprintf("order_rcpid_%d", time.Now().UnixMilli()),
		PaymentCapture: 1,
	}

	resp, err := httpx.Post(c.baseURL+"/orders").
		BasicAuth(c.keyID, c.secret).
		Body(payload).
		Timeout(10 * time.Second).
		Retry(2, 500*time.Millisecond).
		WithContext(ctx).
		Send()
	if err != nil {
		return nil, fmt.Errorf("razorpay: create order: %w", err)
	}
	if !resp.OK() {
		return nil, fmt.Errorf("razorpay: create order: gateway returned %d: %s", resp.StatusCode, resp.Text())
	}

	var order Order
	if err := resp.JSON(&order); err != nil {
		return nil, fmt.Errorf("razorpay: create order: %w", err)
	}
	return &order, nil
}
