package razorpay

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/quodex/invizo/pkg/httpx"
	"github.com/quodex/invizo/pkg/testkit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrder(t *testing.T) {
	stub := testkit.NewStubTransport()
	stub.Respond("/orders", http.StatusOK, `{
		"id": "order_xyz123",
		"entity": "order",
		"amount": 24150,
		"currency": "INR",
		"status": "created",
		"receipt": "order_rcpid_1700000000000",
		"created_at": 1700000000
	}`)
	httpx.DefaultClient.Transport = stub
	defer httpx.ResetTransport()

	client := NewWithCredentials("rzp_test_key", "rzp_test_secret", "https://gateway.test/v1")

	order, err := client.CreateOrder(context.Background(), 241.50, "INR")
	require.NoError(t, err)
	assert.Equal(t, "order_xyz123", order.ID)
	assert.Equal(t, int64(24150), order.Amount)
	assert.Equal(t, "created", order.Status)

	require.Len(t, stub.Calls, 1)
	req := stub.Calls[0]
	assert.Equal(t, http.MethodPost, req.Method)

	user, pass, ok := req.BasicAuth()
	require.True(t, ok, "request must carry basic auth")
	assert.Equal(t, "rzp_test_key", user)
	assert.Equal(t, "rzp_test_secret", pass)

	var payload struct {
		Amount         int64  `json:"amount"`
		Currency       string `json:"currency"`
		Receipt        string `json:"receipt"`
		PaymentCapture int    `json:"payment_capture"`
	}
	require.NoError(t, json.Unmarshal(stub.Bodies[0], &payload))
	assert.Equal(t, int64(24150), payload.Amount, "amount must be in paise")
	assert.Equal(t, "INR", payload.Currency)
	assert.Contains(t, payload.Receipt, "order_rcpid_")
	assert.Equal(t, 1, payload.PaymentCapture)
}

func TestCreateOrderGatewayError(t *testing.T) {
	stub := testkit.NewStubTransport()
	stub.Respond("/orders", http.StatusUnauthorized, `{"error":{"description":"bad key"}}`)
	httpx.DefaultClient.Transport = stub
	defer httpx.ResetTransport()

	client := NewWithCredentials("bad", "creds", "https://gateway.test/v1")

	_, err := client.CreateOrder(context.Background(), 100, "INR")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestCreateOrderDefaultsCurrency(t *testing.T) {
	stub := testkit.NewStubTransport()
	stub.Respond("/orders", http.StatusOK, `{"id":"order_abc","amount":10000,"currency":"INR"}`)
	httpx.DefaultClient.Transport = stub
	defer httpx.ResetTransport()

	client := NewWithCredentials("k", "s", "https://gateway.test/v1")

	_, err := client.CreateOrder(context.Background(), 100, "")
	require.NoError(t, err)

	var payload struct {
		Currency string `json:"currency"`
	}
	require.NoError(t, json.Unmarshal(stub.Bodies[0], &payload))
	assert.Equal(t, "INR", payload.Currency)
}
