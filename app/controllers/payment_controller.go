package controllers

import (
	"net/http"

	"github.com/quodex/invizo/app/services"
	"github.com/quodex/invizo/pkg/bind"
	"github.com/quodex/invizo/pkg/response"
)

// PaymentController serves the gateway callback verification endpoint.
type PaymentController struct {
	orders *services.OrderService
}

func NewPaymentController(orders *services.OrderService) *PaymentController {
	return &PaymentController{orders: orders}
}

type createGatewayOrderRequest struct {
	Amount   float64 `json:"amount" validate:"required,gte=1"`
	Currency string  `json:"currency" validate:"nullable,in=INR,USD"`
}

// CreateOrder handles POST /payments/create-order, registering an order
// with the payment gateway.
func (c *PaymentController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createGatewayOrderRequest
	if errs, err := bind.JSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	order, keyID, err := c.orders.CreateGatewayOrder(r.Context(), req.Amount, req.Currency)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Created(w, map[string]interface{}{
		"order": order,
		"keyId": keyID,
	})
}

// Verify handles POST /payments/verify.
func (c *PaymentController) Verify(w http.ResponseWriter, r *http.Request) {
	var in services.VerifyPaymentInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	order, err := c.orders.VerifyPayment(in)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, order)
}
