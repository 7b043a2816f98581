package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/quodex/invizo/app/services"
	"github.com/quodex/invizo/pkg/bind"
	"github.com/quodex/invizo/pkg/response"
)

// OrderController serves checkout and order management endpoints.
type OrderController struct {
	orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

// Create handles POST /orders.
func (c *OrderController) Create(w http.ResponseWriter, r *http.Request) {
	var in services.CreateOrderInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	order, err := c.orders.CreateOrder(r.Context(), in)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Created(w, order)
}

// Latest handles GET /orders/latest.
func (c *OrderController) Latest(w http.ResponseWriter, r *http.Request) {
	orders, err := c.orders.Latest()
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, orders)
}

// Delete handles DELETE /orders/{orderId}.
func (c *OrderController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.orders.Delete(chi.URLParam(r, "orderId")); err != nil {
		fail(w, r, err)
		return
	}
	response.NoContent(w)
}

// Dashboard handles GET /admin/dashboard.
func (c *OrderController) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := c.orders.DashboardStats()
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, stats)
}
