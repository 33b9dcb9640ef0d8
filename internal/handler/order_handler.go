package handler

import (
	"net/http"

	"vanphal/internal/model"
	"vanphal/internal/order"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog"
)

// OrderHandler handles checkout and the customer's order history.
type OrderHandler struct {
	orders *order.Service
	logger zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(orders *order.Service, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		orders: orders,
		logger: logger.With().Str("handler", "order").Logger(),
	}
}

type checkoutRequest struct {
	Shipping   model.ShippingAddress `json:"shipping"`
	CouponCode string                `json:"couponCode,omitempty"`
}

// Checkout handles POST /api/checkout.
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	user := requireUser(w, r, h.logger)
	if user == nil {
		return
	}

	var req checkoutRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	placed, err := h.orders.Place(r.Context(), user, req.Shipping, req.CouponCode)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, placed)
}

// ListMine handles GET /api/orders.
func (h *OrderHandler) ListMine(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	user := requireUser(w, r, h.logger)
	if user == nil {
		return
	}

	orders, err := h.orders.ListByUser(r.Context(), user.ID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

// Get handles GET /api/orders/:id. Customers only see their own orders; the
// back office sees everything.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	user := requireUser(w, r, h.logger)
	if user == nil {
		return
	}

	placed, err := h.orders.Get(r.Context(), ps.ByName("id"))
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	if placed.UserID != user.ID && !user.IsAdmin() {
		writeError(w, model.ErrOrderNotFound, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, placed)
}
