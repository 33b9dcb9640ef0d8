package handler

import (
	"net/http"

	"vanphal/internal/cart"
	"vanphal/internal/coupon"
	"vanphal/internal/model"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog"
)

// CartHandler handles basket requests for the logged-in user.
type CartHandler struct {
	cart    *cart.Service
	coupons *coupon.Resolver
	logger  zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(cartSvc *cart.Service, coupons *coupon.Resolver, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		cart:    cartSvc,
		coupons: coupons,
		logger:  logger.With().Str("handler", "cart").Logger(),
	}
}

type cartResponse struct {
	Items    []model.CartItem `json:"items"`
	Subtotal int64            `json:"subtotal"`
}

type addItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type applyCouponRequest struct {
	Code string `json:"code"`
}

func (h *CartHandler) respondWithCart(w http.ResponseWriter, r *http.Request, userID string) {
	items, err := h.cart.Items(r.Context(), userID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, cartResponse{
		Items:    items,
		Subtotal: model.CartSubtotal(items),
	})
}

// Get handles GET /api/cart.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	user := requireUser(w, r, h.logger)
	if user == nil {
		return
	}
	h.respondWithCart(w, r, user.ID)
}

// AddItem handles POST /api/cart/items.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	user := requireUser(w, r, h.logger)
	if user == nil {
		return
	}

	var req addItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.cart.AddItem(r.Context(), user.ID, req.ProductID, req.Quantity); err != nil {
		writeError(w, err, h.logger)
		return
	}
	h.respondWithCart(w, r, user.ID)
}

// UpdateQuantity handles PUT /api/cart/items/:productId. A quantity below 1
// removes the line.
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	user := requireUser(w, r, h.logger)
	if user == nil {
		return
	}

	var req updateQuantityRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.cart.UpdateQuantity(r.Context(), user.ID, ps.ByName("productId"), req.Quantity); err != nil {
		writeError(w, err, h.logger)
		return
	}
	h.respondWithCart(w, r, user.ID)
}

// RemoveItem handles DELETE /api/cart/items/:productId.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	user := requireUser(w, r, h.logger)
	if user == nil {
		return
	}

	if err := h.cart.RemoveItem(r.Context(), user.ID, ps.ByName("productId")); err != nil {
		writeError(w, err, h.logger)
		return
	}
	h.respondWithCart(w, r, user.ID)
}

// ApplyCoupon handles POST /api/cart/coupon: a checkout preview that resolves
// the code against the current basket without mutating anything.
func (h *CartHandler) ApplyCoupon(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	user := requireUser(w, r, h.logger)
	if user == nil {
		return
	}

	var req applyCouponRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	items, err := h.cart.Items(r.Context(), user.ID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	applied, err := h.coupons.Apply(r.Context(), req.Code, items)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, applied)
}
