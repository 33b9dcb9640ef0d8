package handler

import (
	"net/http"

	"vanphal/internal/account"
	"vanphal/internal/catalog"
	"vanphal/internal/model"
	"vanphal/internal/order"
	"vanphal/internal/ticket"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog"
)

// AdminHandler serves the back office: catalogue management, order
// fulfilment, user administration and the full ticket inbox. Every route
// checks the admin role itself; the account store is the only authority.
type AdminHandler struct {
	catalog  *catalog.Service
	orders   *order.Service
	accounts *account.Service
	tickets  *ticket.Service
	logger   zerolog.Logger
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(
	cat *catalog.Service,
	orders *order.Service,
	accounts *account.Service,
	tickets *ticket.Service,
	logger zerolog.Logger,
) *AdminHandler {
	return &AdminHandler{
		catalog:  cat,
		orders:   orders,
		accounts: accounts,
		tickets:  tickets,
		logger:   logger.With().Str("handler", "admin").Logger(),
	}
}

// CreateProduct handles POST /api/admin/products.
func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if requireAdmin(w, r, h.logger) == nil {
		return
	}

	var p model.Product
	if !decodeJSON(w, r, &p) {
		return
	}

	if err := h.catalog.AddProduct(r.Context(), p); err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// UpdateProduct handles PUT /api/admin/products/:id.
func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if requireAdmin(w, r, h.logger) == nil {
		return
	}

	var p model.Product
	if !decodeJSON(w, r, &p) {
		return
	}
	p.ID = ps.ByName("id")

	if err := h.catalog.UpdateProduct(r.Context(), p); err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// DeleteProduct handles DELETE /api/admin/products/:id.
func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if requireAdmin(w, r, h.logger) == nil {
		return
	}

	if err := h.catalog.DeleteProduct(r.Context(), ps.ByName("id")); err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

type categoryRequest struct {
	Name    string `json:"name"`
	NewName string `json:"newName,omitempty"`
}

// AddCategory handles POST /api/admin/categories.
func (h *AdminHandler) AddCategory(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if requireAdmin(w, r, h.logger) == nil {
		return
	}

	var req categoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.catalog.AddCategory(r.Context(), req.Name); err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": "added"})
}

// RenameCategory handles PUT /api/admin/categories.
func (h *AdminHandler) RenameCategory(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if requireAdmin(w, r, h.logger) == nil {
		return
	}

	var req categoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.catalog.RenameCategory(r.Context(), req.Name, req.NewName); err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "renamed"})
}

// DeleteCategory handles DELETE /api/admin/categories/:name.
func (h *AdminHandler) DeleteCategory(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if requireAdmin(w, r, h.logger) == nil {
		return
	}

	if err := h.catalog.DeleteCategory(r.Context(), ps.ByName("name")); err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ListOffers handles GET /api/admin/offers, inactive offers included.
func (h *AdminHandler) ListOffers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if requireAdmin(w, r, h.logger) == nil {
		return
	}

	offers, err := h.catalog.Offers(r.Context())
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, offers)
}

// CreateOffer handles POST /api/admin/offers.
func (h *AdminHandler) CreateOffer(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if requireAdmin(w, r, h.logger) == nil {
		return
	}

	var o model.Offer
	if !decodeJSON(w, r, &o) {
		return
	}

	if err := h.catalog.AddOffer(r.Context(), o); err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, o)
}

// UpdateOffer handles PUT /api/admin/offers/:id.
func (h *AdminHandler) UpdateOffer(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if requireAdmin(w, r, h.logger) == nil {
		return
	}

	var o model.Offer
	if !decodeJSON(w, r, &o) {
		return
	}
	o.ID = ps.ByName("id")

	if err := h.catalog.UpdateOffer(r.Context(), o); err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// DeleteOffer handles DELETE /api/admin/offers/:id.
func (h *AdminHandler) DeleteOffer(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if requireAdmin(w, r, h.logger) == nil {
		return
	}

	if err := h.catalog.DeleteOffer(r.Context(), ps.ByName("id")); err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ToggleOffer handles POST /api/admin/offers/:id/toggle.
func (h *AdminHandler) ToggleOffer(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if requireAdmin(w, r, h.logger) == nil {
		return
	}

	if err := h.catalog.ToggleOffer(r.Context(), ps.ByName("id")); err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "toggled"})
}

// UpdateSettings handles PUT /api/admin/settings.
func (h *AdminHandler) UpdateSettings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if requireAdmin(w, r, h.logger) == nil {
		return
	}

	var settings model.SiteSettings
	if !decodeJSON(w, r, &settings) {
		return
	}

	if err := h.catalog.UpdateSettings(r.Context(), settings); err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// ListOrders handles GET /api/admin/orders.
func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if requireAdmin(w, r, h.logger) == nil {
		return
	}

	orders, err := h.orders.ListAll(r.Context())
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

type statusRequest struct {
	Status model.OrderStatus `json:"status"`
}

// UpdateOrderStatus handles PUT /api/admin/orders/:id/status.
func (h *AdminHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if requireAdmin(w, r, h.logger) == nil {
		return
	}

	var req statusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	updated, err := h.orders.UpdateStatus(r.Context(), ps.ByName("id"), req.Status)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

type trackingRequest struct {
	TrackingID  string `json:"trackingId"`
	TrackingURL string `json:"trackingUrl,omitempty"`
}

// UpdateOrderTracking handles PUT /api/admin/orders/:id/tracking.
func (h *AdminHandler) UpdateOrderTracking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if requireAdmin(w, r, h.logger) == nil {
		return
	}

	var req trackingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	updated, err := h.orders.SetTracking(r.Context(), ps.ByName("id"), req.TrackingID, req.TrackingURL)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// ListUsers handles GET /api/admin/users.
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if requireAdmin(w, r, h.logger) == nil {
		return
	}

	users, err := h.accounts.ListUsers(r.Context())
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

type blockRequest struct {
	Blocked bool `json:"blocked"`
}

// SetUserBlocked handles PUT /api/admin/users/:id/blocked.
func (h *AdminHandler) SetUserBlocked(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if requireAdmin(w, r, h.logger) == nil {
		return
	}

	var req blockRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.accounts.SetBlocked(r.Context(), ps.ByName("id"), req.Blocked); err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// DeleteUser handles DELETE /api/admin/users/:id.
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if requireAdmin(w, r, h.logger) == nil {
		return
	}

	if err := h.accounts.DeleteUser(r.Context(), ps.ByName("id")); err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ListTickets handles GET /api/admin/tickets.
func (h *AdminHandler) ListTickets(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if requireAdmin(w, r, h.logger) == nil {
		return
	}

	tickets, err := h.tickets.ListAll(r.Context())
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, tickets)
}

// CloseTicket handles POST /api/admin/tickets/:id/close.
func (h *AdminHandler) CloseTicket(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if requireAdmin(w, r, h.logger) == nil {
		return
	}

	if err := h.tickets.Close(r.Context(), ps.ByName("id")); err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "closed"})
}
