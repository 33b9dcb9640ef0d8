package handler

import (
	"net/http"

	"vanphal/internal/model"
	"vanphal/internal/ticket"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog"
)

// TicketHandler handles the support-ticket inbox for both sides of the
// conversation.
type TicketHandler struct {
	tickets *ticket.Service
	logger  zerolog.Logger
}

// NewTicketHandler creates a new ticket handler.
func NewTicketHandler(tickets *ticket.Service, logger zerolog.Logger) *TicketHandler {
	return &TicketHandler{
		tickets: tickets,
		logger:  logger.With().Str("handler", "ticket").Logger(),
	}
}

type createTicketRequest struct {
	OrderID string `json:"orderId,omitempty"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type replyRequest struct {
	Message string `json:"message"`
}

// Create handles POST /api/tickets.
func (h *TicketHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	user := requireUser(w, r, h.logger)
	if user == nil {
		return
	}

	var req createTicketRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.Subject == "" || req.Message == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   model.ErrCodeInvalidJSON,
			Message: "Subject and message are required",
		})
		return
	}

	created, err := h.tickets.Create(r.Context(), user, req.OrderID, req.Subject, req.Message)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// ListMine handles GET /api/tickets.
func (h *TicketHandler) ListMine(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	user := requireUser(w, r, h.logger)
	if user == nil {
		return
	}

	tickets, err := h.tickets.ListByUser(r.Context(), user.ID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, tickets)
}

// Reply handles POST /api/tickets/:id/replies. Customers may only reply to
// their own tickets.
func (h *TicketHandler) Reply(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	user := requireUser(w, r, h.logger)
	if user == nil {
		return
	}

	var req replyRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ticketID := ps.ByName("id")
	if !user.IsAdmin() {
		if !h.ownsTicket(w, r, user, ticketID) {
			return
		}
	}

	updated, err := h.tickets.Reply(r.Context(), ticketID, user, req.Message)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// MarkRead handles POST /api/tickets/:id/read.
func (h *TicketHandler) MarkRead(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	user := requireUser(w, r, h.logger)
	if user == nil {
		return
	}

	ticketID := ps.ByName("id")
	if !user.IsAdmin() {
		if !h.ownsTicket(w, r, user, ticketID) {
			return
		}
	}

	if err := h.tickets.MarkRead(r.Context(), ticketID, user.Role); err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "read"})
}

func (h *TicketHandler) ownsTicket(w http.ResponseWriter, r *http.Request, user *model.User, ticketID string) bool {
	tickets, err := h.tickets.ListByUser(r.Context(), user.ID)
	if err != nil {
		writeError(w, err, h.logger)
		return false
	}
	for _, t := range tickets {
		if t.ID == ticketID {
			return true
		}
	}
	writeError(w, model.ErrTicketNotFound, h.logger)
	return false
}
