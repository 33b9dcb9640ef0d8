package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"vanphal/internal/middleware"
	"vanphal/internal/model"

	"github.com/rs/zerolog"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		return
	}
}

// statusForCode maps a domain error code onto an HTTP status.
func statusForCode(code string) int {
	switch code {
	case model.ErrCodeUnauthenticated, model.ErrCodeInvalidCredentials:
		return http.StatusUnauthorized
	case model.ErrCodeForbidden, model.ErrCodeAccountBlocked:
		return http.StatusForbidden
	case model.ErrCodeProductNotFound, model.ErrCodeOrderNotFound, model.ErrCodeTicketNotFound:
		return http.StatusNotFound
	case model.ErrCodeDuplicateRegistr:
		return http.StatusConflict
	case model.ErrCodeInvalidCoupon, model.ErrCodeCouponNotApplic,
		model.ErrCodeIncompleteShipping, model.ErrCodeInvalidQuantity,
		model.ErrCodeEmptyCart, model.ErrCodeInvalidTransition,
		model.ErrCodeInvalidJSON:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// writeError translates an error into a JSON error response. Domain errors
// keep their code and user-facing message; anything else is an unexpected
// storage or infrastructure failure and surfaces as a generic "could not
// save" so internals stay hidden.
func writeError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		writeJSON(w, statusForCode(domainErr.Code), ErrorResponse{
			Error:   domainErr.Code,
			Message: domainErr.Message,
		})
		return
	}

	logger.Error().Err(err).Msg("unexpected handler error")
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:   model.ErrCodeInternalError,
		Message: "Could not save your changes, please try again",
	})
}

// decodeJSON decodes the request body into v, reporting INVALID_JSON on
// failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   model.ErrCodeInvalidJSON,
			Message: "Invalid request body",
		})
		return false
	}
	return true
}

// requireUser returns the authenticated user or writes a 401.
func requireUser(w http.ResponseWriter, r *http.Request, logger zerolog.Logger) *model.User {
	user := middleware.UserFrom(r.Context())
	if user == nil {
		writeError(w, model.ErrUnauthenticated, logger)
		return nil
	}
	return user
}

// requireAdmin returns the authenticated admin or writes a 401/403.
func requireAdmin(w http.ResponseWriter, r *http.Request, logger zerolog.Logger) *model.User {
	user := middleware.UserFrom(r.Context())
	if user == nil {
		writeError(w, model.ErrUnauthenticated, logger)
		return nil
	}
	if !user.IsAdmin() {
		writeError(w, model.ErrForbidden, logger)
		return nil
	}
	return user
}
