package handler

import (
	"net/http"

	"vanphal/internal/account"
	"vanphal/internal/middleware"
	"vanphal/internal/model"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog"
)

// AuthHandler handles login, registration and profile requests.
type AuthHandler struct {
	accounts *account.Service
	logger   zerolog.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(accounts *account.Service, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		accounts: accounts,
		logger:   logger.With().Str("handler", "auth").Logger(),
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	token, user, err := h.accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{Token: token, User: *user})
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   model.ErrCodeInvalidJSON,
			Message: "Name, email and password are required",
		})
		return
	}

	token, user, err := h.accounts.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, sessionResponse{Token: token, User: *user})
}

// Logout handles POST /api/auth/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	token := middleware.TokenFrom(r.Context())
	if token == "" {
		writeError(w, model.ErrUnauthenticated, h.logger)
		return
	}

	if err := h.accounts.Logout(r.Context(), token); err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	user := requireUser(w, r, h.logger)
	if user == nil {
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// UpdateProfile handles PUT /api/auth/profile.
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if requireUser(w, r, h.logger) == nil {
		return
	}

	var profile model.User
	if !decodeJSON(w, r, &profile) {
		return
	}

	updated, err := h.accounts.UpdateProfile(r.Context(), middleware.TokenFrom(r.Context()), profile)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}
