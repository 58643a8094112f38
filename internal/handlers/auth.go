package handlers

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"gp1-tickets/internal/models"
	"gp1-tickets/internal/services"
)

// AuthHandler serves the admin login endpoint.
type AuthHandler struct {
	auth   *services.AuthService
	logger zerolog.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(auth *services.AuthService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

type loginRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login exchanges the admin password for a bearer token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, fmt.Errorf("%w: %v", models.ErrValidationRejected, err))
		return
	}

	token, err := h.auth.Login(r.Context(), req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{Token: token})
}
