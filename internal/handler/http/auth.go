package http

import (
	"log/slog"
	"net/http"

	"github.com/kristopher-lab/verdure-premium-plant-shop/pkg/httputil"
	"github.com/kristopher-lab/verdure-premium-plant-shop/pkg/validator"

	"github.com/kristopher-lab/verdure-premium-plant-shop/internal/domain"
	"github.com/kristopher-lab/verdure-premium-plant-shop/internal/user"
)

// AuthHandler handles HTTP requests for the login endpoint.
type AuthHandler struct {
	users  *user.Service
	logger *slog.Logger
}

// NewAuthHandler creates a new auth HTTP handler.
func NewAuthHandler(svc *user.Service, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		users:  svc,
		logger: logger,
	}
}

// LoginRequest is the JSON request body for logging in.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the resolved account and its session token.
type LoginResponse struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	account, token, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, LoginResponse{User: account, Token: token})
}
