package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kristopher-lab/verdure-premium-plant-shop/pkg/httputil"
	"github.com/kristopher-lab/verdure-premium-plant-shop/pkg/pagination"
	"github.com/kristopher-lab/verdure-premium-plant-shop/pkg/validator"

	"github.com/kristopher-lab/verdure-premium-plant-shop/internal/checkout"
)

// CheckoutHandler handles HTTP requests for checkout and order endpoints.
type CheckoutHandler struct {
	checkout *checkout.Service
	logger   *slog.Logger
}

// NewCheckoutHandler creates a new checkout HTTP handler.
func NewCheckoutHandler(svc *checkout.Service, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: svc,
		logger:   logger,
	}
}

// CheckoutRequest is the JSON request body for committing a cart as an order.
type CheckoutRequest struct {
	CartID string `json:"cartId" validate:"required"`
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email" validate:"omitempty,email"`
}

// Checkout handles POST /api/checkout
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	order, err := h.checkout.Checkout(r.Context(), checkout.Input{
		CartID: req.CartID,
		UserID: req.UserID,
		Name:   req.Name,
		Email:  req.Email,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusCreated, order)
}

// ListOrders handles GET /api/orders
func (h *CheckoutHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	params := pagination.FromRequest(r)

	page, err := h.checkout.ListOrders(r.Context(), params.Cursor, params.Limit)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, page)
}

// GetOrder handles GET /api/orders/{id}
func (h *CheckoutHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	order, err := h.checkout.GetOrder(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, order)
}
