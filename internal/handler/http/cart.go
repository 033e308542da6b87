package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/kristopher-lab/verdure-premium-plant-shop/pkg/errors"
	"github.com/kristopher-lab/verdure-premium-plant-shop/pkg/httputil"
	"github.com/kristopher-lab/verdure-premium-plant-shop/pkg/validator"

	"github.com/kristopher-lab/verdure-premium-plant-shop/internal/cart"
)

// CartHandler handles HTTP requests for cart endpoints.
type CartHandler struct {
	carts  *cart.Service
	logger *slog.Logger
}

// NewCartHandler creates a new cart HTTP handler.
func NewCartHandler(svc *cart.Service, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		carts:  svc,
		logger: logger,
	}
}

// --- Request DTOs ---

// GetOrCreateRequest is the JSON request body for resolving a cart session.
// CartID may be empty or stale; a fresh cart is created in either case.
type GetOrCreateRequest struct {
	CartID string `json:"cartId"`
}

// AddItemRequest is the JSON request body for adding an item to a cart.
type AddItemRequest struct {
	ProductID   string `json:"productId" validate:"required"`
	VariantName string `json:"variantName"`
	Name        string `json:"name" validate:"required,min=1,max=500"`
	Image       string `json:"image"`
	Price       int64  `json:"price" validate:"gte=0"`
	Quantity    int    `json:"quantity" validate:"required,gte=1"`
}

// UpdateQuantityRequest is the JSON request body for setting a line's quantity.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// MergeRequest is the JSON request body for folding a guest cart into a
// user's cart on login.
type MergeRequest struct {
	UserID      string `json:"userId" validate:"required"`
	GuestCartID string `json:"guestCartId" validate:"required"`
}

// --- Handlers ---

// GetOrCreate handles POST /api/cart
func (h *CartHandler) GetOrCreate(w http.ResponseWriter, r *http.Request) {
	var req GetOrCreateRequest
	// An empty body means a brand-new session; decode errors on a present
	// body are still rejected.
	if r.ContentLength > 0 {
		if err := validator.DecodeAndValidate(r, &req); err != nil {
			httputil.WriteValidationError(w, err)
			return
		}
	}

	result, err := h.carts.GetOrCreate(r.Context(), req.CartID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, result)
}

// Get handles GET /api/cart/{cartId}
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	cartID := chi.URLParam(r, "cartId")

	result, err := h.carts.Get(r.Context(), cartID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, result)
}

// AddItem handles POST /api/cart/{cartId}/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	cartID := chi.URLParam(r, "cartId")

	var req AddItemRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	result, err := h.carts.AddItem(r.Context(), cartID, cart.AddItemInput{
		ProductID:   req.ProductID,
		VariantName: req.VariantName,
		Name:        req.Name,
		Image:       req.Image,
		Price:       req.Price,
		Quantity:    req.Quantity,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, result)
}

// UpdateQuantity handles PUT /api/cart/{cartId}/items/{itemId}
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	cartID := chi.URLParam(r, "cartId")
	itemID := chi.URLParam(r, "itemId")

	var req UpdateQuantityRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	result, err := h.carts.UpdateQuantity(r.Context(), cartID, itemID, req.Quantity)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, result)
}

// RemoveItem handles DELETE /api/cart/{cartId}/items/{itemId}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	cartID := chi.URLParam(r, "cartId")
	itemID := chi.URLParam(r, "itemId")
	if itemID == "" {
		httputil.WriteError(w, r, apperrors.InvalidInput("item id is required"), h.logger)
		return
	}

	result, err := h.carts.RemoveItem(r.Context(), cartID, itemID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, result)
}

// Merge handles POST /api/cart/merge
func (h *CartHandler) Merge(w http.ResponseWriter, r *http.Request) {
	var req MergeRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	result, err := h.carts.Merge(r.Context(), req.UserID, req.GuestCartID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, result)
}
