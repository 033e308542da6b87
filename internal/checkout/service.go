package checkout

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/kristopher-lab/verdure-premium-plant-shop/pkg/errors"
	"github.com/kristopher-lab/verdure-premium-plant-shop/pkg/pagination"

	"github.com/kristopher-lab/verdure-premium-plant-shop/internal/cart"
	"github.com/kristopher-lab/verdure-premium-plant-shop/internal/domain"
	"github.com/kristopher-lab/verdure-premium-plant-shop/internal/event"
	"github.com/kristopher-lab/verdure-premium-plant-shop/internal/store"
)

// Descriptor returns the store descriptor for the order entity type.
func Descriptor() store.Descriptor[domain.Order] {
	return store.Descriptor[domain.Order]{
		Name:      "order",
		IndexName: "orders",
		New: func(id string) domain.Order {
			return domain.Order{
				ID:        id,
				Items:     []domain.CartItem{},
				CreatedAt: time.Now().UTC(),
			}
		},
	}
}

// Input carries a checkout request. Exactly one customer identity path must
// resolve: a known user id, or guest name plus email.
type Input struct {
	CartID string `json:"cartId" validate:"required"`
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email" validate:"omitempty,email"`
}

// Service turns a cart into an immutable order. The order write and the cart
// clear are two separate atomic steps; a crash between them leaves a
// committed order next to a still-full cart, which the storefront tolerates.
type Service struct {
	orders   *store.Store[domain.Order]
	carts    *cart.Service
	users    UserResolver
	producer *event.Producer
	logger   *slog.Logger
}

// UserResolver resolves the customer identity for authenticated checkouts.
type UserResolver interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// NewService creates a new checkout service.
func NewService(orders *store.Store[domain.Order], carts *cart.Service, users UserResolver, producer *event.Producer, logger *slog.Logger) *Service {
	return &Service{
		orders:   orders,
		carts:    carts,
		users:    users,
		producer: producer,
		logger:   logger,
	}
}

// Checkout commits the cart's current contents as a new order and empties the
// cart. The order carries a full copy of the cart lines, so later cart
// activity never changes what was bought. Inventory is not re-verified here;
// the add-to-cart check is the only stock gate.
func (s *Service) Checkout(ctx context.Context, input Input) (*domain.Order, error) {
	if input.CartID == "" {
		return nil, apperrors.InvalidInput("cart id is required")
	}

	customer, err := s.resolveCustomer(ctx, input)
	if err != nil {
		return nil, err
	}

	current, err := s.carts.Get(ctx, input.CartID)
	if err != nil {
		return nil, err
	}
	if len(current.Items) == 0 {
		return nil, apperrors.EmptyCart(input.CartID)
	}

	order := domain.Order{
		ID:        "order_" + uuid.New().String(),
		CartID:    current.ID,
		Items:     snapshotItems(current.Items),
		Total:     current.Subtotal,
		Customer:  customer,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.orders.Create(ctx, order.ID, order)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	if _, err := s.carts.Clear(ctx, input.CartID); err != nil {
		// The order is already committed; the stale cart is the lesser harm.
		s.logger.ErrorContext(ctx, "failed to clear cart after checkout",
			slog.String("order_id", created.ID),
			slog.String("cart_id", input.CartID),
			slog.String("error", err.Error()),
		)
	}

	if err := s.producer.PublishOrderCreated(ctx, &created); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order.created event",
			slog.String("order_id", created.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "order created",
		slog.String("order_id", created.ID),
		slog.String("cart_id", created.CartID),
		slog.Int64("total", created.Total),
		slog.Int("items", len(created.Items)),
	)

	return &created, nil
}

// GetOrder retrieves an order by id.
func (s *Service) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("order id is required")
	}

	order, err := s.orders.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}

	return &order, nil
}

// ListOrders returns one page of orders in creation order.
func (s *Service) ListOrders(ctx context.Context, cursor string, limit int) (pagination.Page[domain.Order], error) {
	page, err := s.orders.List(ctx, cursor, limit)
	if err != nil {
		return pagination.Page[domain.Order]{}, fmt.Errorf("list orders: %w", err)
	}
	return page, nil
}

// resolveCustomer picks the customer identity: the stored profile when a user
// id is supplied, otherwise guest-provided name and email. Neither path
// resolving is a rejection before any state changes.
func (s *Service) resolveCustomer(ctx context.Context, input Input) (domain.Customer, error) {
	if input.UserID != "" {
		account, err := s.users.GetByID(ctx, input.UserID)
		if err != nil {
			return domain.Customer{}, err
		}
		return domain.Customer{Name: account.Name, Email: account.Email}, nil
	}

	if input.Name == "" || input.Email == "" {
		return domain.Customer{}, apperrors.MissingCustomerInfo()
	}

	return domain.Customer{Name: input.Name, Email: input.Email}, nil
}

func snapshotItems(items []domain.CartItem) []domain.CartItem {
	snapshot := make([]domain.CartItem, len(items))
	copy(snapshot, items)
	return snapshot
}
