package cart

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/kristopher-lab/verdure-premium-plant-shop/pkg/errors"

	"github.com/kristopher-lab/verdure-premium-plant-shop/internal/catalog"
	"github.com/kristopher-lab/verdure-premium-plant-shop/internal/domain"
	"github.com/kristopher-lab/verdure-premium-plant-shop/internal/event"
	"github.com/kristopher-lab/verdure-premium-plant-shop/internal/store"
)

// Cart operation upper-bound limits to prevent abuse.
const (
	// MaxQuantityPerItem is the maximum quantity allowed for a single cart line.
	MaxQuantityPerItem = 100
	// MaxItemsPerCart is the maximum number of distinct lines allowed in a cart.
	MaxItemsPerCart = 50
)

// Descriptor returns the store descriptor for the cart entity type.
func Descriptor() store.Descriptor[domain.Cart] {
	return store.Descriptor[domain.Cart]{
		Name:      "cart",
		IndexName: "carts",
		New: func(id string) domain.Cart {
			now := time.Now().UTC()
			return domain.Cart{
				ID:        id,
				Items:     []domain.CartItem{},
				Subtotal:  0,
				CreatedAt: now,
				UpdatedAt: now,
			}
		},
	}
}

// AddItemInput holds the parameters for adding an item to a cart. Name, image,
// and price are the denormalized snapshot the line carries from add-time on.
type AddItemInput struct {
	ProductID   string `json:"productId" validate:"required"`
	VariantName string `json:"variantName"`
	Name        string `json:"name" validate:"required,min=1,max=500"`
	Image       string `json:"image"`
	Price       int64  `json:"price" validate:"gte=0"`
	Quantity    int    `json:"quantity" validate:"required,gte=1"`
}

// Service implements the cart aggregate's mutation protocol. Every operation
// is a single Mutate call against the cart store, so each is individually
// race-free per cart id.
type Service struct {
	carts    *store.Store[domain.Cart]
	catalog  *catalog.Service
	producer *event.Producer
	logger   *slog.Logger
}

// NewService creates a new cart service.
func NewService(carts *store.Store[domain.Cart], catalogSvc *catalog.Service, producer *event.Producer, logger *slog.Logger) *Service {
	return &Service{
		carts:    carts,
		catalog:  catalogSvc,
		producer: producer,
		logger:   logger,
	}
}

// Get retrieves a cart by id.
func (s *Service) Get(ctx context.Context, cartID string) (*domain.Cart, error) {
	if cartID == "" {
		return nil, apperrors.InvalidInput("cart id is required")
	}

	cart, err := s.carts.Get(ctx, cartID)
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}

	return &cart, nil
}

// GetOrCreate returns the cart with the supplied id if it exists; otherwise it
// creates a fresh cart under a newly generated id. Carts come into being
// lazily on first touch, and creation is idempotent, so client requests racing
// to initialize the same id converge on one cart.
func (s *Service) GetOrCreate(ctx context.Context, cartID string) (*domain.Cart, error) {
	if cartID != "" {
		cart, err := s.carts.Get(ctx, cartID)
		if err == nil {
			return &cart, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("get cart: %w", err)
		}
	}

	id := uuid.New().String()
	cart, err := s.carts.Create(ctx, id, s.carts.NewValue(id))
	if err != nil {
		return nil, fmt.Errorf("create cart: %w", err)
	}

	s.logger.InfoContext(ctx, "cart created", slog.String("cart_id", id))

	return &cart, nil
}

// AddItem adds a line to the cart. If a line with the same product and variant
// already exists, quantities merge instead of creating a duplicate line. The
// variant must exist on the product and carry enough inventory; both are
// checked here at add-time against a live read and not re-checked at checkout.
func (s *Service) AddItem(ctx context.Context, cartID string, input AddItemInput) (*domain.Cart, error) {
	if cartID == "" {
		return nil, apperrors.InvalidInput("cart id is required")
	}
	if input.ProductID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}
	if input.Quantity <= 0 {
		return nil, apperrors.InvalidInput("quantity must be greater than 0")
	}
	if input.Quantity > MaxQuantityPerItem {
		return nil, apperrors.InvalidInput(fmt.Sprintf("quantity must not exceed %d", MaxQuantityPerItem))
	}
	if input.Price < 0 {
		return nil, apperrors.InvalidInput("price must not be negative")
	}

	product, err := s.catalog.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}

	if input.VariantName != "" {
		variant := product.FindVariant(input.VariantName)
		if variant == nil {
			return nil, apperrors.VariantNotFound(input.ProductID, input.VariantName)
		}
		if input.Quantity > variant.Inventory {
			return nil, apperrors.OutOfStock(input.ProductID, input.VariantName, variant.Inventory)
		}
	}

	cart, err := s.carts.Get(ctx, cartID)
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}
	if len(cart.Items) >= MaxItemsPerCart && cart.FindItemIndex(input.ProductID, input.VariantName) < 0 {
		return nil, apperrors.InvalidInput(fmt.Sprintf("cart must not contain more than %d items", MaxItemsPerCart))
	}

	updated, err := s.carts.Mutate(ctx, cartID, func(c domain.Cart) domain.Cart {
		return addLine(c, input)
	})
	if err != nil {
		return nil, fmt.Errorf("mutate cart: %w", err)
	}

	s.publishUpdated(ctx, &updated)

	s.logger.InfoContext(ctx, "item added to cart",
		slog.String("cart_id", cartID),
		slog.String("product_id", input.ProductID),
		slog.String("variant_name", input.VariantName),
		slog.Int("quantity", input.Quantity),
	)

	return &updated, nil
}

// UpdateQuantity sets a line's quantity to the given absolute value. A
// non-positive quantity removes the line entirely rather than erroring.
func (s *Service) UpdateQuantity(ctx context.Context, cartID, itemID string, quantity int) (*domain.Cart, error) {
	if cartID == "" {
		return nil, apperrors.InvalidInput("cart id is required")
	}
	if itemID == "" {
		return nil, apperrors.InvalidInput("item id is required")
	}
	if quantity > MaxQuantityPerItem {
		return nil, apperrors.InvalidInput(fmt.Sprintf("quantity must not exceed %d", MaxQuantityPerItem))
	}

	updated, err := s.carts.Mutate(ctx, cartID, func(c domain.Cart) domain.Cart {
		if quantity <= 0 {
			c.Items = dropLine(c.Items, itemID)
		} else {
			for i := range c.Items {
				if c.Items[i].ID == itemID {
					c.Items[i].Quantity = quantity
					break
				}
			}
		}
		c.RecalculateSubtotal()
		c.UpdatedAt = time.Now().UTC()
		return c
	})
	if err != nil {
		return nil, fmt.Errorf("mutate cart: %w", err)
	}

	s.publishUpdated(ctx, &updated)

	s.logger.InfoContext(ctx, "cart item quantity updated",
		slog.String("cart_id", cartID),
		slog.String("item_id", itemID),
		slog.Int("quantity", quantity),
	)

	return &updated, nil
}

// RemoveItem drops a line from the cart. Removing an absent line is a no-op,
// not an error.
func (s *Service) RemoveItem(ctx context.Context, cartID, itemID string) (*domain.Cart, error) {
	if cartID == "" {
		return nil, apperrors.InvalidInput("cart id is required")
	}
	if itemID == "" {
		return nil, apperrors.InvalidInput("item id is required")
	}

	updated, err := s.carts.Mutate(ctx, cartID, func(c domain.Cart) domain.Cart {
		c.Items = dropLine(c.Items, itemID)
		c.RecalculateSubtotal()
		c.UpdatedAt = time.Now().UTC()
		return c
	})
	if err != nil {
		return nil, fmt.Errorf("mutate cart: %w", err)
	}

	s.publishUpdated(ctx, &updated)

	s.logger.InfoContext(ctx, "item removed from cart",
		slog.String("cart_id", cartID),
		slog.String("item_id", itemID),
	)

	return &updated, nil
}

// Clear empties the cart's lines and resets the subtotal to zero. The cart
// record itself survives; only a merge deletes a cart.
func (s *Service) Clear(ctx context.Context, cartID string) (*domain.Cart, error) {
	if cartID == "" {
		return nil, apperrors.InvalidInput("cart id is required")
	}

	updated, err := s.carts.Mutate(ctx, cartID, func(c domain.Cart) domain.Cart {
		c.Items = []domain.CartItem{}
		c.Subtotal = 0
		c.UpdatedAt = time.Now().UTC()
		return c
	})
	if err != nil {
		return nil, fmt.Errorf("mutate cart: %w", err)
	}

	s.logger.InfoContext(ctx, "cart cleared", slog.String("cart_id", cartID))

	return &updated, nil
}

// Merge folds the guest cart into the user-keyed cart and deletes the guest
// cart. Lines matching on product and variant combine quantities rather than
// duplicate. The two writes are independent atomic operations, not one
// transaction: if the process dies after the fold but before the delete, the
// guest cart lingers and a retried merge double-counts its quantities.
func (s *Service) Merge(ctx context.Context, userID, guestCartID string) (*domain.Cart, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}
	if guestCartID == "" {
		return nil, apperrors.InvalidInput("guest cart id is required")
	}

	// The user's cart is keyed by the user id itself. Create is idempotent,
	// so a pre-existing user cart is returned untouched.
	target := s.carts.NewValue(userID)
	target.UserID = userID
	if _, err := s.carts.Create(ctx, userID, target); err != nil {
		return nil, fmt.Errorf("create user cart: %w", err)
	}

	source, err := s.carts.Get(ctx, guestCartID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Nothing to fold; the user cart stands as-is.
			merged, err := s.carts.Get(ctx, userID)
			if err != nil {
				return nil, fmt.Errorf("get user cart: %w", err)
			}
			return &merged, nil
		}
		return nil, fmt.Errorf("get guest cart: %w", err)
	}

	merged, err := s.carts.Mutate(ctx, userID, func(c domain.Cart) domain.Cart {
		c.UserID = userID
		for _, item := range source.Items {
			c = addLine(c, AddItemInput{
				ProductID:   item.ProductID,
				VariantName: item.VariantName,
				Name:        item.Name,
				Image:       item.Image,
				Price:       item.Price,
				Quantity:    item.Quantity,
			})
		}
		return c
	})
	if err != nil {
		return nil, fmt.Errorf("merge carts: %w", err)
	}

	if _, err := s.carts.Delete(ctx, guestCartID); err != nil {
		return nil, fmt.Errorf("delete guest cart: %w", err)
	}

	if err := s.producer.PublishCartMerged(ctx, &merged, guestCartID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.merged event",
			slog.String("cart_id", merged.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "guest cart merged",
		slog.String("user_cart_id", userID),
		slog.String("guest_cart_id", guestCartID),
		slog.Int("items", len(merged.Items)),
	)

	return &merged, nil
}

// addLine applies the add-or-merge rule to a cart value: an existing line with
// the same product and variant gains the requested quantity, otherwise a new
// line is appended under its deterministic id. Subtotal and updatedAt follow.
func addLine(c domain.Cart, input AddItemInput) domain.Cart {
	if i := c.FindItemIndex(input.ProductID, input.VariantName); i >= 0 {
		c.Items[i].Quantity += input.Quantity
	} else {
		c.Items = append(c.Items, domain.CartItem{
			ID:          domain.LineItemID(input.ProductID, input.VariantName),
			ProductID:   input.ProductID,
			Name:        input.Name,
			Image:       input.Image,
			VariantName: input.VariantName,
			Price:       input.Price,
			Quantity:    input.Quantity,
		})
	}
	c.RecalculateSubtotal()
	c.UpdatedAt = time.Now().UTC()
	return c
}

// dropLine returns the items slice without the line carrying the given id.
func dropLine(items []domain.CartItem, itemID string) []domain.CartItem {
	kept := make([]domain.CartItem, 0, len(items))
	for _, item := range items {
		if item.ID != itemID {
			kept = append(kept, item)
		}
	}
	return kept
}

func (s *Service) publishUpdated(ctx context.Context, cart *domain.Cart) {
	if err := s.producer.PublishCartUpdated(ctx, cart); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.updated event",
			slog.String("cart_id", cart.ID),
			slog.String("error", err.Error()),
		)
	}
}
