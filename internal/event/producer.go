package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kristopher-lab/verdure-premium-plant-shop/internal/domain"
	pkgkafka "github.com/kristopher-lab/verdure-premium-plant-shop/pkg/kafka"
	"github.com/kristopher-lab/verdure-premium-plant-shop/pkg/logger"
)

// Kafka topic constants for storefront domain events.
const (
	TopicCartUpdated  = "verdure.cart.updated"
	TopicCartMerged   = "verdure.cart.merged"
	TopicOrderCreated = "verdure.order.created"
)

// Aggregate type constants.
const (
	AggregateTypeCart  = "cart"
	AggregateTypeOrder = "order"
)

// Source identifier for events originating from the storefront.
const SourceStorefront = "storefront"

// CartUpdatedData is the payload for a cart.updated event.
type CartUpdatedData struct {
	CartID    string `json:"cart_id"`
	UserID    string `json:"user_id,omitempty"`
	ItemCount int    `json:"item_count"`
	Subtotal  int64  `json:"subtotal"`
}

// CartMergedData is the payload for a cart.merged event.
type CartMergedData struct {
	TargetCartID string `json:"target_cart_id"`
	SourceCartID string `json:"source_cart_id"`
	ItemCount    int    `json:"item_count"`
	Subtotal     int64  `json:"subtotal"`
}

// OrderCreatedData is the payload for an order.created event.
type OrderCreatedData struct {
	OrderID       string `json:"order_id"`
	CartID        string `json:"cart_id"`
	Total         int64  `json:"total"`
	ItemCount     int    `json:"item_count"`
	CustomerEmail string `json:"customer_email"`
}

// Producer publishes storefront domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer for the storefront.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishCartUpdated publishes a cart.updated event for the given cart.
func (p *Producer) PublishCartUpdated(ctx context.Context, cart *domain.Cart) error {
	data := CartUpdatedData{
		CartID:    cart.ID,
		UserID:    cart.UserID,
		ItemCount: cart.ItemCount(),
		Subtotal:  cart.Subtotal,
	}

	return p.publish(ctx, TopicCartUpdated, "cart.updated", cart.ID, AggregateTypeCart, data)
}

// PublishCartMerged publishes a cart.merged event after a guest cart has been
// folded into a user cart.
func (p *Producer) PublishCartMerged(ctx context.Context, target *domain.Cart, sourceCartID string) error {
	data := CartMergedData{
		TargetCartID: target.ID,
		SourceCartID: sourceCartID,
		ItemCount:    target.ItemCount(),
		Subtotal:     target.Subtotal,
	}

	return p.publish(ctx, TopicCartMerged, "cart.merged", target.ID, AggregateTypeCart, data)
}

// PublishOrderCreated publishes an order.created event for a committed order.
func (p *Producer) PublishOrderCreated(ctx context.Context, order *domain.Order) error {
	itemCount := 0
	for _, item := range order.Items {
		itemCount += item.Quantity
	}

	data := OrderCreatedData{
		OrderID:       order.ID,
		CartID:        order.CartID,
		Total:         order.Total,
		ItemCount:     itemCount,
		CustomerEmail: order.Customer.Email,
	}

	return p.publish(ctx, TopicOrderCreated, "order.created", order.ID, AggregateTypeOrder, data)
}

func (p *Producer) publish(ctx context.Context, topic, eventType, aggregateID, aggregateType string, data any) error {
	evt, err := pkgkafka.NewEvent(eventType, aggregateID, aggregateType, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("build %s event: %w", eventType, err)
	}

	if id := logger.CorrelationIDFromContext(ctx); id != "" {
		evt.WithCorrelationID(id)
	}

	return p.kafka.Publish(ctx, topic, evt)
}
