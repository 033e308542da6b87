package cart

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/kristopher-lab/verdure-premium-plant-shop/pkg/errors"
	pkgkafka "github.com/kristopher-lab/verdure-premium-plant-shop/pkg/kafka"

	"github.com/kristopher-lab/verdure-premium-plant-shop/internal/catalog"
	"github.com/kristopher-lab/verdure-premium-plant-shop/internal/domain"
	"github.com/kristopher-lab/verdure-premium-plant-shop/internal/event"
	"github.com/kristopher-lab/verdure-premium-plant-shop/internal/store"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func setupTestCart(t *testing.T) (*Service, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	logger := newTestLogger()
	locks := store.NewKeyLocks()

	products := store.New(client, catalog.ProductDescriptor(), locks)
	catalogSvc := catalog.NewService(products, logger)
	require.NoError(t, catalogSvc.EnsureSeed(context.Background()))

	// Kafka producer pointed at nothing; publish failures are logged, not fatal.
	kafkaProducer := pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig([]string{"localhost:9092"}), logger)
	producer := event.NewProducer(kafkaProducer, logger)

	carts := store.New(client, Descriptor(), locks)
	return NewService(carts, catalogSvc, producer, logger), mr
}

func monsteraSmall() AddItemInput {
	return AddItemInput{
		ProductID:   "prod_01",
		VariantName: `6" Pot`,
		Name:        "Monstera Deliciosa",
		Image:       "https://images.unsplash.com/photo-1614594975525-e45190c55d0b?q=80&w=800",
		Price:       3500,
		Quantity:    1,
	}
}

// ---------------------------------------------------------------------------
// GetOrCreate / Get
// ---------------------------------------------------------------------------

func TestGetOrCreate_NewSession(t *testing.T) {
	svc, _ := setupTestCart(t)

	result, err := svc.GetOrCreate(context.Background(), "")
	require.NoError(t, err)
	assert.NotEmpty(t, result.ID)
	assert.Empty(t, result.Items)
	assert.Zero(t, result.Subtotal)
}

func TestGetOrCreate_ExistingCart(t *testing.T) {
	svc, _ := setupTestCart(t)
	ctx := context.Background()

	created, err := svc.GetOrCreate(ctx, "")
	require.NoError(t, err)

	resolved, err := svc.GetOrCreate(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, resolved.ID)
}

func TestGetOrCreate_StaleIDGetsFreshCart(t *testing.T) {
	svc, _ := setupTestCart(t)

	result, err := svc.GetOrCreate(context.Background(), "cart-that-never-existed")
	require.NoError(t, err)
	assert.NotEqual(t, "cart-that-never-existed", result.ID)
	assert.Empty(t, result.Items)
}

func TestGet_NotFound(t *testing.T) {
	svc, _ := setupTestCart(t)

	_, err := svc.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

// ---------------------------------------------------------------------------
// AddItem
// ---------------------------------------------------------------------------

func TestAddItem_NewLine(t *testing.T) {
	svc, _ := setupTestCart(t)
	ctx := context.Background()

	created, err := svc.GetOrCreate(ctx, "")
	require.NoError(t, err)

	updated, err := svc.AddItem(ctx, created.ID, monsteraSmall())
	require.NoError(t, err)

	require.Len(t, updated.Items, 1)
	line := updated.Items[0]
	assert.Equal(t, `prod_01-6" Pot`, line.ID)
	assert.Equal(t, "prod_01", line.ProductID)
	assert.Equal(t, 1, line.Quantity)
	assert.Equal(t, int64(3500), updated.Subtotal)
}

func TestAddItem_MergesDuplicateLine(t *testing.T) {
	svc, _ := setupTestCart(t)
	ctx := context.Background()

	created, err := svc.GetOrCreate(ctx, "")
	require.NoError(t, err)

	_, err = svc.AddItem(ctx, created.ID, monsteraSmall())
	require.NoError(t, err)

	input := monsteraSmall()
	input.Quantity = 2
	updated, err := svc.AddItem(ctx, created.ID, input)
	require.NoError(t, err)

	require.Len(t, updated.Items, 1)
	assert.Equal(t, 3, updated.Items[0].Quantity)
	assert.Equal(t, int64(3*3500), updated.Subtotal)
}

func TestAddItem_DifferentVariantsStaySeparate(t *testing.T) {
	svc, _ := setupTestCart(t)
	ctx := context.Background()

	created, err := svc.GetOrCreate(ctx, "")
	require.NoError(t, err)

	_, err = svc.AddItem(ctx, created.ID, monsteraSmall())
	require.NoError(t, err)

	large := monsteraSmall()
	large.VariantName = `10" Pot`
	large.Price = 6500
	updated, err := svc.AddItem(ctx, created.ID, large)
	require.NoError(t, err)

	require.Len(t, updated.Items, 2)
	assert.Equal(t, `prod_01-6" Pot`, updated.Items[0].ID)
	assert.Equal(t, `prod_01-10" Pot`, updated.Items[1].ID)
	assert.Equal(t, int64(3500+6500), updated.Subtotal)
}

func TestAddItem_UnknownProduct(t *testing.T) {
	svc, _ := setupTestCart(t)
	ctx := context.Background()

	created, err := svc.GetOrCreate(ctx, "")
	require.NoError(t, err)

	input := monsteraSmall()
	input.ProductID = "prod_99"
	_, err = svc.AddItem(ctx, created.ID, input)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestAddItem_UnknownVariant(t *testing.T) {
	svc, _ := setupTestCart(t)
	ctx := context.Background()

	created, err := svc.GetOrCreate(ctx, "")
	require.NoError(t, err)

	input := monsteraSmall()
	input.VariantName = `12" Pot`
	_, err = svc.AddItem(ctx, created.ID, input)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VARIANT_NOT_FOUND", appErr.Code)
	assert.Equal(t, 422, appErr.Status)
}

func TestAddItem_ExceedsInventory(t *testing.T) {
	svc, _ := setupTestCart(t)
	ctx := context.Background()

	created, err := svc.GetOrCreate(ctx, "")
	require.NoError(t, err)

	// The 6" Monstera pot has 15 in stock.
	input := monsteraSmall()
	input.Quantity = 16
	_, err = svc.AddItem(ctx, created.ID, input)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrOutOfStock)
}

func TestAddItem_InvalidQuantity(t *testing.T) {
	svc, _ := setupTestCart(t)
	ctx := context.Background()

	created, err := svc.GetOrCreate(ctx, "")
	require.NoError(t, err)

	input := monsteraSmall()
	input.Quantity = 0
	_, err = svc.AddItem(ctx, created.ID, input)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

// ---------------------------------------------------------------------------
// UpdateQuantity / RemoveItem / Clear
// ---------------------------------------------------------------------------

func TestUpdateQuantity_SetsAbsoluteValue(t *testing.T) {
	svc, _ := setupTestCart(t)
	ctx := context.Background()

	created, err := svc.GetOrCreate(ctx, "")
	require.NoError(t, err)

	withItem, err := svc.AddItem(ctx, created.ID, monsteraSmall())
	require.NoError(t, err)

	updated, err := svc.UpdateQuantity(ctx, created.ID, withItem.Items[0].ID, 5)
	require.NoError(t, err)
	require.Len(t, updated.Items, 1)
	assert.Equal(t, 5, updated.Items[0].Quantity)
	assert.Equal(t, int64(5*3500), updated.Subtotal)
}

func TestUpdateQuantity_ZeroRemovesLine(t *testing.T) {
	svc, _ := setupTestCart(t)
	ctx := context.Background()

	created, err := svc.GetOrCreate(ctx, "")
	require.NoError(t, err)

	withItem, err := svc.AddItem(ctx, created.ID, monsteraSmall())
	require.NoError(t, err)

	updated, err := svc.UpdateQuantity(ctx, created.ID, withItem.Items[0].ID, 0)
	require.NoError(t, err)
	assert.Empty(t, updated.Items)
	assert.Zero(t, updated.Subtotal)
}

func TestUpdateQuantity_UnknownLineIsNoOp(t *testing.T) {
	svc, _ := setupTestCart(t)
	ctx := context.Background()

	created, err := svc.GetOrCreate(ctx, "")
	require.NoError(t, err)

	withItem, err := svc.AddItem(ctx, created.ID, monsteraSmall())
	require.NoError(t, err)

	updated, err := svc.UpdateQuantity(ctx, created.ID, "no-such-line", 9)
	require.NoError(t, err)
	assert.Equal(t, withItem.Items, updated.Items)
}

func TestRemoveItem(t *testing.T) {
	svc, _ := setupTestCart(t)
	ctx := context.Background()

	created, err := svc.GetOrCreate(ctx, "")
	require.NoError(t, err)

	withItem, err := svc.AddItem(ctx, created.ID, monsteraSmall())
	require.NoError(t, err)

	updated, err := svc.RemoveItem(ctx, created.ID, withItem.Items[0].ID)
	require.NoError(t, err)
	assert.Empty(t, updated.Items)
	assert.Zero(t, updated.Subtotal)
}

func TestRemoveItem_AbsentLineIsNoOp(t *testing.T) {
	svc, _ := setupTestCart(t)
	ctx := context.Background()

	created, err := svc.GetOrCreate(ctx, "")
	require.NoError(t, err)

	withItem, err := svc.AddItem(ctx, created.ID, monsteraSmall())
	require.NoError(t, err)

	updated, err := svc.RemoveItem(ctx, created.ID, "no-such-line")
	require.NoError(t, err)
	assert.Equal(t, withItem.Items, updated.Items)
	assert.Equal(t, withItem.Subtotal, updated.Subtotal)
}

func TestClear(t *testing.T) {
	svc, _ := setupTestCart(t)
	ctx := context.Background()

	created, err := svc.GetOrCreate(ctx, "")
	require.NoError(t, err)

	_, err = svc.AddItem(ctx, created.ID, monsteraSmall())
	require.NoError(t, err)

	cleared, err := svc.Clear(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, cleared.Items)
	assert.Zero(t, cleared.Subtotal)

	// The record itself survives.
	again, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)
}

// ---------------------------------------------------------------------------
// Merge
// ---------------------------------------------------------------------------

func TestMerge_FoldsGuestCartIntoUserCart(t *testing.T) {
	svc, _ := setupTestCart(t)
	ctx := context.Background()

	guest, err := svc.GetOrCreate(ctx, "")
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, guest.ID, monsteraSmall())
	require.NoError(t, err)

	merged, err := svc.Merge(ctx, "user-42", guest.ID)
	require.NoError(t, err)

	assert.Equal(t, "user-42", merged.ID)
	assert.Equal(t, "user-42", merged.UserID)
	require.Len(t, merged.Items, 1)
	assert.Equal(t, int64(3500), merged.Subtotal)

	// Guest cart is gone.
	_, err = svc.Get(ctx, guest.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestMerge_CombinesDuplicateLines(t *testing.T) {
	svc, _ := setupTestCart(t)
	ctx := context.Background()

	// User already has one Monstera in their cart.
	_, err := svc.Merge(ctx, "user-42", "bootstrap-missing-guest")
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "user-42", monsteraSmall())
	require.NoError(t, err)

	// Guest cart holds two more of the same line plus a distinct one.
	guest, err := svc.GetOrCreate(ctx, "")
	require.NoError(t, err)
	two := monsteraSmall()
	two.Quantity = 2
	_, err = svc.AddItem(ctx, guest.ID, two)
	require.NoError(t, err)
	large := monsteraSmall()
	large.VariantName = `10" Pot`
	large.Price = 6500
	_, err = svc.AddItem(ctx, guest.ID, large)
	require.NoError(t, err)

	merged, err := svc.Merge(ctx, "user-42", guest.ID)
	require.NoError(t, err)

	require.Len(t, merged.Items, 2)
	assert.Equal(t, 3, merged.Items[0].Quantity)
	assert.Equal(t, int64(3*3500+6500), merged.Subtotal)
}

func TestMerge_MissingGuestCart(t *testing.T) {
	svc, _ := setupTestCart(t)

	merged, err := svc.Merge(context.Background(), "user-42", "never-existed")
	require.NoError(t, err)
	assert.Equal(t, "user-42", merged.ID)
	assert.Empty(t, merged.Items)
}

// ---------------------------------------------------------------------------
// Subtotal invariant
// ---------------------------------------------------------------------------

func TestSubtotal_AlwaysMatchesLineSum(t *testing.T) {
	svc, _ := setupTestCart(t)
	ctx := context.Background()

	created, err := svc.GetOrCreate(ctx, "")
	require.NoError(t, err)

	check := func(c *domain.Cart) {
		t.Helper()
		var sum int64
		for _, item := range c.Items {
			sum += item.Price * int64(item.Quantity)
		}
		assert.Equal(t, sum, c.Subtotal)
	}

	c, err := svc.AddItem(ctx, created.ID, monsteraSmall())
	require.NoError(t, err)
	check(c)

	large := monsteraSmall()
	large.VariantName = `10" Pot`
	large.Price = 6500
	large.Quantity = 2
	c, err = svc.AddItem(ctx, created.ID, large)
	require.NoError(t, err)
	check(c)

	c, err = svc.UpdateQuantity(ctx, created.ID, c.Items[0].ID, 4)
	require.NoError(t, err)
	check(c)

	c, err = svc.RemoveItem(ctx, created.ID, c.Items[1].ID)
	require.NoError(t, err)
	check(c)

	c, err = svc.Clear(ctx, created.ID)
	require.NoError(t, err)
	check(c)
}
