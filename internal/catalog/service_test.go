package catalog

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

	"github.com/kristopher-lab/verdure-premium-plant-shop/internal/domain"
	"github.com/kristopher-lab/verdure-premium-plant-shop/internal/store"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func setupTestCatalog(t *testing.T) (*Service, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	products := store.New(client, ProductDescriptor(), store.NewKeyLocks())
	return NewService(products, newTestLogger()), mr
}

// ---------------------------------------------------------------------------
// Seeding
// ---------------------------------------------------------------------------

func TestEnsureSeed_PopulatesOnce(t *testing.T) {
	svc, mr := setupTestCatalog(t)
	ctx := context.Background()

	require.NoError(t, svc.EnsureSeed(ctx))

	ids, err := mr.List("idx:products")
	require.NoError(t, err)
	assert.Len(t, ids, len(seedProducts()))
	assert.Equal(t, "prod_01", ids[0])

	// A second pass is a no-op: same records, no duplicate index entries.
	require.NoError(t, svc.EnsureSeed(ctx))

	ids, err = mr.List("idx:products")
	require.NoError(t, err)
	assert.Len(t, ids, len(seedProducts()))
}

func TestSeedProducts_AllHaveSlugsAndVariants(t *testing.T) {
	for _, p := range seedProducts() {
		assert.NotEmpty(t, p.Slug, "product %s missing slug", p.ID)
		assert.NotEmpty(t, p.Variants, "product %s has no variants", p.ID)
		assert.True(t, domain.IsValidCategory(p.Category), "product %s has invalid category", p.ID)
		for _, v := range p.Variants {
			assert.Greater(t, v.Price, int64(0))
			assert.GreaterOrEqual(t, v.Inventory, 0)
		}
	}
}

// ---------------------------------------------------------------------------
// Queries
// ---------------------------------------------------------------------------

func TestList_SeedsOnFirstTouch(t *testing.T) {
	svc, _ := setupTestCatalog(t)

	page, err := svc.List(context.Background(), "", 12)
	require.NoError(t, err)
	assert.Len(t, page.Items, len(seedProducts()))
	assert.Nil(t, page.Next)
	assert.Equal(t, "prod_01", page.Items[0].ID)
}

func TestList_Paginated(t *testing.T) {
	svc, _ := setupTestCatalog(t)
	ctx := context.Background()

	first, err := svc.List(ctx, "", 3)
	require.NoError(t, err)
	require.Len(t, first.Items, 3)
	require.NotNil(t, first.Next)

	second, err := svc.List(ctx, *first.Next, 3)
	require.NoError(t, err)
	require.Len(t, second.Items, 3)

	// No overlap across pages.
	assert.NotEqual(t, first.Items[2].ID, second.Items[0].ID)
}

func TestGetByID(t *testing.T) {
	svc, _ := setupTestCatalog(t)

	product, err := svc.GetByID(context.Background(), "prod_01")
	require.NoError(t, err)
	assert.Equal(t, "Monstera Deliciosa", product.Name)
	require.Len(t, product.Variants, 2)
	assert.Equal(t, int64(3500), product.DisplayPrice())
}

func TestGetByID_NotFound(t *testing.T) {
	svc, _ := setupTestCatalog(t)

	_, err := svc.GetByID(context.Background(), "prod_99")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestGetBySlug(t *testing.T) {
	svc, _ := setupTestCatalog(t)

	product, err := svc.GetBySlug(context.Background(), "opuntia-microdasys")
	require.NoError(t, err)
	assert.Equal(t, "prod_07", product.ID)
	assert.Equal(t, "Bunny Ear Cactus", product.Name)
}

func TestGetBySlug_NotFound(t *testing.T) {
	svc, _ := setupTestCatalog(t)

	_, err := svc.GetBySlug(context.Background(), "no-such-plant")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRelated_SameCategoryExcludingSelf(t *testing.T) {
	svc, _ := setupTestCatalog(t)

	related, err := svc.Related(context.Background(), "prod_01")
	require.NoError(t, err)
	require.NotEmpty(t, related)
	assert.LessOrEqual(t, len(related), 4)

	for _, p := range related {
		assert.NotEqual(t, "prod_01", p.ID)
		assert.Equal(t, domain.CategoryIndoor, p.Category)
	}
}

func TestRelated_LoneCategoryMember(t *testing.T) {
	svc, _ := setupTestCatalog(t)

	// prod_04 is the only succulent in the dataset.
	related, err := svc.Related(context.Background(), "prod_04")
	require.NoError(t, err)
	assert.Empty(t, related)
}

func TestRelated_UnknownProduct(t *testing.T) {
	svc, _ := setupTestCatalog(t)

	_, err := svc.Related(context.Background(), "prod_99")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
