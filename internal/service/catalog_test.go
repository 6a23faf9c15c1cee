package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/bazaar-backend/internal/models"
	"github.com/Skotchmaster/bazaar-backend/internal/transport"
)

func TestCreateProductDerivesSlug(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &CatalogService{Repo: r}
	ctx := context.Background()

	prod, err := svc.CreateProduct(ctx, transport.CreateProductRequest{
		Title:    "Wireless Mouse Pro 2",
		Price:    49.9,
		Category: "accessories",
		Stock:    10,
	})
	require.NoError(t, err)
	assert.Equal(t, "wireless-mouse-pro-2", prod.Slug)
	assert.True(t, prod.IsActive)

	_, err = svc.CreateProduct(ctx, transport.CreateProductRequest{
		Title:    "Wireless Mouse Pro 2",
		Price:    10,
		Category: "accessories",
	})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestCreateProductValidation(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &CatalogService{Repo: r}
	ctx := context.Background()

	cases := []struct {
		name string
		req  transport.CreateProductRequest
	}{
		{"empty title", transport.CreateProductRequest{Price: 10, Category: "c"}},
		{"negative price", transport.CreateProductRequest{Title: "T", Price: -1, Category: "c"}},
		{"discount above 100", transport.CreateProductRequest{Title: "T", Price: 10, Discount: 101, Category: "c"}},
		{"negative stock", transport.CreateProductRequest{Title: "T", Price: 10, Stock: -1, Category: "c"}},
		{"empty category", transport.CreateProductRequest{Title: "T", Price: 10}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateProduct(ctx, tc.req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestPatchProductSlugFollowsTitleOnly(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &CatalogService{Repo: r}
	ctx := context.Background()

	prod, err := svc.CreateProduct(ctx, transport.CreateProductRequest{
		Title:    "Old Name",
		Price:    10,
		Category: "misc",
	})
	require.NoError(t, err)
	require.Equal(t, "old-name", prod.Slug)

	// A price-only patch leaves the slug alone.
	newPrice := 15.0
	patched, err := svc.PatchProduct(ctx, prod.ID, transport.PatchProductRequest{Price: &newPrice})
	require.NoError(t, err)
	assert.Equal(t, "old-name", patched.Slug)
	assert.InDelta(t, 15, patched.Price, 1e-9)

	newTitle := "New Name"
	patched, err = svc.PatchProduct(ctx, prod.ID, transport.PatchProductRequest{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, "new-name", patched.Slug)
}

func TestGetProductCountsViews(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &CatalogService{Repo: r}
	ctx := context.Background()

	prod, err := svc.CreateProduct(ctx, transport.CreateProductRequest{
		Title:    "Viewed Product",
		Price:    10,
		Category: "misc",
	})
	require.NoError(t, err)

	got, err := svc.GetProduct(ctx, prod.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, got.Views)

	got, err = svc.GetProductBySlug(ctx, "viewed-product")
	require.NoError(t, err)
	assert.EqualValues(t, 2, got.Views)
}

func TestDeleteProduct(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &CatalogService{Repo: r}
	ctx := context.Background()

	prod, err := svc.CreateProduct(ctx, transport.CreateProductRequest{
		Title:    "Doomed",
		Price:    10,
		Category: "misc",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProduct(ctx, prod.ID))

	_, err = svc.GetProduct(ctx, prod.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	err = svc.DeleteProduct(ctx, prod.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListProductsFilters(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &CatalogService{Repo: r}
	ctx := context.Background()

	createTestProduct(t, r, &models.Product{Title: "Cheap Pen", Slug: "cheap-pen", Price: 2, Category: "office", IsActive: true})
	createTestProduct(t, r, &models.Product{Title: "Fountain Pen", Slug: "fountain-pen", Price: 90, Category: "office", IsActive: true})
	createTestProduct(t, r, &models.Product{Title: "Notebook", Slug: "notebook", Price: 8, Category: "paper", IsActive: true})

	total, products, err := svc.ListProducts(ctx, transport.ProductListQuery{Category: "office"}, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, products, 2)

	minPrice := 5.0
	maxPrice := 50.0
	total, products, err = svc.ListProducts(ctx, transport.ProductListQuery{MinPrice: &minPrice, MaxPrice: &maxPrice}, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, products, 1)
	assert.Equal(t, "Notebook", products[0].Title)

	total, products, err = svc.ListProducts(ctx, transport.ProductListQuery{Sort: "price_asc"}, 0, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, products, 2)
	assert.Equal(t, "Cheap Pen", products[0].Title)
}

func TestCatalogueSections(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &CatalogService{Repo: r}
	ctx := context.Background()

	createTestProduct(t, r, &models.Product{
		Title: "Deal A", Slug: "deal-a", Price: 100, Discount: 50, Stock: 5,
		Category: "misc", Catalogue: "flash-deals", IsActive: true,
	})
	createTestProduct(t, r, &models.Product{
		Title: "Deal B", Slug: "deal-b", Price: 100, Discount: 20, Stock: 5,
		Category: "misc", Catalogue: "flash-deals", IsActive: true,
	})
	createTestProduct(t, r, &models.Product{
		Title: "Hidden Deal", Slug: "hidden-deal", Price: 100, Discount: 80, Stock: 5,
		Category: "misc", Catalogue: "flash-deals", IsActive: false,
	})

	deals, err := svc.FlashDeals(ctx)
	require.NoError(t, err)
	require.Len(t, deals, 2)
	assert.Equal(t, "Deal A", deals[0].Title)

	arrivals, err := svc.NewArrivals(ctx)
	require.NoError(t, err)
	assert.Empty(t, arrivals)
}

func TestProductEventsPublished(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	publisher := &recordingPublisher{}
	svc := &CatalogService{Repo: r, Events: publisher}
	ctx := context.Background()

	prod, err := svc.CreateProduct(ctx, transport.CreateProductRequest{
		Title:    "Evented",
		Price:    10,
		Category: "misc",
	})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteProduct(ctx, prod.ID))

	require.Len(t, publisher.Events, 2)
	assert.Equal(t, "product_created", publisher.Events[0]["type"])
	assert.Equal(t, "product_deleted", publisher.Events[1]["type"])
}
