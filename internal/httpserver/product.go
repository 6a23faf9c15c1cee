package httpserver

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/bazaar-backend/internal/search"
	"github.com/Skotchmaster/bazaar-backend/internal/service"
	"github.com/Skotchmaster/bazaar-backend/internal/transport"
	"github.com/Skotchmaster/bazaar-backend/pkg/logging"
)

// ProductHandler serves both the public storefront catalog routes and the
// admin CRUD routes. Search is nil when no search backend is configured.
type ProductHandler struct {
	Catalog *service.CatalogService
	Search  *search.Service
}

func parseProductQuery(c echo.Context) transport.ProductListQuery {
	q := transport.ProductListQuery{
		Category: c.QueryParam("category"),
		Sort:     c.QueryParam("sort"),
	}
	if v := c.QueryParam("active"); v != "" {
		active := v == "true" || v == "1"
		q.Active = &active
	}
	if v, err := strconv.ParseFloat(c.QueryParam("min_price"), 64); err == nil {
		q.MinPrice = &v
	}
	if v, err := strconv.ParseFloat(c.QueryParam("max_price"), 64); err == nil {
		q.MaxPrice = &v
	}
	return q
}

func (h *ProductHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	page, size, offset, limit := pageParams(c)
	total, products, err := h.Catalog.ListProducts(ctx, parseProductQuery(c), offset, limit)
	if err != nil {
		return fail(c, err)
	}
	return respondList(c, products, len(products), NewPagination(page, size, total))
}

func (h *ProductHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	product, err := h.Catalog.GetProduct(ctx, id)
	if err != nil {
		return fail(c, err)
	}
	return respondOK(c, product)
}

func (h *ProductHandler) GetBySlug(c echo.Context) error {
	ctx := c.Request().Context()

	product, err := h.Catalog.GetProductBySlug(ctx, c.Param("slug"))
	if err != nil {
		return fail(c, err)
	}
	return respondOK(c, product)
}

func (h *ProductHandler) Related(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	products, err := h.Catalog.RelatedProducts(ctx, id)
	if err != nil {
		return fail(c, err)
	}
	return respondList(c, products, len(products), nil)
}

func (h *ProductHandler) FlashDeals(c echo.Context) error {
	products, err := h.Catalog.FlashDeals(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return respondList(c, products, len(products), nil)
}

func (h *ProductHandler) NewArrivals(c echo.Context) error {
	products, err := h.Catalog.NewArrivals(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return respondList(c, products, len(products), nil)
}

func (h *ProductHandler) JustForYou(c echo.Context) error {
	products, err := h.Catalog.JustForYou(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return respondList(c, products, len(products), nil)
}

func (h *ProductHandler) FeaturedGrid(c echo.Context) error {
	products, err := h.Catalog.FeaturedGrid(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return respondList(c, products, len(products), nil)
}

func (h *ProductHandler) Featured(c echo.Context) error {
	products, err := h.Catalog.FeaturedProducts(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return respondList(c, products, len(products), nil)
}

func (h *ProductHandler) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.search")

	if h.Search == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "search is not configured")
	}

	query := c.QueryParam("q")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query parameter q is required")
	}

	page, size, offset, limit := pageParams(c)
	total, docs, err := h.Search.Search(ctx, query, offset, limit)
	if err != nil {
		l.Error("search_error", "query", query, "error", err)
		return fail(c, err)
	}

	return respondList(c, docs, len(docs), NewPagination(page, size, total))
}

func (h *ProductHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create")

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	product, err := h.Catalog.CreateProduct(ctx, req)
	if err != nil {
		l.Warn("create_product_error", "status", statusFromError(err), "error", err)
		return fail(c, err)
	}

	l.Info("create_product_success", "product_id", product.ID.String(), "slug", product.Slug)
	return respondMessage(c, http.StatusCreated, "product created", product)
}

func (h *ProductHandler) Patch(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.patch")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	var req transport.PatchProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	product, err := h.Catalog.PatchProduct(ctx, id, req)
	if err != nil {
		l.Warn("patch_product_error", "status", statusFromError(err), "product_id", id.String(), "error", err)
		return fail(c, err)
	}

	l.Info("patch_product_success", "product_id", id.String())
	return respondOK(c, product)
}

func (h *ProductHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	if err := h.Catalog.DeleteProduct(ctx, id); err != nil {
		l.Warn("delete_product_error", "status", statusFromError(err), "product_id", id.String(), "error", err)
		return fail(c, err)
	}

	l.Info("delete_product_success", "product_id", id.String())
	return respondMessage(c, http.StatusOK, "product deleted", nil)
}
