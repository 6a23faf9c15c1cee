package httpserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/bazaar-backend/internal/models"
	"github.com/Skotchmaster/bazaar-backend/internal/service"
	"github.com/Skotchmaster/bazaar-backend/internal/transport"
	"github.com/Skotchmaster/bazaar-backend/pkg/logging"
)

// ContentHandler covers the storefront content collections: blogs, banners,
// categories and service tiles.
type ContentHandler struct {
	Content *service.ContentService
}

func pathID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

func (h *ContentHandler) ListBlogs(c echo.Context) error {
	ctx := c.Request().Context()

	publishedOnly := c.QueryParam("all") != "true"
	page, size, offset, limit := pageParams(c)

	total, blogs, err := h.Content.ListBlogs(ctx, publishedOnly, offset, limit)
	if err != nil {
		return fail(c, err)
	}
	return respondList(c, blogs, len(blogs), NewPagination(page, size, total))
}

func (h *ContentHandler) GetBlog(c echo.Context) error {
	blog, err := h.Content.GetBlogBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return fail(c, err)
	}
	return respondOK(c, blog)
}

func (h *ContentHandler) CreateBlog(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "content.create_blog")

	var req transport.CreateBlogRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	blog, err := h.Content.CreateBlog(ctx, req)
	if err != nil {
		l.Warn("create_blog_error", "status", statusFromError(err), "error", err)
		return fail(c, err)
	}

	l.Info("create_blog_success", "blog_id", blog.ID.String(), "slug", blog.Slug)
	return respondMessage(c, http.StatusCreated, "blog created", blog)
}

func (h *ContentHandler) PatchBlog(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "content.patch_blog")

	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req transport.PatchBlogRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	blog, err := h.Content.PatchBlog(ctx, id, req)
	if err != nil {
		l.Warn("patch_blog_error", "status", statusFromError(err), "blog_id", id.String(), "error", err)
		return fail(c, err)
	}
	return respondOK(c, blog)
}

func (h *ContentHandler) DeleteBlog(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.Content.DeleteBlog(ctx, id); err != nil {
		return fail(c, err)
	}
	return respondMessage(c, http.StatusOK, "blog deleted", nil)
}

func (h *ContentHandler) ListBanners(c echo.Context) error {
	ctx := c.Request().Context()

	bannerType := models.BannerType(c.QueryParam("type"))
	publishedOnly := c.QueryParam("all") != "true"

	banners, err := h.Content.ListBanners(ctx, bannerType, publishedOnly)
	if err != nil {
		return fail(c, err)
	}
	return respondList(c, banners, len(banners), nil)
}

func (h *ContentHandler) CreateBanner(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "content.create_banner")

	var req transport.CreateBannerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	banner, err := h.Content.CreateBanner(ctx, req)
	if err != nil {
		l.Warn("create_banner_error", "status", statusFromError(err), "error", err)
		return fail(c, err)
	}
	return respondMessage(c, http.StatusCreated, "banner created", banner)
}

func (h *ContentHandler) PatchBanner(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "content.patch_banner")

	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req transport.PatchBannerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	banner, err := h.Content.PatchBanner(ctx, id, req)
	if err != nil {
		l.Warn("patch_banner_error", "status", statusFromError(err), "banner_id", id.String(), "error", err)
		return fail(c, err)
	}
	return respondOK(c, banner)
}

func (h *ContentHandler) DeleteBanner(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.Content.DeleteBanner(c.Request().Context(), id); err != nil {
		return fail(c, err)
	}
	return respondMessage(c, http.StatusOK, "banner deleted", nil)
}

func (h *ContentHandler) ListCategories(c echo.Context) error {
	activeOnly := c.QueryParam("all") != "true"
	categories, err := h.Content.ListCategories(c.Request().Context(), activeOnly)
	if err != nil {
		return fail(c, err)
	}
	return respondList(c, categories, len(categories), nil)
}

func (h *ContentHandler) CreateCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "content.create_category")

	var req transport.CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	category, err := h.Content.CreateCategory(ctx, req)
	if err != nil {
		l.Warn("create_category_error", "status", statusFromError(err), "error", err)
		return fail(c, err)
	}
	return respondMessage(c, http.StatusCreated, "category created", category)
}

func (h *ContentHandler) DeleteCategory(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.Content.DeleteCategory(c.Request().Context(), id); err != nil {
		return fail(c, err)
	}
	return respondMessage(c, http.StatusOK, "category deleted", nil)
}

func (h *ContentHandler) ListServices(c echo.Context) error {
	activeOnly := c.QueryParam("all") != "true"
	services, err := h.Content.ListServices(c.Request().Context(), activeOnly)
	if err != nil {
		return fail(c, err)
	}
	return respondList(c, services, len(services), nil)
}

func (h *ContentHandler) CreateService(c echo.Context) error {
	ctx := c.Request().Context()

	var req transport.CreateServiceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	svc, err := h.Content.CreateService(ctx, req)
	if err != nil {
		return fail(c, err)
	}
	return respondMessage(c, http.StatusCreated, "service created", svc)
}

func (h *ContentHandler) DeleteService(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.Content.DeleteService(c.Request().Context(), id); err != nil {
		return fail(c, err)
	}
	return respondMessage(c, http.StatusOK, "service deleted", nil)
}
