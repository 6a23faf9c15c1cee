package httpserver

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	authmw "github.com/Skotchmaster/bazaar-backend/internal/middleware/auth"
	"github.com/Skotchmaster/bazaar-backend/internal/middleware/monitoring"
	"github.com/Skotchmaster/bazaar-backend/internal/search"
	"github.com/Skotchmaster/bazaar-backend/internal/service"
	loggingmw "github.com/Skotchmaster/bazaar-backend/pkg/middleware/logging"
)

type Deps struct {
	Logger        *slog.Logger
	DB            *gorm.DB
	JWTSecret     []byte
	SecureCookies bool

	Auth      *service.AuthService
	Catalog   *service.CatalogService
	Orders    *service.OrderService
	Content   *service.ContentService
	Dashboard *service.DashboardService
	Search    *search.Service
}

// New assembles the echo instance: middleware chain, error handler and the
// full route table.
func New(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = HTTPErrorHandler

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(echomw.CORS())
	e.Use(loggingmw.RequestLogger(d.Logger))
	e.Use(monitoring.Middleware())

	guard := authmw.New(d.JWTSecret)

	authH := &AuthHandler{Auth: d.Auth, SecureCookies: d.SecureCookies}
	productH := &ProductHandler{Catalog: d.Catalog, Search: d.Search}
	orderH := &OrderHandler{Orders: d.Orders}
	contentH := &ContentHandler{Content: d.Content}
	dashboardH := &DashboardHandler{Dashboard: d.Dashboard}

	e.GET("/health/live", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/health/ready", func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()

		sqlDB, err := d.DB.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1")

	// Accounts.
	api.POST("/auth/register", authH.Register)
	api.POST("/auth/login", authH.Login)
	api.POST("/auth/logout", authH.Logout)
	api.POST("/auth/verify-email", authH.VerifyEmail)
	api.POST("/auth/forgot-password", authH.ForgotPassword)
	api.POST("/auth/reset-password", authH.ResetPassword)
	api.GET("/auth/profile", authH.Profile, guard.RequireAuth)
	api.PATCH("/auth/profile", authH.UpdateProfile, guard.RequireAuth)
	api.GET("/auth/addresses", authH.Addresses, guard.RequireAuth)

	// Catalog, public.
	api.GET("/products", productH.List)
	api.GET("/products/search", productH.SearchProducts)
	api.GET("/products/flash-deals", productH.FlashDeals)
	api.GET("/products/new-arrivals", productH.NewArrivals)
	api.GET("/products/just-for-you", productH.JustForYou)
	api.GET("/products/featured-grid", productH.FeaturedGrid)
	api.GET("/products/featured", productH.Featured)
	api.GET("/products/slug/:slug", productH.GetBySlug)
	api.GET("/products/:id", productH.Get)
	api.GET("/products/:id/related", productH.Related)

	// Catalog, admin.
	api.POST("/products", productH.Create, guard.RequireAdmin)
	api.PATCH("/products/:id", productH.Patch, guard.RequireAdmin)
	api.DELETE("/products/:id", productH.Delete, guard.RequireAdmin)

	// Orders.
	api.POST("/orders", orderH.Create, guard.OptionalAuth)
	api.GET("/orders/mine", orderH.ListMine, guard.RequireAuth)
	api.GET("/orders/track/:number", orderH.Track)
	api.GET("/orders", orderH.ListAll, guard.RequireAdmin)
	api.GET("/orders/:id", orderH.Get)
	api.PATCH("/orders/:id/status", orderH.UpdateStatus, guard.RequireAdmin)
	api.PATCH("/orders/:id/payment-status", orderH.UpdatePaymentStatus, guard.RequireAdmin)
	api.POST("/orders/:id/resend-invoice", orderH.ResendInvoice, guard.RequireAdmin)

	// Content, public reads.
	api.GET("/blogs", contentH.ListBlogs)
	api.GET("/blogs/:slug", contentH.GetBlog)
	api.GET("/banners", contentH.ListBanners)
	api.GET("/categories", contentH.ListCategories)
	api.GET("/services", contentH.ListServices)

	// Content, admin writes.
	api.POST("/blogs", contentH.CreateBlog, guard.RequireAdmin)
	api.PATCH("/blogs/:id", contentH.PatchBlog, guard.RequireAdmin)
	api.DELETE("/blogs/:id", contentH.DeleteBlog, guard.RequireAdmin)
	api.POST("/banners", contentH.CreateBanner, guard.RequireAdmin)
	api.PATCH("/banners/:id", contentH.PatchBanner, guard.RequireAdmin)
	api.DELETE("/banners/:id", contentH.DeleteBanner, guard.RequireAdmin)
	api.POST("/categories", contentH.CreateCategory, guard.RequireAdmin)
	api.DELETE("/categories/:id", contentH.DeleteCategory, guard.RequireAdmin)
	api.POST("/services", contentH.CreateService, guard.RequireAdmin)
	api.DELETE("/services/:id", contentH.DeleteService, guard.RequireAdmin)

	// Dashboard, admin.
	api.GET("/dashboard/summary", dashboardH.Summary, guard.RequireAdmin)
	api.GET("/dashboard/yearly-sales", dashboardH.YearlySales, guard.RequireAdmin)
	api.GET("/dashboard/recent-purchases", dashboardH.RecentPurchases, guard.RequireAdmin)

	return e
}
