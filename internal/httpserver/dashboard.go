package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/bazaar-backend/internal/service"
	"github.com/Skotchmaster/bazaar-backend/pkg/logging"
)

type DashboardHandler struct {
	Dashboard *service.DashboardService
}

func (h *DashboardHandler) Summary(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "dashboard.summary")

	summary, err := h.Dashboard.GetSummary(ctx)
	if err != nil {
		l.Error("summary_error", "error", err)
		return fail(c, err)
	}
	return respondOK(c, summary)
}

func (h *DashboardHandler) YearlySales(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "dashboard.yearly_sales")

	sales, err := h.Dashboard.YearlySales(ctx)
	if err != nil {
		l.Error("yearly_sales_error", "error", err)
		return fail(c, err)
	}
	return respondList(c, sales, len(sales), nil)
}

func (h *DashboardHandler) RecentPurchases(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "dashboard.recent_purchases")

	purchases, err := h.Dashboard.RecentPurchases(ctx)
	if err != nil {
		l.Error("recent_purchases_error", "error", err)
		return fail(c, err)
	}
	return respondList(c, purchases, len(purchases), nil)
}
