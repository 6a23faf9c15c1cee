package httpserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/bazaar-backend/internal/middleware/monitoring"
	"github.com/Skotchmaster/bazaar-backend/internal/models"
	"github.com/Skotchmaster/bazaar-backend/internal/service"
	"github.com/Skotchmaster/bazaar-backend/internal/transport"
	"github.com/Skotchmaster/bazaar-backend/pkg/logging"
)

type OrderHandler struct {
	Orders *service.OrderService
}

// Create places an order for the attached account or, when no credential is
// present, as a guest.
func (h *OrderHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create")

	var req transport.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	userID := userIDFromContext(c)

	order, err := h.Orders.CreateOrder(ctx, req, userID)
	if err != nil {
		monitoring.RecordOrderOperation("create", false)
		l.Warn("create_order_error", "status", statusFromError(err), "error", err)
		return fail(c, err)
	}

	monitoring.RecordOrderOperation("create", true)
	l.Info("create_order_success", "order_id", order.ID.String(), "order_number", order.OrderNumber, "total", order.Total)
	return respondMessage(c, http.StatusCreated, "order placed", order)
}

// Get serves the order-confirmation lookup. The identifier may be the order
// id or the public order number, so no credential is required.
func (h *OrderHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	order, err := h.Orders.GetOrder(ctx, c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return respondOK(c, order)
}

// Track looks an order up by its public number, no credential required.
func (h *OrderHandler) Track(c echo.Context) error {
	ctx := c.Request().Context()

	order, err := h.Orders.GetOrderByNumber(ctx, c.Param("number"))
	if err != nil {
		return fail(c, err)
	}
	return respondOK(c, order)
}

func (h *OrderHandler) ListMine(c echo.Context) error {
	ctx := c.Request().Context()

	userID := userIDFromContext(c)
	if userID == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing credentials")
	}

	page, size, offset, limit := pageParams(c)
	total, orders, err := h.Orders.ListOrders(ctx, userID, offset, limit)
	if err != nil {
		return fail(c, err)
	}
	return respondList(c, orders, len(orders), NewPagination(page, size, total))
}

// ListAll lists every order, optionally narrowed to one account via the
// user_id query param.
func (h *OrderHandler) ListAll(c echo.Context) error {
	ctx := c.Request().Context()

	var userID *uuid.UUID
	if s := c.QueryParam("user_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid user_id")
		}
		userID = &id
	}

	page, size, offset, limit := pageParams(c)
	total, orders, err := h.Orders.ListOrders(ctx, userID, offset, limit)
	if err != nil {
		return fail(c, err)
	}
	return respondList(c, orders, len(orders), NewPagination(page, size, total))
}

func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.update_status")

	var req transport.UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	order, err := h.Orders.UpdateStatus(ctx, c.Param("id"), models.OrderStatus(req.Status))
	if err != nil {
		monitoring.RecordOrderOperation("update_status", false)
		l.Warn("update_status_error", "status", statusFromError(err), "order", c.Param("id"), "error", err)
		return fail(c, err)
	}

	monitoring.RecordOrderOperation("update_status", true)
	l.Info("update_status_success", "order_id", order.ID.String(), "new_status", order.Status)
	return respondOK(c, order)
}

func (h *OrderHandler) UpdatePaymentStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.update_payment_status")

	var req transport.UpdatePaymentStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	order, err := h.Orders.UpdatePaymentStatus(ctx, c.Param("id"), models.PaymentStatus(req.PaymentStatus))
	if err != nil {
		l.Warn("update_payment_status_error", "status", statusFromError(err), "order", c.Param("id"), "error", err)
		return fail(c, err)
	}

	l.Info("update_payment_status_success", "order_id", order.ID.String(), "payment_status", order.PaymentStatus)
	return respondOK(c, order)
}

func (h *OrderHandler) ResendInvoice(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.resend_invoice")

	order, outcome, err := h.Orders.ResendInvoice(ctx, c.Param("id"))
	if err != nil {
		l.Warn("resend_invoice_error", "status", statusFromError(err), "order", c.Param("id"), "error", err)
		return fail(c, err)
	}

	if !outcome.Sent {
		l.Warn("resend_invoice_not_sent", "order_id", order.ID.String(), "reason", outcome.Reason)
		return respondMessage(c, http.StatusOK, "invoice could not be sent: "+outcome.Reason, order)
	}

	l.Info("resend_invoice_success", "order_id", order.ID.String())
	return respondMessage(c, http.StatusOK, "invoice sent", order)
}
