package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/bazaar-backend/internal/mailer"
	"github.com/Skotchmaster/bazaar-backend/internal/models"
	"github.com/Skotchmaster/bazaar-backend/internal/repo"
	"github.com/Skotchmaster/bazaar-backend/internal/transport"
	"github.com/Skotchmaster/bazaar-backend/pkg/logging"
)

// EventPublisher is the slice of the kafka producer the services need.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic, key string, event any) error
}

const orderEventsTopic = "order_events"

// OrderService turns a cart payload into a persisted, price-correct order.
// Mailer and Events are best-effort collaborators and may be nil.
type OrderService struct {
	Repo   *repo.GormRepo
	Mailer mailer.Sender
	Events EventPublisher
}

func NewOrderNumber() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "ORD-" + strings.ToUpper(raw[:10])
}

func (s *OrderService) CreateOrder(ctx context.Context, req transport.CreateOrderRequest, userID *uuid.UUID) (*models.Order, error) {
	l := logging.FromContext(ctx).With("svc", "order.create_order")

	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: order must contain at least one item", ErrValidation)
	}
	if err := validateShippingAddress(req.ShippingAddress); err != nil {
		return nil, err
	}

	var subtotal float64
	items := make([]models.OrderItem, 0, len(req.Items))

	for i := range req.Items {
		reqItem := req.Items[i]
		if reqItem.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be > 0", ErrValidation)
		}
		productID, err := uuid.Parse(reqItem.ProductID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid product id %q", ErrValidation, reqItem.ProductID)
		}

		// Re-fetch the authoritative record; never trust a client price.
		product, err := s.Repo.GetProduct(ctx, productID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: product %s", ErrNotFound, reqItem.ProductID)
			}
			return nil, err
		}
		if !product.IsActive {
			return nil, fmt.Errorf("%w: product %s", ErrNotFound, reqItem.ProductID)
		}
		if product.Stock < reqItem.Quantity {
			return nil, fmt.Errorf("%w: insufficient stock for %s", ErrConflict, product.Title)
		}

		unitPrice := product.DiscountedPrice()
		lineSubtotal := unitPrice * float64(reqItem.Quantity)

		items = append(items, models.OrderItem{
			ProductID: product.ID,
			Title:     product.Title,
			Slug:      product.Slug,
			Thumbnail: product.Thumbnail,
			Price:     product.Price,
			Discount:  product.Discount,
			Category:  product.Category,
			Quantity:  reqItem.Quantity,
			UnitPrice: unitPrice,
			Subtotal:  lineSubtotal,
		})
		subtotal += lineSubtotal
	}

	// Tax and shipping are reserved for a future business rule.
	tax := 0.0
	shippingCost := 0.0

	order := &models.Order{
		OrderNumber: NewOrderNumber(),
		UserID:      userID,
		Items:       items,
		ShippingAddress: models.ShippingAddress{
			Name:    req.ShippingAddress.Name,
			Email:   req.ShippingAddress.Email,
			Contact: req.ShippingAddress.Contact,
			Address: req.ShippingAddress.Address,
			State:   req.ShippingAddress.State,
			Country: req.ShippingAddress.Country,
		},
		Subtotal:      subtotal,
		Tax:           tax,
		ShippingCost:  shippingCost,
		Total:         subtotal + tax + shippingCost,
		Status:        models.OrderStatusPending,
		PaymentStatus: models.PaymentStatusPending,
	}

	order, err := s.Repo.CreateOrder(ctx, order)
	if err != nil {
		if errors.Is(err, repo.ErrInsufficientStock) {
			return nil, fmt.Errorf("%w: %s", ErrConflict, err.Error())
		}
		return nil, err
	}

	if userID != nil {
		if err := s.saveAddressToBook(ctx, *userID, order.ShippingAddress); err != nil {
			l.Warn("save_address_failed", "user_id", userID.String(), "error", err)
		}
	}

	outcome := s.sendConfirmation(ctx, order)
	if outcome.Sent {
		now := time.Now()
		if err := s.Repo.MarkInvoiceSent(ctx, order.ID, now); err != nil {
			l.Warn("mark_invoice_sent_failed", "order_id", order.ID.String(), "error", err)
		} else {
			order.InvoiceSent = true
			order.InvoiceSentAt = &now
		}
	} else {
		l.Warn("order_confirmation_failed", "order_id", order.ID.String(), "reason", outcome.Reason)
	}

	s.publish(ctx, map[string]any{
		"type":         "order_created",
		"order_id":     order.ID.String(),
		"order_number": order.OrderNumber,
		"total":        order.Total,
	})

	return order, nil
}

// saveAddressToBook appends the shipping address to the user's address book
// unless an address with the same name, address and contact already exists.
// Failure here must never fail order creation.
func (s *OrderService) saveAddressToBook(ctx context.Context, userID uuid.UUID, ship models.ShippingAddress) error {
	if _, err := s.Repo.GetUser(ctx, userID); err != nil {
		return err
	}

	_, err := s.Repo.FindMatchingAddress(ctx, userID, ship.Name, ship.Address, ship.Contact)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	_, err = s.Repo.CreateAddress(ctx, &models.Address{
		UserID:  userID,
		Name:    ship.Name,
		Email:   ship.Email,
		Contact: ship.Contact,
		Address: ship.Address,
		State:   ship.State,
		Country: ship.Country,
	})
	return err
}

func (s *OrderService) sendConfirmation(ctx context.Context, order *models.Order) mailer.Outcome {
	if s.Mailer == nil {
		return mailer.FailedOutcome(errors.New("mailer not configured"))
	}
	return s.Mailer.Send(ctx, mailer.Message{
		To:       order.ShippingAddress.Email,
		Subject:  "Order Confirmation - " + order.OrderNumber,
		Template: mailer.TemplateOrderConfirmation,
		Data: map[string]any{
			"name":        order.ShippingAddress.Name,
			"orderNumber": order.OrderNumber,
			"total":       order.Total,
		},
	})
}

func (s *OrderService) publish(ctx context.Context, event map[string]any) {
	if s.Events == nil {
		return
	}
	key := fmt.Sprint(event["order_id"])
	if err := s.Events.PublishEvent(ctx, orderEventsTopic, key, event); err != nil {
		logging.FromContext(ctx).Warn("kafka_publish_failed", "topic", orderEventsTopic, "error", err)
	}
}

// GetOrder resolves either the canonical UUID or a human-readable order
// number; the UUID shape is tried first.
func (s *OrderService) GetOrder(ctx context.Context, identifier string) (*models.Order, error) {
	if id, err := uuid.Parse(identifier); err == nil {
		order, err := s.Repo.GetOrder(ctx, id)
		if err == nil {
			return order, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	return s.GetOrderByNumber(ctx, identifier)
}

func (s *OrderService) GetOrderByNumber(ctx context.Context, number string) (*models.Order, error) {
	order, err := s.Repo.GetOrderByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %s", ErrNotFound, number)
		}
		return nil, err
	}
	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, userID *uuid.UUID, offset, limit int) (int64, []models.Order, error) {
	return s.Repo.ListOrders(ctx, userID, offset, limit)
}

var orderStatusTransitions = map[models.OrderStatus][]models.OrderStatus{
	models.OrderStatusPending:    {models.OrderStatusProcessing, models.OrderStatusCancelled},
	models.OrderStatusProcessing: {models.OrderStatusShipped, models.OrderStatusCancelled},
	models.OrderStatusShipped:    {models.OrderStatusDelivered},
}

func validOrderStatus(s models.OrderStatus) bool {
	switch s {
	case models.OrderStatusPending, models.OrderStatusProcessing,
		models.OrderStatusShipped, models.OrderStatusDelivered,
		models.OrderStatusCancelled:
		return true
	}
	return false
}

func transitionAllowed(from, to models.OrderStatus) bool {
	for _, next := range orderStatusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// UpdateStatus enforces the order lifecycle: pending → processing → shipped →
// delivered, with cancelled reachable from pending and processing only.
func (s *OrderService) UpdateStatus(ctx context.Context, identifier string, newStatus models.OrderStatus) (*models.Order, error) {
	if !validOrderStatus(newStatus) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, newStatus)
	}

	order, err := s.GetOrder(ctx, identifier)
	if err != nil {
		return nil, err
	}

	if !transitionAllowed(order.Status, newStatus) {
		return nil, fmt.Errorf("%w: cannot move order from %s to %s", ErrConflict, order.Status, newStatus)
	}

	if err := s.Repo.UpdateOrderStatus(ctx, order.ID, newStatus); err != nil {
		return nil, err
	}
	order.Status = newStatus

	s.publish(ctx, map[string]any{
		"type":         "order_status_changed",
		"order_id":     order.ID.String(),
		"order_number": order.OrderNumber,
		"status":       string(newStatus),
	})

	return order, nil
}

func validPaymentStatus(s models.PaymentStatus) bool {
	switch s {
	case models.PaymentStatusPending, models.PaymentStatusPaid, models.PaymentStatusFailed:
		return true
	}
	return false
}

// UpdatePaymentStatus is set independently of the order status; payment is
// reconciled manually out of band.
func (s *OrderService) UpdatePaymentStatus(ctx context.Context, identifier string, newStatus models.PaymentStatus) (*models.Order, error) {
	if !validPaymentStatus(newStatus) {
		return nil, fmt.Errorf("%w: unknown payment status %q", ErrValidation, newStatus)
	}

	order, err := s.GetOrder(ctx, identifier)
	if err != nil {
		return nil, err
	}

	if err := s.Repo.UpdatePaymentStatus(ctx, order.ID, newStatus); err != nil {
		return nil, err
	}
	order.PaymentStatus = newStatus
	return order, nil
}

// ResendInvoice re-runs the confirmation side effect regardless of whether it
// was previously sent.
func (s *OrderService) ResendInvoice(ctx context.Context, identifier string) (*models.Order, mailer.Outcome, error) {
	order, err := s.GetOrder(ctx, identifier)
	if err != nil {
		return nil, mailer.Outcome{}, err
	}

	outcome := s.sendConfirmation(ctx, order)
	if outcome.Sent {
		now := time.Now()
		if err := s.Repo.MarkInvoiceSent(ctx, order.ID, now); err != nil {
			logging.FromContext(ctx).Warn("mark_invoice_sent_failed", "order_id", order.ID.String(), "error", err)
		} else {
			order.InvoiceSent = true
			order.InvoiceSentAt = &now
		}
	}
	return order, outcome, nil
}

func validateShippingAddress(addr *transport.ShippingAddressRequest) error {
	if addr == nil {
		return fmt.Errorf("%w: shipping address is required", ErrValidation)
	}
	missing := []string{}
	if strings.TrimSpace(addr.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(addr.Email) == "" {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(addr.Contact) == "" {
		missing = append(missing, "contact")
	}
	if strings.TrimSpace(addr.Address) == "" {
		missing = append(missing, "address")
	}
	if strings.TrimSpace(addr.State) == "" {
		missing = append(missing, "state")
	}
	if strings.TrimSpace(addr.Country) == "" {
		missing = append(missing, "country")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: shipping address missing %s", ErrValidation, strings.Join(missing, ", "))
	}
	return nil
}
