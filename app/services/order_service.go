package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shashiranjanraj/bloom/app/models"
	"github.com/shashiranjanraj/bloom/app/repositories"
	"github.com/shashiranjanraj/bloom/config"
	"github.com/shashiranjanraj/bloom/pkg/logger"
	"github.com/shashiranjanraj/bloom/pkg/metrics"
)

// Sentinel errors for order operations.
var (
	// ErrValidation marks any request-shaped failure during order creation
	// or transition.
	ErrValidation = errors.New("order validation failed")
	// ErrCancelGuard is returned when cancelling an order that is already
	// out for delivery, delivered, or cancelled.
	ErrCancelGuard = errors.New("order can no longer be cancelled")
	// ErrUnknownStatus is returned for a status outside the six-value enum.
	ErrUnknownStatus = errors.New("unknown order status")
)

// OrderStore is the persistence surface the engine needs. Satisfied by
// repositories.OrderRepository; tests substitute an in-memory fake.
type OrderStore interface {
	CreateWithItems(*models.Order) error
	FindByID(uint) (models.Order, error)
	Save(*models.Order) error
}

// OrderLine is one requested order position. Price is the unit price locked
// by the caller (cart snapshot or placeholder product price).
type OrderLine struct {
	ProductID uint
	Quantity  int
	Price     float64
}

// CreateOrderRequest is the single creation contract shared by the web
// checkout and the chat flow.
type CreateOrderRequest struct {
	UserID         *uint
	SessionKey     *string
	TelegramChatID *int64

	CustomerName    string
	CustomerPhone   string
	CustomerEmail   string
	DeliveryAddress string
	DeliveryTime    time.Time
	PaymentMethod   string
	Comment         string

	Items []OrderLine
}

// OrderService is the order lifecycle engine.
type OrderService struct {
	store OrderStore

	// EnforceSequence adds forward-only transition guards on top of the
	// cancel guard. Off by default; admin transitions stay unrestricted.
	EnforceSequence bool
}

func NewOrderService() *OrderService {
	return &OrderService{
		store:           repositories.NewOrderRepository(),
		EnforceSequence: config.OrdersEnforceSequence(),
	}
}

// NewOrderServiceWith builds the engine around a custom store, for tests.
func NewOrderServiceWith(store OrderStore) *OrderService {
	return &OrderService{store: store}
}

// Create validates the request and persists header plus items atomically.
// The total is always recomputed from the lines, never taken from the caller.
func (s *OrderService) Create(req CreateOrderRequest) (models.Order, error) {
	if err := s.validateCreate(req); err != nil {
		return models.Order{}, err
	}

	payment := req.PaymentMethod
	if payment == "" {
		payment = models.PaymentCash
	}

	order := models.Order{
		UserID:          req.UserID,
		SessionKey:      req.SessionKey,
		TelegramChatID:  req.TelegramChatID,
		Status:          models.StatusNew,
		PaymentMethod:   payment,
		CustomerName:    strings.TrimSpace(req.CustomerName),
		CustomerPhone:   strings.TrimSpace(req.CustomerPhone),
		CustomerEmail:   strings.TrimSpace(req.CustomerEmail),
		DeliveryAddress: strings.TrimSpace(req.DeliveryAddress),
		DeliveryTime:    req.DeliveryTime,
		Comment:         req.Comment,
	}
	for _, line := range req.Items {
		order.Items = append(order.Items, models.OrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     line.Price,
		})
	}
	order.TotalPrice = order.ItemsTotal()

	if err := s.store.CreateWithItems(&order); err != nil {
		return models.Order{}, fmt.Errorf("create order: %w", err)
	}

	channel := "web"
	if req.TelegramChatID != nil {
		channel = "telegram"
	}
	metrics.OrdersCreated.WithLabelValues(channel).Inc()
	logger.Info("order created",
		"order_id", order.ID, "channel", channel, "total", order.TotalPrice)

	return order, nil
}

func (s *OrderService) validateCreate(req CreateOrderRequest) error {
	switch {
	case strings.TrimSpace(req.CustomerName) == "":
		return fmt.Errorf("%w: customer name is required", ErrValidation)
	case strings.TrimSpace(req.CustomerPhone) == "":
		return fmt.Errorf("%w: customer phone is required", ErrValidation)
	case strings.TrimSpace(req.DeliveryAddress) == "":
		return fmt.Errorf("%w: delivery address is required", ErrValidation)
	case !req.DeliveryTime.After(time.Now()):
		return fmt.Errorf("%w: delivery time must be in the future", ErrValidation)
	case len(req.Items) == 0:
		return fmt.Errorf("%w: order has no items", ErrValidation)
	}

	// Exactly one identity: guest session or authenticated user.
	if (req.UserID == nil) == (req.SessionKey == nil) {
		return fmt.Errorf("%w: exactly one of user id and session key must be set", ErrValidation)
	}

	switch req.PaymentMethod {
	case "", models.PaymentCash, models.PaymentCard, models.PaymentTransfer:
	default:
		return fmt.Errorf("%w: unknown payment method %q", ErrValidation, req.PaymentMethod)
	}

	for _, line := range req.Items {
		if line.Quantity < 1 {
			return fmt.Errorf("%w: item quantity must be at least 1", ErrValidation)
		}
		if line.Price < 0 {
			return fmt.Errorf("%w: item price cannot be negative", ErrValidation)
		}
	}
	return nil
}

// Transition moves the order to newStatus and persists it. The second return
// reports whether the status actually changed: the caller dispatches the
// status notification exactly once when it did.
func (s *OrderService) Transition(id uint, newStatus models.OrderStatus) (models.Order, bool, error) {
	if !newStatus.Valid() {
		return models.Order{}, false, fmt.Errorf("%w: %q", ErrUnknownStatus, newStatus)
	}

	order, err := s.store.FindByID(id)
	if err != nil {
		return models.Order{}, false, err
	}

	// The guard runs before the no-change check: cancelling an already
	// cancelled or delivered order is an error, not a no-op.
	if newStatus == models.StatusCancelled && !order.CanBeCancelled() {
		return models.Order{}, false,
			fmt.Errorf("%w: status is %s", ErrCancelGuard, order.Status)
	}

	if order.Status == newStatus {
		return order, false, nil
	}

	if s.EnforceSequence && newStatus != models.StatusCancelled {
		cur, next := order.Status.SequenceIndex(), newStatus.SequenceIndex()
		if cur < 0 || next != cur+1 {
			return models.Order{}, false,
				fmt.Errorf("%w: cannot move from %s to %s", ErrValidation, order.Status, newStatus)
		}
	}

	order.Status = newStatus
	if err := s.store.Save(&order); err != nil {
		return models.Order{}, false, fmt.Errorf("save order: %w", err)
	}

	metrics.StatusTransitions.WithLabelValues(string(newStatus)).Inc()
	logger.Info("order status changed", "order_id", order.ID, "status", newStatus)

	return order, true, nil
}

// RecomputeTotal re-derives the stored total from the order lines. Explicit,
// caller-triggered; nothing recomputes totals implicitly.
func (s *OrderService) RecomputeTotal(id uint) (models.Order, error) {
	order, err := s.store.FindByID(id)
	if err != nil {
		return models.Order{}, err
	}
	order.TotalPrice = order.ItemsTotal()
	if err := s.store.Save(&order); err != nil {
		return models.Order{}, fmt.Errorf("save order: %w", err)
	}
	return order, nil
}
