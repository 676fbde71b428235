package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/bloom/app/jobs"
	"github.com/shashiranjanraj/bloom/app/repositories"
	"github.com/shashiranjanraj/bloom/app/services"
	"github.com/shashiranjanraj/bloom/pkg/bind"
	"github.com/shashiranjanraj/bloom/pkg/cart"
	"github.com/shashiranjanraj/bloom/pkg/logger"
	"github.com/shashiranjanraj/bloom/pkg/middleware"
	"github.com/shashiranjanraj/bloom/pkg/queue"
	"github.com/shashiranjanraj/bloom/pkg/response"
	"github.com/shashiranjanraj/bloom/pkg/session"
)

type OrderController struct {
	orders   *services.OrderService
	notifier *services.Notifier
	repo     *repositories.OrderRepository
}

func NewOrderController() *OrderController {
	return &OrderController{
		orders:   services.NewOrderService(),
		notifier: services.NewNotifier(),
		repo:     repositories.NewOrderRepository(),
	}
}

type checkoutInput struct {
	CustomerName    string `json:"customer_name" validate:"required,min=2"`
	CustomerPhone   string `json:"customer_phone" validate:"required,regex=^[+]?[0-9 ()-]+$,min=5"`
	CustomerEmail   string `json:"customer_email" validate:"nullable,email"`
	DeliveryAddress string `json:"delivery_address" validate:"required,min=5"`
	DeliveryTime    string `json:"delivery_time" validate:"required"`
	PaymentMethod   string `json:"payment_method" validate:"required,in=cash,card,transfer"`
	Comment         string `json:"comment" validate:"nullable"`
}

// Checkout handles POST /api/orders: builds the creation request from the
// session cart plus the submitted customer fields.
func (c *OrderController) Checkout(w http.ResponseWriter, r *http.Request) {
	var in checkoutInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	deliveryTime, err := time.Parse(time.RFC3339, in.DeliveryTime)
	if err != nil {
		response.ValidationError(w, map[string]string{
			"delivery_time": "must be an RFC 3339 timestamp",
		})
		return
	}

	sess := session.FromCtx(r)
	shoppingCart := cart.FromSession(sess)
	if shoppingCart.IsEmpty() {
		response.ValidationError(w, map[string]string{"cart": "cart is empty"})
		return
	}

	req := services.CreateOrderRequest{
		CustomerName:    in.CustomerName,
		CustomerPhone:   in.CustomerPhone,
		CustomerEmail:   in.CustomerEmail,
		DeliveryAddress: in.DeliveryAddress,
		DeliveryTime:    deliveryTime,
		PaymentMethod:   in.PaymentMethod,
		Comment:         in.Comment,
	}
	for _, line := range shoppingCart.Items() {
		req.Items = append(req.Items, services.OrderLine{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     line.UnitPrice,
		})
	}

	if userID, ok := middleware.UserFromCtx(r); ok {
		req.UserID = &userID
	} else {
		key := sess.ID()
		req.SessionKey = &key
	}

	order, err := c.orders.Create(req)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			response.ValidationError(w, map[string]string{"order": err.Error()})
			return
		}
		response.Error(w, http.StatusInternalServerError, "could not create order")
		return
	}

	// Web orders have no linked chat; Notify is a recorded no-op for them.
	c.notifier.Notify(order)

	if err := queue.Dispatch(&jobs.ReceiptEmailJob{OrderID: order.ID}); err != nil {
		logger.Warn("receipt job dispatch failed", "order_id", order.ID, "error", err)
	}

	shoppingCart.Clear()
	if err := sess.Save(w); err != nil {
		logger.Warn("session save failed after checkout", "error", err)
	}

	response.Created(w, order)
}

// Index handles GET /api/orders: the authenticated user's orders, newest
// first.
func (c *OrderController) Index(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}
	orders, err := c.repo.ByUser(userID)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "could not load orders")
		return
	}
	response.Success(w, orders)
}

// Show handles GET /api/orders/{id}, visible to the owning user or the
// originating guest session only.
func (c *OrderController) Show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		response.NotFound(w)
		return
	}

	order, err := c.repo.FindByID(uint(id))
	if err != nil {
		response.NotFound(w)
		return
	}

	if userID, ok := middleware.UserFromCtx(r); ok {
		if order.UserID == nil || *order.UserID != userID {
			response.NotFound(w)
			return
		}
	} else {
		sess := session.FromCtx(r)
		if order.SessionKey == nil || *order.SessionKey != sess.ID() {
			response.NotFound(w)
			return
		}
	}

	response.Success(w, order)
}
