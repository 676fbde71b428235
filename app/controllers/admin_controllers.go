package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/bloom/app/models"
	"github.com/shashiranjanraj/bloom/app/repositories"
	"github.com/shashiranjanraj/bloom/app/services"
	"github.com/shashiranjanraj/bloom/pkg/bind"
	"github.com/shashiranjanraj/bloom/pkg/event"
	"github.com/shashiranjanraj/bloom/pkg/response"
	"github.com/shashiranjanraj/bloom/pkg/storage"
	"github.com/shashiranjanraj/bloom/pkg/ws"
)

// OrderFeed streams order-status frames to connected admin clients.
// internal/server starts its loop and subscribes it to status events.
var OrderFeed = ws.NewHub()

type AdminController struct {
	orders   *services.OrderService
	notifier *services.Notifier
	repo     *repositories.OrderRepository
	catalog  *repositories.CatalogRepository
}

func NewAdminController() *AdminController {
	return &AdminController{
		orders:   services.NewOrderService(),
		notifier: services.NewNotifier(),
		repo:     repositories.NewOrderRepository(),
		catalog:  repositories.NewCatalogRepository(),
	}
}

// Orders handles GET /api/admin/orders with optional status filter.
func (c *AdminController) Orders(w http.ResponseWriter, r *http.Request) {
	status := models.OrderStatus(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		response.ValidationError(w, map[string]string{"status": "unknown status"})
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	orders, pagination, err := c.repo.ByStatus(status, page, limit)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "could not load orders")
		return
	}
	response.Paginated(w, orders, pagination)
}

// UpdateStatus handles POST /api/admin/orders/{id}/status. On an actual
// status change it notifies the linked chat once and fires the
// order.status_changed event for the live feed.
func (c *AdminController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		response.NotFound(w)
		return
	}

	var in struct {
		Status string `json:"status" validate:"required"`
	}
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	order, changed, err := c.orders.Transition(uint(id), models.OrderStatus(in.Status))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnknownStatus):
			response.ValidationError(w, map[string]string{"status": "unknown status"})
		case errors.Is(err, services.ErrCancelGuard):
			response.Error(w, http.StatusConflict, err.Error())
		case errors.Is(err, services.ErrValidation):
			response.Error(w, http.StatusConflict, err.Error())
		default:
			response.NotFound(w)
		}
		return
	}

	if changed {
		c.notifier.Notify(order)
		event.Fire("order.status_changed", order)
	}

	response.Success(w, order)
}

// Feed handles GET /api/admin/orders/feed, upgrading to a WebSocket that
// receives order-status JSON frames.
func (c *AdminController) Feed(w http.ResponseWriter, r *http.Request) {
	ws.Upgrade(w, r, OrderFeed)
}

// BroadcastStatusChange pushes an order-status frame to the feed. Registered
// as the order.status_changed listener at boot.
func BroadcastStatusChange(payload interface{}) {
	order, ok := payload.(models.Order)
	if !ok {
		return
	}
	frame, err := json.Marshal(map[string]interface{}{
		"event":    "order.status_changed",
		"order_id": order.ID,
		"status":   order.Status,
		"label":    order.Status.Label(),
		"total":    order.TotalPrice,
	})
	if err != nil {
		return
	}
	OrderFeed.Broadcast <- frame
}

type productInput struct {
	Name        string  `json:"name" validate:"required,min=2,max=200"`
	Slug        string  `json:"slug" validate:"nullable,max=200"`
	Description string  `json:"description" validate:"nullable"`
	Price       float64 `json:"price" validate:"required,gte=0"`
	CategoryID  uint    `json:"category_id" validate:"required,numeric"`
	IsAvailable *bool   `json:"is_available"`
}

// CreateProduct handles POST /api/admin/products.
func (c *AdminController) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var in productInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	product := models.Product{
		Name:        in.Name,
		Slug:        in.Slug,
		Description: in.Description,
		Price:       in.Price,
		CategoryID:  in.CategoryID,
		IsAvailable: true,
	}
	if in.IsAvailable != nil {
		product.IsAvailable = *in.IsAvailable
	}

	if err := c.catalog.CreateProduct(&product); err != nil {
		response.Error(w, http.StatusInternalServerError, "could not create product")
		return
	}
	response.Created(w, product)
}

// UpdateProduct handles PUT /api/admin/products/{id}.
func (c *AdminController) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		response.NotFound(w)
		return
	}
	product, err := c.catalog.ProductByID(uint(id))
	if err != nil {
		response.NotFound(w)
		return
	}

	var in productInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	product.Name = in.Name
	if in.Slug != "" {
		product.Slug = in.Slug
	}
	product.Description = in.Description
	product.Price = in.Price
	product.CategoryID = in.CategoryID
	if in.IsAvailable != nil {
		product.IsAvailable = *in.IsAvailable
	}

	if err := c.catalog.UpdateProduct(&product); err != nil {
		response.Error(w, http.StatusInternalServerError, "could not update product")
		return
	}
	response.Success(w, product)
}

// DeleteProduct handles DELETE /api/admin/products/{id}.
func (c *AdminController) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		response.NotFound(w)
		return
	}
	product, err := c.catalog.ProductByID(uint(id))
	if err != nil {
		response.NotFound(w)
		return
	}
	if err := c.catalog.DeleteProduct(&product); err != nil {
		response.Error(w, http.StatusInternalServerError, "could not delete product")
		return
	}
	response.Success(w, map[string]interface{}{"deleted": product.ID})
}

// UploadImage handles POST /api/admin/products/{id}/image (multipart form,
// field "image"). The file lands on the configured storage disk.
func (c *AdminController) UploadImage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		response.NotFound(w)
		return
	}
	product, err := c.catalog.ProductByID(uint(id))
	if err != nil {
		response.NotFound(w)
		return
	}

	if err := r.ParseMultipartForm(8 << 20); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		response.ValidationError(w, map[string]string{"image": "image file is required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "could not read upload")
		return
	}

	path := fmt.Sprintf("products/%s-%d%s",
		product.Slug, product.ID, filepath.Ext(header.Filename))
	if err := storage.Put(path, data); err != nil {
		response.Error(w, http.StatusInternalServerError, "could not store image")
		return
	}

	product.ImagePath = path
	if err := c.catalog.UpdateProduct(&product); err != nil {
		response.Error(w, http.StatusInternalServerError, "could not update product")
		return
	}

	response.Success(w, map[string]interface{}{
		"image_path": path,
		"url":        storage.URL(path),
	})
}
