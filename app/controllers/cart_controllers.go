package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/bloom/app/services"
	"github.com/shashiranjanraj/bloom/pkg/bind"
	"github.com/shashiranjanraj/bloom/pkg/cart"
	"github.com/shashiranjanraj/bloom/pkg/logger"
	"github.com/shashiranjanraj/bloom/pkg/response"
	"github.com/shashiranjanraj/bloom/pkg/session"
)

type CartController struct {
	catalog *services.CatalogService
}

func NewCartController() *CartController {
	return &CartController{catalog: services.NewCatalogService()}
}

func cartPayload(c *cart.Cart) map[string]interface{} {
	return map[string]interface{}{
		"items":          c.Items(),
		"total":          c.Total(),
		"total_quantity": c.TotalQuantity(),
	}
}

// Show handles GET /api/cart.
func (c *CartController) Show(w http.ResponseWriter, r *http.Request) {
	response.Success(w, cartPayload(cart.FromSession(session.FromCtx(r))))
}

// Add handles POST /api/cart. replace=true sets the absolute quantity.
func (c *CartController) Add(w http.ResponseWriter, r *http.Request) {
	var in struct {
		ProductID uint `json:"product_id" validate:"required,numeric"`
		Quantity  int  `json:"quantity" validate:"gte=0"`
		Replace   bool `json:"replace"`
	}
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	product, err := c.catalog.ProductByID(in.ProductID)
	if err != nil || !product.IsAvailable {
		response.NotFound(w)
		return
	}

	sess := session.FromCtx(r)
	shoppingCart := cart.FromSession(sess)
	shoppingCart.Add(product.ID, product.Name, product.Price, in.Quantity, in.Replace)
	if err := sess.Save(w); err != nil {
		logger.Warn("cart session save failed", "error", err)
	}

	response.Success(w, cartPayload(shoppingCart))
}

// Remove handles POST /api/cart/remove.
func (c *CartController) Remove(w http.ResponseWriter, r *http.Request) {
	var in struct {
		ProductID uint `json:"product_id" validate:"required,numeric"`
	}
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	sess := session.FromCtx(r)
	shoppingCart := cart.FromSession(sess)
	shoppingCart.Remove(in.ProductID)
	if err := sess.Save(w); err != nil {
		logger.Warn("cart session save failed", "error", err)
	}

	response.Success(w, cartPayload(shoppingCart))
}

// Clear handles DELETE /api/cart.
func (c *CartController) Clear(w http.ResponseWriter, r *http.Request) {
	sess := session.FromCtx(r)
	shoppingCart := cart.FromSession(sess)
	shoppingCart.Clear()
	if err := sess.Save(w); err != nil {
		logger.Warn("cart session save failed", "error", err)
	}
	response.Success(w, cartPayload(shoppingCart))
}
