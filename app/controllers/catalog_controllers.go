package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/bloom/app/repositories"
	"github.com/shashiranjanraj/bloom/app/services"
	"github.com/shashiranjanraj/bloom/pkg/resource"
	"github.com/shashiranjanraj/bloom/pkg/response"
)

type CatalogController struct {
	service *services.CatalogService
}

func NewCatalogController() *CatalogController {
	return &CatalogController{service: services.NewCatalogService()}
}

// Categories handles GET /api/categories.
func (c *CatalogController) Categories(w http.ResponseWriter, r *http.Request) {
	cats, err := c.service.Categories()
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "could not load categories")
		return
	}
	response.Success(w, resource.List(categoryResource, cats))
}

// Products handles GET /api/products with optional category, price_min,
// price_max, page, limit query parameters.
func (c *CatalogController) Products(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := repositories.ProductFilter{CategorySlug: q.Get("category")}
	if v := q.Get("price_min"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			filter.PriceMin = &f
		}
	}
	if v := q.Get("price_max"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			filter.PriceMax = &f
		}
	}

	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	products, pagination, err := c.service.Products(filter, page, limit)
	if err != nil {
		response.NotFound(w)
		return
	}
	response.Paginated(w, resource.List(productResource, products), pagination)
}

// ProductShow handles GET /api/products/{slug}.
func (c *CatalogController) ProductShow(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	product, related, err := c.service.ProductDetail(slug)
	if err != nil {
		response.NotFound(w)
		return
	}
	response.Success(w, map[string]interface{}{
		"product": resource.One(productResource, product),
		"related": resource.List(productResource, related),
	})
}
