package services

import (
	"github.com/shashiranjanraj/bloom/app/models"
	"github.com/shashiranjanraj/bloom/app/repositories"
	"github.com/shashiranjanraj/bloom/pkg/orm"
)

// CatalogService exposes the read side of the catalog plus the placeholder
// product used by bot orders.
type CatalogService struct {
	repo *repositories.CatalogRepository
}

func NewCatalogService() *CatalogService {
	return &CatalogService{repo: repositories.NewCatalogRepository()}
}

// Categories returns all active categories.
func (s *CatalogService) Categories() ([]models.Category, error) {
	return s.repo.ActiveCategories()
}

// Products lists available products for the storefront.
func (s *CatalogService) Products(f repositories.ProductFilter, page, limit int) ([]models.Product, orm.Pagination, error) {
	return s.repo.AvailableProducts(f, page, limit)
}

// ProductDetail returns a product by slug together with up to four related
// products from the same category.
func (s *CatalogService) ProductDetail(slug string) (models.Product, []models.Product, error) {
	p, err := s.repo.ProductBySlug(slug)
	if err != nil {
		return models.Product{}, nil, err
	}
	related, err := s.repo.RelatedProducts(p, 4)
	if err != nil {
		return p, nil, nil // related list is best-effort
	}
	return p, related, nil
}

// ProductByID returns a product by primary key.
func (s *CatalogService) ProductByID(id uint) (models.Product, error) {
	return s.repo.ProductByID(id)
}

// PlaceholderProduct returns the custom-bouquet stand-in, creating it (and
// its category) when the seeders have not run.
func (s *CatalogService) PlaceholderProduct() (models.Product, error) {
	if p, err := s.repo.ProductBySlug(models.PlaceholderProductSlug); err == nil {
		return p, nil
	}

	cat, err := s.repo.CategoryBySlug("custom")
	if err != nil {
		cat = models.Category{Name: "Индивидуальные букеты", Slug: "custom", IsActive: true}
		if err := s.repo.CreateCategory(&cat); err != nil {
			return models.Product{}, err
		}
	}

	return s.repo.FindOrCreateProduct(models.PlaceholderProductSlug, models.Product{
		Name:        "Индивидуальный букет",
		Description: "Букет, собранный флористом по описанию клиента.",
		Price:       2000,
		IsAvailable: true,
		CategoryID:  cat.ID,
	})
}
