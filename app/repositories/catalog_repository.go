package repositories

import (
	"github.com/shashiranjanraj/bloom/app/models"
	"github.com/shashiranjanraj/bloom/pkg/orm"
)

// CatalogRepository handles database operations for Category and Product.
type CatalogRepository struct{}

func NewCatalogRepository() *CatalogRepository {
	return &CatalogRepository{}
}

// ActiveCategories returns all active categories, name order.
func (r *CatalogRepository) ActiveCategories() ([]models.Category, error) {
	var cats []models.Category
	err := orm.DB().Model(&models.Category{}).
		Where("is_active = ?", true).
		Order("name asc").
		Get(&cats)
	return cats, err
}

// CategoryBySlug looks up one category by its slug.
func (r *CatalogRepository) CategoryBySlug(slug string) (models.Category, error) {
	var cat models.Category
	err := orm.DB().Model(&models.Category{}).Where("slug = ?", slug).First(&cat)
	return cat, err
}

// ProductFilter narrows the available-product listing.
type ProductFilter struct {
	CategorySlug string
	CategoryID   uint
	PriceMin     *float64
	PriceMax     *float64
}

// AvailableProducts returns available products matching the filter, paginated.
func (r *CatalogRepository) AvailableProducts(f ProductFilter, page, limit int) ([]models.Product, orm.Pagination, error) {
	q := orm.DB().Model(&models.Product{}).Where("is_available = ?", true)

	if f.CategorySlug != "" {
		cat, err := r.CategoryBySlug(f.CategorySlug)
		if err != nil {
			return nil, orm.Pagination{}, err
		}
		f.CategoryID = cat.ID
	}
	if f.CategoryID != 0 {
		q = q.Where("category_id = ?", f.CategoryID)
	}
	if f.PriceMin != nil {
		q = q.Where("price >= ?", *f.PriceMin)
	}
	if f.PriceMax != nil {
		q = q.Where("price <= ?", *f.PriceMax)
	}

	var products []models.Product
	pagination, err := q.Order("name asc").GetWithPagination(&products, page, limit)
	return products, pagination, err
}

// ProductBySlug looks up one product by its slug.
func (r *CatalogRepository) ProductBySlug(slug string) (models.Product, error) {
	var p models.Product
	err := orm.DB().Model(&models.Product{}).Where("slug = ?", slug).First(&p)
	return p, err
}

// ProductByID looks up one product by primary key.
func (r *CatalogRepository) ProductByID(id uint) (models.Product, error) {
	var p models.Product
	err := orm.DB().Model(&models.Product{}).Where("id = ?", id).First(&p)
	return p, err
}

// RelatedProducts returns up to limit other available products from the same
// category.
func (r *CatalogRepository) RelatedProducts(p models.Product, limit int) ([]models.Product, error) {
	var related []models.Product
	err := orm.DB().Model(&models.Product{}).
		Where("category_id = ? AND id <> ? AND is_available = ?", p.CategoryID, p.ID, true).
		Limit(limit).
		Get(&related)
	return related, err
}

// FindOrCreateProduct returns the product with the given slug, creating it
// with the provided defaults when missing. Used for the custom-bouquet
// placeholder.
func (r *CatalogRepository) FindOrCreateProduct(slug string, defaults models.Product) (models.Product, error) {
	p, err := r.ProductBySlug(slug)
	if err == nil {
		return p, nil
	}
	defaults.Slug = slug
	if err := orm.DB().Create(&defaults); err != nil {
		return models.Product{}, err
	}
	return defaults, nil
}

// CreateCategory persists a new category.
func (r *CatalogRepository) CreateCategory(c *models.Category) error {
	return orm.DB().Create(c)
}

// CreateProduct persists a new product.
func (r *CatalogRepository) CreateProduct(p *models.Product) error {
	return orm.DB().Create(p)
}

// UpdateProduct persists changes to an existing product.
func (r *CatalogRepository) UpdateProduct(p *models.Product) error {
	return orm.DB().Save(p)
}

// DeleteProduct removes a product.
func (r *CatalogRepository) DeleteProduct(p *models.Product) error {
	return orm.DB().Delete(p)
}
