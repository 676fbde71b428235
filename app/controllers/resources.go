package controllers

import (
	"github.com/shashiranjanraj/bloom/app/models"
	"github.com/shashiranjanraj/bloom/pkg/resource"
	"github.com/shashiranjanraj/bloom/pkg/storage"
)

// categoryResource is the public shape of a catalog category.
func categoryResource(c models.Category) resource.Map {
	return resource.Map{
		"id":          c.ID,
		"name":        c.Name,
		"slug":        c.Slug,
		"description": c.Description,
	}
}

// productResource is the public shape of a catalog product. The image path
// is resolved to a URL through the configured storage disk.
func productResource(p models.Product) resource.Map {
	out := resource.Map{
		"id":           p.ID,
		"name":         p.Name,
		"slug":         p.Slug,
		"description":  p.Description,
		"price":        p.Price,
		"is_available": p.IsAvailable,
		"category_id":  p.CategoryID,
	}
	if p.ImagePath != "" {
		out["image_url"] = storage.URL(p.ImagePath)
	}
	return out
}
