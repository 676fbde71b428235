package seeders

import (
	"errors"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/bloom/app/models"
)

func init() {
	Register("flower_catalog", SeedFlowerCatalog)
}

type categorySeed struct {
	name        string
	slug        string
	description string
	products    []productSeed
}

type productSeed struct {
	name        string
	slug        string
	description string
	price       float64
}

var flowerCatalog = []categorySeed{
	{
		name:        "Розы",
		slug:        "roses",
		description: "Красивые и ароматные розы разных сортов",
		products: []productSeed{
			{
				name:        "Букет из красных роз",
				slug:        "red-roses-bouquet",
				description: "Роскошный букет из 25 алых роз, идеально подходит для романтического подарка.",
				price:       2500,
			},
			{
				name:        "Букет из белых роз",
				slug:        "white-roses-bouquet",
				description: "Элегантный букет из 15 белых роз, символ чистоты и невинности.",
				price:       1800,
			},
		},
	},
	{
		name:        "Тюльпаны",
		slug:        "tulips",
		description: "Яркие и нежные тюльпаны",
		products: []productSeed{
			{
				name:        "Тюльпаны микс",
				slug:        "mixed-tulips",
				description: "Яркий букет из разноцветных тюльпанов, который подарит весеннее настроение.",
				price:       1200,
			},
		},
	},
	{
		name:        "Хризантемы",
		slug:        "chrysanthemums",
		description: "Пышные и долгостоящие хризантемы",
		products: []productSeed{
			{
				name:        "Хризантемы солнечные",
				slug:        "sunny-chrysanthemums",
				description: "Яркие желтые хризантемы, которые будут радовать вас долгое время.",
				price:       900,
			},
		},
	},
	{
		name:        "Свадебные букеты",
		slug:        "wedding-bouquets",
		description: "Элегантные букеты для особого дня",
		products: []productSeed{
			{
				name:        "Букет невесты",
				slug:        "bridal-bouquet",
				description: "Изысканный свадебный букет из белых роз и хризантем.",
				price:       3500,
			},
		},
	},
	{
		name:        "Индивидуальные букеты",
		slug:        "custom",
		description: "Букеты по описанию покупателя",
		products: []productSeed{
			{
				name:        "Индивидуальный букет",
				slug:        models.PlaceholderProductSlug,
				description: "Букет, собранный флористом по вашему описанию.",
				price:       2000,
			},
		},
	},
}

// SeedFlowerCatalog inserts the demo categories and products. Existing slugs
// are left untouched, so reseeding is safe.
func SeedFlowerCatalog(db *gorm.DB) error {
	for _, cs := range flowerCatalog {
		category := models.Category{
			Name:        cs.name,
			Slug:        cs.slug,
			Description: cs.description,
			IsActive:    true,
		}
		if err := firstOrCreateCategory(db, &category); err != nil {
			return err
		}

		for _, ps := range cs.products {
			product := models.Product{
				Name:        ps.name,
				Slug:        ps.slug,
				Description: ps.description,
				Price:       ps.price,
				IsAvailable: true,
				CategoryID:  category.ID,
			}
			if err := firstOrCreateProduct(db, &product); err != nil {
				return err
			}
		}
	}
	return nil
}

func firstOrCreateCategory(db *gorm.DB, c *models.Category) error {
	var existing models.Category
	err := db.Where("slug = ?", c.Slug).First(&existing).Error
	if err == nil {
		*c = existing
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return db.Create(c).Error
}

func firstOrCreateProduct(db *gorm.DB, p *models.Product) error {
	var existing models.Product
	err := db.Where("slug = ?", p.Slug).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return db.Create(p).Error
}
