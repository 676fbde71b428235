package controllers

import (
	"net/http"

	gql "github.com/graphql-go/graphql"

	"github.com/shashiranjanraj/bloom/app/repositories"
	"github.com/shashiranjanraj/bloom/pkg/graphql"
	"github.com/shashiranjanraj/bloom/pkg/logger"
)

// NewCatalogGraphQLHandler builds the read-only catalog GraphQL endpoint:
//
//	{ categories { name slug } }
//	{ products(category: "roses", priceMax: 2000) { name price } }
func NewCatalogGraphQLHandler() http.HandlerFunc {
	repo := repositories.NewCatalogRepository()

	categoryType := gql.NewObject(gql.ObjectConfig{
		Name: "Category",
		Fields: gql.Fields{
			"id":          &gql.Field{Type: gql.Int},
			"name":        &gql.Field{Type: gql.String},
			"slug":        &gql.Field{Type: gql.String},
			"description": &gql.Field{Type: gql.String},
		},
	})

	productType := gql.NewObject(gql.ObjectConfig{
		Name: "Product",
		Fields: gql.Fields{
			"id":          &gql.Field{Type: gql.Int},
			"name":        &gql.Field{Type: gql.String},
			"slug":        &gql.Field{Type: gql.String},
			"description": &gql.Field{Type: gql.String},
			"price":       &gql.Field{Type: gql.Float},
			"imagePath":   &gql.Field{Type: gql.String},
			"categoryId":  &gql.Field{Type: gql.Int},
		},
	})

	rootQuery := gql.NewObject(gql.ObjectConfig{
		Name: "Query",
		Fields: gql.Fields{
			"categories": &gql.Field{
				Type: gql.NewList(categoryType),
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					return repo.ActiveCategories()
				},
			},
			"products": &gql.Field{
				Type: gql.NewList(productType),
				Args: gql.FieldConfigArgument{
					"category": &gql.ArgumentConfig{Type: gql.String},
					"priceMin": &gql.ArgumentConfig{Type: gql.Float},
					"priceMax": &gql.ArgumentConfig{Type: gql.Float},
				},
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					var filter repositories.ProductFilter
					if v, ok := p.Args["category"].(string); ok {
						filter.CategorySlug = v
					}
					if v, ok := p.Args["priceMin"].(float64); ok {
						filter.PriceMin = &v
					}
					if v, ok := p.Args["priceMax"].(float64); ok {
						filter.PriceMax = &v
					}
					products, _, err := repo.AvailableProducts(filter, 1, 100)
					return products, err
				},
			},
			"product": &gql.Field{
				Type: productType,
				Args: gql.FieldConfigArgument{
					"slug": &gql.ArgumentConfig{Type: gql.NewNonNull(gql.String)},
				},
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					return repo.ProductBySlug(p.Args["slug"].(string))
				},
			},
		},
	})

	schema, err := graphql.NewSchema(rootQuery)
	if err != nil {
		logger.Error("graphql: schema build failed", "error", err)
	}
	return graphql.Handler(schema)
}
