// Package resource shapes models into the JSON maps the API returns.
//
// A transformer is a plain function from model to Map:
//
//	func productResource(p models.Product) resource.Map {
//	    return resource.Map{"id": p.ID, "name": p.Name, "price": p.Price}
//	}
//
//	response.Success(w, resource.One(productResource, product))
//	response.Paginated(w, resource.List(productResource, products), pagination)
package resource

import "github.com/shashiranjanraj/bloom/pkg/collection"

// Map is the output shape of a transformer.
type Map = map[string]interface{}

// One transforms a single model.
func One[T any](fn func(T) Map, v T) Map {
	return fn(v)
}

// List transforms a slice of models, preserving order. A nil or empty input
// yields an empty (not nil) slice so the JSON encodes as [].
func List[T any](fn func(T) Map, items []T) []Map {
	if len(items) == 0 {
		return []Map{}
	}
	return collection.Map(items, fn)
}
