package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamedRoutesAreRecorded(t *testing.T) {
	r := New()
	r.Get("/products", "catalog.products", func(w http.ResponseWriter, r *http.Request) {})
	r.Post("/orders", "orders.checkout", func(w http.ResponseWriter, r *http.Request) {})

	routes := r.Routes()
	require.Len(t, routes, 2)
	assert.Equal(t, "catalog.products\tGET /products", routes[0])
	assert.Equal(t, "orders.checkout\tPOST /orders", routes[1])
}

func TestGroupPrefixesNestedPaths(t *testing.T) {
	r := New()
	api := r.Group("/api")
	admin := api.Group("/admin")
	admin.Get("/orders", "admin.orders", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestGroupMiddlewareRunsBeforeHandler(t *testing.T) {
	var order []string

	mw := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	r := New()
	g := r.Group("/api", mw("group"))
	g.Get("/ping", "ping", func(w http.ResponseWriter, req *http.Request) {
		order = append(order, "handler")
	}, mw("route"))

	r.Handler().ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/ping", nil))
	assert.Equal(t, []string{"group", "route", "handler"}, order)
}

func TestUnnamedRoutesAreNotListed(t *testing.T) {
	r := New()
	r.Get("/internal", "", func(w http.ResponseWriter, r *http.Request) {})

	assert.Empty(t, r.Routes())
}
