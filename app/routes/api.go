package routes

import (
	"github.com/shashiranjanraj/bloom/app/controllers"
	"github.com/shashiranjanraj/bloom/pkg/middleware"
	"github.com/shashiranjanraj/bloom/pkg/rbac"
	"github.com/shashiranjanraj/bloom/pkg/router"
)

// RegisterAPI mounts every storefront, checkout, auth and admin route.
func RegisterAPI(r *router.Router) {
	authController := controllers.NewAuthController()
	catalogController := controllers.NewCatalogController()
	cartController := controllers.NewCartController()
	orderController := controllers.NewOrderController()
	adminController := controllers.NewAdminController()

	api := r.Group("/api")

	// Catalog (public).
	api.Get("/categories", "catalog.categories", catalogController.Categories)
	api.Get("/products", "catalog.products", catalogController.Products)
	api.Get("/products/{slug}", "catalog.product", catalogController.ProductShow)
	api.HandleFunc("/graphql", controllers.NewCatalogGraphQLHandler())

	// Cart (session).
	api.Get("/cart", "cart.show", cartController.Show)
	api.Post("/cart", "cart.add", cartController.Add)
	api.Post("/cart/remove", "cart.remove", cartController.Remove)
	api.Delete("/cart", "cart.clear", cartController.Clear)

	// Checkout: guests allowed, users recognised.
	api.Post("/orders", "orders.checkout", orderController.Checkout, middleware.OptionalAuth)
	api.Get("/orders/{id}", "orders.show", orderController.Show, middleware.OptionalAuth)

	// Auth.
	api.Post("/auth/register", "auth.register", authController.Register)
	api.Post("/auth/login", "auth.login", authController.Login)

	user := api.Group("", middleware.Auth)
	user.Get("/auth/me", "auth.me", authController.Me)
	user.Put("/auth/me", "auth.update", authController.UpdateProfile)
	user.Get("/orders", "orders.index", orderController.Index)

	// Admin.
	admin := api.Group("/admin", middleware.Auth, rbac.HasRole("admin"))
	admin.Get("/orders", "admin.orders", adminController.Orders)
	admin.Post("/orders/{id}/status", "admin.orders.status", adminController.UpdateStatus)
	admin.Get("/orders/feed", "admin.orders.feed", adminController.Feed)
	admin.Post("/products", "admin.products.create", adminController.CreateProduct)
	admin.Put("/products/{id}", "admin.products.update", adminController.UpdateProduct)
	admin.Delete("/products/{id}", "admin.products.delete", adminController.DeleteProduct)
	admin.Post("/products/{id}/image", "admin.products.image", adminController.UploadImage)
}
