// Package routes registers every HTTP endpoint of the storefront.
package routes

import (
	"github.com/buildmaster/storefront/app/controllers"
	appgraphql "github.com/buildmaster/storefront/app/graphql"
	"github.com/buildmaster/storefront/app/models"
	"github.com/buildmaster/storefront/pkg/ctx"
	"github.com/buildmaster/storefront/pkg/metrics"
	"github.com/buildmaster/storefront/pkg/middleware"
	"github.com/buildmaster/storefront/pkg/rbac"
	"github.com/buildmaster/storefront/pkg/router"
)

// RegisterAPI mounts all routes on the router.
func RegisterAPI(r *router.Router) {
	authController := controllers.NewAuthController()
	catalogController := controllers.NewCatalogController()
	cartController := controllers.NewCartController()
	orderController := controllers.NewOrderController()
	buildController := controllers.NewBuildController()
	builderController := controllers.NewBuilderController()
	chatController := controllers.NewChatController()

	// Operational endpoints.
	r.Get("/metrics", "metrics", metrics.Handler())
	r.Get("/healthz", "health", ctx.Wrap(func(c *ctx.Context) {
		c.Success(map[string]string{"status": "ok"})
	}))

	api := r.Group("/api")

	// Auth.
	api.Post("/auth/signup", "auth.signup", ctx.Wrap(authController.Signup), rbac.Guest)
	api.Post("/auth/login", "auth.login", ctx.Wrap(authController.Login), rbac.Guest)
	api.Get("/auth/me", "auth.me", ctx.Wrap(authController.Me), middleware.AuthMiddleware)

	// Public catalogue.
	api.Get("/components", "components.index", ctx.Wrap(catalogController.ListComponents))
	api.Get("/components/recent", "components.recent", ctx.Wrap(catalogController.RecentComponents))
	api.Get("/components/{id}", "components.show", ctx.Wrap(catalogController.ShowComponent))
	api.Get("/categories", "categories.index", ctx.Wrap(catalogController.ListCategories))
	api.Post("/graphql", "graphql", appgraphql.Handler())

	// PC builder wizard (public: browsing compatibility needs no account).
	api.Get("/pc-build/components/{step}", "builder.step", ctx.Wrap(builderController.ComponentsForStep))

	// Cart and checkout.
	cart := api.Group("/cart", middleware.AuthMiddleware)
	cart.Get("", "cart.show", ctx.Wrap(cartController.Show))
	cart.Post("/items", "cart.items.add", ctx.Wrap(cartController.AddItem))
	cart.Patch("/items/{id}", "cart.items.update", ctx.Wrap(cartController.UpdateItem))
	cart.Delete("/items/{id}", "cart.items.remove", ctx.Wrap(cartController.RemoveItem))
	cart.Post("/checkout", "cart.checkout", ctx.Wrap(cartController.Checkout))
	cart.Post("/build/{id}", "cart.build.transfer", ctx.Wrap(cartController.TransferBuild))

	// Purchase history (paid orders only).
	orders := api.Group("/orders", middleware.AuthMiddleware)
	orders.Get("", "orders.index", ctx.Wrap(orderController.List))
	orders.Get("/{id}", "orders.show", ctx.Wrap(orderController.Show))

	// Saved builds.
	builds := api.Group("/builds", middleware.AuthMiddleware)
	builds.Get("", "builds.index", ctx.Wrap(buildController.List))
	builds.Post("", "builds.create", ctx.Wrap(buildController.Create))
	builds.Get("/{id}", "builds.show", ctx.Wrap(buildController.Show))
	builds.Put("/{id}", "builds.update", ctx.Wrap(buildController.Update))
	builds.Delete("/{id}", "builds.delete", ctx.Wrap(buildController.Delete))

	// Chat assistant: guests welcome, token honoured when present.
	chat := api.Group("/chat", middleware.OptionalAuth)
	chat.Post("", "chat.message", ctx.Wrap(chatController.Message))
	chat.Get("/ws", "chat.ws", ctx.Wrap(chatController.Socket))

	// Admin catalogue management.
	admin := api.Group("/admin", middleware.AuthMiddleware, rbac.HasRole(models.RoleAdmin))
	admin.Post("/categories", "admin.categories.create", ctx.Wrap(catalogController.CreateCategory))
	admin.Put("/categories/{id}", "admin.categories.update", ctx.Wrap(catalogController.UpdateCategory))
	admin.Delete("/categories/{id}", "admin.categories.delete", ctx.Wrap(catalogController.DeleteCategory))
	admin.Post("/components", "admin.components.create", ctx.Wrap(catalogController.CreateComponent))
	admin.Put("/components/{id}", "admin.components.update", ctx.Wrap(catalogController.UpdateComponent))
	admin.Delete("/components/{id}", "admin.components.delete", ctx.Wrap(catalogController.DeleteComponent))
}
