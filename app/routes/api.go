// Package routes wires the HTTP surface: public auth endpoints, the
// staff-facing catalog and order endpoints, and the admin-only
// management surface under /admin.
package routes

import (
	"net/http"
	"time"

	"github.com/quodex/invizo/app/controllers"
	"github.com/quodex/invizo/app/models"
	"github.com/quodex/invizo/config"
	"github.com/quodex/invizo/pkg/metrics"
	"github.com/quodex/invizo/pkg/middleware"
	"github.com/quodex/invizo/pkg/rbac"
	"github.com/quodex/invizo/pkg/reqid"
	"github.com/quodex/invizo/pkg/router"
	"github.com/quodex/invizo/pkg/storage"
)

// Controllers bundles everything the route table serves.
type Controllers struct {
	Auth     *controllers.AuthController
	Users    *controllers.UserController
	Category *controllers.CategoryController
	Item     *controllers.ItemController
	Order    *controllers.OrderController
	Payment  *controllers.PaymentController
}

// Register mounts all routes and global middleware. lookup resolves a
// token subject to a live account on every authenticated request.
func Register(r *router.Router, c Controllers, lookup middleware.IdentityLookup, disk storage.Disk) {
	r.Use(
		metrics.Middleware(),
		reqid.Middleware(),
		middleware.Recovery,
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions(config.CORSOrigins())),
		middleware.Authenticate(lookup),
	)

	// Public. Login is rate limited to slow down brute-force attempts.
	r.Post("/login", "auth.login", c.Auth.Login, middleware.RateLimit(20, time.Minute))
	r.Post("/encode", "auth.encode", c.Auth.Encode)
	r.Get("/metrics", "metrics", metrics.Handler())

	// Staff: any authenticated role.
	staff := r.Group("/", rbac.HasRole(models.RoleUser, models.RoleAdmin))
	staff.Get("/categories", "categories.list", c.Category.List)
	staff.Get("/items", "items.list", c.Item.List)
	staff.Get("/items/{itemId}", "items.get", c.Item.Get)
	staff.Post("/orders", "orders.create", c.Order.Create)
	staff.Get("/orders/latest", "orders.latest", c.Order.Latest)
	staff.Delete("/orders/{orderId}", "orders.delete", c.Order.Delete)
	staff.Post("/payments/create-order", "payments.create", c.Payment.CreateOrder)
	staff.Post("/payments/verify", "payments.verify", c.Payment.Verify)

	// Category delete sits at the root and only needs a valid token.
	r.Delete("/{categoryId}", "categories.delete", c.Category.Delete, middleware.RequireAuth)

	// Admin management surface.
	admin := r.Group("/admin", rbac.HasRole(models.RoleAdmin))
	admin.Post("/register", "admin.users.create", c.Users.Create)
	admin.Get("/users", "admin.users.list", c.Users.List)
	admin.Delete("/user/{userId}", "admin.users.delete", c.Users.Delete)
	admin.Post("/categories", "admin.categories.create", c.Category.Create)
	admin.Get("/categories/{id}", "admin.categories.get", c.Category.Get)
	admin.Post("/items", "admin.items.create", c.Item.Create)
	admin.Delete("/item/{itemId}", "admin.items.delete", c.Item.Delete)
	admin.Get("/dashboard", "admin.dashboard", c.Order.Dashboard)

	// Serve locally stored uploads.
	if local, ok := disk.(*storage.LocalDisk); ok {
		r.Static("/storage", http.Dir(local.Root()))
	}
}
