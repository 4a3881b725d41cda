package httpapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rosterhq/roster/internal/logging"
	"github.com/rosterhq/roster/internal/server/services"
)

// RouterDeps carries everything the router needs to wire the endpoints.
type RouterDeps struct {
	Users     *services.UserService
	Logger    logging.Logger
	JWTSecret []byte
}

// Router registers the API routes: a public auth group and the protected
// user directory.
func Router(app *fiber.App, deps RouterDeps) {
	h := NewHandler(deps.Users, deps.Logger)

	api := app.Group("/api")
	api.Get("/health", h.Health)

	authGroup := api.Group("/auth")
	authGroup.Post("/register", h.Register)
	authGroup.Post("/login", h.Login)
	authGroup.Post("/refresh", h.Refresh)

	users := api.Group("/users", AuthMiddleware(deps.JWTSecret))
	users.Get("/", h.List)
	users.Post("/", h.Create)
	users.Get("/:id", h.GetByID)
	users.Put("/:id", h.Update)
	users.Delete("/:id", h.Delete)
}
