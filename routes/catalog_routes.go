package routes

import (
	"github.com/lokiedu/yoga_admin/handlers"
	"github.com/lokiedu/yoga_admin/middleware"
	"github.com/gofiber/fiber/v2"
)

// CatalogRoutes serves the reference data behind the wizard dropdowns:
// class types and instructor users.
func CatalogRoutes(app *fiber.App, ct *handlers.ClassTypeHandler, u *handlers.UserHandler, jwtSecret string) {
	api := app.Group("/api/v1", middleware.Protected(jwtSecret))

	types := api.Group("/class-types")
	types.Get("", ct.ListClassTypes)
	types.Get("/:classTypeId", ct.GetClassType)

	api.Get("/users", u.ListUsers)
}
