package routes

import (
	"github.com/lokiedu/yoga_admin/handlers"
	"github.com/lokiedu/yoga_admin/middleware"
	"github.com/gofiber/fiber/v2"
)

func InstanceRoutes(app *fiber.App, h *handlers.InstanceHandler, jwtSecret string) {
	api := app.Group("/api/v1", middleware.Protected(jwtSecret))

	instances := api.Group("/instances")
	instances.Get("/:instanceId", h.GetInstance)
	instances.Put("/:instanceId", h.UpdateInstance)
	instances.Delete("/:instanceId", h.DeleteInstance)
}
