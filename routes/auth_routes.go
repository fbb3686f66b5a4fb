package routes

import (
	"github.com/lokiedu/yoga_admin/handlers"
	"github.com/gofiber/fiber/v2"
)

func AuthRoutes(app *fiber.App, h *handlers.AuthHandler) {
	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/login", h.Login)
	auth.Post("/google", h.GoogleSignIn)
	auth.Get("/session", h.Session)
}
