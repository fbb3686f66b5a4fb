package routes

import (
	"github.com/lokiedu/yoga_admin/handlers"
	"github.com/lokiedu/yoga_admin/middleware"
	"github.com/gofiber/fiber/v2"
)

func ClassRoutes(app *fiber.App, h *handlers.ClassHandler, ih *handlers.InstanceHandler, jwtSecret string) {
	api := app.Group("/api/v1", middleware.Protected(jwtSecret))

	classes := api.Group("/classes")

	// Draft routes must be registered before the :classId routes.
	draft := classes.Group("/draft")
	draft.Get("", h.GetDraft)
	draft.Put("", h.UpdateDraft)
	draft.Delete("", h.DiscardDraft)
	draft.Post("/next", h.NextStage)
	draft.Post("/back", h.BackStage)
	draft.Post("/commit", h.CommitDraft)
	draft.Post("/image", h.AttachDraftImage)
	draft.Delete("/image", h.RemoveDraftImage)

	classes.Get("", h.ListClasses)
	classes.Get("/:classId", h.GetClass)
	classes.Put("/:classId", h.UpdateClass)
	classes.Delete("/:classId", middleware.AdminRequired(), h.DeleteClass)
	classes.Get("/:classId/instances", h.ListClassInstances)
	classes.Post("/:classId/instances", ih.CreateInstance)
}
