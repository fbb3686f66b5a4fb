package handlers

import (
	"github.com/lokiedu/yoga_admin/gateway"
	"github.com/lokiedu/yoga_admin/models"
	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	Gateway gateway.Gateway
}

// ListUsers filters by role; defaults to instructors, which feeds the
// instructor-selection dropdown.
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	role := c.Query("role", models.RoleInstructor)

	users, err := h.Gateway.ListUsersByRole(c.Context(), role)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load users"})
	}
	return c.JSON(users)
}
