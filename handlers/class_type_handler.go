package handlers

import (
	"errors"

	"github.com/lokiedu/yoga_admin/gateway"
	"github.com/gofiber/fiber/v2"
)

type ClassTypeHandler struct {
	Gateway gateway.Gateway
}

func (h *ClassTypeHandler) ListClassTypes(c *fiber.Ctx) error {
	types, err := h.Gateway.ListClassTypes(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load class types"})
	}
	return c.JSON(types)
}

func (h *ClassTypeHandler) GetClassType(c *fiber.Ctx) error {
	ct, err := h.Gateway.GetClassType(c.Context(), c.Params("classTypeId"))
	if err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Class type not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load class type"})
	}
	return c.JSON(ct)
}
