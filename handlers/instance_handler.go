package handlers

import (
	"errors"
	"log"

	"github.com/lokiedu/yoga_admin/events"
	"github.com/lokiedu/yoga_admin/gateway"
	"github.com/lokiedu/yoga_admin/workflow"
	"github.com/gofiber/fiber/v2"
)

type InstanceHandler struct {
	Gateway gateway.Gateway
}

type SaveInstanceRequest struct {
	workflow.InstanceDetails
	Confirm bool `json:"confirm"`
}

type DeleteInstanceRequest struct {
	Confirm bool `json:"confirm"`
}

// CreateInstance schedules a new occurrence of a class. The owning class
// must exist; its date bounds the instance date.
func (h *InstanceHandler) CreateInstance(c *fiber.Ctx) error {
	classID := c.Params("classId")

	var req SaveInstanceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	form := workflow.NewInstanceCreate(h.Gateway, classID)
	if err := form.LoadClass(c.Context()); err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Class not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load class"})
	}

	form.Details = req.InstanceDetails
	inst, err := form.Save(c.Context(), req.Confirm)
	if err != nil {
		return saveInstanceError(c, form, err)
	}

	events.Publish(events.Event{Entity: "instance", Action: "created", ID: inst.ID, Payload: inst})
	return c.Status(fiber.StatusCreated).JSON(inst)
}

func (h *InstanceHandler) GetInstance(c *fiber.Ctx) error {
	inst, err := h.Gateway.GetInstance(c.Context(), c.Params("instanceId"))
	if err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Instance not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load instance"})
	}

	// Edit mode shows the owning class read-only for context.
	if c.QueryBool("with_class") {
		class, err := h.Gateway.GetClass(c.Context(), inst.ClassID)
		if err != nil && !errors.Is(err, gateway.ErrNotFound) {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load class"})
		}
		return c.JSON(fiber.Map{"instance": inst, "class": class})
	}

	return c.JSON(inst)
}

// UpdateInstance edits an existing occurrence through the same form flow.
func (h *InstanceHandler) UpdateInstance(c *fiber.Ctx) error {
	instanceID := c.Params("instanceId")

	existing, err := h.Gateway.GetInstance(c.Context(), instanceID)
	if err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Instance not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load instance"})
	}

	var req SaveInstanceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	form := workflow.NewInstanceEdit(h.Gateway, *existing)
	if err := form.LoadClass(c.Context()); err != nil && !errors.Is(err, gateway.ErrNotFound) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load class"})
	}

	form.Details = req.InstanceDetails
	inst, err := form.Save(c.Context(), req.Confirm)
	if err != nil {
		return saveInstanceError(c, form, err)
	}

	events.Publish(events.Event{Entity: "instance", Action: "updated", ID: inst.ID, Payload: inst})
	return c.JSON(inst)
}

// DeleteInstance removes one occurrence, behind a destructive confirmation.
func (h *InstanceHandler) DeleteInstance(c *fiber.Ctx) error {
	instanceID := c.Params("instanceId")

	var req DeleteInstanceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	existing, err := h.Gateway.GetInstance(c.Context(), instanceID)
	if err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Instance not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load instance"})
	}

	form := workflow.NewInstanceEdit(h.Gateway, *existing)
	if err := form.Delete(c.Context(), req.Confirm); err != nil {
		if errors.Is(err, workflow.ErrNotConfirmed) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Delete requires explicit confirmation"})
		}
		log.Printf("🔥 Failed to delete instance %s: %v", instanceID, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Failed to delete instance; please retry"})
	}

	events.Publish(events.Event{Entity: "instance", Action: "deleted", ID: instanceID})
	return c.JSON(fiber.Map{"message": "Instance deleted successfully!"})
}

func saveInstanceError(c *fiber.Ctx, form *workflow.InstanceForm, err error) error {
	switch {
	case errors.Is(err, workflow.ErrInstanceValidation):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":        "Instance details failed validation",
			"field_errors": form.FieldErrors(),
		})
	case errors.Is(err, workflow.ErrNotConfirmed):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Save requires explicit confirmation"})
	default:
		log.Printf("🔥 Failed to save instance: %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Failed to save instance; please retry"})
	}
}
