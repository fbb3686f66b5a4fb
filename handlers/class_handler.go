package handlers

import (
	"errors"
	"io"
	"log"

	"github.com/lokiedu/yoga_admin/draftcache"
	"github.com/lokiedu/yoga_admin/events"
	"github.com/lokiedu/yoga_admin/gateway"
	"github.com/lokiedu/yoga_admin/workflow"
	"github.com/gofiber/fiber/v2"
)

type ClassHandler struct {
	Gateway gateway.Gateway
	Drafts  draftcache.Store
	Blobs   gateway.BlobStore
}

func (h *ClassHandler) creation(c *fiber.Ctx) (*workflow.ClassCreation, error) {
	w := workflow.NewClassCreation(h.Gateway, h.Drafts, h.Blobs)
	if err := w.Resume(c.Context()); err != nil {
		return nil, err
	}
	return w, nil
}

// GetDraft returns the staged draft, if any, without starting a new one.
func (h *ClassHandler) GetDraft(c *fiber.Ctx) error {
	draft, err := h.Drafts.GetFirstDraft(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load draft"})
	}
	return c.JSON(fiber.Map{"draft": draft})
}

// UpdateDraft starts (or resumes) the creation flow and applies a partial
// edit. Every accepted edit is durably staged.
func (h *ClassHandler) UpdateDraft(c *fiber.Ctx) error {
	var upd workflow.DetailsUpdate
	if err := c.BodyParser(&upd); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	w, err := h.creation(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to resume draft"})
	}

	if err := w.UpdateDetails(c.Context(), upd); err != nil {
		if errors.Is(err, workflow.ErrInvalidStage) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Draft is awaiting confirmation; go back to edit"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save draft"})
	}

	return c.JSON(fiber.Map{"draft": w.Draft(), "stage": w.Stage()})
}

// NextStage advances the flow to confirmation once validation passes.
func (h *ClassHandler) NextStage(c *fiber.Ctx) error {
	w, err := h.creation(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to resume draft"})
	}

	if err := w.Next(c.Context()); err != nil {
		switch {
		case errors.Is(err, workflow.ErrValidationFailed):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error":        "Class details failed validation",
				"field_errors": w.FieldErrors(),
			})
		case errors.Is(err, workflow.ErrInvalidStage):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Draft is not in the details stage"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to advance draft"})
		}
	}

	return c.JSON(fiber.Map{"draft": w.Draft(), "stage": w.Stage()})
}

// BackStage returns from confirmation to editing without losing anything.
func (h *ClassHandler) BackStage(c *fiber.Ctx) error {
	w, err := h.creation(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to resume draft"})
	}

	if err := w.Back(c.Context()); err != nil {
		if errors.Is(err, workflow.ErrInvalidStage) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Draft is not awaiting confirmation"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update draft"})
	}

	return c.JSON(fiber.Map{"draft": w.Draft(), "stage": w.Stage()})
}

type CommitRequest struct {
	Confirm bool `json:"confirm"`
}

// CommitDraft writes the confirmed draft as a durable class and clears the
// staging row. Commit requires confirm=true: there is no undo.
func (h *ClassHandler) CommitDraft(c *fiber.Ctx) error {
	var req CommitRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	w, err := h.creation(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to resume draft"})
	}

	class, err := w.Commit(c.Context(), req.Confirm)
	if err != nil {
		switch {
		case errors.Is(err, workflow.ErrNotConfirmed):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Commit requires explicit confirmation"})
		case errors.Is(err, workflow.ErrInvalidStage):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Draft is not awaiting confirmation"})
		default:
			log.Printf("🔥 Failed to commit class draft: %v", err)
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Failed to save class; please retry"})
		}
	}

	events.Publish(events.Event{Entity: "class", Action: "created", ID: class.ID, Payload: class})
	return c.Status(fiber.StatusCreated).JSON(class)
}

// DiscardDraft abandons the staged draft.
func (h *ClassHandler) DiscardDraft(c *fiber.Ctx) error {
	w, err := h.creation(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to resume draft"})
	}
	if err := w.Discard(c.Context()); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to discard draft"})
	}
	return c.JSON(fiber.Map{"message": "Draft discarded"})
}

// AttachDraftImage uploads a class image for the draft. Upload failure is
// non-fatal: the draft simply keeps no image.
func (h *ClassHandler) AttachDraftImage(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing image file"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot read image file"})
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot read image file"})
	}

	w, err := h.creation(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to resume draft"})
	}

	if err := w.AttachImage(c.Context(), data, fileHeader.Filename); err != nil {
		if errors.Is(err, workflow.ErrInvalidStage) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Draft is awaiting confirmation; go back to edit"})
		}
		log.Printf("🔥 Class image upload failed: %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Image upload failed; you may retry or proceed without an image"})
	}

	return c.JSON(fiber.Map{"draft": w.Draft(), "image_state": w.ImageState()})
}

// RemoveDraftImage detaches the draft image.
func (h *ClassHandler) RemoveDraftImage(c *fiber.Ctx) error {
	w, err := h.creation(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to resume draft"})
	}
	if err := w.RemoveImage(c.Context()); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update draft"})
	}
	return c.JSON(fiber.Map{"draft": w.Draft(), "image_state": w.ImageState()})
}

func (h *ClassHandler) ListClasses(c *fiber.Ctx) error {
	classes, err := h.Gateway.ListClasses(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load classes"})
	}
	return c.JSON(classes)
}

func (h *ClassHandler) GetClass(c *fiber.Ctx) error {
	class, err := h.Gateway.GetClass(c.Context(), c.Params("classId"))
	if err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Class not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load class"})
	}
	return c.JSON(class)
}

type UpdateClassRequest struct {
	Title       string   `json:"title" validate:"required"`
	Description *string  `json:"description"`
	Date        string   `json:"date" validate:"required"`
	Time        string   `json:"time" validate:"required"`
	Capacity    int      `json:"capacity" validate:"required,gt=0"`
	ClassTypeID string   `json:"class_type_id" validate:"required"`
	Price       float64  `json:"price" validate:"required,gt=0"`
	ImageURL    *string  `json:"image_url"`
}

func (h *ClassHandler) UpdateClass(c *fiber.Ctx) error {
	classID := c.Params("classId")

	var req UpdateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	existing, err := h.Gateway.GetClass(c.Context(), classID)
	if err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Class not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load class"})
	}

	existing.Title = req.Title
	existing.Description = req.Description
	existing.Date = req.Date
	existing.Time = req.Time
	existing.Capacity = req.Capacity
	existing.ClassTypeID = req.ClassTypeID
	existing.Price = req.Price
	existing.ImageURL = req.ImageURL

	if err := h.Gateway.PutClass(c.Context(), *existing); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update class"})
	}

	events.Publish(events.Event{Entity: "class", Action: "updated", ID: existing.ID, Payload: existing})
	return c.JSON(existing)
}

// DeleteClass cascades: instances first, then the class.
func (h *ClassHandler) DeleteClass(c *fiber.Ctx) error {
	classID := c.Params("classId")

	if err := workflow.DeleteClassCascade(c.Context(), h.Gateway, classID); err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Class not found"})
		}
		log.Printf("🔥 Cascade delete of class %s failed: %v", classID, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Failed to delete the class; please retry"})
	}

	events.Publish(events.Event{Entity: "class", Action: "deleted", ID: classID})
	return c.JSON(fiber.Map{"message": "Class and its instances deleted"})
}

func (h *ClassHandler) ListClassInstances(c *fiber.Ctx) error {
	instances, err := h.Gateway.ListInstancesByClass(c.Context(), c.Params("classId"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load instances"})
	}
	return c.JSON(instances)
}
