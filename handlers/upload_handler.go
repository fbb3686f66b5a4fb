package handlers

import (
	"github.com/lokiedu/yoga_admin/storage"
	"github.com/gofiber/fiber/v2"
)

type UploadHandler struct {
	Store *storage.CloudinaryStore
}

// GenerateUploadSignature creates a secure signature for a frontend upload.
func (h *UploadHandler) GenerateUploadSignature(c *fiber.Ctx) error {
	signature, timestamp, apiKey, folder, err := h.Store.SignUploadParams()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to sign upload params"})
	}

	return c.JSON(fiber.Map{
		"signature": signature,
		"timestamp": timestamp,
		"api_key":   apiKey,
		"folder":    folder,
	})
}
