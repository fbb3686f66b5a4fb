package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/lokiedu/yoga_admin/events"
	"github.com/lokiedu/yoga_admin/gateway"
	"github.com/lokiedu/yoga_admin/models"
	"github.com/lokiedu/yoga_admin/notifications"
	"github.com/gofiber/fiber/v2"
)

type BookingHandler struct {
	Gateway gateway.Gateway
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (h *BookingHandler) ListBookings(c *fiber.Ctx) error {
	bookings, err := h.Gateway.ListBookings(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load bookings"})
	}
	return c.JSON(bookings)
}

func (h *BookingHandler) GetBooking(c *fiber.Ctx) error {
	booking, err := h.Gateway.GetBooking(c.Context(), c.Params("bookingId"))
	if err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load booking"})
	}
	return c.JSON(booking)
}

// UpdateBookingStatus moves a booking to any of the known statuses and
// notifies the booking's owner.
func (h *BookingHandler) UpdateBookingStatus(c *fiber.Ctx) error {
	bookingID := c.Params("bookingId")

	var req UpdateBookingStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if !models.ValidBookingStatus(req.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown booking status: " + req.Status})
	}

	if err := h.Gateway.PatchBookingStatus(c.Context(), bookingID, req.Status); err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update booking"})
	}

	booking, err := h.Gateway.GetBooking(c.Context(), bookingID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load booking"})
	}

	events.Publish(events.Event{Entity: "booking", Action: "status_changed", ID: bookingID, Payload: booking})

	go func(b models.Booking) {
		user, err := h.Gateway.GetUserByID(context.Background(), b.UserID)
		if err != nil {
			return
		}
		notifications.SendEmail(user.Name, user.Email, "Your booking was updated",
			fmt.Sprintf("<h1>Booking Update</h1><p>Your booking on %s at %s is now <b>%s</b>.</p>", b.BookingDate, b.BookingTime, b.Status))
	}(*booking)

	return c.JSON(booking)
}
