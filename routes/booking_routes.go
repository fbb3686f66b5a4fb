package routes

import (
	"github.com/lokiedu/yoga_admin/handlers"
	"github.com/lokiedu/yoga_admin/middleware"
	"github.com/gofiber/fiber/v2"
)

func BookingRoutes(app *fiber.App, h *handlers.BookingHandler, jwtSecret string) {
	api := app.Group("/api/v1", middleware.Protected(jwtSecret))

	bookings := api.Group("/bookings")
	bookings.Get("", h.ListBookings)
	bookings.Get("/:bookingId", h.GetBooking)
	bookings.Patch("/:bookingId/status", h.UpdateBookingStatus)
}
