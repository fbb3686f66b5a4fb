package routes

import (
	"github.com/lokiedu/yoga_admin/handlers"
	"github.com/lokiedu/yoga_admin/middleware"
	"github.com/gofiber/fiber/v2"
)

func TransactionRoutes(app *fiber.App, h *handlers.TransactionHandler, jwtSecret string) {
	api := app.Group("/api/v1", middleware.Protected(jwtSecret))

	transactions := api.Group("/transactions")
	transactions.Get("", h.ListTransactions)
	transactions.Get("/:transactionId", h.GetTransaction)
	transactions.Get("/:transactionId/receipt", h.DownloadReceipt)
}
