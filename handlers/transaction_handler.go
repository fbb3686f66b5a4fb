package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/lokiedu/yoga_admin/gateway"
	"github.com/lokiedu/yoga_admin/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/phpdave11/gofpdf"
)

type TransactionHandler struct {
	Gateway gateway.Gateway
}

func (h *TransactionHandler) ListTransactions(c *fiber.Ctx) error {
	txns, err := h.Gateway.ListTransactions(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load transactions"})
	}
	return c.JSON(txns)
}

func (h *TransactionHandler) GetTransaction(c *fiber.Ctx) error {
	txn, err := h.Gateway.GetTransaction(c.Context(), c.Params("transactionId"))
	if err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Transaction not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load transaction"})
	}
	return c.JSON(txn)
}

// DownloadReceipt renders a transaction as a PDF receipt.
func (h *TransactionHandler) DownloadReceipt(c *fiber.Ctx) error {
	txn, err := h.Gateway.GetTransaction(c.Context(), c.Params("transactionId"))
	if err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Transaction not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load transaction"})
	}

	user, err := h.Gateway.GetUserByID(c.Context(), txn.UserID)
	if err != nil && !errors.Is(err, gateway.ErrNotFound) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load user"})
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Payment Receipt")
	pdf.Ln(14)

	pdf.SetFont("Arial", "", 11)
	line := func(label, value string) {
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(45, 8, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 11)
		pdf.CellFormat(0, 8, value, "", 1, "L", false, 0, "")
	}

	line("Transaction:", txn.ID)
	if user != nil {
		line("Customer:", fmt.Sprintf("%s <%s>", user.Name, user.Email))
	}
	// Core PDF fonts have no glyph for the dong sign.
	line("Amount:", strings.ReplaceAll(utils.FormatCurrencyVND(txn.Amount), "VNĐ", "VND"))
	line("Payment method:", txn.PaymentMethod)
	line("Status:", txn.Status)
	line("Date:", txn.CreatedAt)
	if len(txn.Bookings) > 0 {
		line("Bookings:", strings.Join(txn.Bookings, ", "))
	}
	if txn.Message != "" {
		pdf.Ln(4)
		pdf.MultiCell(0, 6, txn.Message, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate receipt"})
	}

	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=receipt-%s.pdf", txn.ID))
	return c.Send(buf.Bytes())
}
