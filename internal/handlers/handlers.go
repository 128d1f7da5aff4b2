package handlers

import (
	"github.com/gofiber/fiber/v3"

	"pdfquery/internal/models"
)

// DocumentStore is the read-only document snapshot the handlers serve from.
type DocumentStore interface {
	Documents() []models.Document
	Len() int
}

// jsonError returns {"error": message} with the given HTTP status code.
func jsonError(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(models.ErrorResponse{Error: message})
}
