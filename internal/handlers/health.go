package handlers

import (
	"github.com/gofiber/fiber/v3"

	"pdfquery/internal/models"
)

// ServiceHandler serves the service description and the document count.
type ServiceHandler struct {
	docs DocumentStore
}

// NewServiceHandler creates a new service handler.
func NewServiceHandler(docs DocumentStore) *ServiceHandler {
	return &ServiceHandler{docs: docs}
}

// Home handles GET /.
func (h *ServiceHandler) Home(c fiber.Ctx) error {
	return c.JSON(models.ServiceDescription{
		Message: "PDF Query API is running!",
		Endpoints: map[string]string{
			"/query?q=authentication error": "Search PDFs for text, regex, or boolean query.",
			"/health":                       "Check if PDFs are loaded and service is live.",
		},
	})
}

// Health handles GET /health. It always reports ok, even with no documents.
func (h *ServiceHandler) Health(c fiber.Ctx) error {
	return c.JSON(models.HealthResponse{
		Status:     "ok",
		PDFsLoaded: h.docs.Len(),
	})
}
