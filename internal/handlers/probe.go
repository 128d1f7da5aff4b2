package handlers

import (
	"github.com/gofiber/fiber/v3"
)

// ProbeHandler handles Kubernetes health probe endpoints.
type ProbeHandler struct {
	docs DocumentStore
}

// NewProbeHandler creates a new probe handler.
func NewProbeHandler(docs DocumentStore) *ProbeHandler {
	return &ProbeHandler{docs: docs}
}

// Liveness handles the /healthz endpoint for Kubernetes liveness probes.
// Returns 200 OK if the application is running.
func (h *ProbeHandler) Liveness(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}

// Readiness handles the /readyz endpoint for Kubernetes readiness probes.
// Returns 503 until at least one document has been loaded.
func (h *ProbeHandler) Readiness(c fiber.Ctx) error {
	if h.docs.Len() == 0 {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "error",
			"error":  "no documents loaded",
		})
	}

	return c.JSON(fiber.Map{
		"status":    "ok",
		"documents": h.docs.Len(),
	})
}
