package handler

import (
	"github.com/gofiber/fiber/v2"
)

const version = "0.1.0"

// ReadinessChecker reports whether the face model has been loaded
type ReadinessChecker interface {
	Ready() bool
	ProviderName() string
}

type HealthHandler struct {
	readiness ReadinessChecker
}

func NewHealthHandler(readiness ReadinessChecker) *HealthHandler {
	return &HealthHandler{readiness: readiness}
}

type HealthResponse struct {
	Status   string `json:"status"`
	Version  string `json:"version,omitempty"`
	Provider string `json:"provider,omitempty"`
}

func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status:  "ok",
		Version: version,
	})
}

// Ready answers 503 until the model warm-up has finished
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	if h.readiness == nil {
		return c.JSON(HealthResponse{Status: "ready"})
	}

	if !h.readiness.Ready() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(HealthResponse{
			Status:   "warming_up",
			Provider: h.readiness.ProviderName(),
		})
	}

	return c.JSON(HealthResponse{
		Status:   "ready",
		Provider: h.readiness.ProviderName(),
	})
}
