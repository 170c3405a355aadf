package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"traductor/backend/internal/service"
)

type HealthHandler struct {
	service service.HealthService
}

type healthResponse struct {
	Status    string  `json:"status"`
	Tracking  string  `json:"tracking"`
	CheckedAt *string `json:"checkedAt,omitempty"`
	Error     string  `json:"error,omitempty"`
}

func NewHealthHandler(service service.HealthService) *HealthHandler {
	return &HealthHandler{service: service}
}

func (h *HealthHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)
}

// Health reports liveness and the last tracking backend probe.
// @Summary Health check
// @Description The server is up whenever this answers; tracking reports the last probe of the tracking backend
// @Tags health
// @Produce json
// @Success 200 {object} healthResponse
// @Router /healthz [get]
func (h *HealthHandler) Health(c echo.Context) error {
	status := h.service.Status()
	resp := healthResponse{
		Status:   "ok",
		Tracking: status.Tracking,
		Error:    status.Error,
	}
	if status.CheckedAt != nil {
		checkedAt := status.CheckedAt.UTC().Format(time.RFC3339)
		resp.CheckedAt = &checkedAt
	}
	return c.JSON(http.StatusOK, resp)
}
