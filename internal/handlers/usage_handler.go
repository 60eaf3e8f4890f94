package handlers

import (
	"net/http"
	"strconv"
	"time"

	"prompt-relay-api/internal/services"

	"github.com/gin-gonic/gin"
)

// UsageHandler handles audit reporting HTTP requests
type UsageHandler struct {
	usageService services.UsageService
}

// NewUsageHandler creates a new usage handler
func NewUsageHandler(usageService services.UsageService) *UsageHandler {
	return &UsageHandler{
		usageService: usageService,
	}
}

// @Summary Usage summary
// @Description Aggregate counts and latency over the request audit log
// @Tags usage
// @Produce json
// @Param since_hours query int false "Window size in hours" default(24)
// @Success 200 {object} repositories.UsageSummary
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/usage/summary [get]
func (h *UsageHandler) GetUsageSummary(c *gin.Context) {
	sinceHours := 24
	if v := c.Query("since_hours"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			sinceHours = parsed
		}
	}

	summary, err := h.usageService.GetUsageSummary(c.Request.Context(), time.Now().Add(-time.Duration(sinceHours)*time.Hour))
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "No se pudo obtener el resumen de uso."})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// @Summary Recent requests
// @Description Most recent audited generation requests, newest first
// @Tags usage
// @Produce json
// @Param limit query int false "Maximum number of records" default(50)
// @Success 200 {array} models.RequestAudit
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/usage/recent [get]
func (h *UsageHandler) ListRecentRequests(c *gin.Context) {
	limit := 50
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	audits, err := h.usageService.ListRecentRequests(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "No se pudo obtener el historial de solicitudes."})
		return
	}

	c.JSON(http.StatusOK, audits)
}
