package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ChartConfigHandler serves the resolved chart section so the browser
// renders with the same settings the operator configured.
type ChartConfigHandler struct {
	section map[string]any
}

func NewChartConfigHandler(section map[string]any) *ChartConfigHandler {
	return &ChartConfigHandler{section: section}
}

// GetChartConfig handles GET /api/v1/config/chart.
func (h *ChartConfigHandler) GetChartConfig(c *gin.Context) {
	c.JSON(http.StatusOK, h.section)
}
