package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/quantfra/stockhub/internal/config"
	"github.com/quantfra/stockhub/internal/models"
)

// ForecastRunner is the slice of the forecast service the handler
// needs.
type ForecastRunner interface {
	Forecast(ctx context.Context, symbol string, start, end time.Time, horizon int) (*models.ForecastReport, error)
}

type ForecastHandler struct {
	svc     ForecastRunner
	dataCfg config.DataConfig
	log     *logrus.Entry
}

func NewForecastHandler(svc ForecastRunner, dataCfg config.DataConfig, log *logrus.Entry) *ForecastHandler {
	return &ForecastHandler{svc: svc, dataCfg: dataCfg, log: log}
}

// GetForecast handles GET /api/v1/forecast/:symbol.
// Query: days (clamped to the configured bounds), start, end
// (YYYY-MM-DD, defaulting to the lookback window ending today).
func (h *ForecastHandler) GetForecast(c *gin.Context) {
	symbol := c.Param("symbol")

	days := h.dataCfg.DefaultForecastDays
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be an integer"})
			return
		}
		days = clamp(parsed, h.dataCfg.MinForecastDays, h.dataCfg.MaxForecastDays)
	}

	start, end, err := parseWindow(c, h.dataCfg.DefaultLookbackDays)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.svc.Forecast(c.Request.Context(), symbol, start, end, days)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
