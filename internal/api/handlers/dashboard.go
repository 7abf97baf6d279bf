package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/quantfra/stockhub/internal/models"
)

// DashboardProvider is the slice of the dashboard service the handler
// needs.
type DashboardProvider interface {
	Summary(ctx context.Context, symbol string, start, end time.Time) (*models.DashboardSummary, error)
}

type DashboardHandler struct {
	svc          DashboardProvider
	lookbackDays int
	log          *logrus.Entry
}

func NewDashboardHandler(svc DashboardProvider, lookbackDays int, log *logrus.Entry) *DashboardHandler {
	return &DashboardHandler{svc: svc, lookbackDays: lookbackDays, log: log}
}

// GetDashboard handles GET /api/v1/dashboard/:symbol.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	start, end, err := parseWindow(c, h.lookbackDays)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	summary, err := h.svc.Summary(c.Request.Context(), c.Param("symbol"), start, end)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// parseWindow reads optional start/end query dates, defaulting to the
// lookback window ending today (UTC).
func parseWindow(c *gin.Context, lookbackDays int) (time.Time, time.Time, error) {
	end := time.Now().UTC().Truncate(24 * time.Hour)
	if raw := c.Query("end"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return time.Time{}, time.Time{}, errors.New("end must be YYYY-MM-DD")
		}
		end = parsed
	}

	start := end.AddDate(0, 0, -lookbackDays)
	if raw := c.Query("start"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return time.Time{}, time.Time{}, errors.New("start must be YYYY-MM-DD")
		}
		start = parsed
	}

	if !start.Before(end) {
		return time.Time{}, time.Time{}, errors.New("start must be before end")
	}
	return start, end, nil
}
