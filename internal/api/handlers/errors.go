package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/quantfra/stockhub/internal/utils"
)

// writeServiceError maps the service error taxonomy onto HTTP. Unknown
// errors become an opaque 500; the detail stays in the log.
func writeServiceError(c *gin.Context, log *logrus.Entry, err error) {
	var (
		noData       *utils.NoDataError
		insufficient *utils.InsufficientDataError
		transient    *utils.TransientFetchError
		validation   *utils.ValidationError
	)

	switch {
	case errors.As(err, &noData):
		c.JSON(http.StatusNotFound, gin.H{
			"error": fmt.Sprintf("No data found for symbol '%s'. Please check the ticker symbol.", noData.Symbol),
		})
	case errors.As(err, &insufficient):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": fmt.Sprintf("Not enough history for %s: need at least %d data points, have %d.",
				insufficient.Symbol, insufficient.Required, insufficient.Actual),
			"required": insufficient.Required,
			"actual":   insufficient.Actual,
			"deficit":  insufficient.Deficit(),
		})
	case errors.As(err, &transient):
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Market data provider is unavailable. Please try again.",
		})
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Error()})
	default:
		log.WithError(err).Error("unhandled service error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
