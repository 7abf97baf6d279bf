package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/quantfra/stockhub/internal/cache"
)

// CacheManager exposes the cache set to the admin endpoints.
type CacheManager interface {
	Stats() map[string]cache.Stats
	ClearAll()
}

type CacheHandler struct {
	caches CacheManager
	log    *logrus.Entry
}

func NewCacheHandler(caches CacheManager, log *logrus.Entry) *CacheHandler {
	return &CacheHandler{caches: caches, log: log}
}

// GetStats handles GET /api/v1/cache/stats.
func (h *CacheHandler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"stores":    h.caches.Stats(),
		"timestamp": time.Now().UTC(),
	})
}

// Clear handles POST /api/v1/cache/clear. All three stores are dropped
// together so no stage can serve data derived from a cleared one.
func (h *CacheHandler) Clear(c *gin.Context) {
	h.caches.ClearAll()
	h.log.WithField("request_id", c.GetString("request_id")).Info("caches cleared")
	c.JSON(http.StatusOK, gin.H{
		"message":   "all caches cleared",
		"timestamp": time.Now().UTC(),
	})
}
