package handlers

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v3/mem"
)

// HealthChecker reports whether the market data provider is reachable.
type HealthChecker interface {
	IsHealthy(ctx context.Context) bool
}

type HealthHandler struct {
	provider HealthChecker
	version  string
	started  time.Time
}

func NewHealthHandler(provider HealthChecker, version string) *HealthHandler {
	return &HealthHandler{provider: provider, version: version, started: time.Now()}
}

// Health handles GET /health. The service degrades rather than fails
// when the provider is down: cached data still serves.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	providerStatus := "healthy"
	status := "healthy"
	code := http.StatusOK
	if !h.provider.IsHealthy(ctx) {
		providerStatus = "unreachable"
		status = "degraded"
	}

	system := gin.H{"goroutines": runtime.NumGoroutine()}
	if vm, err := mem.VirtualMemory(); err == nil {
		system["memory_used_percent"] = vm.UsedPercent
	}

	c.JSON(code, gin.H{
		"status":         status,
		"version":        h.version,
		"uptime_seconds": int64(time.Since(h.started).Seconds()),
		"timestamp":      time.Now().UTC(),
		"services": gin.H{
			"provider": providerStatus,
		},
		"system": system,
	})
}
