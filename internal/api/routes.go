package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/quantfra/stockhub/internal/api/handlers"
	"github.com/quantfra/stockhub/internal/config"
	"github.com/quantfra/stockhub/internal/logging"
	"github.com/quantfra/stockhub/internal/marketdata"
	"github.com/quantfra/stockhub/internal/middleware"
	"github.com/quantfra/stockhub/internal/services"
)

// Deps holds everything the router needs wired in.
type Deps struct {
	Config    *config.Config
	Log       *logrus.Logger
	Provider  marketdata.Provider
	Forecast  *services.ForecastService
	Dashboard *services.DashboardService
	Caches    *services.Caches
}

// NewRouter builds the gin engine with all routes and middleware.
func NewRouter(d Deps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(d.Log))

	handlerLog := logging.WithComponent(d.Log, "api")

	health := handlers.NewHealthHandler(d.Provider, d.Config.App.Version)
	router.GET("/health", health.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		forecast := handlers.NewForecastHandler(d.Forecast, d.Config.Data, handlerLog)
		v1.GET("/forecast/:symbol", forecast.GetForecast)

		dashboard := handlers.NewDashboardHandler(d.Dashboard, d.Config.Data.DefaultLookbackDays, handlerLog)
		v1.GET("/dashboard/:symbol", dashboard.GetDashboard)

		cacheH := handlers.NewCacheHandler(d.Caches, handlerLog)
		v1.GET("/cache/stats", cacheH.GetStats)
		v1.POST("/cache/clear", cacheH.Clear)

		chart := handlers.NewChartConfigHandler(d.Config.Section("chart"))
		v1.GET("/config/chart", chart.GetChartConfig)
	}

	return router
}
