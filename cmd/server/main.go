package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/quantfra/stockhub/internal/api"
	"github.com/quantfra/stockhub/internal/config"
	"github.com/quantfra/stockhub/internal/logging"
	"github.com/quantfra/stockhub/internal/marketdata"
	"github.com/quantfra/stockhub/internal/services"
)

func main() {
	// A missing .env is fine; the environment still applies.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logging.New(cfg.Logging)
	log.WithField("version", cfg.App.Version).
		WithField("environment", cfg.Environment).
		Info("starting stockhub")

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	client := marketdata.NewClient(cfg.API)
	provider := marketdata.NewService(client, logging.WithComponent(log, "marketdata"))
	caches := services.NewCaches(cfg.Cache)

	forecastSvc := services.NewForecastService(
		provider,
		services.NewEngineForecaster(),
		caches,
		cfg.Data, cfg.Model, cfg.CV,
		logging.WithComponent(log, "forecast"),
	)
	dashboardSvc := services.NewDashboardService(
		provider, caches,
		logging.WithComponent(log, "dashboard"),
	)

	router := api.NewRouter(api.Deps{
		Config:    cfg,
		Log:       log,
		Provider:  provider,
		Forecast:  forecastSvc,
		Dashboard: dashboardSvc,
		Caches:    caches,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.WithField("addr", srv.Addr).Info("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("http server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("forced shutdown")
	}
	log.Info("server stopped")
}
