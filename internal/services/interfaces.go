package services

import (
	"github.com/quantfra/stockhub/internal/config"
	"github.com/quantfra/stockhub/internal/forecast"
	"github.com/quantfra/stockhub/internal/models"
)

// PredictiveModel is a fitted model ready to predict a horizon.
type PredictiveModel interface {
	Predict(horizon int) (*models.ForecastResult, error)
}

// Forecaster fits models and runs rolling-origin backtests. The
// orchestrator only sees this interface so tests can count fits.
type Forecaster interface {
	Fit(obs []forecast.Observation, p forecast.Params) (PredictiveModel, error)
	CrossValidate(obs []forecast.Observation, p forecast.Params, initialDays, periodDays, horizonDays int) (*models.BacktestResult, error)
}

type engineForecaster struct{}

// NewEngineForecaster wraps the in-process forecast engine.
func NewEngineForecaster() Forecaster {
	return engineForecaster{}
}

func (engineForecaster) Fit(obs []forecast.Observation, p forecast.Params) (PredictiveModel, error) {
	return forecast.Fit(obs, p)
}

func (engineForecaster) CrossValidate(obs []forecast.Observation, p forecast.Params, initialDays, periodDays, horizonDays int) (*models.BacktestResult, error) {
	return forecast.CrossValidate(obs, p, initialDays, periodDays, horizonDays)
}

// ParamsFromConfig maps the model config onto engine parameters.
func ParamsFromConfig(cfg config.ModelConfig) forecast.Params {
	return forecast.Params{
		YearlySeasonality:     cfg.YearlySeasonality,
		WeeklySeasonality:     cfg.WeeklySeasonality,
		DailySeasonality:      cfg.DailySeasonality,
		SeasonalityMode:       cfg.SeasonalityMode,
		ChangepointPriorScale: cfg.ChangepointPriorScale,
		SeasonalityPriorScale: cfg.SeasonalityPriorScale,
	}
}
