package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/quantfra/stockhub/internal/cache"
	"github.com/quantfra/stockhub/internal/config"
	"github.com/quantfra/stockhub/internal/forecast"
	"github.com/quantfra/stockhub/internal/marketdata"
	"github.com/quantfra/stockhub/internal/metrics"
	"github.com/quantfra/stockhub/internal/models"
	"github.com/quantfra/stockhub/internal/utils"
)

// ForecastService runs the full pipeline: fetch history, fit a model,
// predict, and backtest when enough history exists. Every stage is
// backed by its cache so repeated requests with unchanged data reuse
// the fitted model and the finished prediction.
type ForecastService struct {
	provider   marketdata.Provider
	forecaster Forecaster
	caches     *Caches
	dataCfg    config.DataConfig
	cvCfg      config.CVConfig
	params     forecast.Params
	log        *logrus.Entry
}

func NewForecastService(
	provider marketdata.Provider,
	forecaster Forecaster,
	caches *Caches,
	dataCfg config.DataConfig,
	modelCfg config.ModelConfig,
	cvCfg config.CVConfig,
	log *logrus.Entry,
) *ForecastService {
	return &ForecastService{
		provider:   provider,
		forecaster: forecaster,
		caches:     caches,
		dataCfg:    dataCfg,
		cvCfg:      cvCfg,
		params:     ParamsFromConfig(modelCfg),
		log:        log,
	}
}

// Forecast produces the full report for one symbol. The horizon is in
// days; start and end bound the training history.
func (s *ForecastService) Forecast(ctx context.Context, symbol string, start, end time.Time, horizon int) (*models.ForecastReport, error) {
	began := time.Now()
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	if symbol == "" {
		return nil, utils.NewValidationError("symbol", "must not be blank")
	}
	if horizon <= 0 {
		return nil, utils.NewValidationError("days", "must be positive")
	}

	report, err := s.run(ctx, symbol, start, end, horizon)
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	metrics.RecordForecastRun(outcome, time.Since(began).Seconds())
	if err == nil {
		s.log.WithFields(logrus.Fields{
			"symbol":      symbol,
			"horizon":     horizon,
			"duration_ms": time.Since(began).Milliseconds(),
			"backtested":  report.Backtest != nil,
		}).Info("forecast pipeline completed")
	}
	return report, err
}

func (s *ForecastService) run(ctx context.Context, symbol string, start, end time.Time, horizon int) (*models.ForecastReport, error) {
	series, err := s.fetchSeries(ctx, symbol, start, end)
	if err != nil {
		return nil, err
	}

	if series.Len() < s.dataCfg.MinDataPoints {
		return nil, utils.NewInsufficientDataError(symbol, s.dataCfg.MinDataPoints, series.Len())
	}

	fingerprint := cache.Fingerprint(series)
	obs := toObservations(series)

	model, err := s.caches.Model.GetOrCompute(cache.ModelKey(symbol, fingerprint), func() (PredictiveModel, error) {
		return s.forecaster.Fit(obs, s.params)
	})
	if err != nil {
		return nil, err
	}

	result, err := s.caches.Forecast.GetOrCompute(cache.ForecastKey(symbol, fingerprint, horizon), func() (*models.ForecastResult, error) {
		r, err := model.Predict(horizon)
		if err != nil {
			return nil, err
		}
		r.Symbol = symbol
		return r, nil
	})
	if err != nil {
		return nil, err
	}

	report := &models.ForecastReport{
		Symbol:   symbol,
		Forecast: result,
	}
	s.backtest(report, symbol, obs)
	s.fillPriceContext(report, series, result)
	return report, nil
}

func (s *ForecastService) fetchSeries(ctx context.Context, symbol string, start, end time.Time) (*models.PriceSeries, error) {
	return s.caches.Data.GetOrCompute(cache.DataKey(symbol, start, end), func() (*models.PriceSeries, error) {
		series, err := s.provider.FetchHistory(ctx, symbol, start, end)
		if err != nil {
			return nil, utils.NewTransientFetchError(symbol, err)
		}
		if series.IsEmpty() {
			return nil, utils.NewNoDataError(symbol)
		}
		return series, nil
	})
}

// backtest attaches cross-validation results when the series is long
// enough. A failed or skipped backtest never fails the forecast; the
// report carries a note instead.
func (s *ForecastService) backtest(report *models.ForecastReport, symbol string, obs []forecast.Observation) {
	n := len(obs)
	if n < s.dataCfg.MinCVDataPoints {
		report.BacktestNote = fmt.Sprintf(
			"cross-validation requires at least %d data points, have %d", s.dataCfg.MinCVDataPoints, n)
		return
	}

	initial := s.cvCfg.InitialDays
	if half := n / 2; half < initial {
		initial = half
	}

	bt, err := s.forecaster.CrossValidate(obs, s.params, initial, s.cvCfg.PeriodDays, s.cvCfg.HorizonDays)
	if err != nil {
		s.log.WithError(err).WithField("symbol", symbol).Warn("cross-validation unavailable")
		report.BacktestNote = "cross-validation unavailable: " + err.Error()
		return
	}
	bt.Symbol = symbol
	report.Backtest = bt
}

func (s *ForecastService) fillPriceContext(report *models.ForecastReport, series *models.PriceSeries, result *models.ForecastResult) {
	last, ok := series.Last()
	if !ok {
		return
	}
	report.CurrentPrice = last.Close

	future := result.FuturePoints()
	if len(future) > 0 {
		report.PredictedPrice = future[len(future)-1].Value
	}

	if report.CurrentPrice != 0 {
		pct := (report.PredictedPrice - report.CurrentPrice) / report.CurrentPrice * 100
		report.ChangePct = &pct
	}
}

func toObservations(series *models.PriceSeries) []forecast.Observation {
	obs := make([]forecast.Observation, series.Len())
	for i, c := range series.Candles {
		obs[i] = forecast.Observation{Date: c.Date, Value: c.Close}
	}
	return obs
}
