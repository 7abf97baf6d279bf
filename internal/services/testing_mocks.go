package services

import (
	"context"
	"time"

	"github.com/quantfra/stockhub/internal/forecast"
	"github.com/quantfra/stockhub/internal/models"
)

// stubProvider serves canned data and counts fetches.
type stubProvider struct {
	series       *models.PriceSeries
	historyErr   error
	profile      *models.CompanyProfile
	profileErr   error
	healthy      bool
	historyCalls int
	profileCalls int
}

func (p *stubProvider) FetchHistory(_ context.Context, symbol string, _, _ time.Time) (*models.PriceSeries, error) {
	p.historyCalls++
	if p.historyErr != nil {
		return nil, p.historyErr
	}
	if p.series != nil {
		return p.series, nil
	}
	return &models.PriceSeries{Symbol: symbol}, nil
}

func (p *stubProvider) FetchProfile(_ context.Context, symbol string) (*models.CompanyProfile, error) {
	p.profileCalls++
	if p.profileErr != nil {
		return nil, p.profileErr
	}
	if p.profile != nil {
		return p.profile, nil
	}
	return &models.CompanyProfile{Symbol: symbol}, nil
}

func (p *stubProvider) IsHealthy(context.Context) bool {
	return p.healthy
}

// stubModel predicts a flat 10% lift over the last training value.
type stubModel struct {
	obs []forecast.Observation
}

func (m *stubModel) Predict(horizon int) (*models.ForecastResult, error) {
	last := m.obs[len(m.obs)-1]
	points := make([]models.ForecastPoint, 0, len(m.obs)+horizon)
	for _, o := range m.obs {
		points = append(points, models.ForecastPoint{Date: o.Date, Value: o.Value, Lower: o.Value, Upper: o.Value})
	}
	target := last.Value * 1.1
	for i := 1; i <= horizon; i++ {
		points = append(points, models.ForecastPoint{
			Date:  last.Date.AddDate(0, 0, i),
			Value: target,
			Lower: target * 0.95,
			Upper: target * 1.05,
		})
	}
	return &models.ForecastResult{
		Horizon:     horizon,
		Points:      points,
		GeneratedAt: time.Now().UTC(),
	}, nil
}

// stubForecaster counts fits and backtests.
type stubForecaster struct {
	fitCalls int
	cvCalls  int
	cvErr    error
}

func (f *stubForecaster) Fit(obs []forecast.Observation, _ forecast.Params) (PredictiveModel, error) {
	f.fitCalls++
	return &stubModel{obs: obs}, nil
}

func (f *stubForecaster) CrossValidate(_ []forecast.Observation, _ forecast.Params, initial, period, horizon int) (*models.BacktestResult, error) {
	f.cvCalls++
	if f.cvErr != nil {
		return nil, f.cvErr
	}
	return &models.BacktestResult{
		InitialDays: initial,
		PeriodDays:  period,
		HorizonDays: horizon,
		Windows: []models.BacktestWindow{
			{Horizon: horizon, MAE: 1.2, MAPE: 0.04, RMSE: 1.5},
		},
		GeneratedAt: time.Now().UTC(),
	}, nil
}
