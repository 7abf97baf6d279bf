package services

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantfra/stockhub/internal/models"
	"github.com/quantfra/stockhub/internal/utils"
)

func newTestDashboardService(provider *stubProvider, caches *Caches) *DashboardService {
	return NewDashboardService(provider, caches, quietLog())
}

func TestDashboardSummary(t *testing.T) {
	provider := &stubProvider{
		series: seriesOfLength(120),
		profile: &models.CompanyProfile{
			Symbol:    "AAPL",
			Name:      "Apple Inc.",
			MarketCap: decimal.NewFromFloat(2.5e12),
		},
	}
	svc := newTestDashboardService(provider, testCaches())
	start, end := window()

	summary, err := svc.Summary(context.Background(), "aapl", start, end)
	require.NoError(t, err)

	assert.Equal(t, "AAPL", summary.Symbol)
	assert.Equal(t, "Apple Inc. (AAPL)", summary.Name)
	assert.Equal(t, 120, summary.DataPoints)
	assert.Len(t, summary.Recent, 10)
	assert.Equal(t, "$2.50T", summary.MarketCapDisplay)

	lastClose := 100 + 0.05*float64(119)
	assert.True(t, summary.CurrentPrice.Equal(decimal.NewFromFloat(lastClose)))
	assert.True(t, summary.DailyChange.Equal(decimal.NewFromFloat(0.05)))
	require.NotNil(t, summary.DailyChangePct)
	assert.InDelta(t, 0.05/(lastClose-0.05)*100, *summary.DailyChangePct, 1e-9)

	assert.Equal(t, utils.FormatVolumeDollars(1e6, lastClose), summary.VolumeDisplay)

	require.NotNil(t, summary.Overlay)
	assert.NotNil(t, summary.Overlay.SMA20)
	assert.NotNil(t, summary.Overlay.SMA50)
	assert.NotNil(t, summary.Overlay.EMA12)
	assert.NotNil(t, summary.Overlay.RSI14)
}

func TestDashboardProfileFailureIsSoft(t *testing.T) {
	provider := &stubProvider{
		series:     seriesOfLength(120),
		profileErr: errors.New("profile endpoint down"),
	}
	svc := newTestDashboardService(provider, testCaches())
	start, end := window()

	summary, err := svc.Summary(context.Background(), "AAPL", start, end)
	require.NoError(t, err)

	assert.Nil(t, summary.Profile)
	assert.Equal(t, "AAPL", summary.Name)
	assert.Equal(t, "N/A", summary.MarketCapDisplay)
}

func TestDashboardOverlaySkippedForShortSeries(t *testing.T) {
	provider := &stubProvider{series: seriesOfLength(15)}
	svc := newTestDashboardService(provider, testCaches())
	start, end := window()

	summary, err := svc.Summary(context.Background(), "AAPL", start, end)
	require.NoError(t, err)
	assert.Nil(t, summary.Overlay)
}

func TestDashboardEmptySeries(t *testing.T) {
	provider := &stubProvider{series: &models.PriceSeries{Symbol: "FAKESYM"}}
	svc := newTestDashboardService(provider, testCaches())
	start, end := window()

	_, err := svc.Summary(context.Background(), "FAKESYM", start, end)
	var noData *utils.NoDataError
	assert.ErrorAs(t, err, &noData)
}

func TestDashboardSharesDataCacheWithForecast(t *testing.T) {
	provider := &stubProvider{series: seriesOfLength(800)}
	caches := testCaches()
	dash := newTestDashboardService(provider, caches)
	fc := NewForecastService(
		provider, &stubForecaster{}, caches,
		testDataConfig(), testModelConfig(),
		testCVConfig(), quietLog(),
	)
	start, end := window()

	_, err := dash.Summary(context.Background(), "AAPL", start, end)
	require.NoError(t, err)
	_, err = fc.Forecast(context.Background(), "AAPL", start, end, 30)
	require.NoError(t, err)

	assert.Equal(t, 1, provider.historyCalls, "both surfaces must share the data cache")
}
