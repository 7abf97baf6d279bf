package services

import (
	"context"
	"strings"
	"time"

	"github.com/cinar/indicator/v2/helper"
	"github.com/cinar/indicator/v2/momentum"
	"github.com/cinar/indicator/v2/trend"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/quantfra/stockhub/internal/cache"
	"github.com/quantfra/stockhub/internal/marketdata"
	"github.com/quantfra/stockhub/internal/models"
	"github.com/quantfra/stockhub/internal/utils"
)

const (
	smaShortPeriod = 20
	smaLongPeriod  = 50
	emaPeriod      = 12
	rsiPeriod      = 14
	recentRows     = 10
)

// DashboardService assembles the per-symbol dashboard view. It shares
// the data cache with the forecast pipeline so both surfaces see the
// same history for the same window.
type DashboardService struct {
	provider marketdata.Provider
	caches   *Caches
	log      *logrus.Entry
}

func NewDashboardService(provider marketdata.Provider, caches *Caches, log *logrus.Entry) *DashboardService {
	return &DashboardService{provider: provider, caches: caches, log: log}
}

// Summary builds the dashboard for one symbol over [start, end].
func (s *DashboardService) Summary(ctx context.Context, symbol string, start, end time.Time) (*models.DashboardSummary, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, utils.NewValidationError("symbol", "must not be blank")
	}

	series, err := s.caches.Data.GetOrCompute(cache.DataKey(symbol, start, end), func() (*models.PriceSeries, error) {
		fetched, err := s.provider.FetchHistory(ctx, symbol, start, end)
		if err != nil {
			return nil, utils.NewTransientFetchError(symbol, err)
		}
		if fetched.IsEmpty() {
			return nil, utils.NewNoDataError(symbol)
		}
		return fetched, nil
	})
	if err != nil {
		return nil, err
	}

	summary := &models.DashboardSummary{
		Symbol:     symbol,
		Name:       symbol,
		RangeStart: start,
		RangeEnd:   end,
		DataPoints: series.Len(),
		Recent:     series.Tail(recentRows),
		Overlay:    computeOverlay(series.Closes()),
	}

	// Profile enrichment is best effort; the dashboard still renders
	// without it.
	if profile, err := s.provider.FetchProfile(ctx, symbol); err != nil {
		s.log.WithError(err).WithField("symbol", symbol).Warn("profile lookup failed")
		summary.MarketCapDisplay = "N/A"
	} else {
		summary.Profile = profile
		summary.Name = profile.DisplayName()
		summary.MarketCapDisplay = utils.FormatMarketCap(profile.MarketCap.InexactFloat64())
	}

	fillPriceMetrics(summary, series)
	return summary, nil
}

func fillPriceMetrics(summary *models.DashboardSummary, series *models.PriceSeries) {
	last, ok := series.Last()
	if !ok {
		return
	}
	summary.CurrentPrice = decimal.NewFromFloat(last.Close)
	summary.VolumeDisplay = utils.FormatVolumeDollars(last.Volume, last.Close)

	if series.Len() < 2 {
		return
	}
	prev := series.Candles[series.Len()-2]
	summary.DailyChange = decimal.NewFromFloat(last.Close - prev.Close)
	if prev.Close != 0 {
		pct := (last.Close - prev.Close) / prev.Close * 100
		summary.DailyChangePct = &pct
	}
}

// computeOverlay derives the indicator overlays from close prices.
// Indicators whose window exceeds the series are left nil.
func computeOverlay(closes []float64) *models.TechnicalOverlay {
	if len(closes) < smaShortPeriod {
		return nil
	}
	overlay := &models.TechnicalOverlay{
		SMA20: lastIndicatorValue(closes, func(c <-chan float64) <-chan float64 {
			return trend.NewSmaWithPeriod[float64](smaShortPeriod).Compute(c)
		}),
		EMA12: lastIndicatorValue(closes, func(c <-chan float64) <-chan float64 {
			return trend.NewEmaWithPeriod[float64](emaPeriod).Compute(c)
		}),
		RSI14: lastIndicatorValue(closes, func(c <-chan float64) <-chan float64 {
			return momentum.NewRsiWithPeriod[float64](rsiPeriod).Compute(c)
		}),
	}
	if len(closes) >= smaLongPeriod {
		overlay.SMA50 = lastIndicatorValue(closes, func(c <-chan float64) <-chan float64 {
			return trend.NewSmaWithPeriod[float64](smaLongPeriod).Compute(c)
		})
	}
	return overlay
}

func lastIndicatorValue(closes []float64, compute func(<-chan float64) <-chan float64) *float64 {
	values := helper.ChanToSlice(compute(helper.SliceToChan(closes)))
	if len(values) == 0 {
		return nil
	}
	v := values[len(values)-1]
	return &v
}
