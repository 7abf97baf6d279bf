package marketdata

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/quantfra/stockhub/internal/models"
)

// Provider supplies normalized market data to the service layer.
type Provider interface {
	FetchHistory(ctx context.Context, symbol string, start, end time.Time) (*models.PriceSeries, error)
	FetchProfile(ctx context.Context, symbol string) (*models.CompanyProfile, error)
	IsHealthy(ctx context.Context) bool
}

// Service normalizes the provider wire format into domain models:
// dates parsed to midnight UTC, bars sorted ascending, duplicate days
// dropped.
type Service struct {
	client *Client
	log    *logrus.Entry
}

func NewService(client *Client, log *logrus.Entry) *Service {
	return &Service{client: client, log: log}
}

func (s *Service) FetchHistory(ctx context.Context, symbol string, start, end time.Time) (*models.PriceSeries, error) {
	resp, err := s.client.GetHistory(ctx, symbol, start, end)
	if err != nil {
		return nil, err
	}

	candles := make([]models.Candle, 0, len(resp.Bars))
	for _, bar := range resp.Bars {
		d, err := time.Parse("2006-01-02", bar.Date)
		if err != nil {
			s.log.WithField("symbol", symbol).WithField("date", bar.Date).
				Warn("skipping bar with unparseable date")
			continue
		}
		candles = append(candles, models.Candle{
			Date:   d.UTC(),
			Open:   bar.Open,
			High:   bar.High,
			Low:    bar.Low,
			Close:  bar.Close,
			Volume: bar.Volume,
		})
	}

	sort.Slice(candles, func(i, j int) bool {
		return candles[i].Date.Before(candles[j].Date)
	})

	deduped := make([]models.Candle, 0, len(candles))
	for i, c := range candles {
		if i > 0 && c.Date.Equal(candles[i-1].Date) {
			continue
		}
		deduped = append(deduped, c)
	}

	series := &models.PriceSeries{
		Symbol:  strings.ToUpper(symbol),
		Candles: deduped,
	}
	s.log.WithField("symbol", series.Symbol).
		WithField("bars", series.Len()).
		Debug("fetched price history")
	return series, nil
}

func (s *Service) FetchProfile(ctx context.Context, symbol string) (*models.CompanyProfile, error) {
	resp, err := s.client.GetProfile(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("profile lookup for %s: %w", symbol, err)
	}
	return &models.CompanyProfile{
		Symbol:    strings.ToUpper(resp.Symbol),
		Name:      resp.Name,
		Exchange:  resp.Exchange,
		Sector:    resp.Sector,
		Currency:  resp.Currency,
		MarketCap: decimal.NewFromFloat(resp.MarketCap),
	}, nil
}

func (s *Service) IsHealthy(ctx context.Context) bool {
	if err := s.client.HealthCheck(ctx); err != nil {
		s.log.WithError(err).Debug("provider health check failed")
		return false
	}
	return true
}
