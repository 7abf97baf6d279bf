package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TechnicalOverlay carries the latest values of the indicator overlays
// shown on the dashboard chart. Nil pointers mean the series was too
// short for that indicator's window.
type TechnicalOverlay struct {
	SMA20 *float64 `json:"sma_20,omitempty"`
	SMA50 *float64 `json:"sma_50,omitempty"`
	EMA12 *float64 `json:"ema_12,omitempty"`
	RSI14 *float64 `json:"rsi_14,omitempty"`
}

// DashboardSummary is everything the dashboard view needs for one
// symbol: headline price metrics, display-ready strings, indicator
// overlays and the most recent rows of history.
type DashboardSummary struct {
	Symbol           string            `json:"symbol"`
	Name             string            `json:"name"`
	Profile          *CompanyProfile   `json:"profile,omitempty"`
	CurrentPrice     decimal.Decimal   `json:"current_price"`
	DailyChange      decimal.Decimal   `json:"daily_change"`
	DailyChangePct   *float64          `json:"daily_change_pct,omitempty"`
	VolumeDisplay    string            `json:"volume_display"`
	MarketCapDisplay string            `json:"market_cap_display"`
	Overlay          *TechnicalOverlay `json:"overlay,omitempty"`
	Recent           []Candle          `json:"recent"`
	RangeStart       time.Time         `json:"range_start"`
	RangeEnd         time.Time         `json:"range_end"`
	DataPoints       int               `json:"data_points"`
}
