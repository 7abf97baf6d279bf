package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Candle is one daily OHLCV bar. Dates are normalized to midnight UTC.
type Candle struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// PriceSeries holds the daily history for one symbol, ordered by
// ascending date with no duplicate dates.
type PriceSeries struct {
	Symbol  string   `json:"symbol"`
	Candles []Candle `json:"candles"`
}

func (s *PriceSeries) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Candles)
}

func (s *PriceSeries) IsEmpty() bool {
	return s.Len() == 0
}

// First returns the oldest candle. ok is false for an empty series.
func (s *PriceSeries) First() (Candle, bool) {
	if s.IsEmpty() {
		return Candle{}, false
	}
	return s.Candles[0], true
}

// Last returns the most recent candle. ok is false for an empty series.
func (s *PriceSeries) Last() (Candle, bool) {
	if s.IsEmpty() {
		return Candle{}, false
	}
	return s.Candles[len(s.Candles)-1], true
}

// Closes returns the close prices in date order.
func (s *PriceSeries) Closes() []float64 {
	out := make([]float64, s.Len())
	for i, c := range s.Candles {
		out[i] = c.Close
	}
	return out
}

// Tail returns the most recent n candles (fewer if the series is shorter).
func (s *PriceSeries) Tail(n int) []Candle {
	if n <= 0 || s.IsEmpty() {
		return nil
	}
	if n > s.Len() {
		n = s.Len()
	}
	return s.Candles[s.Len()-n:]
}

// CompanyProfile is the descriptive information for a listed company.
// A zero MarketCap means the provider did not report one.
type CompanyProfile struct {
	Symbol    string          `json:"symbol"`
	Name      string          `json:"name"`
	Exchange  string          `json:"exchange,omitempty"`
	Sector    string          `json:"sector,omitempty"`
	Currency  string          `json:"currency,omitempty"`
	MarketCap decimal.Decimal `json:"market_cap"`
}

// DisplayName returns the company name with the ticker appended, or
// just the ticker when the provider gave no name.
func (p *CompanyProfile) DisplayName() string {
	if p == nil || p.Name == "" {
		if p == nil {
			return ""
		}
		return p.Symbol
	}
	return p.Name + " (" + p.Symbol + ")"
}
