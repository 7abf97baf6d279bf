package marketdata

import "time"

// Bar is one OHLCV record as the provider service returns it. Date is
// a calendar day in "2006-01-02" form.
type Bar struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume float64 `json:"volume"`
}

// HistoryResponse is the provider's answer to a history request.
type HistoryResponse struct {
	Symbol string `json:"symbol"`
	Bars   []Bar  `json:"bars"`
	Count  int    `json:"count"`
}

// ProfileResponse is the provider's company lookup answer. MarketCap
// is zero when the provider has no figure.
type ProfileResponse struct {
	Symbol    string  `json:"symbol"`
	Name      string  `json:"name"`
	Exchange  string  `json:"exchange"`
	Sector    string  `json:"sector"`
	Currency  string  `json:"currency"`
	MarketCap float64 `json:"market_cap"`
}

// HealthResponse reports provider liveness.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// ErrorResponse is the provider's error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
