package models

import "time"

// ForecastPoint is one predicted value with its uncertainty band.
// Lower <= Value <= Upper always holds.
type ForecastPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
	Lower float64   `json:"lower"`
	Upper float64   `json:"upper"`
}

// ForecastResult is the output of a single model prediction. Points
// covers the fitted history followed by Horizon future days.
type ForecastResult struct {
	Symbol      string          `json:"symbol"`
	Horizon     int             `json:"horizon_days"`
	Points      []ForecastPoint `json:"points"`
	GeneratedAt time.Time       `json:"generated_at"`
}

// FuturePoints returns only the points beyond the fitted history.
func (r *ForecastResult) FuturePoints() []ForecastPoint {
	if r == nil || r.Horizon <= 0 || len(r.Points) < r.Horizon {
		return nil
	}
	return r.Points[len(r.Points)-r.Horizon:]
}

// BacktestWindow holds the accuracy metrics for one rolling-origin
// evaluation window.
type BacktestWindow struct {
	Cutoff  time.Time `json:"cutoff"`
	Horizon int       `json:"horizon_days"`
	MAE     float64   `json:"mae"`
	MAPE    float64   `json:"mape"`
	RMSE    float64   `json:"rmse"`
}

// BacktestResult aggregates the rolling-origin cross-validation
// windows for one fitted configuration.
type BacktestResult struct {
	Symbol      string           `json:"symbol"`
	InitialDays int              `json:"initial_days"`
	PeriodDays  int              `json:"period_days"`
	HorizonDays int              `json:"horizon_days"`
	Windows     []BacktestWindow `json:"windows"`
	GeneratedAt time.Time        `json:"generated_at"`
}

// MeanMAPE averages MAPE across windows, ignoring windows where it
// could not be computed.
func (b *BacktestResult) MeanMAPE() float64 {
	if b == nil || len(b.Windows) == 0 {
		return 0
	}
	var sum float64
	var n int
	for _, w := range b.Windows {
		if w.MAPE >= 0 {
			sum += w.MAPE
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// ForecastReport is the full response of a forecast run: the model
// output plus the price context and an optional backtest. Backtest is
// nil when cross-validation was skipped, with BacktestNote explaining
// why.
type ForecastReport struct {
	Symbol         string          `json:"symbol"`
	Forecast       *ForecastResult `json:"forecast"`
	Backtest       *BacktestResult `json:"backtest,omitempty"`
	BacktestNote   string          `json:"backtest_note,omitempty"`
	CurrentPrice   float64         `json:"current_price"`
	PredictedPrice float64         `json:"predicted_price"`
	ChangePct      *float64        `json:"change_pct,omitempty"`
}
