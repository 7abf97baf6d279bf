package forecast

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/quantfra/stockhub/internal/models"
)

const (
	yearDays    = 365.25
	yearlyOrder = 3
	weeklyOrder = 3
	knotSpacing = 90       // days between trend changepoints
	intervalZ   = 1.959964 // two-sided 95%
	baseRidge   = 1e-8
)

// Params are the model hyperparameters. DailySeasonality is accepted
// for config compatibility but has no effect on daily bars.
type Params struct {
	YearlySeasonality     bool
	WeeklySeasonality     bool
	DailySeasonality      bool
	SeasonalityMode       string // "additive" or "multiplicative"
	ChangepointPriorScale float64
	SeasonalityPriorScale float64
}

// Observation is one training sample.
type Observation struct {
	Date  time.Time
	Value float64
}

// Model is a fitted trend-plus-seasonality forecaster. The trend is a
// linear spline with knots every knotSpacing days; seasonality is a
// truncated Fourier series. Multiplicative mode fits in log space when
// every observation is positive.
type Model struct {
	params Params
	useLog bool
	start  time.Time
	knots  []float64
	coefs  []float64
	sigma  float64
	obs    []Observation
}

// Fit estimates a model from observations sorted by ascending date.
func Fit(obs []Observation, p Params) (*Model, error) {
	if len(obs) < 2 {
		return nil, fmt.Errorf("need at least 2 observations, have %d", len(obs))
	}
	for i, o := range obs {
		if math.IsNaN(o.Value) || math.IsInf(o.Value, 0) {
			return nil, fmt.Errorf("observation %d is not finite", i)
		}
		if i > 0 && !obs[i-1].Date.Before(o.Date) {
			return nil, errors.New("observations must be strictly increasing in date")
		}
	}

	useLog := p.SeasonalityMode == "multiplicative"
	if useLog {
		for _, o := range obs {
			if o.Value <= 0 {
				useLog = false
				break
			}
		}
	}

	m := &Model{
		params: p,
		useLog: useLog,
		start:  obs[0].Date,
		obs:    obs,
	}

	span := m.dayIndex(obs[len(obs)-1].Date)
	for k := float64(knotSpacing); k < span; k += knotSpacing {
		m.knots = append(m.knots, k)
	}

	n := len(obs)
	k := m.featureCount()
	design := make([][]float64, n)
	target := make([]float64, n)
	for i, o := range obs {
		design[i] = m.features(o.Date)
		target[i] = m.transform(o.Value)
	}

	coefs, err := solveRidge(design, target, m.penalties())
	if err != nil {
		return nil, fmt.Errorf("failed to fit model: %w", err)
	}
	m.coefs = coefs

	var ss float64
	for i := range design {
		r := target[i] - dot(design[i], coefs)
		ss += r * r
	}
	dof := float64(n - k)
	if dof < 1 {
		dof = 1
	}
	m.sigma = math.Sqrt(ss / dof)

	return m, nil
}

// Predict extends the fitted history by horizon days. The returned
// points cover the training dates followed by the horizon, each with a
// 95% band satisfying Lower <= Value <= Upper.
func (m *Model) Predict(horizon int) (*models.ForecastResult, error) {
	if horizon <= 0 {
		return nil, fmt.Errorf("horizon must be positive, got %d", horizon)
	}

	n := len(m.obs)
	points := make([]models.ForecastPoint, 0, n+horizon)
	for _, o := range m.obs {
		points = append(points, m.pointAt(o.Date, m.sigma))
	}

	last := m.obs[n-1].Date
	for i := 1; i <= horizon; i++ {
		d := last.AddDate(0, 0, i)
		// Uncertainty grows with distance from the training window.
		se := m.sigma * math.Sqrt(1+float64(i)/float64(n))
		points = append(points, m.pointAt(d, se))
	}

	return &models.ForecastResult{
		Horizon:     horizon,
		Points:      points,
		GeneratedAt: time.Now().UTC(),
	}, nil
}

func (m *Model) pointAt(d time.Time, se float64) models.ForecastPoint {
	z := dot(m.features(d), m.coefs)
	return models.ForecastPoint{
		Date:  d,
		Value: m.untransform(z),
		Lower: m.untransform(z - intervalZ*se),
		Upper: m.untransform(z + intervalZ*se),
	}
}

func (m *Model) dayIndex(d time.Time) float64 {
	return d.Sub(m.start).Hours() / 24
}

func (m *Model) featureCount() int {
	k := 2 + len(m.knots)
	if m.params.YearlySeasonality {
		k += 2 * yearlyOrder
	}
	if m.params.WeeklySeasonality {
		k += 2 * weeklyOrder
	}
	return k
}

func (m *Model) features(d time.Time) []float64 {
	x := m.dayIndex(d)
	f := make([]float64, 0, m.featureCount())
	f = append(f, 1, x)
	for _, knot := range m.knots {
		f = append(f, math.Max(0, x-knot))
	}
	if m.params.YearlySeasonality {
		doy := float64(d.YearDay())
		for j := 1; j <= yearlyOrder; j++ {
			arg := 2 * math.Pi * float64(j) * doy / yearDays
			f = append(f, math.Sin(arg), math.Cos(arg))
		}
	}
	if m.params.WeeklySeasonality {
		dow := float64(d.Weekday())
		for j := 1; j <= weeklyOrder; j++ {
			arg := 2 * math.Pi * float64(j) * dow / 7
			f = append(f, math.Sin(arg), math.Cos(arg))
		}
	}
	return f
}

// penalties returns the per-coefficient ridge weights. Changepoint and
// seasonality prior scales loosen or tighten their blocks the same way
// a Bayesian prior variance would.
func (m *Model) penalties() []float64 {
	pen := make([]float64, 0, m.featureCount())
	pen = append(pen, baseRidge, baseRidge)

	knotPen := baseRidge
	if m.params.ChangepointPriorScale > 0 {
		knotPen = 1 / (m.params.ChangepointPriorScale * m.params.ChangepointPriorScale)
	}
	for range m.knots {
		pen = append(pen, knotPen)
	}

	seasonPen := baseRidge
	if m.params.SeasonalityPriorScale > 0 {
		seasonPen = 1 / (m.params.SeasonalityPriorScale * m.params.SeasonalityPriorScale)
	}
	seasonal := 0
	if m.params.YearlySeasonality {
		seasonal += 2 * yearlyOrder
	}
	if m.params.WeeklySeasonality {
		seasonal += 2 * weeklyOrder
	}
	for i := 0; i < seasonal; i++ {
		pen = append(pen, seasonPen)
	}
	return pen
}

func (m *Model) transform(v float64) float64 {
	if m.useLog {
		return math.Log(v)
	}
	return v
}

func (m *Model) untransform(z float64) float64 {
	if m.useLog {
		return math.Exp(z)
	}
	return z
}

func dot(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

// solveRidge solves the penalized normal equations
// (XᵀX + diag(pen)) β = Xᵀy by Gaussian elimination with partial
// pivoting.
func solveRidge(x [][]float64, y []float64, pen []float64) ([]float64, error) {
	k := len(x[0])
	a := make([][]float64, k)
	b := make([]float64, k)
	for i := 0; i < k; i++ {
		a[i] = make([]float64, k)
		for j := 0; j < k; j++ {
			var s float64
			for r := range x {
				s += x[r][i] * x[r][j]
			}
			a[i][j] = s
		}
		a[i][i] += pen[i]
		var s float64
		for r := range x {
			s += x[r][i] * y[r]
		}
		b[i] = s
	}

	for col := 0; col < k; col++ {
		pivot := col
		for r := col + 1; r < k; r++ {
			if math.Abs(a[r][col]) > math.Abs(a[pivot][col]) {
				pivot = r
			}
		}
		if math.Abs(a[pivot][col]) < 1e-12 {
			return nil, errors.New("singular design matrix")
		}
		a[col], a[pivot] = a[pivot], a[col]
		b[col], b[pivot] = b[pivot], b[col]

		for r := col + 1; r < k; r++ {
			factor := a[r][col] / a[col][col]
			for c := col; c < k; c++ {
				a[r][c] -= factor * a[col][c]
			}
			b[r] -= factor * b[col]
		}
	}

	coefs := make([]float64, k)
	for i := k - 1; i >= 0; i-- {
		s := b[i]
		for j := i + 1; j < k; j++ {
			s -= a[i][j] * coefs[j]
		}
		coefs[i] = s / a[i][i]
	}
	return coefs, nil
}
