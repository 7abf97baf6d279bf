package forecast

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultParams() Params {
	return Params{
		YearlySeasonality:     true,
		SeasonalityMode:       "multiplicative",
		ChangepointPriorScale: 0.05,
		SeasonalityPriorScale: 10.0,
	}
}

// syntheticObs builds a daily series with a mild upward trend and a
// yearly cycle, deterministic for a given length.
func syntheticObs(n int) []Observation {
	start := time.Date(2021, 1, 4, 0, 0, 0, 0, time.UTC)
	obs := make([]Observation, n)
	for i := range obs {
		d := start.AddDate(0, 0, i)
		seasonal := 5 * math.Sin(2*math.Pi*float64(d.YearDay())/365.25)
		obs[i] = Observation{Date: d, Value: 100 + 0.05*float64(i) + seasonal}
	}
	return obs
}

func TestFitRejectsShortSeries(t *testing.T) {
	_, err := Fit(syntheticObs(1), defaultParams())
	assert.Error(t, err)
}

func TestFitRejectsNonFiniteValues(t *testing.T) {
	obs := syntheticObs(10)
	obs[5].Value = math.NaN()
	_, err := Fit(obs, defaultParams())
	assert.Error(t, err)
}

func TestFitRejectsUnorderedDates(t *testing.T) {
	obs := syntheticObs(10)
	obs[3], obs[4] = obs[4], obs[3]
	_, err := Fit(obs, defaultParams())
	assert.Error(t, err)
}

func TestPredictShapeAndBounds(t *testing.T) {
	obs := syntheticObs(400)
	m, err := Fit(obs, defaultParams())
	require.NoError(t, err)

	res, err := m.Predict(30)
	require.NoError(t, err)

	assert.Equal(t, 30, res.Horizon)
	require.Len(t, res.Points, 430, "points must cover history plus horizon")

	for _, pt := range res.Points {
		assert.LessOrEqual(t, pt.Lower, pt.Value)
		assert.LessOrEqual(t, pt.Value, pt.Upper)
	}

	future := res.FuturePoints()
	require.Len(t, future, 30)
	lastObs := obs[len(obs)-1].Date
	assert.Equal(t, lastObs.AddDate(0, 0, 1), future[0].Date)
	assert.Equal(t, lastObs.AddDate(0, 0, 30), future[29].Date)
}

func TestPredictRejectsNonPositiveHorizon(t *testing.T) {
	m, err := Fit(syntheticObs(200), defaultParams())
	require.NoError(t, err)

	_, err = m.Predict(0)
	assert.Error(t, err)
	_, err = m.Predict(-5)
	assert.Error(t, err)
}

func TestPredictDeterministic(t *testing.T) {
	m1, err := Fit(syntheticObs(300), defaultParams())
	require.NoError(t, err)
	m2, err := Fit(syntheticObs(300), defaultParams())
	require.NoError(t, err)

	r1, err := m1.Predict(14)
	require.NoError(t, err)
	r2, err := m2.Predict(14)
	require.NoError(t, err)

	for i := range r1.Points {
		assert.Equal(t, r1.Points[i].Value, r2.Points[i].Value)
	}
}

func TestPredictTracksTrend(t *testing.T) {
	// Pure linear data without seasonality: value = 100 + 0.5 * day.
	start := time.Date(2022, 3, 1, 0, 0, 0, 0, time.UTC)
	obs := make([]Observation, 300)
	for i := range obs {
		obs[i] = Observation{Date: start.AddDate(0, 0, i), Value: 100 + 0.5*float64(i)}
	}

	p := defaultParams()
	p.YearlySeasonality = false
	m, err := Fit(obs, p)
	require.NoError(t, err)

	res, err := m.Predict(10)
	require.NoError(t, err)

	future := res.FuturePoints()
	want := 100 + 0.5*float64(309)
	assert.InDelta(t, want, future[9].Value, want*0.02,
		"forecast must continue a clean linear trend")
}

func TestIntervalWidensWithHorizon(t *testing.T) {
	m, err := Fit(syntheticObs(300), defaultParams())
	require.NoError(t, err)

	res, err := m.Predict(60)
	require.NoError(t, err)

	future := res.FuturePoints()
	near := future[0].Upper - future[0].Lower
	far := future[59].Upper - future[59].Lower
	assert.Greater(t, far, near, "uncertainty must grow with distance")
}

func TestMultiplicativeFallsBackOnNonPositive(t *testing.T) {
	obs := syntheticObs(100)
	obs[50].Value = -1

	m, err := Fit(obs, defaultParams())
	require.NoError(t, err)
	assert.False(t, m.useLog, "log transform requires strictly positive values")
}
