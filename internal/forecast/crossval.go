package forecast

import (
	"fmt"
	"math"
	"time"

	"github.com/quantfra/stockhub/internal/models"
)

// CrossValidate runs rolling-origin evaluation: fit on everything up
// to a cutoff, predict horizonDays ahead, score against the held-out
// actuals, then advance the cutoff by periodDays. The first cutoff
// sits initialDays after the first observation.
func CrossValidate(obs []Observation, p Params, initialDays, periodDays, horizonDays int) (*models.BacktestResult, error) {
	if initialDays <= 0 || periodDays <= 0 || horizonDays <= 0 {
		return nil, fmt.Errorf("invalid schedule: initial=%d period=%d horizon=%d",
			initialDays, periodDays, horizonDays)
	}
	if len(obs) < 2 {
		return nil, fmt.Errorf("need at least 2 observations, have %d", len(obs))
	}

	first := obs[0].Date
	last := obs[len(obs)-1].Date

	actual := make(map[string]float64, len(obs))
	for _, o := range obs {
		actual[o.Date.Format("2006-01-02")] = o.Value
	}

	var windows []models.BacktestWindow
	for cutoff := first.AddDate(0, 0, initialDays); !cutoff.AddDate(0, 0, horizonDays).After(last); cutoff = cutoff.AddDate(0, 0, periodDays) {
		train := trainingSlice(obs, cutoff)
		if len(train) < 2 {
			continue
		}

		m, err := Fit(train, p)
		if err != nil {
			continue
		}
		res, err := m.Predict(horizonDays)
		if err != nil {
			continue
		}

		w, ok := scoreWindow(res.FuturePoints(), actual, cutoff, horizonDays)
		if ok {
			windows = append(windows, w)
		}
	}

	if len(windows) == 0 {
		return nil, fmt.Errorf("history from %s to %s yields no complete evaluation window",
			first.Format("2006-01-02"), last.Format("2006-01-02"))
	}

	return &models.BacktestResult{
		InitialDays: initialDays,
		PeriodDays:  periodDays,
		HorizonDays: horizonDays,
		Windows:     windows,
		GeneratedAt: time.Now().UTC(),
	}, nil
}

func trainingSlice(obs []Observation, cutoff time.Time) []Observation {
	n := len(obs)
	for n > 0 && obs[n-1].Date.After(cutoff) {
		n--
	}
	return obs[:n]
}

func scoreWindow(predicted []models.ForecastPoint, actual map[string]float64, cutoff time.Time, horizonDays int) (models.BacktestWindow, bool) {
	var absSum, sqSum, pctSum float64
	var n, pctN int
	for _, pt := range predicted {
		a, ok := actual[pt.Date.Format("2006-01-02")]
		if !ok {
			continue
		}
		err := pt.Value - a
		absSum += math.Abs(err)
		sqSum += err * err
		n++
		if a != 0 {
			pctSum += math.Abs(err / a)
			pctN++
		}
	}
	if n == 0 {
		return models.BacktestWindow{}, false
	}

	mape := -1.0
	if pctN > 0 {
		mape = pctSum / float64(pctN)
	}
	return models.BacktestWindow{
		Cutoff:  cutoff,
		Horizon: horizonDays,
		MAE:     absSum / float64(n),
		MAPE:    mape,
		RMSE:    math.Sqrt(sqSum / float64(n)),
	}, true
}
