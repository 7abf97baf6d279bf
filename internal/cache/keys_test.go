package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/quantfra/stockhub/internal/models"
)

func day(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

func sampleSeries(n int) *models.PriceSeries {
	candles := make([]models.Candle, n)
	start := day("2023-01-02")
	for i := range candles {
		candles[i] = models.Candle{
			Date:   start.AddDate(0, 0, i),
			Open:   100 + float64(i),
			High:   101 + float64(i),
			Low:    99 + float64(i),
			Close:  100.5 + float64(i),
			Volume: 1e6,
		}
	}
	return &models.PriceSeries{Symbol: "AAPL", Candles: candles}
}

func TestFingerprintDeterministic(t *testing.T) {
	a := Fingerprint(sampleSeries(30))
	b := Fingerprint(sampleSeries(30))
	assert.Equal(t, a, b)
	assert.Len(t, a, 16)
}

func TestFingerprintChangesWithData(t *testing.T) {
	base := Fingerprint(sampleSeries(30))

	longer := Fingerprint(sampleSeries(31))
	assert.NotEqual(t, base, longer)

	shifted := sampleSeries(30)
	shifted.Candles[len(shifted.Candles)-1].Close += 0.01
	assert.NotEqual(t, base, Fingerprint(shifted))
}

func TestFingerprintEmptySeries(t *testing.T) {
	assert.Equal(t, EmptyFingerprint, Fingerprint(&models.PriceSeries{Symbol: "AAPL"}))
}

func TestKeyFormats(t *testing.T) {
	start, end := day("2020-01-01"), day("2024-12-31")

	assert.Equal(t, "AAPL|2020-01-01|2024-12-31", DataKey("aapl", start, end))
	assert.Equal(t, "MSFT|abcd1234", ModelKey("msft", "abcd1234"))

	// Same data, different horizons must produce distinct keys.
	k30 := ForecastKey("AAPL", "abcd1234", 30)
	k60 := ForecastKey("AAPL", "abcd1234", 60)
	assert.NotEqual(t, k30, k60)
}
