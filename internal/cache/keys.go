package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/quantfra/stockhub/internal/models"
)

// EmptyFingerprint is the fixed fingerprint of an empty series.
const EmptyFingerprint = "0000000000000000"

const dateLayout = "2006-01-02"

// DataKey identifies one fetched history window.
func DataKey(symbol string, start, end time.Time) string {
	return fmt.Sprintf("%s|%s|%s",
		strings.ToUpper(symbol), start.Format(dateLayout), end.Format(dateLayout))
}

// ModelKey identifies one fitted model by the data it was trained on.
func ModelKey(symbol, fingerprint string) string {
	return fmt.Sprintf("%s|%s", strings.ToUpper(symbol), fingerprint)
}

// ForecastKey identifies one prediction. Horizon is part of the key so
// different horizons over the same data never collide.
func ForecastKey(symbol, fingerprint string, horizon int) string {
	return fmt.Sprintf("%s|%s|%d", strings.ToUpper(symbol), fingerprint, horizon)
}

// Fingerprint derives a compact identity for a price series from its
// length and its first and last candles. Two series with the same
// fingerprint are treated as the same data for model reuse.
func Fingerprint(series *models.PriceSeries) string {
	if series.IsEmpty() {
		return EmptyFingerprint
	}
	first, _ := series.First()
	last, _ := series.Last()

	var b strings.Builder
	fmt.Fprintf(&b, "%d", series.Len())
	for _, c := range []models.Candle{first, last} {
		fmt.Fprintf(&b, "|%s|%.6f|%.6f|%.6f|%.6f|%.6f",
			c.Date.Format(dateLayout), c.Open, c.High, c.Low, c.Close, c.Volume)
	}

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])[:16]
}
