package services

import (
	"time"

	"github.com/quantfra/stockhub/internal/cache"
	"github.com/quantfra/stockhub/internal/config"
	"github.com/quantfra/stockhub/internal/models"
)

// Caches bundles the three stores of the pipeline: raw history, fitted
// models and finished predictions. They share one enable switch but
// have independent TTLs and entry caps.
type Caches struct {
	Data     *cache.Store[*models.PriceSeries]
	Model    *cache.Store[PredictiveModel]
	Forecast *cache.Store[*models.ForecastResult]
}

func NewCaches(cfg config.CacheConfig) *Caches {
	return &Caches{
		Data: cache.NewStore[*models.PriceSeries]("data",
			time.Duration(cfg.DataTTLSeconds)*time.Second, cfg.MaxDataEntries, cfg.Enabled),
		Model: cache.NewStore[PredictiveModel]("model",
			time.Duration(cfg.ModelTTLSeconds)*time.Second, cfg.MaxModelEntries, cfg.Enabled),
		Forecast: cache.NewStore[*models.ForecastResult]("forecast",
			time.Duration(cfg.ForecastTTLSeconds)*time.Second, cfg.MaxForecastEntries, cfg.Enabled),
	}
}

// ClearAll drops every entry from all three stores at once.
func (c *Caches) ClearAll() {
	c.Data.Clear()
	c.Model.Clear()
	c.Forecast.Clear()
}

// Stats snapshots all three stores keyed by store name.
func (c *Caches) Stats() map[string]cache.Stats {
	return map[string]cache.Stats{
		c.Data.Name():     c.Data.Stats(),
		c.Model.Name():    c.Model.Stats(),
		c.Forecast.Name(): c.Forecast.Stats(),
	}
}
