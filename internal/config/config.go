package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the resolved application configuration. Values come from
// defaults, an optional config file and environment variables, in
// rising order of precedence.
type Config struct {
	Environment string        `mapstructure:"environment"`
	App         AppConfig     `mapstructure:"app"`
	Server      ServerConfig  `mapstructure:"server"`
	Data        DataConfig    `mapstructure:"data"`
	Model       ModelConfig   `mapstructure:"model"`
	CV          CVConfig      `mapstructure:"cv"`
	Cache       CacheConfig   `mapstructure:"cache"`
	Chart       ChartConfig   `mapstructure:"chart"`
	Logging     LoggingConfig `mapstructure:"logging"`
	API         APIConfig     `mapstructure:"api"`

	sections map[string]map[string]any
}

type AppConfig struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// DataConfig bounds the history window and the forecast horizon.
type DataConfig struct {
	DefaultLookbackDays int `mapstructure:"default_lookback_days"`
	MinDataPoints       int `mapstructure:"min_data_points"`
	MinCVDataPoints     int `mapstructure:"min_cv_data_points"`
	DefaultForecastDays int `mapstructure:"default_forecast_days"`
	MinForecastDays     int `mapstructure:"min_forecast_days"`
	MaxForecastDays     int `mapstructure:"max_forecast_days"`
}

// ModelConfig holds the forecaster hyperparameters. These are fixed
// per deployment, never overridden per request.
type ModelConfig struct {
	YearlySeasonality     bool    `mapstructure:"yearly_seasonality"`
	WeeklySeasonality     bool    `mapstructure:"weekly_seasonality"`
	DailySeasonality      bool    `mapstructure:"daily_seasonality"`
	SeasonalityMode       string  `mapstructure:"seasonality_mode"`
	ChangepointPriorScale float64 `mapstructure:"changepoint_prior_scale"`
	SeasonalityPriorScale float64 `mapstructure:"seasonality_prior_scale"`
}

// CVConfig shapes the rolling-origin cross-validation schedule.
type CVConfig struct {
	InitialDays int `mapstructure:"initial_days"`
	PeriodDays  int `mapstructure:"period_days"`
	HorizonDays int `mapstructure:"horizon_days"`
}

type CacheConfig struct {
	Enabled            bool `mapstructure:"enabled"`
	DataTTLSeconds     int  `mapstructure:"data_ttl_seconds"`
	ModelTTLSeconds    int  `mapstructure:"model_ttl_seconds"`
	ForecastTTLSeconds int  `mapstructure:"forecast_ttl_seconds"`
	MaxDataEntries     int  `mapstructure:"max_data_entries"`
	MaxModelEntries    int  `mapstructure:"max_model_entries"`
	MaxForecastEntries int  `mapstructure:"max_forecast_entries"`
}

// ChartConfig is presentation config served to the browser as-is.
type ChartConfig struct {
	DashboardHeight      int     `mapstructure:"dashboard_height"`
	ForecastHeight       int     `mapstructure:"forecast_height"`
	VolumeOpacity        float64 `mapstructure:"volume_opacity"`
	CandlestickUpColor   string  `mapstructure:"candlestick_up_color"`
	CandlestickDownColor string  `mapstructure:"candlestick_down_color"`
}

type LoggingConfig struct {
	Level    string `mapstructure:"level"`
	Format   string `mapstructure:"format"`
	FilePath string `mapstructure:"file_path"`
}

// APIConfig points at the market data provider service.
type APIConfig struct {
	ProviderURL       string  `mapstructure:"provider_url"`
	TimeoutSeconds    int     `mapstructure:"timeout_seconds"`
	MaxRetries        int     `mapstructure:"max_retries"`
	RetryDelaySeconds float64 `mapstructure:"retry_delay_seconds"`
}

var sectionNames = []string{
	"app", "server", "data", "model", "cv", "cache", "chart", "logging", "api",
}

// Load reads configuration from config.yaml (if present) and the
// environment, falling back to built-in defaults.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")

	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindLegacyEnv(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	all := v.AllSettings()
	cfg.sections = make(map[string]map[string]any, len(sectionNames))
	for _, name := range sectionNames {
		if section, ok := all[name].(map[string]any); ok {
			cfg.sections[name] = section
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Section returns the fully resolved settings of one named section.
// Unknown names return an empty map. The returned map is shared and
// must be treated as read-only.
func (c *Config) Section(name string) map[string]any {
	if s, ok := c.sections[name]; ok {
		return s
	}
	return map[string]any{}
}

func (c *Config) validate() error {
	if c.Data.MinForecastDays <= 0 || c.Data.MaxForecastDays < c.Data.MinForecastDays {
		return fmt.Errorf("invalid forecast day bounds: min=%d max=%d",
			c.Data.MinForecastDays, c.Data.MaxForecastDays)
	}
	if c.Data.DefaultForecastDays < c.Data.MinForecastDays ||
		c.Data.DefaultForecastDays > c.Data.MaxForecastDays {
		return fmt.Errorf("default forecast days %d outside [%d, %d]",
			c.Data.DefaultForecastDays, c.Data.MinForecastDays, c.Data.MaxForecastDays)
	}
	if mode := c.Model.SeasonalityMode; mode != "additive" && mode != "multiplicative" {
		return fmt.Errorf("unknown seasonality mode %q", mode)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")

	v.SetDefault("app.name", "stockhub")
	v.SetDefault("app.version", "1.0.0")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)

	v.SetDefault("data.default_lookback_days", 1825)
	v.SetDefault("data.min_data_points", 100)
	v.SetDefault("data.min_cv_data_points", 730)
	v.SetDefault("data.default_forecast_days", 30)
	v.SetDefault("data.min_forecast_days", 7)
	v.SetDefault("data.max_forecast_days", 90)

	v.SetDefault("model.yearly_seasonality", true)
	v.SetDefault("model.weekly_seasonality", false)
	v.SetDefault("model.daily_seasonality", false)
	v.SetDefault("model.seasonality_mode", "multiplicative")
	v.SetDefault("model.changepoint_prior_scale", 0.05)
	v.SetDefault("model.seasonality_prior_scale", 10.0)

	v.SetDefault("cv.initial_days", 365)
	v.SetDefault("cv.period_days", 90)
	v.SetDefault("cv.horizon_days", 30)

	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.data_ttl_seconds", 3600)
	v.SetDefault("cache.model_ttl_seconds", 3600)
	v.SetDefault("cache.forecast_ttl_seconds", 3600)
	v.SetDefault("cache.max_data_entries", 100)
	v.SetDefault("cache.max_model_entries", 20)
	v.SetDefault("cache.max_forecast_entries", 50)

	v.SetDefault("chart.dashboard_height", 700)
	v.SetDefault("chart.forecast_height", 600)
	v.SetDefault("chart.volume_opacity", 0.8)
	v.SetDefault("chart.candlestick_up_color", "#00D4AA")
	v.SetDefault("chart.candlestick_down_color", "#FF6692")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.file_path", "")

	v.SetDefault("api.provider_url", "http://localhost:8000")
	v.SetDefault("api.timeout_seconds", 30)
	v.SetDefault("api.max_retries", 3)
	v.SetDefault("api.retry_delay_seconds", 1.0)
}

// bindLegacyEnv keeps the short environment variable names working
// alongside the section-prefixed ones the replacer derives.
func bindLegacyEnv(v *viper.Viper) {
	bindings := map[string]string{
		"data.default_lookback_days": "DEFAULT_LOOKBACK_DAYS",
		"data.min_data_points":       "MIN_DATA_POINTS",
		"data.min_cv_data_points":    "MIN_CV_DATA_POINTS",
		"data.default_forecast_days": "DEFAULT_FORECAST_DAYS",
		"data.min_forecast_days":     "MIN_FORECAST_DAYS",
		"data.max_forecast_days":     "MAX_FORECAST_DAYS",

		"cv.initial_days": "CV_INITIAL_DAYS",
		"cv.period_days":  "CV_PERIOD_DAYS",
		"cv.horizon_days": "CV_HORIZON_DAYS",

		"cache.enabled":              "CACHE_ENABLED",
		"cache.data_ttl_seconds":     "CACHE_DATA_TTL_SECONDS",
		"cache.model_ttl_seconds":    "CACHE_MODEL_TTL_SECONDS",
		"cache.forecast_ttl_seconds": "CACHE_FORECAST_TTL_SECONDS",
		"cache.max_data_entries":     "CACHE_MAX_DATA_ENTRIES",
		"cache.max_model_entries":    "CACHE_MAX_MODEL_ENTRIES",
		"cache.max_forecast_entries": "CACHE_MAX_FORECAST_ENTRIES",

		"chart.dashboard_height":       "DASHBOARD_CHART_HEIGHT",
		"chart.forecast_height":        "FORECAST_CHART_HEIGHT",
		"chart.volume_opacity":         "VOLUME_OPACITY",
		"chart.candlestick_up_color":   "CANDLESTICK_UP_COLOR",
		"chart.candlestick_down_color": "CANDLESTICK_DOWN_COLOR",

		"logging.level":     "LOG_LEVEL",
		"logging.format":    "LOG_FORMAT",
		"logging.file_path": "LOG_FILE_PATH",

		"api.provider_url":        "PROVIDER_URL",
		"api.timeout_seconds":     "API_TIMEOUT_SECONDS",
		"api.max_retries":         "API_MAX_RETRIES",
		"api.retry_delay_seconds": "API_RETRY_DELAY",

		"server.port": "PORT",
		"environment": "ENVIRONMENT",
	}
	for key, env := range bindings {
		// error only fires on empty arguments
		_ = v.BindEnv(key, env)
	}
}
