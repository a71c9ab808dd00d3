package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	DataSource struct {
		CSVPath string `yaml:"csv_path"`
		BaseURL string `yaml:"base_url"`
		APIKey  string `yaml:"api_key"`
		Symbol  string `yaml:"symbol"`
	} `yaml:"data_source"`
	Server struct {
		ListenAddr string `yaml:"listen_addr"`
	} `yaml:"server"`
	Chart struct {
		SessionsShown int `yaml:"sessions_shown"`
	} `yaml:"chart"`
	SessionWindow struct {
		StartHour int `yaml:"start_hour"`
		EndHour   int `yaml:"end_hour"`
	} `yaml:"session_window"`
	Metrics struct {
		TenYearPremium       float64 `yaml:"ten_year_premium"`
		FedFundsUpper        float64 `yaml:"fed_funds_upper"`
		VolatilityWindowDays int     `yaml:"volatility_window_days"`
	} `yaml:"metrics"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"`
	} `yaml:"schedule"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("CSV_PATH"); v != "" {
		cfg.DataSource.CSVPath = v
	}
	if v := os.Getenv("TICKS_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("TICKS_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("SYMBOL"); v != "" {
		cfg.DataSource.Symbol = v
	}
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.Server.ListenAddr = v
	}
	if v := os.Getenv("SESSIONS_SHOWN"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Chart.SessionsShown = n
		}
	}
	if v := os.Getenv("SESSION_START_HOUR"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.SessionWindow.StartHour = n
		}
	}
	if v := os.Getenv("SESSION_END_HOUR"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.SessionWindow.EndHour = n
		}
	}
	if v := os.Getenv("TEN_YEAR_PREMIUM"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Metrics.TenYearPremium = f
		}
	}
	if v := os.Getenv("FED_FUNDS_UPPER"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Metrics.FedFundsUpper = f
		}
	}
	if v := os.Getenv("VOLATILITY_WINDOW_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Metrics.VolatilityWindowDays = n
		}
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("REFRESH_CRON"); v != "" {
		cfg.Schedule.RefreshCron = v
	}

	// Defaults
	if cfg.DataSource.CSVPath == "" && cfg.DataSource.BaseURL == "" {
		cfg.DataSource.CSVPath = "data/us2y_futures.csv"
	}
	if cfg.DataSource.Symbol == "" {
		cfg.DataSource.Symbol = "TUZ5"
	}
	if cfg.Server.ListenAddr == "" {
		cfg.Server.ListenAddr = "127.0.0.1:8050"
	}
	if cfg.Chart.SessionsShown == 0 {
		cfg.Chart.SessionsShown = 6
	}
	if cfg.SessionWindow.StartHour == 0 {
		cfg.SessionWindow.StartHour = 18
	}
	if cfg.SessionWindow.EndHour == 0 {
		cfg.SessionWindow.EndHour = 8
	}
	if cfg.Metrics.TenYearPremium == 0 {
		cfg.Metrics.TenYearPremium = 0.50
	}
	if cfg.Metrics.FedFundsUpper == 0 {
		cfg.Metrics.FedFundsUpper = 5.50
	}
	if cfg.Metrics.VolatilityWindowDays == 0 {
		cfg.Metrics.VolatilityWindowDays = 30
	}
	if cfg.Schedule.RefreshCron == "" {
		cfg.Schedule.RefreshCron = "0 */5 * * * *"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.DataSource.CSVPath == "" && c.DataSource.BaseURL == "" {
		return fmt.Errorf("data_source.csv_path or data_source.base_url is required")
	}
	if c.Chart.SessionsShown <= 0 {
		return fmt.Errorf("chart.sessions_shown must be positive")
	}
	if c.SessionWindow.StartHour < 0 || c.SessionWindow.StartHour > 23 {
		return fmt.Errorf("session_window.start_hour must be within 0-23")
	}
	if c.SessionWindow.EndHour < 0 || c.SessionWindow.EndHour > 23 {
		return fmt.Errorf("session_window.end_hour must be within 0-23")
	}
	if c.SessionWindow.StartHour <= c.SessionWindow.EndHour {
		return fmt.Errorf("session_window must span overnight: start_hour must be after end_hour")
	}
	if c.Metrics.VolatilityWindowDays <= 0 {
		return fmt.Errorf("metrics.volatility_window_days must be positive")
	}
	return nil
}
