package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Default symbol universes, used when the config file supplies none. Kept as
// data rather than code so deployments can swap catalogs without a rebuild.
var (
	defaultStockUniverse = []string{
		"AAPL", "MSFT", "TSLA", "NVDA", "AMZN", "META", "GOOGL", "NFLX",
		"AMD", "AVGO", "SMCI",
		"SPY", "QQQ", "IWM", "XLK", "XLF",
	}
	defaultCryptoUniverse = []string{
		"BTC/USD", "ETH/USD", "SOL/USD",
		"DOGE/USD", "SHIB/USD", "PEPE/USD", "FLOKI/USD", "BONK/USD",
	}
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	DataSource struct {
		BaseURL string `yaml:"base_url"` // empty means Yahoo Finance
		APIKey  string `yaml:"api_key"`
	} `yaml:"data_source"`
	Scan struct {
		AssetClass   string  `yaml:"asset_class"` // "stock" or "crypto"
		Period       string  `yaml:"period"`
		Interval     string  `yaml:"interval"`
		Capital      float64 `yaml:"capital"`
		RiskFraction float64 `yaml:"risk_fraction"`
	} `yaml:"scan"`
	Universes struct {
		Stock  []string `yaml:"stock"`
		Crypto []string `yaml:"crypto"`
	} `yaml:"universes"`
	Schedule struct {
		ScanCron string `yaml:"scan_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
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
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("BARS_API_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("BARS_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SCAN_CAPITAL"); v != "" {
		var capital float64
		if _, err := fmt.Sscanf(v, "%f", &capital); err == nil {
			cfg.Scan.Capital = capital
		}
	}
	if v := os.Getenv("SCAN_RISK"); v != "" {
		var risk float64
		if _, err := fmt.Sscanf(v, "%f", &risk); err == nil {
			cfg.Scan.RiskFraction = risk
		}
	}
	if v := os.Getenv("CRON_SCAN"); v != "" {
		cfg.Schedule.ScanCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}

	// Defaults
	if cfg.Scan.AssetClass == "" {
		cfg.Scan.AssetClass = "stock"
	}
	if cfg.Scan.Period == "" {
		cfg.Scan.Period = "6mo"
	}
	if cfg.Scan.Interval == "" {
		cfg.Scan.Interval = "1d"
	}
	if cfg.Scan.Capital == 0 {
		cfg.Scan.Capital = 25000
	}
	if cfg.Scan.RiskFraction == 0 {
		cfg.Scan.RiskFraction = 0.003
	}
	cfg.Scan.RiskFraction = NormalizeRisk(cfg.Scan.RiskFraction)
	if len(cfg.Universes.Stock) == 0 {
		cfg.Universes.Stock = defaultStockUniverse
	}
	if len(cfg.Universes.Crypto) == 0 {
		cfg.Universes.Crypto = defaultCryptoUniverse
	}
	if cfg.Schedule.ScanCron == "" {
		cfg.Schedule.ScanCron = "0 30 21 * * 1-5"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/trendscout.db"
	}

	return cfg, nil
}

// Validate checks that all required fields are set and sane.
func (c *Config) Validate() error {
	if c.Scan.Capital <= 0 {
		return fmt.Errorf("scan.capital must be positive")
	}
	if c.Scan.RiskFraction <= 0 || c.Scan.RiskFraction >= 1 {
		return fmt.Errorf("scan.risk_fraction must be in (0,1)")
	}
	if c.Scan.AssetClass != "stock" && c.Scan.AssetClass != "crypto" {
		return fmt.Errorf("scan.asset_class must be stock or crypto")
	}
	return nil
}

// NormalizeRisk converts a risk value to a (0,1) fraction once, at the config
// boundary. Callers historically passed either a fraction (0.003) or a whole
// percentage (0.3 meaning 0.3% would stay as-is, 3 meaning 3%); anything >= 1
// is treated as a percentage.
func NormalizeRisk(risk float64) float64 {
	if risk >= 1 {
		return risk / 100
	}
	return risk
}

// Universe returns the default symbol list for an asset class.
func (c *Config) Universe(assetClass string) []string {
	if assetClass == "crypto" {
		return c.Universes.Crypto
	}
	return c.Universes.Stock
}

// ExpandSymbols turns a raw comma-separated symbols value into a clean list.
// Empty input or "ALL" selects the default universe for the asset class.
func (c *Config) ExpandSymbols(raw, assetClass string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "ALL") {
		return c.Universe(assetClass)
	}
	var syms []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			syms = append(syms, s)
		}
	}
	return syms
}
