// Package config exposes strongly typed application configuration structs loaded from YAML.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// App captures process-wide runtime settings such as name, environment, addresses, and logging levels.
type App struct {
	Name        string `yaml:"name"`
	Env         string `yaml:"env"`
	ListenAddr  string `yaml:"listen_addr"`
	MetricsAddr string `yaml:"metrics_addr"`
	LogLevel    string `yaml:"log_level"`
}

// Pricing groups every tunable knob of the pricing engine. Zero values mean
// "use the engine default" so a sparse YAML file still behaves sensibly.
type Pricing struct {
	BasePrice    float64 `yaml:"base_price"`
	Alpha        float64 `yaml:"alpha"`
	DeadBand     float64 `yaml:"dead_band"`
	MaxChangePct float64 `yaml:"max_change_pct"`
	Sensitivity  float64 `yaml:"sensitivity"`
	LeagueAvg    float64 `yaml:"league_avg"`
	HistoryCap   int     `yaml:"history_cap"`
}

// Storage selects and parameterizes the history store backend.
type Storage struct {
	Backend       string `yaml:"backend"` // memory | redis | sqlite
	SnapshotPath  string `yaml:"snapshot_path"`
	FlushDebounce int    `yaml:"flush_debounce_ms"`
	RedisURL      string `yaml:"redis_url"`
	SQLitePath    string `yaml:"sqlite_path"`
}

// Player identifies one tracked player for providers that need a roster.
type Player struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Position string `yaml:"position"`
}

// Feed configures the stat event source.
type Feed struct {
	Provider     string   `yaml:"provider"` // stub | http
	BaseURL      string   `yaml:"base_url"`
	PollInterval int      `yaml:"poll_interval_ms"`
	Players      []Player `yaml:"players"`
}

// Portfolio captures paper-trading account settings such as starting cash and trade guard-rails.
type Portfolio struct {
	StartingCash        float64 `yaml:"starting_cash"`
	MaxNotionalPerTrade float64 `yaml:"max_notional_per_trade"`
	MaxSharesPerPlayer  float64 `yaml:"max_shares_per_player"`
	TradesPath          string  `yaml:"trades_path"`
}

// Config collects every configuration leaf for easy marshaling from YAML.
type Config struct {
	App       App       `yaml:"app"`
	Pricing   Pricing   `yaml:"pricing"`
	Storage   Storage   `yaml:"storage"`
	Feed      Feed      `yaml:"feed"`
	Portfolio Portfolio `yaml:"portfolio"`
}

// Load reads a YAML file from disk and hydrates a Config struct.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var config Config
	if err := yaml.NewDecoder(file).Decode(&config); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return &config, nil
}

// Save persists a Config struct to disk as YAML.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
