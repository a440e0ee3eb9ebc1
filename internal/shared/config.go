package shared

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Database DatabaseConfig `toml:"database"`
	Server   ServerConfig   `toml:"server"`
	Sources  SourcesConfig  `toml:"sources"`
	Cache    CacheConfig    `toml:"cache"`
	Batch    BatchConfig    `toml:"batch"`
	Alerts   AlertsConfig   `toml:"alerts"`
}

// SourcesConfig contains application-level credentials and endpoints for each external source.
type SourcesConfig struct {
	Discogs    DiscogsConfig    `toml:"discogs"`
	SoundCloud SoundCloudConfig `toml:"soundcloud"`
	Songkick   SongkickConfig   `toml:"songkick"`
}

// DiscogsConfig contains Discogs API settings.
type DiscogsConfig struct {
	BaseURL   string `toml:"base_url"`
	UserAgent string `toml:"user_agent"`
	TimeoutMS int    `toml:"timeout_ms"`
}

// SoundCloudConfig contains SoundCloud API settings.
type SoundCloudConfig struct {
	BaseURL      string `toml:"base_url"`
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	TokenURL     string `toml:"token_url"`
	TimeoutMS    int    `toml:"timeout_ms"`
}

// SongkickConfig contains Songkick API settings.
type SongkickConfig struct {
	BaseURL   string `toml:"base_url"`
	APIKey    string `toml:"api_key"`
	TimeoutMS int    `toml:"timeout_ms"`
}

// CacheConfig contains default TTLs applied when a tenant's policy omits an entry.
type CacheConfig struct {
	DefaultTTLSeconds int `toml:"default_ttl_seconds"`
}

// BatchConfig contains scheduled refresh settings.
type BatchConfig struct {
	IntervalMinutes int      `toml:"interval_minutes"`
	NumWorkers      int      `toml:"num_workers"`
	RateLimit       float64  `toml:"rate_limit"`
	WarmupURLs      []string `toml:"warmup_urls"`
}

// AlertsConfig contains alerting channel settings (shoutrrr URLs).
type AlertsConfig struct {
	URLs []string `toml:"urls"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// Interval returns the scheduled refresh cadence as a [time.Duration], defaulting to six hours.
func (b BatchConfig) Interval() time.Duration {
	if b.IntervalMinutes <= 0 {
		return 6 * time.Hour
	}
	return time.Duration(b.IntervalMinutes) * time.Minute
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	// Check if file already exists
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	// Write the embedded example config to the file
	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
