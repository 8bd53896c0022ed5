package model

import "time"

// Config holds every tunable of sstrack
type Config struct {
	AI           AIConfig           `yaml:"ai" mapstructure:"ai"`
	Store        StoreConfig        `yaml:"store" mapstructure:"store"`
	Files        FilesConfig        `yaml:"files" mapstructure:"files"`
	Cache        CacheConfig        `yaml:"cache" mapstructure:"cache"`
	Concurrency  ConcurrencyConfig  `yaml:"concurrency" mapstructure:"concurrency"`
	RateLimiting RateLimitingConfig `yaml:"rate_limiting" mapstructure:"rate_limiting"`
	Server       ServerConfig       `yaml:"server" mapstructure:"server"`
	Validation   ValidationConfig   `yaml:"validation" mapstructure:"validation"`
	Log          LogConfig          `yaml:"log" mapstructure:"log"`
}

// AIConfig configures the document question-answering provider
type AIConfig struct {
	Provider   string `yaml:"provider" mapstructure:"provider"` // openai, anthropic, ollama
	Model      string `yaml:"model" mapstructure:"model"`
	APIKey     string `yaml:"api_key,omitempty" mapstructure:"api_key"`
	BaseURL    string `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout    int    `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens  int    `yaml:"max_tokens" mapstructure:"max_tokens"`
	HTTPProxy  string `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy string `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
}

// StoreConfig selects the tabular backend
type StoreConfig struct {
	Driver string `yaml:"driver" mapstructure:"driver"` // xlsx or sqlite
	Path   string `yaml:"path" mapstructure:"path"`
}

// FilesConfig configures attachment storage
type FilesConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"`
}

// CacheConfig configures the AI answer cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskDir   string        `yaml:"disk_dir" mapstructure:"disk_dir"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// ConcurrencyConfig configures the batch worker pool
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// RateLimitingConfig limits calls to the AI provider
type RateLimitingConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size" mapstructure:"burst_size"`
}

// ServerConfig configures `sstrack serve`
type ServerConfig struct {
	Addr       string `yaml:"addr" mapstructure:"addr"`
	ExpiryScan string `yaml:"expiry_scan" mapstructure:"expiry_scan"` // cron spec, empty disables
}

// ValidationConfig tunes how rule results affect saving
type ValidationConfig struct {
	BlockOnHoursFailure bool `yaml:"block_on_hours_failure" mapstructure:"block_on_hours_failure"`
	ExpiringSoonDays    int  `yaml:"expiring_soon_days" mapstructure:"expiring_soon_days"`
}

// LogConfig configures the slog handler
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // text or json
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		AI: AIConfig{
			Provider:  "openai",
			Model:     "gpt-4o-mini",
			Timeout:   60,
			MaxTokens: 1000,
		},
		Store: StoreConfig{
			Driver: "xlsx",
			Path:   "sstrack.xlsx",
		},
		Files: FilesConfig{
			Dir: "attachments",
		},
		Cache: CacheConfig{
			Enabled:   true,
			MemoryTTL: time.Hour,
			DiskDir:   ".sstrack-cache",
			DiskTTL:   7 * 24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		RateLimiting: RateLimitingConfig{
			RequestsPerSecond: 2,
			BurstSize:         4,
		},
		Server: ServerConfig{
			Addr:       ":8080",
			ExpiryScan: "0 6 * * *",
		},
		Validation: ValidationConfig{
			BlockOnHoursFailure: false,
			ExpiringSoonDays:    30,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
