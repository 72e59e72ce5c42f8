package config

import "time"

// Config is the root configuration for the lingbao client.
type Config struct {
	API    APIConfig    `yaml:"api"`
	Submit SubmitConfig `yaml:"submit"`
	Feed   FeedConfig   `yaml:"feed"`
	Log    LogConfig    `yaml:"log"`
}

// APIConfig holds marketplace API settings.
type APIConfig struct {
	BaseURL      string        `yaml:"base_url"`   // e.g. https://market.example.com (no /api/v1 suffix)
	Token        string        `yaml:"token"`      // Bearer token from a previous login
	TokenFile    string        `yaml:"token_file"` // Read when token is empty
	Timeout      time.Duration `yaml:"timeout"`
	MaxRetries   int           `yaml:"max_retries"`
	RetryBackoff time.Duration `yaml:"retry_backoff"`
}

// SubmitConfig holds listing submission settings.
type SubmitConfig struct {
	Server string `yaml:"server"`
}

// FeedConfig holds live feed watcher settings.
type FeedConfig struct {
	Interval time.Duration `yaml:"interval"`
	Sort     string        `yaml:"sort"`
	Timeout  time.Duration `yaml:"timeout"` // Per-poll request timeout
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}
