package config

import (
	"strings"
	"time"

	"github.com/lingbao-market/client/internal/model"
)

// Default values for optional configuration fields.
const (
	DefaultBaseURL      = "http://localhost:8080"
	DefaultAPITimeout   = 10 * time.Second
	DefaultMaxRetries   = 3
	DefaultRetryBackoff = 500 * time.Millisecond
	DefaultFeedInterval = 10 * time.Second
	DefaultFeedSort     = model.SortByPrice
	DefaultFeedTimeout  = 5 * time.Second
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "text"
)

func (c *Config) applyDefaults() {
	// API defaults
	c.API.BaseURL = strings.TrimRight(c.API.BaseURL, "/")
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultBaseURL
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = DefaultAPITimeout
	}
	if c.API.MaxRetries == 0 {
		c.API.MaxRetries = DefaultMaxRetries
	}
	if c.API.RetryBackoff == 0 {
		c.API.RetryBackoff = DefaultRetryBackoff
	}

	// Submit defaults
	if c.Submit.Server == "" {
		c.Submit.Server = model.DefaultServer
	}

	// Feed defaults
	if c.Feed.Interval == 0 {
		c.Feed.Interval = DefaultFeedInterval
	}
	if c.Feed.Sort == "" {
		c.Feed.Sort = DefaultFeedSort
	}
	if c.Feed.Timeout == 0 {
		c.Feed.Timeout = DefaultFeedTimeout
	}

	// Log defaults
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
}
