package types

import "time"

// DefaultBaseURL is the origin of the upstream recipe service.
const DefaultBaseURL = "https://gourmet.cours.quimerch.com"

// HTTPConfig holds shared HTTP settings for requests to the upstream service.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Zero means no client-side timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "gourmet/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// LogConfig selects the zap logger level and encoding.
type LogConfig struct {
	// Level is one of debug, info, warn, error (default info).
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is json or console (default console).
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// NegotiationConfig overrides the ordered Accept header candidates. An
// empty string entry means the request is sent without an Accept header.
type NegotiationConfig struct {
	Accept []string `json:"accept,omitempty" yaml:"accept,omitempty" mapstructure:"accept"`
}

// CatalogueConfig holds settings for the local catalogue snapshot.
type CatalogueConfig struct {
	// DB is the path of the SQLite snapshot file.
	DB string `json:"db" yaml:"db" mapstructure:"db"`
}

// Config groups all settings read by the CLI.
type Config struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// BaseURL is the upstream service origin.
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// SessionDir holds the stored session files (auth-token, auth-username).
	SessionDir string `json:"session_dir" yaml:"session_dir" mapstructure:"session_dir"`

	Log         LogConfig         `json:"log" yaml:"log" mapstructure:"log"`
	Negotiation NegotiationConfig `json:"negotiation" yaml:"negotiation" mapstructure:"negotiation"`
	Catalogue   CatalogueConfig   `json:"catalogue" yaml:"catalogue" mapstructure:"catalogue"`
}

// ApplyDefaults fills unset fields with their default values.
func (c *Config) ApplyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	if c.UserAgent == "" {
		c.UserAgent = "gourmet/0.1"
	}
	if c.SessionDir == "" {
		c.SessionDir = ".secrets"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
	if c.Catalogue.DB == "" {
		c.Catalogue.DB = "gourmet.db"
	}
}
