package config

import (
	"time"
)

// Version is set at build time via ldflags.
var Version = "dev"

// DefaultUserAgent is the browser identity sent with every fetch.
// Some storefronts block default HTTP client identities.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Config is the root configuration for ShopScope.
type Config struct {
	Fetcher  FetcherConfig  `mapstructure:"fetcher"  yaml:"fetcher"`
	Analysis AnalysisConfig `mapstructure:"analysis" yaml:"analysis"`
	Output   OutputConfig   `mapstructure:"output"   yaml:"output"`
	Logging  LoggingConfig  `mapstructure:"logging"  yaml:"logging"`
	Server   ServerConfig   `mapstructure:"server"   yaml:"server"`
}

// FetcherConfig controls the page fetcher.
type FetcherConfig struct {
	UserAgent   string        `mapstructure:"user_agent"    yaml:"user_agent"`
	Timeout     time.Duration `mapstructure:"timeout"       yaml:"timeout"`
	MaxBodySize int64         `mapstructure:"max_body_size" yaml:"max_body_size"`
	TLSInsecure bool          `mapstructure:"tls_insecure"  yaml:"tls_insecure"`
}

// AnalysisConfig controls analyzer selection and ranking size.
type AnalysisConfig struct {
	Default string `mapstructure:"default" yaml:"default"`
	TopN    int    `mapstructure:"top_n"   yaml:"top_n"`
}

// OutputConfig controls how results are rendered.
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Port           int           `mapstructure:"port"            yaml:"port"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" yaml:"request_timeout"`
	AllowedOrigins []string      `mapstructure:"allowed_origins" yaml:"allowed_origins"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Fetcher: FetcherConfig{
			UserAgent:   DefaultUserAgent,
			Timeout:     30 * time.Second,
			MaxBodySize: 10 * 1024 * 1024, // 10MB
		},
		Analysis: AnalysisConfig{
			Default: "popularity",
			TopN:    10,
		},
		Output: OutputConfig{
			Format: "text",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Server: ServerConfig{
			Port:           8080,
			RequestTimeout: 60 * time.Second,
			AllowedOrigins: []string{"http://localhost:*", "https://localhost:*"},
		},
	}
}
