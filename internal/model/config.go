package model

import "time"

// Config holds the complete agriscout configuration
type Config struct {
	HTTP     HTTPConfig     `yaml:"http" mapstructure:"http"`
	Browser  BrowserConfig  `yaml:"browser" mapstructure:"browser"`
	Sources  SourcesConfig  `yaml:"sources" mapstructure:"sources"`
	Cache    CacheConfig    `yaml:"cache" mapstructure:"cache"`
	Output   OutputConfig   `yaml:"output" mapstructure:"output"`
	History  HistoryConfig  `yaml:"history" mapstructure:"history"`
	Advisory AdvisoryConfig `yaml:"advisory" mapstructure:"advisory"`
}

// HTTPConfig configures plain HTTP calls (structured API, robots.txt)
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent    string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
}

// BrowserConfig configures the headless browser used by scrape sources
type BrowserConfig struct {
	Headless    bool          `yaml:"headless" mapstructure:"headless"`
	NavTimeout  time.Duration `yaml:"nav_timeout" mapstructure:"nav_timeout"`   // Whole navigate+extract budget per site
	WaitTimeout time.Duration `yaml:"wait_timeout" mapstructure:"wait_timeout"` // Wait for results to render; timeout means zero results
	ListingCap  int           `yaml:"listing_cap" mapstructure:"listing_cap"`   // Max listings taken per source per request
	UserAgent   string        `yaml:"user_agent" mapstructure:"user_agent"`
}

// SourcesConfig configures the discovery sources
type SourcesConfig struct {
	OverpassURL       string  `yaml:"overpass_url" mapstructure:"overpass_url"`
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"` // Per-host rate limit
	Burst             int     `yaml:"burst" mapstructure:"burst"`
	RespectRobots     bool    `yaml:"respect_robots" mapstructure:"respect_robots"`
}

// CacheConfig configures the in-memory discovery result cache
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// OutputConfig configures persisted artifacts
type OutputConfig struct {
	ArtifactDir string `yaml:"artifact_dir" mapstructure:"artifact_dir"`
	Verbose     bool   `yaml:"verbose" mapstructure:"verbose"`
}

// HistoryConfig configures the discovery history database
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Path    string `yaml:"path" mapstructure:"path"`
}

// AdvisoryConfig configures the optional crop advisory provider
type AdvisoryConfig struct {
	Provider string `yaml:"provider" mapstructure:"provider"` // "" disables advisory
	Model    string `yaml:"model" mapstructure:"model"`
	APIKey   string `yaml:"-" mapstructure:"-"` // From environment only, never persisted
	BaseURL  string `yaml:"base_url" mapstructure:"base_url"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "agriscout/0.1 (+https://github.com/tharunlokeshu/agriscout)",
			MaxBodyBytes: 2_000_000,
		},
		Browser: BrowserConfig{
			Headless:    true,
			NavTimeout:  60 * time.Second,
			WaitTimeout: 15 * time.Second,
			ListingCap:  10,
			UserAgent:   "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
		},
		Sources: SourcesConfig{
			OverpassURL:       "https://overpass-api.de/api/interpreter",
			RequestsPerSecond: 1,
			Burst:             2,
			RespectRobots:     true,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     15 * time.Minute,
		},
		Output: OutputConfig{
			ArtifactDir: ".",
		},
		History: HistoryConfig{
			Enabled: false,
			Path:    "agriscout.db",
		},
		Advisory: AdvisoryConfig{
			Provider: "",
			Model:    "gpt-4o-mini",
		},
	}
}
