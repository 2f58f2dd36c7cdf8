package config

import (
	"fmt"
	"os"
	"time"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"
)

// Ephemeris backends.
const (
	BackendHTTP = "http"
	BackendFile = "file"
	BackendAuto = "auto" // http, falling back to the fixture when unreachable
)

type Config struct {
	Environment string `yaml:"environment" default:"development"`
	Server      struct {
		Port            int           `yaml:"port" default:"8080"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"10s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"15s"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level" default:"info"`
		Format string `yaml:"format" default:"json"`
		Output string `yaml:"output" default:"stdout"`
	} `yaml:"log"`
	Metrics struct {
		Enabled bool   `yaml:"enabled" default:"true"`
		Path    string `yaml:"path" default:"/metrics"`
	} `yaml:"metrics"`
	RateLimit struct {
		Enabled bool    `yaml:"enabled" default:"true"`
		Rate    float64 `yaml:"rate" default:"10"` // requests per second per client
		Burst   int     `yaml:"burst" default:"20"`
	} `yaml:"rate_limit"`
	Ephemeris struct {
		Backend  string        `yaml:"backend" default:"http"`
		URL      string        `yaml:"url" default:"http://localhost:8000"`
		Fixture  string        `yaml:"fixture"`
		Watch    bool          `yaml:"watch"` // reload the fixture when it changes
		Timeout  time.Duration `yaml:"timeout" default:"5s"`
		Retries  int           `yaml:"retries" default:"2"`
		CacheTTL time.Duration `yaml:"cache_ttl" default:"1m"`
	} `yaml:"ephemeris"`
	Cache struct {
		MemoryMaxSize int           `yaml:"memory_max_size" default:"1024"`
		MemoryCleanup time.Duration `yaml:"memory_cleanup" default:"5m"`
		Redis         struct {
			Enabled  bool   `yaml:"enabled"`
			Addr     string `yaml:"addr" default:"localhost:6379"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			PoolSize int    `yaml:"pool_size" default:"10"`
			Prefix   string `yaml:"prefix" default:"astro"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Chart struct {
		OrbMajor float64 `yaml:"orb_major" default:"8"`
		OrbMinor float64 `yaml:"orb_minor" default:"6"`
		Limits   struct {
			Natal      int `yaml:"natal" default:"20"`
			Transits   int `yaml:"transits" default:"12"`
			Synastry   int `yaml:"synastry" default:"15"`
			Strengths  int `yaml:"strengths" default:"8"`
			Challenges int `yaml:"challenges" default:"5"`
		} `yaml:"limits"`
		Patterns struct {
			Permutations   bool `yaml:"permutations"`
			SingleLegCross bool `yaml:"single_leg_cross"`
		} `yaml:"patterns"`
		DefaultLatitude  float64 `yaml:"default_latitude" default:"41.9028"`
		DefaultLongitude float64 `yaml:"default_longitude" default:"12.4964"`
	} `yaml:"chart"`
	Stream struct {
		Interval time.Duration `yaml:"interval" default:"30s"`
	} `yaml:"stream"`
}

// Default returns a configuration holding only default values.
func Default() *Config {
	var c Config
	if err := defaults.Set(&c); err != nil {
		// tags are static, so this only fires on a broken tag
		panic(fmt.Sprintf("config defaults: %v", err))
	}
	return &c
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(b []byte) (*Config, error) {
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(b)
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
// An empty path loads the defaults.
func LoadWithEnv(path string) (*Config, error) {
	var (
		c   *Config
		err error
	)
	if path == "" {
		c = Default()
	} else if c, err = Load(path); err != nil {
		return nil, err
	}

	if v := os.Getenv("ASTRO_ENV"); v != "" {
		c.Environment = v
	}
	if v := os.Getenv("EPHEMERIS_URL"); v != "" {
		c.Ephemeris.URL = v
	}
	if v := os.Getenv("EPHEMERIS_BACKEND"); v != "" {
		c.Ephemeris.Backend = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Cache.Redis.Addr = v
		c.Cache.Redis.Enabled = true
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	switch c.Ephemeris.Backend {
	case BackendHTTP:
		if c.Ephemeris.URL == "" {
			return fmt.Errorf("ephemeris.url is required for the http backend")
		}
	case BackendFile:
		if c.Ephemeris.Fixture == "" {
			return fmt.Errorf("ephemeris.fixture is required for the file backend")
		}
	case BackendAuto:
		if c.Ephemeris.URL == "" || c.Ephemeris.Fixture == "" {
			return fmt.Errorf("ephemeris.url and ephemeris.fixture are required for the auto backend")
		}
	default:
		return fmt.Errorf("ephemeris.backend must be 'http', 'file' or 'auto', got '%s'", c.Ephemeris.Backend)
	}
	if c.Ephemeris.Retries < 0 {
		return fmt.Errorf("ephemeris.retries cannot be negative")
	}
	if c.Chart.OrbMajor < 0 || c.Chart.OrbMinor < 0 {
		return fmt.Errorf("chart orbs cannot be negative")
	}
	if c.Chart.DefaultLatitude < -90 || c.Chart.DefaultLatitude > 90 {
		return fmt.Errorf("chart.default_latitude out of range: %v", c.Chart.DefaultLatitude)
	}
	if c.Chart.DefaultLongitude < -180 || c.Chart.DefaultLongitude > 180 {
		return fmt.Errorf("chart.default_longitude out of range: %v", c.Chart.DefaultLongitude)
	}
	if c.Stream.Interval <= 0 {
		return fmt.Errorf("stream.interval must be positive")
	}
	if c.RateLimit.Enabled && (c.RateLimit.Rate <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("rate_limit.rate and rate_limit.burst must be positive")
	}
	return nil
}
