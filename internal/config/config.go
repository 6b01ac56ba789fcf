// Package config loads graphologue settings.
//
// Settings come from three layers, later ones winning: built-in defaults
// ([Default]), a TOML file ($XDG_CONFIG_HOME/graphologue/config.toml) and
// environment variables, which may be supplied through a .env file in the
// working directory.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	gerrors "github.com/matzehuels/graphologue/pkg/errors"
)

const appName = "graphologue"

// Environment variables read by [Load].
const (
	EnvOpenAIKey     = "OPENAI_API_KEY"
	EnvOpenAIBaseURL = "OPENAI_BASE_URL"
	EnvModel         = "GRAPHOLOGUE_MODEL"
	EnvScholarKey    = "SEMANTIC_SCHOLAR_API_KEY"
	EnvScholarURL    = "SEMANTIC_SCHOLAR_BASE_URL"
	EnvRedisURL      = "REDIS_URL"
	EnvLayout        = "GRAPHOLOGUE_LAYOUT"
	EnvAddr          = "GRAPHOLOGUE_ADDR"
	EnvPerKeyword    = "GRAPHOLOGUE_PAPERS_PER_KEYWORD"
)

// Config is the complete configuration.
type Config struct {
	Completion Completion `toml:"completion"`
	Scholar    Scholar    `toml:"scholar"`
	Layout     Layout     `toml:"layout"`
	Cache      Cache      `toml:"cache"`
	Server     Server     `toml:"server"`
}

type Completion struct {
	APIKey  string `toml:"api_key"`
	BaseURL string `toml:"base_url"`
	Model   string `toml:"model"`
}

type Scholar struct {
	APIKey      string  `toml:"api_key"`
	BaseURL     string  `toml:"base_url"`
	RateLimit   float64 `toml:"rate_limit"`
	PerKeyword  int     `toml:"per_keyword"`
	Concurrency int     `toml:"concurrency"`
	Retries     int     `toml:"retries"`
}

type Layout struct {
	Engine string `toml:"engine"`
}

type Cache struct {
	// Dir is the file cache directory; empty means the XDG cache dir.
	Dir string `toml:"dir"`
	// RedisURL selects the Redis backend when set.
	RedisURL string   `toml:"redis_url"`
	TTL      Duration `toml:"ttl"`
	// Prefix scopes Redis keys when several deployments share an instance.
	Prefix string `toml:"prefix"`
}

type Server struct {
	Addr         string   `toml:"addr"`
	ReadTimeout  Duration `toml:"read_timeout"`
	WriteTimeout Duration `toml:"write_timeout"`
}

// Duration is a time.Duration written as a string ("90s", "24h") in TOML.
type Duration struct{ time.Duration }

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Completion: Completion{Model: "gpt-3.5-turbo-instruct"},
		Scholar: Scholar{
			BaseURL:     "https://api.semanticscholar.org",
			RateLimit:   1,
			PerKeyword:  1,
			Concurrency: 4,
			Retries:     1,
		},
		Layout: Layout{Engine: "layered"},
		Cache:  Cache{TTL: Duration{24 * time.Hour}},
		Server: Server{
			Addr:         ":8080",
			ReadTimeout:  Duration{15 * time.Second},
			WriteTimeout: Duration{90 * time.Second},
		},
	}
}

// Path returns the default config file location.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName, "config.toml"), nil
}

// CacheDir returns the default file cache directory.
func CacheDir() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName), nil
}

// Load reads .env (if present), the config file at path (the default path
// when empty; a missing file is not an error) and the environment.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	explicit := path != ""
	if !explicit {
		p, err := Path()
		if err == nil {
			path = p
		}
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			if explicit || !errors.Is(err, fs.ErrNotExist) {
				return Config{}, err
			}
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks service URLs and numeric limits.
func (c Config) Validate() error {
	if c.Completion.BaseURL != "" {
		if err := gerrors.ValidateURL(c.Completion.BaseURL); err != nil {
			return fmt.Errorf("completion.base_url: %w", err)
		}
	}
	if c.Scholar.BaseURL != "" {
		if err := gerrors.ValidateURL(c.Scholar.BaseURL); err != nil {
			return fmt.Errorf("scholar.base_url: %w", err)
		}
	}
	if c.Scholar.PerKeyword < 0 || c.Scholar.Concurrency < 0 || c.Scholar.Retries < 0 {
		return gerrors.New(gerrors.ErrCodeInvalidInput, "scholar limits must not be negative")
	}
	if c.Cache.TTL.Duration < 0 {
		return gerrors.New(gerrors.ErrCodeInvalidInput, "cache.ttl must not be negative")
	}
	return nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if _, err := toml.Decode(string(data), c); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	set := func(dst *string, key string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	set(&c.Completion.APIKey, EnvOpenAIKey)
	set(&c.Completion.BaseURL, EnvOpenAIBaseURL)
	set(&c.Completion.Model, EnvModel)
	set(&c.Scholar.APIKey, EnvScholarKey)
	set(&c.Scholar.BaseURL, EnvScholarURL)
	set(&c.Cache.RedisURL, EnvRedisURL)
	set(&c.Layout.Engine, EnvLayout)
	set(&c.Server.Addr, EnvAddr)

	if v, ok := lookup(EnvPerKeyword); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvPerKeyword, err)
		}
		c.Scholar.PerKeyword = n
	}
	return nil
}
