// Package config loads schematic.toml.
//
// Every field has a default, so an absent file is the same as an empty one.
// Command-line flags override file values; the CLI applies them after Load.
//
//	output_dir = "docs/images"
//	formats    = ["png", "svg"]
//	scale      = 150.0
//	dpi        = 300.0
//	workers    = 4
//	diagrams   = []          # empty means every catalog diagram
//
//	[cache]
//	backend    = "file"      # file | redis | none
//	dir        = ""          # default: the user cache dir
//	redis_addr = "localhost:6379"
//	ttl        = "168h"
//
//	[server]
//	addr = ":8080"
package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/schematic/pkg/errors"
	"github.com/matzehuels/schematic/pkg/pipeline"
	"github.com/matzehuels/schematic/pkg/render/sink"
)

// DefaultFile is the config file looked up in the working directory.
const DefaultFile = "schematic.toml"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Duration is a time.Duration written as a Go duration string ("168h").
type Duration struct{ time.Duration }

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// Config is the decoded configuration.
type Config struct {
	OutputDir string       `toml:"output_dir"`
	Formats   []string     `toml:"formats"`
	Scale     float64      `toml:"scale"`
	DPI       float64      `toml:"dpi"`
	Workers   int          `toml:"workers"`
	Diagrams  []string     `toml:"diagrams"`
	Cache     CacheConfig  `toml:"cache"`
	Server    ServerConfig `toml:"server"`
}

// CacheConfig selects and configures the artifact cache.
type CacheConfig struct {
	Backend       string   `toml:"backend"`
	Dir           string   `toml:"dir"`
	RedisAddr     string   `toml:"redis_addr"`
	RedisPassword string   `toml:"redis_password"`
	RedisDB       int      `toml:"redis_db"`
	TTL           Duration `toml:"ttl"`
}

// ServerConfig configures `schematic serve`.
type ServerConfig struct {
	Addr         string   `toml:"addr"`
	ReadTimeout  Duration `toml:"read_timeout"`
	WriteTimeout Duration `toml:"write_timeout"`
	MaxBodyBytes int64    `toml:"max_body_bytes"` // bounds POSTed scene files
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		OutputDir: "docs/images",
		Formats:   []string{string(sink.FormatPNG)},
		Scale:     sink.DefaultScale,
		DPI:       sink.DefaultDPI,
		Workers:   4,
		Cache: CacheConfig{
			Backend:   BackendFile,
			RedisAddr: "localhost:6379",
			TTL:       Duration{7 * 24 * time.Hour},
		},
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  Duration{10 * time.Second},
			WriteTimeout: Duration{60 * time.Second},
			MaxBodyBytes: 1 << 20,
		},
	}
}

// Load reads the file at path over the defaults. An empty path reads
// DefaultFile when it exists and falls back to the defaults otherwise;
// an explicit path must exist. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		if os.IsNotExist(err) {
			return cfg, errors.Wrap(errors.ErrCodeNotFound, err, "config file %s", path)
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, cfg.Validate()
}

// Validate checks value ranges and names.
func (c Config) Validate() error {
	if len(c.Formats) == 0 {
		return invalid("formats must not be empty")
	}
	for _, f := range c.Formats {
		if _, err := sink.ParseFormat(f); err != nil {
			return invalid("formats: unsupported format %q", f)
		}
	}
	if !(c.Scale > 0) {
		return invalid("scale must be positive, got %v", c.Scale)
	}
	if c.Scale > pipeline.MaxScale {
		return invalid("scale must be at most %v, got %v", pipeline.MaxScale, c.Scale)
	}
	if !(c.DPI > 0) {
		return invalid("dpi must be positive, got %v", c.DPI)
	}
	if c.Workers < 1 {
		return invalid("workers must be at least 1, got %d", c.Workers)
	}
	for _, name := range c.Diagrams {
		if err := errors.ValidateDiagramName(name); err != nil {
			return invalid("diagrams: %s", errors.UserMessage(err))
		}
	}
	switch c.Cache.Backend {
	case BackendFile, BackendNone:
	case BackendRedis:
		if c.Cache.RedisAddr == "" {
			return invalid("cache.redis_addr is required for the redis backend")
		}
	default:
		return invalid("cache.backend must be file, redis or none, got %q", c.Cache.Backend)
	}
	if c.Cache.TTL.Duration < 0 {
		return invalid("cache.ttl must not be negative")
	}
	if c.Server.Addr == "" {
		return invalid("server.addr must not be empty")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return invalid("server.max_body_bytes must be positive")
	}
	return nil
}

func invalid(format string, args ...any) error {
	return errors.New(errors.ErrCodeInvalidConfig, format, args...)
}
