// Package config loads the optional TOML configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/litescript/ls-astroclock/internal/astro"
	"github.com/litescript/ls-astroclock/internal/position"
)

// AppName names the configuration directory.
const AppName = "ls-astroclock"

// Default place: Eugene, Oregon.
const (
	DefaultLatitude  = 44.0521
	DefaultLongitude = -123.0856
)

// Config is the user configuration. Every field has a default and can be
// overridden on the command line.
type Config struct {
	EphemerisDir  string       `toml:"ephemeris_dir"`
	Latitude      float64      `toml:"latitude"`
	Longitude     float64      `toml:"longitude"` // degrees east
	Zodiac        string       `toml:"zodiac"`
	Heliocentric  bool         `toml:"heliocentric"`
	SearchTimeout Duration     `toml:"search_timeout"`
	LogLevel      string       `toml:"log_level"`
	Server        ServerConfig `toml:"server"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Duration is a time.Duration written as a string such as "5s".
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Latitude:      DefaultLatitude,
		Longitude:     DefaultLongitude,
		Zodiac:        astro.ZodiacTropical.String(),
		SearchTimeout: Duration{5 * time.Second},
		LogLevel:      "info",
		Server:        ServerConfig{Addr: "127.0.0.1:8642"},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/ls-astroclock/config.toml, falling
// back to ~/.config.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName, "config.toml"), nil
}

// Load reads the configuration at path over the defaults. An empty path
// means the default location, which may be absent; an explicit path must
// exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	home, _ := os.UserHomeDir()
	path = expandHome(path, home)

	md, err := toml.DecodeFile(path, cfg)
	switch {
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		// no file: defaults
	case err != nil:
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	default:
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return nil, fmt.Errorf("config %s: unknown keys %s", path, strings.Join(keys, ", "))
		}
	}

	cfg.EphemerisDir = expandHome(cfg.EphemerisDir, home)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks ranges and names.
func (c *Config) Validate() error {
	if c.Latitude < -90 || c.Latitude > 90 {
		return fmt.Errorf("latitude %v outside -90..90", c.Latitude)
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("longitude %v outside -180..180", c.Longitude)
	}
	if _, err := astro.ParseZodiac(c.Zodiac); err != nil {
		return err
	}
	if c.SearchTimeout.Duration <= 0 {
		return fmt.Errorf("search_timeout must be positive, got %s", c.SearchTimeout)
	}
	return nil
}

// Context returns the chart context described by the configuration.
func (c *Config) Context() (position.Context, error) {
	z, err := astro.ParseZodiac(c.Zodiac)
	if err != nil {
		return position.Context{}, err
	}
	return position.Context{
		Zodiac:       z,
		Heliocentric: c.Heliocentric,
		Observer:     position.ObserverFromDegrees(c.Latitude, c.Longitude),
	}, nil
}

func expandHome(path, home string) string {
	if home != "" && len(path) > 1 && path[0] == '~' && path[1] == '/' {
		return filepath.Join(home, path[2:])
	}
	return path
}
