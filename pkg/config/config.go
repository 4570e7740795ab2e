// Package config loads the barbell configuration file.
//
// The file lives at $XDG_CONFIG_HOME/barbell/config.toml (falling back to
// ~/.config/barbell/config.toml) and is optional: a missing file yields
// [Default]. Command-line flags override file values; environment
// variables (BARBELL_*) override both for deployment.
//
// Example:
//
//	bar = 45.0
//	unit = "lb"
//	style = "contrast"
//
//	[storage]
//	backend = "bolt"
//
//	[server]
//	addr = ":8080"
//
//	[cache]
//	ttl = "168h"
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/barbell/pkg/errors"
	"github.com/matzehuels/barbell/pkg/prefs"
	"github.com/matzehuels/barbell/pkg/render/barbell/styles"
)

// Config is the complete configuration.
type Config struct {
	Bar   float64 `toml:"bar"`
	Unit  string  `toml:"unit"`
	Style string  `toml:"style"`
	Scale float64 `toml:"scale"`

	Storage prefs.Config `toml:"storage"`
	Server  Server       `toml:"server"`
	Cache   Cache        `toml:"cache"`
}

// Server configures `barbell serve`.
type Server struct {
	Addr            string        `toml:"addr"`
	Metrics         bool          `toml:"metrics"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout"`
}

// Cache configures the artifact cache.
type Cache struct {
	Disabled bool          `toml:"disabled"`
	Dir      string        `toml:"dir"`
	TTL      time.Duration `toml:"ttl"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Bar:   45,
		Unit:  "lb",
		Style: styles.NameContrast,
		Scale: 1,
		Storage: prefs.Config{
			Backend: prefs.BackendFile,
		},
		Server: Server{
			Addr:            ":8080",
			Metrics:         true,
			ShutdownTimeout: 10 * time.Second,
		},
		Cache: Cache{
			TTL: 7 * 24 * time.Hour,
		},
	}
}

// Load reads the file at path over [Default]. A missing file is not an
// error. Environment overrides are applied last.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		if err != nil && !os.IsNotExist(err) {
			return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "read config %s", path)
		}
		if err == nil {
			if undecoded := md.Undecoded(); len(undecoded) > 0 {
				return cfg, errors.New(errors.ErrCodeInvalidInput, "unknown config key %q in %s", undecoded[0].String(), path)
			}
		}
	}
	cfg.ApplyEnv(os.Getenv)
	if err := cfg.resolvePaths(); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// LoadDefault loads the config file from [Path].
func LoadDefault() (Config, error) {
	path, err := Path()
	if err != nil {
		path = ""
	}
	return Load(path)
}

// ApplyEnv applies BARBELL_* overrides read through getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	setString := func(dst *string, key string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	setString(&c.Storage.Backend, "BARBELL_STORAGE")
	setString(&c.Storage.Dir, "BARBELL_STORAGE_DIR")
	setString(&c.Storage.RedisAddr, "BARBELL_REDIS_ADDR")
	setString(&c.Storage.RedisPassword, "BARBELL_REDIS_PASSWORD")
	setString(&c.Storage.MongoURI, "BARBELL_MONGO_URI")
	setString(&c.Server.Addr, "BARBELL_ADDR")
	setString(&c.Style, "BARBELL_STYLE")
	if v := getenv("BARBELL_BAR"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Bar = f
		}
	}
	if v := getenv("BARBELL_NO_CACHE"); v != "" {
		if b, ok := parseSwitch(v); ok {
			c.Cache.Disabled = b
		}
	}
}

// parseSwitch reads an on/off environment value. It accepts what
// strconv.ParseBool does plus yes/no and on/off; anything else is not ok
// and leaves the setting alone.
func parseSwitch(v string) (value, ok bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "yes", "y", "on":
		return true, true
	case "no", "n", "off":
		return false, true
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	return b, err == nil
}

func (c *Config) resolvePaths() error {
	if c.Storage.Dir == "" {
		dir, err := DataDir()
		if err != nil {
			return err
		}
		c.Storage.Dir = filepath.Join(dir, "prefs")
	}
	if c.Cache.Dir == "" {
		dir, err := CacheDir()
		if err != nil {
			return err
		}
		c.Cache.Dir = dir
	}
	return nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if err := errors.ValidateWeight("bar", c.Bar); err != nil {
		return err
	}
	if !styles.IsValid(c.Style) {
		return errors.New(errors.ErrCodeInvalidStyle, "config: unknown style %q", c.Style)
	}
	if c.Scale <= 0 || c.Scale > 4 {
		return errors.New(errors.ErrCodeInvalidInput, "config: scale must be in (0, 4]")
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "config: cache ttl cannot be negative")
	}
	return nil
}

// Encode returns the configuration as TOML.
func (c Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// Write saves c to path, creating parent directories. An existing file is
// not overwritten.
func (c Config) Write(path string) error {
	data, err := c.Encode()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("create config: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
