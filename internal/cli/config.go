package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/cratetower/pkg/crane"
	errs "github.com/matzehuels/cratetower/pkg/errors"
)

// Cache backends selectable in the config file.
const (
	backendFile  = "file"
	backendRedis = "redis"
	backendNone  = "none"
)

// Config is the on-disk configuration. Flags override every field.
type Config struct {
	Mode          string        `toml:"mode"`
	CommentMarker string        `toml:"comment_marker"`
	Cache         CacheConfig   `toml:"cache"`
	Server        ServerConfig  `toml:"server"`
	Metrics       MetricsConfig `toml:"metrics"`
}

// CacheConfig selects and tunes the result cache.
type CacheConfig struct {
	Backend   string `toml:"backend"`
	RedisAddr string `toml:"redis_addr"`
	TTL       string `toml:"ttl"`

	ttl time.Duration
}

// ServerConfig configures "cratetower serve".
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// MetricsConfig configures metrics export for one-shot runs.
type MetricsConfig struct {
	File string `toml:"file"`
}

// defaultConfig returns the configuration used when no file exists.
func defaultConfig() *Config {
	return &Config{
		Cache: CacheConfig{
			Backend:   backendFile,
			RedisAddr: "localhost:6379",
		},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// loadConfig reads the TOML file at path on top of the defaults. A missing
// file is only an error when the path was given explicitly.
func loadConfig(path string, explicit bool) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && !explicit {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Mode != "" {
		if _, err := crane.ParseMode(c.Mode); err != nil {
			return err
		}
	}
	if c.CommentMarker != "" {
		if err := errs.ValidateCommentMarker(c.CommentMarker); err != nil {
			return err
		}
	}

	switch c.Cache.Backend {
	case "":
		c.Cache.Backend = backendFile
	case backendFile, backendRedis, backendNone:
	default:
		return errs.New(errs.ErrCodeInvalidInput,
			"unknown cache backend %q (must be one of: file, redis, none)", c.Cache.Backend)
	}
	if c.Cache.TTL != "" {
		d, err := time.ParseDuration(c.Cache.TTL)
		if err != nil || d < 0 {
			return errs.New(errs.ErrCodeInvalidInput, "invalid cache ttl %q", c.Cache.TTL)
		}
		c.Cache.ttl = d
	}
	return nil
}

// configPath returns the config file location using XDG standard
// (~/.config/cratetower/config.toml).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}
