package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/mod/semver"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvProfile = "CORENET_ENV"

	latestRevision = "latest"
)

type Config struct {
	ListenAddr      string        `toml:"listen_addr"`
	StaticDir       string        `toml:"static_dir"`
	RouteRevision   string        `toml:"route_revision"`
	ShutdownTimeout string        `toml:"shutdown_timeout"`
	Logging         LoggingConfig `toml:"logging"`
	Cache           CacheConfig   `toml:"cache"`
}

type CacheConfig struct {
	HTML  string `toml:"html"`
	Error string `toml:"error"`
}

// Load reads config.toml from the working directory when present, applies
// the CORENET_ENV overlay, then environment overrides and defaults.
func Load() (Config, error) {
	return LoadDir(".")
}

func LoadDir(dir string) (Config, error) {
	var cfg Config

	if err := mergeFile(&cfg, filepath.Join(dir, BaseConfigFile)); err != nil {
		return Config{}, err
	}
	if profile := strings.TrimSpace(os.Getenv(EnvProfile)); profile != "" {
		overlay := filepath.Join(dir, fmt.Sprintf(OverlayConfigPattern, profile))
		if err := mergeFile(&cfg, overlay); err != nil {
			return Config{}, fmt.Errorf("load overlay %s: %w", overlay, err)
		}
	}

	cfg.loadEnv()
	cfg.loadDefaults()
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Merge applies the non-zero values of overlay.
func (c *Config) Merge(overlay Config) {
	if overlay.ListenAddr != "" {
		c.ListenAddr = overlay.ListenAddr
	}
	if overlay.StaticDir != "" {
		c.StaticDir = overlay.StaticDir
	}
	if overlay.RouteRevision != "" {
		c.RouteRevision = overlay.RouteRevision
	}
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Cache.HTML != "" {
		c.Cache.HTML = overlay.Cache.HTML
	}
	if overlay.Cache.Error != "" {
		c.Cache.Error = overlay.Cache.Error
	}
	c.Logging.Merge(overlay.Logging)
}

func (c *Config) loadEnv() {
	setFromEnv(&c.ListenAddr, "CORENET_LISTEN_ADDR")
	setFromEnv(&c.StaticDir, "CORENET_STATIC_DIR")
	setFromEnv(&c.RouteRevision, "CORENET_ROUTE_REVISION")
	setFromEnv(&c.ShutdownTimeout, "CORENET_SHUTDOWN_TIMEOUT")
	setFromEnv(&c.Cache.HTML, "CORENET_CACHE_HTML")
	setFromEnv(&c.Cache.Error, "CORENET_CACHE_ERROR")
	c.Logging.loadEnv()
}

func (c *Config) loadDefaults() {
	if c.ListenAddr == "" {
		c.ListenAddr = ":8080"
	}
	if c.StaticDir == "" {
		c.StaticDir = "internal/web/static"
	}
	if c.RouteRevision == "" {
		c.RouteRevision = latestRevision
	}
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "15s"
	}
	c.Logging.loadDefaults()
}

func (c *Config) validate() error {
	d, err := time.ParseDuration(c.ShutdownTimeout)
	if err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	if d <= 0 {
		return fmt.Errorf("invalid shutdown_timeout %q: must be positive", c.ShutdownTimeout)
	}
	if !validRouteRevision(c.RouteRevision) {
		return fmt.Errorf("invalid route_revision %q: want %q or a semver identifier such as v2", c.RouteRevision, latestRevision)
	}
	if err := c.Logging.validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	return nil
}

func validRouteRevision(revision string) bool {
	revision = strings.TrimSpace(revision)
	if revision == "" || strings.EqualFold(revision, latestRevision) {
		return true
	}
	if !strings.HasPrefix(revision, "v") {
		revision = "v" + revision
	}
	return semver.IsValid(revision)
}

func mergeFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var overlay Config
	if err := toml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.Merge(overlay)
	return nil
}

func setFromEnv(target *string, key string) {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		*target = value
	}
}
