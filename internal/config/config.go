// Package config holds the viewer's startup settings: window, frame pacing, preference store and log file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jinzhu/copier"
	"gopkg.in/yaml.v3"

	"shape-viewer/internal/logger"
	"shape-viewer/internal/prefs"
)

// DefaultPath is where Load looks when no path is given.
const DefaultPath = "config/viewer.yaml"

// EnvPrefix prefixes every environment override, e.g. SHAPEVIEWER_WIDTH.
const EnvPrefix = "SHAPEVIEWER_"

// Config is the viewer configuration. Zero values are replaced by defaults in Load.
type Config struct {
	Title        string        `yaml:"title"`
	Width        int           `yaml:"width"`
	Height       int           `yaml:"height"`
	TargetFPS    int           `yaml:"target_fps"`
	Antialias    bool          `yaml:"antialias"`
	PrefsBackend prefs.Backend `yaml:"prefs_backend"`
	PrefsPath    string        `yaml:"prefs_path"`
	LogPath      string        `yaml:"log_path"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Title:        "Shape Viewer",
		Width:        1280,
		Height:       720,
		TargetFPS:    60,
		Antialias:    true,
		PrefsBackend: prefs.BackendSQLite,
		PrefsPath:    prefs.DefaultSQLitePath,
		LogPath:      logger.DefaultPath,
	}
}

// Load reads a YAML config from path on top of Default. A missing file yields the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Default()
	cfg.PrefsPath = ""
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.fillDefaults()
	return cfg, cfg.Validate()
}

// fillDefaults restores defaults for fields a config file blanked out.
func (c *Config) fillDefaults() {
	d := Default()
	if c.Title == "" {
		c.Title = d.Title
	}
	if c.PrefsBackend == "" {
		c.PrefsBackend = d.PrefsBackend
	}
	if c.PrefsPath == "" {
		c.PrefsPath = DefaultPrefsPath(c.PrefsBackend)
	}
}

// DefaultPrefsPath is the store location used when none is configured.
func DefaultPrefsPath(b prefs.Backend) string {
	switch b {
	case prefs.BackendFile:
		return prefs.DefaultFilePath
	case prefs.BackendSQLite:
		return prefs.DefaultSQLitePath
	}
	return ""
}

// Validate rejects sizes and backends the viewer cannot start with.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", c.Width, c.Height)
	}
	if c.TargetFPS < 0 {
		return fmt.Errorf("target_fps %d must not be negative", c.TargetFPS)
	}
	switch c.PrefsBackend {
	case prefs.BackendSQLite, prefs.BackendFile, prefs.BackendMemory:
	default:
		return fmt.Errorf("unknown prefs_backend %q", c.PrefsBackend)
	}
	return nil
}

// Overrides are values layered over a Config by Apply. Zero fields and a nil Antialias leave
// the config unchanged.
type Overrides struct {
	Title        string
	Width        int
	Height       int
	TargetFPS    int
	Antialias    *bool
	PrefsBackend prefs.Backend
	PrefsPath    string
	LogPath      string
}

// Apply copies the non-empty overrides into c. Changing the backend without a path resets the
// path to that backend's default.
func (c *Config) Apply(o Overrides) error {
	backend := c.PrefsBackend
	if err := copier.CopyWithOption(c, &o, copier.Option{IgnoreEmpty: true}); err != nil {
		return fmt.Errorf("apply overrides: %w", err)
	}
	if c.PrefsBackend != backend && o.PrefsPath == "" {
		c.PrefsPath = DefaultPrefsPath(c.PrefsBackend)
	}
	return nil
}

// ApplyEnv applies SHAPEVIEWER_* variables read through lookup (os.LookupEnv when nil).
// Unparsable numbers and booleans are reported and skipped; the rest still apply.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	get := func(name string) (string, bool) {
		v, ok := lookup(EnvPrefix + name)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}
	var (
		o    Overrides
		errs []error
	)
	num := func(name string, dst *int) {
		if v, ok := get(name); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, name, err))
				return
			}
			*dst = n
		}
	}
	o.Title, _ = get("TITLE")
	num("WIDTH", &o.Width)
	num("HEIGHT", &o.Height)
	num("TARGET_FPS", &o.TargetFPS)
	if v, ok := get("ANTIALIAS"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sANTIALIAS: %w", EnvPrefix, err))
		} else {
			o.Antialias = &b
		}
	}
	backend, _ := get("PREFS_BACKEND")
	o.PrefsBackend = prefs.Backend(backend)
	o.PrefsPath, _ = get("PREFS_PATH")
	o.LogPath, _ = get("LOG_PATH")
	if err := c.Apply(o); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
