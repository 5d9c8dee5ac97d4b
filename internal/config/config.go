// ABOUTME: Swim configuration management with backend selection.
// ABOUTME: Layers defaults, the YAML config file and SWIM_ env vars, and builds the storage backend.

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/harperreed/swim/internal/charm"
	"github.com/harperreed/swim/internal/storage"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when a loaded setting has an unusable value.
var ErrInvalidConfig = errors.New("invalid config")

const envPrefix = "SWIM_"

// Backends lists the storage backends OpenStorage understands.
var Backends = []string{"xml", "json", "yaml", "sqlite", "badger", "charm"}

// Config stores swim tool configuration.
type Config struct {
	// Backend selects the storage backend. Defaults to "xml".
	Backend string `koanf:"backend" yaml:"backend,omitempty"`

	// DataDir is the root directory for data storage.
	// Supports ~ expansion. Defaults to ~/.local/share/swim.
	DataDir string `koanf:"data_dir" yaml:"data_dir,omitempty"`

	// File overrides the document path for the xml, json and yaml backends.
	File string `koanf:"file" yaml:"file,omitempty"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `koanf:"log_level" yaml:"log_level,omitempty"`
}

// New returns the default configuration.
func New() *Config {
	return &Config{
		Backend:  "xml",
		LogLevel: "warn",
	}
}

// GetBackend returns the configured backend, defaulting to "xml".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return "xml"
	}
	return strings.ToLower(c.Backend)
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetFilePath returns the document path used by the file backends.
func (c *Config) GetFilePath(format storage.Format) string {
	if c.File != "" {
		return ExpandPath(c.File)
	}
	return filepath.Join(c.GetDataDir(), format.FileName())
}

// Validate checks the backend name.
func (c *Config) Validate() error {
	if !slices.Contains(Backends, c.GetBackend()) {
		return fmt.Errorf("%w: unknown backend %q (want one of %s)",
			ErrInvalidConfig, c.Backend, strings.Join(Backends, ", "))
	}
	return nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage creates the Serializer for the configured backend.
func (c *Config) OpenStorage() (storage.Serializer, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	backend := c.GetBackend()
	dataDir := c.GetDataDir()

	switch backend {
	case "xml", "json", "yaml":
		format := storage.Format(backend)
		return storage.NewFileStore(c.GetFilePath(format), format), nil
	case "sqlite":
		db, err := storage.Open(filepath.Join(dataDir, "swim.db"))
		if err != nil {
			return nil, err
		}
		return db, nil
	case "badger":
		bs, err := storage.OpenBadger(filepath.Join(dataDir, "badger"))
		if err != nil {
			return nil, err
		}
		return bs, nil
	case "charm":
		client, err := charm.InitClient()
		if err != nil {
			return nil, err
		}
		return client, nil
	}
	return nil, fmt.Errorf("%w: unknown backend %q", ErrInvalidConfig, backend)
}

// GetConfigPath returns the config file path. SWIM_CONFIG overrides it.
func GetConfigPath() string {
	if path := os.Getenv(envPrefix + "CONFIG"); path != "" {
		return ExpandPath(path)
	}
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "swim", "config.yaml")
}

// Load builds a Config by layering, lowest precedence first:
//  1. defaults (New)
//  2. the YAML config file, if it exists
//  3. env vars with the SWIM_ prefix (SWIM_BACKEND, SWIM_DATA_DIR, ...)
func Load() (*Config, error) {
	k := koanf.New(".")

	path := GetConfigPath()
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := New()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes config to disk as YAML.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := yamlv3.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
