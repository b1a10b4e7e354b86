// Package config defines the editor's configuration and its defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config is decoded by viper from ~/.graphedit.yaml, GRAPHEDIT_* env
// vars and command-line flags.
type Config struct {
	Store     StoreConfig     `mapstructure:"store"`
	Log       LogConfig       `mapstructure:"log"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Editor    EditorConfig    `mapstructure:"editor"`
}

type StoreConfig struct {
	// URL selects the backend: a path, file://, mem://, sqlite://, s3:// or dynamodb://.
	URL string `mapstructure:"url"`
	// Key is the name the graph document is stored under.
	Key string `mapstructure:"key"`
	// Timeout bounds each load or save.
	Timeout time.Duration `mapstructure:"timeout"`
	// Region and Endpoint override the AWS defaults for cloud backends.
	Region   string `mapstructure:"region"`
	Endpoint string `mapstructure:"endpoint"`
	// CreateTable lets a dynamodb:// store create its table on startup.
	CreateTable bool `mapstructure:"create_table"`
}

type LogConfig struct {
	JSON    bool `mapstructure:"json"`
	Verbose bool `mapstructure:"verbose"`
	// File receives logs while the full-screen editor owns the terminal.
	File string `mapstructure:"file"`
}

type TelemetryConfig struct {
	// Endpoint is an OTLP/HTTP collector URL. Empty disables export.
	Endpoint string `mapstructure:"endpoint"`
}

type EditorConfig struct {
	// HighlightDuration is how long a path or search highlight stays lit.
	HighlightDuration time.Duration `mapstructure:"highlight_duration"`
}

// Defaults.
const (
	DefaultKey               = "graph.json"
	DefaultTimeout           = 5 * time.Second
	DefaultHighlightDuration = 3 * time.Second
)

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		Store: StoreConfig{
			URL:     DefaultStoreURL(),
			Key:     DefaultKey,
			Timeout: DefaultTimeout,
		},
		Editor: EditorConfig{
			HighlightDuration: DefaultHighlightDuration,
		},
	}
}

// DefaultStoreURL is a directory under the user's config dir, or
// .graphedit in the working directory when that cannot be resolved.
func DefaultStoreURL() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return ".graphedit"
	}
	return filepath.Join(dir, "graphedit")
}

// Validate reports settings the application cannot start with.
func (c Config) Validate() error {
	var errs []error
	if c.Store.URL == "" {
		errs = append(errs, errors.New("store.url must not be empty"))
	}
	if c.Store.Key == "" {
		errs = append(errs, errors.New("store.key must not be empty"))
	}
	if c.Store.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("store.timeout must be positive, got %s", c.Store.Timeout))
	}
	if c.Editor.HighlightDuration < 0 {
		errs = append(errs, fmt.Errorf("editor.highlight_duration must not be negative, got %s", c.Editor.HighlightDuration))
	}
	return errors.Join(errs...)
}
