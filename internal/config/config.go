// Package config holds the on-disk tool configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Config is the persisted tool configuration. Zero-value fields fall back to
// the defaults at load time, so config files only need the overrides.
type Config struct {
	// TessdataPrefix overrides the Tesseract trained-data directory.
	// Empty means the system default.
	TessdataPrefix string `json:"tessdata_prefix,omitempty"`

	// ProfilesFile is the resolution-profile store. Empty keeps only the
	// built-in default profile.
	ProfilesFile string `json:"profiles_file,omitempty"`

	// AliasesFile maps OCR misreads of nicknames to canonical names.
	AliasesFile string `json:"aliases_file,omitempty"`

	// OutputFile receives extracted records; the extension picks the
	// format (csv, json or xlsx).
	OutputFile string `json:"output_file"`

	// DebugDir receives intermediate region images when Debug is set.
	DebugDir string `json:"debug_dir,omitempty"`
	Debug    bool   `json:"debug,omitempty"`

	LogLevel string `json:"log_level"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		OutputFile: "matches.csv",
		DebugDir:   "debug",
		LogLevel:   "info",
	}
}

// Load reads path, filling unset fields from Default. A missing file is not
// an error and yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.OutputFile == "" {
		cfg.OutputFile = Default().OutputFile
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = Default().LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration as indented JSON, creating parent
// directories as needed.
func (c Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Validate checks fields that would otherwise fail deep inside the pipeline.
func (c Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	if c.Debug && c.DebugDir == "" {
		return fmt.Errorf("debug enabled but no debug dir set")
	}
	return nil
}

// Level returns the parsed log level. Validate must have accepted the
// configuration first.
func (c Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}
