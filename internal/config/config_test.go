package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Errorf("got %+v, want defaults", cfg)
	}
}

func TestLoadFillsUnsetFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"debug": true, "debug_dir": "snaps"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Debug || cfg.DebugDir != "snaps" {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.OutputFile != "matches.csv" || cfg.LogLevel != "info" {
		t.Errorf("defaults not filled in: %+v", cfg)
	}
}

func TestLoadRejectsBadLogLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"log_level": "loud"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for unknown log level")
	}
}

func TestValidateDebugNeedsDir(t *testing.T) {
	cfg := Default()
	cfg.Debug = true
	cfg.DebugDir = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected error when debug is on without a directory")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	cfg := Config{
		TessdataPrefix: "/usr/share/tessdata",
		ProfilesFile:   "profiles.json",
		AliasesFile:    "aliases.json",
		OutputFile:     "out.xlsx",
		DebugDir:       "snaps",
		Debug:          true,
		LogLevel:       "debug",
	}
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	back, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if back != cfg {
		t.Errorf("round trip mismatch: %+v", back)
	}
	if back.Level() != zerolog.DebugLevel {
		t.Errorf("Level() = %v, want debug", back.Level())
	}
}
