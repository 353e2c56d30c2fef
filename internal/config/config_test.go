package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Port != 8080 {
		t.Errorf("Port = %d", cfg.Port)
	}
	if cfg.DataDir == "" {
		t.Error("DataDir should have a default")
	}
	if len(cfg.Catalog.CharacterGlobs) == 0 || len(cfg.Catalog.ItemGlobs) == 0 {
		t.Error("catalog globs should have defaults")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want default", cfg.Port)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".planner.yml")
	content := `
base_url: https://planner.example.com
port: 9000
data_dir: /var/lib/planner
catalog:
  source_dir: /srv/data
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.BaseURL != "https://planner.example.com" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.Port != 9000 {
		t.Errorf("Port = %d", cfg.Port)
	}
	if cfg.Catalog.SourceDir != "/srv/data" {
		t.Errorf("SourceDir = %q", cfg.Catalog.SourceDir)
	}
	// Unset values keep their defaults.
	if len(cfg.Catalog.ItemGlobs) == 0 {
		t.Error("item globs should keep defaults")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PLANNER_PORT", "7777")
	t.Setenv("PLANNER_CATALOG_SOURCE_DIR", "/from/env")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != 7777 {
		t.Errorf("Port = %d, want env override", cfg.Port)
	}
	if cfg.Catalog.SourceDir != "/from/env" {
		t.Errorf("SourceDir = %q, want env override", cfg.Catalog.SourceDir)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".planner.yml")

	cfg := DefaultConfig()
	cfg.Port = 9999
	cfg.BaseURL = "https://example.org"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Port != 9999 || loaded.BaseURL != "https://example.org" {
		t.Errorf("round trip: %+v", loaded)
	}
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"zero port":      func(c *Config) { c.Port = 0 },
		"huge port":      func(c *Config) { c.Port = 70000 },
		"empty data dir": func(c *Config) { c.DataDir = "" },
		"relative base":  func(c *Config) { c.BaseURL = "not-a-url" },
		"empty source":   func(c *Config) { c.Catalog.SourceDir = "" },
	}
	for name, breakIt := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			breakIt(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestDatabasePath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataDir = "/tmp/planner"
	if got := cfg.DatabasePath(); got != filepath.Join("/tmp/planner", "catalog.db") {
		t.Errorf("DatabasePath() = %q", got)
	}
}
