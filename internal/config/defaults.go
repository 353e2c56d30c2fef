package config

import "path/filepath"

// DefaultCharacterGlobs match character files in the original planner's
// data dumps.
var DefaultCharacterGlobs = []string{"**/characters*.{json,yaml,yml}"}

// DefaultItemGlobs match modifier item files.
var DefaultItemGlobs = []string{
	"**/pictos*.{json,yaml,yml}",
	"**/items*.{json,yaml,yml}",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Port:    8080,
		DataDir: ".planner",
		Catalog: CatalogConfig{
			SourceDir:      "data",
			CharacterGlobs: DefaultCharacterGlobs,
			ItemGlobs:      DefaultItemGlobs,
		},
	}
}

// DatabasePath returns the path of the catalog database under DataDir.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "catalog.db")
}
