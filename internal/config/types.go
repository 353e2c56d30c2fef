package config

// Config is the top-level planner configuration, corresponding to .planner.yml.
type Config struct {
	// BaseURL is the externally visible root used when building share
	// URLs. Empty means http://localhost:<port>.
	BaseURL string `yaml:"base_url" koanf:"base_url"`
	Port    int    `yaml:"port" koanf:"port"`
	// DataDir holds the imported catalog database.
	DataDir         string        `yaml:"data_dir" koanf:"data_dir"`
	AllowAllOrigins bool          `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	DefaultSummary  bool          `yaml:"default_summary" koanf:"default_summary"`
	Catalog         CatalogConfig `yaml:"catalog" koanf:"catalog"`
}

// CatalogConfig holds catalog import settings.
type CatalogConfig struct {
	// SourceDir is scanned for raw catalog files on `planner catalog import`.
	SourceDir      string   `yaml:"source_dir" koanf:"source_dir"`
	CharacterGlobs []string `yaml:"character_globs" koanf:"character_globs"`
	ItemGlobs      []string `yaml:"item_globs" koanf:"item_globs"`
}
