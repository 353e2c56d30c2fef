package cmd

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/lumina-tools/planner/internal/catalog"
	"github.com/lumina-tools/planner/internal/config"
	"github.com/lumina-tools/planner/internal/db"
	"github.com/lumina-tools/planner/internal/token"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `planner init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// openCatalog opens the catalog database and loads it into memory.
func openCatalog(ctx context.Context, cfg *config.Config) (*catalog.Catalog, error) {
	database, err := db.Open(cfg.DatabasePath())
	if err != nil {
		return nil, fmt.Errorf("opening catalog database: %w", err)
	}
	defer database.Close()

	cat, err := catalog.Load(ctx, database)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	return cat, nil
}

// baseURL resolves the share-link root from config.
func baseURL(cfg *config.Config) (*url.URL, error) {
	raw := cfg.BaseURL
	if raw == "" {
		raw = fmt.Sprintf("http://localhost:%d", cfg.Port)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	return u, nil
}

// normalizeUIID accepts an item reference in either form ("item-7" or "7")
// and returns the UI form.
func normalizeUIID(s string) string {
	if strings.Contains(s, "-") {
		return s
	}
	return token.UIID(s)
}
