package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .planner.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to planner! Let's configure your instance.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Port.
	portPrompt := promptui.Prompt{
		Label:   "Port to listen on",
		Default: strconv.Itoa(cfg.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 || n > 65535 {
				return fmt.Errorf("enter a port between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(portStr)

	// 2. Base URL for share links.
	basePrompt := promptui.Prompt{
		Label:   "Public base URL for share links (blank for localhost)",
		Default: "",
	}
	baseURL, err := basePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("base URL: %w", err)
	}
	cfg.BaseURL = strings.TrimSpace(baseURL)

	// 3. Data directory.
	dataPrompt := promptui.Prompt{
		Label:   "Data directory for the imported catalog",
		Default: cfg.DataDir,
	}
	dataDir, err := dataPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}
	cfg.DataDir = dataDir

	// 4. Catalog source directory.
	sourcePrompt := promptui.Prompt{
		Label:   "Directory containing raw catalog files",
		Default: cfg.Catalog.SourceDir,
	}
	sourceDir, err := sourcePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("catalog source dir: %w", err)
	}
	cfg.Catalog.SourceDir = sourceDir

	// 5. Default view for shared links.
	viewPrompt := promptui.Select{
		Label: "Default view when a shared link has no summary flag",
		Items: []string{"editor", "summary"},
	}
	viewIdx, _, err := viewPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("default view: %w", err)
	}
	cfg.DefaultSummary = viewIdx == 1

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Save to .planner.yml.
	configPath := ".planner.yml"
	if err := cfg.Save(configPath); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", configPath)
	fmt.Println("Run `planner catalog import` next to load your catalog.")
	return cfg, nil
}
