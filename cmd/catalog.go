package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lumina-tools/planner/internal/db"
	"github.com/lumina-tools/planner/internal/importer"
	"github.com/lumina-tools/planner/internal/progress"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the planner's catalog data",
}

var (
	importSourceDir string
	importRenumber  bool
	importQuiet     bool
)

var catalogImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import raw catalog files into the catalog database",
	Long: `Scans the catalog source directory for character and item files (JSON
or YAML), assigns ids to entries missing one, and replaces the stored
catalog. With --renumber all ids are reassigned contiguously from 1.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		dir := cfg.Catalog.SourceDir
		if importSourceDir != "" {
			dir = importSourceDir
		}

		database, err := db.Open(cfg.DatabasePath())
		if err != nil {
			return fmt.Errorf("opening catalog database: %w", err)
		}
		defer database.Close()

		opts := importer.Options{
			CharacterGlobs: cfg.Catalog.CharacterGlobs,
			ItemGlobs:      cfg.Catalog.ItemGlobs,
			Renumber:       importRenumber,
		}

		var rep progress.Reporter = progress.NewReporter()
		if importQuiet {
			rep = progress.Quiet{}
		}

		stats, err := importer.Import(cmd.Context(), database, dir, opts, rep)
		if err != nil {
			return err
		}

		fmt.Printf("Imported %d files: %d characters, %d skills, %d items\n",
			stats.Files, stats.Characters, stats.Skills, stats.Items)
		return nil
	},
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the imported catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		cat, err := openCatalog(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		for _, ch := range cat.Characters {
			fmt.Printf("character %d: %s (%d skills)\n", ch.ID, ch.Name, len(ch.Skills))
			if verbose {
				for _, sk := range ch.Skills {
					fmt.Printf("  skill %d: %s (cost %d)\n", sk.ID, sk.Name, sk.Cost)
				}
			}
		}
		for _, it := range cat.Items {
			fmt.Printf("item %d: %s (cost %d, %d levels)\n", it.ID, it.Name, it.Cost, len(it.Levels))
		}
		return nil
	},
}

func init() {
	catalogImportCmd.Flags().StringVar(&importSourceDir, "source", "", "override the configured source directory")
	catalogImportCmd.Flags().BoolVar(&importRenumber, "renumber", false, "reassign all ids contiguously from 1")
	catalogImportCmd.Flags().BoolVar(&importQuiet, "quiet", false, "suppress progress output")
	catalogCmd.AddCommand(catalogImportCmd)
	catalogCmd.AddCommand(catalogListCmd)
	rootCmd.AddCommand(catalogCmd)
}
