package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lumina-tools/planner/internal/render"
	"github.com/lumina-tools/planner/internal/shareurl"
	"github.com/lumina-tools/planner/internal/token"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export <token>",
	Short: "Render a build token to a self-contained HTML page",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		cat, err := openCatalog(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		dec := token.Decode(args[0])
		if dec.Recovered {
			fmt.Fprintf(os.Stderr, "Warning: token could not be read (%v); exporting an empty build\n", dec.Err)
		}

		renderer, err := render.New(cat)
		if err != nil {
			return fmt.Errorf("creating renderer: %w", err)
		}

		commentHTML, err := renderer.Comment(dec.State.Comment)
		if err != nil {
			return fmt.Errorf("rendering notes: %w", err)
		}

		var shareLink string
		if base, err := baseURL(cfg); err == nil {
			shareLink = shareurl.Build(base, dec.State).String()
		}

		out, err := os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer out.Close()

		page := render.Page{
			Title:       dec.State.Title,
			Build:       cat.Resolve(dec.State),
			CommentHTML: commentHTML,
			Token:       token.Encode(dec.State),
			ShareURL:    shareLink,
			Summary:     true,
			Recovered:   dec.Recovered,
		}
		if err := renderer.Build(out, page); err != nil {
			return err
		}

		fmt.Printf("Exported build to %s\n", exportOutput)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "build.html", "output HTML file")
	rootCmd.AddCommand(exportCmd)
}
