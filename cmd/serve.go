package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lumina-tools/planner/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the planner server",
	Long:  `Starts the planner HTTP server: the JSON API, the build pages and the live WebSocket sessions. Run ` + "`planner catalog import`" + ` first to load a catalog.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if servePort != 0 {
			cfg.Port = servePort
		}

		cat, err := openCatalog(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		if len(cat.Characters) == 0 && len(cat.Items) == 0 {
			fmt.Fprintln(os.Stderr, "Warning: the catalog is empty. Run `planner catalog import` to load one.")
		}

		srv, err := server.New(server.Config{
			Port:           cfg.Port,
			BaseURL:        cfg.BaseURL,
			AllowAll:       cfg.AllowAllOrigins,
			DefaultSummary: cfg.DefaultSummary,
		}, cat)
		if err != nil {
			return fmt.Errorf("creating server: %w", err)
		}

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			srv.Shutdown(context.Background())
		}()

		fmt.Fprintf(os.Stderr, "planner v%s starting on port %d\n", Version, cfg.Port)
		fmt.Fprintf(os.Stderr, "  Catalog: %d characters, %d items\n", len(cat.Characters), len(cat.Items))

		return srv.Start()
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "override the configured port")
	rootCmd.AddCommand(serveCmd)
}
