package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "planner",
	Short: "Self-hosted build planner with shareable URL tokens",
	Long: `Planner is a build planner for expedition parties: pick a character,
skills and modifier items, and share the result as a compact URL. The
URL token is the only place a build is ever stored.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".planner.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
