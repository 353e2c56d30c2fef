package cmd

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/lumina-tools/planner/internal/shareurl"
	"github.com/lumina-tools/planner/internal/token"
)

var decodeCmd = &cobra.Command{
	Use:   "decode <token-or-url>",
	Short: "Decode a share token or URL into a readable build file",
	Long: `Decodes a share token (or a full share URL) and prints the build as
YAML. A malformed token never fails: it decodes to an empty build with a
warning, the same way the planner treats a corrupt link.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		arg := args[0]

		var dec token.Decoded
		if strings.Contains(arg, "://") {
			u, err := url.Parse(arg)
			if err != nil {
				return fmt.Errorf("parsing URL: %w", err)
			}
			dec, _ = shareurl.Parse(u)
		} else {
			dec = token.Decode(arg)
		}

		if dec.Recovered {
			fmt.Fprintf(os.Stderr, "Warning: token could not be read (%v); showing an empty build\n", dec.Err)
		}

		out, err := yaml.Marshal(fileFromState(dec.State))
		if err != nil {
			return fmt.Errorf("marshalling build: %w", err)
		}
		fmt.Print(string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(decodeCmd)
}
