package commands

import (
	"fmt"

	"github.com/officialfindso-gif/samma/internal/domain"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(detectCmd)
}

var detectCmd = &cobra.Command{
	Use:   "detect <url> [url...]",
	Short: "Prints the platform each URL belongs to without calling the API.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, rawURL := range args {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", domain.DetectPlatform(rawURL), rawURL)
		}
		return nil
	},
}
