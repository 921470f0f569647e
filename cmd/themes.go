package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/tokenlens/internal/ui/styles"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List the built-in theme presets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		for _, name := range styles.PresetNames() {
			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%-18s %s\n", name, styles.Presets[name].Description); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(themesCmd)
}
