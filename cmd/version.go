package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"connector/internal/generated"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the connector version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", generated.Name, generated.Version)
		return err
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
