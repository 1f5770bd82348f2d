package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Show the connector identity and its handlers",
	Args:  cobra.NoArgs,
	RunE:  describeConnector,
}

func init() {
	rootCmd.AddCommand(describeCmd)
}

func describeConnector(cmd *cobra.Command, args []string) error {
	d := defaultConnector().Describe()
	if outputFormat == "json" {
		return printJSON(cmd.OutOrStdout(), d)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Name:     %s\n", d.Name)
	fmt.Fprintf(w, "Version:  %s\n", d.Version)
	fmt.Fprintf(w, "Actions:  %s\n", orNone(d.Actions))
	fmt.Fprintf(w, "Triggers: %s\n", orNone(d.Triggers))
	return nil
}

func orNone(ids []string) string {
	if len(ids) == 0 {
		return "(none)"
	}
	return strings.Join(ids, ", ")
}
