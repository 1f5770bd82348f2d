package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var triggersCmd = &cobra.Command{
	Use:   "triggers",
	Short: "List, inspect and poll triggers",
}

var triggersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all trigger identifiers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printIDs(cmd.OutOrStdout(), "TRIGGER", defaultConnector().Triggers.IDs())
	},
}

var (
	triggerInputSchemaFlags  invocationFlags
	triggerOutputSchemaFlags invocationFlags
	triggerFetchFlags        invocationFlags
)

var triggerInputSchemaCmd = &cobra.Command{
	Use:   "input-schema <trigger-id>",
	Short: "Print the input schema of a trigger",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := triggerInputSchemaFlags.triggerContext(cmd, args[0])
		if err != nil {
			return err
		}
		schema, err := defaultConnector().Triggers.InputSchema(cmd.Context(), c)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), schema)
		return err
	},
}

var triggerOutputSchemaCmd = &cobra.Command{
	Use:   "output-schema <trigger-id>",
	Short: "Print the output schema of a trigger",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := triggerOutputSchemaFlags.triggerContext(cmd, args[0])
		if err != nil {
			return err
		}
		schema, err := defaultConnector().Triggers.OutputSchema(cmd.Context(), c)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), schema)
		return err
	},
}

var triggerFetchCmd = &cobra.Command{
	Use:   "fetch-events <trigger-id>",
	Short: "Poll a trigger once",
	Long: "Poll a trigger once. Pass the store printed by the previous poll with --store\n" +
		"to continue from where it left off.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := triggerFetchFlags.triggerContext(cmd, args[0])
		if err != nil {
			return err
		}
		resp, err := defaultConnector().Triggers.FetchEvents(cmd.Context(), c)
		if err != nil {
			return err
		}
		if outputFormat == "json" {
			return printJSON(cmd.OutOrStdout(), resp)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "EVENT\tDATA")
		for _, e := range resp.Events {
			fmt.Fprintf(w, "%s\t%s\n", e.ID, e.SerializedData)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "\nStore: %s\n", resp.Store)
		return err
	},
}

func init() {
	triggerInputSchemaFlags.register(triggerInputSchemaCmd, true)
	triggerOutputSchemaFlags.register(triggerOutputSchemaCmd, true)
	triggerFetchFlags.register(triggerFetchCmd, true)

	triggersCmd.AddCommand(triggersListCmd, triggerInputSchemaCmd, triggerOutputSchemaCmd, triggerFetchCmd)
	rootCmd.AddCommand(triggersCmd)
}
