package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var actionsCmd = &cobra.Command{
	Use:   "actions",
	Short: "List, inspect and execute actions",
}

var actionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all action identifiers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printIDs(cmd.OutOrStdout(), "ACTION", defaultConnector().Actions.IDs())
	},
}

var (
	actionInputSchemaFlags  invocationFlags
	actionOutputSchemaFlags invocationFlags
	actionExecuteFlags      invocationFlags
)

var actionInputSchemaCmd = &cobra.Command{
	Use:   "input-schema <action-id>",
	Short: "Print the input schema of an action",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := actionInputSchemaFlags.actionContext(cmd, args[0])
		if err != nil {
			return err
		}
		schema, err := defaultConnector().Actions.InputSchema(cmd.Context(), c)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), schema)
		return err
	},
}

var actionOutputSchemaCmd = &cobra.Command{
	Use:   "output-schema <action-id>",
	Short: "Print the output schema of an action",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := actionOutputSchemaFlags.actionContext(cmd, args[0])
		if err != nil {
			return err
		}
		schema, err := defaultConnector().Actions.OutputSchema(cmd.Context(), c)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), schema)
		return err
	},
}

var actionExecuteCmd = &cobra.Command{
	Use:   "execute <action-id>",
	Short: "Execute an action",
	Long: "Execute an action against the connection given with --connection or --context.\n" +
		"With -o json the raw action response is printed; otherwise the serialized output is shown indented.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := actionExecuteFlags.actionContext(cmd, args[0])
		if err != nil {
			return err
		}
		resp, err := defaultConnector().Actions.Execute(cmd.Context(), c)
		if err != nil {
			return err
		}
		if outputFormat == "json" {
			return printJSON(cmd.OutOrStdout(), resp)
		}
		return printSerialized(cmd.OutOrStdout(), resp.SerializedOutput)
	},
}

func init() {
	actionInputSchemaFlags.register(actionInputSchemaCmd, false)
	actionOutputSchemaFlags.register(actionOutputSchemaCmd, false)
	actionExecuteFlags.register(actionExecuteCmd, false)

	actionsCmd.AddCommand(actionsListCmd, actionInputSchemaCmd, actionOutputSchemaCmd, actionExecuteCmd)
	rootCmd.AddCommand(actionsCmd)
}
