package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"connector/internal/bridge"
	"connector/internal/generated"
	"connector/internal/logging"
)

var (
	outputFormat string
	logLevel     string
	logFormat    string
)

var rootCmd = &cobra.Command{
	Use:   "connector",
	Short: generated.Name + ": actions and triggers for the host platform",
	Long: "Exposes the compiled actions and triggers of " + generated.Name + ".\n" +
		"Use the actions and triggers commands to call a single handler, or serve to answer a host over stdin/stdout.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger := logging.New(logLevel, logFormat, os.Stderr)
		cmd.SetContext(logging.WithLogger(cmd.Context(), logger))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table", "output format: table or json")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format: text or json")
}

// defaultConnector wires the generated tables into the runtime bridge.
func defaultConnector() *bridge.Connector {
	return bridge.New(generated.Name, generated.Version, generated.Actions, generated.Triggers)
}

func Execute() error {
	return rootCmd.Execute()
}
