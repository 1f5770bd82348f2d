package cmd

import (
	"github.com/spf13/cobra"

	"connector/internal/bridge"
	"connector/internal/logging"
)

var serveConcurrency int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Answer host requests as JSON-RPC on stdin/stdout",
	Long: "Reads one JSON-RPC 2.0 request per line from stdin and writes one response per line to stdout.\n" +
		"Methods: describe, actions.ids, actions.input_schema, actions.output_schema, actions.execute,\n" +
		"triggers.ids, triggers.input_schema, triggers.output_schema, triggers.fetch_events.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := logging.FromContext(cmd.Context())
		srv := bridge.NewServer(defaultConnector(), serveConcurrency, logger)
		return srv.Serve(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	serveCmd.Flags().IntVar(&serveConcurrency, "concurrency", bridge.DefaultConcurrency, "maximum number of calls handled at once")
	rootCmd.AddCommand(serveCmd)
}
