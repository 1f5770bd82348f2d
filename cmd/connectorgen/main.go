// Command connectorgen discovers the action and trigger units of a connector
// project and writes the registration, routing and schema files for them.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"connector/internal/codegen"
	"connector/internal/config"
	"connector/internal/logging"
)

var (
	configFile string
	projectDir string
	check      bool
	watch      bool
	debounce   time.Duration
	logLevel   string
	logFormat  string
)

var errStale = errors.New("generated files are out of date")

var rootCmd = &cobra.Command{
	Use:   "connectorgen",
	Short: "Generate handler registration and dispatch code",
	Long: "Scans the actions and triggers directories, embeds every schema file found next to a\n" +
		"registered unit and writes the generated Go files. Run it through go generate.",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          generate,
}

func init() {
	rootCmd.Flags().StringVar(&configFile, "config", config.DefaultFile, "configuration file, relative to --dir")
	rootCmd.Flags().StringVar(&projectDir, "dir", ".", "project root")
	rootCmd.Flags().BoolVar(&check, "check", false, "fail if the generated files differ from what would be written")
	rootCmd.Flags().BoolVar(&watch, "watch", false, "regenerate whenever a handler unit changes")
	rootCmd.Flags().DurationVar(&debounce, "debounce", 300*time.Millisecond, "quiet period before regenerating in watch mode")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn or error")
	rootCmd.Flags().StringVar(&logFormat, "log-format", "text", "log format: text or json")
	rootCmd.MarkFlagsMutuallyExclusive("check", "watch")
}

func generate(cmd *cobra.Command, args []string) error {
	logger := logging.New(logLevel, logFormat, os.Stderr)

	cfgPath := configFile
	if !filepath.IsAbs(cfgPath) {
		cfgPath = filepath.Join(projectDir, cfgPath)
	}
	cfg, err := config.LoadOptional(cfgPath)
	if err != nil {
		return err
	}

	g := codegen.New(cfg, os.DirFS(projectDir))
	g.Logger = logger

	switch {
	case check:
		plan, err := g.Plan()
		if err != nil {
			return err
		}
		stale, err := codegen.Stale(projectDir, plan.Files)
		if err != nil {
			return err
		}
		if len(stale) > 0 {
			return fmt.Errorf("%w: %s", errStale, strings.Join(stale, ", "))
		}
		logger.Info("Generated files up to date")
		return nil

	case watch:
		if _, err := g.Generate(projectDir); err != nil {
			logger.Error("Generation failed", "error", err)
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		logger.Info("Watching for changes", "actions", cfg.ActionsDir, "triggers", cfg.TriggersDir)
		return g.Watch(ctx, projectDir, debounce)

	default:
		_, err := g.Generate(projectDir)
		return err
	}
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "connectorgen:", err)
		os.Exit(1)
	}
}
