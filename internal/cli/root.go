// Package cli provides the csvingest command-line interface.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/shapestone/csv-ingest/internal/config"
	"github.com/shapestone/csv-ingest/pkg/csv"
)

// Version information (set at build time).
var Version = "0.1.0"

// settingsKey is used to store settings in the command context.
type settingsKey struct{}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "csvingest",
		Short: "Inspect CSV files with the csv-ingest parser",
		Long: `csvingest parses CSV files with the csv-ingest library.

Small files are parsed in memory; files above the stream threshold are read
through a bounded buffer. Compressed .gz, .lz4 and .zst files are supported.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "version" {
				return nil
			}
			settings, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}
			cmd.SetContext(context.WithValue(cmd.Context(), settingsKey{}, settings))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./csvingest.yaml)")
	rootCmd.PersistentFlags().Int64("stream-threshold", config.DefaultStreamThreshold, "file size in bytes above which files are streamed")
	rootCmd.PersistentFlags().Int("buffer-hint", 0, "requested streaming buffer size in bytes")
	rootCmd.PersistentFlags().Int("workers", 0, "files parsed concurrently (0 = GOMAXPROCS)")
	rootCmd.PersistentFlags().Bool("validate", false, "require a consistent column count")
	rootCmd.PersistentFlags().String("log-level", config.DefaultLogLevel, "log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().StringP("format", "o", config.DefaultFormat, "output format (table|json|csv)")

	_ = rootCmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"table", "json", "csv"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(NewInspectCommand())
	rootCmd.AddCommand(NewKeysCommand())
	rootCmd.AddCommand(NewPresetCommand())
	rootCmd.AddCommand(NewVersionCommand(Version))

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// getSettings retrieves the settings from the command context.
func getSettings(ctx context.Context) *config.Settings {
	if s, ok := ctx.Value(settingsKey{}).(*config.Settings); ok {
		return s
	}
	return &config.Settings{
		StreamThreshold: config.DefaultStreamThreshold,
		LogLevel:        config.DefaultLogLevel,
		Format:          config.DefaultFormat,
	}
}

// parseOptions translates settings into library options. Logs go to stderr.
func parseOptions(cmd *cobra.Command, s *config.Settings) []csv.Option {
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: s.Level(),
	}))
	if s.File != "" {
		logger.Debug("using config file", "path", s.File)
	}
	return []csv.Option{
		csv.WithLogger(logger),
		csv.WithStreamThreshold(s.StreamThreshold),
		csv.WithBufferHint(s.BufferHint),
		csv.WithWorkers(s.Workers),
	}
}
