package cli

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/shapestone/csv-ingest/internal/stream"
	"github.com/shapestone/csv-ingest/pkg/csv"
)

// NewInspectCommand creates the inspect command.
func NewInspectCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "inspect <file>...",
		Short: "Parse CSV files and print their rows",
		Long: `Parse one or more CSV files and print the rows.

Several files are parsed concurrently, each with its own reader.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := getSettings(cmd.Context())
			opts := parseOptions(cmd, s)
			w := cmd.OutOrStdout()

			if len(args) == 1 {
				table, err := parseOne(cmd, args[0], s.Validate, opts)
				if err != nil {
					return err
				}
				return renderTable(w, args[0], table, limit, s.Format)
			}

			if s.Validate {
				// Validation is per file; fall back to sequential parses.
				for _, path := range args {
					table, err := parseOne(cmd, path, true, opts)
					if err != nil {
						return fmt.Errorf("failed to parse %s: %w", path, err)
					}
					if err := renderTable(w, path, table, limit, s.Format); err != nil {
						return err
					}
				}
				return nil
			}

			tables, err := csv.ParseFiles(cmd.Context(), args, opts...)
			if err != nil {
				return err
			}
			for _, path := range args {
				if err := renderTable(w, path, tables[path], limit, s.Format); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum rows to print per file (0 = all)")
	return cmd
}

func parseOne(cmd *cobra.Command, path string, validate bool, opts []csv.Option) (csv.Table, error) {
	if validate {
		return csv.ParseFileWithValidation(cmd.Context(), path, opts...)
	}
	return csv.ParseFile(cmd.Context(), path, opts...)
}

// NewKeysCommand creates the keys command.
func NewKeysCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "keys <file>",
		Short: "Print data rows keyed by the header row",
		Long: `Parse a CSV file with column validation, treat the first row as
header names and print every following row as a JSON object.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := getSettings(cmd.Context())
			rows, err := csv.ParseFileToKeyedRows(cmd.Context(), args[0], parseOptions(cmd, s)...)
			if err != nil {
				return err
			}
			return renderJSON(cmd.OutOrStdout(), rows)
		},
	}
}

// NewPresetCommand creates the preset command.
func NewPresetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "preset <file>",
		Short: "Show the parsing mode and buffering preset chosen for a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := getSettings(cmd.Context())
			info, err := os.Stat(args[0])
			if err != nil {
				return err
			}

			mode := "whole-buffer"
			if s.StreamThreshold < 0 || info.Size() > s.StreamThreshold {
				mode = "streaming"
			}
			cfg := csv.SelectConfig(info.Size(), s.BufferHint)

			preset := map[string]any{
				"file":                  args[0],
				"size":                  info.Size(),
				"compression":           stream.DetectCompression(args[0]).String(),
				"mode":                  mode,
				"buffer_size":           cfg.BufferSize,
				"max_memory_usage":      cfg.MaxMemoryUsage,
				"batch_size":            cfg.BatchSize,
				"log_progress_interval": cfg.LogProgressInterval,
			}
			if s.Format == "json" {
				return renderJSON(cmd.OutOrStdout(), preset)
			}

			keys := make([]string, 0, len(preset))
			for k := range preset {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-22s %v\n", k, preset[k])
			}
			return nil
		},
	}
}

// NewVersionCommand creates the version command.
func NewVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "csvingest v%s\n", version)
		},
	}
}
