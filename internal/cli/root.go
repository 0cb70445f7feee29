// Package cli defines the synclog command line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/faros-ai/synclog/internal/analyze"
	"github.com/faros-ai/synclog/internal/config"
	"github.com/faros-ai/synclog/internal/logging"
	"github.com/faros-ai/synclog/internal/output"
	"github.com/faros-ai/synclog/internal/output/file"
	"github.com/faros-ai/synclog/internal/output/stdout"
)

var (
	// Flags
	compact    bool
	outputPath string
	logLevel   string

	rootCmd = &cobra.Command{
		Use:   "synclog <logfile>",
		Short: "Extract a structured summary from a connector sync log",
		Long: `synclog parses one connector sync log file and writes a JSON summary
document to stdout: status, timing, versions, per-stream record counts,
destination write statistics, state snapshots, and errors/warnings.

The document's key set is identical on every run; fields the log did not
populate carry explicit unknown markers. Partial or malformed logs still
produce a best-effort document — only an unreadable file fails the run.`,
		Version:      "0.1.0",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         runAnalyze,
	}
)

func init() {
	rootCmd.Flags().BoolVar(&compact, "compact", false, "Compact JSON output (no indentation)")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the document to a file instead of stdout")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "Diagnostic log level on stderr (debug, info, warn, error)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	settings := config.Load()
	if cmd.Flags().Changed("compact") {
		settings.Compact = compact
	}
	if cmd.Flags().Changed("output") {
		settings.Output = outputPath
	}
	if cmd.Flags().Changed("log-level") {
		settings.LogLevel = logLevel
	}
	logging.Init(logging.ParseLevel(settings.LogLevel))

	res, err := analyze.Run(args[0])
	if err != nil {
		return fmt.Errorf("could not read log file %s: %w", args[0], err)
	}

	out, err := newWriter(settings)
	if err != nil {
		return err
	}
	if err := out.Write(res); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func newWriter(settings config.Settings) (output.Writer, error) {
	if settings.Output != "" {
		return file.New(settings.Output, settings.Compact)
	}
	return stdout.New(settings.Compact), nil
}
