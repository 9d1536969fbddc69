// Package cli implements the cobra-based CLI commands for mxexport.
//
// Each subcommand (export, apps) is defined in its own file within this
// package. This file defines the root command, the global flags, and the
// single boundary where errors are translated into process exit codes.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mxtools/mxexport/internal/model"
)

// Global flag variables shared across all subcommands. They are bound to
// cobra persistent flags on the root command, which makes them available
// to every subcommand automatically.
var (
	// cfgFile is an explicit config file path (--config). When empty, the
	// loader probes mxexport.yaml / mxexport.yml / mxexport.jsonc in the
	// working directory.
	cfgFile string

	// verbose enables debug-level diagnostics on stderr.
	verbose bool
)

// Version, Commit, and Date are set at build time via ldflags. They are
// injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// NewRootCommand creates and configures the root cobra command. The root
// command itself performs no action — it provides help text, the global
// flags, and the subcommand registry.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mxexport",
		Short: "Export application model metadata to a spreadsheet",
		Long: `mxexport exports metadata (modules, entities, attributes, declared types)
from a set of remotely hosted application data models into a single Excel
workbook for compliance review.

Each configured application gets its own worksheet. Applications that fail
to export are recorded and reported at the end without stopping the rest
of the batch.`,

		// SilenceUsage prevents cobra from printing usage on every error;
		// SilenceErrors prevents double-printing — Execute formats errors
		// itself and owns the exit code.
		SilenceUsage:  true,
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"Config file path (default: mxexport.yaml, mxexport.yml, or mxexport.jsonc)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug diagnostics on stderr")

	rootCmd.AddCommand(NewExportCommand())
	rootCmd.AddCommand(NewAppsCommand())

	return rootCmd
}

// Execute runs the root command and handles exit codes. This is the main
// entry point called from main.go and the only place the process exit
// status is decided: CLIError values carry their own code, anything else
// exits with the general error code.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		if cliErr, ok := err.(*model.CLIError); ok {
			printError(cliErr.Message, cliErr.Err)
			os.Exit(int(cliErr.Code))
		}

		printError(err.Error(), nil)
		os.Exit(int(model.ExitGeneralError))
	}
}

// printError writes an error to stderr. Stdout stays clean for piping —
// all diagnostics, including errors, go to the error channel.
func printError(message string, underlying error) {
	if underlying != nil {
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", message, underlying)
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", message)
	}
}

// newLogger builds the run logger: slog text output on stderr, debug
// level when verbose diagnostics are requested.
func newLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}
