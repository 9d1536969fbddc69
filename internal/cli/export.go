// Package cli — export.go implements the "mxexport export" command.
//
// The export command is the batch driver entry point. It resolves the run
// configuration, reads the access token (aborting before any network
// contact when the token is unusable), runs the export pipeline over all
// configured applications, prints the failure summary, and maps the run
// outcome to a process exit code.
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mxtools/mxexport/internal/config"
	"github.com/mxtools/mxexport/internal/export"
	"github.com/mxtools/mxexport/internal/model"
	"github.com/mxtools/mxexport/internal/repository"
)

// exportFlags holds the flag values for the export command.
type exportFlags struct {
	dryRun bool // --dry-run: resolve and validate config without exporting
}

// NewExportCommand creates the "export" cobra command.
func NewExportCommand() *cobra.Command {
	flags := &exportFlags{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all configured application models to the workbook",
		Long: `Export the model metadata of every configured application into one
Excel workbook, one worksheet per application.

Applications are processed sequentially in manifest order. A failing
application is recorded and skipped; the remaining applications are still
attempted and the workbook is written with whatever was extracted.

Exit codes: 0 all applications exported; 2 configuration problem (token or
manifest); 3 one or more applications failed (workbook still written);
4 the workbook could not be written.

Examples:
  mxexport export
  mxexport export --output review/q3.xlsx
  mxexport export --base-url https://models.internal.example --dry-run`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd.Context(), cmd, flags)
		},
	}

	// These flags override the corresponding config file keys via the
	// posflag provider (kebab-case flag -> snake_case key).
	cmd.Flags().String("output", "", "Workbook output path (default from config: "+config.DefaultOutput+")")
	cmd.Flags().String("token-file", "", "Access token file path (default from config: "+config.DefaultTokenFile+")")
	cmd.Flags().String("base-url", "", "Model repository API base URL")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false,
		"Validate configuration and token, print the plan, and exit without exporting")

	return cmd
}

// runExport is the main logic function for the export command.
func runExport(ctx context.Context, cmd *cobra.Command, flags *exportFlags) error {
	// Step 1: Resolve configuration (defaults -> file -> env -> flags).
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return model.WrapCLIError(model.ExitConfigError, "invalid configuration", err)
	}

	log := newLogger(verbose || cfg.Verbose)

	if len(cfg.Applications) == 0 {
		return model.NewCLIError(model.ExitConfigError,
			"no applications configured — add an applications section to the config file")
	}

	// Step 2: Read the access token. This happens before any network
	// interaction so a missing or empty token aborts the run with setup
	// guidance and without per-application diagnostics.
	token, err := config.ReadToken(cfg.TokenFile)
	if err != nil {
		return err // ReadToken already returns a CLIError with ExitConfigError
	}

	if cfg.BaseURL == "" {
		return model.NewCLIError(model.ExitConfigError,
			"model repository base URL is not configured — set base_url in the config file, MXEXPORT_BASE_URL, or --base-url")
	}

	// Step 3: Dry run ends here: config and token are valid, the plan is
	// printed, nothing is contacted or written.
	if flags.dryRun {
		fmt.Fprintf(cmd.OutOrStdout(), "Would export %d application(s) to %s\n",
			len(cfg.Applications), cfg.Output)
		renderAppsTable(cmd.OutOrStdout(), cfg.Applications)
		return nil
	}

	// Step 4: Build the repository client and run the batch.
	client, err := repository.NewClient(cfg.BaseURL, token)
	if err != nil {
		return model.WrapCLIError(model.ExitConfigError, "invalid repository configuration", err)
	}

	runner := &export.Runner{
		Apps:       cfg.Applications,
		Source:     client,
		OutputPath: cfg.Output,
		Log:        log,
	}
	outcome := runner.Run(ctx)

	// Step 5: Print the failure summary (stderr — part of diagnostics)
	// and translate the outcome into the command's error value. Exit
	// codes are applied once, in Execute.
	if len(outcome.FailedApps) > 0 {
		renderFailureSummary(os.Stderr, outcome.FailedApps)
	}

	switch outcome.Kind {
	case export.OutcomeSuccess:
		return nil
	case export.OutcomeWriteError:
		return model.WrapCLIError(model.ExitWriteError,
			fmt.Sprintf("failed to write workbook to %s", cfg.Output), outcome.Err)
	case export.OutcomePartialFailure:
		return model.NewCLIError(model.ExitPartialFailure,
			fmt.Sprintf("export finished with failures: %s", strings.Join(outcome.FailedApps, ", ")))
	default:
		return model.WrapCLIError(model.ExitGeneralError, "export failed", outcome.Err)
	}
}
