package export

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mxtools/mxexport/internal/model"
	"github.com/mxtools/mxexport/internal/xlsx"
)

// OutcomeKind classifies the overall result of a run.
type OutcomeKind string

const (
	// OutcomeSuccess: every application exported and the workbook was
	// written.
	OutcomeSuccess OutcomeKind = "success"

	// OutcomeConfigError: the run never started — the token or manifest
	// was unusable. Produced by the CLI boundary, not by Runner.
	OutcomeConfigError OutcomeKind = "config-error"

	// OutcomePartialFailure: the workbook was written but at least one
	// application failed to export.
	OutcomePartialFailure OutcomeKind = "partial-failure"

	// OutcomeWriteError: the workbook could not be persisted. This
	// dominates any per-application result — an unwritten workbook means
	// the run produced no usable artifact.
	OutcomeWriteError OutcomeKind = "write-error"
)

// Outcome is the single run-level result value. Exit-code side effects are
// never triggered from nested control flow; the Runner computes an Outcome
// and the top-level CLI boundary translates it to a process exit status.
type Outcome struct {
	// Kind classifies the result.
	Kind OutcomeKind

	// FailedApps lists the names of applications whose extraction failed,
	// in attempt order. Empty for OutcomeSuccess.
	FailedApps []string

	// Err carries the terminal error for config and write outcomes.
	Err error
}

// ExitCode translates the Outcome into a process exit code.
func (o Outcome) ExitCode() model.ExitCode {
	switch o.Kind {
	case OutcomeSuccess:
		return model.ExitSuccess
	case OutcomeConfigError:
		return model.ExitConfigError
	case OutcomePartialFailure:
		return model.ExitPartialFailure
	case OutcomeWriteError:
		return model.ExitWriteError
	default:
		return model.ExitGeneralError
	}
}

// Runner drives the batch: it iterates over the configured applications in
// declaration order, isolates each application's extraction, collects
// failures, and writes the workbook once at the end.
type Runner struct {
	// Apps are the applications to export, in manifest-declaration order.
	Apps []model.AppConfig

	// Source provides model snapshots; shared by all extractions.
	Source Source

	// OutputPath is where the workbook is written. Its parent directory
	// is created if absent.
	OutputPath string

	// Log receives progress and error diagnostics (stderr in production;
	// stdout stays clean for piping).
	Log *slog.Logger
}

// Run executes the batch and returns the run Outcome.
//
// Each application is attempted inside an isolating boundary: an
// extraction error is recorded by name and logged, and the loop continues
// with the next application. After all applications are attempted the
// workbook is saved. A save failure yields OutcomeWriteError regardless of
// the failure set; otherwise a non-empty failure set yields
// OutcomePartialFailure with the artifact already durably written, so
// partial results stay inspectable.
func (r *Runner) Run(ctx context.Context) Outcome {
	log := r.Log
	if log == nil {
		log = slog.Default()
	}

	if dir := filepath.Dir(r.OutputPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return Outcome{
				Kind: OutcomeWriteError,
				Err:  fmt.Errorf("failed to create output directory %s: %w", dir, err),
			}
		}
	}

	wb := xlsx.New()
	defer func() { _ = wb.Close() }()

	namer := NewSheetNamer()
	extractor := NewExtractor(r.Source, log)

	var failed []string
	for _, app := range r.Apps {
		log.Info("starting application", "app", app.Name, "branch", app.Branch)
		if err := extractor.Export(ctx, app, wb, namer); err != nil {
			// Fault isolation: record and continue. No application's
			// failure stops the others.
			log.Error("application export failed", "app", app.Name, "error", err)
			failed = append(failed, app.Name)
			continue
		}
	}

	if err := wb.SaveAs(r.OutputPath); err != nil {
		log.Error("failed to write workbook", "path", r.OutputPath, "error", err)
		return Outcome{Kind: OutcomeWriteError, FailedApps: failed, Err: err}
	}
	log.Info("workbook written", "path", r.OutputPath, "sheets", len(wb.SheetNames()))

	if len(failed) > 0 {
		return Outcome{Kind: OutcomePartialFailure, FailedApps: failed}
	}
	return Outcome{Kind: OutcomeSuccess}
}
