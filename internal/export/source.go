package export

import (
	"context"

	"github.com/mxtools/mxexport/internal/model"
)

// Source provides read access to the remote model repository.
//
// The production implementation is repository.Client; tests substitute an
// in-memory fake. Accepting this narrow interface keeps the pipeline free
// of any HTTP or authentication concerns.
type Source interface {
	// CreateSnapshot opens a temporary, read-only, point-in-time view of
	// the application's model at the configured branch. Failures (bad
	// identifier, insufficient access, unknown branch) abort only the
	// calling application's extraction.
	CreateSnapshot(ctx context.Context, app model.AppConfig) (Snapshot, error)
}

// Snapshot is a handle to one application's model snapshot. It is scoped
// to a single extraction and discarded afterwards.
type Snapshot interface {
	// Modules enumerates the modules of the snapshot in model-declared
	// order.
	Modules(ctx context.Context) ([]model.Module, error)

	// ModuleEntities loads the full structure of one module: its entities
	// with nested attributes, generalization metadata, and persistence
	// flags, in model-declared order.
	ModuleEntities(ctx context.Context, moduleName string) ([]model.Entity, error)

	// Close releases the snapshot on the repository side. Best effort —
	// the repository garbage-collects expired snapshots regardless.
	Close(ctx context.Context) error
}
