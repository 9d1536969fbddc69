package export

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mxtools/mxexport/internal/model"
	"github.com/mxtools/mxexport/internal/xlsx"
)

// SheetHeader is the fixed 4-column header written to every application
// worksheet. Column order is part of the output contract.
var SheetHeader = []string{"moduleName", "entityName", "attributeName", "attributeType"}

// Extractor performs the full export of a single application: snapshot,
// walk, filter, classify, write. It holds no per-application state — the
// worksheet and the shared used-names set are passed in per call.
type Extractor struct {
	// Source provides model snapshots.
	Source Source

	// Log receives progress diagnostics. Never nil after NewExtractor.
	Log *slog.Logger
}

// NewExtractor creates an Extractor. A nil logger is replaced with the
// default logger so callers in tests don't have to wire one.
func NewExtractor(src Source, log *slog.Logger) *Extractor {
	if log == nil {
		log = slog.Default()
	}
	return &Extractor{Source: src, Log: log}
}

// Export extracts one application's model metadata into its own worksheet
// in wb. The worksheet name is allocated from namer before anything else,
// so the sheet (with its header) exists even if the snapshot cannot be
// created — an application that fails partway leaves a worksheet with the
// rows produced before the failure. Rows written before a failure are
// kept; the worksheet belongs only to this application and the run is
// judged by the failure set, not per-row integrity.
//
// Any error names the application and the underlying cause.
func (e *Extractor) Export(ctx context.Context, app model.AppConfig, wb *xlsx.Workbook, namer *SheetNamer) error {
	sheetName := namer.Allocate(app.Name)
	e.Log.Debug("allocated worksheet", "app", app.Name, "sheet", sheetName)

	sheet, err := wb.AddSheet(sheetName, SheetHeader)
	if err != nil {
		return fmt.Errorf("application %q: %w", app.Name, err)
	}

	snap, err := e.Source.CreateSnapshot(ctx, app)
	if err != nil {
		return fmt.Errorf("application %q: failed to create model snapshot: %w", app.Name, err)
	}
	// Snapshot cleanup is best effort; the repository expires abandoned
	// snapshots on its own.
	defer func() { _ = snap.Close(ctx) }()

	modules, err := snap.Modules(ctx)
	if err != nil {
		return fmt.Errorf("application %q: failed to enumerate modules: %w", app.Name, err)
	}
	e.Log.Info("exporting application", "app", app.Name, "modules", len(modules))

	rows := 0
	for _, mod := range modules {
		entities, err := snap.ModuleEntities(ctx, mod.Name)
		if err != nil {
			return fmt.Errorf("application %q: failed to load module %q: %w", app.Name, mod.Name, err)
		}

		// Snapshot-provided iteration order is preserved throughout;
		// no re-sorting of modules, entities, or attributes.
		for _, entity := range entities {
			if !InScope(entity) {
				continue
			}
			for _, attr := range entity.Attributes {
				row := model.ExportRow{
					Module:    mod.Name,
					Entity:    entity.Name,
					Attribute: attr.Name,
					TypeLabel: ClassifyType(attr.Type),
				}
				if err := sheet.AppendRow(row.Module, row.Entity, row.Attribute, row.TypeLabel); err != nil {
					return fmt.Errorf("application %q: %w", app.Name, err)
				}
				rows++
			}
		}
	}

	e.Log.Info("application exported", "app", app.Name, "rows", rows)
	return nil
}
