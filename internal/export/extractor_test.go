package export

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/mxtools/mxexport/internal/model"
	"github.com/mxtools/mxexport/internal/testutil"
	"github.com/mxtools/mxexport/internal/xlsx"
)

// saveAndReadRows saves the workbook to a temp file and reads one sheet
// back with excelize, returning its rows.
func saveAndReadRows(t *testing.T, wb *xlsx.Workbook, sheet string) [][]string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, wb.SaveAs(path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	return rows
}

// TestExtractorExport walks a small two-module model and verifies row
// content, filtering, classification, and order preservation.
func TestExtractorExport(t *testing.T) {
	source := &fakeSource{models: map[string]*fakeModel{
		"app-1": {
			modules: []model.Module{{Name: "M1"}, {Name: "M2"}},
			entities: map[string][]model.Entity{
				"M1": {
					{
						Name:           "E1",
						Generalization: model.GeneralizationNone,
						Persistable:    false,
						Attributes: []model.Attribute{
							{Name: "a1", Type: model.TypeString},
							{Name: "a2", Type: model.TypeInteger},
						},
					},
					{
						// Persistable root entity: filtered out entirely.
						Name:           "Stored",
						Generalization: model.GeneralizationNone,
						Persistable:    true,
						Attributes:     []model.Attribute{{Name: "ignored", Type: model.TypeString}},
					},
				},
				"M2": {
					{
						// Specialized entity: filtered out regardless of flag.
						Name:           "Derived",
						Generalization: model.GeneralizationSpecialized,
						Persistable:    false,
						Attributes:     []model.Attribute{{Name: "ignored", Type: model.TypeLong}},
					},
					{
						Name:           "Scratch",
						Generalization: model.GeneralizationNone,
						Persistable:    false,
						Attributes: []model.Attribute{
							{Name: "blob", Type: model.TypeBinary},
							{Name: "exotic", Type: model.AttributeType("geometry")},
						},
					},
				},
			},
		},
	}}

	wb := xlsx.New()
	defer wb.Close()
	namer := NewSheetNamer()
	extractor := NewExtractor(source, testutil.NewTestLogger(t))

	app := model.AppConfig{Name: "Alpha", AppID: "app-1", Branch: "main"}
	require.NoError(t, extractor.Export(context.Background(), app, wb, namer))

	rows := saveAndReadRows(t, wb, "Alpha")
	require.Len(t, rows, 5, "header plus four attribute rows")

	assert.Equal(t, []string{"moduleName", "entityName", "attributeName", "attributeType"}, rows[0])
	assert.Equal(t, []string{"M1", "E1", "a1", "String"}, rows[1])
	assert.Equal(t, []string{"M1", "E1", "a2", "Integer"}, rows[2])
	assert.Equal(t, []string{"M2", "Scratch", "blob", "Binary"}, rows[3])
	assert.Equal(t, []string{"M2", "Scratch", "exotic", "Unknown"}, rows[4])

	assert.Equal(t, 1, source.closed, "snapshot must be closed after extraction")
}

// TestExtractorExportSnapshotFailure verifies that a snapshot-creation
// failure aborts the application with an error naming it, while the
// already-allocated worksheet (header only) remains in the workbook.
func TestExtractorExportSnapshotFailure(t *testing.T) {
	source := &fakeSource{models: map[string]*fakeModel{
		"app-2": {snapshotErr: errors.New("branch not found")},
	}}

	wb := xlsx.New()
	defer wb.Close()
	extractor := NewExtractor(source, testutil.NewTestLogger(t))

	app := model.AppConfig{Name: "Beta", AppID: "app-2", Branch: "release"}
	err := extractor.Export(context.Background(), app, wb, NewSheetNamer())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Beta", "error names the application")
	assert.Contains(t, err.Error(), "branch not found", "error names the underlying cause")

	// The worksheet was allocated before the snapshot attempt, so it
	// stays behind with just the header row.
	rows := saveAndReadRows(t, wb, "Beta")
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"moduleName", "entityName", "attributeName", "attributeType"}, rows[0])
}

// TestExtractorExportModuleLoadFailure verifies the partial-sheet
// behavior: rows written before a mid-extraction failure are kept.
func TestExtractorExportModuleLoadFailure(t *testing.T) {
	source := &fakeSource{models: map[string]*fakeModel{
		"app-3": {
			modules: []model.Module{{Name: "Good"}, {Name: "Missing"}},
			entities: map[string][]model.Entity{
				// "Missing" is deliberately absent, so its load fails.
				"Good": {
					{
						Name:           "E1",
						Generalization: model.GeneralizationNone,
						Persistable:    false,
						Attributes:     []model.Attribute{{Name: "a1", Type: model.TypeBoolean}},
					},
				},
			},
		},
	}}

	wb := xlsx.New()
	defer wb.Close()
	extractor := NewExtractor(source, testutil.NewTestLogger(t))

	app := model.AppConfig{Name: "Gamma", AppID: "app-3", Branch: "main"}
	err := extractor.Export(context.Background(), app, wb, NewSheetNamer())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Gamma")
	assert.Contains(t, err.Error(), "Missing")

	rows := saveAndReadRows(t, wb, "Gamma")
	require.Len(t, rows, 2, "header plus the row written before the failure")
	assert.Equal(t, []string{"Good", "E1", "a1", "Boolean"}, rows[1])

	assert.Equal(t, 1, source.closed, "snapshot closed even on failure")
}
