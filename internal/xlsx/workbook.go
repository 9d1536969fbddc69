package xlsx

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Workbook is an in-memory xlsx workbook under construction. Sheets are
// added as the batch progresses and the file is written exactly once via
// SaveAs. Not safe for concurrent use; the export is strictly sequential.
type Workbook struct {
	f *excelize.File

	// headerStyle is the excelize style id for bold header cells.
	// Created lazily on the first AddSheet call.
	headerStyle int

	// renamedDefault tracks whether the implicit "Sheet1" excelize
	// creates with every new file has been taken over by the first
	// AddSheet call.
	renamedDefault bool
}

// Sheet is a handle to one worksheet. AppendRow writes below the header
// in call order; the sheet keeps its own row cursor.
type Sheet struct {
	wb      *Workbook
	name    string
	nextRow int
}

// New creates an empty workbook.
func New() *Workbook {
	return &Workbook{f: excelize.NewFile()}
}

// AddSheet creates a worksheet with the given name and writes the header
// row in bold. The caller is responsible for name uniqueness and length
// limits (the export pipeline guarantees both through its sheet namer).
//
// excelize seeds every new file with a default "Sheet1"; the first
// AddSheet renames it instead of adding a second sheet, so the saved
// workbook contains exactly the sheets the caller asked for.
func (w *Workbook) AddSheet(name string, header []string) (*Sheet, error) {
	if !w.renamedDefault {
		if err := w.f.SetSheetName(w.f.GetSheetName(0), name); err != nil {
			return nil, fmt.Errorf("failed to create sheet %q: %w", name, err)
		}
		w.renamedDefault = true
	} else {
		if _, err := w.f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("failed to create sheet %q: %w", name, err)
		}
	}

	if err := w.writeHeader(name, header); err != nil {
		return nil, err
	}

	return &Sheet{wb: w, name: name, nextRow: 2}, nil
}

// writeHeader writes the header row into row 1 and applies the bold style
// across its cells.
func (w *Workbook) writeHeader(sheetName string, header []string) error {
	cells := make([]interface{}, len(header))
	for i, h := range header {
		cells[i] = h
	}
	if err := w.f.SetSheetRow(sheetName, "A1", &cells); err != nil {
		return fmt.Errorf("failed to write header on sheet %q: %w", sheetName, err)
	}

	style, err := w.boldStyle()
	if err != nil {
		return err
	}

	// Style the header range A1..<lastCol>1. CoordinatesToCellName only
	// fails for out-of-range coordinates, which a non-empty header cannot
	// produce.
	lastCell, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return fmt.Errorf("invalid header width %d: %w", len(header), err)
	}
	if err := w.f.SetCellStyle(sheetName, "A1", lastCell, style); err != nil {
		return fmt.Errorf("failed to style header on sheet %q: %w", sheetName, err)
	}
	return nil
}

// boldStyle returns the bold font style id, creating it on first use.
func (w *Workbook) boldStyle() (int, error) {
	if w.headerStyle != 0 {
		return w.headerStyle, nil
	}
	style, err := w.f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to create header style: %w", err)
	}
	w.headerStyle = style
	return style, nil
}

// SheetNames returns the names of all sheets currently in the workbook,
// in tab order.
func (w *Workbook) SheetNames() []string {
	return w.f.GetSheetList()
}

// SaveAs writes the workbook to the given path, overwriting any existing
// file. Called once per run, after all applications have been attempted.
func (w *Workbook) SaveAs(path string) error {
	if err := w.f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook to %s: %w", path, err)
	}
	return nil
}

// Close releases the in-memory workbook resources.
func (w *Workbook) Close() error {
	return w.f.Close()
}

// AppendRow writes one row of values immediately below the rows written
// so far on this sheet. Values keep their Go types; excelize maps them to
// the corresponding cell types.
func (s *Sheet) AppendRow(values ...interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, s.nextRow)
	if err != nil {
		return fmt.Errorf("invalid row %d on sheet %q: %w", s.nextRow, s.name, err)
	}
	if err := s.wb.f.SetSheetRow(s.name, cell, &values); err != nil {
		return fmt.Errorf("failed to append row to sheet %q: %w", s.name, err)
	}
	s.nextRow++
	return nil
}

// Name returns the worksheet's name.
func (s *Sheet) Name() string {
	return s.name
}
