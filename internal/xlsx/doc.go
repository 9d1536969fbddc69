// Package xlsx wraps github.com/xuri/excelize/v2 with the small surface
// the export pipeline needs: create a workbook, add named worksheets with
// a bold header row, append rows in order, and save once at the end.
//
// The wrapper exists to keep excelize out of the pipeline packages and to
// encapsulate the bookkeeping excelize requires (the implicit default
// sheet, 1-based row coordinates, style ids).
package xlsx
