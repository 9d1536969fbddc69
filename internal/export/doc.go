// Package export implements the model metadata export pipeline.
//
// The pipeline is a sequential batch: for each configured application the
// Runner asks a Source for a read snapshot of the application's model,
// walks modules → entities → attributes, filters entities to the in-scope
// subset (root, non-persistable), classifies each attribute's declared
// type, and appends one row per attribute to the application's worksheet
// in a shared workbook.
//
// Failure isolation is the package's primary design property: one
// application's failure never stops the others. Failures are collected by
// name and folded into a single Outcome value, which the CLI boundary
// translates into a process exit code.
package export
