// Package model defines the domain types and value objects for the
// mxexport CLI.
//
// This package contains pure data structures with no external dependencies.
// All entities (AppConfig, Module, Entity, Attribute, ExportRow) are
// transient representations of a remote application model, constructed
// fresh per run and discarded afterwards — the only persisted output is
// the spreadsheet the export pipeline writes.
//
// The package also defines exit codes (ExitCode) and a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling.
package model
