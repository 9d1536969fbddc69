// Package repository provides the HTTP client for the remote model
// repository service.
//
// The service exposes, per application id and branch, an operation that
// creates a temporary read snapshot of the application's model; the
// snapshot handle then serves module enumeration and per-module structure
// loads. All requests are authenticated with a bearer token.
//
// The package implements export.Source, keeping the export pipeline free
// of transport concerns. Wire DTOs and their mapping into internal/model
// types live in wire.go.
package repository
