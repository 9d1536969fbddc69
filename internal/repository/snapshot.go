package repository

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/mxtools/mxexport/internal/model"
)

// Snapshot is a handle to one temporary read snapshot on the repository.
// It implements export.Snapshot and is scoped to a single application's
// extraction.
type Snapshot struct {
	client *Client
	id     string
}

// ID returns the repository-assigned snapshot identifier.
func (s *Snapshot) ID() string {
	return s.id
}

// Modules enumerates the snapshot's modules in model-declared order.
func (s *Snapshot) Modules(ctx context.Context) ([]model.Module, error) {
	path := fmt.Sprintf("/v1/snapshots/%s/modules", url.PathEscape(s.id))

	var resp moduleList
	if err := s.client.doJSON(ctx, http.MethodGet, path, &resp); err != nil {
		return nil, err
	}
	return toModules(resp.Modules), nil
}

// ModuleEntities loads the full structure of one module: entities with
// nested attributes, generalization metadata, and persistence flags, in
// model-declared order.
func (s *Snapshot) ModuleEntities(ctx context.Context, moduleName string) ([]model.Entity, error) {
	path := fmt.Sprintf("/v1/snapshots/%s/modules/%s",
		url.PathEscape(s.id), url.PathEscape(moduleName))

	var resp moduleDetail
	if err := s.client.doJSON(ctx, http.MethodGet, path, &resp); err != nil {
		return nil, err
	}
	return toEntities(moduleName, resp.Entities)
}

// Close deletes the snapshot on the repository. Best effort: the server
// also expires snapshots on its own, so callers may ignore the error.
func (s *Snapshot) Close(ctx context.Context) error {
	path := fmt.Sprintf("/v1/snapshots/%s", url.PathEscape(s.id))
	return s.client.doJSON(ctx, http.MethodDelete, path, nil)
}
