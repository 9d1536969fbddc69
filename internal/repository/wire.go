// wire.go defines the repository's JSON wire DTOs and their mapping into
// internal/model domain types. The mapping is the only place the wire
// format is interpreted — the rest of the application never sees raw
// repository payloads.
package repository

import (
	"fmt"

	"github.com/mxtools/mxexport/internal/model"
)

// snapshotCreated is the response body of the snapshot-creation endpoint.
type snapshotCreated struct {
	SnapshotID string `json:"snapshotId"`
}

// moduleList is the response body of the module-enumeration endpoint.
type moduleList struct {
	Modules []moduleDTO `json:"modules"`
}

// moduleDTO is one module entry on the wire.
type moduleDTO struct {
	Name string `json:"name"`
}

// moduleDetail is the response body of the module-structure endpoint.
type moduleDetail struct {
	Entities []entityDTO `json:"entities"`
}

// entityDTO is one entity on the wire, with nested attributes.
type entityDTO struct {
	Name           string         `json:"name"`
	Generalization string         `json:"generalization"`
	Persistable    bool           `json:"persistable"`
	Attributes     []attributeDTO `json:"attributes"`
}

// attributeDTO is one attribute on the wire. Type carries the repository's
// declared-type tag, which may be any string.
type attributeDTO struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// toModules converts wire module entries to domain modules, preserving
// wire order.
func toModules(dtos []moduleDTO) []model.Module {
	modules := make([]model.Module, 0, len(dtos))
	for _, d := range dtos {
		modules = append(modules, model.Module{Name: d.Name})
	}
	return modules
}

// toEntities converts wire entities into domain entities, preserving wire
// order for entities and their attributes.
//
// The generalization kind must be one of the two recognized variants — a
// payload outside that contract is a repository protocol error and aborts
// the module load. Declared attribute types, by contrast, are mapped
// totally: unrecognized tags become model.TypeUnknown, because the export
// classifies every attribute rather than rejecting new type tags.
func toEntities(moduleName string, dtos []entityDTO) ([]model.Entity, error) {
	entities := make([]model.Entity, 0, len(dtos))
	for _, d := range dtos {
		if d.Name == "" {
			return nil, fmt.Errorf("module %q: entity with empty name in repository response", moduleName)
		}

		kind, err := model.ParseGeneralizationKind(d.Generalization)
		if err != nil {
			return nil, fmt.Errorf("module %q, entity %q: %w", moduleName, d.Name, err)
		}

		attrs := make([]model.Attribute, 0, len(d.Attributes))
		for _, a := range d.Attributes {
			attrs = append(attrs, model.Attribute{
				Name: a.Name,
				Type: model.ParseAttributeType(a.Type),
			})
		}

		entities = append(entities, model.Entity{
			Name:           d.Name,
			Generalization: kind,
			Persistable:    d.Persistable,
			Attributes:     attrs,
		})
	}
	return entities, nil
}
