package export

import (
	"context"
	"fmt"

	"github.com/mxtools/mxexport/internal/model"
)

// fakeModel is the in-memory model of one application served by
// fakeSource in tests.
type fakeModel struct {
	modules  []model.Module
	entities map[string][]model.Entity

	// snapshotErr makes snapshot creation fail for this application.
	snapshotErr error

	// modulesErr makes module enumeration fail after a successful
	// snapshot creation (exercising the partial-sheet behavior).
	modulesErr error
}

// fakeSource implements Source over a map of application ids.
type fakeSource struct {
	models map[string]*fakeModel

	// closed counts snapshot Close calls, to assert cleanup happens.
	closed int
}

func (s *fakeSource) CreateSnapshot(_ context.Context, app model.AppConfig) (Snapshot, error) {
	m, ok := s.models[app.AppID]
	if !ok {
		return nil, fmt.Errorf("unknown app id %q", app.AppID)
	}
	if m.snapshotErr != nil {
		return nil, m.snapshotErr
	}
	return &fakeSnapshot{source: s, model: m}, nil
}

type fakeSnapshot struct {
	source *fakeSource
	model  *fakeModel
}

func (s *fakeSnapshot) Modules(context.Context) ([]model.Module, error) {
	if s.model.modulesErr != nil {
		return nil, s.model.modulesErr
	}
	return s.model.modules, nil
}

func (s *fakeSnapshot) ModuleEntities(_ context.Context, moduleName string) ([]model.Entity, error) {
	entities, ok := s.model.entities[moduleName]
	if !ok {
		return nil, fmt.Errorf("unknown module %q", moduleName)
	}
	return entities, nil
}

func (s *fakeSnapshot) Close(context.Context) error {
	s.source.closed++
	return nil
}
