package export

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mxtools/mxexport/internal/model"
)

// TestInScope verifies the full truth table of the entity filter: only
// root (no generalization), non-persistable entities are in scope.
func TestInScope(t *testing.T) {
	tests := []struct {
		name   string
		entity model.Entity
		want   bool
	}{
		{
			name:   "root non-persistable is in scope",
			entity: model.Entity{Name: "Session", Generalization: model.GeneralizationNone, Persistable: false},
			want:   true,
		},
		{
			name:   "root persistable is excluded",
			entity: model.Entity{Name: "Order", Generalization: model.GeneralizationNone, Persistable: true},
			want:   false,
		},
		{
			name:   "specialized non-persistable is excluded",
			entity: model.Entity{Name: "AdminUser", Generalization: model.GeneralizationSpecialized, Persistable: false},
			want:   false,
		},
		{
			name:   "specialized persistable is excluded",
			entity: model.Entity{Name: "ArchivedOrder", Generalization: model.GeneralizationSpecialized, Persistable: true},
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InScope(tt.entity)
			assert.Equal(t, tt.want, got)

			// Purity: a second evaluation of the same input must agree.
			assert.Equal(t, got, InScope(tt.entity))
		})
	}
}
