package export

import (
	"github.com/mxtools/mxexport/internal/model"
)

// InScope reports whether an entity belongs to the export.
//
// An entity is in scope iff it declares no generalization (it is the root
// of its inheritance chain) and its persistence flag is explicitly false.
// Entities with a generalization are always excluded regardless of their
// own persistence flag: the governing flag lives on the chain's root, and
// this filter does not climb the chain — only root, non-persistable
// entities are in scope.
func InScope(e model.Entity) bool {
	return e.Generalization == model.GeneralizationNone && !e.Persistable
}
