package export

import (
	"github.com/mxtools/mxexport/internal/model"
)

// LabelUnknown is the classification label for any declared type outside
// the ten recognized variants.
const LabelUnknown = "Unknown"

// typeLabels maps each recognized declared-type variant to its fixed
// classification label. The table is the single source of truth for the
// classifier; ClassifyType supplies the mandatory default arm.
var typeLabels = map[model.AttributeType]string{
	model.TypeString:       "String",
	model.TypeInteger:      "Integer",
	model.TypeLong:         "Long",
	model.TypeDecimal:      "Decimal",
	model.TypeBoolean:      "Boolean",
	model.TypeDateTime:     "DateTime",
	model.TypeEnumeration:  "Enumeration",
	model.TypeBinary:       "Binary",
	model.TypeHashedString: "HashedString",
	model.TypeAutoNumber:   "AutoNumber",
}

// ClassifyType returns the classification label for an attribute's
// declared type. It is a total pure function: every possible input maps to
// exactly one label, with anything outside the recognized variant set
// mapping to LabelUnknown. No side effects, no error conditions.
func ClassifyType(t model.AttributeType) string {
	if label, ok := typeLabels[t]; ok {
		return label
	}
	return LabelUnknown
}
