package model

import (
	"fmt"
	"strings"
)

// AttributeType is the declared primitive type of a model attribute.
// The set of recognized types is closed — the remote repository can only
// declare one of the ten variants below. Anything else (including types
// introduced by a newer model version) is represented as TypeUnknown.
type AttributeType string

const (
	// TypeString is a variable-length text attribute.
	TypeString AttributeType = "string"

	// TypeInteger is a 32-bit signed integer attribute.
	TypeInteger AttributeType = "integer"

	// TypeLong is a 64-bit signed integer attribute.
	TypeLong AttributeType = "long"

	// TypeDecimal is an arbitrary-precision decimal attribute.
	TypeDecimal AttributeType = "decimal"

	// TypeBoolean is a true/false attribute.
	TypeBoolean AttributeType = "boolean"

	// TypeDateTime is a timestamp attribute.
	TypeDateTime AttributeType = "datetime"

	// TypeEnumeration is an attribute constrained to a named value set.
	TypeEnumeration AttributeType = "enumeration"

	// TypeBinary is a raw byte-blob attribute.
	TypeBinary AttributeType = "binary"

	// TypeHashedString is a one-way hashed text attribute (passwords etc.).
	TypeHashedString AttributeType = "hashedstring"

	// TypeAutoNumber is an auto-incrementing numeric attribute.
	TypeAutoNumber AttributeType = "autonumber"

	// TypeUnknown is the sentinel for any declared type outside the
	// recognized variant set. Parsing never fails — unrecognized input
	// maps here so that downstream classification stays a total function.
	TypeUnknown AttributeType = "unknown"
)

// String returns the string representation of the AttributeType.
// This method satisfies the fmt.Stringer interface.
func (t AttributeType) String() string {
	return string(t)
}

// IsValid checks whether the AttributeType value is one of the ten
// recognized variants. TypeUnknown is deliberately not "valid" — it is
// the sentinel, not a member of the closed set.
func (t AttributeType) IsValid() bool {
	switch t {
	case TypeString, TypeInteger, TypeLong, TypeDecimal, TypeBoolean,
		TypeDateTime, TypeEnumeration, TypeBinary, TypeHashedString,
		TypeAutoNumber:
		return true
	default:
		return false
	}
}

// ParseAttributeType converts a declared-type tag from the repository wire
// format into an AttributeType. Matching is case-insensitive.
//
// Unlike the other Parse helpers in this package, ParseAttributeType never
// returns an error: any unrecognized tag becomes TypeUnknown. The export
// must classify every attribute it encounters, so totality matters more
// than strictness here.
func ParseAttributeType(s string) AttributeType {
	t := AttributeType(strings.ToLower(strings.TrimSpace(s)))
	if !t.IsValid() {
		return TypeUnknown
	}
	return t
}

// GeneralizationKind describes an entity's position in an inheritance chain.
type GeneralizationKind string

const (
	// GeneralizationNone marks a root entity that does not specialize
	// another entity.
	GeneralizationNone GeneralizationKind = "none"

	// GeneralizationSpecialized marks an entity that inherits from another
	// entity. The governing persistence flag of such an entity lives on the
	// root of its inheritance chain, not on the entity itself.
	GeneralizationSpecialized GeneralizationKind = "generalization"
)

// String returns the string representation of the GeneralizationKind.
func (g GeneralizationKind) String() string {
	return string(g)
}

// IsValid checks whether the GeneralizationKind is one of the two
// predefined variants.
func (g GeneralizationKind) IsValid() bool {
	switch g {
	case GeneralizationNone, GeneralizationSpecialized:
		return true
	default:
		return false
	}
}

// ParseGeneralizationKind converts a string to a GeneralizationKind.
// Returns an error if the string does not match any valid kind.
func ParseGeneralizationKind(s string) (GeneralizationKind, error) {
	g := GeneralizationKind(strings.ToLower(strings.TrimSpace(s)))
	if !g.IsValid() {
		return "", fmt.Errorf("invalid generalization kind: %q (valid: none, generalization)", s)
	}
	return g, nil
}

// DefaultBranch is the model branch used when an AppConfig does not
// specify one.
const DefaultBranch = "main"

// AppConfig identifies one application whose model is to be exported.
// Entries are supplied by the run manifest before the batch starts and
// are immutable for the duration of the run.
type AppConfig struct {
	// Name is the application's display name. It is the unique key in the
	// manifest and the basis for the application's worksheet name.
	Name string `json:"name" koanf:"name" yaml:"name"`

	// AppID is the opaque identifier the model repository uses for this
	// application.
	AppID string `json:"appId" koanf:"app_id" yaml:"appId"`

	// Branch is the model branch to snapshot. Defaults to "main" when the
	// manifest omits it.
	Branch string `json:"branch,omitempty" koanf:"branch" yaml:"branch,omitempty"`
}

// Validate checks that the AppConfig carries the fields required to
// contact the repository. An empty Branch is normalized to DefaultBranch
// rather than rejected.
func (a *AppConfig) Validate() error {
	if a.Name == "" {
		return fmt.Errorf("application name must not be empty")
	}
	if a.AppID == "" {
		return fmt.Errorf("application %q: app id must not be empty", a.Name)
	}
	if a.Branch == "" {
		a.Branch = DefaultBranch
	}
	return nil
}

// Module is a named container of entities within an application model.
type Module struct {
	// Name is the module's name as declared in the model.
	Name string `json:"name"`
}

// Attribute is a single typed field of an entity.
type Attribute struct {
	// Name is the attribute's name as declared in the model.
	Name string `json:"name"`

	// Type is the attribute's declared primitive type.
	Type AttributeType `json:"type"`
}

// Entity is a named structure within a module, carrying zero or more
// attributes plus the inheritance and persistence metadata the export
// filter inspects.
type Entity struct {
	// Name is the entity's name as declared in the model.
	Name string `json:"name"`

	// Generalization describes whether this entity inherits from another.
	Generalization GeneralizationKind `json:"generalization"`

	// Persistable reports whether the entity's data is durably stored by
	// its owning application. Only meaningful for root entities
	// (Generalization == GeneralizationNone); for specialized entities the
	// governing flag lives on the root of the chain.
	Persistable bool `json:"persistable"`

	// Attributes are the entity's typed fields, in model-declared order.
	Attributes []Attribute `json:"attributes,omitempty"`
}

// ExportRow is one row of the output worksheet — the only type in this
// package that crosses into persisted output.
type ExportRow struct {
	// Module is the owning module's name.
	Module string `json:"module"`

	// Entity is the owning entity's name.
	Entity string `json:"entity"`

	// Attribute is the attribute's name.
	Attribute string `json:"attribute"`

	// TypeLabel is the classified type label (e.g. "String", "Unknown").
	TypeLabel string `json:"typeLabel"`
}

// ExitCode defines the CLI exit codes. These codes allow scripts and CI
// systems to programmatically determine the outcome of a run.
type ExitCode int

const (
	// ExitSuccess indicates every application exported without error and
	// the workbook was written.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitConfigError indicates the run could not start: the token file is
	// missing or empty, or the manifest is invalid. Nothing was exported
	// and no network contact was attempted.
	ExitConfigError ExitCode = 2

	// ExitPartialFailure indicates the workbook was written but one or
	// more applications failed to export. The artifact is inspectable;
	// the failed applications are listed on stderr.
	ExitPartialFailure ExitCode = 3

	// ExitWriteError indicates the workbook could not be persisted. The
	// run produced no usable artifact regardless of per-application
	// results.
	ExitWriteError ExitCode = 4
)

// CLIError is a custom error type that carries an exit code. It allows
// the CLI layer to translate domain errors into process exit codes at a
// single boundary instead of calling os.Exit from nested logic.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
