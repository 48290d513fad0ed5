// FILE: lixenwraith/objconfig/errors.go
package objconfig

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors, matched with errors.Is against the typed errors below.
var (
	ErrSchemaValidation        = errors.New("schema validation failed")
	ErrUnknownField            = errors.New("unknown configuration field")
	ErrMissingDiscriminator    = errors.New("switch value not specified")
	ErrUnknownDiscriminator    = errors.New("unknown switch value")
	ErrLeftoverArguments       = errors.New("unrecognized arguments")
	ErrNullDefault             = errors.New("parameter left as nil")
	ErrDuplicateHyperparameter = errors.New("duplicate hyperparameter key")
	ErrFlagRedefined           = errors.New("flag already registered")
	ErrDefaultsNotFound        = errors.New("defaults file not found")
)

// ConstructionError wraps any failure raised while building a node.
// Failures in nested nodes produce a chain of ConstructionErrors; the
// underlying cause stays reachable through errors.As.
type ConstructionError struct {
	Node   string // Node name
	Prefix string // Flag prefix the node was built under
	Err    error
}

func (e *ConstructionError) Error() string {
	if e.Prefix == "" {
		return fmt.Sprintf("build %s: %v", e.Node, e.Err)
	}
	return fmt.Sprintf("build %s (--%s*): %v", e.Node, e.Prefix, e.Err)
}

func (e *ConstructionError) Unwrap() error { return e.Err }

// SchemaValidationError reports a payload the schema refused to decode or validate.
type SchemaValidationError struct {
	Node    string
	Payload map[string]any
	Err     error
}

func (e *SchemaValidationError) Error() string {
	return fmt.Sprintf("%s: during %s init from %v: %v", ErrSchemaValidation, e.Node, e.Payload, e.Err)
}

func (e *SchemaValidationError) Unwrap() []error { return []error{ErrSchemaValidation, e.Err} }

// UnknownFieldError lists payload keys that are not part of a schema.
type UnknownFieldError struct {
	Keys []string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("%s: extra keys %s", ErrUnknownField, strings.Join(e.Keys, ", "))
}

func (e *UnknownFieldError) Is(target error) bool { return target == ErrUnknownField }

// MissingDiscriminatorError is returned when a switch resolves to no value and has no default.
type MissingDiscriminatorError struct {
	Name string
}

func (e *MissingDiscriminatorError) Error() string {
	return fmt.Sprintf("must specify %s", e.Name)
}

func (e *MissingDiscriminatorError) Is(target error) bool { return target == ErrMissingDiscriminator }

// UnknownDiscriminatorError is returned when a switch value is not one of its options.
type UnknownDiscriminatorError struct {
	Name    string
	Value   string
	Options []string
}

func (e *UnknownDiscriminatorError) Error() string {
	return fmt.Sprintf("%s: wanted %q; valid options: [%s]", e.Name, e.Value, strings.Join(e.Options, " "))
}

func (e *UnknownDiscriminatorError) Is(target error) bool { return target == ErrUnknownDiscriminator }

// LeftoverArgumentsError names raw arguments that no node consumed.
type LeftoverArgumentsError struct {
	Keys []string
}

func (e *LeftoverArgumentsError) Error() string {
	return fmt.Sprintf("%s: %s", ErrLeftoverArguments, strings.Join(e.Keys, ", "))
}

func (e *LeftoverArgumentsError) Is(target error) bool { return target == ErrLeftoverArguments }

// NullDefaultError is returned when a field declared with a nil default
// was not given a concrete value by any source.
type NullDefaultError struct {
	Node   string
	Fields []string
}

func (e *NullDefaultError) Error() string {
	return fmt.Sprintf("cannot leave parameters as nil in %s: %s", e.Node, strings.Join(e.Fields, ", "))
}

func (e *NullDefaultError) Is(target error) bool { return target == ErrNullDefault }

// DuplicateHyperparameterError reports a key produced twice while merging
// switch choices or flattening a tree.
type DuplicateHyperparameterError struct {
	Key string
}

func (e *DuplicateHyperparameterError) Error() string {
	return fmt.Sprintf("%s %q", ErrDuplicateHyperparameter, e.Key)
}

func (e *DuplicateHyperparameterError) Is(target error) bool {
	return target == ErrDuplicateHyperparameter
}
