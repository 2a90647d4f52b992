package schema

import (
	"errors"
	"fmt"
)

var (
	ErrDocument      = errors.New("malformed schema document")
	ErrDuplicateType = errors.New("duplicate type name")
	ErrUnknownRef    = errors.New("unknown type reference")
	ErrTypeSpecifier = errors.New("ambiguous or missing type specifier")
	ErrMapKeyType    = errors.New("invalid map key type")
	ErrCircularRoot  = errors.New("circular root definition")
)

// DefinitionError reports a schema-document problem with the type and
// property it was found in. Load never produces a partial Model: any
// DefinitionError aborts the whole load.
type DefinitionError struct {
	Type     string
	Property string
	Detail   string
	Err      error
}

func (e *DefinitionError) Error() string {
	at := e.Type
	if e.Property != "" {
		at += "." + e.Property
	}
	if e.Detail == "" {
		return fmt.Sprintf("%s at %s", e.Err.Error(), at)
	}
	return fmt.Sprintf("%s at %s: %s", e.Err.Error(), at, e.Detail)
}

func (e *DefinitionError) Unwrap() error {
	return e.Err
}

func defErr(typeName, prop string, base error, format string, args ...any) error {
	return &DefinitionError{
		Type:     typeName,
		Property: prop,
		Detail:   fmt.Sprintf(format, args...),
		Err:      base,
	}
}
