// Package schema loads hand-authored structural schema documents into
// an immutable model: named object types whose properties are
// primitives, arrays, maps, or references to other named types.
package schema

// RootName is the reserved key under which a schema document defines
// its root properties.
const RootName = "<<root>>"

// Kind is a primitive value kind.
type Kind int

const (
	InvalidKind Kind = iota
	StringKind
	IntegerKind
	NumberKind
	BooleanKind
)

func (k Kind) String() string {
	switch k {
	case StringKind:
		return "string"
	case IntegerKind:
		return "integer"
	case NumberKind:
		return "number"
	case BooleanKind:
		return "boolean"
	}
	return "<invalid kind>"
}

// KindOf maps a schema document type name to a Kind.
func KindOf(name string) (Kind, bool) {
	switch name {
	case "string":
		return StringKind, true
	case "integer":
		return IntegerKind, true
	case "number":
		return NumberKind, true
	case "boolean":
		return BooleanKind, true
	}
	return InvalidKind, false
}

// TypeRef describes the expected shape of a value. Exactly one of
// Primitive, Array, Map, Ref is set; object shape is always expressed
// through Ref to a named type.
type TypeRef struct {
	Primitive Kind
	Array     *TypeRef
	Map       *MapRef
	Ref       string
}

// MapRef is a homogeneous mapping with string or integer keys.
type MapRef struct {
	Key   Kind
	Value *TypeRef
}

type Property struct {
	Name        string
	Type        *TypeRef
	Optional    bool
	Description string
}

type TypeDef struct {
	Name       string
	Properties []*Property
}

// Prop returns the named property, or nil.
func (t *TypeDef) Prop(name string) *Property {
	for _, p := range t.Properties {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// Model is a fully resolved schema: the root definition plus the named
// types it can reference. A Model is immutable after Load and safe for
// concurrent reads.
type Model struct {
	Root  *TypeDef
	Types map[string]*TypeDef
}

// Type returns a named type definition, or nil.
func (m *Model) Type(name string) *TypeDef {
	return m.Types[name]
}
