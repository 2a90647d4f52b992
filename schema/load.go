package schema

import (
	"strings"

	"github.com/dataspec-format/dataspec/ir"
)

// Load parses a schema document into a Model. The document is a
// mapping whose keys are type names, plus the reserved root key; named
// types wrap their properties in a "properties" entry, the root lists
// its properties directly.
//
// Loading is two-phase: all type names are collected before any
// property is parsed, and references are resolved only after every
// type has been parsed. Types may therefore reference each other
// regardless of declaration order, and may reference themselves.
//
// Load either returns a fully resolved Model or fails; no partial
// model is ever produced.
func Load(doc *ir.Node) (*Model, error) {
	if doc == nil || doc.Type != ir.ObjectType {
		return nil, defErr(RootName, "", ErrDocument, "schema document must be a mapping")
	}

	// phase 1: collect type names
	seen := make(map[string]bool, len(doc.Fields))
	var rootNode *ir.Node
	for i, field := range doc.Fields {
		if field.Type != ir.StringType {
			return nil, defErr(RootName, "", ErrDocument, "type names must be strings, got %s", field.Type)
		}
		name := field.String
		if name == RootName {
			rootNode = doc.Values[i]
			continue
		}
		if seen[name] {
			return nil, defErr(name, "", ErrDuplicateType, "%q is defined twice", name)
		}
		seen[name] = true
	}
	if rootNode == nil {
		return nil, defErr(RootName, "", ErrDocument, "missing %q entry", RootName)
	}

	// phase 2: parse definitions
	types := make(map[string]*TypeDef, len(doc.Fields))
	for i, field := range doc.Fields {
		name := field.String
		if name == RootName {
			continue
		}
		td, err := parseTypeDef(name, doc.Values[i], true)
		if err != nil {
			return nil, err
		}
		types[name] = td
	}
	root, err := parseTypeDef(RootName, rootNode, false)
	if err != nil {
		return nil, err
	}
	m := &Model{Root: root, Types: types}

	// phase 3: resolve references against the collected names
	if err := resolveRefs(m); err != nil {
		return nil, err
	}

	// phase 4: the root must be fully definable
	if err := checkRoot(m); err != nil {
		return nil, err
	}
	return m, nil
}

func parseTypeDef(name string, node *ir.Node, wrapped bool) (*TypeDef, error) {
	if node == nil || node.Type != ir.ObjectType {
		return nil, defErr(name, "", ErrDocument, "type definition must be a mapping")
	}
	props := node
	if wrapped {
		props = ir.Get(node, "properties")
		if props == nil {
			return nil, defErr(name, "", ErrDocument, "named type must have properties")
		}
		if props.Type != ir.ObjectType {
			return nil, defErr(name, "", ErrDocument, "properties must be a mapping")
		}
	}
	td := &TypeDef{Name: name, Properties: make([]*Property, 0, len(props.Fields))}
	for i, field := range props.Fields {
		if field.Type != ir.StringType {
			return nil, defErr(name, "", ErrDocument, "property names must be strings, got %s", field.Type)
		}
		p, err := parseProperty(name, field.String, props.Values[i])
		if err != nil {
			return nil, err
		}
		td.Properties = append(td.Properties, p)
	}
	return td, nil
}

func parseProperty(typeName, propName string, node *ir.Node) (*Property, error) {
	if node == nil || node.Type != ir.ObjectType {
		return nil, defErr(typeName, propName, ErrTypeSpecifier, "property definition must be a mapping")
	}
	shape, err := parseShape(typeName, propName, node)
	if err != nil {
		return nil, err
	}
	p := &Property{Name: propName, Type: shape}
	if o := ir.Get(node, "optional"); o != nil {
		if o.Type != ir.BoolType {
			return nil, defErr(typeName, propName, ErrDocument, "optional must be a boolean")
		}
		p.Optional = o.Bool
	}
	if d := ir.Get(node, "description"); d != nil {
		if d.Type != ir.StringType {
			return nil, defErr(typeName, propName, ErrDocument, "description must be a string")
		}
		p.Description = d.String
	}
	return p, nil
}

// parseShape classifies a property (or items/values) entry into its
// single TypeRef variant: exactly one of a primitive type, an array, a
// map, or a $ref must be present.
func parseShape(typeName, propName string, node *ir.Node) (*TypeRef, error) {
	refNode := ir.Get(node, "$ref")
	typeNode := ir.Get(node, "type")
	if refNode != nil && typeNode != nil {
		return nil, defErr(typeName, propName, ErrTypeSpecifier, "type and $ref are mutually exclusive")
	}
	if refNode == nil && typeNode == nil {
		return nil, defErr(typeName, propName, ErrTypeSpecifier, "one of type or $ref is required")
	}
	if refNode != nil {
		if refNode.Type != ir.StringType {
			return nil, defErr(typeName, propName, ErrDocument, "$ref must be a string")
		}
		ref := strings.TrimPrefix(refNode.String, "#/")
		if ref == "" {
			return nil, defErr(typeName, propName, ErrDocument, "empty $ref")
		}
		return &TypeRef{Ref: ref}, nil
	}
	if typeNode.Type != ir.StringType {
		return nil, defErr(typeName, propName, ErrDocument, "type must be a string")
	}
	tn := typeNode.String
	if tn != "array" && ir.Get(node, "items") != nil {
		return nil, defErr(typeName, propName, ErrTypeSpecifier, "items requires type: array")
	}
	if tn != "map" && (ir.Get(node, "keys") != nil || ir.Get(node, "values") != nil) {
		return nil, defErr(typeName, propName, ErrTypeSpecifier, "keys and values require type: map")
	}
	switch tn {
	case "array":
		items := ir.Get(node, "items")
		if items == nil {
			return nil, defErr(typeName, propName, ErrTypeSpecifier, "type: array must have items")
		}
		if items.Type != ir.ObjectType {
			return nil, defErr(typeName, propName, ErrDocument, "items must be a mapping")
		}
		inner, err := parseShape(typeName, propName, items)
		if err != nil {
			return nil, err
		}
		return &TypeRef{Array: inner}, nil
	case "map":
		keys := ir.Get(node, "keys")
		values := ir.Get(node, "values")
		if keys == nil || values == nil {
			return nil, defErr(typeName, propName, ErrTypeSpecifier, "type: map must have keys and values")
		}
		keyKind, err := parseMapKey(typeName, propName, keys)
		if err != nil {
			return nil, err
		}
		if values.Type != ir.ObjectType {
			return nil, defErr(typeName, propName, ErrDocument, "values must be a mapping")
		}
		inner, err := parseShape(typeName, propName, values)
		if err != nil {
			return nil, err
		}
		return &TypeRef{Map: &MapRef{Key: keyKind, Value: inner}}, nil
	case "object":
		return nil, defErr(typeName, propName, ErrTypeSpecifier, "inline objects are not allowed, use $ref to a named type")
	default:
		k, ok := KindOf(tn)
		if !ok {
			return nil, defErr(typeName, propName, ErrTypeSpecifier, "unsupported type %q", tn)
		}
		return &TypeRef{Primitive: k}, nil
	}
}

func parseMapKey(typeName, propName string, keys *ir.Node) (Kind, error) {
	if keys.Type != ir.ObjectType {
		return InvalidKind, defErr(typeName, propName, ErrDocument, "keys must be a mapping")
	}
	kt := ir.Get(keys, "type")
	if kt == nil || kt.Type != ir.StringType {
		return InvalidKind, defErr(typeName, propName, ErrMapKeyType, "map keys must declare a type")
	}
	switch kt.String {
	case "string":
		return StringKind, nil
	case "integer":
		return IntegerKind, nil
	}
	return InvalidKind, defErr(typeName, propName, ErrMapKeyType, "map keys must be string or integer, got %q", kt.String)
}
