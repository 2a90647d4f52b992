// Package dataspec validates generic data trees against structural
// schemas and resolves datapath query expressions against them. The
// two entry points are Validate and Search; they share only the ir
// value model.
package dataspec

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dataspec-format/dataspec/debug"
	"github.com/dataspec-format/dataspec/ir"
	"github.com/dataspec-format/dataspec/schema"
)

// Validation error codes.
const (
	CodeTypeMismatch  = "type_mismatch"
	CodeRequired      = "required"
	CodeUnknownKey    = "unknown_key"
	CodeInvalidMapKey = "invalid_map_key"
)

var (
	ErrNilModel = errors.New("nil schema model")
	ErrMaxDepth = errors.New("max validation depth exceeded")
)

// Error is a single validation finding. Path is in datapath syntax,
// so error locations are directly usable as Search queries.
type Error struct {
	Path    string
	Code    string
	Message string
}

func (e Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s at root: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s at %s: %s", e.Code, e.Path, e.Message)
}

// Result aggregates every validation finding of one run, in document
// order.
type Result struct {
	Errors []Error
}

func (r *Result) OK() bool {
	return len(r.Errors) == 0
}

func (r *Result) String() string {
	if r.OK() {
		return "ok"
	}
	lines := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		lines[i] = e.Error()
	}
	return strings.Join(lines, "\n")
}

const DefaultMaxDepth = 1000

type ValidateConfig struct {
	MaxDepth int
}

type ValidateOpt func(*ValidateConfig)

// WithMaxDepth overrides the recursion ceiling guarding against
// pathological inputs.
func WithMaxDepth(n int) ValidateOpt {
	return func(c *ValidateConfig) { c.MaxDepth = n }
}

// Validate structurally checks a value against a schema model. All
// findings are accumulated into the Result; a kind mismatch only stops
// the subtree it occurs in. The returned error is reserved for call
// mistakes (nil model) and the depth guard, never for invalid data.
// The model is read concurrently safely; neither argument is mutated.
func Validate(doc *ir.Node, model *schema.Model, opts ...ValidateOpt) (*Result, error) {
	if model == nil || model.Root == nil {
		return nil, ErrNilModel
	}
	if doc == nil {
		doc = ir.Null()
	}
	cfg := ValidateConfig{MaxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&cfg)
	}
	v := &validator{model: model, maxDepth: cfg.MaxDepth}
	if err := v.object(doc, model.Root, "", 0); err != nil {
		return nil, err
	}
	return &Result{Errors: v.errs}, nil
}

type validator struct {
	model    *schema.Model
	maxDepth int
	errs     []Error
}

func (v *validator) errf(path, code, format string, args ...any) {
	v.errs = append(v.errs, Error{
		Path:    path,
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	})
}

func (v *validator) mismatch(path, expected string, doc *ir.Node) {
	v.errf(path, CodeTypeMismatch, "expected %s, got %s", expected, valueKind(doc))
}

// object checks a value against a type definition: every required
// property present, every present property well typed, and no
// undeclared properties (closed world).
func (v *validator) object(doc *ir.Node, td *schema.TypeDef, path string, depth int) error {
	if depth > v.maxDepth {
		return ErrMaxDepth
	}
	if debug.Validate() {
		debug.Logf("validate %s against %s at %q\n", doc.Type, td.Name, path)
	}
	if doc.Type != ir.ObjectType {
		v.mismatch(path, "object", doc)
		return nil
	}
	for _, p := range td.Properties {
		val := ir.Get(doc, p.Name)
		if val == nil {
			if !p.Optional {
				v.errf(joinField(path, p.Name), CodeRequired, "missing required property %q", p.Name)
			}
			continue
		}
		if err := v.typeRef(val, p.Type, joinField(path, p.Name), depth+1); err != nil {
			return err
		}
	}
	for _, f := range doc.Fields {
		if td.Prop(f.String) == nil {
			v.errf(joinField(path, f.String), CodeUnknownKey, "unknown property %q", f.String)
		}
	}
	return nil
}

func (v *validator) typeRef(doc *ir.Node, t *schema.TypeRef, path string, depth int) error {
	if depth > v.maxDepth {
		return ErrMaxDepth
	}
	switch {
	case t.Primitive != schema.InvalidKind:
		v.primitive(doc, t.Primitive, path)
		return nil
	case t.Array != nil:
		if doc.Type != ir.ArrayType {
			v.mismatch(path, "array", doc)
			return nil
		}
		for i, elt := range doc.Values {
			p := path + "[" + strconv.Itoa(i) + "]"
			if err := v.typeRef(elt, t.Array, p, depth+1); err != nil {
				return err
			}
		}
		return nil
	case t.Map != nil:
		return v.mapping(doc, t.Map, path, depth)
	case t.Ref != "":
		// resolved at load time, cannot be nil
		return v.object(doc, v.model.Types[t.Ref], path, depth+1)
	}
	return nil
}

func (v *validator) primitive(doc *ir.Node, k schema.Kind, path string) {
	switch k {
	case schema.StringKind:
		if doc.Type != ir.StringType {
			v.mismatch(path, "string", doc)
		}
	case schema.BooleanKind:
		if doc.Type != ir.BoolType {
			v.mismatch(path, "boolean", doc)
		}
	case schema.NumberKind:
		// integers satisfy number fields
		if doc.Type != ir.NumberType {
			v.mismatch(path, "number", doc)
		}
	case schema.IntegerKind:
		if doc.Type != ir.NumberType || !isIntegral(doc) {
			v.mismatch(path, "integer", doc)
		}
	}
}

// mapping checks a homogeneous map: every key must match the declared
// key kind, every value the declared value type. Integer keys that
// arrive as decimal strings (the usual YAML/JSON serialization) are
// accepted. Values under invalid keys are not validated further.
func (v *validator) mapping(doc *ir.Node, m *schema.MapRef, path string, depth int) error {
	if doc.Type != ir.ObjectType {
		v.mismatch(path, "map", doc)
		return nil
	}
	for i, f := range doc.Fields {
		entryPath := path + "[" + mapKeyString(f) + "]"
		if !mapKeyMatches(f, m.Key) {
			v.errf(entryPath, CodeInvalidMapKey, "map key %s is not %s", mapKeyString(f), m.Key)
			continue
		}
		if err := v.typeRef(doc.Values[i], m.Value, entryPath, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func mapKeyMatches(f *ir.Node, k schema.Kind) bool {
	switch k {
	case schema.IntegerKind:
		if f.Type == ir.NumberType && f.Int64 != nil {
			return true
		}
		if f.Type == ir.StringType {
			_, err := strconv.ParseInt(f.String, 10, 64)
			return err == nil
		}
		return false
	case schema.StringKind:
		return f.Type == ir.StringType
	}
	return false
}

// mapKeyString renders a map key the way datapath addresses it:
// integer keys bare, string keys quoted.
func mapKeyString(f *ir.Node) string {
	if f.Type == ir.NumberType && f.Int64 != nil {
		return strconv.FormatInt(*f.Int64, 10)
	}
	if _, err := strconv.ParseInt(f.String, 10, 64); err == nil {
		return f.String
	}
	return "'" + strings.Replace(f.String, "'", "\\'", -1) + "'"
}

func isIntegral(doc *ir.Node) bool {
	if doc.Int64 != nil {
		return true
	}
	if doc.Float64 != nil {
		f := *doc.Float64
		return !math.IsInf(f, 0) && !math.IsNaN(f) && f == math.Trunc(f)
	}
	return false
}

// valueKind names a value's kind in schema vocabulary for messages.
func valueKind(doc *ir.Node) string {
	switch doc.Type {
	case ir.NullType:
		return "null"
	case ir.BoolType:
		return "boolean"
	case ir.NumberType:
		if doc.Int64 != nil {
			return "integer"
		}
		return "number"
	case ir.StringType:
		return "string"
	case ir.ArrayType:
		return "array"
	case ir.ObjectType:
		return "object"
	}
	return "<unknown>"
}

func joinField(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}
