package datapath

import (
	"strconv"

	"github.com/dataspec-format/dataspec/debug"
	"github.com/dataspec-format/dataspec/ir"
)

// DefaultMaxDepth bounds how deep a resolved result may be when it is
// copied out of the document.
const DefaultMaxDepth = 1000

type ResolveConfig struct {
	MaxDepth int
}

type ResolveOpt func(*ResolveConfig)

// WithMaxDepth overrides the result-depth ceiling guarding against
// cyclic-by-reference input values.
func WithMaxDepth(n int) ResolveOpt {
	return func(c *ResolveConfig) { c.MaxDepth = n }
}

// Resolve applies a step sequence to a value, left to right. Each step
// consumes the current value and produces the next one; the first
// failing step aborts the whole resolution with a ResolveError
// carrying its index. The input is never mutated.
//
// The result is copied out of the document; a value deeper than the
// configured ceiling (a node graph wired into a cycle, or a
// pathologically deep tree) fails with ErrMaxDepth instead of
// overflowing the stack.
func Resolve(doc *ir.Node, path *Path, opts ...ResolveOpt) (*ir.Node, error) {
	cfg := ResolveConfig{MaxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&cfg)
	}
	cur := doc
	step := 0
	last := path
	for p := path; p != nil; p = p.Next {
		last = p
		if debug.Resolve() {
			debug.Logf("resolve step %d (%s) on %s\n", step, p.SegmentString(), cur.Type)
		}
		switch {
		case p.Field != nil:
			if cur.Type != ir.ObjectType {
				return nil, resolveErr(step, p, ErrStepType)
			}
			next := ir.Get(cur, *p.Field)
			if next == nil {
				return nil, resolveErr(step, p, ErrKeyNotFound)
			}
			cur = next
		case p.Index != nil:
			next, err := resolveIndex(cur, *p.Index, step, p)
			if err != nil {
				return nil, err
			}
			cur = next
		case p.Key != nil:
			if cur.Type != ir.ObjectType {
				return nil, resolveErr(step, p, ErrStepType)
			}
			next := ir.Get(cur, *p.Key)
			if next == nil {
				return nil, resolveErr(step, p, ErrKeyNotFound)
			}
			cur = next
		case p.Filter != nil:
			next, err := resolveFilter(cur, p.Filter, step, p)
			if err != nil {
				return nil, err
			}
			cur = next
		}
		step++
	}
	res, ok := cur.CloneDepth(cfg.MaxDepth)
	if !ok {
		if last == nil {
			return nil, &ResolveError{Err: ErrMaxDepth}
		}
		return nil, resolveErr(step-1, last, ErrMaxDepth)
	}
	if debug.Resolve() {
		debug.LogAny(ir.ToAny(res))
	}
	return res, nil
}

// resolveIndex applies an index step. On arrays it is a positional
// lookup; on objects it is an integer key lookup, falling back to the
// key's decimal string form since serialization coerces integer keys
// to strings.
func resolveIndex(cur *ir.Node, idx int, step int, p *Path) (*ir.Node, error) {
	switch cur.Type {
	case ir.ArrayType:
		if idx < 0 || idx >= len(cur.Values) {
			return nil, resolveErr(step, p, ErrIndexOutOfRange)
		}
		return cur.Values[idx], nil
	case ir.ObjectType:
		if next := ir.GetInt(cur, int64(idx)); next != nil {
			return next, nil
		}
		if next := ir.Get(cur, strconv.Itoa(idx)); next != nil {
			return next, nil
		}
		return nil, resolveErr(step, p, ErrKeyNotFound)
	default:
		return nil, resolveErr(step, p, ErrStepType)
	}
}

// resolveFilter scans an array in order for the first object element
// whose filter field equals the literal, compared by value.
func resolveFilter(cur *ir.Node, f *Filter, step int, p *Path) (*ir.Node, error) {
	if cur.Type != ir.ArrayType {
		return nil, resolveErr(step, p, ErrStepType)
	}
	for _, elt := range cur.Values {
		if elt.Type != ir.ObjectType {
			continue
		}
		v := ir.Get(elt, f.Field)
		if v == nil {
			continue
		}
		if ir.Equal(v, f.Value) {
			return elt, nil
		}
	}
	return nil, resolveErr(step, p, ErrFilterNoMatch)
}
