// Package datapath implements the datapath query language: parsing
// path expressions like "projects[0].epics[id='EPIC-1'].name" and
// resolving them against ir.Node trees.
package datapath

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/dataspec-format/dataspec/ir"
)

// Path is one step of a parsed path expression; steps are linked
// through Next and consumed left to right. Exactly one of Field,
// Index, Key, Filter is set per step.
type Path struct {
	Field  *string
	Index  *int
	Key    *string
	Filter *Filter
	Next   *Path
}

// Filter selects the first array element whose Field equals Value.
// Value is a scalar literal node (string, number or bool).
type Filter struct {
	Field string
	Value *ir.Node
}

// Len returns the number of steps.
func (p *Path) Len() int {
	n := 0
	for x := p; x != nil; x = x.Next {
		n++
	}
	return n
}

// String renders the path in canonical form with '.' separators.
func (p *Path) String() string {
	buf := bytes.NewBuffer(nil)
	x := p
	for x != nil {
		if x.Field != nil {
			if buf.Len() > 0 {
				buf.WriteByte('.')
			}
			buf.WriteString(*x.Field)
			x = x.Next
			continue
		}
		buf.WriteString(x.SegmentString())
		x = x.Next
	}
	return buf.String()
}

// SegmentString renders this single step, without separators.
func (p *Path) SegmentString() string {
	switch {
	case p.Field != nil:
		return *p.Field
	case p.Index != nil:
		return fmt.Sprintf("[%d]", *p.Index)
	case p.Key != nil:
		return "['" + strings.Replace(*p.Key, "'", "\\'", -1) + "']"
	case p.Filter != nil:
		return "[" + p.Filter.Field + "=" + literalString(p.Filter.Value) + "]"
	}
	return ""
}

func literalString(y *ir.Node) string {
	switch y.Type {
	case ir.StringType:
		return "'" + strings.Replace(y.String, "'", "\\'", -1) + "'"
	case ir.BoolType:
		return strconv.FormatBool(y.Bool)
	case ir.NumberType:
		if y.Int64 != nil {
			return strconv.FormatInt(*y.Int64, 10)
		}
		if y.Float64 != nil {
			return strconv.FormatFloat(*y.Float64, 'g', -1, 64)
		}
		return y.Number
	}
	return ""
}
