// Package ir holds the generic value representation shared by the
// validator and the datapath resolver. A Node is one of Null, Bool,
// Number, String, Array or Object; object keys are themselves nodes
// and may be strings or integers.
package ir

import (
	"maps"
	"slices"
	"strconv"
)

type Node struct {
	Type        Type
	Parent      *Node
	ParentIndex int
	ParentField string

	// Fields are the key nodes of an object, parallel to Values.
	// Key nodes are StringType or NumberType with an Int64 payload.
	Fields []*Node
	Values []*Node

	String  string
	Bool    bool
	Number  string
	Int64   *int64
	Float64 *float64
}

func (y *Node) Clone() *Node {
	res := &Node{}
	return y.CloneTo(res)
}

// CloneDepth clones like Clone but gives up once the copy recurses
// past max levels, reporting false. A node graph wired into a cycle by
// hand would otherwise overflow the stack.
func (y *Node) CloneDepth(max int) (*Node, bool) {
	res := &Node{}
	if !y.cloneTo(res, 0, max) {
		return nil, false
	}
	return res, true
}

func (y *Node) CloneTo(dst *Node) *Node {
	y.cloneTo(dst, 0, -1)
	return dst
}

func (y *Node) cloneTo(dst *Node, depth, max int) bool {
	if max >= 0 && depth > max {
		return false
	}
	dst.Parent = y.Parent
	dst.ParentIndex = y.ParentIndex
	dst.ParentField = y.ParentField
	dst.Type = y.Type
	dst.Values = make([]*Node, len(y.Values))
	dst.Fields = make([]*Node, len(y.Fields))
	for i, yv := range y.Values {
		dstI := &Node{}
		if !yv.cloneTo(dstI, depth+1, max) {
			return false
		}
		dstI.Parent = dst
		dstI.ParentIndex = i
		dstI.ParentField = yv.ParentField
		dst.Values[i] = dstI
	}
	for i, yf := range y.Fields {
		dstI := &Node{}
		if !yf.cloneTo(dstI, depth+1, max) {
			return false
		}
		dstI.Parent = dst
		dstI.ParentIndex = i
		dstI.ParentField = yf.String
		if yf.Type == NumberType && yf.Int64 != nil {
			dstI.ParentField = strconv.FormatInt(*yf.Int64, 10)
		}
		dst.Fields[i] = dstI
	}
	dst.String = y.String
	dst.Number = y.Number
	if y.Float64 != nil {
		f := *y.Float64
		dst.Float64 = &f
	}
	if y.Int64 != nil {
		i := *y.Int64
		dst.Int64 = &i
	}
	dst.Bool = y.Bool
	return true
}

func Null() *Node {
	return &Node{Type: NullType}
}

func FromString(v string) *Node {
	return &Node{
		Type:   StringType,
		String: v,
	}
}

func FromInt(v int64) *Node {
	return &Node{
		Type:   NumberType,
		Int64:  &v,
		Number: strconv.FormatInt(v, 10),
	}
}

func FromFloat(f float64) *Node {
	return &Node{
		Type:    NumberType,
		Float64: &f,
		Number:  strconv.FormatFloat(f, 'g', -1, 64),
	}
}

func FromBool(v bool) *Node {
	return &Node{
		Type: BoolType,
		Bool: v,
	}
}

func FromMap(yMap map[string]*Node) *Node {
	res := &Node{Type: ObjectType}
	res.Fields = make([]*Node, len(yMap))
	res.Values = make([]*Node, len(yMap))
	keys := slices.Sorted(maps.Keys(yMap))
	for i, key := range keys {
		y := yMap[key]
		y.Parent = res
		y.ParentIndex = i
		y.ParentField = key
		yField := &Node{
			Parent:      res,
			ParentIndex: i,
			ParentField: key,
			Type:        StringType,
			String:      key,
		}
		res.Fields[i] = yField
		res.Values[i] = y
	}
	return res
}

// FromIntKeysMap builds an object whose keys are integer nodes. The
// key nodes keep their decimal form in String so that string lookups
// still find them.
func FromIntKeysMap(yMap map[int64]*Node) *Node {
	res := &Node{Type: ObjectType}
	res.Fields = make([]*Node, len(yMap))
	res.Values = make([]*Node, len(yMap))
	keys := slices.Sorted(maps.Keys(yMap))
	for i, key := range keys {
		i64Key := key
		y := yMap[key]
		keyStr := strconv.FormatInt(key, 10)
		y.Parent = res
		y.ParentIndex = i
		y.ParentField = keyStr
		yField := &Node{
			Parent:      res,
			ParentIndex: i,
			ParentField: keyStr,
			Type:        NumberType,
			Int64:       &i64Key,
			String:      keyStr,
			Number:      keyStr,
		}
		res.Fields[i] = yField
		res.Values[i] = y
	}
	return res
}

func FromSlice(ySlice []*Node) *Node {
	res := &Node{Type: ArrayType}
	res.Values = make([]*Node, len(ySlice))
	for i, y := range ySlice {
		res.Values[i] = y
		y.Parent = res
		y.ParentIndex = i
	}
	return res
}

// Get returns the value of an object field by its string form, or nil
// when absent.
func Get(y *Node, field string) *Node {
	n := len(y.Fields)
	for i := range n {
		if y.Fields[i].String == field {
			return y.Values[i]
		}
	}
	return nil
}

// GetInt returns the value of an integer-keyed object field, or nil
// when absent.
func GetInt(y *Node, key int64) *Node {
	n := len(y.Fields)
	for i := range n {
		f := y.Fields[i]
		if f.Type == NumberType && f.Int64 != nil && *f.Int64 == key {
			return y.Values[i]
		}
	}
	return nil
}

func (y *Node) Visit(f func(y *Node, isPost bool) (bool, error)) error {
	dive, err := f(y, false)
	if err != nil {
		return err
	}
	if dive {
		for _, yy := range y.Values {
			if err := yy.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(y, true); err != nil {
		return err
	}
	return nil
}

func (y *Node) Root() *Node {
	res := y
	for res.Parent != nil {
		res = res.Parent
	}
	return res
}
