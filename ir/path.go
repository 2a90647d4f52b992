package ir

import (
	"strconv"
	"strings"
)

// Path renders the node's location in datapath syntax, e.g.
// "projects[0].epics[1].id". Array elements render as [index],
// integer-keyed object entries as [key], string-keyed entries as
// .field (quoted when the field needs it). The root renders as "".
func (y *Node) Path() string {
	if y.Parent == nil {
		return ""
	}
	switch y.Parent.Type {
	case ObjectType:
		prefix := y.Parent.Path()
		key := y.Parent.Fields[y.ParentIndex]
		if key.Type == NumberType && key.Int64 != nil {
			return prefix + "[" + strconv.FormatInt(*key.Int64, 10) + "]"
		}
		f := y.ParentField
		if quoteField(f) {
			return prefix + "['" + strings.Replace(f, "'", "\\'", -1) + "']"
		}
		if prefix == "" {
			return f
		}
		return prefix + "." + f
	case ArrayType:
		return y.Parent.Path() + "[" + strconv.Itoa(y.ParentIndex) + "]"
	default:
		panic("parent but not in container")
	}
}

func quoteField(f string) bool {
	if f == "" {
		return true
	}
	return strings.IndexAny(f, "'\". /[]=") != -1
}
