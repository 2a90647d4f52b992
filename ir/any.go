package ir

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// FromAny converts a decoded YAML/JSON value (maps, slices, scalars)
// into a Node tree. Map keys become string or integer key nodes
// depending on their decoded type; key order is normalized by sorting.
func FromAny(v any) (*Node, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case bool:
		return FromBool(x), nil
	case string:
		return FromString(x), nil
	case int:
		return FromInt(int64(x)), nil
	case int64:
		return FromInt(x), nil
	case uint64:
		if x > math.MaxInt64 {
			return nil, fmt.Errorf("integer %d overflows int64", x)
		}
		return FromInt(int64(x)), nil
	case float64:
		return FromFloat(x), nil
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return FromInt(i), nil
		}
		f, err := x.Float64()
		if err != nil {
			return nil, fmt.Errorf("bad number %q: %w", x.String(), err)
		}
		return FromFloat(f), nil
	case []any:
		elts := make([]*Node, len(x))
		for i, e := range x {
			y, err := FromAny(e)
			if err != nil {
				return nil, err
			}
			elts[i] = y
		}
		return FromSlice(elts), nil
	case map[string]any:
		yMap := make(map[string]*Node, len(x))
		for k, e := range x {
			y, err := FromAny(e)
			if err != nil {
				return nil, err
			}
			yMap[k] = y
		}
		return FromMap(yMap), nil
	case map[any]any:
		strMap := make(map[string]*Node, len(x))
		intMap := make(map[int64]*Node, len(x))
		for k, e := range x {
			y, err := FromAny(e)
			if err != nil {
				return nil, err
			}
			switch kk := k.(type) {
			case string:
				strMap[kk] = y
			case int:
				intMap[int64(kk)] = y
			case int64:
				intMap[kk] = y
			case uint64:
				if kk > math.MaxInt64 {
					return nil, fmt.Errorf("integer key %d overflows int64", kk)
				}
				intMap[int64(kk)] = y
			default:
				return nil, fmt.Errorf("unsupported key type %T", k)
			}
		}
		if len(intMap) == 0 {
			return FromMap(strMap), nil
		}
		if len(strMap) != 0 {
			// mixed keys: stringify the integer ones
			for k, y := range intMap {
				strMap[strconv.FormatInt(k, 10)] = y
			}
			return FromMap(strMap), nil
		}
		return FromIntKeysMap(intMap), nil
	default:
		return nil, fmt.Errorf("unsupported value type %T", v)
	}
}

// ToAny converts a Node tree back to maps, slices and scalars, for
// re-encoding as YAML or JSON.
func ToAny(y *Node) any {
	switch y.Type {
	case ObjectType:
		n := len(y.Fields)
		res := make(map[string]any, n)
		for i := range n {
			field := y.Fields[i]
			if field.Type == NullType {
				continue
			}
			res[field.String] = ToAny(y.Values[i])
		}
		return res
	case ArrayType:
		res := make([]any, len(y.Values))
		for i, elt := range y.Values {
			res[i] = ToAny(elt)
		}
		return res
	case StringType:
		return y.String
	case NumberType:
		if y.Int64 != nil {
			return *y.Int64
		}
		if y.Float64 != nil {
			return *y.Float64
		}
		return y.Number
	case BoolType:
		return y.Bool
	case NullType:
		return nil
	default:
		panic("impossible production")
	}
}
