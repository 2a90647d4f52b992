package ir

import "testing"

func TestFromMapSortsKeys(t *testing.T) {
	y := FromMap(map[string]*Node{
		"c": FromString("3"),
		"a": FromString("1"),
		"b": FromString("2"),
	})
	if y.Type != ObjectType {
		t.Fatalf("FromMap type = %v, want ObjectType", y.Type)
	}
	want := []string{"a", "b", "c"}
	for i, w := range want {
		if y.Fields[i].String != w {
			t.Errorf("Fields[%d] = %q, want %q", i, y.Fields[i].String, w)
		}
	}
}

func TestFromMapBacklinks(t *testing.T) {
	inner := FromString("v")
	y := FromMap(map[string]*Node{"k": inner})
	if inner.Parent != y {
		t.Errorf("value parent not set")
	}
	if inner.ParentField != "k" {
		t.Errorf("ParentField = %q, want %q", inner.ParentField, "k")
	}
	if inner.Root() != y {
		t.Errorf("Root() != container")
	}
}

func TestFromIntKeysMap(t *testing.T) {
	y := FromIntKeysMap(map[int64]*Node{
		2023: FromString("beta"),
		2022: FromString("alpha"),
	})
	if len(y.Fields) != 2 {
		t.Fatalf("len(Fields) = %d, want 2", len(y.Fields))
	}
	k0 := y.Fields[0]
	if k0.Type != NumberType || k0.Int64 == nil || *k0.Int64 != 2022 {
		t.Errorf("Fields[0] not integer key 2022: %+v", k0)
	}
	if k0.String != "2022" {
		t.Errorf("Fields[0].String = %q, want %q", k0.String, "2022")
	}
	if got := GetInt(y, 2023); got == nil || got.String != "beta" {
		t.Errorf("GetInt(2023) = %v", got)
	}
	// string-form lookup still works
	if got := Get(y, "2022"); got == nil || got.String != "alpha" {
		t.Errorf("Get(\"2022\") = %v", got)
	}
}

func TestGetMissing(t *testing.T) {
	y := FromMap(map[string]*Node{"a": FromInt(1)})
	if got := Get(y, "b"); got != nil {
		t.Errorf("Get missing = %v, want nil", got)
	}
	if got := GetInt(y, 1); got != nil {
		t.Errorf("GetInt on string keys = %v, want nil", got)
	}
}

func TestCloneDetaches(t *testing.T) {
	y := FromMap(map[string]*Node{
		"arr": FromSlice([]*Node{FromInt(1), FromInt(2)}),
	})
	c := y.Clone()
	if !Equal(y, c) {
		t.Fatalf("clone not equal to original")
	}
	c.Values[0].Values[0] = FromInt(99)
	if got := *Get(y, "arr").Values[0].Int64; got != 1 {
		t.Errorf("mutating clone changed original: %d", got)
	}
}

func TestVisitOrder(t *testing.T) {
	y := FromSlice([]*Node{FromInt(1), FromInt(2)})
	pre, post := 0, 0
	err := y.Visit(func(_ *Node, isPost bool) (bool, error) {
		if isPost {
			post++
		} else {
			pre++
		}
		return true, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if pre != 3 || post != 3 {
		t.Errorf("pre = %d post = %d, want 3 and 3", pre, post)
	}
}
