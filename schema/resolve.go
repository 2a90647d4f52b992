package schema

import (
	"slices"
	"strings"
)

// resolveRefs checks every reference in the model against the
// collected type names. This runs after all definitions are parsed,
// which is what permits forward and mutually recursive references.
func resolveRefs(m *Model) error {
	check := func(typeName string, td *TypeDef) error {
		for _, p := range td.Properties {
			if err := visitRefs(p.Type, func(ref string) error {
				if m.Types[ref] == nil {
					return defErr(typeName, p.Name, ErrUnknownRef, "no type named %q", ref)
				}
				return nil
			}); err != nil {
				return err
			}
		}
		return nil
	}
	if err := check(RootName, m.Root); err != nil {
		return err
	}
	names := make([]string, 0, len(m.Types))
	for name := range m.Types {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		if err := check(name, m.Types[name]); err != nil {
			return err
		}
	}
	return nil
}

func visitRefs(t *TypeRef, f func(ref string) error) error {
	switch {
	case t.Ref != "":
		return f(t.Ref)
	case t.Array != nil:
		return visitRefs(t.Array, f)
	case t.Map != nil:
		return visitRefs(t.Map.Value, f)
	}
	return nil
}

// checkRoot verifies the root is fully definable: following property
// references taken directly (not through an array or map, which bound
// the expansion through the data) must never revisit a type already
// being expanded. Nested named types may still be self- or mutually
// recursive behind array/map edges. Optional properties participate
// like required ones; only array and map edges break the chain.
func checkRoot(m *Model) error {
	onStack := map[string]bool{}
	done := map[string]bool{}
	var visit func(stack []string, td *TypeDef) error
	visit = func(stack []string, td *TypeDef) error {
		for _, p := range td.Properties {
			ref := p.Type.Ref
			if ref == "" {
				continue
			}
			if onStack[ref] {
				chain := append(slices.Clone(stack), ref)
				return defErr(RootName, p.Name, ErrCircularRoot,
					"reference chain %s cannot be fully defined", strings.Join(chain, " -> "))
			}
			if done[ref] {
				continue
			}
			onStack[ref] = true
			err := visit(append(stack, ref), m.Types[ref])
			onStack[ref] = false
			if err != nil {
				return err
			}
			done[ref] = true
		}
		return nil
	}
	return visit(nil, m.Root)
}
