package sema

import (
	"zenc/internal/traits"
	"zenc/internal/types"
)

// Policy carries the configurable knob for classifying a struct type the
// checker has never seen a definition for.
type Policy struct {
	// StrictUnknownCopy, when true, treats an unknown struct (no known
	// definition, no Drop impl) as Move instead of the permissive default
	// of Copy. Default false matches is_type_copy's documented fallback.
	StrictUnknownCopy bool
}

// IsCopy reports whether values of type id may be duplicated by assignment
// without invalidating the source.
func IsCopy(interner *types.Interner, registry *traits.Registry, policy Policy, id types.TypeID) bool {
	t, ok := interner.Lookup(id)
	if !ok {
		return true
	}
	if types.IsPrimitive(t.Kind) {
		return true
	}
	switch t.Kind {
	case types.KindArray:
		return IsCopy(interner, registry, policy, t.Inner)
	case types.KindAlias:
		if t.Opaque {
			return true
		}
		return IsCopy(interner, registry, policy, t.Inner)
	case types.KindRef, types.KindRefSlice:
		// References themselves are trivially re-bindable; the analyses
		// track the referent's ownership separately via the borrow table.
		return true
	case types.KindStruct:
		if registry.HasImpl("Copy", t.Name) {
			return true
		}
		known := registry.FindStruct(t.Name)
		hasDrop := registry.HasImpl("Drop", t.Name)
		if !known && !hasDrop {
			// Unknown-to-the-checker type: permissive Copy fallback unless
			// the stricter policy is requested.
			return !policy.StrictUnknownCopy
		}
		return false
	default:
		return true
	}
}
