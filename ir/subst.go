package ir

import (
	"cmp"
	"slices"

	"github.com/hashicorp/go-set/v3"
)

// TypeLookup resolves a type variable, reporting false when it is free
type TypeLookup func(v *TypeVar) (Type, bool)

// SubstType replaces every type variable in t for which lookup succeeds.
// Replacements are themselves substituted, so chains of variables resolve fully
func SubstType(t Type, lookup TypeLookup) Type {
	return substType(t, lookup, 0)
}

// maxSubstDepth guards against a variable bound (transitively) to a type containing itself
const maxSubstDepth = 64

func substType(t Type, lookup TypeLookup, depth int) Type {
	if t == nil || depth > maxSubstDepth {
		return t
	}
	switch t := t.(type) {
	case *TypeVar:
		replacement, ok := lookup(t)
		if !ok {
			return t
		}
		if v, isVar := replacement.(*TypeVar); isVar && v.ID == t.ID {
			return t
		}
		return substType(replacement, lookup, depth+1)
	case *AppliedType:
		changed := false
		newArgs := make([]Type, len(t.Args))
		for i, arg := range t.Args {
			newArgs[i] = substType(arg, lookup, depth)
			changed = changed || newArgs[i] != arg
		}
		if !changed {
			return t
		}
		return &AppliedType{Base: t.Base, Args: newArgs}
	default:
		return t
	}
}

// MapLookup is a TypeLookup backed by a map of variable IDs
func MapLookup(m map[uint64]Type) TypeLookup {
	return func(v *TypeVar) (Type, bool) {
		t, ok := m[v.ID]
		return t, ok
	}
}

// FreeTypeVars returns the distinct type variables of ts, ordered by ID
func FreeTypeVars(ts ...Type) []*TypeVar {
	found := set.NewHashSet[*TypeVar, uint64](0)
	for _, t := range ts {
		collectTypeVars(t, found)
	}
	vars := found.Slice()
	slices.SortFunc(vars, func(a, b *TypeVar) int { return cmp.Compare(a.ID, b.ID) })
	return vars
}

func collectTypeVars(t Type, into *set.HashSet[*TypeVar, uint64]) {
	switch t := t.(type) {
	case *TypeVar:
		into.Insert(t)
	case *AppliedType:
		for _, arg := range t.Args {
			collectTypeVars(arg, into)
		}
	}
}

// IsGround reports whether t contains no type variables
func IsGround(t Type) bool {
	switch t := t.(type) {
	case *TypeVar:
		return false
	case *AppliedType:
		for _, arg := range t.Args {
			if !IsGround(arg) {
				return false
			}
		}
	}
	return true
}
