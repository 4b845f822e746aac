package rewrite

import (
	"github.com/cottand/rewrite/ir"
)

// Unify matches pattern against target, extending b.
//
// Only the pattern side binds: wildcards and type variables of pattern are assigned parts
// of target, while type variables occurring in target are rigid and compare by identity.
// A failed match is reported as false, and the returned Bindings must then be discarded
func Unify(pattern, target ir.Expr, b Bindings) (Bindings, bool) {
	switch p := pattern.(type) {
	case *ir.Literal:
		t, ok := target.(*ir.Literal)
		if !ok || !ir.LiteralValuesEqual(p.Value, t.Value) {
			return b, false
		}
		return UnifyType(p.T, t.T, b)

	case *ir.Wildcard:
		if p.Variadic {
			// only meaningful inside an argument list
			return b, false
		}
		if t, ok := target.(*ir.Wildcard); ok && t.ID == p.ID {
			return b, true
		}
		b, ok := b.BindExpr(p, target)
		if !ok {
			return b, false
		}
		return UnifyType(p.Declared, target.Type(), b)

	case *ir.Operation:
		t, ok := target.(*ir.Operation)
		if !ok || t.Symbol != p.Symbol {
			return b, false
		}
		b, ok = UnifyType(p.T, t.T, b)
		if !ok {
			return b, false
		}
		return unifyArgs(p.Args, t.Args, b)

	default:
		return b, false
	}
}

// unifyArgs matches an argument list with at most one variadic wildcard.
// The fixed prefix and suffix are matched positionally, and whatever lies between them
// is captured by the variadic wildcard
func unifyArgs(patterns, targets []ir.Expr, b Bindings) (Bindings, bool) {
	variadicAt := -1
	for i, p := range patterns {
		if w, ok := p.(*ir.Wildcard); ok && w.Variadic {
			if variadicAt >= 0 {
				return b, false
			}
			variadicAt = i
		}
	}
	ok := true
	if variadicAt < 0 {
		if len(patterns) != len(targets) {
			return b, false
		}
		for i := range patterns {
			if b, ok = Unify(patterns[i], targets[i], b); !ok {
				return b, false
			}
		}
		return b, true
	}

	prefix, suffix := patterns[:variadicAt], patterns[variadicAt+1:]
	if len(targets) < len(prefix)+len(suffix) {
		return b, false
	}
	for i, p := range prefix {
		if b, ok = Unify(p, targets[i], b); !ok {
			return b, false
		}
	}
	suffixStart := len(targets) - len(suffix)
	for i, p := range suffix {
		if b, ok = Unify(p, targets[suffixStart+i], b); !ok {
			return b, false
		}
	}
	return unifySeq(patterns[variadicAt].(*ir.Wildcard), targets[len(prefix):suffixStart], b)
}

func unifySeq(w *ir.Wildcard, run []ir.Expr, b Bindings) (Bindings, bool) {
	if len(run) == 1 {
		if same, ok := run[0].(*ir.Wildcard); ok && same.ID == w.ID {
			return b, true
		}
	}
	if existing, bound := b.Seq(w); bound {
		return b, ir.EqualSlices(existing, run)
	}
	ok := true
	for _, elem := range run {
		if b, ok = UnifyType(w.Declared, elem.Type(), b); !ok {
			return b, false
		}
	}
	return b.BindSeq(w, run)
}

// UnifyType matches the pattern type against the target type, binding pattern type variables
func UnifyType(pattern, target ir.Type, b Bindings) (Bindings, bool) {
	return UnifyTypeWith(pattern, target, b, nil)
}

// UnifyTypeWith is UnifyType where only the type variables for which bindable
// returns true may be assigned. The others must match by identity.
// A nil bindable allows every variable of pattern to be bound
func UnifyTypeWith(pattern, target ir.Type, b Bindings, bindable func(*ir.TypeVar) bool) (Bindings, bool) {
	if pattern == nil || target == nil {
		return b, pattern == target
	}
	switch p := pattern.(type) {
	case *ir.AnyType:
		return b, true

	case *ir.TypeVar:
		if t, ok := target.(*ir.TypeVar); ok && t.ID == p.ID {
			return b, true
		}
		if bindable != nil && !bindable(p) {
			return b, false
		}
		if existing, ok := b.Type(p); ok {
			return b, ir.TypesEqual(existing, target)
		}
		if occursIn(p, target) {
			return b, false
		}
		return b.BindType(p, target)

	case *ir.TypeName:
		t, ok := target.(*ir.TypeName)
		return b, ok && t.Name == p.Name

	case *ir.AppliedType:
		t, ok := target.(*ir.AppliedType)
		if !ok || t.Base.Name != p.Base.Name || len(t.Args) != len(p.Args) {
			return b, false
		}
		for i := range p.Args {
			if b, ok = UnifyTypeWith(p.Args[i], t.Args[i], b, bindable); !ok {
				return b, false
			}
		}
		return b, true

	default:
		return b, false
	}
}

func occursIn(v *ir.TypeVar, t ir.Type) bool {
	switch t := t.(type) {
	case *ir.TypeVar:
		return t.ID == v.ID
	case *ir.AppliedType:
		for _, arg := range t.Args {
			if occursIn(v, arg) {
				return true
			}
		}
	}
	return false
}
