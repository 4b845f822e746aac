package ir

// Substitution describes how to rewrite the leaves of an expression tree.
// Any of its fields may be nil
type Substitution struct {
	// Expr resolves a scalar wildcard
	Expr func(w *Wildcard) (Expr, bool)
	// Seq resolves a variadic wildcard to the run of arguments it stands for
	Seq func(w *Wildcard) ([]Expr, bool)
	// Type resolves type variables in every node's type
	Type TypeLookup
}

// Substitute returns expr with wildcards and type variables replaced according to s.
// A variadic wildcard in an argument list is spliced in place.
// Unresolved wildcards are kept, with their declared type substituted.
// expr is never mutated
func Substitute(expr Expr, s Substitution) Expr {
	switch expr := expr.(type) {
	case *Wildcard:
		if !expr.Variadic && s.Expr != nil {
			if bound, ok := s.Expr(expr); ok {
				return bound
			}
		}
		return &Wildcard{
			ID:       expr.ID,
			Declared: s.substType(expr.Declared),
			Variadic: expr.Variadic,
			NameHint: expr.NameHint,
		}
	case *Literal:
		return &Literal{Value: expr.Value, T: s.substType(expr.T)}
	case *Operation:
		args := make([]Expr, 0, len(expr.Args))
		for _, arg := range expr.Args {
			if w, ok := arg.(*Wildcard); ok && w.Variadic && s.Seq != nil {
				if run, ok := s.Seq(w); ok {
					args = append(args, run...)
					continue
				}
			}
			args = append(args, Substitute(arg, s))
		}
		return &Operation{Symbol: expr.Symbol, Args: args, T: s.substType(expr.T)}
	default:
		return expr
	}
}

func (s Substitution) substType(t Type) Type {
	if s.Type == nil {
		return t
	}
	return SubstType(t, s.Type)
}

// Wildcards returns the distinct wildcards occurring in expr, in pre-order
func Wildcards(expr Expr) []*Wildcard {
	var found []*Wildcard
	seen := make(map[uint64]struct{})
	Walk(expr, func(e Expr) bool {
		if w, ok := e.(*Wildcard); ok {
			if _, dup := seen[w.ID]; !dup {
				seen[w.ID] = struct{}{}
				found = append(found, w)
			}
		}
		return true
	})
	return found
}

// ExprTypeVars returns the type variables occurring in the types of expr and its descendants
func ExprTypeVars(expr Expr) []*TypeVar {
	var ts []Type
	Walk(expr, func(e Expr) bool {
		ts = append(ts, e.Type())
		return true
	})
	return FreeTypeVars(ts...)
}
