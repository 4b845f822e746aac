package rewrite

import (
	"github.com/cottand/rewrite/ir"
	"github.com/cottand/rewrite/rwerr"
	"github.com/hashicorp/go-set/v3"
)

// Match is the outcome of a successful execution
type Match struct {
	Result ir.Expr
	// Candidate is the position of the winning candidate in the stream the body produced
	Candidate int
	Bindings  Bindings
}

// Execute rewrites target with the first candidate of r whose pattern matches it.
//
// A target that no candidate matches is not an error: Execute then returns false and a nil error.
// An error means the rule itself is malformed
func (r *Rule) Execute(target ir.Expr) (ir.Expr, bool, error) {
	m, err := r.Match(target)
	if err != nil || m == nil {
		return nil, false, err
	}
	return m.Result, true, nil
}

// Match is like Execute, but also reports which candidate matched and what it bound.
// It returns nil, nil when nothing matched
func (r *Rule) Match(target ir.Expr) (*Match, error) {
	fresh := r.fresher.Instantiate(r.typeVars)
	scope := newScope(r.name, r.params, r.fresher, fresh)

	i := -1
	for c := range r.body(scope) {
		i++
		if err := checkVariadics(r.name, c.Pattern); err != nil {
			return nil, err
		}
		b, ok := Unify(c.Pattern, target, NewBindings())
		if !ok {
			r.logger.Debug("candidate did not match", "candidate", i, "pattern", c.Pattern, "target", target)
			continue
		}
		if err := r.checkTypeVarsBound(fresh, target, b); err != nil {
			return nil, err
		}
		replacement := c.Replacement
		if c.Thunk != nil {
			scope.bind(b)
			replacement = c.Thunk()
			scope.unbind()
			if replacement == nil {
				r.logger.Debug("candidate declined after matching", "candidate", i, "target", target)
				continue
			}
		}
		if replacement == nil {
			return nil, rwerr.New(rwerr.NewInvalidParam{Rule: r.name, Reason: "candidate has no replacement"})
		}
		result, err := r.resolve(replacement, target, b)
		if err != nil {
			return nil, err
		}
		r.logger.Debug("candidate matched", "candidate", i, "target", target, "result", result, "bindings", b)
		return &Match{Result: result, Candidate: i, Bindings: b}, nil
	}
	return nil, nil
}

// resolve substitutes the bindings into replacement and makes sure that nothing the
// rule introduced is left unbound in the result. Wildcards and type variables that
// were already present in target are allowed
func (r *Rule) resolve(replacement, target ir.Expr, b Bindings) (ir.Expr, error) {
	result := b.Apply(replacement)

	targetWildcards := set.New[uint64](0)
	for _, w := range ir.Wildcards(target) {
		targetWildcards.Insert(w.ID)
	}
	for _, w := range ir.Wildcards(result) {
		if !targetWildcards.Contains(w.ID) {
			return nil, rwerr.New(rwerr.NewUnboundWildcard{Rule: r.name, Name: w.NameHint, Result: ir.ExprString(result)})
		}
	}

	targetVars := set.New[uint64](0)
	for _, v := range ir.ExprTypeVars(target) {
		targetVars.Insert(v.ID)
	}
	for _, v := range ir.ExprTypeVars(result) {
		if !targetVars.Contains(v.ID) {
			return nil, rwerr.New(rwerr.NewUnresolvedTypeVar{
				Rule:   r.name,
				Var:    ir.TypeString(v),
				Result: ir.ExprStringTyped(result),
			})
		}
	}
	return result, nil
}

// checkTypeVarsBound makes sure that a match assigned every type variable of the rule.
// A variable that only occurs in the declared type of a sequence that captured nothing stays unbound
func (r *Rule) checkTypeVarsBound(fresh map[uint64]ir.Type, target ir.Expr, b Bindings) error {
	targetVars := set.New[uint64](0)
	for _, v := range ir.ExprTypeVars(target) {
		targetVars.Insert(v.ID)
	}
	for _, declared := range r.typeVars {
		v, ok := fresh[declared.ID].(*ir.TypeVar)
		if !ok || targetVars.Contains(v.ID) {
			continue
		}
		if _, bound := b.Type(v); !bound {
			return rwerr.New(rwerr.NewUnresolvedTypeVar{Rule: r.name, Var: ir.TypeString(v), Result: ir.ExprStringTyped(target)})
		}
	}
	return nil
}

// checkVariadics rejects argument lists with more than one variadic wildcard,
// for which positional matching is ambiguous
func checkVariadics(rule string, pattern ir.Expr) error {
	var err error
	ir.Walk(pattern, func(e ir.Expr) bool {
		op, ok := e.(*ir.Operation)
		if !ok {
			return true
		}
		count := 0
		for _, arg := range op.Args {
			if w, ok := arg.(*ir.Wildcard); ok && w.Variadic {
				count++
			}
		}
		if count > 1 {
			err = rwerr.New(rwerr.NewMultipleVariadic{Rule: rule, Symbol: string(op.Symbol), Count: count})
			return false
		}
		return true
	})
	return err
}
