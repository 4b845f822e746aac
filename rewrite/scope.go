package rewrite

import (
	"fmt"

	"github.com/cottand/rewrite/ir"
)

// Scope gives a rule body access to the wildcards standing for its parameters.
//
// While the body produces patterns, Get and Seq return wildcards. Once a pattern has
// matched and its Thunk runs, they return the expressions the wildcards were bound to
type Scope struct {
	owner     string
	params    []Param
	wildcards map[string]*ir.Wildcard
	// types maps declared type variables to the ones used in this scope
	types map[uint64]ir.Type
	bound *Bindings
}

// NewScope creates placeholder wildcards for params, keeping their declared type variables.
// This is how an operation records its body at declaration time
func NewScope(owner string, params []Param) *Scope {
	return newScope(owner, params, DefaultFresher, nil)
}

func newScope(owner string, params []Param, fresher *Fresher, types map[uint64]ir.Type) *Scope {
	s := &Scope{
		owner:     owner,
		params:    params,
		wildcards: make(map[string]*ir.Wildcard, len(params)),
		types:     types,
	}
	for _, p := range params {
		s.wildcards[p.Name] = fresher.Wildcard(p.Name, s.declared(p.Type), p.Variadic)
	}
	return s
}

func (s *Scope) declared(t ir.Type) ir.Type {
	if s.types == nil {
		return t
	}
	return ir.SubstType(t, ir.MapLookup(s.types))
}

func (s *Scope) wildcard(name string, variadic bool) *ir.Wildcard {
	w, ok := s.wildcards[name]
	if !ok {
		panic(fmt.Sprintf("%s has no parameter named '%s'", s.owner, name))
	}
	if w.Variadic != variadic {
		if variadic {
			panic(fmt.Sprintf("parameter '%s' of %s is not a sequence, use Get", name, s.owner))
		}
		panic(fmt.Sprintf("parameter '%s' of %s is a sequence, use Seq", name, s.owner))
	}
	return w
}

// Get returns the scalar parameter name
func (s *Scope) Get(name string) ir.Expr {
	w := s.wildcard(name, false)
	if s.bound != nil {
		if e, ok := s.bound.Expr(w); ok {
			return e
		}
	}
	return w
}

// Seq returns the sequence parameter name, to be spread into an argument list
func (s *Scope) Seq(name string) []ir.Expr {
	w := s.wildcard(name, true)
	if s.bound != nil {
		if es, ok := s.bound.Seq(w); ok {
			return es
		}
	}
	return []ir.Expr{w}
}

// Value returns the Go value of the literal bound to the scalar parameter name.
// It reports false before a match, or if the parameter is bound to a non-literal
func (s *Scope) Value(name string) (any, bool) {
	lit, ok := s.Get(name).(*ir.Literal)
	if !ok {
		return nil, false
	}
	return lit.Value, true
}

// Type maps the declared type variables in t to the ones of this execution,
// resolved to their bindings once a pattern has matched
func (s *Scope) Type(t ir.Type) ir.Type {
	t = s.declared(t)
	if s.bound != nil {
		t = s.bound.Resolve(t)
	}
	return t
}

// Wildcards returns the wildcard of each parameter, in declaration order
func (s *Scope) Wildcards() []*ir.Wildcard {
	ws := make([]*ir.Wildcard, len(s.params))
	for i, p := range s.params {
		ws[i] = s.wildcards[p.Name]
	}
	return ws
}

// Args returns the parameters as an argument list, with sequences spread in place
func (s *Scope) Args() []ir.Expr {
	args := make([]ir.Expr, 0, len(s.params))
	for _, p := range s.params {
		if p.Variadic {
			args = append(args, s.Seq(p.Name)...)
		} else {
			args = append(args, s.Get(p.Name))
		}
	}
	return args
}

func (s *Scope) bind(b Bindings) { s.bound = &b }
func (s *Scope) unbind()         { s.bound = nil }
