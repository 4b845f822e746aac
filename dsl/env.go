package dsl

import (
	"maps"
	"slices"

	"github.com/cottand/rewrite/ir"
)

// Env is a set of operations addressable by name, used to resolve textual terms
type Env struct {
	ops   map[string]*Operation
	types map[string]int
}

func NewEnv(ops ...*Operation) *Env {
	e := &Env{
		ops: make(map[string]*Operation),
		types: map[string]int{
			ir.IntTypeName:    0,
			ir.FloatTypeName:  0,
			ir.StringTypeName: 0,
			ir.BoolTypeName:   0,
			ir.AnyTypeName:    0,
		},
	}
	e.Add(ops...)
	return e
}

// Add registers ops, replacing operations of the same name
func (e *Env) Add(ops ...*Operation) {
	for _, op := range ops {
		e.ops[string(op.Symbol())] = op
	}
}

// AddType registers a type constructor taking arity type arguments
func (e *Env) AddType(name string, arity int) {
	e.types[name] = arity
}

func (e *Env) Lookup(name string) (*Operation, bool) {
	op, ok := e.ops[name]
	return op, ok
}

// TypeArity reports the number of type arguments the constructor name takes
func (e *Env) TypeArity(name string) (int, bool) {
	arity, ok := e.types[name]
	return arity, ok
}

// Operations returns every operation, sorted by name
func (e *Env) Operations() []*Operation {
	names := slices.Sorted(maps.Keys(e.ops))
	ops := make([]*Operation, len(names))
	for i, name := range names {
		ops[i] = e.ops[name]
	}
	return ops
}

// Merge returns a new Env with the operations and types of e and others
func (e *Env) Merge(others ...*Env) *Env {
	merged := NewEnv()
	for _, env := range append([]*Env{e}, others...) {
		maps.Copy(merged.ops, env.ops)
		maps.Copy(merged.types, env.types)
	}
	return merged
}
