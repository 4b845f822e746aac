package rewrite

import (
	"sync/atomic"

	"github.com/cottand/rewrite/ir"
)

// Fresher hands out identities for wildcards and type variables.
// Unlike a per-run counter, it is safe for concurrent use, so
// independent executions never share an identity
type Fresher struct {
	freshCount atomic.Uint64
}

// DefaultFresher is used by rules and by the authoring layer unless told otherwise
var DefaultFresher = NewFresher()

func NewFresher() *Fresher {
	return &Fresher{}
}

func (f *Fresher) next() uint64 {
	return f.freshCount.Add(1)
}

func (f *Fresher) TypeVar(nameHint string) *ir.TypeVar {
	return &ir.TypeVar{ID: f.next(), NameHint: nameHint}
}

func (f *Fresher) Wildcard(nameHint string, declared ir.Type, variadic bool) *ir.Wildcard {
	return &ir.Wildcard{ID: f.next(), Declared: declared, Variadic: variadic, NameHint: nameHint}
}

// Instantiate maps each of vars to a new type variable with the same name hint
func (f *Fresher) Instantiate(vars []*ir.TypeVar) map[uint64]ir.Type {
	freshened := make(map[uint64]ir.Type, len(vars))
	for _, v := range vars {
		freshened[v.ID] = f.TypeVar(v.NameHint)
	}
	return freshened
}
