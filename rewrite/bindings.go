package rewrite

import (
	"fmt"
	"log/slog"

	"github.com/benbjohnson/immutable"
	"github.com/cottand/rewrite/ir"
)

// Bindings are the assignments accumulated during one match attempt.
//
// Bindings is persistent: binding returns a new value and leaves the receiver untouched,
// so a failed sub-match is discarded by simply dropping its result.
// The zero value is not usable, start from NewBindings
type Bindings struct {
	exprs *immutable.Map[uint64, ir.Expr]
	seqs  *immutable.Map[uint64, []ir.Expr]
	types *immutable.Map[uint64, ir.Type]
}

var idHasher = immutable.NewHasher(uint64(0))

func NewBindings() Bindings {
	return Bindings{
		exprs: immutable.NewMap[uint64, ir.Expr](idHasher),
		seqs:  immutable.NewMap[uint64, []ir.Expr](idHasher),
		types: immutable.NewMap[uint64, ir.Type](idHasher),
	}
}

func (b Bindings) Expr(w *ir.Wildcard) (ir.Expr, bool) {
	return b.exprs.Get(w.ID)
}

func (b Bindings) Seq(w *ir.Wildcard) ([]ir.Expr, bool) {
	return b.seqs.Get(w.ID)
}

func (b Bindings) Type(v *ir.TypeVar) (ir.Type, bool) {
	return b.types.Get(v.ID)
}

// BindExpr assigns e to w. Binding a wildcard twice only succeeds if both values are equal
func (b Bindings) BindExpr(w *ir.Wildcard, e ir.Expr) (Bindings, bool) {
	if existing, ok := b.exprs.Get(w.ID); ok {
		return b, ir.Equal(existing, e)
	}
	b.exprs = b.exprs.Set(w.ID, e)
	return b, true
}

func (b Bindings) BindSeq(w *ir.Wildcard, es []ir.Expr) (Bindings, bool) {
	if existing, ok := b.seqs.Get(w.ID); ok {
		return b, ir.EqualSlices(existing, es)
	}
	b.seqs = b.seqs.Set(w.ID, append([]ir.Expr{}, es...))
	return b, true
}

func (b Bindings) BindType(v *ir.TypeVar, t ir.Type) (Bindings, bool) {
	if existing, ok := b.types.Get(v.ID); ok {
		return b, ir.TypesEqual(existing, t)
	}
	b.types = b.types.Set(v.ID, t)
	return b, true
}

// Len is the total number of assignments
func (b Bindings) Len() int {
	return b.exprs.Len() + b.seqs.Len() + b.types.Len()
}

// Resolve substitutes every bound type variable in t
func (b Bindings) Resolve(t ir.Type) ir.Type {
	return ir.SubstType(t, b.Type)
}

// Substitution replaces bound wildcards and type variables
func (b Bindings) Substitution() ir.Substitution {
	return ir.Substitution{
		Expr: b.Expr,
		Seq:  b.Seq,
		Type: b.Type,
	}
}

// Apply is ir.Substitute with these Bindings
func (b Bindings) Apply(e ir.Expr) ir.Expr {
	return ir.Substitute(e, b.Substitution())
}

func (b Bindings) LogValue() slog.Value {
	var attrs []slog.Attr
	exprs := b.exprs.Iterator()
	for !exprs.Done() {
		id, e, _ := exprs.Next()
		attrs = append(attrs, slog.String(fmt.Sprint("w", id), ir.ExprString(e)))
	}
	seqs := b.seqs.Iterator()
	for !seqs.Done() {
		id, es, _ := seqs.Next()
		strs := make([]string, len(es))
		for i, e := range es {
			strs[i] = ir.ExprString(e)
		}
		attrs = append(attrs, slog.Any(fmt.Sprint("w", id), strs))
	}
	types := b.types.Iterator()
	for !types.Done() {
		id, t, _ := types.Next()
		attrs = append(attrs, slog.String(fmt.Sprint("t", id), ir.TypeString(t)))
	}
	return slog.GroupValue(attrs...)
}
