// Package dispatch maps operations to the Go functions implementing them,
// and evaluates expressions that no rule rewrites any further
package dispatch

import (
	"log/slog"
	"maps"
	"slices"
	"sync"

	"github.com/cottand/rewrite/internal/log"
	"github.com/cottand/rewrite/ir"
	"github.com/cottand/rewrite/rwerr"
	"github.com/pkg/errors"
)

// Impl computes the value of an operation from the values of its arguments
type Impl func(args []any) (any, error)

// Table is a registry of implementations, safe for concurrent use
type Table struct {
	mu     sync.RWMutex
	impls  map[ir.Symbol]Impl
	logger *slog.Logger
}

func NewTable() *Table {
	return &Table{
		impls:  make(map[ir.Symbol]Impl),
		logger: ir.Logger(log.DefaultLogger).With("section", "dispatch"),
	}
}

// Register sets the implementation of symbol, replacing any previous one
func (t *Table) Register(symbol ir.Symbol, impl Impl) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.impls[symbol] = impl
}

func (t *Table) Lookup(symbol ir.Symbol) (Impl, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	impl, ok := t.impls[symbol]
	return impl, ok
}

// Symbols returns the symbols with an implementation, sorted
func (t *Table) Symbols() []ir.Symbol {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Sorted(maps.Keys(t.impls))
}

// Eval computes the value of expr bottom-up: literals evaluate to their value,
// and operations to their implementation applied to the values of their arguments
func (t *Table) Eval(expr ir.Expr) (any, error) {
	switch e := expr.(type) {
	case *ir.Literal:
		return e.Value, nil
	case *ir.Operation:
		impl, ok := t.Lookup(e.Symbol)
		if !ok {
			return nil, rwerr.New(rwerr.NewNoImplementation{Symbol: string(e.Symbol)})
		}
		args := make([]any, len(e.Args))
		for i, arg := range e.Args {
			v, err := t.Eval(arg)
			if err != nil {
				return nil, err
			}
			args[i] = v
		}
		t.logger.Debug("evaluating", "expr", expr, "args", args)
		v, err := impl(args)
		if err != nil {
			return nil, errors.Wrapf(err, "evaluating %s", ir.ExprString(e))
		}
		return v, nil
	case nil:
		return nil, rwerr.New(rwerr.NewNotEvaluable{Expr: "nil", Name: "expression"})
	default:
		return nil, rwerr.New(rwerr.NewNotEvaluable{Expr: ir.ExprString(expr), Name: expr.Describe()})
	}
}
