package strategy

import (
	"log/slog"
	"strings"

	"github.com/cottand/rewrite/internal/log"
	"github.com/cottand/rewrite/ir"
	"github.com/cottand/rewrite/rwerr"
	"github.com/cottand/rewrite/util/hset"
)

// DefaultFuel bounds the number of rewrites Simplify performs
const DefaultFuel = 10_000

type Options struct {
	// Fuel is the maximum number of rewrites, DefaultFuel if zero
	Fuel   int
	Logger *slog.Logger
}

var defaultLogger = ir.Logger(log.DefaultLogger).With("section", "strategy")

// Trace lists the rewrites that led from an expression to its simplified form
type Trace []Step

func (t Trace) String() string {
	sb := strings.Builder{}
	for _, step := range t {
		sb.WriteString(step.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

// Labels returns the label of every step, in order
func (t Trace) Labels() []string {
	labels := make([]string, len(t))
	for i, step := range t {
		labels[i] = step.Label()
	}
	return labels
}

// Simplify rewrites expr with the rules of s until none applies anywhere in the tree.
// At every step the outermost, leftmost node that some rule matches is rewritten.
//
// Rewriting fails with rwerr.OutOfFuel when it does not terminate within the fuel of opts,
// and with rwerr.RewriteCycle when it reaches a tree it has already been through.
// On failure, the last tree reached is returned along with the trace
func Simplify(expr ir.Expr, s *RuleSet, opts Options) (ir.Expr, Trace, error) {
	fuel := opts.Fuel
	if fuel <= 0 {
		fuel = DefaultFuel
	}
	logger := opts.Logger
	if logger == nil {
		logger = defaultLogger
	}

	var trace Trace
	seen := hset.New[ir.Expr](ir.ExprHasher{}, expr)
	current := expr
	for {
		if len(trace) >= fuel {
			return current, trace, rwerr.New(rwerr.NewOutOfFuel{Fuel: fuel, Last: ir.ExprString(current)})
		}
		step, ok, err := s.rewriteOnce(current, nil)
		if err != nil {
			return current, trace, err
		}
		if !ok {
			logger.Debug("simplified", "result", current, "steps", len(trace))
			return current, trace, nil
		}
		next := replaceAt(current, step.Path, step.After)
		trace = append(trace, step)
		logger.Debug("rewrote", "rule", step.Label(), "before", step.Before, "after", step.After)
		if !seen.Add(next) {
			return next, trace, rwerr.New(rwerr.NewRewriteCycle{Expr: ir.ExprString(next), Rule: step.Label()})
		}
		current = next
	}
}

// rewriteOnce finds the first node in pre-order that a rule matches
func (s *RuleSet) rewriteOnce(e ir.Expr, path []int) (Step, bool, error) {
	step, ok, err := s.Apply(e)
	if err != nil || ok {
		step.Path = path
		return step, ok, err
	}
	op, isOp := e.(*ir.Operation)
	if !isOp {
		return Step{}, false, nil
	}
	for i, arg := range op.Args {
		childPath := append(append(make([]int, 0, len(path)+1), path...), i)
		if step, ok, err := s.rewriteOnce(arg, childPath); err != nil || ok {
			return step, ok, err
		}
	}
	return Step{}, false, nil
}

// replaceAt returns root with the node at path replaced by with. root is not mutated
func replaceAt(root ir.Expr, path []int, with ir.Expr) ir.Expr {
	if len(path) == 0 {
		return with
	}
	op := root.(*ir.Operation)
	args := make([]ir.Expr, len(op.Args))
	copy(args, op.Args)
	args[path[0]] = replaceAt(args[path[0]], path[1:], with)
	return &ir.Operation{Symbol: op.Symbol, Args: args, T: op.T}
}

// ApplyOnce rewrites the outermost, leftmost node of expr that a rule of s matches
func ApplyOnce(expr ir.Expr, s *RuleSet) (ir.Expr, Step, bool, error) {
	step, ok, err := s.rewriteOnce(expr, nil)
	if err != nil || !ok {
		return expr, step, false, err
	}
	return replaceAt(expr, step.Path, step.After), step, true, nil
}
