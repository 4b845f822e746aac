package strategy_test

import (
	"testing"

	"github.com/cottand/rewrite/ir"
	"github.com/cottand/rewrite/library"
	"github.com/cottand/rewrite/rewrite"
	"github.com/cottand/rewrite/rwerr"
	"github.com/cottand/rewrite/strategy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var numberParams = []rewrite.Param{
	rewrite.Scalar("a", library.NumberType),
	rewrite.Scalar("b", library.NumberType),
}

// commute never terminates on its own
var commute = rewrite.MustRule("commute", numberParams, func(s *rewrite.Scope) rewrite.Candidates {
	return rewrite.Single(library.Add.Call(s.Get("a"), s.Get("b")), library.Add.Call(s.Get("b"), s.Get("a")))
})

// grow rewrites any number to a bigger tree
var grow = rewrite.MustRule("grow", numberParams[:1], func(s *rewrite.Scope) rewrite.Candidates {
	return rewrite.Single(s.Get("a"), library.Add.Call(s.Get("a"), s.Get("a")))
})

func libraryRules(t *testing.T, groups ...string) *strategy.RuleSet {
	rs, err := library.RuleSet(groups...)
	require.NoError(t, err)
	return rs
}

func TestSimplify(t *testing.T) {
	str := func(s string) ir.Expr { return library.FromStr.Call(ir.Lit(s)) }
	tests := []struct {
		name     string
		expr     ir.Expr
		expected ir.Expr
		labels   []string
	}{
		{
			"innermost first when the root does not match",
			library.Add.Call(library.Int(1), library.Mul.Call(library.Int(2), library.Int(3))),
			library.Int(7),
			[]string{"mul_ints", "add_ints"},
		},
		{
			"second candidate",
			library.Add.Call(str("x"), library.Int(0)),
			str("x"),
			[]string{"add_zero[1]"},
		},
		{
			"default rules inline definitions",
			library.Double.Call(library.Add.Call(str("12"), library.Int(0))),
			library.Int(24),
			[]string{"double/default", "add_zero[1]", "parse_int", "add_zero[1]", "parse_int", "add_ints"},
		},
		{
			"nothing to do",
			str("x"),
			str("x"),
			[]string{},
		},
	}
	rules := libraryRules(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, trace, err := strategy.Simplify(tt.expr, rules, strategy.Options{})
			require.NoError(t, err)
			assert.True(t, ir.Equal(tt.expected, result), "got %s", ir.ExprString(result))
			assert.Equal(t, tt.labels, trace.Labels())
		})
	}
}

func TestSimplifyRecordsPaths(t *testing.T) {
	expr := library.Add.Call(library.Int(1), library.Mul.Call(library.Int(2), library.Int(3)))
	_, trace, err := strategy.Simplify(expr, libraryRules(t, library.GroupArith), strategy.Options{})
	require.NoError(t, err)
	require.Len(t, trace, 2)
	assert.Equal(t, []int{1}, trace[0].Path)
	assert.True(t, ir.Equal(expr.(*ir.Operation).Args[1], trace[0].Before))
	assert.Empty(t, trace[1].Path)
	assert.Contains(t, trace.String(), "mul_ints at [1]: mul(from_int(2), from_int(3)) => from_int(6)")
}

func TestSimplifyDetectsCycles(t *testing.T) {
	rules := strategy.MustRuleSet("commuting", commute)
	expr := library.Add.Call(library.Int(1), library.Int(2))
	result, trace, err := strategy.Simplify(expr, rules, strategy.Options{})
	assert.Equal(t, rwerr.RewriteCycle, rwerr.CodeOf(err))
	assert.Len(t, trace, 2)
	assert.True(t, ir.Equal(expr, result))
}

func TestSimplifyRunsOutOfFuel(t *testing.T) {
	rules := strategy.MustRuleSet("growing", grow)
	_, trace, err := strategy.Simplify(library.Int(1), rules, strategy.Options{Fuel: 5})
	assert.Equal(t, rwerr.OutOfFuel, rwerr.CodeOf(err))
	assert.Len(t, trace, 5)
}

func TestSimplifyReportsMalformedRules(t *testing.T) {
	broken := rewrite.MustRule("broken", numberParams, func(s *rewrite.Scope) rewrite.Candidates {
		return rewrite.Single(library.Double.Call(s.Get("a")), s.Get("b"))
	})
	rules := strategy.MustRuleSet("broken", broken)
	_, _, err := strategy.Simplify(library.Mul.Call(library.Int(1), library.Double.Call(library.Int(2))), rules, strategy.Options{})
	assert.Error(t, err)
	assert.Equal(t, rwerr.UnboundWildcard, rwerr.CodeOf(err))
	assert.Contains(t, err.Error(), "rule broken")
}

func TestApplyOnlyAtRoot(t *testing.T) {
	rules := libraryRules(t, library.GroupArith)
	inner := library.Add.Call(library.FromStr.Call(ir.Lit("a")), library.Add.Call(library.Int(1), library.Int(1)))

	_, ok, err := rules.Apply(inner)
	assert.NoError(t, err)
	assert.False(t, ok)

	result, step, ok, err := strategy.ApplyOnce(inner, rules)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "add_ints", step.Label())
	assert.Equal(t, []int{1}, step.Path)
	assert.True(t, ir.Equal(library.Add.Call(library.FromStr.Call(ir.Lit("a")), library.Int(2)), result))
}

func TestRuleSetNames(t *testing.T) {
	_, err := strategy.NewRuleSet("dup", commute, commute)
	assert.Error(t, err)

	first := strategy.MustRuleSet("first", commute, library.AddInts)
	assert.Error(t, first.Add(library.AddInts))
	assert.Equal(t, 2, first.Len(), "a failed Add leaves the set unchanged")

	second := strategy.MustRuleSet("second", grow)
	union, err := first.Union("both", second)
	require.NoError(t, err)
	assert.Equal(t, "both", union.Name())
	assert.Equal(t, []string{"add_ints", "commute", "grow"}, union.Names())
	rules := union.Rules()
	assert.Equal(t, "commute", rules[0].Name())
	assert.Equal(t, "grow", rules[2].Name())

	_, err = union.Union("again", second)
	assert.Error(t, err)
}

func TestStepLabel(t *testing.T) {
	assert.Equal(t, "r", strategy.Step{Rule: "r"}.Label())
	assert.Equal(t, "r[2]", strategy.Step{Rule: "r", Candidate: 2}.Label())
}
