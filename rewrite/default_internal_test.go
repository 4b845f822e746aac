package rewrite

import (
	"testing"

	"github.com/cottand/rewrite/ir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// wrapDef is wrap[T](a: T) -> Box[T] = box(a)
type wrapDef struct {
	tv          *ir.TypeVar
	placeholder *ir.Wildcard
}

func newWrapDef() *wrapDef {
	tv := fresher.TypeVar("T")
	return &wrapDef{tv: tv, placeholder: fresher.Wildcard("a", tv, false)}
}

func boxOf(t ir.Type) ir.Type { return ir.Applied("Box", t) }

func (d *wrapDef) Symbol() ir.Symbol { return "wrap" }
func (d *wrapDef) Params() []Param   { return []Param{Scalar("a", d.tv)} }
func (d *wrapDef) Result() ir.Type   { return boxOf(d.tv) }
func (d *wrapDef) Body() (ir.Expr, []*ir.Wildcard, bool) {
	return ir.NewOperation("box", boxOf(d.tv), d.placeholder), []*ir.Wildcard{d.placeholder}, true
}

func wrapCall(arg ir.Expr) ir.Expr {
	return ir.NewOperation("wrap", boxOf(arg.Type()), arg)
}

func TestDefaultRuleCacheIsPerInstantiation(t *testing.T) {
	rule, err := DefaultRule(newWrapDef(), DefaultRuleOptions{Cache: true, Fresher: fresher})
	require.NoError(t, err)

	for _, arg := range []ir.Expr{ir.Lit(1), ir.Lit("s"), ir.Lit(2), ir.Lit("t"), ir.Lit(true)} {
		t.Run(ir.ExprString(arg), func(t *testing.T) {
			result, ok, err := rule.Execute(wrapCall(arg))
			require.NoError(t, err)
			require.True(t, ok)
			expected := ir.NewOperation("box", boxOf(arg.Type()), arg)
			assert.True(t, ir.Equal(expected, result), ir.ExprStringTyped(result))
		})
	}
}

func TestExpansionCache(t *testing.T) {
	def := newWrapDef()
	body, _, _ := def.Body()
	exp := &expander{
		body:  body,
		vars:  []*ir.TypeVar{def.tv},
		cache: &expansionCache{buckets: make(map[uint64][]expansion)},
	}

	ints := exp.expand([]ir.Type{ir.IntType})
	assert.True(t, ir.TypesEqual(boxOf(ir.IntType), ints.Type()))
	assert.Same(t, ints, exp.expand([]ir.Type{ir.Applied(ir.IntTypeName)}))

	strs := exp.expand([]ir.Type{ir.StringType})
	assert.True(t, ir.TypesEqual(boxOf(ir.StringType), strs.Type()))
	assert.Equal(t, 2, exp.cache.size())

	generic := fresher.TypeVar("G")
	exp.expand([]ir.Type{generic})
	assert.Equal(t, 2, exp.cache.size(), "expansions over type variables are not cached")
}
