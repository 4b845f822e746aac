package rewrite

import (
	"testing"

	"github.com/cottand/rewrite/ir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	numberType = ir.Applied("Number")
	fresher    = NewFresher()
)

func listOf(t ir.Type) ir.Type { return ir.Applied("List", t) }

func fromInt(i int) ir.Expr { return ir.NewOperation("from_int", numberType, ir.Lit(i)) }

func add(l, r ir.Expr) ir.Expr { return ir.NewOperation("add", numberType, l, r) }

func create(elem ir.Type, items ...ir.Expr) ir.Expr {
	return ir.NewOperation("List.create", listOf(elem), items...)
}

func TestUnifyReflexive(t *testing.T) {
	tv := fresher.TypeVar("T")
	w := fresher.Wildcard("w", ir.IntType, false)
	xs := fresher.Wildcard("xs", ir.IntType, true)
	exprs := []ir.Expr{
		ir.Lit(1),
		ir.Lit("s"),
		fromInt(1),
		add(fromInt(1), add(fromInt(2), fromInt(3))),
		create(ir.IntType),
		create(tv, ir.LitOf("x", tv)),
		ir.NewOperation("f", ir.IntType, w, w),
		ir.NewOperation("f", ir.IntType, xs),
		ir.NewOperation("f", ir.IntType, w, xs),
		ir.NewOperation("f", ir.IntType, xs, ir.Lit(1)),
	}
	for _, e := range exprs {
		t.Run(ir.ExprString(e), func(t *testing.T) {
			b, ok := Unify(e, e, NewBindings())
			assert.True(t, ok)
			assert.Zero(t, b.Len())
		})
	}
}

func TestUnifyVariadic(t *testing.T) {
	elem := fresher.TypeVar("T")
	xs := fresher.Wildcard("xs", elem, true)
	y := fresher.Wildcard("y", elem, false)
	pattern := create(elem, xs, y)

	a, b, c := ir.Lit(1), ir.Lit(2), ir.Lit(3)
	tests := []struct {
		name  string
		args  []ir.Expr
		ok    bool
		wantX []ir.Expr
		wantY ir.Expr
	}{
		{"three", []ir.Expr{a, b, c}, true, []ir.Expr{a, b}, c},
		{"one", []ir.Expr{a}, true, []ir.Expr{}, a},
		{"none", nil, false, nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bindings, ok := Unify(pattern, create(ir.IntType, tt.args...), NewBindings())
			require.Equal(t, tt.ok, ok)
			if !ok {
				return
			}
			gotX, ok := bindings.Seq(xs)
			require.True(t, ok)
			assert.True(t, ir.EqualSlices(tt.wantX, gotX), "xs = %v", gotX)
			gotY, ok := bindings.Expr(y)
			require.True(t, ok)
			assert.True(t, ir.Equal(tt.wantY, gotY))
			bound, ok := bindings.Type(elem)
			require.True(t, ok)
			assert.True(t, ir.TypesEqual(ir.IntType, bound))
		})
	}
}

func TestUnifyPrefixAndSuffix(t *testing.T) {
	first := fresher.Wildcard("first", ir.IntType, false)
	middle := fresher.Wildcard("middle", ir.IntType, true)
	last := fresher.Wildcard("last", ir.IntType, false)
	pattern := create(ir.IntType, first, middle, last)

	b, ok := Unify(pattern, create(ir.IntType, ir.Lit(1), ir.Lit(2), ir.Lit(3), ir.Lit(4)), NewBindings())
	require.True(t, ok)
	gotFirst, _ := b.Expr(first)
	gotMiddle, _ := b.Seq(middle)
	gotLast, _ := b.Expr(last)
	assert.True(t, ir.Equal(ir.Lit(1), gotFirst))
	assert.True(t, ir.EqualSlices([]ir.Expr{ir.Lit(2), ir.Lit(3)}, gotMiddle))
	assert.True(t, ir.Equal(ir.Lit(4), gotLast))

	_, ok = Unify(pattern, create(ir.IntType, ir.Lit(1)), NewBindings())
	assert.False(t, ok)
}

func TestUnifyFixedArity(t *testing.T) {
	x := fresher.Wildcard("x", numberType, false)
	y := fresher.Wildcard("y", numberType, false)
	_, ok := Unify(add(x, y), ir.NewOperation("add", numberType, fromInt(1)), NewBindings())
	assert.False(t, ok)
	_, ok = Unify(add(x, y), add(fromInt(1), fromInt(2)), NewBindings())
	assert.True(t, ok)
}

func TestUnifyTypeVarConsistency(t *testing.T) {
	elem := fresher.TypeVar("T")
	ls := fresher.Wildcard("ls", elem, true)
	rs := fresher.Wildcard("rs", elem, true)
	pattern := ir.NewOperation("List.concat", listOf(elem), create(elem, ls), create(elem, rs))

	concat := func(result ir.Type, l, r ir.Expr) ir.Expr { return ir.NewOperation("List.concat", result, l, r) }

	b, ok := Unify(pattern, concat(listOf(ir.IntType), create(ir.IntType, ir.Lit(1)), create(ir.IntType, ir.Lit(2))), NewBindings())
	require.True(t, ok)
	bound, _ := b.Type(elem)
	assert.True(t, ir.TypesEqual(ir.IntType, bound))

	_, ok = Unify(pattern, concat(listOf(ir.IntType), create(ir.IntType, ir.Lit(1)), create(ir.StringType, ir.Lit("a"))), NewBindings())
	assert.False(t, ok)
}

func TestUnifyRepeatedWildcard(t *testing.T) {
	x := fresher.Wildcard("x", numberType, false)
	pattern := add(x, x)

	_, ok := Unify(pattern, add(fromInt(1), fromInt(1)), NewBindings())
	assert.True(t, ok)
	_, ok = Unify(pattern, add(fromInt(1), fromInt(2)), NewBindings())
	assert.False(t, ok)
}

func TestUnifyLiteralsAndTypes(t *testing.T) {
	tests := []struct {
		name    string
		pattern ir.Expr
		target  ir.Expr
		ok      bool
	}{
		{"equal literals", ir.Lit(1), ir.Lit(1), true},
		{"different values", ir.Lit(1), ir.Lit(2), false},
		{"different types", ir.LitOf(1, numberType), ir.Lit(1), false},
		{"literal against operation", ir.Lit(1), fromInt(1), false},
		{"wildcard of wrong type", fresher.Wildcard("s", ir.StringType, false), ir.Lit(1), false},
		{"wildcard of any type", fresher.Wildcard("s", ir.Any, false), ir.Lit(1), true},
		{"different symbols", add(fromInt(1), fromInt(1)), ir.NewOperation("mul", numberType, fromInt(1), fromInt(1)), false},
		{"lone variadic", fresher.Wildcard("xs", ir.IntType, true), ir.Lit(1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := Unify(tt.pattern, tt.target, NewBindings())
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestUnifyTypeWith(t *testing.T) {
	bindable := fresher.TypeVar("X")
	rigid := fresher.TypeVar("R")
	only := func(v *ir.TypeVar) bool { return v.ID == bindable.ID }

	b, ok := UnifyTypeWith(listOf(bindable), listOf(ir.IntType), NewBindings(), only)
	require.True(t, ok)
	assert.True(t, ir.TypesEqual(listOf(ir.IntType), b.Resolve(listOf(bindable))))

	_, ok = UnifyTypeWith(rigid, ir.IntType, NewBindings(), only)
	assert.False(t, ok)
	_, ok = UnifyTypeWith(rigid, rigid, NewBindings(), only)
	assert.True(t, ok)
	_, ok = UnifyType(bindable, listOf(bindable), NewBindings())
	assert.False(t, ok, "a variable cannot be bound to a type containing itself")
}

func TestBindingsArePersistent(t *testing.T) {
	x := fresher.Wildcard("x", numberType, false)
	empty := NewBindings()
	bound, ok := empty.BindExpr(x, fromInt(1))
	require.True(t, ok)

	_, found := empty.Expr(x)
	assert.False(t, found)
	_, ok = bound.BindExpr(x, fromInt(2))
	assert.False(t, ok)
	_, ok = bound.BindExpr(x, fromInt(1))
	assert.True(t, ok)
}
