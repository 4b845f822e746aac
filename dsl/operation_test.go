package dsl

import (
	"testing"

	"github.com/cottand/rewrite/ir"
	"github.com/cottand/rewrite/rewrite"
	"github.com/cottand/rewrite/rwerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	elem   = TypeParam("E")
	listOf = func(t ir.Type) ir.Type { return ir.Applied("List", t) }

	mk     = Declare("mk", listOf(elem), rewrite.Sequence("items", elem))
	head   = Declare("head", elem, rewrite.Scalar("l", listOf(elem)))
	plus   = Declare("plus", ir.IntType, rewrite.Scalar("a", ir.IntType), rewrite.Scalar("b", ir.IntType))
	around = Declare("around", ir.StringType,
		rewrite.Scalar("first", ir.IntType),
		rewrite.Sequence("middle", ir.StringType),
		rewrite.Scalar("last", ir.BoolType),
	)
)

func TestBuildInfersTypeArguments(t *testing.T) {
	tests := []struct {
		name     string
		build    func() ir.Expr
		expected ir.Type
	}{
		{"ints", func() ir.Expr { return mk.Call(ir.Lit(1), ir.Lit(2)) }, listOf(ir.IntType)},
		{"strings", func() ir.Expr { return mk.Call(ir.Lit("a")) }, listOf(ir.StringType)},
		{"explicit empty", func() ir.Expr { return mk.With(ir.BoolType).Call() }, listOf(ir.BoolType)},
		{"nested", func() ir.Expr { return mk.Call(mk.Call(ir.Lit(1))) }, listOf(listOf(ir.IntType))},
		{"through result", func() ir.Expr { return head.Call(mk.Call(ir.Lit(1.5))) }, ir.FloatType},
		{"monomorphic", func() ir.Expr { return plus.Call(ir.Lit(1), ir.Lit(2)) }, ir.IntType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := tt.build()
			assert.True(t, ir.TypesEqual(tt.expected, e.Type()), ir.TypeString(e.Type()))
		})
	}
}

func TestBuildAcceptsWildcardsOfDeclaredTypes(t *testing.T) {
	v := TypeParam("V")
	x := &ir.Wildcard{ID: 1, Declared: v, NameHint: "x"}
	xs := &ir.Wildcard{ID: 2, Declared: v, Variadic: true, NameHint: "xs"}

	e, err := mk.Build(x, xs)
	require.NoError(t, err)
	assert.True(t, ir.TypesEqual(listOf(v), e.Type()))

	e, err = around.Build(ir.Lit(1), &ir.Wildcard{ID: 3, Declared: ir.StringType, Variadic: true}, ir.Lit(true))
	require.NoError(t, err)
	assert.Len(t, e.(*ir.Operation).Args, 3)
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		op   *Operation
		args []ir.Expr
		code rwerr.ErrCode
	}{
		{"too few", plus, []ir.Expr{ir.Lit(1)}, rwerr.ArityMismatch},
		{"too many", plus, []ir.Expr{ir.Lit(1), ir.Lit(2), ir.Lit(3)}, rwerr.ArityMismatch},
		{"too few around a sequence", around, []ir.Expr{ir.Lit(1)}, rwerr.ArityMismatch},
		{"wrong type", plus, []ir.Expr{ir.Lit(1), ir.Lit("2")}, rwerr.CallTypeMismatch},
		{"inconsistent type argument", mk, []ir.Expr{ir.Lit(1), ir.Lit("2")}, rwerr.CallTypeMismatch},
		{"wrong type in sequence", around, []ir.Expr{ir.Lit(1), ir.Lit(2), ir.Lit(true)}, rwerr.CallTypeMismatch},
		{"nil argument", plus, []ir.Expr{ir.Lit(1), nil}, rwerr.CallTypeMismatch},
		{"uninferred", mk, nil, rwerr.UninferredTypeParam},
		{"type argument count", mk.With(ir.IntType, ir.IntType), []ir.Expr{ir.Lit(1)}, rwerr.TypeArgCount},
		{"explicit type argument", mk.With(ir.StringType), []ir.Expr{ir.Lit(1)}, rwerr.CallTypeMismatch},
		{
			"variadic wildcard for a scalar",
			plus,
			[]ir.Expr{ir.Lit(1), &ir.Wildcard{ID: 1, Declared: ir.IntType, Variadic: true}},
			rwerr.MisplacedVariadic,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := tt.op.Build(tt.args...)
			assert.Nil(t, e)
			assert.Equal(t, tt.code, rwerr.CodeOf(err), "%v", err)
		})
	}
	assert.Panics(t, func() { plus.Call() })
}

func TestNewOperationRejectsMalformedSignatures(t *testing.T) {
	_, err := NewOperation("two", ir.IntType, rewrite.Sequence("a", ir.IntType), rewrite.Sequence("b", ir.IntType))
	assert.Equal(t, rwerr.MultipleVariadic, rwerr.CodeOf(err))

	_, err = NewOperation("dup", ir.IntType, rewrite.Scalar("a", ir.IntType), rewrite.Scalar("a", ir.IntType))
	assert.Equal(t, rwerr.DuplicateParam, rwerr.CodeOf(err))

	_, err = NewOperation("noResult", nil)
	assert.Equal(t, rwerr.InvalidParam, rwerr.CodeOf(err))
}

func TestDefine(t *testing.T) {
	twice := Declare("twice", ir.IntType, rewrite.Scalar("a", ir.IntType))
	_, _, ok := twice.Body()
	assert.False(t, ok)

	twice.Define(func(s *rewrite.Scope) ir.Expr { return plus.Call(s.Get("a"), s.Get("a")) })
	body, placeholders, ok := twice.Body()
	require.True(t, ok)
	require.Len(t, placeholders, 1)
	assert.True(t, ir.Equal(plus.Call(placeholders[0], placeholders[0]), body))

	wrong := Declare("wrong", ir.StringType, rewrite.Scalar("a", ir.IntType))
	assert.Panics(t, func() {
		wrong.Define(func(s *rewrite.Scope) ir.Expr { return s.Get("a") })
	})

	// a generic body may not pick a type argument for its own type parameters
	generic := Declare("generic", listOf(elem), rewrite.Scalar("a", elem))
	assert.Panics(t, func() {
		generic.Define(func(s *rewrite.Scope) ir.Expr { return mk.Call(ir.Lit(1)) })
	})
}

func TestOperationString(t *testing.T) {
	assert.Equal(t, "plus(a: Int, b: Int) -> Int", plus.String())
	assert.Equal(t, "around(first: Int, *middle: String, last: Bool) -> String", around.String())
	assert.Contains(t, mk.String(), "*items: 'E")
}

func TestEnv(t *testing.T) {
	env := NewEnv(plus, mk)
	op, ok := env.Lookup("plus")
	assert.True(t, ok)
	assert.Same(t, plus, op)
	_, ok = env.Lookup("head")
	assert.False(t, ok)

	arity, ok := env.TypeArity(ir.IntTypeName)
	assert.True(t, ok)
	assert.Zero(t, arity)
	_, ok = env.TypeArity("List")
	assert.False(t, ok)

	other := NewEnv(head)
	other.AddType("List", 1)
	merged := env.Merge(other)
	arity, ok = merged.TypeArity("List")
	assert.True(t, ok)
	assert.Equal(t, 1, arity)

	names := make([]string, 0)
	for _, op := range merged.Operations() {
		names = append(names, string(op.Symbol()))
	}
	assert.Equal(t, []string{"head", "mk", "plus"}, names)
	// merging leaves the originals alone
	_, ok = env.Lookup("head")
	assert.False(t, ok)
}
