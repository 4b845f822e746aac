// Package library declares a small set of operations and rules over them:
// arithmetic on numbers, generic lists and pairs, and identity functions
package library

import (
	"strconv"

	"github.com/cottand/rewrite/dsl"
	"github.com/cottand/rewrite/ir"
	"github.com/cottand/rewrite/rewrite"
)

const NumberTypeName = "Number"

var NumberType = ir.Applied(NumberTypeName)

var (
	FromInt = dsl.Declare("from_int", NumberType, rewrite.Scalar("i", ir.IntType))
	FromStr = dsl.Declare("from_str", NumberType, rewrite.Scalar("s", ir.StringType))
	Add     = dsl.Declare("add", NumberType, rewrite.Scalar("l", NumberType), rewrite.Scalar("r", NumberType))
	Mul     = dsl.Declare("mul", NumberType, rewrite.Scalar("l", NumberType), rewrite.Scalar("r", NumberType))

	Double = dsl.Declare("double", NumberType, rewrite.Scalar("a", NumberType)).
		Define(func(s *rewrite.Scope) ir.Expr {
			return Add.Call(s.Get("a"), s.Get("a"))
		})
)

// Int builds from_int(i)
func Int(i int) ir.Expr { return FromInt.Call(ir.Lit(i)) }

var intParams = []rewrite.Param{rewrite.Scalar("a", ir.IntType), rewrite.Scalar("b", ir.IntType)}

// foldInts rewrites op(from_int(a), from_int(b)) to from_int(fold(a, b))
func foldInts(name string, op *dsl.Operation, fold func(a, b int) int) *rewrite.Rule {
	return rewrite.MustRule(name, intParams, func(s *rewrite.Scope) rewrite.Candidates {
		pattern := op.Call(FromInt.Call(s.Get("a")), FromInt.Call(s.Get("b")))
		return rewrite.Lazy(pattern, func() ir.Expr {
			a, aOk := s.Value("a")
			b, bOk := s.Value("b")
			ai, aInt := a.(int)
			bi, bInt := b.(int)
			if !aOk || !bOk || !aInt || !bInt {
				return nil
			}
			return Int(fold(ai, bi))
		})
	})
}

var (
	AddInts = foldInts("add_ints", Add, func(a, b int) int { return a + b })
	MulInts = foldInts("mul_ints", Mul, func(a, b int) int { return a * b })

	// AddZero drops a zero on either side of an addition
	AddZero = rewrite.MustRule("add_zero", []rewrite.Param{rewrite.Scalar("x", NumberType)}, func(s *rewrite.Scope) rewrite.Candidates {
		x := s.Get("x")
		return rewrite.Each(
			rewrite.Candidate{Pattern: Add.Call(Int(0), x), Replacement: x},
			rewrite.Candidate{Pattern: Add.Call(x, Int(0)), Replacement: x},
		)
	})

	MulOne = rewrite.MustRule("mul_one", []rewrite.Param{rewrite.Scalar("x", NumberType)}, func(s *rewrite.Scope) rewrite.Candidates {
		x := s.Get("x")
		return func(yield func(rewrite.Candidate) bool) {
			if !yield(rewrite.Candidate{Pattern: Mul.Call(Int(1), x), Replacement: x}) {
				return
			}
			yield(rewrite.Candidate{Pattern: Mul.Call(x, Int(1)), Replacement: x})
		}
	})

	// ParseInt turns from_str of a decimal integer into from_int. Other strings are left alone
	ParseInt = rewrite.MustRule("parse_int", []rewrite.Param{rewrite.Scalar("s", ir.StringType)}, func(s *rewrite.Scope) rewrite.Candidates {
		return rewrite.Lazy(FromStr.Call(s.Get("s")), func() ir.Expr {
			str, ok := s.Value("s")
			if !ok {
				return nil
			}
			i, err := strconv.Atoi(str.(string))
			if err != nil {
				return nil
			}
			return Int(i)
		})
	})
)
