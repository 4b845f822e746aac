package library

import (
	"github.com/cottand/rewrite/dsl"
	"github.com/cottand/rewrite/ir"
	"github.com/cottand/rewrite/rewrite"
)

const ListTypeName = "List"

var (
	t = dsl.TypeParam("T")
	u = dsl.TypeParam("U")
)

func ListOf(elem ir.Type) ir.Type { return ir.Applied(ListTypeName, elem) }

var (
	Create = dsl.Declare("List.create", ListOf(t), rewrite.Sequence("items", t))
	Concat = dsl.Declare("List.concat", ListOf(t), rewrite.Scalar("l", ListOf(t)), rewrite.Scalar("r", ListOf(t)))
	First  = dsl.Declare("List.first", t, rewrite.Scalar("l", ListOf(t)))
)

var (
	// ConcatLists joins two literal lists of the same element type
	ConcatLists = rewrite.MustRule("concat_lists",
		[]rewrite.Param{rewrite.Sequence("ls", t), rewrite.Sequence("rs", t)},
		func(s *rewrite.Scope) rewrite.Candidates {
			ls, rs := s.Seq("ls"), s.Seq("rs")
			return rewrite.Single(
				Concat.Call(Create.Call(ls...), Create.Call(rs...)),
				Create.Call(append(append([]ir.Expr{}, ls...), rs...)...),
			)
		})

	FirstOfList = rewrite.MustRule("first_of_list",
		[]rewrite.Param{rewrite.Scalar("x", t), rewrite.Sequence("rest", t)},
		func(s *rewrite.Scope) rewrite.Candidates {
			x := s.Get("x")
			return rewrite.Single(First.Call(Create.Call(append([]ir.Expr{x}, s.Seq("rest")...)...)), x)
		})
)
