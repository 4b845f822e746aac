package library

import (
	"github.com/cottand/rewrite/dsl"
	"github.com/cottand/rewrite/ir"
	"github.com/cottand/rewrite/rewrite"
)

var (
	Identity = dsl.Declare("identity", t, rewrite.Scalar("a", t))

	// Identity2 is defined through Identity, and its default rule rewrites it to a call of Identity
	Identity2 = dsl.Declare("identity2", t, rewrite.Scalar("a", t)).
			Define(func(s *rewrite.Scope) ir.Expr {
				return Identity.Call(s.Get("a"))
			})
)

var IdentityElim = rewrite.MustRule("identity_elim", []rewrite.Param{rewrite.Scalar("a", t)}, func(s *rewrite.Scope) rewrite.Candidates {
	return rewrite.Single(Identity.Call(s.Get("a")), s.Get("a"))
})
