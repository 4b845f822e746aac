package library

import (
	"github.com/cottand/rewrite/dsl"
	"github.com/cottand/rewrite/ir"
	"github.com/cottand/rewrite/rewrite"
)

const PairTypeName = "Pair"

func PairOf(fst, snd ir.Type) ir.Type { return ir.Applied(PairTypeName, fst, snd) }

var (
	NewPair = dsl.Declare("Pair.new", PairOf(t, u), rewrite.Scalar("fst", t), rewrite.Scalar("snd", u))
	Fst     = dsl.Declare("Pair.fst", t, rewrite.Scalar("p", PairOf(t, u)))
	Snd     = dsl.Declare("Pair.snd", u, rewrite.Scalar("p", PairOf(t, u)))

	Swap = dsl.Declare("Pair.swap", PairOf(u, t), rewrite.Scalar("p", PairOf(t, u))).
		Define(func(s *rewrite.Scope) ir.Expr {
			p := s.Get("p")
			return NewPair.Call(Snd.Call(p), Fst.Call(p))
		})
)

var pairParams = []rewrite.Param{rewrite.Scalar("a", t), rewrite.Scalar("b", u)}

var (
	FstOfPair = rewrite.MustRule("fst_of_pair", pairParams, func(s *rewrite.Scope) rewrite.Candidates {
		return rewrite.Single(Fst.Call(NewPair.Call(s.Get("a"), s.Get("b"))), s.Get("a"))
	})
	SndOfPair = rewrite.MustRule("snd_of_pair", pairParams, func(s *rewrite.Scope) rewrite.Candidates {
		return rewrite.Single(Snd.Call(NewPair.Call(s.Get("a"), s.Get("b"))), s.Get("b"))
	})
)
