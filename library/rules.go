package library

import (
	"slices"

	"github.com/cottand/rewrite/dsl"
	"github.com/cottand/rewrite/rewrite"
	"github.com/cottand/rewrite/strategy"
	"github.com/hashicorp/go-set/v3"
	"github.com/pkg/errors"
)

const (
	GroupArith    = "arith"
	GroupLists    = "lists"
	GroupPairs    = "pairs"
	GroupGeneric  = "generic"
	GroupDefaults = "defaults"
)

// Groups lists the rule groups in the order their rules are tried
var Groups = []string{GroupArith, GroupLists, GroupPairs, GroupGeneric, GroupDefaults}

func groupRules(group string) ([]*rewrite.Rule, error) {
	switch group {
	case GroupArith:
		return []*rewrite.Rule{AddInts, MulInts, AddZero, MulOne, ParseInt}, nil
	case GroupLists:
		return []*rewrite.Rule{ConcatLists, FirstOfList}, nil
	case GroupPairs:
		return []*rewrite.Rule{FstOfPair, SndOfPair}, nil
	case GroupGeneric:
		return []*rewrite.Rule{IdentityElim}, nil
	case GroupDefaults:
		return DefaultRules()
	default:
		return nil, errors.Errorf("unknown rule group %q, expected one of %v", group, Groups)
	}
}

// Operations returns every operation of the library
func Operations() []*dsl.Operation {
	return []*dsl.Operation{
		FromInt, FromStr, Add, Mul, Double,
		Create, Concat, First,
		NewPair, Fst, Snd, Swap,
		Identity, Identity2,
	}
}

// DefaultRules derives the default rule of every operation that has a body
func DefaultRules() ([]*rewrite.Rule, error) {
	var rules []*rewrite.Rule
	for _, op := range Operations() {
		if _, _, ok := op.Body(); !ok {
			continue
		}
		r, err := rewrite.DefaultRule(op, rewrite.DefaultRuleOptions{Cache: true})
		if err != nil {
			return nil, errors.Wrapf(err, "could not derive default rule of %s", op.Symbol())
		}
		rules = append(rules, r)
	}
	return rules, nil
}

// RuleSet collects the rules of groups, or of every group when none is given
func RuleSet(groups ...string) (*strategy.RuleSet, error) {
	if len(groups) == 0 {
		groups = Groups
	}
	wanted := set.From(groups)
	for _, group := range wanted.Slice() {
		if !slices.Contains(Groups, group) {
			return nil, errors.Errorf("unknown rule group %q, expected one of %v", group, Groups)
		}
	}
	rs, err := strategy.NewRuleSet("library")
	if err != nil {
		return nil, err
	}
	for _, group := range Groups {
		if !wanted.Contains(group) {
			continue
		}
		rules, err := groupRules(group)
		if err != nil {
			return nil, err
		}
		if err := rs.Add(rules...); err != nil {
			return nil, err
		}
	}
	return rs, nil
}

// Env resolves the names of every operation and type of the library
func Env() *dsl.Env {
	env := dsl.NewEnv(Operations()...)
	env.AddType(NumberTypeName, 0)
	env.AddType(ListTypeName, 1)
	env.AddType(PairTypeName, 2)
	return env
}
