// Package strategy decides where and in which order rules are applied to an expression tree
package strategy

import (
	"fmt"
	"slices"

	"github.com/cottand/rewrite/ir"
	"github.com/cottand/rewrite/rewrite"
	"github.com/hashicorp/go-set/v3"
	"github.com/pkg/errors"
)

// RuleSet is a named, ordered collection of rules with distinct names.
// Earlier rules take precedence
type RuleSet struct {
	name  string
	rules []*rewrite.Rule
	names *set.Set[string]
}

func NewRuleSet(name string, rules ...*rewrite.Rule) (*RuleSet, error) {
	s := &RuleSet{name: name, names: set.New[string](len(rules))}
	if err := s.Add(rules...); err != nil {
		return nil, err
	}
	return s, nil
}

func MustRuleSet(name string, rules ...*rewrite.Rule) *RuleSet {
	s, err := NewRuleSet(name, rules...)
	if err != nil {
		panic(err)
	}
	return s
}

// Add appends rules to s. It fails without adding anything if a name is taken
func (s *RuleSet) Add(rules ...*rewrite.Rule) error {
	incoming := set.New[string](len(rules))
	for _, r := range rules {
		if s.names.Contains(r.Name()) || !incoming.Insert(r.Name()) {
			return errors.Errorf("rule set %s already has a rule named %s", s.name, r.Name())
		}
	}
	s.rules = append(s.rules, rules...)
	s.names.InsertSet(incoming)
	return nil
}

// Union returns a new RuleSet with the rules of s followed by those of others
func (s *RuleSet) Union(name string, others ...*RuleSet) (*RuleSet, error) {
	union, err := NewRuleSet(name, s.rules...)
	if err != nil {
		return nil, err
	}
	for _, other := range others {
		if err := union.Add(other.rules...); err != nil {
			return nil, errors.Wrapf(err, "could not merge %s into %s", other.name, name)
		}
	}
	return union, nil
}

func (s *RuleSet) Name() string { return s.name }

func (s *RuleSet) Rules() []*rewrite.Rule { return slices.Clone(s.rules) }

// Names returns the rule names, sorted
func (s *RuleSet) Names() []string {
	names := s.names.Slice()
	slices.Sort(names)
	return names
}

func (s *RuleSet) Len() int { return len(s.rules) }

// Step records one application of a rule
type Step struct {
	Rule string
	// Candidate is the index of the candidate of the rule that matched
	Candidate int
	// Path leads from the root to the rewritten node, as argument indices
	Path   []int
	Before ir.Expr
	After  ir.Expr
}

// Label names the rule that was applied, and the candidate when it was not the first
func (s Step) Label() string {
	if s.Candidate == 0 {
		return s.Rule
	}
	return fmt.Sprintf("%s[%d]", s.Rule, s.Candidate)
}

func (s Step) String() string {
	return fmt.Sprintf("%s at %v: %s => %s", s.Label(), s.Path, ir.ExprString(s.Before), ir.ExprString(s.After))
}

// Apply rewrites expr with the first rule of s that matches it, at the root only
func (s *RuleSet) Apply(expr ir.Expr) (Step, bool, error) {
	for _, r := range s.rules {
		m, err := r.Match(expr)
		if err != nil {
			return Step{}, false, errors.Wrapf(err, "rule %s", r.Name())
		}
		if m == nil {
			continue
		}
		return Step{Rule: r.Name(), Candidate: m.Candidate, Before: expr, After: m.Result}, true, nil
	}
	return Step{}, false, nil
}
