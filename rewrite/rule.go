package rewrite

import (
	"fmt"
	"iter"
	"log/slog"

	"github.com/cottand/rewrite/internal/log"
	"github.com/cottand/rewrite/ir"
	"github.com/cottand/rewrite/rwerr"
	"github.com/cottand/rewrite/util"
	"github.com/hashicorp/go-set/v3"
)

// Param is a declared parameter of a rule or operation
type Param struct {
	Name string
	// Type is the type of the parameter, or the element type when Variadic
	Type     ir.Type
	Variadic bool
}

// Scalar declares a parameter standing for a single expression of type t
func Scalar(name string, t ir.Type) Param {
	return Param{Name: name, Type: t}
}

// Sequence declares a parameter standing for a run of arguments, each of type elem
func Sequence(name string, elem ir.Type) Param {
	return Param{Name: name, Type: elem, Variadic: true}
}

func (p Param) String() string {
	if p.Variadic {
		return "*" + p.Name + ": " + ir.TypeString(p.Type)
	}
	return p.Name + ": " + ir.TypeString(p.Type)
}

// Candidate is a pattern together with what a match of it rewrites to.
// Exactly one of Replacement and Thunk should be set
type Candidate struct {
	Pattern     ir.Expr
	Replacement ir.Expr
	// Thunk computes the replacement, and is only called after Pattern matched.
	// It may return nil to decline the match, in which case the next candidate is tried
	Thunk func() ir.Expr
}

// Candidates is the finite, ordered stream of alternatives a rule body produces.
// Bodies are re-invoked on every execution, so the stream must be restartable
type Candidates = iter.Seq[Candidate]

// Single is a rule body producing one candidate with a ready-built replacement
func Single(pattern, replacement ir.Expr) Candidates {
	return util.SingleIter(Candidate{Pattern: pattern, Replacement: replacement})
}

// Lazy is a rule body producing one candidate whose replacement is computed after a match
func Lazy(pattern ir.Expr, thunk func() ir.Expr) Candidates {
	return util.SingleIter(Candidate{Pattern: pattern, Thunk: thunk})
}

// Each produces the given candidates in order
func Each(candidates ...Candidate) Candidates {
	return func(yield func(Candidate) bool) {
		for _, c := range candidates {
			if !yield(c) {
				return
			}
		}
	}
}

// Concat tries the candidates of each body in turn
func Concat(bodies ...Candidates) Candidates {
	return util.ConcatIter(bodies...)
}

// Body builds the candidates of a rule from the wildcards in scope
type Body func(s *Scope) Candidates

// Rule is an immutable rewrite rule. It is safe to execute the same Rule concurrently
type Rule struct {
	name     string
	params   []Param
	result   ir.Type
	typeVars []*ir.TypeVar
	body     Body
	fresher  *Fresher
	logger   *slog.Logger
}

type RuleOption func(*Rule)

// Returns declares the result type of the rule. Its type variables
// are instantiated along with those of the parameters
func Returns(t ir.Type) RuleOption {
	return func(r *Rule) { r.result = t }
}

// WithFresher makes the rule draw identities from f instead of DefaultFresher
func WithFresher(f *Fresher) RuleOption {
	return func(r *Rule) { r.fresher = f }
}

func WithLogger(logger *slog.Logger) RuleOption {
	return func(r *Rule) { r.logger = logger }
}

var defaultLogger = ir.Logger(log.DefaultLogger).With("section", "rewrite")

// NewRule validates params and builds a Rule running body.
// Type variables in the parameter types (and in the result type, see Returns)
// get fresh identities on every execution
func NewRule(name string, params []Param, body Body, opts ...RuleOption) (*Rule, error) {
	r := &Rule{
		name:    name,
		params:  append([]Param{}, params...),
		body:    body,
		fresher: DefaultFresher,
		logger:  defaultLogger,
	}
	for _, opt := range opts {
		opt(r)
	}
	if err := ValidateParams(name, params); err != nil {
		return nil, err
	}
	if body == nil {
		return nil, rwerr.New(rwerr.NewInvalidParam{Rule: name, Reason: "rule has no body"})
	}
	types := make([]ir.Type, 0, len(params)+1)
	for _, p := range params {
		types = append(types, p.Type)
	}
	if r.result != nil {
		types = append(types, r.result)
	}
	r.typeVars = ir.FreeTypeVars(types...)
	r.logger = r.logger.With("rule", name)
	return r, nil
}

// MustRule is NewRule for package-level rule declarations; it panics on a malformed rule
func MustRule(name string, params []Param, body Body, opts ...RuleOption) *Rule {
	r, err := NewRule(name, params, body, opts...)
	if err != nil {
		panic(fmt.Sprintf("malformed rule %s: %v", name, err))
	}
	return r
}

// ValidateParams checks that every parameter has a name and a type, and that names are unique
func ValidateParams(owner string, params []Param) error {
	var errs *rwerr.Errors
	seen := set.New[string](len(params))
	for _, p := range params {
		switch {
		case p.Name == "":
			errs = errs.With(rwerr.New(rwerr.NewInvalidParam{Rule: owner, Name: p.Name, Reason: "empty parameter name"}))
		case p.Type == nil:
			errs = errs.With(rwerr.New(rwerr.NewInvalidParam{Rule: owner, Name: p.Name, Reason: "missing parameter type"}))
		case !seen.Insert(p.Name):
			errs = errs.With(rwerr.New(rwerr.NewDuplicateParam{Rule: owner, Name: p.Name}))
		}
	}
	return errs.Err()
}

func (r *Rule) Name() string { return r.name }

func (r *Rule) Params() []Param { return r.params }

// TypeVars are the type variables of the declaration, which get renamed on every execution
func (r *Rule) TypeVars() []*ir.TypeVar { return r.typeVars }

func (r *Rule) String() string {
	s := r.name + "("
	for i, p := range r.params {
		if i > 0 {
			s += ", "
		}
		s += p.String()
	}
	s += ")"
	if r.result != nil {
		s += " -> " + ir.TypeString(r.result)
	}
	return s
}
