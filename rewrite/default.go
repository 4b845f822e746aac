package rewrite

import (
	"encoding/binary"
	"hash/fnv"
	"log/slog"
	"sync"

	"github.com/cottand/rewrite/ir"
	"github.com/cottand/rewrite/rwerr"
)

// Definition is an operation whose behaviour was declared as a body built out of other
// operations, with placeholders standing for its own parameters
type Definition interface {
	Symbol() ir.Symbol
	Params() []Param
	Result() ir.Type
	// Body returns the recorded body and the placeholder of each parameter, in order.
	// It reports false for operations without a body
	Body() (body ir.Expr, placeholders []*ir.Wildcard, ok bool)
}

type DefaultRuleOptions struct {
	// Cache memoizes the body expansion for each distinct binding of
	// the type variables of the operation
	Cache   bool
	Fresher *Fresher
	Logger  *slog.Logger
}

// DefaultRuleName is the name of the rule DefaultRule derives for symbol
func DefaultRuleName(symbol ir.Symbol) string {
	return string(symbol) + "/default"
}

// DefaultRule derives a rule that inlines calls to def: a call with any arguments
// is rewritten to the body of def, with the arguments in place of its parameters
// and its type variables resolved to what the call was instantiated with
func DefaultRule(def Definition, opts DefaultRuleOptions) (*Rule, error) {
	body, placeholders, ok := def.Body()
	if !ok || body == nil {
		return nil, rwerr.New(rwerr.NewNoBody{Operation: string(def.Symbol())})
	}
	params := def.Params()
	if len(placeholders) != len(params) {
		return nil, rwerr.New(rwerr.NewInvalidParam{
			Rule:   DefaultRuleName(def.Symbol()),
			Reason: "body placeholders do not correspond to the parameters",
		})
	}
	byPlaceholder := make(map[uint64]Param, len(params))
	for i, w := range placeholders {
		byPlaceholder[w.ID] = params[i]
	}

	types := make([]ir.Type, 0, len(params)+1)
	for _, p := range params {
		types = append(types, p.Type)
	}
	types = append(types, def.Result())
	vars := ir.FreeTypeVars(types...)

	exp := &expander{body: body, vars: vars}
	if opts.Cache {
		exp.cache = &expansionCache{buckets: make(map[uint64][]expansion)}
	}

	ruleBody := func(s *Scope) Candidates {
		pattern := ir.NewOperation(def.Symbol(), s.Type(def.Result()), s.Args()...)
		return Lazy(pattern, func() ir.Expr {
			typeArgs := make([]ir.Type, len(vars))
			for i, v := range vars {
				typeArgs[i] = s.Type(v)
			}
			return ir.Substitute(exp.expand(typeArgs), ir.Substitution{
				Expr: func(w *ir.Wildcard) (ir.Expr, bool) {
					p, ok := byPlaceholder[w.ID]
					if !ok || p.Variadic {
						return nil, false
					}
					return s.Get(p.Name), true
				},
				Seq: func(w *ir.Wildcard) ([]ir.Expr, bool) {
					p, ok := byPlaceholder[w.ID]
					if !ok || !p.Variadic {
						return nil, false
					}
					return s.Seq(p.Name), true
				},
			})
		})
	}

	ruleOpts := []RuleOption{Returns(def.Result())}
	if opts.Fresher != nil {
		ruleOpts = append(ruleOpts, WithFresher(opts.Fresher))
	}
	if opts.Logger != nil {
		ruleOpts = append(ruleOpts, WithLogger(opts.Logger))
	}
	return NewRule(DefaultRuleName(def.Symbol()), params, ruleBody, ruleOpts...)
}

type expander struct {
	body  ir.Expr
	vars  []*ir.TypeVar
	cache *expansionCache
}

// expand resolves the declared type variables of the body to typeArgs
func (e *expander) expand(typeArgs []ir.Type) ir.Expr {
	cacheable := e.cache != nil
	for _, t := range typeArgs {
		cacheable = cacheable && ir.IsGround(t)
	}
	if cacheable {
		if cached, ok := e.cache.get(typeArgs); ok {
			return cached
		}
	}
	resolved := make(map[uint64]ir.Type, len(e.vars))
	for i, v := range e.vars {
		resolved[v.ID] = typeArgs[i]
	}
	expanded := ir.Substitute(e.body, ir.Substitution{Type: ir.MapLookup(resolved)})
	if cacheable {
		e.cache.put(typeArgs, expanded)
	}
	return expanded
}

type expansion struct {
	typeArgs []ir.Type
	body     ir.Expr
}

// expansionCache is keyed by the type arguments themselves: entries whose
// hashes collide are told apart by structural equality
type expansionCache struct {
	mu      sync.Mutex
	buckets map[uint64][]expansion
}

func hashTypes(ts []ir.Type) uint64 {
	h := fnv.New64a()
	arr := make([]byte, 0, 8*len(ts))
	for _, t := range ts {
		arr = binary.LittleEndian.AppendUint64(arr, t.Hash())
	}
	_, _ = h.Write(arr)
	return h.Sum64()
}

func (c *expansionCache) get(typeArgs []ir.Type) (ir.Expr, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, entry := range c.buckets[hashTypes(typeArgs)] {
		if typesEqualSlices(entry.typeArgs, typeArgs) {
			return entry.body, true
		}
	}
	return nil, false
}

func (c *expansionCache) put(typeArgs []ir.Type, body ir.Expr) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := hashTypes(typeArgs)
	for _, entry := range c.buckets[key] {
		if typesEqualSlices(entry.typeArgs, typeArgs) {
			return
		}
	}
	c.buckets[key] = append(c.buckets[key], expansion{typeArgs: append([]ir.Type{}, typeArgs...), body: body})
}

// size is the number of distinct instantiations cached
func (c *expansionCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, bucket := range c.buckets {
		n += len(bucket)
	}
	return n
}

func typesEqualSlices(a, b []ir.Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !ir.TypesEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}
