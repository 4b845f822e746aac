// Package dsl declares operations and builds well-typed expressions out of them.
//
// Calls infer the type arguments of generic operations from the types of their arguments,
// the way a call to a generic function would
package dsl

import (
	"fmt"
	"strings"

	"github.com/cottand/rewrite/ir"
	"github.com/cottand/rewrite/rewrite"
	"github.com/cottand/rewrite/rwerr"
	"github.com/hashicorp/go-set/v3"
)

var _ rewrite.Definition = (*Operation)(nil)

// TypeParam declares a new type parameter, to be used in the signatures of operations
func TypeParam(name string) *ir.TypeVar {
	return rewrite.DefaultFresher.TypeVar(name)
}

// Operation is a declared operation. Calling it builds an *ir.Operation
type Operation struct {
	symbol     ir.Symbol
	params     []rewrite.Param
	result     ir.Type
	typeParams []*ir.TypeVar
	// variadicAt is the index of the sequence parameter, or -1
	variadicAt int
	// typeArgs are the explicit instantiation set by With, if any
	typeArgs []ir.Type
	def      *definition
}

type definition struct {
	body         ir.Expr
	placeholders []*ir.Wildcard
}

// NewOperation declares an operation called name, returning values of type result.
// The type parameters of the operation are the type variables in its signature,
// in the order they were created with TypeParam
func NewOperation(name string, result ir.Type, params ...rewrite.Param) (*Operation, error) {
	if err := rewrite.ValidateParams(name, params); err != nil {
		return nil, err
	}
	if result == nil {
		return nil, rwerr.New(rwerr.NewInvalidParam{Rule: name, Reason: "missing result type"})
	}
	o := &Operation{
		symbol:     ir.Symbol(name),
		params:     params,
		result:     result,
		variadicAt: -1,
		def:        &definition{},
	}
	variadics := 0
	types := make([]ir.Type, 0, len(params)+1)
	for i, p := range params {
		if p.Variadic {
			o.variadicAt = i
			variadics++
		}
		types = append(types, p.Type)
	}
	if variadics > 1 {
		return nil, rwerr.New(rwerr.NewMultipleVariadic{Rule: name, Symbol: name, Count: variadics})
	}
	o.typeParams = ir.FreeTypeVars(append(types, result)...)
	return o, nil
}

// Declare is NewOperation for package-level declarations. It panics on a malformed signature
func Declare(name string, result ir.Type, params ...rewrite.Param) *Operation {
	o, err := NewOperation(name, result, params...)
	if err != nil {
		panic(err)
	}
	return o
}

// Define records the body of o, built by f from placeholders for the parameters of o.
// The body must have the result type of o. Define panics otherwise
func (o *Operation) Define(f func(s *rewrite.Scope) ir.Expr) *Operation {
	s := rewrite.NewScope(string(o.symbol), o.params)
	body := f(s)
	if body == nil {
		panic(rwerr.New(rwerr.NewNoBody{Operation: string(o.symbol)}))
	}
	if _, ok := rewrite.UnifyTypeWith(o.result, body.Type(), rewrite.NewBindings(), noneBindable); !ok {
		panic(rwerr.New(rwerr.NewCallTypeMismatch{
			Operation: string(o.symbol),
			Param:     "result",
			Want:      ir.TypeString(o.result),
			Got:       ir.TypeString(body.Type()),
		}))
	}
	o.def.body = body
	o.def.placeholders = s.Wildcards()
	return o
}

func noneBindable(*ir.TypeVar) bool { return false }

func (o *Operation) Symbol() ir.Symbol          { return o.symbol }
func (o *Operation) Params() []rewrite.Param    { return o.params }
func (o *Operation) Result() ir.Type            { return o.result }
func (o *Operation) TypeParams() []*ir.TypeVar { return o.typeParams }

func (o *Operation) Body() (ir.Expr, []*ir.Wildcard, bool) {
	if o.def.body == nil {
		return nil, nil, false
	}
	return o.def.body, o.def.placeholders, true
}

// With instantiates the type parameters of o explicitly, in order.
// It is needed when they cannot be inferred from the arguments, like for an empty list
func (o *Operation) With(typeArgs ...ir.Type) *Operation {
	instantiated := *o
	instantiated.typeArgs = typeArgs
	return &instantiated
}

// Call builds a call to o, and panics if the arguments do not fit its signature
func (o *Operation) Call(args ...ir.Expr) ir.Expr {
	e, err := o.Build(args...)
	if err != nil {
		panic(err)
	}
	return e
}

// Build builds a call to o with args. A variadic wildcard may only be
// passed where o expects a sequence
func (o *Operation) Build(args ...ir.Expr) (ir.Expr, error) {
	instance, bindable, err := o.instantiate()
	if err != nil {
		return nil, err
	}
	assigned, err := o.assign(args)
	if err != nil {
		return nil, err
	}

	b := rewrite.NewBindings()
	for i, arg := range args {
		want := ir.SubstType(assigned[i].Type, instance)
		var ok bool
		if b, ok = rewrite.UnifyTypeWith(want, arg.Type(), b, bindable); !ok {
			return nil, rwerr.New(rwerr.NewCallTypeMismatch{
				Operation: string(o.symbol),
				Param:     assigned[i].Name,
				Want:      ir.TypeString(b.Resolve(want)),
				Got:       ir.TypeString(arg.Type()),
			})
		}
	}

	result := b.Resolve(ir.SubstType(o.result, instance))
	for _, v := range ir.FreeTypeVars(result) {
		if bindable(v) {
			return nil, rwerr.New(rwerr.NewUninferredTypeParam{Operation: string(o.symbol), Param: v.NameHint})
		}
	}
	return ir.NewOperation(o.symbol, result, args...), nil
}

// instantiate gives each type parameter either its explicit type argument or a fresh
// variable that the arguments of a call may bind
func (o *Operation) instantiate() (ir.TypeLookup, func(*ir.TypeVar) bool, error) {
	if o.typeArgs != nil && len(o.typeArgs) != len(o.typeParams) {
		return nil, nil, rwerr.New(rwerr.NewTypeArgCount{
			Operation: string(o.symbol),
			Want:      len(o.typeParams),
			Got:       len(o.typeArgs),
		})
	}
	instance := make(map[uint64]ir.Type, len(o.typeParams))
	inferred := set.New[uint64](len(o.typeParams))
	for i, tp := range o.typeParams {
		if o.typeArgs != nil {
			instance[tp.ID] = o.typeArgs[i]
			continue
		}
		v := rewrite.DefaultFresher.TypeVar(tp.NameHint)
		instance[tp.ID] = v
		inferred.Insert(v.ID)
	}
	return ir.MapLookup(instance), func(v *ir.TypeVar) bool { return inferred.Contains(v.ID) }, nil
}

// assign returns the parameter each argument is passed to
func (o *Operation) assign(args []ir.Expr) ([]rewrite.Param, error) {
	assigned := make([]rewrite.Param, len(args))
	if o.variadicAt < 0 {
		if len(args) != len(o.params) {
			return nil, rwerr.New(rwerr.NewArityMismatch{Operation: string(o.symbol), Want: len(o.params), Got: len(args)})
		}
		copy(assigned, o.params)
	} else {
		prefix, suffix := o.variadicAt, len(o.params)-o.variadicAt-1
		if len(args) < prefix+suffix {
			return nil, rwerr.New(rwerr.NewArityMismatch{Operation: string(o.symbol), Want: prefix + suffix, Got: len(args), AtLeast: true})
		}
		for i := range args {
			switch {
			case i < prefix:
				assigned[i] = o.params[i]
			case i >= len(args)-suffix:
				assigned[i] = o.params[o.variadicAt+1+i-(len(args)-suffix)]
			default:
				assigned[i] = o.params[o.variadicAt]
			}
		}
	}
	for i, arg := range args {
		if arg == nil {
			return nil, rwerr.New(rwerr.NewCallTypeMismatch{
				Operation: string(o.symbol),
				Param:     assigned[i].Name,
				Want:      ir.TypeString(assigned[i].Type),
				Got:       "nil",
			})
		}
		if w, ok := arg.(*ir.Wildcard); ok && w.Variadic && !assigned[i].Variadic {
			return nil, rwerr.New(rwerr.NewMisplacedVariadic{Operation: string(o.symbol), Param: assigned[i].Name})
		}
	}
	return assigned, nil
}

func (o *Operation) String() string {
	sb := strings.Builder{}
	sb.WriteString(string(o.symbol))
	if len(o.typeParams) > 0 {
		sb.WriteString("[")
		for i, tp := range o.typeParams {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(ir.TypeString(tp))
		}
		sb.WriteString("]")
	}
	sb.WriteString("(")
	for i, p := range o.params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.String())
	}
	sb.WriteString(fmt.Sprintf(") -> %s", ir.TypeString(o.result)))
	return sb.String()
}
