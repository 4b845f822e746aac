package ir

// when adding expressions here, you should add them to the switch cases in:
// - ir:expr.go/Equal
// - ir:substitute.go/Substitute
// - ir:showExpr.go/showExprWalker
// - rewrite:unify.go/Unify

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"reflect"
)

// Expr is an immutable, typed expression tree node.
// Equality is structural (see Equal) and Hash is consistent with it
type Expr interface {
	Type() Type
	Hash() uint64
	// Describe is a short description of the node kind, for logging
	Describe() string
	exprNode()
}

var (
	_ Expr = (*Literal)(nil)
	_ Expr = (*Operation)(nil)
	_ Expr = (*Wildcard)(nil)
)

// Symbol identifies an operation. Two operations with the same name are the same operation
type Symbol string

func (s Symbol) String() string { return string(s) }

// Literal is an opaque value together with its Type
type Literal struct {
	Value any
	T     Type
}

func (*Literal) exprNode()          {}
func (e *Literal) Type() Type       { return e.T }
func (e *Literal) Describe() string { return "literal" }

func (e *Literal) Hash() uint64 {
	h := fnv.New64a()
	arr := []byte("Literal")
	if payload, ok := e.Value.(Expr); ok {
		arr = binary.LittleEndian.AppendUint64(arr, payload.Hash())
	} else {
		arr = fmt.Appendf(arr, "%T:%v", e.Value, e.Value)
	}
	if e.T != nil {
		arr = binary.LittleEndian.AppendUint64(arr, e.T.Hash())
	}
	_, _ = h.Write(arr)
	return h.Sum64()
}

// Lit builds a Literal, inferring its type from the Go type of value.
// Values of other Go types get the Any type; use LitOf to give them a precise one
func Lit(value any) *Literal {
	var t Type
	switch value.(type) {
	case int:
		t = IntType
	case float64:
		t = FloatType
	case string:
		t = StringType
	case bool:
		t = BoolType
	default:
		t = Any
	}
	return &Literal{Value: value, T: t}
}

func LitOf(value any, t Type) *Literal {
	return &Literal{Value: value, T: t}
}

// Operation is a Symbol applied to an ordered list of arguments, with a result Type
type Operation struct {
	Symbol Symbol
	Args   []Expr
	T      Type
}

func (*Operation) exprNode()          {}
func (e *Operation) Type() Type       { return e.T }
func (e *Operation) Describe() string { return "operation " + string(e.Symbol) }

func (e *Operation) Hash() uint64 {
	h := fnv.New64a()
	arr := []byte("Operation")
	_, _ = h.Write([]byte(e.Symbol))
	if e.T != nil {
		arr = binary.LittleEndian.AppendUint64(arr, e.T.Hash())
	}
	for _, arg := range e.Args {
		arr = binary.LittleEndian.AppendUint64(arr, arg.Hash())
	}
	_, _ = h.Write(arr)
	return h.Sum64()
}

func NewOperation(symbol Symbol, t Type, args ...Expr) *Operation {
	return &Operation{Symbol: symbol, T: t, Args: args}
}

// Wildcard is a placeholder standing for any expression of type Declared.
//
// A Variadic wildcard captures a contiguous run of sibling arguments instead,
// and each captured element must be of type Declared.
// Wildcards only live for the duration of a single match attempt
type Wildcard struct {
	ID       uint64
	Declared Type
	Variadic bool
	// NameHint may be ""
	NameHint string
}

func (*Wildcard) exprNode()    {}
func (e *Wildcard) Type() Type { return e.Declared }
func (e *Wildcard) Describe() string {
	if e.Variadic {
		return "variadic wildcard"
	}
	return "wildcard"
}

func (e *Wildcard) Hash() uint64 {
	h := fnv.New64a()
	arr := []byte("Wildcard")
	arr = binary.LittleEndian.AppendUint64(arr, e.ID)
	_, _ = h.Write(arr)
	return h.Sum64()
}

// Equal is structural equality of expressions, independent of allocation identity.
// Wildcards are equal only to themselves
func Equal(a, b Expr) bool {
	if a == nil || b == nil {
		return a == b
	}
	switch a := a.(type) {
	case *Literal:
		b, ok := b.(*Literal)
		return ok && TypesEqual(a.T, b.T) && LiteralValuesEqual(a.Value, b.Value)
	case *Operation:
		b, ok := b.(*Operation)
		if !ok || a.Symbol != b.Symbol || len(a.Args) != len(b.Args) || !TypesEqual(a.T, b.T) {
			return false
		}
		for i := range a.Args {
			if !Equal(a.Args[i], b.Args[i]) {
				return false
			}
		}
		return true
	case *Wildcard:
		b, ok := b.(*Wildcard)
		return ok && a.ID == b.ID
	default:
		return false
	}
}

// EqualSlices is Equal applied pairwise
func EqualSlices(a, b []Expr) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

// LiteralValuesEqual compares literal payloads. Payloads that are themselves expressions compare with Equal
func LiteralValuesEqual(a, b any) bool {
	if ea, ok := a.(Expr); ok {
		eb, ok := b.(Expr)
		return ok && Equal(ea, eb)
	}
	return reflect.DeepEqual(a, b)
}

// Walk visits expr and its descendants in pre-order, stopping when visit returns false
func Walk(expr Expr, visit func(Expr) bool) bool {
	if !visit(expr) {
		return false
	}
	if op, ok := expr.(*Operation); ok {
		for _, arg := range op.Args {
			if !Walk(arg, visit) {
				return false
			}
		}
	}
	return true
}
