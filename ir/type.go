package ir

import (
	"encoding/binary"
	"hash/fnv"
	"strconv"
	"strings"
)

func TypeString(t Type) string {
	if t == nil {
		return "_"
	}
	return t.ShowIn(DumbShowCtx, 0)
}

// Type describes the type of an Expr: a head constructor plus ordered type arguments,
// any of which may be a free TypeVar
type Type interface {
	ShowIn(ctx ShowCtx, outerPrecedence uint16) string
	Hash() uint64
	typeNode()
}

type NullaryType interface {
	Type
	isNullaryType()
}

var (
	_ Type = (*AppliedType)(nil)

	_ NullaryType = (*TypeVar)(nil)
	_ NullaryType = (*TypeName)(nil)
	_ NullaryType = (*AnyType)(nil)
)

// TypeName is a type constructor applied to no arguments, like Int
type TypeName struct {
	Name string
}

func (n *TypeName) ShowIn(ShowCtx, uint16) string { return n.Name }
func (*TypeName) isNullaryType()                  {}
func (*TypeName) typeNode()                       {}

func (n *TypeName) Hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte("TypeName"))
	_, _ = h.Write([]byte(n.Name))
	return h.Sum64()
}

// AppliedType is a constructor applied to type arguments, like List[Int]
//
// Use Applied to build one, so that nullary applications stay a *TypeName
type AppliedType struct {
	Base TypeName
	Args []Type
}

func (*AppliedType) typeNode() {}

func (t *AppliedType) ShowIn(ctx ShowCtx, outerPrecedence uint16) string {
	sb := strings.Builder{}
	sb.WriteString(t.Base.ShowIn(ctx, 0))
	sb.WriteString("[")
	for i, arg := range t.Args {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(arg.ShowIn(ctx, 0))
	}
	sb.WriteString("]")
	return sb.String()
}

func (t *AppliedType) Hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte("AppliedType"))
	arr := make([]byte, 0)
	arr = binary.LittleEndian.AppendUint64(arr, t.Base.Hash())
	for _, arg := range t.Args {
		arr = binary.LittleEndian.AppendUint64(arr, arg.Hash())
	}
	_, _ = h.Write(arr)
	return h.Sum64()
}

// Applied returns the constructor name applied to args.
// With no args, the result is a plain *TypeName
func Applied(name string, args ...Type) Type {
	if len(args) == 0 {
		return &TypeName{Name: name}
	}
	return &AppliedType{Base: TypeName{Name: name}, Args: args}
}

// TypeVar is a type variable. Its identity is its ID;
// NameHint is only used for printing and may be ""
type TypeVar struct {
	ID       uint64
	NameHint string
}

func (t *TypeVar) ShowIn(ctx ShowCtx, _ uint16) string { return ctx.NameOf(t) }
func (*TypeVar) isNullaryType()                       {}
func (*TypeVar) typeNode()                            {}

func (t *TypeVar) Hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte("TypeVar"))
	_, _ = h.Write(binary.LittleEndian.AppendUint64(nil, t.ID))
	return h.Sum64()
}

// AnyType corresponds to Top in the type lattice.
// A pattern of type Any accepts a target of any type
type AnyType struct{}

func (*AnyType) ShowIn(ShowCtx, uint16) string { return AnyTypeName }
func (*AnyType) isNullaryType()                {}
func (*AnyType) typeNode()                     {}

func (*AnyType) Hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte("AnyType"))
	return h.Sum64()
}

type ShowCtx interface {
	NameOf(typeVar *TypeVar) string
}

type dumbShowCtx struct{}

var DumbShowCtx ShowCtx = (*dumbShowCtx)(nil)

func (*dumbShowCtx) NameOf(typeVar *TypeVar) string {
	if typeVar.NameHint != "" {
		return "'" + typeVar.NameHint + strconv.FormatUint(typeVar.ID, 10)
	}
	return "'t" + strconv.FormatUint(typeVar.ID, 10)
}

// Head returns the constructor name of t, or "" for type variables
func Head(t Type) string {
	switch t := t.(type) {
	case *TypeName:
		return t.Name
	case *AppliedType:
		return t.Base.Name
	case *AnyType:
		return AnyTypeName
	default:
		return ""
	}
}

// TypeArgs returns the type arguments of t, which are empty for nullary types
func TypeArgs(t Type) []Type {
	if applied, ok := t.(*AppliedType); ok {
		return applied.Args
	}
	return nil
}

// TypesEqual is structural equality, where type variables are equal only to themselves
func TypesEqual(a, b Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	switch a := a.(type) {
	case *TypeVar:
		b, ok := b.(*TypeVar)
		return ok && a.ID == b.ID
	case *AnyType:
		_, ok := b.(*AnyType)
		return ok
	case *TypeName:
		b, ok := b.(*TypeName)
		return ok && a.Name == b.Name
	case *AppliedType:
		b, ok := b.(*AppliedType)
		if !ok || a.Base.Name != b.Base.Name || len(a.Args) != len(b.Args) {
			return false
		}
		for i := range a.Args {
			if !TypesEqual(a.Args[i], b.Args[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
