package ir

import (
	"strconv"
	"strings"
)

// ExprString renders expr in the term syntax, like add(from_int(1), from_int(2))
func ExprString(expr Expr) string {
	ctx := newShowContext(false)
	ctx.showExprWalker(expr)
	return ctx.String()
}

// ExprStringTyped is like ExprString, but annotates every operation with its type,
// like create(): List[Int]
func ExprStringTyped(expr Expr) string {
	ctx := newShowContext(true)
	ctx.showExprWalker(expr)
	return ctx.String()
}

type showContext struct {
	*strings.Builder
	withTypes bool
}

func newShowContext(withTypes bool) *showContext {
	return &showContext{
		Builder:   &strings.Builder{},
		withTypes: withTypes,
	}
}

func (ctx *showContext) showExprWalker(expr Expr) {
	if expr == nil {
		ctx.WriteString("nil")
		return
	}
	switch expr := expr.(type) {
	case *Literal:
		ctx.WriteString(showLiteralValue(expr.Value))
	case *Wildcard:
		if expr.Variadic {
			ctx.WriteString("*")
		}
		ctx.WriteString("?" + expr.NameHint + "#" + strconv.FormatUint(expr.ID, 10))
	case *Operation:
		ctx.WriteString(string(expr.Symbol))
		ctx.WriteString("(")
		for i, arg := range expr.Args {
			if i > 0 {
				ctx.WriteString(", ")
			}
			ctx.showExprWalker(arg)
		}
		ctx.WriteString(")")
		if ctx.withTypes {
			ctx.WriteString(": " + TypeString(expr.T))
		}
	default:
		ctx.WriteString("(" + expr.Describe() + ")")
	}
}

func showLiteralValue(v any) string {
	switch v := v.(type) {
	case string:
		return strconv.Quote(v)
	case int:
		return strconv.Itoa(v)
	case float64:
		s := strconv.FormatFloat(v, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eEn") {
			s += ".0"
		}
		return s
	case bool:
		return strconv.FormatBool(v)
	case Expr:
		return "lit(" + ExprString(v) + ")"
	default:
		return "<" + reflectTypeName(v) + ">"
	}
}
