package library

import (
	"fmt"
	"strconv"

	"github.com/cottand/rewrite/dispatch"
	"github.com/pkg/errors"
)

// Pair is the runtime value of a Pair.new call
type Pair struct {
	Fst, Snd any
}

// Table implements every operation of the library. Numbers evaluate to int,
// lists to []any and pairs to Pair
func Table() *dispatch.Table {
	t := dispatch.NewTable()
	t.Register(FromInt.Symbol(), unary(func(v any) (any, error) {
		i, ok := v.(int)
		if !ok {
			return nil, errors.Errorf("expected an int, got %T", v)
		}
		return i, nil
	}))
	t.Register(FromStr.Symbol(), unary(func(v any) (any, error) {
		s, ok := v.(string)
		if !ok {
			return nil, errors.Errorf("expected a string, got %T", v)
		}
		i, err := strconv.Atoi(s)
		return i, errors.Wrapf(err, "not a number: %q", s)
	}))
	t.Register(Add.Symbol(), ints(func(a, b int) int { return a + b }))
	t.Register(Mul.Symbol(), ints(func(a, b int) int { return a * b }))
	t.Register(Double.Symbol(), unary(func(v any) (any, error) {
		i, ok := v.(int)
		if !ok {
			return nil, errors.Errorf("expected an int, got %T", v)
		}
		return 2 * i, nil
	}))

	t.Register(Create.Symbol(), func(args []any) (any, error) {
		return append([]any{}, args...), nil
	})
	t.Register(Concat.Symbol(), binary(func(l, r any) (any, error) {
		ls, lOk := l.([]any)
		rs, rOk := r.([]any)
		if !lOk || !rOk {
			return nil, errors.Errorf("expected two lists, got %T and %T", l, r)
		}
		return append(append([]any{}, ls...), rs...), nil
	}))
	t.Register(First.Symbol(), unary(func(v any) (any, error) {
		l, ok := v.([]any)
		if !ok || len(l) == 0 {
			return nil, errors.Errorf("expected a non-empty list, got %v", v)
		}
		return l[0], nil
	}))

	t.Register(NewPair.Symbol(), binary(func(a, b any) (any, error) { return Pair{Fst: a, Snd: b}, nil }))
	t.Register(Fst.Symbol(), pairField(func(p Pair) any { return p.Fst }))
	t.Register(Snd.Symbol(), pairField(func(p Pair) any { return p.Snd }))
	t.Register(Swap.Symbol(), pairField(func(p Pair) any { return Pair{Fst: p.Snd, Snd: p.Fst} }))

	identity := unary(func(v any) (any, error) { return v, nil })
	t.Register(Identity.Symbol(), identity)
	t.Register(Identity2.Symbol(), identity)
	return t
}

func unary(f func(any) (any, error)) dispatch.Impl {
	return func(args []any) (any, error) {
		if len(args) != 1 {
			return nil, errors.Errorf("expected 1 argument, got %d", len(args))
		}
		return f(args[0])
	}
}

func binary(f func(a, b any) (any, error)) dispatch.Impl {
	return func(args []any) (any, error) {
		if len(args) != 2 {
			return nil, errors.Errorf("expected 2 arguments, got %d", len(args))
		}
		return f(args[0], args[1])
	}
}

func ints(f func(a, b int) int) dispatch.Impl {
	return binary(func(a, b any) (any, error) {
		ai, aOk := a.(int)
		bi, bOk := b.(int)
		if !aOk || !bOk {
			return nil, errors.Errorf("expected two ints, got %T and %T", a, b)
		}
		return f(ai, bi), nil
	})
}

func pairField(f func(Pair) any) dispatch.Impl {
	return unary(func(v any) (any, error) {
		p, ok := v.(Pair)
		if !ok {
			return nil, errors.Errorf("expected a pair, got %T", v)
		}
		return f(p), nil
	})
}

// Show renders a value computed by Table
func Show(v any) string {
	switch v := v.(type) {
	case []any:
		s := "["
		for i, elem := range v {
			if i > 0 {
				s += ", "
			}
			s += Show(elem)
		}
		return s + "]"
	case Pair:
		return "(" + Show(v.Fst) + ", " + Show(v.Snd) + ")"
	case string:
		return strconv.Quote(v)
	default:
		return fmt.Sprint(v)
	}
}
