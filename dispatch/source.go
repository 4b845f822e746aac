package dispatch

import (
	"go/parser"
	"go/token"
	"os"

	"github.com/cottand/rewrite/ir"
	"github.com/pkg/errors"
	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
)

// ImplFuncName is the function a Go source implementation must declare
const ImplFuncName = "Impl"

// LoadGoSource interprets src, a Go file declaring
//
//	func Impl(args []any) (any, error)
//
// and returns that function. src may import the standard library
func LoadGoSource(src string) (Impl, error) {
	f, err := parser.ParseFile(token.NewFileSet(), "", src, parser.PackageClauseOnly)
	if err != nil {
		return nil, errors.Wrap(err, "could not parse package clause")
	}
	i := interp.New(interp.Options{})
	if err := i.Use(stdlib.Symbols); err != nil {
		return nil, errors.Wrap(err, "could not load standard library symbols")
	}
	if _, err := i.Eval(src); err != nil {
		return nil, errors.Wrap(err, "could not interpret implementation")
	}
	v, err := i.Eval(f.Name.Name + "." + ImplFuncName)
	if err != nil {
		return nil, errors.Wrapf(err, "source does not declare %s", ImplFuncName)
	}
	impl, ok := v.Interface().(func([]any) (any, error))
	if !ok {
		return nil, errors.Errorf("%s has type %s, expected func([]any) (any, error)", ImplFuncName, v.Type())
	}
	return impl, nil
}

// LoadFile registers the Go source implementation in the file at path for symbol
func (t *Table) LoadFile(symbol ir.Symbol, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "could not read implementation of %s", symbol)
	}
	impl, err := LoadGoSource(string(src))
	if err != nil {
		return errors.Wrapf(err, "could not load implementation of %s from %s", symbol, path)
	}
	t.Register(symbol, impl)
	return nil
}
