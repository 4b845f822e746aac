// Package syntax reads expressions written like add(from_int(1), List.create[Int]())
package syntax

import (
	"errors"
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/cottand/rewrite/dsl"
	"github.com/cottand/rewrite/ir"
	"github.com/cottand/rewrite/rwerr"
	pkgerrors "github.com/pkg/errors"
)

// Case is a term and, if the source gave one after =>, the term it should simplify to
type Case struct {
	Pos      string
	Input    ir.Expr
	Expected ir.Expr
}

// Parser resolves operation and type names against an environment
type Parser struct {
	env *dsl.Env
}

func NewParser(env *dsl.Env) *Parser {
	return &Parser{env: env}
}

// ParseTerm parses src, which must hold exactly one term
func (p *Parser) ParseTerm(src string) (ir.Expr, error) {
	ast, err := termParser.ParseString("", src)
	if err != nil {
		return nil, parseError(err)
	}
	return p.term(ast)
}

// ParseCases parses every term of src, each one optionally followed by => and its expected form
func (p *Parser) ParseCases(filename, src string) ([]Case, error) {
	ast, err := fileParser.ParseString(filename, src)
	if err != nil {
		return nil, parseError(err)
	}
	cases := make([]Case, 0, len(ast.Cases))
	var errs *rwerr.Errors
	for _, c := range ast.Cases {
		input, err := p.term(c.Input)
		if err != nil {
			errs = collect(errs, err)
			continue
		}
		parsed := Case{Pos: c.Pos.String(), Input: input}
		if c.Expected != nil {
			if parsed.Expected, err = p.term(c.Expected); err != nil {
				errs = collect(errs, err)
				continue
			}
		}
		cases = append(cases, parsed)
	}
	return cases, errs.Err()
}

func collect(errs *rwerr.Errors, err error) *rwerr.Errors {
	var rwErr rwerr.RewriteError
	if errors.As(err, &rwErr) {
		return errs.With(rwErr)
	}
	return errs.With(rwerr.New(rwerr.NewParse{ParserMessage: err.Error()}))
}

func parseError(err error) error {
	var pErr participle.Error
	if errors.As(err, &pErr) {
		return rwerr.New(rwerr.NewParse{Pos: pErr.Position().String(), ParserMessage: pErr.Message()})
	}
	return rwerr.New(rwerr.NewParse{ParserMessage: err.Error()})
}

func (p *Parser) term(ast *termAST) (ir.Expr, error) {
	switch {
	case ast.Float != nil:
		return ir.Lit(*ast.Float), nil
	case ast.Int != nil:
		return ir.Lit(*ast.Int), nil
	case ast.String != nil:
		return ir.Lit(*ast.String), nil
	case ast.Call != nil:
		return p.call(ast.Call)
	default:
		return nil, rwerr.New(rwerr.NewParse{Pos: ast.Pos.String(), ParserMessage: "empty term"})
	}
}

func (p *Parser) call(ast *callAST) (ir.Expr, error) {
	if ast.Args == nil {
		if len(ast.TypeArgs) == 0 && (ast.Name == "true" || ast.Name == "false") {
			return ir.Lit(ast.Name == "true"), nil
		}
		return nil, rwerr.New(rwerr.NewParse{Pos: ast.Pos.String(), ParserMessage: fmt.Sprintf("expected '(' after %s", ast.Name)})
	}
	op, ok := p.env.Lookup(ast.Name)
	if !ok {
		return nil, rwerr.New(rwerr.NewUnknownOperation{Pos: ast.Pos.String(), Name: ast.Name})
	}
	if len(ast.TypeArgs) > 0 {
		typeArgs := make([]ir.Type, len(ast.TypeArgs))
		for i, t := range ast.TypeArgs {
			resolved, err := p.typ(t)
			if err != nil {
				return nil, err
			}
			typeArgs[i] = resolved
		}
		op = op.With(typeArgs...)
	}
	args := make([]ir.Expr, len(ast.Args.Args))
	for i, arg := range ast.Args.Args {
		e, err := p.term(arg)
		if err != nil {
			return nil, err
		}
		args[i] = e
	}
	e, err := op.Build(args...)
	if err != nil {
		return nil, pkgerrors.WithMessage(err, ast.Pos.String())
	}
	return e, nil
}

func (p *Parser) typ(ast *typeAST) (ir.Type, error) {
	if ast.Name == ir.AnyTypeName && len(ast.Args) == 0 {
		return ir.Any, nil
	}
	arity, ok := p.env.TypeArity(ast.Name)
	if !ok {
		return nil, rwerr.New(rwerr.NewParse{Pos: ast.Pos.String(), ParserMessage: fmt.Sprintf("unknown type %s", ast.Name)})
	}
	if arity != len(ast.Args) {
		return nil, rwerr.New(rwerr.NewParse{
			Pos:           ast.Pos.String(),
			ParserMessage: fmt.Sprintf("type %s takes %d type arguments, but got %d", ast.Name, arity, len(ast.Args)),
		})
	}
	args := make([]ir.Type, len(ast.Args))
	for i, arg := range ast.Args {
		t, err := p.typ(arg)
		if err != nil {
			return nil, err
		}
		args[i] = t
	}
	return ir.Applied(ast.Name, args...), nil
}
