package syntax

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

type fileAST struct {
	Cases []*caseAST `parser:"@@*"`
}

// caseAST is a term, optionally followed by what it is expected to simplify to
type caseAST struct {
	Pos      lexer.Position
	Input    *termAST `parser:"@@"`
	Expected *termAST `parser:"( '=>' @@ )?"`
}

type termAST struct {
	Pos    lexer.Position
	Float  *float64 `parser:"  @Float"`
	Int    *int     `parser:"| @Int"`
	String *string  `parser:"| @String"`
	Call   *callAST `parser:"| @@"`
}

type callAST struct {
	Pos      lexer.Position
	Name     string     `parser:"@Ident"`
	TypeArgs []*typeAST `parser:"( '[' @@ ( ',' @@ )* ']' )?"`
	Args     *argsAST   `parser:"@@?"`
}

type argsAST struct {
	Open string     `parser:"@'('"`
	Args []*termAST `parser:"( @@ ( ',' @@ )* )? ')'"`
}

type typeAST struct {
	Pos  lexer.Position
	Name string     `parser:"@Ident"`
	Args []*typeAST `parser:"( '[' @@ ( ',' @@ )* ']' )?"`
}

var (
	termLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Comment", Pattern: `#[^\n]*`},
		{Name: "Whitespace", Pattern: `\s+`},
		{Name: "Float", Pattern: `[-+]?\d+\.\d*([eE][-+]?\d+)?`},
		{Name: "Int", Pattern: `[-+]?\d+`},
		{Name: "String", Pattern: `"(\\.|[^"\\])*"`},
		{Name: "Ident", Pattern: `[a-zA-Z_]\w*(\.[a-zA-Z_]\w*)*`},
		{Name: "Arrow", Pattern: `=>`},
		{Name: "Punct", Pattern: `[\[\](),]`},
	})

	options = []participle.Option{
		participle.Lexer(termLexer),
		participle.Elide("Comment", "Whitespace"),
		participle.Unquote("String"),
		participle.UseLookahead(2),
	}

	termParser = participle.MustBuild[termAST](options...)
	fileParser = participle.MustBuild[fileAST](options...)
)
