// Package script implements a tiny command-program DSL for replaying
// fixed action sequences against the simulation. Programs are plain
// text, one statement per line:
//
//	move n 3
//	rest 5
//	quaff a
//	zap b n
//	search
//
// Grammar defined as Go structs with tags, Participle-style.
package script

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Program is a parsed command script: a sequence of statements.
type Program struct {
	Statements []*Statement `(Newline* @@)* Newline*`
}

// Statement is one line: a verb, an optional direction, an optional
// inventory letter, and an optional repeat count. Direction and Letter
// lex to distinct token kinds (Dir vs Ident) so the grammar never
// confuses a compass name with an item letter. Newlines terminate a
// statement rather than being elided, so a bare verb on one line can
// never swallow the next line's verb as its letter operand.
type Statement struct {
	Verb      string  `@Ident`
	Direction *string `@Dir?`
	Letter    *string `@Ident?`
	Count     *int    `@Int?`
}

var scriptLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `[ \t]+`},
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Newline", Pattern: `[\n\r]+`},
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Dir", Pattern: `\b(ne|se|sw|nw|n|e|s|w)\b`},
	{Name: "Ident", Pattern: `[a-zA-Z][a-zA-Z_]*`},
})

var parser = participle.MustBuild[Program](
	participle.Lexer(scriptLexer),
	participle.Elide("Whitespace", "Comment"),
	participle.UseLookahead(2),
)

// Parse parses source into a Program AST.
func Parse(source string) (*Program, error) {
	return parser.ParseString("", source)
}
