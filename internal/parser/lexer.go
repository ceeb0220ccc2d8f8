package parser

import (
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/toyz/autoimpl/internal/syntax"
)

// sourceLexer tokenizes the C# subset the parser understands. Every input
// lexes: characters no rule recognizes become Other tokens.
var sourceLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Comment", Pattern: `//[^\n]*|/\*([^*]|\*+[^*/])*\*+/`},
	{Name: "Preprocessor", Pattern: `#[^\n]*`},
	{Name: "RawString", Pattern: `\$*"""[\s\S]*?"""`},
	{Name: "String", Pattern: `\$?@"(""|[^"])*"|@\$"(""|[^"])*"|\$?"(\\.|[^"\\\n])*"`},
	{Name: "Char", Pattern: `'(\\.|[^'\\\n])+'`},
	{Name: "Ident", Pattern: `@?[\p{L}_][\p{L}\p{N}_]*`},
	{Name: "Number", Pattern: `[0-9][0-9a-zA-Z_]*(\.[0-9][0-9a-zA-Z_]*)?`},
	{Name: "Arrow", Pattern: `=>`},
	{Name: "DoubleColon", Pattern: `::`},
	{Name: "Punct", Pattern: `[-+*/%&|^!~<>=?:;,.(){}\[\]]`},
	{Name: "Other", Pattern: `.`},
})

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokString
	tokNumber
	tokChar
	tokPunct
	tokOther
)

type token struct {
	kind   tokenKind
	value  string
	offset int
	pos    syntax.Position
}

func (t token) is(value string) bool {
	return t.kind != tokEOF && t.kind != tokString && t.kind != tokChar && t.value == value
}

// tokenize lexes source and drops trivia (whitespace, comments, preprocessor lines)
func tokenize(path, source string) ([]token, error) {
	lx, err := sourceLexer.LexString(path, source)
	if err != nil {
		return nil, fmt.Errorf("failed to lex %s: %w", path, err)
	}
	raw, err := lexer.ConsumeAll(lx)
	if err != nil {
		return nil, fmt.Errorf("failed to lex %s: %w", path, err)
	}

	symbols := sourceLexer.Symbols()
	kinds := map[lexer.TokenType]tokenKind{
		symbols["Ident"]:       tokIdent,
		symbols["String"]:      tokString,
		symbols["RawString"]:   tokString,
		symbols["Char"]:        tokChar,
		symbols["Number"]:      tokNumber,
		symbols["Arrow"]:       tokPunct,
		symbols["DoubleColon"]: tokPunct,
		symbols["Punct"]:       tokPunct,
		symbols["Other"]:       tokOther,
	}

	tokens := make([]token, 0, len(raw))
	for _, t := range raw {
		if t.EOF() {
			break
		}
		kind, ok := kinds[t.Type]
		if !ok {
			continue
		}
		tokens = append(tokens, token{
			kind:   kind,
			value:  t.Value,
			offset: t.Pos.Offset,
			pos:    syntax.Position{File: path, Line: t.Pos.Line, Column: t.Pos.Column},
		})
	}
	end := syntax.Position{File: path}
	if n := len(raw); n > 0 {
		last := raw[n-1].Pos
		end.Line, end.Column = last.Line, last.Column
	}
	tokens = append(tokens, token{kind: tokEOF, offset: len(source), pos: end})
	return tokens, nil
}
