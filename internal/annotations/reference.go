package annotations

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/toyz/autoimpl/internal/models"
	"github.com/toyz/autoimpl/internal/syntax"
)

// Argument is the grammar of a marker argument: a string literal, a
// nameof(...) expression or a plain name
type Argument struct {
	Nameof *Name   `parser:"  'nameof' '(' @@ ')'"`
	String *string `parser:"| @(String | Verbatim)"`
	Name   *Name   `parser:"| @@"`
}

// Name is a possibly qualified name such as Ns.IFoo or global::Ns.IFoo
type Name struct {
	Head string     `parser:"@Ident"`
	Tail []*Segment `parser:"@@*"`
}

// Segment is one qualified step of a Name
type Segment struct {
	Separator string `parser:"@('.' | '::')"`
	Ident     string `parser:"@Ident"`
}

// String renders the name as written
func (n *Name) String() string {
	var b strings.Builder
	b.WriteString(n.Head)
	for _, s := range n.Tail {
		b.WriteString(s.Separator)
		b.WriteString(s.Ident)
	}
	return b.String()
}

// Value returns the interface name the argument denotes
func (a *Argument) Value() string {
	switch {
	case a.Nameof != nil:
		return a.Nameof.String()
	case a.String != nil:
		return *a.String
	case a.Name != nil:
		return a.Name.String()
	default:
		return ""
	}
}

var argumentLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Verbatim", Pattern: `@"(""|[^"])*"`},
	{Name: "String", Pattern: `"(\\.|[^"\\])*"`},
	{Name: "Ident", Pattern: `@?[\p{L}_][\p{L}\p{N}_]*`},
	{Name: "Punct", Pattern: `::|[.()]`},
})

var argumentParser = participle.MustBuild[Argument](
	participle.Lexer(argumentLexer),
	participle.Elide("Whitespace"),
	participle.Unquote("String"),
	participle.Map(unquoteVerbatim, "Verbatim"),
	participle.UseLookahead(2),
)

func unquoteVerbatim(t lexer.Token) (lexer.Token, error) {
	t.Value = strings.ReplaceAll(t.Value[2:len(t.Value)-1], `""`, `"`)
	return t, nil
}

// ParseReference extracts the interface name requested by one marker
// argument. Blank arguments pass through unchanged; expressions outside the
// grammar fall back to trimming surrounding quotes.
func ParseReference(expression string) models.InterfaceReference {
	expr := strings.TrimSpace(expression)
	if expr == "" {
		return models.InterfaceReference(expression)
	}
	arg, err := argumentParser.ParseString("", expr)
	if err != nil {
		return models.InterfaceReference(strings.Trim(expr, `"`))
	}
	return models.InterfaceReference(arg.Value())
}

// AttributeReferences extracts the references of the positional arguments of a marker application
func AttributeReferences(attr syntax.Attribute) []models.InterfaceReference {
	refs := make([]models.InterfaceReference, 0, len(attr.Arguments))
	for _, arg := range attr.Arguments {
		if arg.Name != "" {
			continue
		}
		refs = append(refs, ParseReference(arg.Text))
	}
	return refs
}

// BaseListReferences extracts references from a base list. Simple and
// qualified names are kept; generic, alias-qualified and other forms are ignored.
func BaseListReferences(bases []syntax.BaseType) []models.InterfaceReference {
	var refs []models.InterfaceReference
	for _, b := range bases {
		switch b.Kind {
		case syntax.BaseIdentifier, syntax.BaseQualified:
			refs = append(refs, models.InterfaceReference(b.Text))
		}
	}
	return refs
}
