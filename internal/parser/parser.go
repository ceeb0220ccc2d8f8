package parser

import (
	"fmt"
	"os"
	"strings"

	"github.com/toyz/autoimpl/internal/errors"
	"github.com/toyz/autoimpl/internal/syntax"
)

// declarationModifiers are consumed in front of type and member declarations
var declarationModifiers = map[string]bool{
	"public":    true,
	"private":   true,
	"protected": true,
	"internal":  true,
	"static":    true,
	"sealed":    true,
	"abstract":  true,
	"virtual":   true,
	"override":  true,
	"readonly":  true,
	"partial":   true,
	"unsafe":    true,
	"extern":    true,
	"new":       true,
	"volatile":  true,
	"async":     true,
	"required":  true,
	"file":      true,
	"const":     true,
	"ref":       true,
	"fixed":     true,
}

// accessorKeywords are the accessor names recognized inside property bodies
var accessorKeywords = map[string]bool{
	"get":    true,
	"set":    true,
	"init":   true,
	"add":    true,
	"remove": true,
}

// attributeTargetsOnTypes are the attribute target specifiers that still apply to the declared type
var attributeTargetsOnTypes = map[string]bool{
	"type": true,
}

var closers = map[string]string{"(": ")", "[": "]", "{": "}"}

// Parser is a tolerant parser for the subset of C# the generator consumes.
// It is stateless and safe for concurrent use.
type Parser struct{}

// NewParser creates a new source parser
func NewParser() *Parser {
	return &Parser{}
}

// ParseFile reads and parses a source file from disk
func (p *Parser) ParseFile(path string) (*syntax.File, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapFileSystemError("read", path, err)
	}
	return p.ParseSource(path, string(content))
}

// ParseSource parses source text. Incomplete or invalid constructs are
// skipped; only a tokenizer failure is reported as an error.
func (p *Parser) ParseSource(path, source string) (*syntax.File, error) {
	tokens, err := tokenize(path, source)
	if err != nil {
		return nil, errors.WrapParseError(path, err)
	}

	s := &state{
		source: source,
		tokens: tokens,
		file:   &syntax.File{Path: path},
	}
	s.parseNamespaceBody("", false)
	return s.file, nil
}

// state is the cursor over one file's tokens
type state struct {
	source string
	tokens []token
	pos    int
	file   *syntax.File
}

// scope is the lexical context a declaration appears in
type scope struct {
	namespace  string
	containers []syntax.ContainerRef
}

func (s *state) peek() token {
	return s.tokens[s.pos]
}

func (s *state) peekAt(n int) token {
	if s.pos+n >= len(s.tokens) {
		return s.tokens[len(s.tokens)-1]
	}
	return s.tokens[s.pos+n]
}

func (s *state) next() token {
	t := s.tokens[s.pos]
	if t.kind != tokEOF {
		s.pos++
	}
	return t
}

func (s *state) advance(n int) {
	for i := 0; i < n; i++ {
		s.next()
	}
}

func (s *state) atEOF() bool {
	return s.peek().kind == tokEOF
}

func (s *state) accept(value string) bool {
	if s.peek().is(value) {
		s.next()
		return true
	}
	return false
}

func (s *state) previous() token {
	if s.pos == 0 {
		return s.tokens[0]
	}
	return s.tokens[s.pos-1]
}

// parseNamespaceBody parses compilation-unit or namespace members until the closing brace
func (s *state) parseNamespaceBody(namespace string, inBlock bool) {
	for !s.atEOF() {
		t := s.peek()
		switch {
		case t.is("}"):
			s.next()
			if inBlock {
				return
			}
		case t.is("global") && s.peekAt(1).is("using"):
			s.next()
			s.parseUsing(true)
		case t.is("using"):
			s.parseUsing(false)
		case t.is("extern") && s.peekAt(1).is("alias"):
			s.skipExpression()
		case t.is("namespace"):
			s.next()
			name := s.parseQualifiedName()
			if s.accept(";") {
				namespace = joinNamespace(namespace, name)
				continue
			}
			if s.accept("{") {
				s.parseNamespaceBody(joinNamespace(namespace, name), true)
			}
		default:
			s.parseDeclarationOrSkip(scope{namespace: namespace})
		}
	}
}

// parseUsing parses a using directive; using statements are skipped
func (s *state) parseUsing(global bool) {
	start := s.next()
	if s.peek().is("(") || s.peek().is("var") {
		s.skipExpression()
		return
	}

	u := syntax.UsingDirective{Global: global, Pos: start.pos}
	if s.accept("static") {
		u.Static = true
	}
	if s.peek().kind == tokIdent && s.peekAt(1).is("=") {
		u.Alias = s.next().value
		s.next()
	}

	var parts []token
	for !s.atEOF() && !s.peek().is(";") && !s.peek().is("{") && !s.peek().is("}") {
		parts = append(parts, s.next())
	}
	s.accept(";")

	u.Name = renderTokens(parts)
	if u.Name != "" {
		s.file.Usings = append(s.file.Usings, u)
	}
}

// parseDeclarationOrSkip parses a type declaration or skips one unrecognized token
func (s *state) parseDeclarationOrSkip(sc scope) {
	start := s.pos
	attrs, mods := s.parseAttributesAndModifiers()
	if kind, width, ok := s.peekTypeKeyword(); ok {
		s.parseTypeDecl(kind, width, attrs, mods, sc)
		return
	}

	t := s.peek()
	switch {
	case t.kind == tokEOF, t.is("}"):
		return
	case t.is("delegate"):
		s.skipMember()
	case t.is("{"), t.is("("), t.is("["):
		s.skipBalanced()
	default:
		if s.pos == start {
			s.next()
		}
	}
}

func (s *state) parseAttributesAndModifiers() ([]syntax.Attribute, []string) {
	var attrs []syntax.Attribute
	var mods []string
	for {
		t := s.peek()
		switch {
		case t.is("["):
			attrs = append(attrs, s.parseAttributeList()...)
		case t.kind == tokIdent && declarationModifiers[t.value]:
			mods = append(mods, s.next().value)
		default:
			return attrs, mods
		}
	}
}

func (s *state) peekTypeKeyword() (syntax.TypeKind, int, bool) {
	t := s.peek()
	switch {
	case t.is("class"):
		return syntax.KindClass, 1, true
	case t.is("struct"):
		return syntax.KindStruct, 1, true
	case t.is("interface"):
		return syntax.KindInterface, 1, true
	case t.is("enum"):
		return syntax.KindEnum, 1, true
	case t.is("record"):
		n := s.peekAt(1)
		switch {
		case n.is("struct"):
			return syntax.KindRecordStruct, 2, true
		case n.is("class"):
			return syntax.KindRecord, 2, true
		case n.kind == tokIdent:
			return syntax.KindRecord, 1, true
		}
	}
	return 0, 0, false
}

func (s *state) parseTypeDecl(kind syntax.TypeKind, width int, attrs []syntax.Attribute, mods []string, sc scope) {
	pos := s.peek().pos
	s.advance(width)

	nameTok := s.peek()
	if nameTok.kind != tokIdent {
		return
	}
	s.next()

	decl := &syntax.TypeDecl{
		Kind:       kind,
		Modifiers:  mods,
		Name:       nameTok.value,
		Namespace:  sc.namespace,
		Containers: append([]syntax.ContainerRef(nil), sc.containers...),
		Attributes: attrs,
		File:       s.file,
		Pos:        pos,
	}
	if s.peek().is("<") {
		decl.TypeParameters = s.parseTypeParameterList()
	}
	if s.peek().is("(") {
		// primary constructor parameters
		s.skipBalanced()
	}
	s.file.Types = append(s.file.Types, decl)

	if kind == syntax.KindEnum {
		for !s.atEOF() && !s.peek().is("{") && !s.peek().is(";") && !s.peek().is("}") {
			s.next()
		}
		if s.peek().is("{") {
			s.skipBalanced()
		}
		s.accept(";")
		return
	}

	if s.accept(":") {
		decl.BaseList = s.parseBaseList()
	}
	s.skipConstraints()

	if s.accept(";") || !s.accept("{") {
		return
	}
	s.parseTypeBody(decl)
	s.accept(";")
}

func (s *state) parseTypeParameterList() []string {
	s.next()
	var params []string
	depth := 1
	for !s.atEOF() && depth > 0 {
		t := s.peek()
		switch {
		case t.is("["):
			s.skipBalanced()
			continue
		case t.is("<"):
			depth++
		case t.is(">"):
			depth--
		case t.is("{"), t.is(";"):
			return params
		case t.kind == tokIdent && depth == 1 && t.value != "in" && t.value != "out":
			params = append(params, t.value)
		}
		s.next()
	}
	return params
}

func (s *state) parseBaseList() []syntax.BaseType {
	var bases []syntax.BaseType
	for !s.atEOF() {
		var parts []token
		depth := 0
		for !s.atEOF() {
			t := s.peek()
			if depth == 0 && (t.is(",") || t.is("{") || t.is(";") || t.is("}") || t.is("where")) {
				break
			}
			if depth == 0 && t.is("(") {
				// base constructor arguments of a primary constructor
				s.skipBalanced()
				continue
			}
			if t.is("<") {
				depth++
			} else if t.is(">") {
				depth--
			}
			parts = append(parts, s.next())
		}
		if len(parts) > 0 {
			bases = append(bases, classifyBase(parts))
		}
		if !s.accept(",") {
			break
		}
	}
	return bases
}

func classifyBase(parts []token) syntax.BaseType {
	base := syntax.BaseType{Text: renderTokens(parts), Pos: parts[0].pos}
	expectIdent := true
	for _, t := range parts {
		switch {
		case t.is("<"):
			base.Kind = syntax.BaseGeneric
			return base
		case t.is("::"):
			base.Kind = syntax.BaseOther
			return base
		case expectIdent && t.kind == tokIdent:
			expectIdent = false
		case !expectIdent && t.is("."):
			expectIdent = true
		default:
			base.Kind = syntax.BaseOther
			return base
		}
	}
	switch {
	case expectIdent:
		base.Kind = syntax.BaseOther
	case len(parts) == 1:
		base.Kind = syntax.BaseIdentifier
	default:
		base.Kind = syntax.BaseQualified
	}
	return base
}

func (s *state) skipConstraints() {
	if !s.peek().is("where") {
		return
	}
	for !s.atEOF() && !s.peek().is("{") && !s.peek().is(";") && !s.peek().is("}") {
		if s.peek().is("(") {
			s.skipBalanced()
			continue
		}
		s.next()
	}
}

func (s *state) parseTypeBody(decl *syntax.TypeDecl) {
	containers := append(append([]syntax.ContainerRef(nil), decl.Containers...), syntax.ContainerRef{
		Kind:           decl.Kind,
		Name:           decl.Name,
		TypeParameters: decl.TypeParameters,
	})
	sc := scope{namespace: decl.Namespace, containers: containers}

	for !s.atEOF() {
		if s.accept("}") {
			return
		}
		start := s.pos
		s.parseMember(decl, sc)
		if s.pos == start {
			s.next()
		}
	}
}

func (s *state) parseMember(decl *syntax.TypeDecl, sc scope) {
	attrs, mods := s.parseAttributesAndModifiers()
	if kind, width, ok := s.peekTypeKeyword(); ok {
		s.parseTypeDecl(kind, width, attrs, mods, sc)
		return
	}

	t := s.peek()
	switch {
	case t.is("}"):
		return
	case t.is(";"):
		s.next()
		return
	case t.is("{"):
		s.skipBalanced()
		return
	case t.is("delegate"), t.is("event"), t.is("~"):
		s.skipMember()
		return
	}
	if hasModifier(mods, "const") {
		s.skipExpression()
		return
	}
	s.parseMemberHeader(decl, mods)
}

// parseMemberHeader reads `Type Name` and dispatches on what follows it
func (s *state) parseMemberHeader(decl *syntax.TypeDecl, mods []string) {
	var header []token
	for !s.atEOF() {
		t := s.peek()
		if n := len(header); n > 0 && header[n-1].is("operator") {
			for !s.atEOF() && !s.peek().is("(") && !s.peek().is("{") && !s.peek().is(";") {
				header = append(header, s.next())
			}
			if len(header) > n {
				continue
			}
			t = s.peek()
		}

		switch {
		case t.is("(") && len(header) == 0:
			// tuple type
			header = append(header, s.collectGroup()...)
			continue
		case t.is("[") && len(header) > 0 && header[len(header)-1].is("this"):
			s.skipMember()
			return
		case t.is("["):
			header = append(header, s.collectGroup()...)
			continue
		case t.is("<"):
			header = append(header, s.collectAngles()...)
			continue
		case t.is("{"):
			s.finishProperty(decl, mods, header)
			return
		case t.is("=>"):
			if prop, ok := propertyFromHeader(header, mods); ok {
				prop.Accessors = []string{"get"}
				decl.Properties = append(decl.Properties, prop)
			}
			s.skipExpression()
			return
		case t.is("("):
			s.skipBalanced()
			s.skipMember()
			return
		case t.is(";"):
			s.next()
			return
		case t.is("="), t.is(","):
			s.skipExpression()
			return
		case t.is("}"):
			return
		}
		header = append(header, s.next())
	}
}

func (s *state) finishProperty(decl *syntax.TypeDecl, mods []string, header []token) {
	prop, ok := propertyFromHeader(header, mods)
	if !ok {
		s.skipBalanced()
		s.skipInitializer()
		return
	}
	prop.Accessors = s.parseAccessorList()
	s.skipInitializer()
	decl.Properties = append(decl.Properties, prop)
}

// propertyFromHeader splits member header tokens into type and name.
// Explicit interface implementations are rejected.
func propertyFromHeader(header []token, mods []string) (syntax.PropertyDecl, bool) {
	n := len(header)
	if n < 2 || header[n-1].kind != tokIdent {
		return syntax.PropertyDecl{}, false
	}
	if header[n-2].is(".") {
		return syntax.PropertyDecl{}, false
	}
	return syntax.PropertyDecl{
		Type:   renderTokens(header[:n-1]),
		Name:   header[n-1].value,
		Static: hasModifier(mods, "static"),
		Pos:    header[0].pos,
	}, true
}

func (s *state) parseAccessorList() []string {
	s.next()
	var accessors []string
	for !s.atEOF() {
		if s.accept("}") {
			return accessors
		}
		s.parseAttributesAndModifiers()

		t := s.peek()
		switch {
		case t.kind == tokIdent && accessorKeywords[t.value]:
			s.next()
			accessors = append(accessors, t.value)
			switch {
			case s.accept(";"):
			case s.peek().is("{"):
				s.skipBalanced()
			case s.peek().is("=>"):
				s.skipExpression()
			}
		case t.is("{"), t.is("("), t.is("["):
			s.skipBalanced()
		case t.is("}"):
			// handled at loop start
		default:
			s.next()
		}
	}
	return accessors
}

func (s *state) skipInitializer() {
	if s.peek().is("=") {
		s.skipExpression()
	}
}

// parseAttributeList parses `[target: A(...), B]`; lists targeting something else than the type are dropped
func (s *state) parseAttributeList() []syntax.Attribute {
	s.next()
	if s.peek().kind == tokIdent && s.peekAt(1).is(":") {
		target := s.next().value
		s.next()
		if !attributeTargetsOnTypes[target] {
			s.skipGroupBody("[")
			return nil
		}
	}

	var attrs []syntax.Attribute
	for !s.atEOF() {
		t := s.peek()
		switch {
		case t.is("]"):
			s.next()
			return attrs
		case t.is(","):
			s.next()
		case t.is("{"), t.is("}"), t.is(";"):
			// unterminated attribute list
			return attrs
		case t.kind == tokIdent:
			attr := syntax.Attribute{Pos: t.pos, Name: s.parseQualifiedName()}
			if s.peek().is("<") {
				s.collectAngles()
			}
			if s.peek().is("(") {
				attr.Arguments = s.parseAttributeArguments()
			}
			attrs = append(attrs, attr)
		case t.is("("):
			s.skipBalanced()
		default:
			s.next()
		}
	}
	return attrs
}

func (s *state) parseAttributeArguments() []syntax.AttributeArgument {
	s.next()
	var args []syntax.AttributeArgument
	for !s.atEOF() {
		switch t := s.peek(); {
		case t.is(")"):
			s.next()
			return args
		case t.is(","):
			s.next()
			continue
		case t.is("]"), t.is("{"), t.is("}"), t.is(";"):
			return args
		}

		var name string
		first := s.peek()
		if first.kind == tokIdent && ((s.peekAt(1).is("=") && !s.peekAt(2).is("=")) || s.peekAt(1).is(":")) {
			name = first.value
			s.advance(2)
		}

		start := s.peek()
		consumed := false
		for !s.atEOF() {
			t := s.peek()
			if t.is(",") || t.is(")") || t.is("]") || t.is("}") || t.is(";") {
				break
			}
			if t.is("(") || t.is("[") || t.is("{") {
				s.skipBalanced()
			} else {
				s.next()
			}
			consumed = true
		}

		text := ""
		if consumed {
			end := s.previous()
			text = strings.TrimSpace(s.source[start.offset : end.offset+len(end.value)])
		}
		args = append(args, syntax.AttributeArgument{Name: name, Text: text, Pos: start.pos})
	}
	return args
}

func (s *state) parseQualifiedName() string {
	var parts []token
	for s.peek().kind == tokIdent {
		parts = append(parts, s.next())
		if s.peek().is(".") || s.peek().is("::") {
			parts = append(parts, s.next())
			continue
		}
		break
	}
	return renderTokens(parts)
}

// skipBalanced consumes the bracketed group starting at the current token
func (s *state) skipBalanced() {
	open := s.next()
	if _, ok := closers[open.value]; !ok {
		return
	}
	s.skipGroupBody(open.value)
}

// skipGroupBody consumes tokens up to the closer matching an already consumed opener
func (s *state) skipGroupBody(open string) {
	stack := []string{closers[open]}
	for len(stack) > 0 {
		t := s.next()
		if t.kind == tokEOF {
			return
		}
		if t.kind != tokPunct {
			continue
		}
		if c, ok := closers[t.value]; ok {
			stack = append(stack, c)
			continue
		}
		if t.value == ")" || t.value == "]" || t.value == "}" {
			for i := len(stack) - 1; i >= 0; i-- {
				if stack[i] == t.value {
					stack = stack[:i]
					break
				}
			}
		}
	}
}

// collectGroup returns the tokens of the bracketed group at the cursor, brackets included
func (s *state) collectGroup() []token {
	start := s.pos
	s.skipBalanced()
	return append([]token(nil), s.tokens[start:s.pos]...)
}

// collectAngles returns the tokens of a type argument list at the cursor
func (s *state) collectAngles() []token {
	var result []token
	depth := 0
	for !s.atEOF() {
		t := s.peek()
		switch {
		case t.is("<"):
			depth++
		case t.is(">"):
			depth--
		case t.is("("), t.is("["):
			result = append(result, s.collectGroup()...)
			continue
		case t.is("{"), t.is("}"), t.is(";"), t.is("=>"):
			return result
		}
		result = append(result, s.next())
		if depth == 0 {
			return result
		}
	}
	return result
}

// skipExpression consumes up to and including the next top-level semicolon
func (s *state) skipExpression() {
	for !s.atEOF() {
		t := s.peek()
		switch {
		case t.is(";"):
			s.next()
			return
		case t.is("}"):
			return
		case t.is("("), t.is("["), t.is("{"):
			s.skipBalanced()
		default:
			s.next()
		}
	}
}

// skipMember consumes the rest of a method-like member: a body, an expression body or a semicolon
func (s *state) skipMember() {
	for !s.atEOF() {
		t := s.peek()
		switch {
		case t.is("{"):
			s.skipBalanced()
			return
		case t.is("=>"):
			s.skipExpression()
			return
		case t.is(";"):
			s.next()
			return
		case t.is("}"):
			return
		case t.is("("), t.is("["):
			s.skipBalanced()
		default:
			s.next()
		}
	}
}

func hasModifier(mods []string, modifier string) bool {
	for _, m := range mods {
		if m == modifier {
			return true
		}
	}
	return false
}

func joinNamespace(outer, inner string) string {
	switch {
	case outer == "":
		return inner
	case inner == "":
		return outer
	default:
		return fmt.Sprintf("%s.%s", outer, inner)
	}
}

// renderTokens joins tokens into normalized source text: `Dictionary<string, int>`, `(int a, string b)`
func renderTokens(tokens []token) string {
	var b strings.Builder
	for i, t := range tokens {
		if i > 0 && needsSpace(tokens[i-1], t) {
			b.WriteByte(' ')
		}
		b.WriteString(t.value)
	}
	return b.String()
}

func needsSpace(prev, cur token) bool {
	if prev.is(",") {
		return true
	}
	if !isWordToken(cur) {
		return false
	}
	if isWordToken(prev) {
		return true
	}
	return prev.is("?") || prev.is("]") || prev.is(">") || prev.is(")") || prev.is("*")
}

func isWordToken(t token) bool {
	return t.kind == tokIdent || t.kind == tokNumber
}
