package registry

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/toyz/autoimpl/internal/syntax"
)

// typeLexer tokenizes type expressions such as Dictionary<string, List<int>>?
var typeLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Ident", Pattern: `@?[\p{L}_][\p{L}\p{N}_]*`},
	{Name: "DoubleColon", Pattern: `::`},
	{Name: "Punct", Pattern: `[<>,.?\[\]()*]`},
	{Name: "Other", Pattern: `.`},
})

var (
	whitespaceToken = typeLexer.Symbols()["Whitespace"]
	identToken      = typeLexer.Symbols()["Ident"]
)

// QualifyType rewrites every name in a type expression that resolves, as
// seen from namespace with usings in scope, to global::Full.Name. Keywords,
// tuple element names and unknown names are left untouched. The flag is
// false when at least one name could not be resolved.
func (c *Compilation) QualifyType(display, namespace string, usings []syntax.UsingDirective) (string, bool) {
	tokens, err := lexTypeExpression(display)
	if err != nil {
		return display, false
	}

	scope := c.newLookupScope(namespace, usings)
	var b strings.Builder
	last := 0
	complete := true
	for i := 0; i < len(tokens); {
		start := tokens[i]
		if start.Type != identToken {
			i++
			continue
		}

		parts := []string{start.Value}
		end := start.Pos.Offset + len(start.Value)
		j := i
		for j+2 < len(tokens) && tokens[j+1].Value == "." && tokens[j+2].Type == identToken {
			parts = append(parts, tokens[j+2].Value)
			end = tokens[j+2].Pos.Offset + len(tokens[j+2].Value)
			j += 2
		}
		next := j + 1

		if !isQualifiableRun(tokens, i, next, parts) {
			i = next
			continue
		}
		if full, ok := scope.resolve(parts, genericArity(tokens, next)); ok {
			b.WriteString(display[last:start.Pos.Offset])
			b.WriteString(globalAlias)
			b.WriteString(full)
			last = end
		} else {
			complete = false
		}
		i = next
	}
	b.WriteString(display[last:])
	return b.String(), complete
}

func lexTypeExpression(display string) ([]lexer.Token, error) {
	lx, err := typeLexer.LexString("", display)
	if err != nil {
		return nil, err
	}
	raw, err := lexer.ConsumeAll(lx)
	if err != nil {
		return nil, err
	}
	tokens := make([]lexer.Token, 0, len(raw))
	for _, t := range raw {
		if t.EOF() || t.Type == whitespaceToken {
			continue
		}
		tokens = append(tokens, t)
	}
	return tokens, nil
}

// isQualifiableRun reports whether tokens[start:next] names a type. Alias
// qualified names, tuple element names and keywords are not.
func isQualifiableRun(tokens []lexer.Token, start, next int, parts []string) bool {
	if len(parts) == 1 && predefinedTypes[parts[0]] {
		return false
	}
	if next < len(tokens) && tokens[next].Value == "::" {
		return false
	}
	if start == 0 {
		return true
	}
	prev := tokens[start-1]
	switch {
	case prev.Type == identToken:
		return false
	case prev.Value == "::", prev.Value == ".":
		return false
	case prev.Value == ">", prev.Value == "]", prev.Value == "?", prev.Value == ")", prev.Value == "*":
		return false
	}
	return true
}

// genericArity counts the type arguments of the list starting at tokens[at], zero if there is none
func genericArity(tokens []lexer.Token, at int) int {
	if at >= len(tokens) || tokens[at].Value != "<" {
		return 0
	}
	arity := 1
	angle, nested := 0, 0
	for _, t := range tokens[at:] {
		switch t.Value {
		case "<":
			angle++
		case ">":
			angle--
			if angle == 0 {
				return arity
			}
		case "(", "[":
			nested++
		case ")", "]":
			nested--
		case ",":
			if angle == 1 && nested == 0 {
				arity++
			}
		}
	}
	return arity
}

// lookupScope is the name lookup context of one type expression
type lookupScope struct {
	compilation *Compilation
	namespaces  []string          // enclosing namespaces, innermost first
	aliases     map[string]string // alias to target
	imports     []string          // imported namespaces in order
}

func (c *Compilation) newLookupScope(namespace string, usings []syntax.UsingDirective) *lookupScope {
	scope := &lookupScope{
		compilation: c,
		namespaces:  syntax.EnclosingNamespaces(namespace),
		aliases:     make(map[string]string),
	}
	all := append(append([]syntax.UsingDirective(nil), usings...), c.globalUsings...)
	seen := make(map[string]bool)
	for _, u := range all {
		target := strings.TrimPrefix(u.Name, globalAlias)
		switch {
		case u.Static:
			continue
		case u.Alias != "":
			if _, exists := scope.aliases[u.Alias]; !exists {
				scope.aliases[u.Alias] = target
			}
		case !seen[target]:
			seen[target] = true
			scope.imports = append(scope.imports, target)
		}
	}
	return scope
}

// resolve finds the full name of a dotted name: enclosing namespaces, then
// aliases and imports, then the global namespace
func (s *lookupScope) resolve(parts []string, arity int) (string, bool) {
	dotted := strings.Join(parts, ".")

	for _, ns := range s.namespaces {
		if full, ok := s.resolveFull(ns+"."+dotted, arity); ok {
			return full, true
		}
	}
	if target, ok := s.aliases[parts[0]]; ok {
		candidate := strings.Join(append([]string{target}, parts[1:]...), ".")
		if full, ok := s.resolveFull(candidate, arity); ok {
			return full, true
		}
	}
	for _, imp := range s.imports {
		if full, ok := s.resolveFull(imp+"."+dotted, arity); ok {
			return full, true
		}
	}
	return s.resolveFull(dotted, arity)
}

func (s *lookupScope) resolveFull(name string, arity int) (string, bool) {
	if sym, ok := s.compilation.lookupDotted(name, arity); ok {
		return sym.fullName, true
	}
	if wellKnownTypes[dottedKey(name, arity)] {
		return name, true
	}
	return "", false
}
