package templates

import "github.com/toyz/autoimpl/internal/syntax"

// ImportManager collects the using directives of one generated unit,
// keeping first-seen order and dropping duplicates
type ImportManager struct {
	namespace string // namespace of the generated unit
	seen      map[string]bool
	usings    []string
}

// NewImportManager creates an import manager for a unit emitted into namespace
func NewImportManager(namespace string) *ImportManager {
	return &ImportManager{
		namespace: namespace,
		seen:      make(map[string]bool),
	}
}

// AddUsing adds a directive. Global directives already apply to every file
// and are skipped, as is an import of the unit's own namespace.
func (im *ImportManager) AddUsing(u syntax.UsingDirective) {
	if u.Global || u.Name == "" {
		return
	}
	if !u.Static && u.Alias == "" && u.Name == im.namespace {
		return
	}
	im.add(u.String())
}

// AddNamespace adds a plain using directive for a namespace
func (im *ImportManager) AddNamespace(namespace string) {
	if namespace == "" {
		return
	}
	im.AddUsing(syntax.UsingDirective{Name: namespace})
}

// Usings returns the rendered directives in insertion order
func (im *ImportManager) Usings() []string {
	result := make([]string, len(im.usings))
	copy(result, im.usings)
	return result
}

// IsEmpty reports whether no directive was added
func (im *ImportManager) IsEmpty() bool {
	return len(im.usings) == 0
}

func (im *ImportManager) add(line string) {
	if im.seen[line] {
		return
	}
	im.seen[line] = true
	im.usings = append(im.usings, line)
}
