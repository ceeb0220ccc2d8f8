package annotations

import (
	"fmt"
	"regexp"

	"github.com/toyz/autoimpl/internal/models"
	"github.com/toyz/autoimpl/internal/syntax"
)

const (
	// DefaultMarkerName is the marker attribute name as written at use sites
	DefaultMarkerName = "AutoImplement"
	// DefaultMarkerNamespace holds the emitted marker declaration
	DefaultMarkerNamespace = "AttributeGenerator"
)

var (
	identifierPattern = regexp.MustCompile(`^[\p{L}_][\p{L}\p{N}_]*$`)
	namespacePattern  = regexp.MustCompile(`^[\p{L}_][\p{L}\p{N}_]*(\.[\p{L}_][\p{L}\p{N}_]*)*$`)
)

// Marker identifies the attribute that requests generation
type Marker struct {
	Name      string // simple name, with or without the Attribute suffix
	Namespace string // namespace the marker declaration is emitted into
}

// DefaultMarker returns the AttributeGenerator.AutoImplement marker
func DefaultMarker() Marker {
	return Marker{Name: DefaultMarkerName, Namespace: DefaultMarkerNamespace}
}

// SimpleName returns the name used at attribute sites, without the Attribute suffix
func (m Marker) SimpleName() string {
	return syntax.TrimAttributeSuffix(m.Name)
}

// ClassName returns the declared class name of the marker
func (m Marker) ClassName() string {
	return m.SimpleName() + "Attribute"
}

// HintName returns the output file name of the marker declaration
func (m Marker) HintName() string {
	return m.ClassName() + models.GeneratedFileSuffix
}

// Matches reports whether an attribute application refers to the marker
func (m Marker) Matches(attr syntax.Attribute) bool {
	return attr.SimpleName() == m.SimpleName()
}

// Find returns the marker application on a declaration, if any
func (m Marker) Find(decl *syntax.TypeDecl) (syntax.Attribute, bool) {
	return decl.FindAttribute(m.SimpleName())
}

// Validate checks that the marker can be emitted as a declaration
func (m Marker) Validate() error {
	if !identifierPattern.MatchString(m.Name) {
		return fmt.Errorf("marker name '%s' is not a valid identifier", m.Name)
	}
	if !namespacePattern.MatchString(m.Namespace) {
		return fmt.Errorf("marker namespace '%s' is not a valid namespace", m.Namespace)
	}
	return nil
}
