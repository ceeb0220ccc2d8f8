package models

// GeneratedFileSuffix marks every emitted file name
const GeneratedFileSuffix = ".g.cs"

// GenerationUnit is one emitted source text for a (target, interface) pair
type GenerationUnit struct {
	TypeName      string // target type simple name
	Namespace     string // target namespace
	InterfaceName string // interface simple name
	Key           string // <TypeName>_<InterfaceName>
	FileName      string // unique output file name within the pass
	Source        string // emitted source text
}

// UnitKey builds the identity key of a unit
func UnitKey(typeName, interfaceName string) string {
	return typeName + "_" + interfaceName
}

// UnresolvedReference records a reference that was skipped during a pass
type UnresolvedReference struct {
	Declaration string             // target type full name
	Reference   InterfaceReference // reference as written
	File        string             // file of the annotation site
}

// PassResult is everything produced by one generation pass
type PassResult struct {
	Marker     GenerationUnit        // marker declaration, emitted once per pass
	Units      []GenerationUnit      // generated units in deterministic order
	Unresolved []UnresolvedReference // references skipped because nothing matched
	Targets    int                   // number of candidate declarations processed
}

// Clone returns a copy that shares no slices with r
func (r *PassResult) Clone() *PassResult {
	clone := *r
	clone.Units = append([]GenerationUnit(nil), r.Units...)
	clone.Unresolved = append([]UnresolvedReference(nil), r.Unresolved...)
	return &clone
}

// Files returns every output file of the pass, marker first
func (r *PassResult) Files() []GenerationUnit {
	files := make([]GenerationUnit, 0, len(r.Units)+1)
	if r.Marker.FileName != "" {
		files = append(files, r.Marker)
	}
	return append(files, r.Units...)
}
