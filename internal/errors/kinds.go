package errors

import "fmt"

// SyntaxError represents a source file that could not be tokenized
type SyntaxError struct {
	*BaseError
}

// GenerationError represents an error during code generation
type GenerationError struct {
	*BaseError
	TargetFile string // hint name of the file being generated
	Stage      string // stage of generation where error occurred
}

// WithStage sets the generation stage
func (e *GenerationError) WithStage(stage string) *GenerationError {
	e.Stage = stage
	return e
}

// ResolutionError reports an interface reference that matched no interface symbol
type ResolutionError struct {
	*BaseError
	TypeName  string // annotated type
	Reference string // reference as written
}

// NewResolutionError creates a resolution error for an annotated type
func NewResolutionError(typeName, reference string, loc SourceLocation) *ResolutionError {
	message := fmt.Sprintf("interface '%s' referenced by '%s' could not be resolved", reference, typeName)
	err := &ResolutionError{
		BaseError: New(ResolutionErrorCode, message).WithLocation(loc),
		TypeName:  typeName,
		Reference: reference,
	}
	err.WithSuggestion("Check the interface name and the using directives of the file")
	return err
}
