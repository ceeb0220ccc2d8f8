package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/toyz/autoimpl/internal/errors"
	"github.com/toyz/autoimpl/internal/models"
)

// DiagnosticReporter provides user-friendly error reporting and diagnostics
type DiagnosticReporter struct {
	verbose bool
	out     io.Writer
}

// NewDiagnosticReporter creates a new diagnostic reporter writing to stderr
func NewDiagnosticReporter(verbose bool) *DiagnosticReporter {
	return NewDiagnosticReporterTo(verbose, os.Stderr)
}

// NewDiagnosticReporterTo creates a diagnostic reporter writing to out
func NewDiagnosticReporterTo(verbose bool, out io.Writer) *DiagnosticReporter {
	return &DiagnosticReporter{
		verbose: verbose,
		out:     out,
	}
}

var warningMark = color.New(color.FgYellow, color.Bold)

// ReportWarning prints a single warning line followed by its suggestions in verbose mode
func (r *DiagnosticReporter) ReportWarning(message string, suggestions ...string) {
	warningMark.Fprint(r.out, "! ")
	fmt.Fprintf(r.out, "%s\n", message)
	if r.verbose {
		for _, s := range suggestions {
			fmt.Fprintf(r.out, "    - %s\n", s)
		}
	}
}

// ReportUnresolved warns about every interface reference that matched nothing
func (r *DiagnosticReporter) ReportUnresolved(unresolved []models.UnresolvedReference) {
	for _, u := range unresolved {
		name := u.Reference.String()
		if u.Reference.IsBlank() {
			name = "<empty>"
		}
		err := errors.NewResolutionError(u.Declaration, name, errors.SourceLocation{File: u.File})
		r.ReportWarning(err.Error()+"; skipped", append(err.Suggestions(),
			"Add a using directive for the interface namespace or qualify the name")...)
	}
}

// ReportParseErrors warns about every file left out of the pass
func (r *DiagnosticReporter) ReportParseErrors(parseErrors *errors.MultipleErrors) {
	if parseErrors == nil {
		return
	}
	for _, err := range parseErrors.Errors {
		r.ReportWarning(err.Error(), "Fix the syntax error; the file is ignored until it parses")
	}
}

// ReportError provides comprehensive error reporting with user-friendly output
func (r *DiagnosticReporter) ReportError(err error) {
	fmt.Fprintf(r.out, "\nERROR: Code Generation Failed\n")
	fmt.Fprintf(r.out, "=============================\n\n")

	var genErr errors.GeneratorError
	if stderrors.As(err, &genErr) {
		r.reportGeneratorError(genErr)
	} else {
		r.reportBasicError(err)
	}

	fmt.Fprintf(r.out, "\n")
}

// reportGeneratorError reports a GeneratorError with full context and suggestions
func (r *DiagnosticReporter) reportGeneratorError(genErr errors.GeneratorError) {
	r.printErrorHeader(genErr.ErrorCode())

	fmt.Fprintf(r.out, "Message: %s\n\n", genErr.Error())

	if r.verbose && genErr.Unwrap() != nil {
		fmt.Fprintf(r.out, "Underlying cause: %s\n\n", genErr.Unwrap().Error())
	}

	if loc := genErr.Location(); !loc.IsEmpty() {
		fmt.Fprintf(r.out, "Location: %s\n\n", loc.String())
	}

	if context := genErr.Context(); len(context) > 0 {
		r.printContext(context)
	}

	if suggestions := genErr.Suggestions(); len(suggestions) > 0 {
		r.printSuggestions(suggestions)
	}

	r.printAdditionalHelp(genErr.ErrorCode())

	if r.verbose {
		r.printVerboseDebuggingInfo(genErr)
	}
}

// reportBasicError reports a basic error without rich context
func (r *DiagnosticReporter) reportBasicError(err error) {
	fmt.Fprintf(r.out, "Message: %s\n\n", err.Error())

	errorMsg := strings.ToLower(err.Error())
	if strings.Contains(errorMsg, "permission") {
		fmt.Fprintf(r.out, "This appears to be a permission issue.\n")
		fmt.Fprintf(r.out, "Common solutions:\n")
		fmt.Fprintf(r.out, "  - Check that the output directory is writable\n")
		fmt.Fprintf(r.out, "  - Ensure the source directories are readable\n\n")
	}
}

// printErrorHeader prints a formatted error header based on error code
func (r *DiagnosticReporter) printErrorHeader(code errors.ErrorCode) {
	var errorTypeStr string

	switch code {
	case errors.SyntaxErrorCode:
		errorTypeStr = "Syntax Error"
	case errors.ConfigurationErrorCode:
		errorTypeStr = "Configuration Error"
	case errors.FileSystemErrorCode:
		errorTypeStr = "File System Error"
	case errors.GenerationErrorCode:
		errorTypeStr = "Code Generation Error"
	case errors.TemplateErrorCode:
		errorTypeStr = "Template Error"
	case errors.ResolutionErrorCode:
		errorTypeStr = "Resolution Error"
	default:
		errorTypeStr = "Unknown Error"
	}

	fmt.Fprintf(r.out, "Type: %s\n", errorTypeStr)
	fmt.Fprintf(r.out, "%s\n\n", strings.Repeat("-", len(errorTypeStr)+6))
}

// printContext prints context information with important keys first
func (r *DiagnosticReporter) printContext(context map[string]interface{}) {
	fmt.Fprintf(r.out, "Context:\n")

	importantKeys := []string{"path", "config_type", "field", "operation"}
	printed := make(map[string]bool)

	for _, key := range importantKeys {
		if value, exists := context[key]; exists {
			fmt.Fprintf(r.out, "   %s: %v\n", r.formatContextKey(key), value)
			printed[key] = true
		}
	}

	rest := make([]string, 0, len(context))
	for key := range context {
		if !printed[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	for _, key := range rest {
		fmt.Fprintf(r.out, "   %s: %v\n", r.formatContextKey(key), context[key])
	}

	fmt.Fprintf(r.out, "\n")
}

// formatContextKey formats context keys to be more readable
func (r *DiagnosticReporter) formatContextKey(key string) string {
	switch key {
	case "config_type":
		return "Setting"
	case "target_file":
		return "Target File"
	default:
		parts := strings.Split(key, "_")
		for i, part := range parts {
			if len(part) > 0 {
				parts[i] = strings.ToUpper(part[:1]) + part[1:]
			}
		}
		return strings.Join(parts, " ")
	}
}

// printSuggestions prints actionable suggestions
func (r *DiagnosticReporter) printSuggestions(suggestions []string) {
	fmt.Fprintf(r.out, "Suggestions:\n")

	for i, suggestion := range suggestions {
		lines := strings.Split(suggestion, "\n")
		fmt.Fprintf(r.out, "   %d. %s\n", i+1, lines[0])
		for _, line := range lines[1:] {
			if strings.TrimSpace(line) != "" {
				fmt.Fprintf(r.out, "      %s\n", line)
			}
		}
	}

	fmt.Fprintf(r.out, "\n")
}

// printAdditionalHelp prints additional help based on error code
func (r *DiagnosticReporter) printAdditionalHelp(code errors.ErrorCode) {
	switch code {
	case errors.ConfigurationErrorCode:
		fmt.Fprintf(r.out, "Configuration Help:\n")
		fmt.Fprintf(r.out, "  - Flags override values from %s\n", DefaultConfigFile)
		fmt.Fprintf(r.out, "  - Strategies: named, qualified, inherited\n\n")

	case errors.SyntaxErrorCode:
		fmt.Fprintf(r.out, "Syntax Help:\n")
		fmt.Fprintf(r.out, "  - Files that fail to parse are skipped\n")
		fmt.Fprintf(r.out, "  - Only declarations, attributes and property signatures are read\n\n")
	}

	fmt.Fprintf(r.out, "For more help:\n")
	fmt.Fprintf(r.out, "  - Run with -verbose for more detailed output\n")
	fmt.Fprintf(r.out, "  - Run with -help to list every option\n")
}

// printVerboseDebuggingInfo prints the error code, context and cause chain
func (r *DiagnosticReporter) printVerboseDebuggingInfo(genErr errors.GeneratorError) {
	fmt.Fprintf(r.out, "\nVerbose Debug Information:\n")
	fmt.Fprintf(r.out, "  Error Code: %s (%d)\n", genErr.ErrorCode(), int(genErr.ErrorCode()))

	if cause := genErr.Unwrap(); cause != nil {
		fmt.Fprintf(r.out, "  Error Chain:\n")
		level := 1
		for err := cause; err != nil; err = stderrors.Unwrap(err) {
			fmt.Fprintf(r.out, "    %d. %s\n", level, err.Error())
			level++
		}
	}

	fmt.Fprintf(r.out, "\n")
}

// Debug prints debug information when verbose mode is enabled
func (r *DiagnosticReporter) Debug(format string, args ...interface{}) {
	if r.verbose {
		fmt.Fprintf(r.out, "[DEBUG] "+format+"\n", args...)
	}
}
