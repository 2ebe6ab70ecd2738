// Package diag is the diagnostic collector described by the component
// language spec: a typed, span-anchored error channel used by the template
// parser and root orchestrator (the bridge and style parser return plain
// errors, which those callers report here). It replaces ad hoc
// error returns the way the teacher's internal/handler package replaces
// plain `error` values with `{code, message, span}` records tied back to
// source.
package diag

import (
	"fmt"

	"github.com/tesselate/compiler/internal/loc"
)

// Code is a stable, machine-readable diagnostic identifier. Stability
// matters more than English wording: downstream tooling matches on Code,
// never on Message.
type Code string

// Lexical: surfaced by sub-parsers (script/style) and relayed as-is.
const (
	CodeMalformedEscape    Code = "malformed_escape"
	CodeUnterminatedString Code = "unterminated_string"
	CodeInvalidNumber      Code = "invalid_numeric_literal"
)

// Syntactic
const (
	CodeUnexpectedEOF         Code = "unexpected_eof"
	CodeExpectedToken         Code = "expected_token"
	CodeUnclosedElement       Code = "unclosed_element"
	CodeUnclosedBlock         Code = "unclosed_block"
	CodeInvalidAttributeValue Code = "invalid_attribute_value"
	CodeInvalidDirective      Code = "invalid_directive"
	CodeDuplicateAttribute    Code = "duplicate_attribute"
	CodeInvalidBlockPlacement Code = "invalid_block_placement"
	CodeExpectedPattern       Code = "expected_pattern"
	CodeInvalidTagPlacement   Code = "invalid_svelte_tag_placement"
)

// Structural
const (
	CodeDuplicateScript      Code = "duplicate_script"
	CodeDuplicateStyle       Code = "duplicate_style"
	CodeBlockArmOutsideBlock Code = "block_arm_outside_block"
)

// Semantic (shallow)
const (
	CodeMissingThisOnSvelteElement Code = "missing_this_on_svelte_element"
)

// Bridge-originated, wrapping a sub-parser's own code as Cause.
const (
	CodeInvalidExpressionInAttribute Code = "invalid_expression_in_attribute"
)

// Severity buckets a Diagnostic the way the teacher's handler buckets
// errors/warnings/infos/hints, but as one ordered list rather than four
// separate slices — the spec requires a single collector that "preserves
// insertion order".
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
	SeverityHint
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	case SeverityHint:
		return "hint"
	default:
		return "unknown"
	}
}

// Diagnostic is a single typed parse error or warning anchored to a source
// span.
type Diagnostic struct {
	Code     Code
	Message  string
	Span     loc.Span
	Severity Severity
	Filename string
	// Cause holds an inner sub-parser code when this diagnostic wraps one
	// (spec §7: "the template parser adds an enclosing code ... and
	// preserves the inner code as cause").
	Cause Code
}

func (d Diagnostic) Error() string {
	if d.Filename != "" {
		return fmt.Sprintf("%s: %s (%s) at %d:%d", d.Filename, d.Message, d.Code, d.Span.Start, d.Span.End)
	}
	return fmt.Sprintf("%s (%s) at %d:%d", d.Message, d.Code, d.Span.Start, d.Span.End)
}

// Mode selects strict-mode abort-on-first-error versus loose-mode recovery.
type Mode int

const (
	Strict Mode = iota
	Loose
)

// Fatal is raised from strict mode and carries the aborting diagnostic.
type Fatal struct {
	Diagnostic Diagnostic
}

func (f *Fatal) Error() string {
	return f.Diagnostic.Error()
}

// Collector accumulates diagnostics in insertion order. In Strict mode the
// first error-severity diagnostic panics with *Fatal, which the top-level
// Parse entry point recovers into a returned error; in Loose mode every
// diagnostic is recorded and parsing continues, leaning on the caller to
// insert recovery nodes where the grammar permits.
type Collector struct {
	mode        Mode
	filename    string
	diagnostics []Diagnostic
}

func NewCollector(mode Mode, filename string) *Collector {
	return &Collector{mode: mode, filename: filename}
}

func (c *Collector) Mode() Mode {
	return c.mode
}

func (c *Collector) Loose() bool {
	return c.mode == Loose
}

// Report records a diagnostic. In Strict mode, an error-severity diagnostic
// aborts parsing immediately via panic(*Fatal); callers at the top of the
// call stack (Parse) must recover it. In Loose mode, Report never aborts —
// the caller is expected to follow up by constructing a recovery node.
func (c *Collector) Report(d Diagnostic) {
	d.Filename = c.filename
	c.diagnostics = append(c.diagnostics, d)
	if c.mode == Strict && d.Severity == SeverityError {
		panic(&Fatal{Diagnostic: d})
	}
}

// Errorf is shorthand for Report with SeverityError.
func (c *Collector) Errorf(code Code, span loc.Span, format string, args ...interface{}) {
	c.Report(Diagnostic{Code: code, Message: fmt.Sprintf(format, args...), Span: span, Severity: SeverityError})
}

// Warnf is shorthand for Report with SeverityWarning.
func (c *Collector) Warnf(code Code, span loc.Span, format string, args ...interface{}) {
	c.Report(Diagnostic{Code: code, Message: fmt.Sprintf(format, args...), Span: span, Severity: SeverityWarning})
}

func (c *Collector) HasErrors() bool {
	for _, d := range c.diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Diagnostics returns every recorded diagnostic, in insertion order.
func (c *Collector) Diagnostics() []Diagnostic {
	return c.diagnostics
}

// Errors returns only the error-severity diagnostics, in insertion order.
func (c *Collector) Errors() []Diagnostic {
	out := make([]Diagnostic, 0, len(c.diagnostics))
	for _, d := range c.diagnostics {
		if d.Severity == SeverityError {
			out = append(out, d)
		}
	}
	return out
}
