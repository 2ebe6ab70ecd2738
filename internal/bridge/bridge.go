// Package bridge implements the expression bridge (spec §4.3) and the
// pluggable sub-parser ABI (spec §6). It hands a byte range plus a parse
// mode to an injected script sub-parser, reattaches the returned sub-AST
// into the template AST at exact source offsets, and runs it through
// internal/estree's canonicalizer before returning it.
//
// The injection point is the same singleton pattern the teacher uses for
// its own embedded TypeScript parser (internal/ts_parser, ts_parser):
// "the typescript parser will be a singleton initialized at startup so we
// can import it from anywhere without having to pass it around." The
// actual script language is out of scope here (spec §1 lists "the
// underlying script ... lexers/parsers" as an external collaborator), so
// ScriptParser is an interface rather than a concrete WASM-backed parser,
// and a deterministic Stub implementation (stub.go) stands in for tests.
package bridge

import (
	"github.com/tesselate/compiler/internal/estree"
	"github.com/tesselate/compiler/internal/style"
)

// ScriptParser is the black-box script sub-parser ABI from spec §6. Every
// method receives the *whole* source buffer plus a start offset hint, and
// returns a sub-AST whose start/end fields are already absolute byte
// offsets into that same buffer — "sub-parser operates on the whole source
// with a start hint" (spec §4.3).
type ScriptParser interface {
	ParseModule(source []byte, startOffset int) (estree.Value, int, error)
	ParseExpression(source []byte, startOffset int) (estree.Value, int, error)
	ParsePattern(source []byte, startOffset int) (estree.Value, int, error)
	ParseTypeAnnotation(source []byte, startOffset int) (estree.Value, int, error)
	ParseVariableDeclaration(source []byte, startOffset int) (estree.Value, int, error)
	ParseStatementList(source []byte, startOffset int) ([]estree.Value, int, error)
}

var singleton ScriptParser

// Get returns the currently installed ScriptParser, defaulting to Stub if
// none has been set.
func Get() ScriptParser {
	if singleton == nil {
		singleton = Stub{}
	}
	return singleton
}

// SetScriptParser installs the script sub-parser used by every Bridge
// created afterward. Call this once at process startup, mirroring
// ts_parser.Get().SetParser(...) in the teacher.
func SetScriptParser(p ScriptParser) {
	singleton = p
}

// Bridge adapts the installed ScriptParser and the in-module style.Parser
// to the template parser's needs, applying ESTree canonicalization to
// every sub-AST it hands back.
type Bridge struct {
	Script ScriptParser
	Style  style.Parser
}

// New constructs a Bridge using the globally installed ScriptParser and
// this module's own recursive-descent style parser (spec §4.4 is a core
// component of this system, not an external collaborator, so it is wired
// in directly rather than injected).
func New() *Bridge {
	return &Bridge{Script: Get(), Style: style.NewParser()}
}

// ParseExpressionAt parses a single expression starting at offset and
// returns its canonicalized form plus the offset immediately after it.
func (b *Bridge) ParseExpressionAt(source []byte, offset int, ctx estree.Context) (estree.Value, int, error) {
	v, end, err := b.Script.ParseExpression(source, offset)
	if err != nil {
		return estree.Value{}, offset, err
	}
	return estree.Canonicalize(v, ctx), end, nil
}

// ParsePatternAt parses a binding pattern (each-block context, snippet
// parameters, await then/catch bindings).
func (b *Bridge) ParsePatternAt(source []byte, offset int, ctx estree.Context) (estree.Value, int, error) {
	v, end, err := b.Script.ParsePattern(source, offset)
	if err != nil {
		return estree.Value{}, offset, err
	}
	return estree.Canonicalize(v, ctx), end, nil
}

// ParseVariableDeclarationAt parses the declaration inside a {@const ...}
// tag.
func (b *Bridge) ParseVariableDeclarationAt(source []byte, offset int) (estree.Value, int, error) {
	v, end, err := b.Script.ParseVariableDeclaration(source, offset)
	if err != nil {
		return estree.Value{}, offset, err
	}
	v = estree.Canonicalize(v, estree.ContextConstDeclaration)
	// spec §4.3: "For VariableDeclaration emitted inside ConstTag, drop loc
	// but keep start/end" — already guaranteed by Canonicalize denying
	// "loc" unconditionally; start/end are never touched by it.
	return v, end, nil
}

// ParseModuleAt parses an entire <script> body as a Program.
func (b *Bridge) ParseModuleAt(source []byte, offset int) (estree.Value, int, error) {
	v, end, err := b.Script.ParseModule(source, offset)
	if err != nil {
		return estree.Value{}, offset, err
	}
	return estree.Canonicalize(v, estree.ContextScriptBody), end, nil
}

// ParseStatementListAt parses a {@debug a, b} identifier list or similar
// comma-joined statement-level fragment; used sparingly since most of the
// grammar asks for expressions or patterns instead.
func (b *Bridge) ParseStatementListAt(source []byte, offset int, ctx estree.Context) ([]estree.Value, int, error) {
	vs, end, err := b.Script.ParseStatementList(source, offset)
	if err != nil {
		return nil, offset, err
	}
	out := make([]estree.Value, len(vs))
	for i, v := range vs {
		out[i] = estree.Canonicalize(v, ctx)
	}
	return out, end, nil
}

// ParseStylesheet delegates directly to the in-module style parser — there
// is no external stylesheet sub-parser to inject, since the style parser
// is one of this system's own three core subsystems (spec §1).
func (b *Bridge) ParseStylesheet(source []byte, startOffset, endHint int) (*style.Sheet, error) {
	return b.Style.ParseStylesheet(source, startOffset, endHint)
}
