package component

import (
	"bytes"
	"strings"

	"github.com/tesselate/compiler/internal/cursor"
	"github.com/tesselate/compiler/internal/diag"
	"github.com/tesselate/compiler/internal/estree"
	"github.com/tesselate/compiler/internal/loc"
)

// Normalize applies spec §6's input normalization: CRLF collapsed to LF,
// then trailing whitespace trimmed so `end` offsets are deterministic
// across platforms.
func Normalize(source []byte) []byte {
	normalized := bytes.ReplaceAll(source, []byte("\r\n"), []byte("\n"))
	return bytes.TrimRight(normalized, " \t\n\r\f\v")
}

// Parse runs the full pipeline (spec §2): normalize, parse the top-level
// <script>/<style>/fragment regions, and assemble a Root. In strict mode
// (the default) the first error-severity diagnostic aborts parsing and is
// returned as err; in loose mode every diagnostic is recorded on the
// returned slice and a Root is always produced.
func Parse(source []byte, opts Options) (root *Root, diagnostics []diag.Diagnostic, err error) {
	normalized := Normalize(source)
	mode := diag.Strict
	if opts.Loose {
		mode = diag.Loose
	}
	collector := diag.NewCollector(mode, opts.Filename)

	defer func() {
		if r := recover(); r != nil {
			fatal, ok := r.(*diag.Fatal)
			if !ok {
				panic(r)
			}
			err = fatal
			diagnostics = collector.Diagnostics()
		}
	}()

	p := newParser(normalized, collector, opts)
	root = p.parseRoot()
	diagnostics = collector.Diagnostics()
	return root, diagnostics, nil
}

func (p *parser) parseRoot() *Root {
	start := p.cur.Offset()
	root := &Root{Start_: start}
	var nodes []Node

	for !p.cur.Eof() {
		switch {
		case p.atTag("script"):
			script := p.parseScript()
			if script.Context == "module" {
				if root.Module != nil {
					p.diags.Errorf(diag.CodeDuplicateScript, loc.Span{Start: script.Start_, End: script.End_}, "duplicate <script context=\"module\"> block")
				}
				root.Module = script
			} else {
				if root.Instance != nil {
					p.diags.Errorf(diag.CodeDuplicateScript, loc.Span{Start: script.Start_, End: script.End_}, "duplicate <script> block")
				}
				root.Instance = script
			}
		case p.atTag("style"):
			st := p.parseStyle()
			if root.CSS != nil {
				p.diags.Errorf(diag.CodeDuplicateStyle, loc.Span{Start: st.Start_, End: st.End_}, "duplicate <style> block")
			}
			root.CSS = st
		default:
			n := p.parseNode()
			if n == nil {
				break
			}
			if el, ok := n.(*Element); ok && el.Kind == "SvelteOptions" {
				if root.Options != nil {
					p.diags.Errorf(diag.CodeInvalidTagPlacement, loc.Span{Start: el.Start_, End: el.End_}, "duplicate <svelte:options>")
				}
				root.Options = el
			} else {
				nodes = append(nodes, n)
			}
		}
	}

	fragEnd := p.cur.Offset()
	root.Fragment = Fragment{Nodes: fuseText(nodes), Start_: start, End_: fragEnd}
	root.End_ = fragEnd
	root.TS = scriptIsTS(root.Instance) || scriptIsTS(root.Module)
	return root
}

func scriptIsTS(s *Script) bool {
	if s == nil {
		return false
	}
	for _, a := range s.Attributes {
		at, ok := a.(*Attribute)
		if !ok || at.Name != "lang" {
			continue
		}
		for _, part := range at.Parts {
			if t, ok := part.(*Text); ok && strings.EqualFold(strings.TrimSpace(t.Data), "ts") {
				return true
			}
		}
	}
	return false
}

func (p *parser) atTag(name string) bool {
	if p.cur.PeekByte() != '<' {
		return false
	}
	rest := p.source[p.cur.Offset()+1:]
	if !bytesHasPrefix(rest, name) {
		return false
	}
	j := len(name)
	if j >= len(rest) {
		return false
	}
	c := rest[j]
	return isWhitespace(c) || c == '>' || c == '/'
}

// findClosing returns the absolute offset of the "</name" opener
// (case-insensitive) at or after the cursor's current position, or
// len(source) if the element is never closed.
func (p *parser) findClosing(name string) int {
	tag := "</" + name
	src := p.source
	n := len(src)
	for i := p.cur.Offset(); i+len(tag) <= n; i++ {
		if strings.EqualFold(string(src[i:i+len(tag)]), tag) {
			return i
		}
	}
	return n
}

func (p *parser) consumeEndTag(name string, openStart int) {
	rest := p.source[p.cur.Offset():]
	prefix := "</" + name
	if len(rest) >= len(prefix) && strings.EqualFold(string(rest[:len(prefix)]), prefix) {
		p.cur.SetOffset(p.cur.Offset() + len(prefix))
		p.cur.SkipWhitespace(cursor.NoComments)
		p.cur.Eat(">")
		return
	}
	p.diags.Errorf(diag.CodeUnclosedElement, loc.Span{Start: openStart, End: p.cur.Offset()}, "unclosed <%s>", name)
}

func (p *parser) parseScript() *Script {
	start := p.cur.Offset()
	p.cur.EatByte('<')
	p.cur.EatWhile(isTagNameByte)
	attrs := p.parseAttributes()
	p.cur.Eat(">")
	contentStart := p.cur.Offset()
	contentEnd := p.findClosing("script")

	context := "default"
	for _, a := range attrs {
		at, ok := a.(*Attribute)
		if !ok || at.Name != "context" {
			continue
		}
		for _, part := range at.Parts {
			if t, ok := part.(*Text); ok && strings.TrimSpace(t.Data) == "module" {
				context = "module"
			}
		}
	}

	var content estree.Value
	if contentEnd > contentStart {
		var err error
		content, _, err = p.bridge.ParseModuleAt(p.source[:contentEnd], contentStart)
		if err != nil {
			p.diags.Errorf(diag.CodeUnexpectedEOF, loc.Span{Start: contentStart, End: contentEnd}, "invalid script content: %v", err)
		}
	} else {
		content = emptyProgram(contentStart)
	}
	p.cur.SetOffset(contentEnd)
	p.consumeEndTag("script", start)
	end := p.cur.Offset()
	return &Script{Context: context, Content: content, Attributes: attrs, Start_: start, End_: end}
}

func (p *parser) parseStyle() *Style {
	start := p.cur.Offset()
	p.cur.EatByte('<')
	p.cur.EatWhile(isTagNameByte)
	attrs := p.parseAttributes()
	p.cur.Eat(">")
	contentStart := p.cur.Offset()
	contentEnd := p.findClosing("style")
	sheet, err := p.bridge.ParseStylesheet(p.source, contentStart, contentEnd)
	if err != nil {
		p.diags.Errorf(diag.CodeUnexpectedEOF, loc.Span{Start: contentStart, End: contentEnd}, "invalid stylesheet: %v", err)
	}
	p.cur.SetOffset(contentEnd)
	p.consumeEndTag("style", start)
	end := p.cur.Offset()
	return &Style{Attributes: attrs, Sheet: sheet, Start_: start, End_: end}
}

func emptyProgram(pos int) estree.Value {
	return estree.NewObject(
		m("type", estree.NewString("Program")),
		m("sourceType", estree.NewString("module")),
		m("body", estree.NewArray()),
		m("start", estree.NewNumber(float64(pos))),
		m("end", estree.NewNumber(float64(pos))),
	)
}
