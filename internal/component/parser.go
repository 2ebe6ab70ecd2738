package component

import (
	"github.com/tesselate/compiler/internal/bridge"
	"github.com/tesselate/compiler/internal/cursor"
	"github.com/tesselate/compiler/internal/diag"
	"github.com/tesselate/compiler/internal/estree"
	"github.com/tesselate/compiler/internal/loc"
)

// parser drives the fragment/element/tag/block grammar of spec §4.5 over
// a single normalized source buffer, reporting through diags and
// delegating embedded-script/style parsing through bridge.
type parser struct {
	source []byte
	cur    *cursor.Cursor
	diags  *diag.Collector
	bridge *bridge.Bridge
	opts   Options

	// headDepth tracks nesting inside <svelte:head>, the one place
	// classifyElement needs ancestor context (TitleElement).
	headDepth int
}

func newParser(source []byte, diags *diag.Collector, opts Options) *parser {
	return &parser{
		source: source,
		cur:    cursor.New(source),
		diags:  diags,
		bridge: bridge.New(),
		opts:   opts,
	}
}

func (p *parser) headContext() ancestorKind {
	if p.headDepth > 0 {
		return ancestorSvelteHead
	}
	return ancestorNone
}

// parseFragment consumes nodes until EOF or stop reports true, fusing
// adjacent Text runs (spec §3: "adjacent Text nodes are never produced
// back to back").
func (p *parser) parseFragment(stop func(p *parser) bool) Fragment {
	start := p.cur.Offset()
	var nodes []Node
	for !p.cur.Eof() {
		if stop != nil && stop(p) {
			break
		}
		n := p.parseNode()
		if n == nil {
			break
		}
		nodes = append(nodes, n)
	}
	end := p.cur.Offset()
	return Fragment{Nodes: fuseText(nodes), Start_: start, End_: end}
}

func fuseText(nodes []Node) []Node {
	var out []Node
	for _, n := range nodes {
		if t, ok := n.(*Text); ok {
			if len(out) > 0 {
				if prev, ok := out[len(out)-1].(*Text); ok {
					prev.Data += t.Data
					prev.End_ = t.End_
					continue
				}
			}
		}
		out = append(out, n)
	}
	return out
}

func (p *parser) parseNode() Node {
	if p.cur.Eof() {
		return nil
	}
	switch {
	case p.cur.StartsWith("<!--"):
		return p.parseComment()
	case p.cur.PeekByte() == '<' && p.cur.PeekByteAt(1) == '/':
		// A stray close tag with no matching ancestor at this level: the
		// caller's stop predicate gets first refusal on it (it checked
		// before calling parseNode), so by the time we get here it is
		// simply literal text.
		return p.parseText()
	case p.cur.PeekByte() == '<' && isNameStart(p.cur.PeekByteAt(1)):
		return p.parseElement()
	case p.cur.PeekByte() == '{':
		return p.parseBraceConstruct()
	default:
		return p.parseText()
	}
}

func (p *parser) parseText() Node {
	start := p.cur.Offset()
	span := p.cur.EatUntil(func(b byte) bool { return b == '<' || b == '{' })
	if span.Len() == 0 {
		// The byte at the cursor is '<' or '{' but did not form a valid
		// construct (handled by the other parseNode branches before
		// falling through here) — consume it as one byte of literal text
		// so the loop always makes forward progress.
		p.cur.SetOffset(p.cur.Offset() + 1)
		return &Text{Data: string(p.source[start:p.cur.Offset()]), Start_: start, End_: p.cur.Offset()}
	}
	return &Text{Data: string(p.source[start:span.End]), Start_: start, End_: span.End}
}

func (p *parser) parseComment() Node {
	start := p.cur.Offset()
	p.cur.Eat("<!--")
	dataStart := p.cur.Offset()
	for !p.cur.Eof() && !p.cur.StartsWith("-->") {
		p.cur.SetOffset(p.cur.Offset() + 1)
	}
	dataEnd := p.cur.Offset()
	if !p.cur.Eat("-->") {
		p.diags.Errorf(diag.CodeUnclosedElement, loc.Span{Start: start, End: p.cur.Offset()}, "unterminated comment")
	}
	return &Comment{Data: string(p.source[dataStart:dataEnd]), Start_: start, End_: p.cur.Offset()}
}

func closeTagStop(name string) func(p *parser) bool {
	return func(p *parser) bool {
		if !p.cur.StartsWith("</") {
			return false
		}
		rest := p.source[p.cur.Offset()+2:]
		if !bytesHasPrefix(rest, name) {
			return false
		}
		j := len(name)
		for j < len(rest) && isWhitespace(rest[j]) {
			j++
		}
		return j < len(rest) && rest[j] == '>'
	}
}

func extractThisAttribute(attrs []Node) ([]Node, estree.Value, bool) {
	for i, a := range attrs {
		at, ok := a.(*Attribute)
		if !ok || at.Name != "this" {
			continue
		}
		var expr estree.Value
		if len(at.Parts) == 1 {
			if tag, ok := at.Parts[0].(*ExpressionTag); ok {
				expr = tag.Expression
			}
		}
		out := make([]Node, 0, len(attrs)-1)
		out = append(out, attrs[:i]...)
		out = append(out, attrs[i+1:]...)
		return out, expr, true
	}
	return attrs, estree.Value{}, false
}

func (p *parser) parseElement() Node {
	start := p.cur.Offset()
	p.cur.EatByte('<')
	nameSpan := p.cur.EatWhile(isTagNameByte)
	name := string(p.source[nameSpan.Start:nameSpan.End])
	attrs := p.parseAttributes()

	selfClose := false
	switch {
	case p.cur.StartsWith("/>"):
		p.cur.Eat("/>")
		selfClose = true
	case p.cur.Eat(">"):
	default:
		p.diags.Errorf(diag.CodeExpectedToken, loc.Span{Start: p.cur.Offset(), End: p.cur.Offset()}, "expected '>' or '/>' after attributes of <%s>", name)
		selfClose = true
	}

	kind := classifyElement(name, p.headContext())

	var tagExpr estree.Value
	if kind == "SvelteElement" {
		var hasThis bool
		attrs, tagExpr, hasThis = extractThisAttribute(attrs)
		if !hasThis {
			p.diags.Errorf(diag.CodeMissingThisOnSvelteElement, loc.Span{Start: start, End: p.cur.Offset()}, "<svelte:element> requires a this={expr} attribute")
		}
	}

	void := selfClose || (isVoidElement(name) && kind == "RegularElement")
	var fragment Fragment
	if !void {
		if kind == "SvelteHead" {
			p.headDepth++
		}
		fragment = p.parseFragment(closeTagStop(name))
		if kind == "SvelteHead" {
			p.headDepth--
		}
		if p.cur.StartsWith("</") {
			p.cur.Eat("</")
			p.cur.EatWhile(isTagNameByte)
			p.cur.SkipWhitespace(cursor.NoComments)
			p.cur.Eat(">")
		} else {
			p.diags.Errorf(diag.CodeUnclosedElement, loc.Span{Start: start, End: p.cur.Offset()}, "unclosed element <%s>", name)
		}
	} else {
		fragment = Fragment{Start_: p.cur.Offset(), End_: p.cur.Offset()}
	}
	end := p.cur.Offset()

	return &Element{Kind: kind, Name: name, Attributes: attrs, Fragment: fragment, Tag: tagExpr, Start_: start, End_: end}
}

// --- brace-led constructs: tags and blocks ------------------------------

func (p *parser) parseBraceConstruct() Node {
	start := p.cur.Offset()
	i := skipWS(p.source, start+1)
	rest := p.source[i:]
	switch {
	case hasPrefixWord(rest, "@html"):
		return p.parseHtmlTag(start, i+len("@html"))
	case hasPrefixWord(rest, "@const"):
		return p.parseConstTag(start, i+len("@const"))
	case hasPrefixWord(rest, "@debug"):
		return p.parseDebugTag(start, i+len("@debug"))
	case hasPrefixWord(rest, "@render"):
		return p.parseRenderTag(start, i+len("@render"))
	case hasPrefixWord(rest, "#if"):
		return p.parseIfBlock(start, i+len("#if"))
	case hasPrefixWord(rest, "#each"):
		return p.parseEachBlock(start, i+len("#each"))
	case hasPrefixWord(rest, "#await"):
		return p.parseAwaitBlock(start, i+len("#await"))
	case hasPrefixWord(rest, "#key"):
		return p.parseKeyBlock(start, i+len("#key"))
	case hasPrefixWord(rest, "#snippet"):
		return p.parseSnippetBlock(start, i+len("#snippet"))
	case bytesHasPrefix(rest, ":else"), bytesHasPrefix(rest, ":then"), bytesHasPrefix(rest, ":catch"),
		bytesHasPrefix(rest, "/if"), bytesHasPrefix(rest, "/each"), bytesHasPrefix(rest, "/await"),
		bytesHasPrefix(rest, "/key"), bytesHasPrefix(rest, "/snippet"):
		closeAt := matchBrace(p.source, start)
		p.diags.Errorf(diag.CodeBlockArmOutsideBlock, loc.Span{Start: start, End: closeAt + 1}, "block arm with no matching block")
		p.cur.SetOffset(closeAt + 1)
		return &ExpressionTag{Expression: emptyIdentifier(start), Start_: start, End_: closeAt + 1}
	default:
		return p.parseExpressionTag(start)
	}
}

func emptyIdentifier(pos int) estree.Value {
	return estree.NewObject(
		m("type", estree.NewString("Identifier")),
		m("name", estree.NewString("")),
		m("start", estree.NewNumber(float64(pos))),
		m("end", estree.NewNumber(float64(pos))),
	)
}

func (p *parser) parseExpressionTag(start int) Node {
	closeAt := matchBrace(p.source, start)
	exprStart := start + 1
	val, _, err := p.bridge.ParseExpressionAt(p.source[:closeAt], exprStart, estree.ContextTemplateExpression)
	if err != nil {
		p.diags.Errorf(diag.CodeInvalidAttributeValue, loc.Span{Start: exprStart, End: closeAt}, "invalid expression: %v", err)
	}
	p.cur.SetOffset(closeAt + 1)
	return &ExpressionTag{Expression: val, Start_: start, End_: closeAt + 1}
}

func (p *parser) parseHtmlTag(start, afterKeyword int) Node {
	closeAt := matchBrace(p.source, start)
	exprStart := skipWS(p.source, afterKeyword)
	val, _, err := p.bridge.ParseExpressionAt(p.source[:closeAt], exprStart, estree.ContextTemplateExpression)
	if err != nil {
		p.diags.Errorf(diag.CodeInvalidAttributeValue, loc.Span{Start: exprStart, End: closeAt}, "invalid @html expression: %v", err)
	}
	p.cur.SetOffset(closeAt + 1)
	return &HtmlTag{Expression: val, Start_: start, End_: closeAt + 1}
}

func (p *parser) parseConstTag(start, afterKeyword int) Node {
	closeAt := matchBrace(p.source, start)
	declStart := skipWS(p.source, afterKeyword)
	decl, _, err := p.bridge.ParseVariableDeclarationAt(p.source[:closeAt], declStart)
	if err != nil {
		p.diags.Errorf(diag.CodeInvalidAttributeValue, loc.Span{Start: declStart, End: closeAt}, "invalid @const declaration: %v", err)
	}
	p.cur.SetOffset(closeAt + 1)
	return &ConstTag{Declaration: decl, Start_: start, End_: closeAt + 1}
}

func (p *parser) parseDebugTag(start, afterKeyword int) Node {
	closeAt := matchBrace(p.source, start)
	listStart := skipWS(p.source, afterKeyword)
	idents, _, err := p.bridge.ParseStatementListAt(p.source[:closeAt], listStart, estree.ContextTemplateExpression)
	if err != nil {
		p.diags.Errorf(diag.CodeInvalidAttributeValue, loc.Span{Start: listStart, End: closeAt}, "invalid @debug identifiers: %v", err)
	}
	p.cur.SetOffset(closeAt + 1)
	return &DebugTag{Identifiers: idents, Start_: start, End_: closeAt + 1}
}

func (p *parser) parseRenderTag(start, afterKeyword int) Node {
	closeAt := matchBrace(p.source, start)
	exprStart := skipWS(p.source, afterKeyword)
	val, _, err := p.bridge.ParseExpressionAt(p.source[:closeAt], exprStart, estree.ContextTemplateExpression)
	if err != nil {
		p.diags.Errorf(diag.CodeInvalidAttributeValue, loc.Span{Start: exprStart, End: closeAt}, "invalid @render expression: %v", err)
	}
	p.cur.SetOffset(closeAt + 1)
	return &RenderTag{Expression: val, Start_: start, End_: closeAt + 1}
}
