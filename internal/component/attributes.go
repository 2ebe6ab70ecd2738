package component

import (
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/tesselate/compiler/internal/cursor"
	"github.com/tesselate/compiler/internal/diag"
	"github.com/tesselate/compiler/internal/estree"
	"github.com/tesselate/compiler/internal/loc"
)

// directivePattern splits a directive attribute name ("on:click|once|
// preventDefault") into its kind, bare name, and repeated modifiers. The
// repeated `(?<mod>[^|]+)` group is exactly what plain regexp's RE2 engine
// cannot hand back (no access to intermediate captures of a repeated
// group) but regexp2's backtracking engine, matching .NET semantics,
// exposes through Group.Captures.
var directivePattern = regexp2.MustCompile(
	`^(on|bind|use|class|style|transition|in|out|animate|let):(?<name>[^|]+?)(\|(?<mod>[^|]+))*$`,
	regexp2.None,
)

func matchDirective(attrName string) (kind, name string, modifiers []string, ok bool) {
	m, err := directivePattern.FindStringMatch(attrName)
	if err != nil || m == nil {
		return "", "", nil, false
	}
	kind = m.GroupByNumber(1).String()
	name = m.GroupByName("name").String()
	for _, c := range m.GroupByName("mod").Captures {
		modifiers = append(modifiers, c.String())
	}
	return kind, name, modifiers, true
}

// directiveKindAndFlags maps a matched raw directive kind spelling to the
// Directive's Kind enum and its intro/outro flags. "in"/"out" are the
// one-directional spellings of TransitionDirective; "transition" itself
// is bidirectional.
func directiveKindAndFlags(rawKind string) (kind DirectiveKind, intro, outro bool) {
	switch rawKind {
	case "on":
		return DirectiveOn, false, false
	case "bind":
		return DirectiveBind, false, false
	case "use":
		return DirectiveUse, false, false
	case "class":
		return DirectiveClass, false, false
	case "style":
		return DirectiveStyle, false, false
	case "let":
		return DirectiveLet, false, false
	case "animate":
		return DirectiveAnimate, false, false
	case "transition":
		return DirectiveTransition, true, true
	case "in":
		return DirectiveTransition, true, false
	case "out":
		return DirectiveTransition, false, true
	}
	return DirectiveKind(rawKind), false, false
}

// attrKey names an already-parsed attribute/directive node for duplicate
// detection (spec §4.5 invariant: "no two attrs share the same raw name").
func attrKey(n Node) (string, bool) {
	switch v := n.(type) {
	case *Attribute:
		return v.Name, true
	case *Directive:
		return string(v.Kind) + ":" + v.Name, true
	}
	return "", false
}

func (p *parser) parseAttributes() []Node {
	var attrs []Node
	seen := map[string]bool{}
	for {
		p.cur.SkipWhitespace(cursor.NoComments)
		if p.cur.Eof() {
			break
		}
		b := p.cur.PeekByte()
		if b == '>' || (b == '/' && p.cur.PeekByteAt(1) == '>') {
			break
		}
		start := p.cur.Offset()
		var attr Node
		if b == '{' {
			attr = p.parseBracedAttribute(start)
		} else {
			attr = p.parseNamedAttribute(start)
		}
		if attr == nil {
			break
		}
		if key, ok := attrKey(attr); ok {
			if seen[key] {
				p.diags.Errorf(diag.CodeDuplicateAttribute, attr.Span(), "duplicate attribute %q", key)
			}
			seen[key] = true
		}
		attrs = append(attrs, attr)
	}
	return attrs
}

// parseBracedAttribute handles `{...expr}` spread and `{ident}` shorthand
// attribute forms.
func (p *parser) parseBracedAttribute(start int) Node {
	openAt := p.cur.Offset()
	closeAt := matchBrace(p.source, openAt)
	p.cur.EatByte('{')
	if p.cur.StartsWith("...") {
		p.cur.Eat("...")
		exprStart := p.cur.Offset()
		val, _, err := p.bridge.ParseExpressionAt(p.source[:closeAt], exprStart, estree.ContextTemplateExpression)
		if err != nil {
			p.diags.Errorf(diag.CodeInvalidAttributeValue, loc.Span{Start: exprStart, End: closeAt}, "invalid spread expression: %v", err)
		}
		p.cur.SetOffset(closeAt + 1)
		return &SpreadAttribute{Expression: val, Start_: start, End_: closeAt + 1}
	}
	nameStart := p.cur.Offset()
	name := strings.TrimSpace(string(p.source[nameStart:closeAt]))
	ident := estree.NewObject(
		m("type", estree.NewString("Identifier")),
		m("name", estree.NewString(name)),
		m("start", estree.NewNumber(float64(nameStart))),
		m("end", estree.NewNumber(float64(closeAt))),
	)
	tag := &ExpressionTag{Expression: ident, Start_: nameStart, End_: closeAt}
	p.cur.SetOffset(closeAt + 1)
	return &Attribute{Name: name, Parts: []Node{tag}, Start_: start, End_: closeAt + 1}
}

func (p *parser) parseNamedAttribute(start int) Node {
	nameSpan := p.cur.EatWhile(isAttrNameByte)
	rawName := string(p.source[nameSpan.Start:nameSpan.End])
	if rawName == "" {
		p.diags.Errorf(diag.CodeInvalidAttributeValue, loc.Span{Start: start, End: start + 1}, "unexpected character in attribute list")
		p.cur.SetOffset(start + 1)
		return nil
	}
	kind, dname, mods, isDirective := matchDirective(rawName)
	p.cur.SkipWhitespace(cursor.NoComments)
	if !p.cur.StartsWith("=") {
		end := p.cur.Offset()
		if isDirective {
			kindEnum, intro, outro := directiveKindAndFlags(kind)
			var expr estree.Value
			if kindEnum == DirectiveBind || kindEnum == DirectiveClass || kindEnum == DirectiveStyle {
				expr = estree.NewObject(
					m("type", estree.NewString("Identifier")),
					m("name", estree.NewString(dname)),
					m("start", estree.NewNumber(float64(nameSpan.Start))),
					m("end", estree.NewNumber(float64(nameSpan.End))),
				)
			}
			return &Directive{Kind: kindEnum, Name: dname, Expression: expr, Modifiers: mods, Intro: intro, Outro: outro, Start_: start, End_: end}
		}
		return &Attribute{Name: rawName, Boolean: true, Start_: start, End_: end}
	}
	p.cur.EatByte('=')
	parts, valueExpr := p.parseAttributeValue()
	end := p.cur.Offset()
	if isDirective {
		kindEnum, intro, outro := directiveKindAndFlags(kind)
		return &Directive{Kind: kindEnum, Name: dname, Expression: valueExpr, Modifiers: mods, Intro: intro, Outro: outro, Start_: start, End_: end}
	}
	return &Attribute{Name: rawName, Parts: parts, Start_: start, End_: end}
}

// parseAttributeValue reads the value after `name=`: a quoted string (with
// embedded `{expr}` runs), a bare `{expr}`, or an unquoted token. It
// returns the Attribute.Parts slice and, when the value is exactly one
// bare `{expr}`, that expression alone (for directives, whose grammar
// wants a single Expression rather than an array of parts).
func (p *parser) parseAttributeValue() ([]Node, estree.Value) {
	switch p.cur.PeekByte() {
	case '"', '\'':
		quote := p.cur.PeekByte()
		p.cur.EatByte(quote)
		return p.parseValueParts(func() bool { return p.cur.PeekByte() == quote }, true)
	case '{':
		openAt := p.cur.Offset()
		closeAt := matchBrace(p.source, openAt)
		exprStart := openAt + 1
		val, _, err := p.bridge.ParseExpressionAt(p.source[:closeAt], exprStart, estree.ContextTemplateExpression)
		if err != nil {
			p.diags.Errorf(diag.CodeInvalidAttributeValue, loc.Span{Start: exprStart, End: closeAt}, "invalid attribute expression: %v", err)
		}
		tag := &ExpressionTag{Expression: val, Start_: openAt, End_: closeAt + 1}
		p.cur.SetOffset(closeAt + 1)
		return []Node{tag}, val
	default:
		return p.parseValueParts(func() bool {
			b := p.cur.PeekByte()
			return p.cur.Eof() || isWhitespace(b) || b == '/' || b == '>'
		}, false)
	}
}

func (p *parser) parseValueParts(stop func() bool, quoted bool) ([]Node, estree.Value) {
	var parts []Node
	textStart := p.cur.Offset()
	flush := func(end int) {
		if end > textStart {
			parts = append(parts, &Text{Data: string(p.source[textStart:end]), Start_: textStart, End_: end})
		}
	}
	for !p.cur.Eof() && !stop() {
		if p.cur.PeekByte() == '{' {
			flush(p.cur.Offset())
			openAt := p.cur.Offset()
			closeAt := matchBrace(p.source, openAt)
			exprStart := openAt + 1
			val, _, err := p.bridge.ParseExpressionAt(p.source[:closeAt], exprStart, estree.ContextTemplateExpression)
			if err != nil {
				p.diags.Errorf(diag.CodeInvalidAttributeValue, loc.Span{Start: exprStart, End: closeAt}, "invalid attribute expression: %v", err)
			}
			parts = append(parts, &ExpressionTag{Expression: val, Start_: openAt, End_: closeAt + 1})
			p.cur.SetOffset(closeAt + 1)
			textStart = p.cur.Offset()
			continue
		}
		p.cur.SetOffset(p.cur.Offset() + 1)
	}
	flush(p.cur.Offset())
	if quoted && !p.cur.Eof() {
		p.cur.SetOffset(p.cur.Offset() + 1)
	}
	var single estree.Value
	if len(parts) == 1 {
		if tag, ok := parts[0].(*ExpressionTag); ok {
			single = tag.Expression
		}
	}
	return parts, single
}
