package component

import (
	"github.com/tesselate/compiler/internal/diag"
	"github.com/tesselate/compiler/internal/estree"
	"github.com/tesselate/compiler/internal/loc"
)

// atArm reports whether the cursor sits at "{:" followed by one of names
// as a whole word — i.e. a block-arm transition ({:else}, {:then value},
// {:catch err}).
func atArm(p *parser, names ...string) bool {
	if !p.cur.StartsWith("{:") {
		return false
	}
	rest := p.source[p.cur.Offset()+2:]
	for _, name := range names {
		if hasPrefixWord(rest, name) {
			return true
		}
	}
	return false
}

// atClose reports whether the cursor sits at the closing "{/name}" of the
// block currently being parsed.
func atClose(p *parser, name string) bool {
	if !p.cur.StartsWith("{/") {
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
	return j < len(rest) && rest[j] == '}'
}

func (p *parser) consumeClose(name string, openStart int) {
	if atClose(p, name) {
		closeAt := matchBrace(p.source, p.cur.Offset())
		p.cur.SetOffset(closeAt + 1)
		return
	}
	p.diags.Errorf(diag.CodeUnclosedBlock, loc.Span{Start: openStart, End: p.cur.Offset()}, "unclosed {#%s} block", name)
}

// --- if/else-if/else ------------------------------------------------------

func (p *parser) parseIfBlock(start, afterKeyword int) Node {
	closeAt := matchBrace(p.source, start)
	testStart := skipWS(p.source, afterKeyword)
	test, _, err := p.bridge.ParseExpressionAt(p.source[:closeAt], testStart, estree.ContextTemplateExpression)
	if err != nil {
		p.diags.Errorf(diag.CodeInvalidAttributeValue, loc.Span{Start: testStart, End: closeAt}, "invalid {#if} test: %v", err)
	}
	p.cur.SetOffset(closeAt + 1)
	return p.parseIfBody(test, start, false)
}

// parseIfBody parses the consequent and, recursively, any {:else if}/
// {:else} tail for an already-opened if (or else-if) header. Only the
// innermost frame of the chain consumes the final {/if} — an outer frame
// whose alternate came back as another *IfBlock must not try to consume
// it again.
func (p *parser) parseIfBody(test estree.Value, start int, elseif bool) *IfBlock {
	consequent := p.parseFragment(func(p *parser) bool {
		return atArm(p, "else") || atClose(p, "if")
	})

	var alternate Node
	closedByChild := false
	if atArm(p, "else") {
		armStart := p.cur.Offset()
		afterElse := skipWS(p.source, armStart+len("{:else"))
		if isElseIf(p.source, afterElse) {
			ifKwEnd := afterElse + len("if")
			armCloseAt := matchBrace(p.source, armStart)
			nestedTestStart := skipWS(p.source, ifKwEnd)
			nestedTest, _, err := p.bridge.ParseExpressionAt(p.source[:armCloseAt], nestedTestStart, estree.ContextTemplateExpression)
			if err != nil {
				p.diags.Errorf(diag.CodeInvalidAttributeValue, loc.Span{Start: nestedTestStart, End: armCloseAt}, "invalid {:else if} test: %v", err)
			}
			p.cur.SetOffset(armCloseAt + 1)
			alternate = p.parseIfBody(nestedTest, armStart, true)
			closedByChild = true
		} else {
			armCloseAt := matchBrace(p.source, armStart)
			p.cur.SetOffset(armCloseAt + 1)
			alt := p.parseFragment(func(p *parser) bool { return atClose(p, "if") })
			alternate = &alt
		}
	}
	if !closedByChild {
		p.consumeClose("if", start)
	}
	end := p.cur.Offset()
	return &IfBlock{Test: test, Consequent: consequent, Alternate: alternate, ElseIf: elseif, Start_: start, End_: end}
}

// --- each ------------------------------------------------------------------

func (p *parser) parseEachBlock(start, afterKeyword int) Node {
	closeAt := matchBrace(p.source, start)
	i := skipWS(p.source, afterKeyword)

	asAt := indexWord(p.source, i, "as")
	exprEnd := closeAt
	if asAt >= 0 {
		exprEnd = asAt
	} else {
		p.diags.Errorf(diag.CodeExpectedToken, loc.Span{Start: i, End: closeAt}, "expected 'as' in {#each}")
	}
	expr, _, err := p.bridge.ParseExpressionAt(p.source[:exprEnd], i, estree.ContextTemplateExpression)
	if err != nil {
		p.diags.Errorf(diag.CodeInvalidAttributeValue, loc.Span{Start: i, End: exprEnd}, "invalid {#each} expression: %v", err)
	}

	var context, key estree.Value
	index := ""
	if asAt >= 0 {
		contextStart := skipWS(p.source, asAt+len("as"))
		ctxEnd := scanComponentUntil(p.source, contextStart, closeAt, ',', '(')
		context, _, err = p.bridge.ParsePatternAt(p.source[:ctxEnd], contextStart, estree.ContextEachContext)
		if err != nil {
			p.diags.Errorf(diag.CodeExpectedPattern, loc.Span{Start: contextStart, End: ctxEnd}, "invalid {#each} context: %v", err)
		}

		pos := ctxEnd
		if pos < closeAt && p.source[pos] == ',' {
			pos++
			idxStart := skipWS(p.source, pos)
			idxEnd := scanComponentUntil(p.source, idxStart, closeAt, '(')
			for idxEnd > idxStart && isWhitespace(p.source[idxEnd-1]) {
				idxEnd--
			}
			index = string(p.source[idxStart:idxEnd])
			pos = idxEnd
		}
		pos = skipWS(p.source, pos)
		if pos < closeAt && p.source[pos] == '(' {
			keyCloseAt := matchParen(p.source, pos)
			keyStart := pos + 1
			key, _, err = p.bridge.ParseExpressionAt(p.source[:keyCloseAt], keyStart, estree.ContextEachKey)
			if err != nil {
				p.diags.Errorf(diag.CodeInvalidAttributeValue, loc.Span{Start: keyStart, End: keyCloseAt}, "invalid {#each} key: %v", err)
			}
		}
	}
	p.cur.SetOffset(closeAt + 1)

	body := p.parseFragment(func(p *parser) bool {
		return atArm(p, "else") || atClose(p, "each")
	})
	var fallback *Fragment
	if atArm(p, "else") {
		armStart := p.cur.Offset()
		armCloseAt := matchBrace(p.source, armStart)
		p.cur.SetOffset(armCloseAt + 1)
		f := p.parseFragment(func(p *parser) bool { return atClose(p, "each") })
		fallback = &f
	}
	p.consumeClose("each", start)
	end := p.cur.Offset()
	return &EachBlock{Expression: expr, Context: context, Body: body, Fallback: fallback, Key: key, Index: index, Start_: start, End_: end}
}

// --- await -------------------------------------------------------------

func (p *parser) parseAwaitBlock(start, afterKeyword int) Node {
	closeAt := matchBrace(p.source, start)
	i := skipWS(p.source, afterKeyword)
	thenAt := indexWord(p.source, i, "then")
	catchAt := indexWord(p.source, i, "catch")
	exprEnd := closeAt
	if thenAt >= 0 && (catchAt < 0 || thenAt < catchAt) {
		exprEnd = thenAt
	} else if catchAt >= 0 {
		exprEnd = catchAt
	}
	expr, _, err := p.bridge.ParseExpressionAt(p.source[:exprEnd], i, estree.ContextTemplateExpression)
	if err != nil {
		p.diags.Errorf(diag.CodeInvalidAttributeValue, loc.Span{Start: i, End: exprEnd}, "invalid {#await} expression: %v", err)
	}

	var value, errExpr estree.Value
	var pending, then, catchFrag *Fragment

	if exprEnd == thenAt {
		bindStart := skipWS(p.source, thenAt+len("then"))
		if bindStart < closeAt {
			value, _, err = p.bridge.ParsePatternAt(p.source[:closeAt], bindStart, estree.ContextTemplateExpression)
			if err != nil {
				p.diags.Errorf(diag.CodeExpectedPattern, loc.Span{Start: bindStart, End: closeAt}, "invalid {#await ... then} binding: %v", err)
			}
		}
	} else if exprEnd == catchAt {
		bindStart := skipWS(p.source, catchAt+len("catch"))
		if bindStart < closeAt {
			errExpr, _, err = p.bridge.ParsePatternAt(p.source[:closeAt], bindStart, estree.ContextTemplateExpression)
			if err != nil {
				p.diags.Errorf(diag.CodeExpectedPattern, loc.Span{Start: bindStart, End: closeAt}, "invalid {#await ... catch} binding: %v", err)
			}
		}
	}
	p.cur.SetOffset(closeAt + 1)

	switch exprEnd {
	case closeAt:
		frag := p.parseFragment(func(p *parser) bool { return atArm(p, "then", "catch") || atClose(p, "await") })
		pending = &frag
	case thenAt:
		frag := p.parseFragment(func(p *parser) bool { return atArm(p, "catch") || atClose(p, "await") })
		then = &frag
	default:
		frag := p.parseFragment(func(p *parser) bool { return atClose(p, "await") })
		catchFrag = &frag
	}

	for atArm(p, "then", "catch") {
		armStart := p.cur.Offset()
		armCloseAt := matchBrace(p.source, armStart)
		isThen := bytesHasPrefix(p.source[armStart+2:], "then")
		kwLen := len("then")
		if !isThen {
			kwLen = len("catch")
		}
		bindStart := skipWS(p.source, armStart+2+kwLen)
		var bound estree.Value
		if bindStart < armCloseAt {
			bound, _, err = p.bridge.ParsePatternAt(p.source[:armCloseAt], bindStart, estree.ContextTemplateExpression)
			if err != nil {
				p.diags.Errorf(diag.CodeExpectedPattern, loc.Span{Start: bindStart, End: armCloseAt}, "invalid await arm binding: %v", err)
			}
		}
		p.cur.SetOffset(armCloseAt + 1)
		if isThen {
			value = bound
			frag := p.parseFragment(func(p *parser) bool { return atArm(p, "catch") || atClose(p, "await") })
			then = &frag
		} else {
			errExpr = bound
			frag := p.parseFragment(func(p *parser) bool { return atClose(p, "await") })
			catchFrag = &frag
		}
	}

	p.consumeClose("await", start)
	end := p.cur.Offset()
	return &AwaitBlock{Expression: expr, Value: value, Error: errExpr, Pending: pending, Then: then, Catch: catchFrag, Start_: start, End_: end}
}

// --- key ---------------------------------------------------------------

func (p *parser) parseKeyBlock(start, afterKeyword int) Node {
	closeAt := matchBrace(p.source, start)
	exprStart := skipWS(p.source, afterKeyword)
	expr, _, err := p.bridge.ParseExpressionAt(p.source[:closeAt], exprStart, estree.ContextTemplateExpression)
	if err != nil {
		p.diags.Errorf(diag.CodeInvalidAttributeValue, loc.Span{Start: exprStart, End: closeAt}, "invalid {#key} expression: %v", err)
	}
	p.cur.SetOffset(closeAt + 1)
	frag := p.parseFragment(func(p *parser) bool { return atClose(p, "key") })
	p.consumeClose("key", start)
	end := p.cur.Offset()
	return &KeyBlock{Expression: expr, Fragment: frag, Start_: start, End_: end}
}

// --- snippet -------------------------------------------------------------

func (p *parser) parseSnippetBlock(start, afterKeyword int) Node {
	closeAt := matchBrace(p.source, start)
	nameStart := skipWS(p.source, afterKeyword)
	nameEnd := nameStart
	for nameEnd < closeAt && isTagNameByte(p.source[nameEnd]) {
		nameEnd++
	}
	name := string(p.source[nameStart:nameEnd])
	ident := estree.NewObject(
		m("type", estree.NewString("Identifier")),
		m("name", estree.NewString(name)),
		m("start", estree.NewNumber(float64(nameStart))),
		m("end", estree.NewNumber(float64(nameEnd))),
	)

	var params []estree.Value
	parenStart := skipWS(p.source, nameEnd)
	if parenStart < closeAt && p.source[parenStart] == '(' {
		parenCloseAt := matchParen(p.source, parenStart)
		pos := parenStart + 1
		for pos < parenCloseAt {
			pos = skipWS(p.source, pos)
			if pos >= parenCloseAt {
				break
			}
			segEnd := scanComponentUntil(p.source, pos, parenCloseAt, ',')
			trimEnd := segEnd
			for trimEnd > pos && isWhitespace(p.source[trimEnd-1]) {
				trimEnd--
			}
			if trimEnd > pos {
				val, _, err := p.bridge.ParsePatternAt(p.source[:trimEnd], pos, estree.ContextSnippetParams)
				if err != nil {
					p.diags.Errorf(diag.CodeExpectedPattern, loc.Span{Start: pos, End: trimEnd}, "invalid snippet parameter: %v", err)
				}
				params = append(params, val)
			}
			pos = segEnd + 1
		}
	}
	p.cur.SetOffset(closeAt + 1)

	body := p.parseFragment(func(p *parser) bool { return atClose(p, "snippet") })
	p.consumeClose("snippet", start)
	end := p.cur.Offset()
	return &SnippetBlock{Expression: ident, Parameters: params, Body: body, Start_: start, End_: end}
}
