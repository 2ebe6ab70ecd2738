package bridge

import (
	"strings"

	"github.com/tesselate/compiler/internal/estree"
	"github.com/tesselate/compiler/internal/helpers"
)

// Stub is a minimal, deterministic ScriptParser used when no real script
// sub-parser has been installed (spec §9: shipping a real TS/JS parser is
// an explicit Non-goal — "the underlying script and stylesheet expression
// lexers/parsers" are black boxes this module only defines a contract
// for). It recognizes enough surface syntax — identifiers, array/object
// patterns, and `let/const/var` declarations — to exercise the bridge's
// offset bookkeeping and the
// estree canonicalizer end-to-end in tests, without claiming to be a
// conformant JavaScript/TypeScript parser. Any other expression (member/
// call chains, literals, ...) is balanced-scanned to its end and returned
// as a RawExpression holding the source text.
type Stub struct{}

func (Stub) ParseModule(source []byte, start int) (estree.Value, int, error) {
	end := len(source)
	return estree.NewObject(
		estree.Member{Name: "type", Value: estree.NewString("Program")},
		estree.Member{Name: "sourceType", Value: estree.NewString("module")},
		estree.Member{Name: "body", Value: estree.NewArray()},
		estree.Member{Name: "start", Value: estree.NewNumber(float64(start))},
		estree.Member{Name: "end", Value: estree.NewNumber(float64(end))},
	), end, nil
}

func (Stub) ParseExpression(source []byte, start int) (estree.Value, int, error) {
	s := skipLeadingSpace(source, start)
	end := scanBalancedUntil(source, s, stopAtTopLevel(',', ';', ')', ']', '}'))
	return expressionNode(source, s, end), end, nil
}

func (Stub) ParsePattern(source []byte, start int) (estree.Value, int, error) {
	s := skipLeadingSpace(source, start)
	end := scanBalancedUntil(source, s, stopAtTopLevel(',', ';', ')', ']', '}'))
	return patternNode(source, s, end), end, nil
}

func (Stub) ParseTypeAnnotation(source []byte, start int) (estree.Value, int, error) {
	s := skipLeadingSpace(source, start)
	end := scanBalancedUntil(source, s, stopAtTopLevel(',', ';', ')', ']', '}', '='))
	text := strings.TrimSpace(string(source[s:end]))
	return estree.NewObject(
		estree.Member{Name: "type", Value: estree.NewString("TSTypeReference")},
		estree.Member{Name: "typeName", Value: estree.NewObject(
			estree.Member{Name: "type", Value: estree.NewString("Identifier")},
			estree.Member{Name: "name", Value: estree.NewString(text)},
		)},
		estree.Member{Name: "start", Value: estree.NewNumber(float64(s))},
		estree.Member{Name: "end", Value: estree.NewNumber(float64(end))},
	), end, nil
}

func (Stub) ParseVariableDeclaration(source []byte, start int) (estree.Value, int, error) {
	s := skipLeadingSpace(source, start)
	kind := "let"
	rest := s
	for _, kw := range []string{"let", "const", "var"} {
		if strings.HasPrefix(string(source[s:]), kw) {
			kind = kw
			rest = s + len(kw)
			break
		}
	}
	rest = skipLeadingSpace(source, rest)
	end := scanBalancedUntil(source, rest, stopAtTopLevel(';', '}'))
	eq := indexTopLevel(source[rest:end], '=')
	var id, init estree.Value
	if eq < 0 {
		id = patternNode(source, rest, end)
		init = estree.Null()
	} else {
		id = patternNode(source, rest, rest+eq)
		initStart := skipLeadingSpace(source, rest+eq+1)
		init = expressionNode(source, initStart, end)
	}
	declarator := estree.NewObject(
		estree.Member{Name: "type", Value: estree.NewString("VariableDeclarator")},
		estree.Member{Name: "id", Value: id},
		estree.Member{Name: "init", Value: init},
		estree.Member{Name: "start", Value: estree.NewNumber(float64(rest))},
		estree.Member{Name: "end", Value: estree.NewNumber(float64(end))},
	)
	return estree.NewObject(
		estree.Member{Name: "type", Value: estree.NewString("VariableDeclaration")},
		estree.Member{Name: "kind", Value: estree.NewString(kind)},
		estree.Member{Name: "declarations", Value: estree.NewArray(declarator)},
		estree.Member{Name: "start", Value: estree.NewNumber(float64(s))},
		estree.Member{Name: "end", Value: estree.NewNumber(float64(end))},
	), end, nil
}

func (Stub) ParseStatementList(source []byte, start int) ([]estree.Value, int, error) {
	s := skipLeadingSpace(source, start)
	end := scanBalancedUntil(source, s, stopAtTopLevel('}'))
	parts := splitTopLevel(source[s:end], ',')
	out := make([]estree.Value, 0, len(parts))
	offset := s
	for _, part := range parts {
		trimmed := strings.TrimSpace(string(part))
		if trimmed == "" {
			offset += len(part) + 1
			continue
		}
		partStart := offset + leadingSpaceLen(part)
		out = append(out, expressionNode(source, partStart, partStart+len(trimmed)))
		offset += len(part) + 1
	}
	return out, end, nil
}

// --- shared scanning helpers -------------------------------------------------

// skipLeadingSpace skips both whitespace and `//`/`/* */` comments, so an
// expression like `{ /* TODO */ value }` still resolves to the bare
// Identifier "value" rather than a RawExpression starting at the comment.
func skipLeadingSpace(source []byte, i int) int {
	spans := helpers.CommentSpans(source)
	for {
		for i < len(source) && isSpace(source[i]) {
			i++
		}
		advanced := false
		for _, s := range spans {
			if s.Start == i {
				i = s.End
				advanced = true
				break
			}
			if s.Start > i {
				break
			}
		}
		if !advanced {
			return i
		}
	}
}

func leadingSpaceLen(b []byte) int {
	i := 0
	for i < len(b) && isSpace(b[i]) {
		i++
	}
	return i
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}

func stopAtTopLevel(stops ...byte) func(byte) bool {
	set := map[byte]bool{}
	for _, s := range stops {
		set[s] = true
	}
	return func(b byte) bool { return set[b] }
}

// scanBalancedUntil walks source from i tracking paren/bracket/brace and
// string/template depth, returning the offset of the first byte at depth 0
// for which stop returns true, or len(source) if none is found.
func scanBalancedUntil(source []byte, i int, stop func(byte) bool) int {
	n := len(source)
	depth := 0
	for i < n {
		c := source[i]
		switch c {
		case '\'', '"', '`':
			i = skipQuoted(source, i)
			continue
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			if depth == 0 && stop(c) {
				return i
			}
			if depth > 0 {
				depth--
			}
		default:
			if depth == 0 && stop(c) {
				return i
			}
		}
		i++
	}
	return n
}

func skipQuoted(source []byte, i int) int {
	quote := source[i]
	i++
	n := len(source)
	for i < n {
		if source[i] == '\\' {
			i += 2
			continue
		}
		if source[i] == quote {
			return i + 1
		}
		i++
	}
	return n
}

func indexTopLevel(b []byte, target byte) int {
	depth := 0
	for i := 0; i < len(b); i++ {
		c := b[i]
		switch c {
		case '\'', '"', '`':
			j := skipQuoted(b, i)
			i = j - 1
			continue
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		default:
			if depth == 0 && c == target {
				return i
			}
		}
	}
	return -1
}

func splitTopLevel(b []byte, sep byte) [][]byte {
	var parts [][]byte
	depth := 0
	last := 0
	for i := 0; i < len(b); i++ {
		c := b[i]
		switch c {
		case '\'', '"', '`':
			j := skipQuoted(b, i)
			i = j - 1
			continue
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		default:
			if depth == 0 && c == sep {
				parts = append(parts, b[last:i])
				last = i + 1
			}
		}
	}
	parts = append(parts, b[last:])
	return parts
}

// --- node construction --------------------------------------------------

func isIdentifierText(text string) bool {
	if text == "" {
		return false
	}
	for i := 0; i < len(text); i++ {
		c := text[i]
		isAlpha := c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
		isDigit := c >= '0' && c <= '9'
		if i == 0 && !isAlpha {
			return false
		}
		if i > 0 && !isAlpha && !isDigit {
			return false
		}
	}
	return true
}

func expressionNode(source []byte, start, end int) estree.Value {
	text := strings.TrimSpace(string(source[start:end]))
	if isIdentifierText(text) {
		return estree.NewObject(
			estree.Member{Name: "type", Value: estree.NewString("Identifier")},
			estree.Member{Name: "name", Value: estree.NewString(text)},
			estree.Member{Name: "start", Value: estree.NewNumber(float64(start))},
			estree.Member{Name: "end", Value: estree.NewNumber(float64(end))},
		)
	}
	// Anything more structured (member/call chains, literals, arrow
	// functions, ...) is out of scope for the stub; it is preserved
	// verbatim in "raw" so the bridge's offset contract still holds.
	return estree.NewObject(
		estree.Member{Name: "type", Value: estree.NewString("RawExpression")},
		estree.Member{Name: "raw", Value: estree.NewString(text)},
		estree.Member{Name: "start", Value: estree.NewNumber(float64(start))},
		estree.Member{Name: "end", Value: estree.NewNumber(float64(end))},
	)
}

func patternNode(source []byte, start, end int) estree.Value {
	text := strings.TrimSpace(string(source[start:end]))
	switch {
	case isIdentifierText(text):
		return estree.NewObject(
			estree.Member{Name: "type", Value: estree.NewString("Identifier")},
			estree.Member{Name: "name", Value: estree.NewString(text)},
			estree.Member{Name: "start", Value: estree.NewNumber(float64(start))},
			estree.Member{Name: "end", Value: estree.NewNumber(float64(end))},
		)
	case strings.HasPrefix(text, "[") && strings.HasSuffix(text, "]"):
		inner := source[start+1 : end-1]
		parts := splitTopLevel(inner, ',')
		elements := make([]estree.Value, 0, len(parts))
		offset := start + 1
		for _, part := range parts {
			trimmed := strings.TrimSpace(string(part))
			if trimmed == "" {
				elements = append(elements, estree.Null())
			} else {
				ps := offset + leadingSpaceLen(part)
				elements = append(elements, patternNode(source, ps, ps+len(trimmed)))
			}
			offset += len(part) + 1
		}
		return estree.NewObject(
			estree.Member{Name: "type", Value: estree.NewString("ArrayPattern")},
			estree.Member{Name: "elements", Value: estree.NewArray(elements...)},
			estree.Member{Name: "start", Value: estree.NewNumber(float64(start))},
			estree.Member{Name: "end", Value: estree.NewNumber(float64(end))},
		)
	case strings.HasPrefix(text, "{") && strings.HasSuffix(text, "}"):
		inner := source[start+1 : end-1]
		parts := splitTopLevel(inner, ',')
		props := make([]estree.Value, 0, len(parts))
		offset := start + 1
		for _, part := range parts {
			trimmed := strings.TrimSpace(string(part))
			if trimmed != "" {
				ps := offset + leadingSpaceLen(part)
				props = append(props, patternNode(source, ps, ps+len(trimmed)))
			}
			offset += len(part) + 1
		}
		return estree.NewObject(
			estree.Member{Name: "type", Value: estree.NewString("ObjectPattern")},
			estree.Member{Name: "properties", Value: estree.NewArray(props...)},
			estree.Member{Name: "start", Value: estree.NewNumber(float64(start))},
			estree.Member{Name: "end", Value: estree.NewNumber(float64(end))},
		)
	default:
		return expressionNode(source, start, end)
	}
}
