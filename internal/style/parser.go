package style

import (
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Parser parses the raw contents of a <style> block into a Sheet (spec
// §4.4). It is not injected like ScriptParser: the style grammar is one of
// this system's own three core subsystems, not an external collaborator
// (spec §1), so there is exactly one implementation.
type Parser interface {
	ParseStylesheet(source []byte, startOffset, endHint int) (*Sheet, error)
}

type recursiveDescent struct{}

// NewParser returns the stylesheet parser.
func NewParser() Parser { return &recursiveDescent{} }

func (rd *recursiveDescent) ParseStylesheet(source []byte, startOffset, endHint int) (*Sheet, error) {
	if endHint <= startOffset || endHint > len(source) {
		endHint = len(source)
	}
	body := source[startOffset:endHint]
	t := newTokenizer(body, startOffset)
	children := rd.parseItems(t, source, false)
	return &Sheet{
		Start:    startOffset,
		End:      endHint,
		Children: children,
		Content:  Content{Start: startOffset, End: endHint, Styles: string(body)},
	}, nil
}

// tokenizer wraps tdewolff/parse/v2's CSS lexer, skipping whitespace and
// comments and tracking each token's absolute byte offset into the
// original (un-sliced) source buffer.
type tokenizer struct {
	lx     *css.Lexer
	base   int
	offset int
	tt     css.TokenType
	data   []byte
	start  int
	done   bool
}

func newTokenizer(body []byte, base int) *tokenizer {
	t := &tokenizer{lx: css.NewLexer(parse.NewInputBytes(body)), base: base}
	t.fetch()
	return t
}

func (t *tokenizer) fetch() {
	for {
		tt, data := t.lx.Next()
		start := t.base + t.offset
		t.offset += len(data)
		if tt == css.WhitespaceToken || tt == css.CommentToken {
			continue
		}
		t.tt, t.data, t.start = tt, data, start
		if tt == css.ErrorToken {
			t.done = true
		}
		return
	}
}

func (t *tokenizer) next() {
	if !t.done {
		t.fetch()
	}
}

// parseItems implements rule_list (spec §4.4): a sequence of Rule/Atrule
// nodes, or — inside a rule's own block, where allowDeclarations is true —
// Declaration nodes as well (a nested Rule can still appear there via `&`
// nesting).
func (rd *recursiveDescent) parseItems(t *tokenizer, source []byte, allowDeclarations bool) []Node {
	var items []Node
	for !t.done {
		if t.tt == css.RightBraceToken {
			break
		}
		if t.tt == css.AtKeywordToken {
			items = append(items, rd.parseAtrule(t, source))
			continue
		}
		item := rd.parsePreludeOrDeclaration(t, source, allowDeclarations)
		if item != nil {
			items = append(items, item)
		}
	}
	return items
}

// parsePreludeOrDeclaration accumulates tokens from the current position,
// tracking paren/bracket depth, until it finds (at depth 0) a `{` — making
// the accumulated text a selector prelude for a nested Rule — a `;` or a
// block-closing `}` — making it a Declaration.
func (rd *recursiveDescent) parsePreludeOrDeclaration(t *tokenizer, source []byte, allowDeclarations bool) Node {
	start := t.start
	depth := 0
	for !t.done {
		switch t.tt {
		case css.LeftParenToken, css.LeftBracketToken:
			depth++
		case css.RightParenToken, css.RightBracketToken:
			if depth > 0 {
				depth--
			}
		case css.LeftBraceToken:
			if depth == 0 {
				prelude := strings.TrimSpace(string(source[start:t.start]))
				t.next() // consume '{'
				children := rd.parseItems(t, source, true)
				end := t.start
				if !t.done && t.tt == css.RightBraceToken {
					end = t.start + len(t.data)
					t.next()
				}
				return &Rule{
					Prelude:  prelude,
					Selector: parseSelectorList(prelude, start),
					Block:    children,
					Start_:   start,
					End_:     end,
				}
			}
		case css.SemicolonToken:
			if depth == 0 {
				end := t.start + len(t.data)
				decl := buildDeclaration(source, start, t.start)
				t.next() // consume ';'
				if allowDeclarations {
					decl.End_ = end
					return decl
				}
				return nil
			}
		case css.RightBraceToken:
			if depth == 0 {
				if allowDeclarations && t.start > start {
					return buildDeclaration(source, start, t.start)
				}
				return nil
			}
		}
		t.next()
	}
	if allowDeclarations && t.start > start {
		return buildDeclaration(source, start, t.start)
	}
	return nil
}

func buildDeclaration(source []byte, start, end int) *Declaration {
	text := strings.TrimSpace(string(source[start:end]))
	important := false
	if idx := strings.LastIndex(text, "!"); idx >= 0 && strings.EqualFold(strings.TrimSpace(text[idx+1:]), "important") {
		important = true
		text = strings.TrimSpace(text[:idx])
	}
	property, value := text, ""
	if i := strings.IndexByte(text, ':'); i >= 0 {
		property = strings.TrimSpace(text[:i])
		value = strings.TrimSpace(text[i+1:])
	}
	return &Declaration{Property: property, Value: value, Important: important, Start_: start, End_: end}
}

// parseAtrule implements the `@name prelude ( ; | block )` production
// (spec §4.4). Nested blocks recurse through parseItems exactly like a
// Rule body; unknown at-rule names fall out naturally since Name and
// Prelude are always captured verbatim regardless of recognition.
func (rd *recursiveDescent) parseAtrule(t *tokenizer, source []byte) Node {
	start := t.start
	name := string(t.data)
	t.next()
	preludeStart := t.start
	depth := 0
	for !t.done {
		switch t.tt {
		case css.LeftParenToken, css.LeftBracketToken:
			depth++
		case css.RightParenToken, css.RightBracketToken:
			if depth > 0 {
				depth--
			}
		case css.LeftBraceToken:
			if depth == 0 {
				prelude := strings.TrimSpace(string(source[preludeStart:t.start]))
				t.next()
				children := rd.parseItems(t, source, true)
				end := t.start
				if !t.done && t.tt == css.RightBraceToken {
					end = t.start + len(t.data)
					t.next()
				}
				return &Atrule{Name: name, Prelude: prelude, Block: children, Start_: start, End_: end}
			}
		case css.SemicolonToken:
			if depth == 0 {
				prelude := strings.TrimSpace(string(source[preludeStart:t.start]))
				end := t.start + len(t.data)
				t.next()
				return &Atrule{Name: name, Prelude: prelude, Block: nil, Start_: start, End_: end}
			}
		}
		t.next()
	}
	prelude := strings.TrimSpace(string(source[preludeStart:t.start]))
	return &Atrule{Name: name, Prelude: prelude, Block: nil, Start_: start, End_: t.start}
}

// parseSelectorList implements the Selector production (spec §4.4) by
// hand-scanning the already-isolated prelude text byte-by-byte: a
// comma-separated list of complex selectors, each a sequence of compound
// selectors joined by combinators, each compound selector a run of simple
// selectors (type, id, class, attribute, pseudo-class/element, `&`).
func parseSelectorList(prelude string, base int) SelectorList {
	b := []byte(prelude)
	n := len(b)
	i := 0

	var complexes []ComplexSelector
	var current ComplexSelector
	combinator := ""
	var simples []SimpleSelector

	flushCompound := func() {
		if len(simples) > 0 {
			current.Children = append(current.Children, RelativeSelector{Combinator: combinator, Selectors: simples})
			simples = nil
			combinator = ""
		}
	}
	flushComplex := func() {
		flushCompound()
		if len(current.Children) > 0 {
			complexes = append(complexes, current)
		}
		current = ComplexSelector{}
		combinator = ""
	}
	readName := func(start int) (string, int) {
		j := start
		for j < n && isSelectorNameByte(b[j]) {
			j++
		}
		return string(b[start:j]), j
	}
	readBalanced := func(start int) (string, int) {
		depth := 1
		j := start
		for j < n && depth > 0 {
			switch b[j] {
			case '(':
				depth++
			case ')':
				depth--
			}
			j++
		}
		end := j - 1
		if end < start {
			end = start
		}
		return string(b[start:end]), j
	}

	for i < n {
		c := b[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			flushCompound()
			if combinator == "" && len(current.Children) > 0 {
				combinator = " "
			}
			i++
		case c == ',':
			flushComplex()
			i++
		case c == '>' || c == '+' || c == '~':
			flushCompound()
			combinator = string(c)
			i++
		case c == '.':
			start := i
			i++
			name, j := readName(i)
			i = j
			simples = append(simples, SimpleSelector{Kind: KindClass, Name: name, Start: base + start, End: base + i})
		case c == '#':
			start := i
			i++
			name, j := readName(i)
			i = j
			simples = append(simples, SimpleSelector{Kind: KindId, Name: name, Start: base + start, End: base + i})
		case c == '&':
			simples = append(simples, SimpleSelector{Kind: KindNesting, Name: "&", Start: base + i, End: base + i + 1})
			i++
		case c == ':':
			start := i
			i++
			kind := KindPseudoClass
			if i < n && b[i] == ':' {
				kind = KindPseudoElement
				i++
			}
			name, j := readName(i)
			i = j
			args := ""
			if i < n && b[i] == '(' {
				i++
				args, i = readBalanced(i)
			}
			simples = append(simples, SimpleSelector{Kind: kind, Name: name, Args: args, Start: base + start, End: base + i})
		case c == '[':
			start := i
			i++
			depth := 1
			for i < n && depth > 0 {
				switch b[i] {
				case '[':
					depth++
				case ']':
					depth--
				}
				i++
			}
			simples = append(simples, SimpleSelector{Kind: KindAttribute, Name: string(b[start:i]), Start: base + start, End: base + i})
		default:
			if isSelectorNameByte(c) {
				start := i
				name, j := readName(i)
				i = j
				simples = append(simples, SimpleSelector{Kind: KindType, Name: name, Start: base + start, End: base + i})
			} else {
				i++
			}
		}
	}
	flushComplex()
	return SelectorList{Children: complexes}
}

func isSelectorNameByte(c byte) bool {
	return c == '_' || c == '-' || c == '\\' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
