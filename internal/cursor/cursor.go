// Package cursor implements the source cursor (spec §4.1): it owns the
// input bytes and a byte offset and provides lookahead, matching,
// whitespace-skipping, and error-positioning helpers used by the template
// parser (the style parser uses its own tokenizer). It never allocates beyond the
// occasional slice of the already-owned buffer.
//
// The byte-at-a-time scanning style (no regexp, no bufio.Scanner on the hot
// path) and the block/line-comment scanners are carried over from the
// teacher's internal/token.go Tokenizer and internal/js_scanner package,
// generalized so both template-context (`<!-- -->`) and script-context
// (`// `, `/* */`) comments can be skipped through the same Cursor.
package cursor

import (
	"unicode/utf8"

	"github.com/tesselate/compiler/internal/loc"
)

// CommentStyle selects which comment syntax SkipWhitespace should cross.
type CommentStyle int

const (
	// NoComments skips only whitespace.
	NoComments CommentStyle = iota
	// HTMLComments additionally skips <!-- ... -->.
	HTMLComments
	// ScriptComments additionally skips // line and /* block */ comments.
	ScriptComments
)

// Cursor is a read-only walk over source bytes with a single mutable byte
// offset. Position only ever advances on a successful match.
type Cursor struct {
	source []byte
	offset int
}

func New(source []byte) *Cursor {
	return &Cursor{source: source}
}

// Source returns the full underlying buffer.
func (c *Cursor) Source() []byte { return c.source }

// Offset returns the current byte offset.
func (c *Cursor) Offset() int { return c.offset }

// SetOffset repositions the cursor; used by the template parser when
// delegating a sub-range to the expression bridge and resuming afterward.
func (c *Cursor) SetOffset(n int) { c.offset = n }

// Len returns the number of bytes remaining.
func (c *Cursor) Len() int { return len(c.source) - c.offset }

// Eof reports whether the cursor has reached the end of input.
func (c *Cursor) Eof() bool { return c.offset >= len(c.source) }

// Peek returns up to n bytes starting at the current offset without
// advancing.
func (c *Cursor) Peek(n int) []byte {
	end := c.offset + n
	if end > len(c.source) {
		end = len(c.source)
	}
	if c.offset >= end {
		return nil
	}
	return c.source[c.offset:end]
}

// PeekByte returns the byte at the current offset, or 0 at EOF.
func (c *Cursor) PeekByte() byte {
	if c.Eof() {
		return 0
	}
	return c.source[c.offset]
}

// PeekByteAt returns the byte n positions ahead of the current offset, or 0
// past EOF.
func (c *Cursor) PeekByteAt(n int) byte {
	i := c.offset + n
	if i < 0 || i >= len(c.source) {
		return 0
	}
	return c.source[i]
}

// PeekRune decodes the rune at the current offset without advancing.
func (c *Cursor) PeekRune() (rune, int) {
	if c.Eof() {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRune(c.source[c.offset:])
}

// StartsWith reports whether the remaining input begins with s.
func (c *Cursor) StartsWith(s string) bool {
	rest := c.source[c.offset:]
	if len(rest) < len(s) {
		return false
	}
	return string(rest[:len(s)]) == s
}

// Eat consumes s if the remaining input begins with it, advancing the
// cursor, and reports whether it matched.
func (c *Cursor) Eat(s string) bool {
	if !c.StartsWith(s) {
		return false
	}
	c.offset += len(s)
	return true
}

// EatByte consumes a single matching byte.
func (c *Cursor) EatByte(b byte) bool {
	if c.Eof() || c.source[c.offset] != b {
		return false
	}
	c.offset++
	return true
}

// EatUntil advances the cursor until pred returns true (or EOF) and returns
// the span consumed.
func (c *Cursor) EatUntil(pred func(byte) bool) loc.Span {
	start := c.offset
	for !c.Eof() && !pred(c.source[c.offset]) {
		c.offset++
	}
	return loc.Span{Start: start, End: c.offset}
}

// EatWhile advances the cursor while pred holds (or EOF) and returns the
// span consumed.
func (c *Cursor) EatWhile(pred func(byte) bool) loc.Span {
	return c.EatUntil(func(b byte) bool { return !pred(b) })
}

func isASCIIWhitespace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\f', '\r':
		return true
	}
	return false
}

// SkipWhitespace advances past runs of whitespace, optionally crossing
// comments per style, and returns the span skipped.
func (c *Cursor) SkipWhitespace(style CommentStyle) loc.Span {
	start := c.offset
	for {
		c.EatWhile(isASCIIWhitespace)
		switch style {
		case HTMLComments:
			if c.StartsWith("<!--") {
				c.skipHTMLComment()
				continue
			}
		case ScriptComments:
			if c.StartsWith("//") {
				c.skipLineComment()
				continue
			}
			if c.StartsWith("/*") {
				c.skipBlockComment()
				continue
			}
		}
		break
	}
	return loc.Span{Start: start, End: c.offset}
}

func (c *Cursor) skipHTMLComment() {
	c.offset += len("<!--")
	for !c.Eof() {
		if c.StartsWith("-->") {
			c.offset += len("-->")
			return
		}
		c.offset++
	}
}

func (c *Cursor) skipLineComment() {
	c.offset += len("//")
	for !c.Eof() && c.source[c.offset] != '\n' {
		c.offset++
	}
}

func (c *Cursor) skipBlockComment() {
	c.offset += len("/*")
	for !c.Eof() {
		if c.StartsWith("*/") {
			c.offset += len("*/")
			return
		}
		c.offset++
	}
}

// Span returns a zero-length span at the current offset, or the span
// between a previously captured start and the current offset.
func (c *Cursor) Span(start int) loc.Span {
	return loc.Span{Start: start, End: c.offset}
}

// IsIdentifierStart reports whether b may begin an identifier (ASCII
// subset; the component language's identifiers are a superset of the
// embedded script language's, which the bridge fully validates).
func IsIdentifierStart(b byte) bool {
	return b == '_' || b == '$' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// IsIdentifierPart reports whether b may continue an identifier.
func IsIdentifierPart(b byte) bool {
	return IsIdentifierStart(b) || (b >= '0' && b <= '9')
}
