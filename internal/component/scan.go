package component

import "github.com/tesselate/compiler/internal/cursor"

// This file holds the small byte-level scanners shared by the attribute,
// tag, and block grammars: finding a matching closing bracket, locating a
// top-level keyword, and splitting on a top-level stop character. All of
// them track paren/bracket/brace and quote depth so they never stop in
// the middle of a string literal or a nested expression.

func isWhitespace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}

func bytesHasPrefix(b []byte, s string) bool {
	return len(b) >= len(s) && string(b[:len(s)]) == s
}

func skipWS(source []byte, i int) int {
	for i < len(source) && isWhitespace(source[i]) {
		i++
	}
	return i
}

func skipQuotedComponent(source []byte, i int) int {
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

// matchBrace takes the offset of an opening '{' and returns the offset of
// its matching '}', tracking nested braces and skipping over string/
// template literals. Returns len(source) if unmatched.
func matchBrace(source []byte, start int) int {
	depth := 0
	i := start
	n := len(source)
	for i < n {
		switch source[i] {
		case '\'', '"', '`':
			i = skipQuotedComponent(source, i)
			continue
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
		i++
	}
	return n
}

// matchParen is matchBrace's analogue for a `(` already at start.
func matchParen(source []byte, start int) int {
	depth := 0
	i := start
	n := len(source)
	for i < n {
		switch source[i] {
		case '\'', '"', '`':
			i = skipQuotedComponent(source, i)
			continue
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
		i++
	}
	return n
}

// indexWord finds the offset of word as a whitespace-delimited keyword at
// paren/bracket/brace depth 0, starting the search from "from" (which
// itself need not be on a word boundary). Returns -1 if not found.
func indexWord(source []byte, from int, word string) int {
	depth := 0
	i := from
	n := len(source)
	for i < n {
		c := source[i]
		switch c {
		case '\'', '"', '`':
			i = skipQuotedComponent(source, i)
			continue
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			if depth > 0 {
				depth--
			}
		default:
			if depth == 0 && isWhitespace(c) {
				j := i
				for j < n && isWhitespace(source[j]) {
					j++
				}
				if bytesHasPrefix(source[j:], word) {
					k := j + len(word)
					if k >= n || isWhitespace(source[k]) || source[k] == '(' {
						return j
					}
				}
			}
		}
		i++
	}
	return -1
}

// scanComponentUntil scans source[from:limit] tracking paren/bracket/brace
// and quote depth, returning the offset of the first depth-0 byte in
// stops, or limit if none is found. '(' is only treated as a stop
// character (not a depth-increasing one) when it is itself in stops.
func scanComponentUntil(source []byte, from, limit int, stops ...byte) int {
	stopSet := map[byte]bool{}
	for _, s := range stops {
		stopSet[s] = true
	}
	depth := 0
	i := from
	for i < limit {
		c := source[i]
		switch c {
		case '\'', '"', '`':
			i = skipQuotedComponent(source, i)
			continue
		case '[', '{':
			depth++
		case ']', '}':
			if depth > 0 {
				depth--
			}
		case '(':
			if depth == 0 && stopSet['('] {
				return i
			}
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		default:
			if depth == 0 && stopSet[c] {
				return i
			}
		}
		i++
	}
	return limit
}

func isTagNameByte(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9':
		return true
	case b == '-' || b == ':' || b == '.' || b == '_':
		return true
	}
	return false
}

func isNameStart(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_'
}

func isAttrNameByte(b byte) bool {
	switch b {
	case 0, ' ', '\t', '\n', '\r', '\f', '=', '>', '/', '"', '\'', '<':
		return false
	}
	return true
}

func hasPrefixWord(rest []byte, kw string) bool {
	if !bytesHasPrefix(rest, kw) {
		return false
	}
	if len(rest) == len(kw) {
		return true
	}
	return !cursor.IsIdentifierPart(rest[len(kw)])
}

func isElseIf(source []byte, afterElseKeyword int) bool {
	if !bytesHasPrefix(source[afterElseKeyword:], "if") {
		return false
	}
	j := afterElseKeyword + 2
	return j >= len(source) || isWhitespace(source[j])
}
