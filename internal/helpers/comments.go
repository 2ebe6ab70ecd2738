// Package helpers holds small text utilities shared across parsing stages
// that don't belong to any one of them. CommentSpans is adapted from the
// teacher's internal/helpers/js_comment_utils.go, which stripped comments
// out of a string wholesale; here it instead reports comment spans without
// mutating anything, since this module is zero-copy and every offset must
// stay valid into the original source.
package helpers

import "github.com/tesselate/compiler/internal/loc"

// CommentSpans returns the byte spans of every `//` line comment and
// `/* */` block comment found in data, in order. It does not understand
// string or template-literal quoting; callers that need quote-aware
// scanning (attribute values, script content) must skip past quoted
// regions themselves before calling this, the same caveat the teacher's
// js_scanner package carries ("ignore `await` inside of function bodies"
// being the type of nuance left to the real script parser, not this
// lightweight scan).
func CommentSpans(data []byte) []loc.Span {
	var spans []loc.Span
	i := 0
	n := len(data)
	for i < n-1 {
		if data[i] == '/' && data[i+1] == '/' {
			start := i
			i += 2
			for i < n && data[i] != '\n' {
				i++
			}
			spans = append(spans, loc.Span{Start: start, End: i})
			continue
		}
		if data[i] == '/' && data[i+1] == '*' {
			start := i
			i += 2
			for i < n-1 && !(data[i] == '*' && data[i+1] == '/') {
				i++
			}
			if i < n-1 {
				i += 2
			} else {
				i = n
			}
			spans = append(spans, loc.Span{Start: start, End: i})
			continue
		}
		i++
	}
	return spans
}

// InComment reports whether offset falls inside one of spans.
func InComment(spans []loc.Span, offset int) bool {
	for _, s := range spans {
		if offset >= s.Start && offset < s.End {
			return true
		}
		if s.Start > offset {
			break
		}
	}
	return false
}
