// Package style implements the stylesheet parser (spec §4.4): a small
// recursive-descent grammar driven by tdewolff/parse/v2's low-level CSS
// tokenizer, producing a lightweight node tree rather than routing through
// internal/estree — stylesheets are not ESTree, and the bridge's
// canonicalizer has nothing to say about them.
package style

import "github.com/tesselate/compiler/internal/loc"

// Node is implemented by every stylesheet-level construct: Rule, Atrule,
// Declaration.
type Node interface {
	node()
	Span() loc.Span
}

// Sheet is the parser's top-level result. Content mirrors the reference
// shape of styles.content.styles: the exact source substring spanned by
// the stylesheet, preserved verbatim alongside the parsed node tree.
type Sheet struct {
	Start, End int
	Children   []Node
	Content    Content
}

// Content holds the raw, unparsed styles substring plus its span, kept
// around so callers that only want the original CSS text (e.g. when
// re-emitting scoped output) never have to reconstruct it from the node
// tree.
type Content struct {
	Start, End int
	Styles     string
}

// Rule is a qualified rule: a selector list followed by a declaration (or
// nested-rule, for `&`-nesting) block.
type Rule struct {
	Prelude  string
	Selector SelectorList
	Block    []Node
	Start_, End_ int
}

func (r *Rule) node()          {}
func (r *Rule) Span() loc.Span { return loc.Span{Start: r.Start_, End: r.End_} }

// Atrule is `@name prelude` followed by either `;` or a `{ ... }` block.
// Per spec §4.4, known at-rule preludes (media/supports/keyframes/import)
// are still kept verbatim here; Name lets a caller dispatch on them, and
// nested blocks (Block != nil) recurse through the same rule_list grammar
// as a plain Rule body.
type Atrule struct {
	Name         string
	Prelude      string
	Block        []Node
	Start_, End_ int
}

func (a *Atrule) node()          {}
func (a *Atrule) Span() loc.Span { return loc.Span{Start: a.Start_, End: a.End_} }

// Declaration is `property: value` with an optional trailing `!important`.
type Declaration struct {
	Property     string
	Value        string
	Important    bool
	Start_, End_ int
}

func (d *Declaration) node()          {}
func (d *Declaration) Span() loc.Span { return loc.Span{Start: d.Start_, End: d.End_} }

// SelectorList is a comma-separated list of complex selectors.
type SelectorList struct {
	Children []ComplexSelector
}

// ComplexSelector is a sequence of compound selectors connected by
// combinators (descendant, `>`, `+`, `~`).
type ComplexSelector struct {
	Children []RelativeSelector
}

// RelativeSelector is one compound selector plus the combinator that
// precedes it ("" for the first one in a complex selector, meaning
// descendant-combinator-or-start).
type RelativeSelector struct {
	Combinator string
	Selectors  []SimpleSelector
}

// SimpleSelectorKind discriminates the SimpleSelector variants.
type SimpleSelectorKind int

const (
	KindType SimpleSelectorKind = iota
	KindId
	KindClass
	KindAttribute
	KindPseudoClass
	KindPseudoElement
	KindNesting // "&"
)

// SimpleSelector is one atom of a compound selector. Args holds the raw,
// paren-balanced argument text for functional pseudo-classes such as
// `:not(.a, .b)`, `:global(...)`, `:has(...)`.
type SimpleSelector struct {
	Kind  SimpleSelectorKind
	Name  string
	Args  string
	Start int
	End   int
}
