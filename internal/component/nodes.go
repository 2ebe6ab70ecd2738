// Package component implements the template parser (spec §4.5) and root
// orchestrator (spec §4.6): the fragment/element/attribute/directive/block/
// tag grammar, element name classification, and the assembly of
// <script>/<style>/fragment regions into a Root.
//
// Every concrete node type here owns its own ToValue conversion into
// internal/estree.Value, the same order-preserving tree the bridge hands
// back from the script sub-parser — so internal/printer has exactly one
// serialization path for both bridged sub-ASTs and this package's own
// nodes, instead of two.
package component

import (
	"github.com/tesselate/compiler/internal/estree"
	"github.com/tesselate/compiler/internal/loc"
	"github.com/tesselate/compiler/internal/style"
)

// Node is implemented by every fragment child, attribute/directive, and
// the handful of container types (Fragment, Script, Style, Root) that sit
// above them.
type Node interface {
	Span() loc.Span
	ToValue() estree.Value
}

func m(name string, v estree.Value) estree.Member {
	return estree.Member{Name: name, Value: v}
}

func obj(typ string, start, end int, fields ...estree.Member) estree.Value {
	members := make([]estree.Member, 0, len(fields)+3)
	members = append(members, m("type", estree.NewString(typ)))
	members = append(members, fields...)
	members = append(members,
		m("start", estree.NewNumber(float64(start))),
		m("end", estree.NewNumber(float64(end))),
	)
	return estree.NewObject(members...)
}

func nodeValue(n Node) estree.Value {
	if n == nil {
		return estree.Null()
	}
	return n.ToValue()
}

func arrayOf(nodes []Node) estree.Value {
	items := make([]estree.Value, len(nodes))
	for i, n := range nodes {
		items[i] = n.ToValue()
	}
	return estree.NewArray(items...)
}

// --- fragment, text, comment ------------------------------------------------

// Fragment is an ordered sequence of template children (spec §3).
type Fragment struct {
	Nodes        []Node
	Start_, End_ int
}

func (f *Fragment) Span() loc.Span { return loc.Span{Start: f.Start_, End: f.End_} }
func (f *Fragment) ToValue() estree.Value {
	return obj("Fragment", f.Start_, f.End_, m("nodes", arrayOf(f.Nodes)))
}

type Text struct {
	Data         string
	Start_, End_ int
}

func (t *Text) Span() loc.Span { return loc.Span{Start: t.Start_, End: t.End_} }
func (t *Text) ToValue() estree.Value {
	return obj("Text", t.Start_, t.End_, m("data", estree.NewString(t.Data)))
}

type Comment struct {
	Data         string
	Start_, End_ int
}

func (c *Comment) Span() loc.Span { return loc.Span{Start: c.Start_, End: c.End_} }
func (c *Comment) ToValue() estree.Value {
	return obj("Comment", c.Start_, c.End_, m("data", estree.NewString(c.Data)))
}

// --- tag constructs ----------------------------------------------------------

type ExpressionTag struct {
	Expression   estree.Value
	Start_, End_ int
}

func (t *ExpressionTag) Span() loc.Span { return loc.Span{Start: t.Start_, End: t.End_} }
func (t *ExpressionTag) ToValue() estree.Value {
	return obj("ExpressionTag", t.Start_, t.End_, m("expression", t.Expression))
}

type HtmlTag struct {
	Expression   estree.Value
	Start_, End_ int
}

func (t *HtmlTag) Span() loc.Span { return loc.Span{Start: t.Start_, End: t.End_} }
func (t *HtmlTag) ToValue() estree.Value {
	return obj("HtmlTag", t.Start_, t.End_, m("expression", t.Expression))
}

type ConstTag struct {
	Declaration  estree.Value
	Start_, End_ int
}

func (t *ConstTag) Span() loc.Span { return loc.Span{Start: t.Start_, End: t.End_} }
func (t *ConstTag) ToValue() estree.Value {
	return obj("ConstTag", t.Start_, t.End_, m("declaration", t.Declaration))
}

type DebugTag struct {
	Identifiers  []estree.Value
	Start_, End_ int
}

func (t *DebugTag) Span() loc.Span { return loc.Span{Start: t.Start_, End: t.End_} }
func (t *DebugTag) ToValue() estree.Value {
	return obj("DebugTag", t.Start_, t.End_, m("identifiers", estree.NewArray(t.Identifiers...)))
}

type RenderTag struct {
	Expression   estree.Value
	Start_, End_ int
}

func (t *RenderTag) Span() loc.Span { return loc.Span{Start: t.Start_, End: t.End_} }
func (t *RenderTag) ToValue() estree.Value {
	return obj("RenderTag", t.Start_, t.End_, m("expression", t.Expression))
}

// --- attributes / directives -------------------------------------------------

// Attribute is a static, expression-valued, or shorthand attribute (spec
// §3). Boolean is true for a bare name with no value; Parts holds Text/
// ExpressionTag runs otherwise.
type Attribute struct {
	Name         string
	Boolean      bool
	Parts        []Node
	Start_, End_ int
}

func (a *Attribute) Span() loc.Span { return loc.Span{Start: a.Start_, End: a.End_} }
func (a *Attribute) ToValue() estree.Value {
	value := arrayOf(a.Parts)
	if a.Boolean {
		value = estree.NewBool(true)
	}
	return obj("Attribute", a.Start_, a.End_, m("name", estree.NewString(a.Name)), m("value", value))
}

type SpreadAttribute struct {
	Expression   estree.Value
	Start_, End_ int
}

func (a *SpreadAttribute) Span() loc.Span { return loc.Span{Start: a.Start_, End: a.End_} }
func (a *SpreadAttribute) ToValue() estree.Value {
	return obj("SpreadAttribute", a.Start_, a.End_, m("expression", a.Expression))
}

// DirectiveKind names the `kind:name` prefix recognized by the attribute
// grammar (spec §4.5's attrs production).
type DirectiveKind string

const (
	DirectiveBind       DirectiveKind = "bind"
	DirectiveOn         DirectiveKind = "on"
	DirectiveUse        DirectiveKind = "use"
	DirectiveTransition DirectiveKind = "transition"
	DirectiveAnimate    DirectiveKind = "animate"
	DirectiveClass      DirectiveKind = "class"
	DirectiveStyle      DirectiveKind = "style"
	DirectiveLet        DirectiveKind = "let"
)

// Directive is one `kind:name` directive attribute. Intro/Outro are only
// meaningful when Kind is DirectiveTransition, set from the `in`/`out`
// spelling variants (spec §4.5).
type Directive struct {
	Kind         DirectiveKind
	Name         string
	Expression   estree.Value
	Modifiers    []string
	Intro, Outro bool
	Start_, End_ int
}

func (d *Directive) Span() loc.Span { return loc.Span{Start: d.Start_, End: d.End_} }

func (d *Directive) typeName() string {
	switch d.Kind {
	case DirectiveBind:
		return "BindDirective"
	case DirectiveOn:
		return "OnDirective"
	case DirectiveUse:
		return "UseDirective"
	case DirectiveTransition:
		return "TransitionDirective"
	case DirectiveAnimate:
		return "AnimateDirective"
	case DirectiveClass:
		return "ClassDirective"
	case DirectiveStyle:
		return "StyleDirective"
	case DirectiveLet:
		return "LetDirective"
	default:
		return "Directive"
	}
}

func (d *Directive) ToValue() estree.Value {
	mods := make([]estree.Value, len(d.Modifiers))
	for i, mod := range d.Modifiers {
		mods[i] = estree.NewString(mod)
	}
	fields := []estree.Member{
		m("name", estree.NewString(d.Name)),
		m("expression", d.Expression),
		m("modifiers", estree.NewArray(mods...)),
	}
	if d.Kind == DirectiveTransition {
		fields = append(fields, m("intro", estree.NewBool(d.Intro)), m("outro", estree.NewBool(d.Outro)))
	}
	return obj(d.typeName(), d.Start_, d.End_, fields...)
}

// --- elements -----------------------------------------------------------

// Element covers every tag-name-classified element variant (spec §4.5's
// classification table): RegularElement, Component, SvelteElement,
// SvelteComponent, SvelteSelf, SvelteFragment, SvelteHead, SvelteWindow,
// SvelteDocument, SvelteBody, SvelteOptions, SlotElement, TitleElement.
// One struct with a Kind discriminator avoids a 13-way type explosion for
// variants that differ only in which name pattern selected them and
// (for SvelteElement alone) one extra `tag` field.
type Element struct {
	Kind         string
	Name         string
	Attributes   []Node
	Fragment     Fragment
	Tag          estree.Value // set only when Kind == "SvelteElement"
	Start_, End_ int
}

func (e *Element) Span() loc.Span { return loc.Span{Start: e.Start_, End: e.End_} }
func (e *Element) ToValue() estree.Value {
	fields := []estree.Member{m("name", estree.NewString(e.Name))}
	if e.Kind == "SvelteElement" {
		fields = append(fields, m("tag", e.Tag))
	}
	fields = append(fields,
		m("attributes", arrayOf(e.Attributes)),
		m("fragment", e.Fragment.ToValue()),
	)
	return obj(e.Kind, e.Start_, e.End_, fields...)
}

// --- block constructs ---------------------------------------------------

type IfBlock struct {
	Test         estree.Value
	Consequent   Fragment
	Alternate    Node // nil | *Fragment | *IfBlock
	ElseIf       bool
	Start_, End_ int
}

func (b *IfBlock) Span() loc.Span { return loc.Span{Start: b.Start_, End: b.End_} }
func (b *IfBlock) ToValue() estree.Value {
	return obj("IfBlock", b.Start_, b.End_,
		m("test", b.Test),
		m("consequent", b.Consequent.ToValue()),
		m("alternate", nodeValue(b.Alternate)),
		m("elseif", estree.NewBool(b.ElseIf)),
	)
}

type EachBlock struct {
	Expression   estree.Value
	Context      estree.Value
	Body         Fragment
	Fallback     *Fragment
	Key          estree.Value
	Index        string // "" => null
	Start_, End_ int
}

func (b *EachBlock) Span() loc.Span { return loc.Span{Start: b.Start_, End: b.End_} }
func (b *EachBlock) ToValue() estree.Value {
	var fallback estree.Value
	if b.Fallback != nil {
		fallback = b.Fallback.ToValue()
	}
	var index estree.Value
	if b.Index != "" {
		index = estree.NewString(b.Index)
	}
	return obj("EachBlock", b.Start_, b.End_,
		m("expression", b.Expression),
		m("context", b.Context),
		m("body", b.Body.ToValue()),
		m("fallback", fallback),
		m("key", b.Key),
		m("index", index),
	)
}

type AwaitBlock struct {
	Expression           estree.Value
	Value, Error         estree.Value
	Pending, Then, Catch *Fragment
	Start_, End_         int
}

func (b *AwaitBlock) Span() loc.Span { return loc.Span{Start: b.Start_, End: b.End_} }
func fragmentOrNull(f *Fragment) estree.Value {
	if f == nil {
		return estree.Null()
	}
	return f.ToValue()
}
func (b *AwaitBlock) ToValue() estree.Value {
	return obj("AwaitBlock", b.Start_, b.End_,
		m("expression", b.Expression),
		m("value", b.Value),
		m("error", b.Error),
		m("pending", fragmentOrNull(b.Pending)),
		m("then", fragmentOrNull(b.Then)),
		m("catch", fragmentOrNull(b.Catch)),
	)
}

type KeyBlock struct {
	Expression   estree.Value
	Fragment     Fragment
	Start_, End_ int
}

func (b *KeyBlock) Span() loc.Span { return loc.Span{Start: b.Start_, End: b.End_} }
func (b *KeyBlock) ToValue() estree.Value {
	return obj("KeyBlock", b.Start_, b.End_, m("expression", b.Expression), m("fragment", b.Fragment.ToValue()))
}

type SnippetBlock struct {
	Expression   estree.Value // Identifier
	Parameters   []estree.Value
	Body         Fragment
	Start_, End_ int
}

func (b *SnippetBlock) Span() loc.Span { return loc.Span{Start: b.Start_, End: b.End_} }
func (b *SnippetBlock) ToValue() estree.Value {
	return obj("SnippetBlock", b.Start_, b.End_,
		m("expression", b.Expression),
		m("parameters", estree.NewArray(b.Parameters...)),
		m("body", b.Body.ToValue()),
	)
}

// --- script / style / root -----------------------------------------------

type Script struct {
	Context      string // "default" | "module"
	Content      estree.Value
	Attributes   []Node
	Start_, End_ int
}

func (s *Script) Span() loc.Span { return loc.Span{Start: s.Start_, End: s.End_} }
func (s *Script) ToValue() estree.Value {
	return obj("Script", s.Start_, s.End_,
		m("context", estree.NewString(s.Context)),
		m("content", s.Content),
		m("attributes", arrayOf(s.Attributes)),
	)
}

// Style is the <style> block's Root.css slot: a StyleSheet node wrapping
// the internal/style parser's own Rule/Atrule/Declaration tree.
type Style struct {
	Attributes   []Node
	Sheet        *style.Sheet
	Start_, End_ int
}

func (s *Style) Span() loc.Span { return loc.Span{Start: s.Start_, End: s.End_} }
func (s *Style) ToValue() estree.Value {
	return obj("StyleSheet", s.Start_, s.End_,
		m("attributes", arrayOf(s.Attributes)),
		m("children", style.ChildrenValue(s.Sheet.Children)),
		m("content", style.ContentValue(s.Sheet.Content)),
	)
}

// Root is the top-level AST node. Its metadata is currently just the `ts`
// flag (spec §4.6: "true iff any script element has a lang=\"ts\"
// attribute").
type Root struct {
	CSS          *Style
	Instance     *Script
	Module       *Script
	Fragment     Fragment
	Options      Node // the SvelteOptions-classified svelte:options Element, or nil
	TS           bool
	Start_, End_ int
}

func (r *Root) Span() loc.Span { return loc.Span{Start: r.Start_, End: r.End_} }
func (r *Root) ToValue() estree.Value {
	var css, instance, module, options estree.Value
	if r.CSS != nil {
		css = r.CSS.ToValue()
	}
	if r.Instance != nil {
		instance = r.Instance.ToValue()
	}
	if r.Module != nil {
		module = r.Module.ToValue()
	}
	if r.Options != nil {
		options = r.Options.ToValue()
	}
	metadata := estree.NewObject(m("ts", estree.NewBool(r.TS)))
	// Top-level key order matches spec §6 exactly: type, fragment, options,
	// instance, module, css, metadata, js. Unlike other nodes, Root emits no
	// start/end members.
	return estree.NewObject(
		m("type", estree.NewString("Root")),
		m("fragment", r.Fragment.ToValue()),
		m("options", options),
		m("instance", instance),
		m("module", module),
		m("css", css),
		m("metadata", metadata),
		m("js", estree.NewArray()),
	)
}
