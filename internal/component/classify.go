package component

import (
	"strings"

	"golang.org/x/net/html/atom"
)

// ancestorKind tracks just enough of the open-element stack for
// context-sensitive classification (TitleElement only classifies inside
// svelte:head) without needing the full parser state.
type ancestorKind int

const (
	ancestorNone ancestorKind = iota
	ancestorSvelteHead
)

// classifyElement implements spec §4.5's classification table.
func classifyElement(name string, inside ancestorKind) string {
	switch {
	case name == "svelte:element":
		return "SvelteElement"
	case name == "svelte:component":
		return "SvelteComponent"
	case name == "svelte:self":
		return "SvelteSelf"
	case name == "svelte:fragment":
		return "SvelteFragment"
	case name == "svelte:head":
		return "SvelteHead"
	case name == "svelte:window":
		return "SvelteWindow"
	case name == "svelte:document":
		return "SvelteDocument"
	case name == "svelte:body":
		return "SvelteBody"
	case name == "svelte:options":
		return "SvelteOptions"
	case name == "slot":
		return "SlotElement"
	case name == "title" && inside == ancestorSvelteHead:
		return "TitleElement"
	case isCapitalizedOrDotted(name):
		return "Component"
	default:
		return "RegularElement"
	}
}

func isCapitalizedOrDotted(name string) bool {
	if name == "" {
		return false
	}
	if strings.ContainsRune(name, '.') {
		return true
	}
	first := name[0]
	return first >= 'A' && first <= 'Z'
}

// isVoidElement reports whether name is one of the HTML void elements
// listed in spec §4.5 ("area, base, br, col, embed, hr, img, input, link,
// meta, param, source, track, wbr"), classified via the atom table exactly
// as the teacher's tokenizer does for its own void-element checks.
func isVoidElement(name string) bool {
	switch atom.Lookup([]byte(strings.ToLower(name))) {
	case atom.Area, atom.Base, atom.Br, atom.Col, atom.Embed, atom.Hr,
		atom.Img, atom.Input, atom.Link, atom.Meta, atom.Param,
		atom.Source, atom.Track, atom.Wbr:
		return true
	default:
		return false
	}
}
