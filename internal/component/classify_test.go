package component

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyElementSpecialNames(t *testing.T) {
	cases := map[string]string{
		"svelte:element":   "SvelteElement",
		"svelte:component": "SvelteComponent",
		"svelte:self":      "SvelteSelf",
		"svelte:fragment":  "SvelteFragment",
		"svelte:head":      "SvelteHead",
		"svelte:window":    "SvelteWindow",
		"svelte:document":  "SvelteDocument",
		"svelte:body":      "SvelteBody",
		"svelte:options":   "SvelteOptions",
		"slot":             "SlotElement",
	}
	for name, want := range cases {
		assert.Equal(t, want, classifyElement(name, ancestorNone), name)
	}
}

func TestClassifyTitleOnlyInsideSvelteHead(t *testing.T) {
	assert.Equal(t, "TitleElement", classifyElement("title", ancestorSvelteHead))
	assert.Equal(t, "RegularElement", classifyElement("title", ancestorNone))
}

func TestClassifyComponentByCapitalOrDot(t *testing.T) {
	assert.Equal(t, "Component", classifyElement("Button", ancestorNone))
	assert.Equal(t, "Component", classifyElement("ns.Widget", ancestorNone))
	assert.Equal(t, "RegularElement", classifyElement("div", ancestorNone))
	assert.Equal(t, "RegularElement", classifyElement("my-element", ancestorNone))
}

func TestIsVoidElement(t *testing.T) {
	for _, name := range []string{"area", "base", "br", "col", "embed", "hr", "img", "input", "link", "meta", "param", "source", "track", "wbr"} {
		assert.True(t, isVoidElement(name), name)
	}
	for _, name := range []string{"div", "span", "p"} {
		assert.False(t, isVoidElement(name), name)
	}
}
