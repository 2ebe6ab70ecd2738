package component

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchDirectiveParsesKindNameAndModifiers(t *testing.T) {
	kind, name, mods, ok := matchDirective("on:click|once|preventDefault")
	assert.True(t, ok)
	assert.Equal(t, "on", kind)
	assert.Equal(t, "click", name)
	assert.Equal(t, []string{"once", "preventDefault"}, mods)
}

func TestMatchDirectiveNoModifiers(t *testing.T) {
	kind, name, mods, ok := matchDirective("bind:value")
	assert.True(t, ok)
	assert.Equal(t, "bind", kind)
	assert.Equal(t, "value", name)
	assert.Empty(t, mods)
}

func TestMatchDirectiveRejectsPlainAttribute(t *testing.T) {
	_, _, _, ok := matchDirective("class")
	assert.False(t, ok)
}

func TestDirectiveKindAndFlags(t *testing.T) {
	kind, intro, outro := directiveKindAndFlags("transition")
	assert.Equal(t, DirectiveTransition, kind)
	assert.True(t, intro)
	assert.True(t, outro)

	kind, intro, outro = directiveKindAndFlags("in")
	assert.Equal(t, DirectiveTransition, kind)
	assert.True(t, intro)
	assert.False(t, outro)

	kind, intro, outro = directiveKindAndFlags("out")
	assert.Equal(t, DirectiveTransition, kind)
	assert.False(t, intro)
	assert.True(t, outro)

	kind, _, _ = directiveKindAndFlags("on")
	assert.Equal(t, DirectiveOn, kind)
}

func TestAttrKeyDistinguishesAttributeAndDirective(t *testing.T) {
	key, ok := attrKey(&Attribute{Name: "class"})
	assert.True(t, ok)
	assert.Equal(t, "class", key)

	key, ok = attrKey(&Directive{Kind: DirectiveOn, Name: "click"})
	assert.True(t, ok)
	assert.Equal(t, "on:click", key)

	_, ok = attrKey(&SpreadAttribute{})
	assert.False(t, ok)
}
