package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func parseSheet(t *testing.T, css string) *Sheet {
	t.Helper()
	p := NewParser()
	sheet, err := p.ParseStylesheet([]byte(css), 0, len(css))
	assert.NoError(t, err)
	return sheet
}

func TestParseSimpleRule(t *testing.T) {
	sheet := parseSheet(t, `.foo { color: red; }`)
	assert.Len(t, sheet.Children, 1)
	rule, ok := sheet.Children[0].(*Rule)
	assert.True(t, ok)
	assert.Equal(t, ".foo", rule.Prelude)
	assert.Len(t, rule.Block, 1)
	decl, ok := rule.Block[0].(*Declaration)
	assert.True(t, ok)
	assert.Equal(t, "color", decl.Property)
	assert.Equal(t, "red", decl.Value)
	assert.False(t, decl.Important)
}

func TestParseDeclarationWithImportant(t *testing.T) {
	sheet := parseSheet(t, `.foo { color: red !important; }`)
	rule := sheet.Children[0].(*Rule)
	decl := rule.Block[0].(*Declaration)
	assert.True(t, decl.Important)
	assert.Equal(t, "red", decl.Value)
}

func TestParseMultipleDeclarations(t *testing.T) {
	sheet := parseSheet(t, `.foo { color: red; background: blue; }`)
	rule := sheet.Children[0].(*Rule)
	assert.Len(t, rule.Block, 2)
}

func TestParseNestedRuleWithAmpersand(t *testing.T) {
	sheet := parseSheet(t, `.foo { & .bar { color: red; } }`)
	outer := sheet.Children[0].(*Rule)
	assert.Len(t, outer.Block, 1)
	nested, ok := outer.Block[0].(*Rule)
	assert.True(t, ok)
	assert.Contains(t, nested.Prelude, "&")
}

func TestParseSelectorCombinators(t *testing.T) {
	sheet := parseSheet(t, `.a > .b + .c ~ .d { color: red; }`)
	rule := sheet.Children[0].(*Rule)
	assert.Len(t, rule.Selector.Children, 1)
	complex := rule.Selector.Children[0]
	assert.Len(t, complex.Children, 4)
	assert.Equal(t, "", complex.Children[0].Combinator)
	assert.Equal(t, ">", complex.Children[1].Combinator)
	assert.Equal(t, "+", complex.Children[2].Combinator)
	assert.Equal(t, "~", complex.Children[3].Combinator)
}

func TestParseSelectorCommaList(t *testing.T) {
	sheet := parseSheet(t, `.a, .b { color: red; }`)
	rule := sheet.Children[0].(*Rule)
	assert.Len(t, rule.Selector.Children, 2)
}

func TestParsePseudoClassWithArgs(t *testing.T) {
	sheet := parseSheet(t, `:global(.foo) { color: red; }`)
	rule := sheet.Children[0].(*Rule)
	complex := rule.Selector.Children[0]
	simple := complex.Children[0].Selectors[0]
	assert.Equal(t, KindPseudoClass, simple.Kind)
	assert.Equal(t, "global", simple.Name)
	assert.Equal(t, ".foo", simple.Args)
}

func TestParseAttributeAndIdSelectors(t *testing.T) {
	sheet := parseSheet(t, `#main[data-x="1"] { color: red; }`)
	rule := sheet.Children[0].(*Rule)
	simples := rule.Selector.Children[0].Children[0].Selectors
	assert.Equal(t, KindId, simples[0].Kind)
	assert.Equal(t, "main", simples[0].Name)
	assert.Equal(t, KindAttribute, simples[1].Kind)
	assert.Contains(t, simples[1].Name, "data-x")
}

func TestParseMediaAtRuleWithBlock(t *testing.T) {
	sheet := parseSheet(t, `@media (min-width: 768px) { .foo { color: red; } }`)
	assert.Len(t, sheet.Children, 1)
	at, ok := sheet.Children[0].(*Atrule)
	assert.True(t, ok)
	assert.Equal(t, "@media", at.Name)
	assert.Contains(t, at.Prelude, "min-width")
	assert.Len(t, at.Block, 1)
}

func TestParseImportAtRuleNoBlock(t *testing.T) {
	sheet := parseSheet(t, `@import "foo.css";`)
	at := sheet.Children[0].(*Atrule)
	assert.Equal(t, "@import", at.Name)
	assert.Nil(t, at.Block)
	assert.Contains(t, at.Prelude, "foo.css")
}

func TestParseUnknownAtRulePreservesPreludeVerbatim(t *testing.T) {
	sheet := parseSheet(t, `@unknown-thing some raw prelude;`)
	at := sheet.Children[0].(*Atrule)
	assert.Equal(t, "@unknown-thing", at.Name)
	assert.Equal(t, "some raw prelude", at.Prelude)
}

func TestSheetContentPreservesRawStyles(t *testing.T) {
	css := `.foo { color: red; }`
	sheet := parseSheet(t, css)
	assert.Equal(t, css, sheet.Content.Styles)
	assert.Equal(t, 0, sheet.Content.Start)
	assert.Equal(t, len(css), sheet.Content.End)
}

func TestChildrenValueAndContentValueShapes(t *testing.T) {
	sheet := parseSheet(t, `.foo { color: red; }`)
	v := ChildrenValue(sheet.Children)
	assert.Len(t, v.Items, 1)
	assert.Equal(t, "Rule", v.Items[0].TypeName())

	cv := ContentValue(sheet.Content)
	styles, ok := cv.Get("styles")
	assert.True(t, ok)
	assert.Equal(t, sheet.Content.Styles, styles.Str)
}

func TestOffsetsAreAbsoluteWithNonZeroStart(t *testing.T) {
	full := []byte(`<style>.foo { color: red; }</style>`)
	p := NewParser()
	sheet, err := p.ParseStylesheet(full, len("<style>"), len(full)-len("</style>"))
	assert.NoError(t, err)
	rule := sheet.Children[0].(*Rule)
	assert.Equal(t, len("<style>"), rule.Start_)
	assert.Equal(t, ".foo", string(full[rule.Start_:rule.Start_+4]))
}
