package estree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalizeStripsDeniedFieldsByDefault(t *testing.T) {
	v := NewObject(
		Member{Name: "type", Value: NewString("Identifier")},
		Member{Name: "name", Value: NewString("x")},
		Member{Name: "loc", Value: NewObject(Member{Name: "start", Value: NewNumber(0)})},
		Member{Name: "definite", Value: NewBool(true)},
		Member{Name: "trailingComments", Value: NewArray()},
	)
	out := Canonicalize(v, ContextTemplateExpression)
	_, hasLoc := out.Get("loc")
	_, hasDefinite := out.Get("definite")
	_, hasTrailing := out.Get("trailingComments")
	assert.False(t, hasLoc)
	assert.False(t, hasDefinite)
	assert.False(t, hasTrailing)
	name, ok := out.Get("name")
	assert.True(t, ok)
	assert.Equal(t, "x", name.Str)
}

func TestCanonicalizeDropsEmptyDecorators(t *testing.T) {
	v := NewObject(
		Member{Name: "type", Value: NewString("ClassDeclaration")},
		Member{Name: "decorators", Value: NewArray()},
	)
	out := Canonicalize(v, ContextTemplateExpression)
	_, ok := out.Get("decorators")
	assert.False(t, ok)
}

func TestCanonicalizeKeepsNonEmptyDecorators(t *testing.T) {
	v := NewObject(
		Member{Name: "type", Value: NewString("ClassDeclaration")},
		Member{Name: "decorators", Value: NewArray(NewString("@foo"))},
	)
	out := Canonicalize(v, ContextTemplateExpression)
	dec, ok := out.Get("decorators")
	assert.True(t, ok)
	assert.Len(t, dec.Items, 1)
}

func TestCanonicalizeAllowsLeadingCommentsOnScriptBody(t *testing.T) {
	v := NewObject(
		Member{Name: "type", Value: NewString("VariableDeclaration")},
		Member{Name: "leadingComments", Value: NewArray()},
		Member{Name: "loc", Value: NewObject()},
	)
	// loc stays denied everywhere: allow-list only ever re-admits specific
	// field names (leadingComments in script_body), never loc.
	out := Canonicalize(v, ContextScriptBody)
	_, hasLeading := out.Get("leadingComments")
	assert.True(t, hasLeading)
	_, hasLoc := out.Get("loc")
	assert.False(t, hasLoc)
}

func TestCanonicalizeRewritesCSSEnum(t *testing.T) {
	v := NewObject(
		Member{Name: "type", Value: NewString("StyleSheet")},
		Member{Name: "css", Value: NewString("Injected")},
	)
	out := Canonicalize(v, ContextTemplateExpression)
	css, ok := out.Get("css")
	assert.True(t, ok)
	assert.Equal(t, "injected", css.Str)
}

func TestCanonicalizeLowercasesNamespace(t *testing.T) {
	v := NewObject(
		Member{Name: "type", Value: NewString("Program")},
		Member{Name: "namespace", Value: NewString("HTML")},
	)
	out := Canonicalize(v, ContextTemplateExpression)
	ns, _ := out.Get("namespace")
	assert.Equal(t, "html", ns.Str)
}

func TestCanonicalizeRecursesIntoArraysAndNestedObjects(t *testing.T) {
	v := NewObject(
		Member{Name: "type", Value: NewString("Program")},
		Member{Name: "body", Value: NewArray(
			NewObject(
				Member{Name: "type", Value: NewString("ExpressionStatement")},
				Member{Name: "loc", Value: Null()},
			),
		)},
	)
	out := Canonicalize(v, ContextTemplateExpression)
	body, _ := out.Get("body")
	assert.Len(t, body.Items, 1)
	_, hasLoc := body.Items[0].Get("loc")
	assert.False(t, hasLoc)
}

func TestCanonicalizeLeavesNonObjectNonArrayUntouched(t *testing.T) {
	assert.Equal(t, NewString("x"), Canonicalize(NewString("x"), ContextTemplateExpression))
	assert.Equal(t, NewNumber(5), Canonicalize(NewNumber(5), ContextTemplateExpression))
}
