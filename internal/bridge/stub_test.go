package bridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStubParseExpressionIdentifier(t *testing.T) {
	src := []byte("{ value }")
	v, end, err := Stub{}.ParseExpression(src, 2)
	assert.NoError(t, err)
	assert.Equal(t, "Identifier", v.TypeName())
	name, _ := v.Get("name")
	assert.Equal(t, "value", name.Str)
	assert.Equal(t, 8, end)
}

func TestStubParseExpressionSkipsLeadingComment(t *testing.T) {
	src := []byte("{ /* TODO */ value }")
	v, _, err := Stub{}.ParseExpression(src, 2)
	assert.NoError(t, err)
	assert.Equal(t, "Identifier", v.TypeName())
	name, _ := v.Get("name")
	assert.Equal(t, "value", name.Str)
}

func TestStubParseExpressionRawForComplexSyntax(t *testing.T) {
	src := []byte("{ a.b.c }")
	v, _, err := Stub{}.ParseExpression(src, 2)
	assert.NoError(t, err)
	assert.Equal(t, "RawExpression", v.TypeName())
	raw, _ := v.Get("raw")
	assert.Equal(t, "a.b.c", raw.Str)
}

func TestStubParsePatternArray(t *testing.T) {
	src := []byte("[a, b]")
	v, end, err := Stub{}.ParsePattern(src, 0)
	assert.NoError(t, err)
	assert.Equal(t, "ArrayPattern", v.TypeName())
	elems, _ := v.Get("elements")
	assert.Len(t, elems.Items, 2)
	assert.Equal(t, "Identifier", elems.Items[0].TypeName())
	assert.Equal(t, len(src), end)
}

func TestStubParsePatternObject(t *testing.T) {
	src := []byte("{a, b}")
	v, _, err := Stub{}.ParsePattern(src, 0)
	assert.NoError(t, err)
	assert.Equal(t, "ObjectPattern", v.TypeName())
	props, _ := v.Get("properties")
	assert.Len(t, props.Items, 2)
}

func TestStubParseVariableDeclarationWithInit(t *testing.T) {
	src := []byte("const total = items }")
	v, _, err := Stub{}.ParseVariableDeclaration(src, 0)
	assert.NoError(t, err)
	assert.Equal(t, "VariableDeclaration", v.TypeName())
	kind, _ := v.Get("kind")
	assert.Equal(t, "const", kind.Str)
	decls, _ := v.Get("declarations")
	assert.Len(t, decls.Items, 1)
	id, _ := decls.Items[0].Get("id")
	idName, _ := id.Get("name")
	assert.Equal(t, "total", idName.Str)
	init, _ := decls.Items[0].Get("init")
	assert.Equal(t, "Identifier", init.TypeName())
}

func TestStubParseStatementListSplitsOnComma(t *testing.T) {
	src := []byte("a, b, c }")
	vs, _, err := Stub{}.ParseStatementList(src, 0)
	assert.NoError(t, err)
	assert.Len(t, vs, 3)
	for i, name := range []string{"a", "b", "c"} {
		n, _ := vs[i].Get("name")
		assert.Equal(t, name, n.Str)
	}
}

func TestStubParseModuleReturnsEmptyProgram(t *testing.T) {
	src := []byte("let x = 1;")
	v, end, err := Stub{}.ParseModule(src, 0)
	assert.NoError(t, err)
	assert.Equal(t, "Program", v.TypeName())
	assert.Equal(t, len(src), end)
}
