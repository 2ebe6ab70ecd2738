package component

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tesselate/compiler/internal/diag"
)

func TestNormalizeCollapsesCRLFAndTrimsTrailingWhitespace(t *testing.T) {
	got := Normalize([]byte("<div>\r\n</div>\r\n   \t"))
	assert.Equal(t, "<div>\n</div>", string(got))
}

func TestRootAssemblesInstanceModuleCSSInAnyOrder(t *testing.T) {
	src := `<style>.a{color:red;}</style><script context="module">let m = 1;</script><div/><script>let i = 1;</script>`
	root := mustParse(t, src)

	assert.NotNil(t, root.Instance)
	assert.Equal(t, "default", root.Instance.Context)
	assert.NotNil(t, root.Module)
	assert.Equal(t, "module", root.Module.Context)
	assert.NotNil(t, root.CSS)
	assert.Len(t, root.Fragment.Nodes, 1)
}

func TestDuplicateScriptIsReported(t *testing.T) {
	_, diags, err := Parse([]byte(`<script>a</script><script>b</script>`), Options{Loose: true})
	assert.NoError(t, err)
	found := false
	for _, d := range diags {
		if d.Code == diag.CodeDuplicateScript {
			found = true
		}
	}
	assert.True(t, found)
}

func TestDuplicateModuleScriptIsReported(t *testing.T) {
	src := `<script context="module">a</script><script context="module">b</script>`
	_, diags, err := Parse([]byte(src), Options{Loose: true})
	assert.NoError(t, err)
	found := false
	for _, d := range diags {
		if d.Code == diag.CodeDuplicateScript {
			found = true
		}
	}
	assert.True(t, found)
}

func TestDuplicateStyleIsReported(t *testing.T) {
	_, diags, err := Parse([]byte(`<style>a{}</style><style>b{}</style>`), Options{Loose: true})
	assert.NoError(t, err)
	found := false
	for _, d := range diags {
		if d.Code == diag.CodeDuplicateStyle {
			found = true
		}
	}
	assert.True(t, found)
}

func TestMetadataTSFlagSetFromLangAttribute(t *testing.T) {
	root := mustParse(t, `<script lang="ts">let x: number = 1;</script>`)
	assert.True(t, root.TS)
}

func TestMetadataTSFlagFalseByDefault(t *testing.T) {
	root := mustParse(t, `<script>let x = 1;</script>`)
	assert.False(t, root.TS)
}

func TestRootToValueKeyOrder(t *testing.T) {
	root := mustParse(t, `<div/>`)
	v := root.ToValue()
	names := make([]string, len(v.Members))
	for i, m := range v.Members {
		names[i] = m.Name
	}
	assert.Equal(t, []string{"type", "fragment", "options", "instance", "module", "css", "metadata", "js"}, names)
	assert.Equal(t, "Root", v.TypeName())
}

func TestScriptContentIsParsedProgram(t *testing.T) {
	root := mustParse(t, `<script>let total = 1;</script>`)
	assert.Equal(t, "Program", root.Instance.Content.TypeName())
}

func TestStyleContentPreservesRawStylesSubstring(t *testing.T) {
	root := mustParse(t, `<style>.a { color: red; }</style>`)
	assert.True(t, strings.Contains(root.CSS.Sheet.Content.Styles, "color: red"))
}

func TestDefaultOptionsIsModern(t *testing.T) {
	opts := DefaultOptions()
	assert.True(t, opts.Modern)
	assert.False(t, opts.Loose)
}
