package printer

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tesselate/compiler/internal/component"
)

func TestPrintJSONIsValidAndTabIndented(t *testing.T) {
	root, _, err := component.Parse([]byte(`<div class="a">{value}</div>`), component.DefaultOptions())
	assert.NoError(t, err)

	var buf bytes.Buffer
	assert.NoError(t, PrintJSON(&buf, root))

	out := buf.String()
	assert.True(t, strings.HasSuffix(out, "\n"))
	assert.True(t, strings.Contains(out, "\n\t\""), "expected tab-indented nesting")

	var generic map[string]interface{}
	assert.NoError(t, json.Unmarshal(buf.Bytes(), &generic))
	assert.Equal(t, "Root", generic["type"])
}

func TestPrintJSONTopLevelKeyOrder(t *testing.T) {
	root, _, err := component.Parse([]byte(`<div/>`), component.DefaultOptions())
	assert.NoError(t, err)

	var buf bytes.Buffer
	assert.NoError(t, PrintJSON(&buf, root))

	dec := json.NewDecoder(&buf)
	tok, err := dec.Token()
	assert.NoError(t, err)
	assert.Equal(t, json.Delim('{'), tok)

	var keys []string
	for dec.More() {
		keyTok, err := dec.Token()
		assert.NoError(t, err)
		keys = append(keys, keyTok.(string))
		var discard json.RawMessage
		assert.NoError(t, dec.Decode(&discard))
	}
	assert.Equal(t, []string{"type", "fragment", "options", "instance", "module", "css", "metadata", "js"}, keys)
}
