// Package printer implements the serializer (spec §4.8): a Root is walked
// into an internal/estree.Value tree and written out as deterministic
// JSON — fixed per-node-type key order (each node type's own ToValue
// decides that), tab indentation, trailing newline.
package printer

import (
	"io"

	"github.com/tesselate/compiler/internal/component"
	"github.com/tesselate/compiler/internal/estree"
)

// PrintJSON serializes root to w exactly as spec §4.8 requires: tab
// indentation, member order as each node type's ToValue emits it, and a
// single trailing newline so output is diff-stable across runs.
func PrintJSON(w io.Writer, root *component.Root) error {
	if err := estree.EncodeIndent(w, root.ToValue(), "\t"); err != nil {
		return err
	}
	_, err := w.Write([]byte("\n"))
	return err
}
