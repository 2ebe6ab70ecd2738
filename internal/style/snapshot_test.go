package style

import (
	"testing"

	"github.com/tesselate/compiler/internal/test_utils"
)

// TestStylesheetContentSnapshots pins the raw stylesheet text preserved on
// Sheet.Content.Styles (the verbatim substring, not the parsed node tree)
// against representative selector/at-rule/nesting inputs.
func TestStylesheetContentSnapshots(t *testing.T) {
	cases := []struct {
		name string
		css  string
	}{
		{"simple_rule", `.foo { color: red; }`},
		{"nested_and_global", `.card { &:hover { color: blue; } :global(.dark) & { color: white; } }`},
		{"media_query", `@media (min-width: 600px) { .foo { color: red; } }`},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			sheet := parseSheet(t, tc.css)
			test_utils.MakeSnapshot(&test_utils.SnapshotOptions{
				Testing:      t,
				TestCaseName: tc.name,
				Input:        tc.css,
				Output:       sheet.Content.Styles,
				Kind:         test_utils.CssOutput,
			})
		})
	}
}
