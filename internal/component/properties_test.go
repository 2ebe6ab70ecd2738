package component

import (
	"testing"

	"gotest.tools/v3/assert"
	"gotest.tools/v3/assert/cmp"

	"github.com/tesselate/compiler/internal/estree"
)

// propertyCorpus is the fixed set of inputs the span-coverage and
// round-trip-offset invariants (spec §8) are checked against, covering a
// plain element, every block construct, and a directive-bearing attribute
// list so nested spans and text runs both get exercised.
var propertyCorpus = []string{
	`<div class="a">{value}</div>`,
	`{#each items as item, i (item)}X{/each}`,
	`{#if a}A{:else if b}B{:else}C{/if}`,
	`{#await p}L{:then d}D{:catch e}E{/await}`,
	`<svelte:element this={tag}/>`,
	`<div><span>hi</span> and <b>there</b></div>`,
	`<button on:click|once={handler}>Go</button>`,
}

func spanOf(v estree.Value) (start, end int, ok bool) {
	s, hasStart := v.Get("start")
	e, hasEnd := v.Get("end")
	if !hasStart || !hasEnd || s.Kind != estree.KindNumber || e.Kind != estree.KindNumber {
		return 0, 0, false
	}
	return int(s.Number), int(e.Number), true
}

// verifySpanCoverage walks v, asserting spec §8's span-coverage invariant:
// every child's span is nested inside its parent's (N.start <= C.start and
// C.end <= N.end).
func verifySpanCoverage(t *testing.T, v estree.Value) {
	t.Helper()
	pStart, pEnd, hasSpan := spanOf(v)
	visitChildren(t, v, func(child estree.Value) {
		cStart, cEnd, childHasSpan := spanOf(child)
		if childHasSpan && hasSpan {
			assert.Assert(t, cStart >= pStart, "child start %d precedes parent start %d", cStart, pStart)
			assert.Assert(t, cEnd <= pEnd, "child end %d exceeds parent end %d", cEnd, pEnd)
		}
		verifySpanCoverage(t, child)
	})
}

// visitChildren calls fn for every member/array-item value nested directly
// under v (excluding the start/end fields themselves).
func visitChildren(t *testing.T, v estree.Value, fn func(estree.Value)) {
	t.Helper()
	switch v.Kind {
	case estree.KindObject:
		for _, mem := range v.Members {
			if mem.Name == "start" || mem.Name == "end" {
				continue
			}
			fn(mem.Value)
		}
	case estree.KindArray:
		for _, item := range v.Items {
			fn(item)
		}
	}
}

func TestSpanCoverageHoldsAcrossCorpus(t *testing.T) {
	for _, src := range propertyCorpus {
		src := src
		t.Run(src, func(t *testing.T) {
			root, _, err := Parse([]byte(src), DefaultOptions())
			assert.NilError(t, err)
			verifySpanCoverage(t, root.ToValue())
		})
	}
}

// collectTextNodes gathers every {start,end,data} Text node reachable from v.
func collectTextNodes(v estree.Value, out *[]estree.Value) {
	if v.Kind == estree.KindObject && v.TypeName() == "Text" {
		*out = append(*out, v)
	}
	switch v.Kind {
	case estree.KindObject:
		for _, mem := range v.Members {
			collectTextNodes(mem.Value, out)
		}
	case estree.KindArray:
		for _, item := range v.Items {
			collectTextNodes(item, out)
		}
	}
}

// TestRoundTripOffsetsMatchSourceSlice checks spec §8's round-trip-offset
// invariant: every Text node's [start,end) span, sliced from the original
// source, equals its own text contribution verbatim.
func TestRoundTripOffsetsMatchSourceSlice(t *testing.T) {
	for _, src := range propertyCorpus {
		src := src
		t.Run(src, func(t *testing.T) {
			source := []byte(src)
			root, _, err := Parse(source, DefaultOptions())
			assert.NilError(t, err)

			var texts []estree.Value
			collectTextNodes(root.ToValue(), &texts)

			for _, text := range texts {
				start, end, ok := spanOf(text)
				assert.Assert(t, ok, "Text node missing start/end")
				data, hasData := text.Get("data")
				assert.Assert(t, hasData)
				assert.Assert(t, cmp.Equal(string(source[start:end]), data.Str))
			}
		})
	}
}
