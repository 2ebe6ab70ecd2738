package component

// Options configures a single Parse invocation (spec §6).
type Options struct {
	// Modern selects the current (runes/snippets) dialect. When false, the
	// parser still accepts the same grammar — the spec's distilled scope
	// never diverged the two on syntax — but callers can use this flag to
	// gate lint-level warnings about legacy-only constructs upstream.
	Modern bool
	// Loose switches the diagnostic collector into recovery mode: every
	// diagnostic is recorded but parsing continues to produce a Root
	// instead of aborting on the first error.
	Loose bool
	// Filename is attached to every diagnostic for downstream reporting.
	Filename string
}

func DefaultOptions() Options {
	return Options{Modern: true}
}
