package leftpeg

// Result is what the top-level Parse entry point returns: a boolean
// success verdict, the cursor position reached (useful to detect partial
// consumption on success, or to locate the furthest point reached on
// failure), and the ordered forest of top-level match records on success.
type Result struct {
	Accepted bool
	Cursor   int
	Matches  []Match
}

// Parse runs grammar (typically the root Rule of a grammar) against
// input from position 0 and returns the outcome. Parse and
// ParseWithConfig are the engine's public entry points: no wire format,
// no persisted state (spec.md §6). A left-recursion signal that somehow escapes the outermost rule —
// which should never happen for a well-formed direct-left-recursive
// grammar, since Choice inside the recursive rule itself is always the
// catching point — collapses to an ordinary rejection rather than
// panicking, per spec.md §4.5.
func Parse[T any](grammar Parser[T], input Input[T]) Result {
	return ParseWithConfig(grammar, input, NewEngineConfig(), nil)
}

// ParseWithConfig is Parse with an explicit EngineConfig and Tracer,
// for hosts that want rule-dispatch tracing or a bounded left-recursion
// grow loop (see config.go).
func ParseWithConfig[T any](grammar Parser[T], input Input[T], cfg *EngineConfig, tracer Tracer) Result {
	ctx := NewContextWithConfig[T](input, cfg, tracer)
	v := grammar.apply(ctx)
	if !v.ok() {
		// Every combinator restores the context to its entry snapshot on
		// failure, so ctx.Cursor() here is always back at the start —
		// FurthestFailurePosition reports where the parse actually got
		// to before backtracking, per spec.md §7.
		return Result{Accepted: false, Cursor: ctx.FurthestFailurePosition()}
	}
	return Result{Accepted: true, Cursor: ctx.Cursor(), Matches: ctx.Matches()}
}
