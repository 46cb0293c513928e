package leftpeg

// Input is the sequence a Context walks. Any indexable, length-bearing
// sequence of comparable elements qualifies — the engine never assumes
// characters or bytes; grammars over token slices work the same way as
// grammars over runes.
type Input[T any] interface {
	Len() int
	At(pos int) T
}

// RuneInput adapts a string into an Input[rune], the common case for
// text grammars.
type RuneInput []rune

func NewRuneInput(s string) RuneInput { return RuneInput([]rune(s)) }

func (r RuneInput) Len() int        { return len(r) }
func (r RuneInput) At(pos int) rune { return r[pos] }

// SliceInput adapts any slice into an Input[T], the common case for
// token-stream grammars sitting on top of a separate lexer.
type SliceInput[T any] []T

func (s SliceInput[T]) Len() int     { return len(s) }
func (s SliceInput[T]) At(pos int) T { return s[pos] }

// snapshot captures the two pieces of Context state every combinator
// restores on failure: the cursor and the length of the accumulated match
// list. It is a cheap value copy, matching parserlib's parser_state
// (position + subnode count), never a deep copy of matches.
type snapshot struct {
	cursor  int
	matches int
}

// ruleFrame is the per-rule recursion bookkeeping a Context carries for
// every rule it has ever entered: the position the rule is currently
// active at (absent == rule not on the call stack) and its current
// left-recursion state.
type ruleFrame struct {
	active   bool
	position int
	state    ruleState

	// seedMatch holds a copy of the most recently completed top-level
	// match this rule produced during the current seed/grow cycle (nil
	// once the seed or a grow iteration did not yield exactly one new
	// top-level match). Choice's
	// growSeed keeps it current; Rule.apply re-surfaces it whenever the
	// self-reference returns accepted with zero advance, so a grow
	// iteration's own Tag sees the prior match as its first child
	// instead of the self-reference vanishing without a trace.
	seedMatch *Match
}

type ruleState uint8

const (
	ruleNormal ruleState = iota
	ruleReject
	ruleAccept
)

// Context is the mutable, per-parse state threaded by reference through
// every combinator: the input cursor, the accumulating match list, and
// per-rule left-recursion bookkeeping. A Context is scoped to exactly one
// parse invocation and must never be shared across concurrent parses
// (spec.md §5) — the parser-expression graph itself is immutable and may
// be shared, but its Context may not.
type Context[T any] struct {
	input   Input[T]
	cursor  int
	end     int
	matches []Match

	// ffp is the furthest failure position: the highest cursor value
	// ever reached, updated monotonically in Advance and never rolled
	// back by Restore. Grounded on the teacher's base_parser.go/parser.go
	// `ffp` field, which tracks the same thing for the same reason —
	// reporting where a failed parse actually got to, not where
	// backtracking left the cursor (spec.md §7).
	ffp int

	frames map[uint64]*ruleFrame

	tracer Tracer
	config *EngineConfig
}

// NewContext builds a parse context over input, starting at cursor 0.
func NewContext[T any](input Input[T]) *Context[T] {
	return newContextWith[T](input, NewEngineConfig(), nil)
}

// NewContextWithConfig builds a parse context governed by cfg (see
// config.go), optionally emitting trace events through tracer (nil
// disables tracing regardless of cfg).
func NewContextWithConfig[T any](input Input[T], cfg *EngineConfig, tracer Tracer) *Context[T] {
	return newContextWith[T](input, cfg, tracer)
}

func newContextWith[T any](input Input[T], cfg *EngineConfig, tracer Tracer) *Context[T] {
	if cfg == nil {
		cfg = NewEngineConfig()
	}
	if !cfg.GetBool("trace.enabled") {
		tracer = nil
	}
	return &Context[T]{
		input:  input,
		cursor: 0,
		end:    input.Len(),
		frames: make(map[uint64]*ruleFrame),
		tracer: tracer,
		config: cfg,
	}
}

// Cursor returns the current input position.
func (c *Context[T]) Cursor() int { return c.cursor }

// End returns the end-of-input sentinel position. It is a valid position
// (one past the last element) but is never dereferenced.
func (c *Context[T]) End() int { return c.end }

// AtEnd reports whether the cursor has reached the end-of-input sentinel.
func (c *Context[T]) AtEnd() bool { return c.cursor >= c.end }

// Peek returns the element under the cursor. Callers must check AtEnd
// first; Peek on an exhausted context is undefined for the zero value of T.
func (c *Context[T]) Peek() T { return c.input.At(c.cursor) }

// Advance moves the cursor forward by n elements (n >= 0), updating the
// furthest-failure-position high-water mark if this pushes the cursor
// past anything reached before.
func (c *Context[T]) Advance(n int) {
	c.cursor += n
	if c.cursor > c.ffp {
		c.ffp = c.cursor
	}
}

// FurthestFailurePosition returns the highest cursor position reached
// anywhere during the parse so far, regardless of how much of that
// progress was later rolled back by Restore. api.go reports this as
// Result.Cursor when the overall parse rejects, per spec.md §7.
func (c *Context[T]) FurthestFailurePosition() int { return c.ffp }

// SetCursor repositions the cursor directly. Used by the left-recursion
// grow loop to rewind to the start of a growth attempt that failed or
// did not advance.
func (c *Context[T]) SetCursor(pos int) { c.cursor = pos }

// Snapshot captures the restoration point every combinator takes before
// attempting a subparse.
func (c *Context[T]) Snapshot() snapshot {
	return snapshot{cursor: c.cursor, matches: len(c.matches)}
}

// Restore rewinds the cursor and truncates the match list back to a
// snapshot taken earlier in this parse. A snapshot whose match count
// exceeds the current list is a programming error and panics (the cursor
// is not checked), matching the teacher's
// convention of panicking on internal invariant violations (config.go's
// assignType/checkType) rather than silently producing garbage.
func (c *Context[T]) Restore(s snapshot) {
	if s.matches > len(c.matches) {
		panic("leftpeg: restore snapshot refers to matches beyond the current list")
	}
	c.cursor = s.cursor
	c.matches = c.matches[:s.matches]
}

// AppendMatch appends a completed match record to the accumulating list.
func (c *Context[T]) AppendMatch(m Match) { c.matches = append(c.matches, m) }

// TruncateMatches keeps the first n matches and discards the rest, used by
// Tag to collapse a subparse's flat matches into a single wrapping
// record before appending it.
func (c *Context[T]) TruncateMatches(n int) { c.matches = c.matches[:n] }

// rebaseLastMatchBegin rewrites the Begin of the most recently appended
// top-level match, if any. A left-recursion grow iteration's Tag records
// its span starting from the cursor where that iteration began rather
// than the rule's original entry position; growSeed calls this to widen
// the span back out to cover the whole accumulated left-recursive chain.
// growSeed only calls this after confirming the iteration produced
// exactly one new top-level match — the one case where "the last entry"
// is known to be that match's own wrapper rather than an unrelated
// nested tag.
func (c *Context[T]) rebaseLastMatchBegin(begin int) {
	if n := len(c.matches); n > 0 {
		c.matches[n-1].Begin = begin
	}
}

// lastMatchCopy returns a copy of the most recently appended top-level
// match, or nil if the match list is empty.
func (c *Context[T]) lastMatchCopy() *Match {
	n := len(c.matches)
	if n == 0 {
		return nil
	}
	m := c.matches[n-1]
	return &m
}

// Matches returns the full accumulated match list. Combinators read a
// suffix of this (since a snapshot) to build nested match records; api.go
// reads the whole thing as the top-level forest on success.
func (c *Context[T]) Matches() []Match { return c.matches }

// maxGrowIterations returns the configured bound on left-recursion growth
// iterations (0 = unbounded), per EngineConfig's rule.max_grow_iterations.
func (c *Context[T]) maxGrowIterations() int {
	if c.config == nil {
		return 0
	}
	n, err := c.config.TryGetInt("rule.max_grow_iterations")
	if err != nil {
		return 0
	}
	return n
}

// frame returns (creating if absent) the recursion bookkeeping for rule id.
func (c *Context[T]) frame(id uint64) *ruleFrame {
	f, ok := c.frames[id]
	if !ok {
		f = &ruleFrame{}
		c.frames[id] = f
	}
	return f
}
