package leftpeg

// choiceCombinator implements ordered choice `A | B | ...`: try each
// child left to right, committing to the first that succeeds. Choice is
// the sole control point for the left-recursion seed/grow protocol
// (spec.md §4.2/§4.3): when a child signals left recursion for some rule,
// Choice catches it, seeds the remaining alternatives as the
// non-recursive base case, then iteratively re-grows the recursive
// alternative until it stops consuming input.
type choiceCombinator[T any] struct {
	children []Parser[T]
}

// Choice builds the ordered choice `children[0] | children[1] | ...`.
func Choice[T any](children ...Parser[T]) Parser[T] {
	return choiceCombinator[T]{children: children}
}

func (c choiceCombinator[T]) apply(ctx *Context[T]) verdict {
	return c.tryFrom(ctx, 0)
}

// tryFrom attempts children[from:] in order, exactly mirroring parserlib's
// recursive parseTuple<Index>: each alternative gets its own snapshot, and
// a left-recursion signal raised by alternative i is handled right there
// instead of being allowed to unwind past this Choice.
func (c choiceCombinator[T]) tryFrom(ctx *Context[T], from int) verdict {
	if from >= len(c.children) {
		return rejected()
	}

	snap := ctx.Snapshot()
	v := c.children[from].apply(ctx)
	if v.ok() {
		return v
	}
	if v.isLeftRecursion() {
		return c.growSeed(ctx, from, v.ruleID)
	}

	ctx.Restore(snap)
	return c.tryFrom(ctx, from+1)
}

// growSeed implements the seed-and-grow algorithm for the rule identified
// by ruleID, whose left-recursive alternative lives at children[index]:
//
//  1. Set the rule to Reject and re-attempt the remaining alternatives to
//     produce a seed — a successful non-left-recursive parse starting at
//     the rule's entry position. If none succeed, the signal is
//     re-propagated upward (there may be an enclosing Choice for an outer
//     rule that can still produce a seed).
//  2. Set the rule to Accept and repeatedly re-invoke the original
//     left-recursive alternative from the new cursor, updating the rule's
//     recorded parse position before each iteration so the inner
//     self-reference returns accepted without consuming. Iteration stops
//     the moment the alternative rejects, fails to advance, or the cursor
//     reaches end-of-input.
//
// Nothing in spec.md §4.2 requires the recursive rule itself to carry a
// Tag — grammars are free to tag only the leaves (e.g. `num` below) and
// leave the glue rule (`expr`) bare. growSeed only has a single coherent
// "this rule's own value" to carry across iterations when each attempt
// produces exactly one top-level match (the seed's producing exactly one,
// tracked as frame.seedMatch, is what triggers that treatment; every grow
// iteration re-checks the same one-entry invariant before trusting it).
// When that invariant holds, the self-reference's zero-advance accept
// re-appends a copy of frame.seedMatch so the grow iteration's own Tag
// picks it up as its first child, and growSeed widens the resulting
// wrapper's span back out to the whole chain's original start — giving
// `expr = (expr '+' num == "expr") | (num == "expr")` on "1+2+3" the
// left-leaning tree expr[0,5) { expr[0,3) { expr[0,1) { num[0,1) },
// num[2,3) }, num[4,5) }. When the invariant doesn't hold — zero or more
// than one top-level match appears in some iteration, as happens for an
// untagged `expr` over tagged `num` leaves — growSeed stops re-surfacing
// anything and leaves every iteration's matches flat and untouched, so
// `expr = expr '+' num | num` on "1+2+3" instead yields three independent
// top-level tokens num[0,1), num[2,3), num[4,5).
func (c choiceCombinator[T]) growSeed(ctx *Context[T], index int, ruleID uint64) verdict {
	frame := ctx.frame(ruleID)
	basePos := ctx.Cursor()
	baseMatchLen := len(ctx.Matches())

	frame.state = ruleReject
	v := c.tryFrom(ctx, index+1)
	if !v.ok() {
		// No alternative could seed the recursion; let an outer Choice
		// (if any) have a chance, otherwise this rule simply rejects.
		return leftRecursionDetected(ruleID)
	}

	curMatchLen := len(ctx.Matches())
	if curMatchLen == baseMatchLen+1 {
		frame.seedMatch = ctx.lastMatchCopy()
	} else {
		frame.seedMatch = nil
	}

	frame.state = ruleAccept
	maxIter := ctx.maxGrowIterations()
	for iter := 0; maxIter <= 0 || iter < maxIter; iter++ {
		frame.position = ctx.Cursor()
		if ctx.AtEnd() {
			break
		}
		before := ctx.Cursor()
		prevMatch := frame.seedMatch
		// When a single wrapper match is being carried forward, drop
		// it from the list first — the self-reference's zero-advance
		// accept is about to re-supply an independent copy of it
		// (prevMatch), so this iteration's Tag sees it as a freshly
		// appended first child rather than a stale sibling. When
		// there's no wrapper to carry (prevMatch nil), leave the list
		// exactly as every prior iteration left it: those matches are
		// independent top-level results, not this rule's to manage.
		truncTo := curMatchLen
		if prevMatch != nil {
			truncTo = curMatchLen - 1
		}
		ctx.TruncateMatches(truncTo)
		gv := c.children[index].apply(ctx)
		if !gv.ok() || ctx.Cursor() == before {
			// Seq/Choice already rolled the cursor back to `before`
			// on their own failure path; put the match list back to
			// exactly what it held before this attempt. Restoring
			// the wrapper (if any) from prevMatch's value copy,
			// rather than trusting the backing array at truncTo,
			// since this attempt may have overwritten that slot
			// before failing.
			ctx.SetCursor(before)
			ctx.TruncateMatches(truncTo)
			if prevMatch != nil {
				ctx.AppendMatch(*prevMatch)
			}
			break
		}
		newLen := len(ctx.Matches())
		switch {
		case prevMatch != nil && newLen == curMatchLen:
			// Exactly one new top-level match replaced the old
			// wrapper: this iteration's own Tag (if any) recorded
			// its span starting from this iteration's entry cursor;
			// widen it back to the whole left-recursive chain's
			// true start and carry it forward as the next
			// iteration's wrapper.
			ctx.rebaseLastMatchBegin(basePos)
			frame.seedMatch = ctx.lastMatchCopy()
		case prevMatch != nil:
			// This iteration didn't produce a single replacement
			// wrapper (e.g. the recursive alternative isn't itself
			// tagged) — stop re-surfacing anything and let matches
			// accumulate flat from here on, rather than guessing
			// which of several new entries is "this rule's own".
			frame.seedMatch = nil
		}
		curMatchLen = newLen
	}

	return accepted()
}
