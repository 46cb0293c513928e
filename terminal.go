package leftpeg

import "golang.org/x/exp/constraints"

// Terminal parsers consult the element under the cursor or a fixed literal
// sequence. Literal, RangeOf, SetOf and a non-empty LiteralSequence succeed
// only when the cursor is not at end-of-input and the element(s) satisfy
// their predicate; EndOfInput and Empty are described on their own
// constructors. On success a terminal advances the cursor
// past what it matched, on failure it leaves the cursor untouched and
// returns rejected. No terminal ever panics or blocks.

// Literal matches a single input element equal to v.
func Literal[T comparable](v T) Parser[T] {
	return parserFunc[T](func(ctx *Context[T]) verdict {
		if ctx.AtEnd() || ctx.Peek() != v {
			return rejected()
		}
		ctx.Advance(1)
		return accepted()
	})
}

// RangeOf matches a single input element e such that lo <= e <= hi
// (inclusive bounds). Requires T to be ordered, so grammars over runes,
// bytes, ints, or strings can all use it directly.
func RangeOf[T constraints.Ordered](lo, hi T) Parser[T] {
	return parserFunc[T](func(ctx *Context[T]) verdict {
		if ctx.AtEnd() {
			return rejected()
		}
		e := ctx.Peek()
		if e < lo || e > hi {
			return rejected()
		}
		ctx.Advance(1)
		return accepted()
	})
}

// SetOf matches a single input element that is a member of members.
func SetOf[T comparable](members ...T) Parser[T] {
	set := make(map[T]struct{}, len(members))
	for _, m := range members {
		set[m] = struct{}{}
	}
	return parserFunc[T](func(ctx *Context[T]) verdict {
		if ctx.AtEnd() {
			return rejected()
		}
		if _, ok := set[ctx.Peek()]; !ok {
			return rejected()
		}
		ctx.Advance(1)
		return accepted()
	})
}

// LiteralSequence matches the next len(seq) elements against seq in order,
// advancing by len(seq) on success. An empty seq always succeeds without
// advancing.
func LiteralSequence[T comparable](seq []T) Parser[T] {
	lit := append([]T(nil), seq...)
	return parserFunc[T](func(ctx *Context[T]) verdict {
		for i, want := range lit {
			pos := ctx.Cursor() + i
			if pos >= ctx.End() || ctx.input.At(pos) != want {
				return rejected()
			}
		}
		ctx.Advance(len(lit))
		return accepted()
	})
}

// EndOfInput succeeds only when the cursor has reached end-of-input.
func EndOfInput[T any]() Parser[T] {
	return parserFunc[T](func(ctx *Context[T]) verdict {
		if ctx.AtEnd() {
			return accepted()
		}
		return rejected()
	})
}

// Empty always succeeds and never advances the cursor. Useful as a base
// case and, looped, as the canonical "does the loop guard actually
// terminate" test (spec.md scenario S6).
func Empty[T any]() Parser[T] {
	return parserFunc[T](func(ctx *Context[T]) verdict {
		return accepted()
	})
}
