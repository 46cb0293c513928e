package leftpeg

import (
	"fmt"
	"sync/atomic"
)

var ruleIDSeq uint64

func nextRuleID() uint64 {
	return atomic.AddUint64(&ruleIDSeq, 1)
}

// Rule is a named, reference-shareable parser-expression node: the only
// place the expression graph may be cyclic, and the only node that
// implements the left-recursion protocol. A Rule is constructed before
// its body is known (Bind is called afterward) so that `r := NewRule[T]("r");
// r.Bind(... r ...)` can express direct self-reference without first
// building the body.
//
// Rule's own state is just an identity and a pointer to its (possibly
// late-bound) body; the actual per-parse recursion bookkeeping —
// Normal/Reject/Accept and the active parse position — lives on the
// Context, keyed by this identity, so that Rule values themselves stay
// immutable after Bind and safely shareable read-only across concurrent
// parses (spec.md §5, §9).
type Rule[T any] struct {
	id   uint64
	name string
	body Parser[T]
}

// NewRule allocates a rule with no body yet. Call Bind before the rule is
// ever used in a parse.
func NewRule[T any](name string) *Rule[T] {
	return &Rule[T]{id: nextRuleID(), name: name}
}

// NewBoundRule constructs and binds a rule in one call, for the common case where
// the body doesn't need to reference the rule being built directly (it
// can still reference it through a separate NewRule/Bind pair stored in a
// variable the body closes over).
func NewBoundRule[T any](name string, body Parser[T]) *Rule[T] {
	r := NewRule[T](name)
	r.Bind(body)
	return r
}

// Bind sets (or replaces) the rule's body. Late binding lets grammars
// declare mutually- or self-referential rules: construct every Rule first,
// then Bind each one's body, referencing whichever other rules it needs.
func (r *Rule[T]) Bind(body Parser[T]) {
	r.body = body
}

// Name returns the rule's declared name, used for tracing and in the
// unbound-rule error.
func (r *Rule[T]) Name() string { return r.name }

// apply is the entry-check dispatch described in spec.md §4.3:
//
//   - If the rule is not already active at the current cursor position,
//     save its state, mark it Normal at this position, run the body, then
//     restore the saved state and return the body's verdict.
//   - If the rule IS already active at this same position (a second entry
//     without progress — direct left recursion), behavior depends on the
//     rule's current state: Normal signals left-recursion-detected
//     upward; Reject rejects immediately (seed phase); Accept accepts
//     with zero advance (grow phase).
func (r *Rule[T]) apply(ctx *Context[T]) verdict {
	frame := ctx.frame(r.id)
	pos := ctx.Cursor()

	if frame.active && frame.position == pos {
		switch frame.state {
		case ruleNormal:
			ctx.trace(r.name, "left-recursion-detected", pos)
			return leftRecursionDetected(r.id)
		case ruleReject:
			return rejected()
		case ruleAccept:
			// Zero-advance success during growth: re-surface the
			// previous iteration's top-level match, if growSeed is
			// currently tracking one for this rule (it only does so
			// when each iteration produces exactly one top-level
			// match — see choice.go), so the grow iteration's own Tag
			// sees it as its first child instead of the
			// self-reference vanishing without a trace.
			if frame.seedMatch != nil {
				ctx.AppendMatch(*frame.seedMatch)
			}
			return accepted()
		}
	}

	if r.body == nil {
		panic(&GrammarError{Reason: fmt.Sprintf("rule %q applied before Bind", r.name)})
	}

	prevActive, prevPosition, prevState := frame.active, frame.position, frame.state
	frame.active = true
	frame.position = pos
	frame.state = ruleNormal

	ctx.trace(r.name, "enter", pos)
	v := r.body.apply(ctx)
	ctx.trace(r.name, "exit", ctx.Cursor())

	frame.active, frame.position, frame.state = prevActive, prevPosition, prevState
	return v
}

// *Rule[T] satisfies Parser[T] directly (its apply method has exactly the
// right shape), so a rule can be composed into another parser expression
// just by naming it: Seq(r, ...) or Choice(r, ...). This is the
// non-owning back-reference spec.md §9 and
// original_source/include/parserlib/Rule.hpp describe: the expression
// graph holds a pointer to the Rule, never a copy of its body, so
// `r.Bind(Choice(Seq(r, ...), ...))` closes the cycle without the body
// ever owning the rule that owns it.
