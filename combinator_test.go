package leftpeg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeqSucceedsWhenAllChildrenSucceed(t *testing.T) {
	g := Seq[rune](Literal('a'), Literal('b'))
	r := Parse[rune](g, NewRuneInput("ab"))
	require.True(t, r.Accepted)
	assert.Equal(t, 2, r.Cursor)
}

func TestSeqRollsBackOnFailure(t *testing.T) {
	g := Seq[rune](Literal('a'), Literal('b'))
	r := Parse[rune](g, NewRuneInput("ac"))
	require.False(t, r.Accepted)
	assert.Equal(t, 0, r.Cursor, "a failed sequence must leave the cursor where it started")
}

func TestChoiceCommitsToFirstSuccess(t *testing.T) {
	// S3: kw = "if" | "in"
	kw := Choice[rune](LiteralSequence([]rune("if")), LiteralSequence([]rune("in")))

	r := Parse[rune](kw, NewRuneInput("in"))
	require.True(t, r.Accepted)
	assert.Equal(t, 2, r.Cursor)

	r = Parse[rune](kw, NewRuneInput("if"))
	require.True(t, r.Accepted)
	assert.Equal(t, 2, r.Cursor)
}

func TestChoiceTriesNextAlternativeOnFailure(t *testing.T) {
	g := Choice[rune](Literal('a'), Literal('b'))
	r := Parse[rune](g, NewRuneInput("b"))
	require.True(t, r.Accepted)
	assert.Equal(t, 1, r.Cursor)
}

func TestZeroOrMoreAlwaysSucceeds(t *testing.T) {
	digit := RangeOf('0', '9')
	g := ZeroOrMore[rune](digit)

	r := Parse[rune](g, NewRuneInput("abc"))
	require.True(t, r.Accepted)
	assert.Equal(t, 0, r.Cursor)

	r = Parse[rune](g, NewRuneInput("123abc"))
	require.True(t, r.Accepted)
	assert.Equal(t, 3, r.Cursor)
}

func TestZeroOrMoreTerminatesOnEmptyBody(t *testing.T) {
	// S6: *empty() on "abc" must terminate and succeed at cursor 0.
	g := ZeroOrMore[rune](Empty[rune]())
	r := Parse[rune](g, NewRuneInput("abc"))
	require.True(t, r.Accepted)
	assert.Equal(t, 0, r.Cursor)
}

func TestOneOrMoreRejectsOnFirstFailure(t *testing.T) {
	digit := RangeOf('0', '9')
	g := OneOrMore[rune](digit)

	r := Parse[rune](g, NewRuneInput("abc"))
	require.False(t, r.Accepted)
}

func TestOneOrMoreMatchesAllConsecutive(t *testing.T) {
	// S1: digit = '0'..'9'; num = +digit; "42" -> accepted, cursor 2.
	digit := RangeOf('0', '9')
	num := OneOrMore[rune](digit)

	r := Parse[rune](num, NewRuneInput("42"))
	require.True(t, r.Accepted)
	assert.Equal(t, 2, r.Cursor)
}

func TestOptionalNeverFails(t *testing.T) {
	g := Optional[rune](Literal('a'))

	r := Parse[rune](g, NewRuneInput("a"))
	require.True(t, r.Accepted)
	assert.Equal(t, 1, r.Cursor)

	r = Parse[rune](g, NewRuneInput("b"))
	require.True(t, r.Accepted)
	assert.Equal(t, 0, r.Cursor)
}

func TestAndIsPure(t *testing.T) {
	// S5-adjacent: lookahead never consumes or records matches.
	g := Seq[rune](And[rune](Literal('a')), Literal('a'))
	r := Parse[rune](g, NewRuneInput("a"))
	require.True(t, r.Accepted)
	assert.Equal(t, 1, r.Cursor)

	r = Parse[rune](And[rune](Literal('a')), NewRuneInput("b"))
	require.False(t, r.Accepted)
	assert.Equal(t, 0, r.Cursor)
}

func TestNotIsPureAndInverts(t *testing.T) {
	// S5: end = !any_char (any_char = range(0,255)); "" accepted, "x" rejected.
	anyChar := RangeOf[rune](0, 255)
	end := Not[rune](anyChar)

	require.True(t, Parse[rune](end, NewRuneInput("")).Accepted)
	require.False(t, Parse[rune](end, NewRuneInput("x")).Accepted)
}

func TestTagWrapsSubparseIntoOneMatch(t *testing.T) {
	digit := RangeOf('0', '9')
	num := Tag[rune](OneOrMore[rune](digit), "num")

	r := Parse[rune](num, NewRuneInput("42"))
	require.True(t, r.Accepted)
	require.Len(t, r.Matches, 1)
	assert.Equal(t, "num", r.Matches[0].Label)
	assert.Equal(t, 0, r.Matches[0].Begin)
	assert.Equal(t, 2, r.Matches[0].End)
}

func TestTagRecordsSiblingMatchesInOrder(t *testing.T) {
	digit := RangeOf('0', '9')
	letter := Choice[rune](RangeOf('a', 'z'), RangeOf('A', 'Z'))

	num := Tag[rune](OneOrMore[rune](digit), "num")
	ident := Tag[rune](Seq[rune](letter, ZeroOrMore[rune](Choice[rune](letter, digit))), "ident")

	// S2-ish: ws = *(' '|'\t'); ident = letter >> *(letter|digit)
	ws := ZeroOrMore[rune](SetOf(' ', '\t'))
	prog := Seq[rune](ws, ident, ws, num)

	r := Parse[rune](prog, NewRuneInput("  abc1 99"))
	require.True(t, r.Accepted)
	require.Len(t, r.Matches, 2)
	assert.Equal(t, "ident", r.Matches[0].Label)
	assert.Equal(t, 2, r.Matches[0].Begin)
	assert.Equal(t, 6, r.Matches[0].End)
	assert.Equal(t, "num", r.Matches[1].Label)
	assert.Equal(t, 7, r.Matches[1].Begin)
	assert.Equal(t, 9, r.Matches[1].End)
}

func TestSeqFailureDiscardsEarlierTagMatches(t *testing.T) {
	digit := RangeOf('0', '9')
	num := Tag[rune](OneOrMore[rune](digit), "num")
	g := Seq[rune](num, Literal('x'))

	ctx := NewContext[rune](NewRuneInput("42y"))
	v := g.apply(ctx)
	require.False(t, v.ok())
	assert.Empty(t, ctx.Matches())
}
