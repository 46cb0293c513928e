package leftpeg

import (
	"fmt"
	"strings"
)

// Match is the record produced by the match-tagging combinator (Tag) on a
// successful subparse: a label, the half-open input span it covers, and
// the ordered child matches nested under it (those produced by Tag
// combinators that succeeded during its subparse). Matches form a forest
// layered under whichever outer Tag eventually succeeds; spans always
// satisfy Begin <= End, both within input bounds.
type Match struct {
	Label    string
	Begin    int
	End      int
	Children []Match
}

// String renders a single-line description of the match, ignoring
// children — useful in %v-style debugging. Use WriteTree for a rendered
// forest with children.
func (m Match) String() string {
	return fmt.Sprintf("%s [%d,%d)", m.Label, m.Begin, m.End)
}

// tagCombinator is the `A == label` combinator from spec.md §4.2: it
// snapshots the start position and match-list length, invokes A, and on
// success wraps the suffix of matches A produced into one new Match
// record with the given label, replacing that suffix in the context's
// match list with the single wrapping record.
type tagCombinator[T any] struct {
	body  Parser[T]
	label string
}

// Tag attaches label to body: on success, the matches body produced are
// collapsed into a single Match record spanning body's subparse, with
// those matches as its Children; the label and span are recorded, and
// everything body matched beneath it becomes this record's children
// instead of remaining flat in the enclosing match list.
func Tag[T any](body Parser[T], label string) Parser[T] {
	return tagCombinator[T]{body: body, label: label}
}

func (t tagCombinator[T]) apply(ctx *Context[T]) verdict {
	start := ctx.Cursor()
	matchLen := len(ctx.Matches())

	v := t.body.apply(ctx)
	if !v.ok() {
		return v
	}

	children := append([]Match(nil), ctx.Matches()[matchLen:]...)
	m := Match{Label: t.label, Begin: start, End: ctx.Cursor(), Children: children}
	ctx.TruncateMatches(matchLen)
	ctx.AppendMatch(m)
	return accepted()
}

// matchTreePrinter renders a match forest as an indented, box-drawing
// tree, grounded on the teacher's tree_printer.go treePrinter[T]: the same
// indent/unindent/pwritel bookkeeping, retargeted from AST value nodes to
// Match records so tests can assert against readable golden strings the
// same way the teacher's tests compare rendered parse trees.
type matchTreePrinter struct {
	pad    []string
	output strings.Builder
}

func newMatchTreePrinter() *matchTreePrinter {
	return &matchTreePrinter{}
}

func (p *matchTreePrinter) indent(s string) { p.pad = append(p.pad, s) }
func (p *matchTreePrinter) unindent()       { p.pad = p.pad[:len(p.pad)-1] }

func (p *matchTreePrinter) padding() {
	for _, s := range p.pad {
		p.output.WriteString(s)
	}
}

func (p *matchTreePrinter) writel(s string) {
	p.output.WriteString(s)
	p.output.WriteByte('\n')
}

func (p *matchTreePrinter) pwritel(s string) {
	p.padding()
	p.writel(s)
}

// WriteTree renders matches as a forest, one root per top-level match,
// using the same ├──/└──/│ glyphs the teacher's golden tests compare
// against.
func WriteTree(matches []Match) string {
	p := newMatchTreePrinter()
	for i, m := range matches {
		p.writeMatch(m, i == len(matches)-1)
	}
	return p.output.String()
}

func (p *matchTreePrinter) writeMatch(m Match, last bool) {
	branch := "├── "
	cont := "│   "
	if last {
		branch = "└── "
		cont = "    "
	}
	p.pwritel(branch + m.String())
	p.indent(cont)
	for i, c := range m.Children {
		p.writeMatch(c, i == len(m.Children)-1)
	}
	p.unindent()
}
