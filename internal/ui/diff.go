package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	dmp "github.com/sergi/go-diff/diffmatchpatch"
)

type diffOp int

const (
	diffEqual diffOp = iota
	diffAdd
	diffDel
)

type diffLine struct {
	op   diffOp
	text string
}

// diffLines compares before and after line by line.
func diffLines(before, after string) []diffLine {
	d := dmp.New()
	a, b, lines := d.DiffLinesToChars(before, after)
	diffs := d.DiffCharsToLines(d.DiffMain(a, b, false), lines)

	var out []diffLine
	for _, df := range diffs {
		op := diffEqual
		switch df.Type {
		case dmp.DiffInsert:
			op = diffAdd
		case dmp.DiffDelete:
			op = diffDel
		}
		text := strings.TrimSuffix(df.Text, "\n")
		for _, line := range strings.Split(text, "\n") {
			out = append(out, diffLine{op: op, text: line})
		}
	}
	return out
}

// diffStats counts added and removed lines.
func diffStats(lines []diffLine) (added, removed int) {
	for _, l := range lines {
		switch l.op {
		case diffAdd:
			added++
		case diffDel:
			removed++
		}
	}
	return added, removed
}

// renderDiff renders a unified line diff of the unsaved changes.
func renderDiff(before, after string, styles Styles) string {
	if before == after {
		return styles.MutedText.Render("No unsaved changes")
	}
	lines := diffLines(before, after)
	var b strings.Builder
	for _, l := range lines {
		switch l.op {
		case diffAdd:
			b.WriteString(styles.SuccessText.Render("+ " + l.text))
		case diffDel:
			b.WriteString(styles.DangerText.Render("- " + l.text))
		default:
			b.WriteString(styles.FaintText.Render("  " + l.text))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// diffView is the scrollable unsaved-changes overlay.
type diffView struct {
	viewport viewport.Model
	title    string
}

func newDiffView(before, after string, width, height int, theme Theme) diffView {
	vp := viewport.New(width, height)
	vp.SetContent(renderDiff(before, after, theme.Styles()))
	added, removed := diffStats(diffLines(before, after))
	return diffView{
		viewport: vp,
		title:    fmt.Sprintf("Unsaved changes  +%d -%d", added, removed),
	}
}
