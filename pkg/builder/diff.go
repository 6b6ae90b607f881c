package builder

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// diffContext is the number of unchanged lines kept around each change.
const diffContext = 2

var (
	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("40"))
	removedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	elidedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
)

type diffLine struct {
	op   diffmatchpatch.Operation
	text string
}

// Diff returns a line diff from before to after with "+ " and "- "
// markers. Long runs of unchanged lines are elided. It returns an empty
// string when the texts are equal.
func Diff(before, after string) string {
	if before == after {
		return ""
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var all []diffLine
	for _, d := range diffs {
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			all = append(all, diffLine{op: d.Type, text: strings.TrimSuffix(line, "\n")})
		}
	}

	keep := make([]bool, len(all))
	for i, l := range all {
		if l.op == diffmatchpatch.DiffEqual {
			continue
		}
		for j := max(0, i-diffContext); j <= min(len(all)-1, i+diffContext); j++ {
			keep[j] = true
		}
	}

	var sb strings.Builder
	elided := false
	for i, l := range all {
		if !keep[i] {
			if !elided {
				sb.WriteString(elidedStyle.Render("  ...") + "\n")
				elided = true
			}
			continue
		}
		elided = false

		switch l.op {
		case diffmatchpatch.DiffInsert:
			sb.WriteString(addedStyle.Render("+ "+l.text) + "\n")
		case diffmatchpatch.DiffDelete:
			sb.WriteString(removedStyle.Render("- "+l.text) + "\n")
		default:
			sb.WriteString("  " + l.text + "\n")
		}
	}

	return sb.String()
}
