package ui

import (
	"strings"
)

// inexactNotice explains why typing is refused for a paste the textarea
// cannot show exactly.
const inexactNotice = "Read-only: tabs, carriage returns or over 10000 lines cannot be edited here without changing them"

// renderStatus renders the bottom line: the most urgent message on the
// left, a help hint on the right.
func (m Model) renderStatus() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	var left string
	switch {
	case len(m.session.SaveErrors()) > 0:
		left = bg.Render("Save failed:", styles.DangerText) + bg.Spaces(1) +
			bg.Render(strings.Join(m.session.SaveErrors(), "; "), styles.DangerText)
	case m.session.Alert():
		left = bg.Render(m.session.Notice(), styles.WarningText)
	case m.inexact && !m.session.Loading():
		left = bg.Render(inexactNotice, styles.WarningText)
	case m.status != "":
		left = bg.Render(m.status, styles.InfoText)
	case m.session.Saving():
		left = bg.Render("Saving…", styles.MutedText)
	case m.session.Loading():
		left = bg.Render("Loading…", styles.MutedText)
	case m.session.Notice() != "":
		left = bg.Render(m.session.Notice(), styles.SuccessText)
	}

	right := bg.Render("F1", styles.AccentText) + bg.Spaces(1) + bg.Render("help", styles.MutedText)
	inner := m.width - 2
	if inner < 0 {
		inner = 0
	}
	return styles.Bar.Width(m.width).Render(bg.Spread(left, right, inner))
}
