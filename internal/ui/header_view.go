package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Scrin/pasta-frontend/internal/paste"
)

// View renders the toolbar as two lines: title and countdown, then the
// controls with their keys.
func (h Header) View(theme Theme, width int, location, state string) string {
	styles := theme.Styles().WithBackground(theme.Surface)
	bg := NewBgStyle(theme.Surface)

	left := bg.Join([]string{
		bg.Render("pasta", styles.Logo),
		bg.Render(location, styles.Text),
		bg.Render(state, styles.MutedText),
	}, "  ")
	right := ""
	if remaining, ok := h.Countdown(); ok {
		style := styles.InfoText
		if remaining < 0 {
			style = styles.DangerText
		}
		right = bg.Render(paste.FormatExpiry(remaining), style)
	}
	inner := width - 2
	if inner < 0 {
		inner = 0
	}
	title := styles.Bar.Width(width).Render(bg.Spread(left, right, inner))

	controls := h.renderControls(styles, bg)
	bar := styles.Bar.Width(width).Render(truncate(controls, inner))
	return lipgloss.JoinVertical(lipgloss.Left, title, bar)
}

func (h Header) renderControls(styles Styles, bg BgStyle) string {
	enabled := func(ok bool) (keyStyle, labelStyle lipgloss.Style) {
		if !ok {
			return styles.FaintText, styles.FaintText
		}
		return styles.AccentText, styles.Text
	}
	control := func(keyName, label string, ok bool) string {
		ks, ls := enabled(ok)
		return bg.Render(keyName, ks) + bg.Spaces(1) + bg.Render(label, ls)
	}
	checkbox := func(on bool) string {
		if on {
			return "[x]"
		}
		return "[ ]"
	}

	opts := h.props.Options
	active := !h.props.Disabled
	mode := opts.Mode
	if m, ok := paste.LookupMode(opts.Mode); ok {
		mode = m.Label()
	}

	parts := []string{
		control("^L", checkbox(opts.LineNumbers)+" Show line numbers", active),
		control("M-w", checkbox(opts.LineWrapping)+" Line wrap (stored only)", active),
		control("M-m", mode, active),
		control("M-e", paste.ExpiryLabel(h.expiry), active),
		control("^S", "Save", h.CanSave()),
	}
	if h.CanOverwrite() {
		parts = append(parts, control("^O", "Save and overwrite", h.CanSave()))
	}
	return bg.Join(parts, "  ")
}
