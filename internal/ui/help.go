package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

type helpSection struct {
	title string
	keys  []key.Binding
}

func (m Model) helpSections() []helpSection {
	return []helpSection{
		{title: "Paste", keys: []key.Binding{m.keys.Save, m.keys.SaveOverwrite, m.keys.CycleExpiry, m.keys.CopyURL, m.keys.Diff}},
		{title: "Editor", keys: []key.Binding{m.keys.ToggleLineNumbers, m.keys.ToggleWrap, m.keys.PickMode}},
		{title: "Navigation", keys: []key.Binding{m.keys.New, m.keys.Recent, m.keys.Back, m.keys.Forward}},
		{title: "General", keys: []key.Binding{m.keys.CycleTheme, m.keys.Help, m.keys.Escape, m.keys.Quit}},
	}
}

// renderHelp renders the help overlay.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()
	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Warning)).
		Width(12)

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	sections := m.helpSections()
	for i, section := range sections {
		b.WriteString(styles.AccentText.Bold(true).Render(section.title))
		b.WriteString("\n")
		for _, binding := range section.keys {
			h := binding.Help()
			b.WriteString(keyStyle.Render(h.Key))
			b.WriteString(styles.Text.Render(h.Desc))
			b.WriteString("\n")
		}
		if i < len(sections)-1 {
			b.WriteString("\n")
		}
	}

	return m.place(styles.Overlay.Width(44).Render(b.String()))
}

// place centers an overlay on the screen.
func (m Model) place(content string) string {
	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		content,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}
