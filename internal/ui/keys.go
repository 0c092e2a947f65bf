package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the editor.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Escape     key.Binding

	// Saving
	Save          key.Binding
	SaveOverwrite key.Binding
	CycleExpiry   key.Binding

	// Options
	ToggleLineNumbers key.Binding
	ToggleWrap        key.Binding
	PickMode          key.Binding

	// Navigation
	Recent  key.Binding
	Back    key.Binding
	Forward key.Binding
	New     key.Binding

	// Tools
	Diff    key.Binding
	CopyURL key.Binding

	// Pickers
	Confirm key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("f2"),
			key.WithHelp("f2", "Cycle theme"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Close overlay"),
		),

		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "Save"),
		),
		SaveOverwrite: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "Save and overwrite"),
		),
		CycleExpiry: key.NewBinding(
			key.WithKeys("alt+e"),
			key.WithHelp("alt+e", "Cycle expiry"),
		),

		ToggleLineNumbers: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "Show line numbers"),
		),
		ToggleWrap: key.NewBinding(
			key.WithKeys("alt+w"),
			key.WithHelp("alt+w", "Line wrap (stored only)"),
		),
		PickMode: key.NewBinding(
			key.WithKeys("alt+m"),
			key.WithHelp("alt+m", "Select mode"),
		),

		Recent: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "Recent pastes"),
		),
		Back: key.NewBinding(
			key.WithKeys("alt+left"),
			key.WithHelp("alt+←", "Back"),
		),
		Forward: key.NewBinding(
			key.WithKeys("alt+right"),
			key.WithHelp("alt+→", "Forward"),
		),
		New: key.NewBinding(
			key.WithKeys("alt+n"),
			key.WithHelp("alt+n", "New paste"),
		),

		Diff: key.NewBinding(
			key.WithKeys("alt+d"),
			key.WithHelp("alt+d", "Unsaved changes"),
		),
		CopyURL: key.NewBinding(
			key.WithKeys("alt+c"),
			key.WithHelp("alt+c", "Copy share link"),
		),

		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Select"),
		),
	}
}
