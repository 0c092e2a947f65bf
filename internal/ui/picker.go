package ui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Scrin/pasta-frontend/internal/paste"
)

type pickerKind int

const (
	pickMode pickerKind = iota
	pickRecent
)

type pickItem struct {
	title string
	desc  string
	value string
}

func (i pickItem) Title() string       { return i.title }
func (i pickItem) Description() string { return i.desc }
func (i pickItem) FilterValue() string { return i.title + " " + i.value }

// pickedMsg reports the value chosen in a picker.
type pickedMsg struct {
	kind  pickerKind
	value string
}

// picker is a filterable list overlay.
type picker struct {
	kind pickerKind
	list list.Model
}

func newPicker(kind pickerKind, title string, items []list.Item, selected, width, height int, theme Theme) picker {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(lipgloss.Color(theme.Accent)).
		BorderForeground(lipgloss.Color(theme.Accent))
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(lipgloss.Color(theme.Muted)).
		BorderForeground(lipgloss.Color(theme.Accent))

	l := list.New(items, delegate, width, height)
	l.Title = title
	l.Styles.Title = l.Styles.Title.
		Background(lipgloss.Color(theme.Accent)).
		Foreground(lipgloss.Color(theme.Background))
	l.SetShowStatusBar(true)
	l.DisableQuitKeybindings()
	if selected >= 0 && selected < len(items) {
		l.Select(selected)
	}
	return picker{kind: kind, list: l}
}

func newModePicker(current string, width, height int, theme Theme) picker {
	modes := paste.Modes()
	items := make([]list.Item, 0, len(modes))
	selected := 0
	for i, m := range modes {
		if m.Mime == current {
			selected = i
		}
		items = append(items, pickItem{title: m.Label(), desc: m.Mime, value: m.Mime})
	}
	return newPicker(pickMode, "Select mode", items, selected, width, height, theme)
}

func newRecentPicker(ids []string, shareBase string, width, height int, theme Theme) picker {
	items := make([]list.Item, 0, len(ids))
	for _, id := range ids {
		items = append(items, pickItem{title: id, desc: paste.ShareURL(shareBase, id), value: id})
	}
	return newPicker(pickRecent, "Recent pastes", items, 0, width, height, theme)
}

// filtering reports whether the filter input has focus.
func (p picker) filtering() bool {
	return p.list.FilterState() == list.Filtering
}

// Update forwards msg to the list. Enter outside the filter input picks the
// selected item.
func (p picker) Update(msg tea.Msg, keys keyMap) (picker, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && !p.filtering() && key.Matches(k, keys.Confirm) {
		item, ok := p.list.SelectedItem().(pickItem)
		if !ok {
			return p, nil
		}
		return p, emit(pickedMsg{kind: p.kind, value: item.value})
	}
	var cmd tea.Cmd
	p.list, cmd = p.list.Update(msg)
	return p, cmd
}

func (p *picker) SetSize(width, height int) {
	p.list.SetSize(width, height)
}

func (p picker) View() string {
	return p.list.View()
}
