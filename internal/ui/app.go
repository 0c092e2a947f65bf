package ui

import (
	"context"
	"errors"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/Scrin/pasta-frontend/internal/editor"
	"github.com/Scrin/pasta-frontend/internal/nav"
	"github.com/Scrin/pasta-frontend/internal/paste"
	"github.com/Scrin/pasta-frontend/internal/prefs"
)

// overlay is the panel drawn over the editor, if any.
type overlay int

const (
	overlayNone overlay = iota
	overlayHelp
	overlayPicker
	overlayDiff
)

// Options configures the UI.
type Options struct {
	Session   *editor.Session
	History   *nav.History
	ShareBase string
	ThemeName string
	Expiry    int64
	PrefsPath string
	Logger    zerolog.Logger
	// Clipboard copies text; defaults to the system clipboard.
	Clipboard func(string) error
}

// Model is the root application state for Bubble Tea.
type Model struct {
	session   *editor.Session
	history   *nav.History
	shareBase string
	prefsPath string
	copy      func(string) error
	log       zerolog.Logger

	header   Header
	textarea textarea.Model
	keys     keyMap
	theme    Theme

	width  int
	height int
	ready  bool

	overlay overlay
	picker  picker
	diff    diffView

	status  string
	initCmd tea.Cmd

	// inexact is set when the textarea cannot hold the session text
	// verbatim (tabs, carriage returns, too many lines). Typing is then
	// refused so edits never replace the text with the widget's copy.
	inexact bool
	shown   string
}

// New creates the root model and starts loading the current location.
func New(opts Options) Model {
	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Dracula"
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	copyFn := opts.Clipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}

	ta := textarea.New()
	ta.Prompt = ""
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.Placeholder = "Paste or type here…"
	ta.SetWidth(80)
	ta.SetHeight(20)

	m := Model{
		session:   opts.Session,
		history:   opts.History,
		shareBase: opts.ShareBase,
		prefsPath: prefsPath,
		copy:      copyFn,
		log:       opts.Logger,
		header:    NewHeader(opts.Expiry),
		textarea:  ta,
		keys:      DefaultKeyMap(),
		theme:     GetTheme(themeName),
		width:     80,
		height:    24,
	}
	m.initCmd = m.session.Load()
	m.sync()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.initCmd, m.header.Start(), textarea.Blink)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()
		return m, nil

	case countdownTickMsg:
		var cmd tea.Cmd
		m.header, cmd = m.header.Update(msg)
		return m, cmd

	case editor.LoadedMsg, editor.SavedMsg:
		if m.session.Update(msg) {
			m.sync()
		}
		return m, nil

	case editor.MetaMsg:
		if m.session.Update(msg) {
			if msg.Result.NotFound() {
				m.history.Forget(msg.ID)
			}
			m.sync()
		}
		return m, nil

	case OptionsChangedMsg:
		m.session.OptionsChange(msg.Options, msg.SaveableAffecting)
		m.sync()
		return m, nil

	case SaveRequestedMsg:
		cmd := m.session.Save(msg.Overwrite, msg.Expiry)
		m.sync()
		return m, cmd

	case pickedMsg:
		m.overlay = overlayNone
		return m.handlePicked(msg)
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	switch m.overlay {
	case overlayHelp:
		return m.renderHelp()
	case overlayPicker:
		return m.place(m.theme.Styles().Overlay.Render(m.picker.View()))
	case overlayDiff:
		return m.renderDiffOverlay()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.header.View(m.theme, m.width, m.locationLabel(), m.session.State().String()),
		m.textarea.View(),
		m.renderStatus(),
	)
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	if key.Matches(msg, m.keys.Quit) {
		return m.quit()
	}

	switch m.overlay {
	case overlayHelp:
		// Any key closes help
		m.overlay = overlayNone
		return m, nil
	case overlayPicker:
		if key.Matches(msg, m.keys.Escape) && !m.picker.filtering() {
			m.overlay = overlayNone
			return m, nil
		}
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg, m.keys)
		return m, cmd
	case overlayDiff:
		if key.Matches(msg, m.keys.Escape, m.keys.Diff) {
			m.overlay = overlayNone
			return m, nil
		}
		var cmd tea.Cmd
		m.diff.viewport, cmd = m.diff.viewport.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.overlay = overlayHelp
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		m.session.DismissNotice()
		return m, nil

	case key.Matches(msg, m.keys.Save):
		return m, m.header.Save(false)

	case key.Matches(msg, m.keys.SaveOverwrite):
		return m, m.header.Save(true)

	case key.Matches(msg, m.keys.ToggleLineNumbers):
		return m, m.header.ToggleLineNumbers()

	case key.Matches(msg, m.keys.ToggleWrap):
		return m, m.header.ToggleWrap()

	case key.Matches(msg, m.keys.CycleExpiry):
		cmd := m.header.CycleExpiry()
		if cmd != nil {
			m.savePrefs()
		}
		return m, cmd

	case key.Matches(msg, m.keys.PickMode):
		if m.header.Disabled() {
			return m, nil
		}
		w, h := m.overlaySize()
		m.picker = newModePicker(m.session.Options().Mode, w, h, m.theme)
		m.overlay = overlayPicker
		return m, nil

	case key.Matches(msg, m.keys.Recent):
		recent := m.history.Recent()
		if len(recent) == 0 {
			m.status = "No recently visited pastes"
			return m, nil
		}
		w, h := m.overlaySize()
		m.picker = newRecentPicker(recent, m.shareBase, w, h, m.theme)
		m.overlay = overlayPicker
		return m, nil

	case key.Matches(msg, m.keys.Diff):
		w, h := m.overlaySize()
		m.diff = newDiffView(m.session.Baseline(), m.session.Text(), w, h-2, m.theme)
		m.overlay = overlayDiff
		return m, nil

	case key.Matches(msg, m.keys.CopyURL):
		m.copyShareURL()
		return m, nil

	case key.Matches(msg, m.keys.Back):
		if m.session.Saving() || !m.history.Back() {
			return m, nil
		}
		return m, m.reload()

	case key.Matches(msg, m.keys.Forward):
		if m.session.Saving() || !m.history.Forward() {
			return m, nil
		}
		return m, m.reload()

	case key.Matches(msg, m.keys.New):
		if m.session.Saving() {
			return m, nil
		}
		nav.PushOrReplace(m.history, "")
		cmd := m.session.Load()
		m.session.TextChange("")
		m.sync()
		return m, cmd
	}

	if !m.session.Editable() || m.inexact {
		return m, nil
	}
	before := m.textarea.Value()
	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	if after := m.textarea.Value(); after != before {
		m.session.TextChange(after)
		m.sync()
	}
	return m, cmd
}

func (m Model) handlePicked(msg pickedMsg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case pickMode:
		return m, m.header.SelectMode(msg.value)
	case pickRecent:
		if msg.value == m.history.CurrentID() || m.session.Saving() {
			return m, nil
		}
		m.history.Push(msg.value)
		return m, m.reload()
	}
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.header.Stop()
	m.session.Close()
	return m, tea.Quit
}

// reload loads the current location into the session.
func (m *Model) reload() tea.Cmd {
	cmd := m.session.Load()
	m.sync()
	return cmd
}

// sync copies session state into the header and the textarea.
func (m *Model) sync() {
	s := m.session
	if text := s.Text(); text != m.shown {
		if m.textarea.Value() != text {
			m.textarea.SetValue(text)
		}
		m.shown = text
		m.inexact = m.textarea.Value() != text
	}
	opts := s.Options()
	m.textarea.ShowLineNumbers = opts.LineNumbers
	if s.Editable() && !m.inexact {
		m.textarea.Focus()
	} else {
		m.textarea.Blur()
	}

	props := HeaderProps{
		Options:      opts,
		Saveable:     s.Saveable(),
		Overwritable: s.Overwritable(),
		Disabled:     !s.Editable(),
	}
	if exp, ok := s.HeaderExpiry(); ok {
		props.Expiry = &exp
	}
	m.header.Sync(props)
}

func (m *Model) layout() {
	m.textarea.SetWidth(m.width)
	height := m.height - 3
	if height < 1 {
		height = 1
	}
	m.textarea.SetHeight(height)

	w, h := m.overlaySize()
	switch m.overlay {
	case overlayPicker:
		m.picker.SetSize(w, h)
	case overlayDiff:
		m.diff.viewport.Width = w
		m.diff.viewport.Height = h - 2
	}
}

func (m Model) overlaySize() (int, int) {
	w := m.width - 10
	h := m.height - 6
	if w < 20 {
		w = 20
	}
	if h < 5 {
		h = 5
	}
	return w, h
}

func (m *Model) copyShareURL() {
	id := m.history.CurrentID()
	if id == "" {
		m.status = "Save the paste to get a share link"
		return
	}
	link := m.shareURL(id)
	if err := m.copy(link); err != nil {
		m.log.Warn().Err(err).Msg("copy to clipboard failed")
		m.status = "Clipboard unavailable: " + link
		return
	}
	m.status = "Copied " + link
}

func (m Model) shareURL(id string) string {
	return paste.ShareURL(m.shareBase, id)
}

func (m Model) savePrefs() {
	p := prefs.Prefs{Theme: m.theme.Name, Expiry: m.header.Expiry()}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.log.Warn().Err(err).Msg("save prefs failed")
	}
}

func (m Model) locationLabel() string {
	if id := m.history.CurrentID(); id != "" {
		return m.shareURL(id)
	}
	return "new paste"
}

func (m Model) renderDiffOverlay() string {
	styles := m.theme.Styles()
	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.AccentText.Bold(true).Render(m.diff.title),
		"",
		m.diff.viewport.View(),
	)
	return m.place(styles.Overlay.Render(content))
}

// Run starts the Bubble Tea program. Cancelling ctx stops it.
func Run(ctx context.Context, opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
