package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Scrin/pasta-frontend/internal/paste"
)

// countdownInterval is the period of the expiry countdown.
const countdownInterval = 10 * time.Second

// OptionsChangedMsg is emitted by the header when the user changes an
// editor option. SaveableAffecting is false for formatting toggles.
type OptionsChangedMsg struct {
	Options           paste.Options
	SaveableAffecting bool
}

// SaveRequestedMsg is emitted by the header when the user saves.
type SaveRequestedMsg struct {
	Overwrite bool
	Expiry    int64
}

type countdownTickMsg struct {
	tag int
}

// HeaderProps is the session state the header renders.
type HeaderProps struct {
	Options      paste.Options
	Saveable     bool
	Overwritable bool
	Disabled     bool
	// Expiry is the remaining lifetime to count down from, nil to hide it.
	Expiry *int64
}

// Header is the toolbar. Apart from the pending expiry choice and the
// countdown it holds no paste state; changes are reported as messages.
type Header struct {
	props   HeaderProps
	expiry  int64
	counter *int64
	tag     int
}

// NewHeader returns a header preselecting expiry for the next save.
func NewHeader(expiry int64) Header {
	if !paste.ValidExpiry(expiry) {
		expiry = paste.DefaultExpiry
	}
	return Header{expiry: expiry, tag: 1}
}

// Start returns the first countdown tick.
func (h Header) Start() tea.Cmd {
	return countdownTick(h.tag)
}

// Stop invalidates outstanding ticks and clears the countdown.
func (h *Header) Stop() {
	h.tag++
	h.counter = nil
}

func countdownTick(tag int) tea.Cmd {
	return tea.Tick(countdownInterval, func(time.Time) tea.Msg {
		return countdownTickMsg{tag: tag}
	})
}

// Sync updates the header from the session. The countdown restarts when the
// expiry value changes or appears.
func (h *Header) Sync(props HeaderProps) {
	if !sameExpiry(h.props.Expiry, props.Expiry) {
		h.counter = copyInt64(props.Expiry)
	}
	props.Expiry = copyInt64(props.Expiry)
	h.props = props
}

// Update handles countdown ticks.
func (h Header) Update(msg tea.Msg) (Header, tea.Cmd) {
	tick, ok := msg.(countdownTickMsg)
	if !ok || tick.tag != h.tag {
		return h, nil
	}
	if h.counter != nil {
		next := *h.counter - 10
		h.counter = &next
	}
	return h, countdownTick(h.tag)
}

// Countdown returns the remaining seconds shown, if any.
func (h Header) Countdown() (int64, bool) {
	if h.counter == nil {
		return 0, false
	}
	return *h.counter, true
}

// Expiry returns the duration used for the next save.
func (h Header) Expiry() int64 { return h.expiry }

// Disabled reports whether the controls are locked.
func (h Header) Disabled() bool { return h.props.Disabled }

// ToggleLineNumbers flips line numbers.
func (h Header) ToggleLineNumbers() tea.Cmd {
	if h.props.Disabled {
		return nil
	}
	opts := h.props.Options
	opts.LineNumbers = !opts.LineNumbers
	return emit(OptionsChangedMsg{Options: opts})
}

// ToggleWrap flips line wrapping.
func (h Header) ToggleWrap() tea.Cmd {
	if h.props.Disabled {
		return nil
	}
	opts := h.props.Options
	opts.LineWrapping = !opts.LineWrapping
	return emit(OptionsChangedMsg{Options: opts})
}

// SelectMode switches the syntax mode.
func (h Header) SelectMode(mime string) tea.Cmd {
	if h.props.Disabled || mime == "" {
		return nil
	}
	opts := h.props.Options
	opts.Mode = mime
	return emit(OptionsChangedMsg{Options: opts, SaveableAffecting: true})
}

// CycleExpiry selects the next expiry choice. Only the pending duration
// changes; the current options are resent to mark the paste dirty.
func (h *Header) CycleExpiry() tea.Cmd {
	if h.props.Disabled {
		return nil
	}
	h.expiry = paste.NextExpiry(h.expiry)
	return emit(OptionsChangedMsg{Options: h.props.Options, SaveableAffecting: true})
}

// CanSave reports whether a plain save is offered.
func (h Header) CanSave() bool {
	return !h.props.Disabled && h.props.Saveable
}

// CanOverwrite reports whether "save and overwrite" is offered.
func (h Header) CanOverwrite() bool {
	return h.props.Overwritable
}

// Save requests a save with the pending expiry.
func (h Header) Save(overwrite bool) tea.Cmd {
	if !h.CanSave() || (overwrite && !h.CanOverwrite()) {
		return nil
	}
	return emit(SaveRequestedMsg{Overwrite: overwrite, Expiry: h.expiry})
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

func sameExpiry(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func copyInt64(v *int64) *int64 {
	if v == nil {
		return nil
	}
	dup := *v
	return &dup
}
