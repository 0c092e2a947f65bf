package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Scrin/pasta-frontend/internal/paste"
)

func int64Ptr(v int64) *int64 { return &v }

func runCmd(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatalf("expected a command, got nil")
	}
	return cmd()
}

func TestHeader_CountdownResetsOnExpiryChange(t *testing.T) {
	h := NewHeader(paste.DefaultExpiry)
	if _, ok := h.Countdown(); ok {
		t.Fatalf("new header should not count down")
	}

	h.Sync(HeaderProps{Expiry: int64Ptr(600)})
	if got, ok := h.Countdown(); !ok || got != 600 {
		t.Fatalf("Countdown = %d, %v", got, ok)
	}

	h, _ = h.Update(countdownTickMsg{tag: h.tag})
	if got, _ := h.Countdown(); got != 590 {
		t.Fatalf("after tick = %d, want 590", got)
	}

	// The same value again keeps the local countdown.
	h.Sync(HeaderProps{Expiry: int64Ptr(600)})
	if got, _ := h.Countdown(); got != 590 {
		t.Fatalf("unchanged prop reset the countdown to %d", got)
	}

	h.Sync(HeaderProps{Expiry: int64Ptr(3600)})
	if got, _ := h.Countdown(); got != 3600 {
		t.Fatalf("new prop should reset, got %d", got)
	}

	h.Sync(HeaderProps{})
	if _, ok := h.Countdown(); ok {
		t.Fatalf("countdown should disappear with the prop")
	}
}

func TestHeader_TickWithoutCountdownKeepsTicking(t *testing.T) {
	h := NewHeader(paste.DefaultExpiry)
	h, cmd := h.Update(countdownTickMsg{tag: h.tag})
	if cmd == nil {
		t.Fatalf("tick should reschedule")
	}
	if _, ok := h.Countdown(); ok {
		t.Fatalf("tick created a countdown")
	}
}

func TestHeader_StopInvalidatesTicks(t *testing.T) {
	h := NewHeader(paste.DefaultExpiry)
	h.Sync(HeaderProps{Expiry: int64Ptr(100)})
	stale := countdownTickMsg{tag: h.tag}

	h.Stop()
	if _, ok := h.Countdown(); ok {
		t.Fatalf("Stop should clear the countdown")
	}
	h.Sync(HeaderProps{Expiry: int64Ptr(50)})
	h, cmd := h.Update(stale)
	if cmd != nil {
		t.Fatalf("stale tick rescheduled")
	}
	if got, _ := h.Countdown(); got != 50 {
		t.Fatalf("stale tick decremented the countdown to %d", got)
	}
}

func TestHeader_CountdownGoesNegative(t *testing.T) {
	h := NewHeader(paste.DefaultExpiry)
	h.Sync(HeaderProps{Expiry: int64Ptr(5)})
	h, _ = h.Update(countdownTickMsg{tag: h.tag})
	got, _ := h.Countdown()
	if got != -5 || paste.FormatExpiry(got) != "This paste has been deleted!" {
		t.Fatalf("countdown = %d (%q)", got, paste.FormatExpiry(got))
	}
}

func TestHeader_OptionToggles(t *testing.T) {
	opts := paste.DefaultOptions()
	h := NewHeader(paste.DefaultExpiry)
	h.Sync(HeaderProps{Options: opts})

	msg := runCmd(t, h.ToggleLineNumbers()).(OptionsChangedMsg)
	if msg.SaveableAffecting || msg.Options.LineNumbers == opts.LineNumbers {
		t.Fatalf("line numbers toggle = %#v", msg)
	}

	msg = runCmd(t, h.ToggleWrap()).(OptionsChangedMsg)
	if msg.SaveableAffecting || msg.Options.LineWrapping == opts.LineWrapping {
		t.Fatalf("wrap toggle = %#v", msg)
	}

	msg = runCmd(t, h.SelectMode("text/x-go")).(OptionsChangedMsg)
	if !msg.SaveableAffecting || msg.Options.Mode != "text/x-go" {
		t.Fatalf("mode change = %#v", msg)
	}
}

func TestHeader_CycleExpiry(t *testing.T) {
	opts := paste.Options{Mode: "text/x-go"}
	h := NewHeader(paste.DefaultExpiry)
	h.Sync(HeaderProps{Options: opts})

	msg := runCmd(t, h.CycleExpiry()).(OptionsChangedMsg)
	if !msg.SaveableAffecting || msg.Options != opts {
		t.Fatalf("expiry change should resend current options as dirty: %#v", msg)
	}
	if h.Expiry() != 31536000 {
		t.Fatalf("Expiry = %d, want 31536000", h.Expiry())
	}
	h.CycleExpiry()
	if h.Expiry() != 300 {
		t.Fatalf("Expiry should wrap to 300, got %d", h.Expiry())
	}
}

func TestHeader_DisabledBlocksControls(t *testing.T) {
	h := NewHeader(paste.DefaultExpiry)
	h.Sync(HeaderProps{Options: paste.DefaultOptions(), Saveable: true, Overwritable: true, Disabled: true})

	if h.ToggleLineNumbers() != nil || h.ToggleWrap() != nil || h.SelectMode("text/x-go") != nil {
		t.Fatalf("disabled header emitted option changes")
	}
	if h.CycleExpiry() != nil || h.Expiry() != paste.DefaultExpiry {
		t.Fatalf("disabled header changed expiry")
	}
	if h.Save(false) != nil || h.Save(true) != nil {
		t.Fatalf("disabled header emitted a save")
	}
}

func TestHeader_SaveGuards(t *testing.T) {
	tests := []struct {
		name         string
		props        HeaderProps
		overwrite    bool
		wantSave     bool
		canOverwrite bool
	}{
		{name: "saveable", props: HeaderProps{Saveable: true}, wantSave: true},
		{name: "not saveable", props: HeaderProps{}, wantSave: false},
		{name: "overwrite without rights", props: HeaderProps{Saveable: true}, overwrite: true, wantSave: false},
		{name: "overwrite with rights", props: HeaderProps{Saveable: true, Overwritable: true}, overwrite: true, wantSave: true, canOverwrite: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHeader(3600)
			h.Sync(tt.props)
			cmd := h.Save(tt.overwrite)
			if (cmd != nil) != tt.wantSave {
				t.Fatalf("Save(%v) cmd = %v, want save %v", tt.overwrite, cmd != nil, tt.wantSave)
			}
			if cmd != nil {
				msg := cmd().(SaveRequestedMsg)
				if msg.Overwrite != tt.overwrite || msg.Expiry != 3600 {
					t.Fatalf("SaveRequestedMsg = %#v", msg)
				}
			}
			if h.CanOverwrite() != tt.canOverwrite {
				t.Fatalf("CanOverwrite = %v", h.CanOverwrite())
			}
		})
	}
}

func TestNewHeader_InvalidExpiryFallsBack(t *testing.T) {
	if got := NewHeader(42).Expiry(); got != paste.DefaultExpiry {
		t.Fatalf("Expiry = %d", got)
	}
}

func TestHeaderView_WrapMarkedStoredOnly(t *testing.T) {
	h := NewHeader(paste.DefaultExpiry)
	h.Sync(HeaderProps{Options: paste.DefaultOptions()})

	out := h.View(GetTheme("Dracula"), 160, "new paste", "new paste")
	if !strings.Contains(out, "Line wrap (stored only)") {
		t.Fatalf("header view missing stored-only wrap label:\n%s", out)
	}
}
