package editor

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/Scrin/pasta-frontend/internal/backend"
	"github.com/Scrin/pasta-frontend/internal/draft"
	"github.com/Scrin/pasta-frontend/internal/nav"
	"github.com/Scrin/pasta-frontend/internal/paste"
)

const defaultRequestTimeout = 15 * time.Second

// State names the phase a session is in.
type State int

const (
	StateLoading State = iota
	StateFresh
	StateViewing
	StateOwned
	StateForeign
	StateSaving
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateFresh:
		return "new paste"
	case StateViewing:
		return "fetching"
	case StateOwned:
		return "owned"
	case StateForeign:
		return "not owned"
	case StateSaving:
		return "saving"
	default:
		return "unknown"
	}
}

// Session is the editor state machine. It is not safe for concurrent use;
// drive it from a single update loop.
type Session struct {
	nav     nav.Navigator
	drafts  draft.Store
	service backend.PasteService
	log     zerolog.Logger
	timeout time.Duration

	text     string
	baseline string
	options  paste.Options

	saveable     bool
	editable     bool
	overwritable bool
	expiry       *int64

	seq         uint64
	bodyPending bool
	metaPending bool
	saving      bool
	closed      bool

	notice     string
	alert      bool
	loadErr    error
	saveErrors []string
}

// Option customizes a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Session) {
		s.log = log
	}
}

// WithTimeout bounds each remote call issued by the session.
func WithTimeout(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// New creates a session. It starts read-only with the stored draft until
// Load is called.
func New(n nav.Navigator, drafts draft.Store, service backend.PasteService, opts ...Option) *Session {
	s := &Session{
		nav:     n,
		drafts:  drafts,
		service: service,
		log:     zerolog.Nop(),
		timeout: defaultRequestTimeout,
		text:    drafts.Text(),
		options: draft.LoadOptions(drafts),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the current location. With a paste id it returns a command
// fetching body and metadata; at the root it restores the local draft and
// returns nil.
func (s *Session) Load() tea.Cmd {
	if s.closed {
		return nil
	}
	s.seq++
	s.setNotice("", false)
	s.loadErr = nil
	s.saveErrors = nil

	id := s.nav.CurrentID()
	if id == "" {
		s.bodyPending, s.metaPending = false, false
		s.text = s.drafts.Text()
		s.baseline = ""
		s.options = draft.LoadOptions(s.drafts)
		s.saveable = s.text != ""
		s.editable = true
		s.overwritable = false
		s.expiry = nil
		return nil
	}

	s.text = ""
	s.baseline = ""
	s.saveable = false
	s.editable = false
	s.overwritable = false
	s.expiry = nil
	s.bodyPending, s.metaPending = true, true

	seq := s.seq
	s.log.Debug().Str("id", id).Uint64("seq", seq).Msg("loading paste")
	return tea.Batch(s.fetchBody(id, seq), s.fetchMeta(id, seq))
}

func (s *Session) fetchBody(id string, seq uint64) tea.Cmd {
	service, timeout := s.service, s.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return LoadedMsg{ID: id, Seq: seq, Result: service.GetPaste(ctx, id)}
	}
}

func (s *Session) fetchMeta(id string, seq uint64) tea.Cmd {
	service, timeout := s.service, s.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return MetaMsg{ID: id, Seq: seq, Result: service.GetMeta(ctx, id)}
	}
}

// Update applies a message produced by Load or Save and reports whether the
// session changed. Other messages, and stale results, are ignored.
func (s *Session) Update(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case LoadedMsg:
		return s.applyBody(msg)
	case MetaMsg:
		return s.applyMeta(msg)
	case SavedMsg:
		return s.applySaved(msg)
	}
	return false
}

func (s *Session) current(id string, seq uint64) bool {
	if s.closed || seq != s.seq || id != s.nav.CurrentID() {
		s.log.Debug().Str("id", id).Uint64("seq", seq).Msg("dropping stale load result")
		return false
	}
	return true
}

func (s *Session) applyBody(msg LoadedMsg) bool {
	if !s.current(msg.ID, msg.Seq) {
		return false
	}
	s.bodyPending = false
	s.saveable = false
	switch msg.Result.Outcome {
	case backend.OutcomeOK:
		s.text = msg.Result.Value
		s.baseline = msg.Result.Value
	case backend.OutcomeNotFound:
		// The metadata result reports the missing paste.
		s.text = ""
		s.baseline = ""
	default:
		s.text = ""
		s.baseline = ""
		s.loadErr = msg.Result.Err
		s.setNotice(fmt.Sprintf("Could not load paste %s: %v", msg.ID, msg.Result.Err), true)
		s.log.Warn().Err(msg.Result.Err).Str("id", msg.ID).Msg("paste body fetch failed")
	}
	return true
}

func (s *Session) applyMeta(msg MetaMsg) bool {
	if !s.current(msg.ID, msg.Seq) {
		return false
	}
	s.metaPending = false
	s.editable = true
	switch msg.Result.Outcome {
	case backend.OutcomeOK:
		meta := msg.Result.Value
		if meta.Mime != "" {
			s.options.Mode = meta.Mime
		}
		s.overwritable = paste.Owns(s.drafts.Secret(), meta.SecretOrEmpty())
		s.expiry = copyExpiry(meta.Expiry)
	case backend.OutcomeNotFound:
		s.setNotice(fmt.Sprintf("Paste %s not found, either it never existed or it has expired", msg.ID), true)
		s.overwritable = false
		s.expiry = nil
		s.nav.Replace("")
		s.log.Info().Str("id", msg.ID).Msg("paste not found")
	default:
		s.setNotice(fmt.Sprintf("Could not load details of paste %s: %v", msg.ID, msg.Result.Err), true)
		s.overwritable = false
		s.expiry = nil
		s.log.Warn().Err(msg.Result.Err).Str("id", msg.ID).Msg("paste metadata fetch failed")
	}
	return true
}

// TextChange records an edit. The draft is persisted and the location
// follows the paste only while the session owns it.
func (s *Session) TextChange(text string) {
	if s.closed || !s.editable {
		return
	}
	s.text = text
	s.saveable = text != ""
	s.persist()
	s.syncLocation()
}

// OptionsChange records new editor options. A saveable-affecting change
// (mode, pending expiry) marks the session dirty; formatting toggles do not.
func (s *Session) OptionsChange(opts paste.Options, saveableAffecting bool) {
	if s.closed {
		return
	}
	s.options = opts.Normalize()
	if saveableAffecting {
		s.saveable = s.text != ""
		s.syncLocation()
	}
	s.persist()
}

// Save returns a command storing the text on the backend, or nil when
// there is nothing to save. With overwrite the current paste is replaced.
func (s *Session) Save(overwrite bool, expiry int64) tea.Cmd {
	if s.closed || !s.saveable {
		return nil
	}
	s.saveable = false
	s.editable = false
	s.saving = true
	s.saveErrors = nil

	req := backend.SaveRequest{
		Text:   s.text,
		Mime:   s.options.Mode,
		Expiry: expiry,
	}
	if overwrite {
		req.ID = s.nav.CurrentID()
	}
	s.log.Info().Str("id", req.ID).Str("mime", req.Mime).Int64("expiry", expiry).Msg("saving paste")

	service, timeout := s.service, s.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		meta, err := service.SavePaste(ctx, req)
		return SavedMsg{Request: req, Meta: meta, Err: err}
	}
}

func (s *Session) applySaved(msg SavedMsg) bool {
	if s.closed {
		return false
	}
	s.saving = false
	s.editable = true
	if msg.Err != nil {
		s.saveErrors = backend.SaveErrors(msg.Err)
		s.saveable = s.text != ""
		s.log.Error().Err(msg.Err).Strs("errors", s.saveErrors).Msg("save failed")
		return true
	}

	nav.PushOrReplace(s.nav, msg.Meta.ID)
	// Pending loads for the previous location are now stale.
	s.seq++
	s.bodyPending, s.metaPending = false, false

	s.baseline = msg.Request.Text
	s.overwritable = paste.Owns(s.drafts.Secret(), msg.Meta.Secret)
	expiry := msg.Meta.Expiry
	s.expiry = &expiry
	s.setNotice(fmt.Sprintf("Saved paste %s", msg.Meta.ID), false)
	s.log.Info().Str("id", msg.Meta.ID).Int64("expiry", expiry).Msg("paste saved")
	return true
}

// Close detaches the session; later results are ignored.
func (s *Session) Close() {
	s.closed = true
}

func (s *Session) persist() {
	if err := draft.SaveDraft(s.drafts, s.text, s.options); err != nil {
		s.log.Warn().Err(err).Msg("persist draft failed")
	}
}

func (s *Session) syncLocation() {
	id := ""
	if s.overwritable {
		id = s.nav.CurrentID()
	}
	nav.PushOrReplace(s.nav, id)
}

// Text returns the editor text.
func (s *Session) Text() string { return s.text }

// Baseline returns the text as last loaded or saved.
func (s *Session) Baseline() string { return s.baseline }

// Options returns the editor options.
func (s *Session) Options() paste.Options { return s.options }

// Saveable reports whether Save would issue a request.
func (s *Session) Saveable() bool { return s.saveable }

// Editable reports whether input is accepted.
func (s *Session) Editable() bool { return s.editable }

// Overwritable reports whether the session owns the current paste.
func (s *Session) Overwritable() bool { return s.overwritable }

// Saving reports whether a save is in flight.
func (s *Session) Saving() bool { return s.saving }

// Loading reports whether fetches for the current location are pending.
func (s *Session) Loading() bool { return s.bodyPending || s.metaPending }

// CurrentID returns the id at the current location.
func (s *Session) CurrentID() string { return s.nav.CurrentID() }

// Expiry returns the remaining lifetime of the current paste in seconds.
func (s *Session) Expiry() (int64, bool) {
	if s.expiry == nil {
		return 0, false
	}
	return *s.expiry, true
}

// HeaderExpiry is the countdown the header shows: none while there are
// unsaved changes.
func (s *Session) HeaderExpiry() (int64, bool) {
	if s.saveable {
		return 0, false
	}
	return s.Expiry()
}

// Notice returns the last user-facing message.
func (s *Session) Notice() string { return s.notice }

// Alert reports whether the notice describes a failure.
func (s *Session) Alert() bool { return s.alert }

// DismissNotice clears the notice.
func (s *Session) DismissNotice() { s.setNotice("", false) }

func (s *Session) setNotice(notice string, alert bool) {
	s.notice = notice
	s.alert = alert && notice != ""
}

// LoadError returns the body fetch failure of the current load, if any.
func (s *Session) LoadError() error { return s.loadErr }

// SaveErrors returns the messages of the last failed save.
func (s *Session) SaveErrors() []string { return s.saveErrors }

// State summarizes the session phase.
func (s *Session) State() State {
	switch {
	case s.saving:
		return StateSaving
	case s.metaPending:
		return StateViewing
	case !s.editable:
		return StateLoading
	case s.nav.CurrentID() == "":
		return StateFresh
	case s.overwritable:
		return StateOwned
	default:
		return StateForeign
	}
}

func copyExpiry(v *int64) *int64 {
	if v == nil {
		return nil
	}
	dup := *v
	return &dup
}
