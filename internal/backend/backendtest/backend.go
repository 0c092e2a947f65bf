// Package backendtest provides an in-memory implementation of the pasta HTTP
// API. It backs the client and editor tests and can be served locally to
// exercise the editor without a real backend.
package backendtest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/Scrin/pasta-frontend/internal/paste"
)

// DefaultExpiry is applied when a save omits the expiry segment.
const DefaultExpiry int64 = 2592000

// Paste is a stored paste as seen by the fake backend.
type Paste struct {
	ID        string
	Text      string
	Mime      string
	Secret    string
	ExpiresAt time.Time
}

type failure struct {
	status int
	body   string
}

// Backend is a mutex-guarded paste store exposed over HTTP.
type Backend struct {
	mu       sync.Mutex
	pastes   map[string]Paste
	now      func() time.Time
	failures []failure
	requests map[string]int
	router   *mux.Router
}

// New returns an empty backend using the wall clock.
func New() *Backend {
	b := &Backend{
		pastes:   make(map[string]Paste),
		now:      time.Now,
		requests: make(map[string]int),
	}
	b.router = b.routes()
	return b
}

// NewServer starts b on a loopback httptest server. Callers close it.
func NewServer() (*Backend, *httptest.Server) {
	b := New()
	return b, httptest.NewServer(b)
}

// SetClock replaces the backend clock.
func (b *Backend) SetClock(now func() time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.now = now
}

// Put stores p directly, bypassing the API.
func (b *Backend) Put(p Paste) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pastes[p.ID] = p
}

// Get returns the stored paste with id, expired or not.
func (b *Backend) Get(id string) (Paste, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	p, ok := b.pastes[id]
	return p, ok
}

// FailNext makes the next request answer with status and body regardless of
// route. Calls queue up.
func (b *Backend) FailNext(status int, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures = append(b.failures, failure{status: status, body: body})
}

// Requests returns how many requests reached route ("raw", "meta", "new").
func (b *Backend) Requests(route string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.requests[route]
}

// ServeHTTP implements http.Handler.
func (b *Backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	if len(b.failures) > 0 {
		f := b.failures[0]
		b.failures = b.failures[1:]
		b.mu.Unlock()
		w.WriteHeader(f.status)
		_, _ = io.WriteString(w, f.body)
		return
	}
	b.mu.Unlock()
	b.router.ServeHTTP(w, r)
}

func (b *Backend) routes() *mux.Router {
	r := mux.NewRouter()
	// Empty id and secret segments produce "//" which must not be cleaned.
	r.SkipClean(true)
	r.HandleFunc("/raw/{id}", b.handleRaw).Methods(http.MethodGet)
	r.HandleFunc("/api/meta/{id}/{secret:[^/]*}", b.handleMeta).Methods(http.MethodGet)
	r.HandleFunc("/api/new/{id:[^/]*}/{secret:[^/]*}/{expiry:[^/]*}/{mime:.*}", b.handleNew).Methods(http.MethodPost)
	return r
}

func (b *Backend) lookup(id string) (Paste, bool) {
	p, ok := b.pastes[id]
	if !ok {
		return Paste{}, false
	}
	if !b.now().Before(p.ExpiresAt) {
		delete(b.pastes, id)
		return Paste{}, false
	}
	return p, true
}

func (b *Backend) handleRaw(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	b.requests["raw"]++
	p, ok := b.lookup(mux.Vars(r)["id"])
	b.mu.Unlock()
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, p.Text)
}

func (b *Backend) handleMeta(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	b.mu.Lock()
	b.requests["meta"]++
	p, ok := b.lookup(vars["id"])
	remaining := int64(p.ExpiresAt.Sub(b.now()) / time.Second)
	b.mu.Unlock()
	if !ok {
		writeErrors(w, http.StatusNotFound, "Paste not found")
		return
	}
	meta := paste.Meta{ID: p.ID, Mime: p.Mime, Expiry: &remaining}
	if secret := vars["secret"]; secret != "" && secret == p.Secret {
		meta.Secret = &secret
	}
	writeJSON(w, http.StatusOK, meta)
}

func (b *Backend) handleNew(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeErrors(w, http.StatusBadRequest, "Could not read paste")
		return
	}

	var problems []string
	text := string(body)
	if text == "" {
		problems = append(problems, "Paste must not be empty")
	}
	mime := vars["mime"]
	if strings.TrimSpace(mime) == "" {
		problems = append(problems, "Mime type is required")
	}
	expiry := DefaultExpiry
	if raw := vars["expiry"]; raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || v <= 0 {
			problems = append(problems, "Expiry must be a positive number of seconds")
		} else {
			expiry = v
		}
	}
	if len(problems) > 0 {
		writeErrors(w, http.StatusBadRequest, problems...)
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.requests["new"]++

	secret := vars["secret"]
	id := vars["id"]
	if id != "" {
		existing, ok := b.lookup(id)
		if !ok {
			writeErrors(w, http.StatusNotFound, "Paste not found")
			return
		}
		if secret == "" || secret != existing.Secret {
			writeErrors(w, http.StatusForbidden, "You are not allowed to overwrite this paste")
			return
		}
	} else {
		id = newID()
		for _, taken := b.pastes[id]; taken; _, taken = b.pastes[id] {
			id = newID()
		}
	}
	if secret == "" {
		secret = uuid.NewString()
	}

	p := Paste{
		ID:        id,
		Text:      text,
		Mime:      mime,
		Secret:    secret,
		ExpiresAt: b.now().Add(time.Duration(expiry) * time.Second),
	}
	b.pastes[id] = p
	writeJSON(w, http.StatusOK, paste.SavedMeta{ID: id, Secret: secret, Expiry: expiry, Mime: mime})
}

func newID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErrors(w http.ResponseWriter, status int, messages ...string) {
	writeJSON(w, status, map[string][]string{"errors": messages})
}
