// Package nav tracks which paste the editor is looking at. A location is
// either the root (a fresh editor) or a single paste id, and changes are
// recorded in a browser-style history with back and forward.
package nav

import (
	"slices"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/Scrin/pasta-frontend/internal/paste"
)

// Navigator is the location port the editor reads and rewrites.
type Navigator interface {
	// CurrentID returns the id at the current location, "" at the root.
	CurrentID() string
	// Push adds a new history entry for id.
	Push(id string)
	// Replace rewrites the current history entry to id.
	Replace(id string)
}

// PushOrReplace moves n to id. Nothing happens when n is already there. When
// the current location holds an id a new entry is pushed so going back
// returns to it; from the root the entry is replaced so the blank editor is
// not kept in history. An empty id navigates to the root.
func PushOrReplace(n Navigator, id string) {
	current := n.CurrentID()
	if current == id {
		return
	}
	if current != "" {
		n.Push(id)
		return
	}
	n.Replace(id)
}

// DefaultRecentLimit bounds the recently visited list when none is given.
const DefaultRecentLimit = 20

// History is an in-memory Navigator with back/forward and a bounded list of
// recently visited pastes.
type History struct {
	mu      sync.Mutex
	entries []string
	index   int
	recent  *lru.Cache[string, struct{}]
}

// Ensure History implements Navigator at compile time.
var _ Navigator = (*History)(nil)

// NewHistory starts a history at start (a bare id, path or share URL).
func NewHistory(start string, recentLimit int) *History {
	if recentLimit <= 0 {
		recentLimit = DefaultRecentLimit
	}
	// lru.New only fails for a non-positive size.
	cache, _ := lru.New[string, struct{}](recentLimit)
	h := &History{
		entries: []string{paste.ParseLocation(start)},
		recent:  cache,
	}
	h.visit(h.entries[0])
	return h
}

// CurrentID implements Navigator.
func (h *History) CurrentID() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries[h.index]
}

// Path returns the current location as a path.
func (h *History) Path() string {
	return paste.PathForID(h.CurrentID())
}

// Push implements Navigator. Forward entries are dropped.
func (h *History) Push(id string) {
	h.mu.Lock()
	h.entries = append(h.entries[:h.index+1], id)
	h.index = len(h.entries) - 1
	h.mu.Unlock()
	h.visit(id)
}

// Replace implements Navigator.
func (h *History) Replace(id string) {
	h.mu.Lock()
	h.entries[h.index] = id
	h.mu.Unlock()
	h.visit(id)
}

// Back moves one entry back and reports whether it moved.
func (h *History) Back() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.index == 0 {
		return false
	}
	h.index--
	return true
}

// Forward moves one entry forward and reports whether it moved.
func (h *History) Forward() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.index >= len(h.entries)-1 {
		return false
	}
	h.index++
	return true
}

// CanBack reports whether Back would move.
func (h *History) CanBack() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.index > 0
}

// CanForward reports whether Forward would move.
func (h *History) CanForward() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.index < len(h.entries)-1
}

// Recent returns recently visited paste ids, most recent first.
func (h *History) Recent() []string {
	keys := h.recent.Keys()
	slices.Reverse(keys)
	return keys
}

// Forget drops id from the recently visited list.
func (h *History) Forget(id string) {
	h.recent.Remove(id)
}

func (h *History) visit(id string) {
	if id == "" {
		return
	}
	h.recent.Add(id, struct{}{})
}
