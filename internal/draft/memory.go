package draft

import (
	"sync"

	"github.com/Scrin/pasta-frontend/internal/paste"
)

// Memory is a Store kept in process memory.
type Memory struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// Ensure Memory implements Store at compile time.
var _ Store = (*Memory)(nil)

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string][]byte)}
}

func (m *Memory) get(key string) []byte {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v := m.values[key]
	if v == nil {
		return nil
	}
	dup := make([]byte, len(v))
	copy(dup, v)
	return dup
}

func (m *Memory) set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.values == nil {
		m.values = make(map[string][]byte)
	}
	dup := make([]byte, len(value))
	copy(dup, value)
	m.values[key] = dup
}

// Text returns the stored draft text.
func (m *Memory) Text() string { return string(m.get(KeyText)) }

// SetText stores the draft text.
func (m *Memory) SetText(text string) error {
	m.set(KeyText, []byte(text))
	return nil
}

// Options returns the stored editor options.
func (m *Memory) Options() (paste.Options, bool) {
	return decodeOptions(m.get(KeyOptions))
}

// SetOptions stores the editor options.
func (m *Memory) SetOptions(opts paste.Options) error {
	b, err := encodeOptions(opts)
	if err != nil {
		return err
	}
	m.set(KeyOptions, b)
	return nil
}

// Secret returns the stored ownership secret.
func (m *Memory) Secret() string { return string(m.get(KeySecret)) }

// SetSecret stores the ownership secret.
func (m *Memory) SetSecret(secret string) error {
	m.set(KeySecret, []byte(secret))
	return nil
}
