// Package draft persists the editor's local state: the draft text, the
// editor options, and the ownership secret handed out by the backend.
package draft

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/Scrin/pasta-frontend/internal/paste"
)

// Keys under which state is stored.
const (
	KeyText    = "text"
	KeyOptions = "options"
	KeySecret  = "secret"
)

// Store is the key-value store the editor and backend client share. Reads
// degrade to zero values; writes report failures.
type Store interface {
	Text() string
	SetText(text string) error
	Options() (paste.Options, bool)
	SetOptions(opts paste.Options) error
	Secret() string
	SetSecret(secret string) error
}

// LoadOptions returns the stored options, or the defaults when none are
// stored.
func LoadOptions(s Store) paste.Options {
	if opts, ok := s.Options(); ok {
		return opts.Normalize()
	}
	return paste.DefaultOptions()
}

// SaveDraft persists text and options together.
func SaveDraft(s Store, text string, opts paste.Options) error {
	if err := s.SetText(text); err != nil {
		return err
	}
	return s.SetOptions(opts)
}

func encodeOptions(opts paste.Options) ([]byte, error) {
	b, err := json.Marshal(opts)
	if err != nil {
		return nil, errors.Wrap(err, "encode options")
	}
	return b, nil
}

func decodeOptions(b []byte) (paste.Options, bool) {
	if len(b) == 0 {
		return paste.Options{}, false
	}
	var opts paste.Options
	if err := json.Unmarshal(b, &opts); err != nil {
		return paste.Options{}, false
	}
	return opts, true
}
