package paste

import "strings"

// Meta mirrors the payload returned by /api/meta/{id}/{secret}.
// Secret is only present when the caller proved ownership.
type Meta struct {
	ID     string  `json:"id" yaml:"id"`
	Secret *string `json:"secret,omitempty" yaml:"secret,omitempty"`
	Expiry *int64  `json:"expiry,omitempty" yaml:"expiry,omitempty"`
	Mime   string  `json:"mime" yaml:"mime"`
}

// SecretOrEmpty returns the paste secret, or "" when the backend withheld it.
func (m Meta) SecretOrEmpty() string {
	if m.Secret == nil {
		return ""
	}
	return *m.Secret
}

// SavedMeta mirrors the payload returned by /api/new. Unlike Meta every field
// is always present.
type SavedMeta struct {
	ID     string `json:"id" yaml:"id"`
	Secret string `json:"secret" yaml:"secret"`
	Expiry int64  `json:"expiry" yaml:"expiry"`
	Mime   string `json:"mime" yaml:"mime"`
}

// Meta converts the saved record into the shape returned by metadata lookups.
func (s SavedMeta) Meta() Meta {
	secret := s.Secret
	expiry := s.Expiry
	return Meta{ID: s.ID, Secret: &secret, Expiry: &expiry, Mime: s.Mime}
}

// Options is the editor configuration persisted alongside the draft text.
type Options struct {
	LineNumbers  bool   `json:"lineNumbers"`
	LineWrapping bool   `json:"lineWrapping"`
	Mode         string `json:"mode"`
}

// DefaultMode is used for new pastes and for stored options without a mode.
const DefaultMode = "text/plain"

// DefaultOptions returns the configuration of a fresh editor.
func DefaultOptions() Options {
	return Options{
		LineNumbers:  true,
		LineWrapping: false,
		Mode:         DefaultMode,
	}
}

// Normalize fills in a missing mode.
func (o Options) Normalize() Options {
	if strings.TrimSpace(o.Mode) == "" {
		o.Mode = DefaultMode
	}
	return o
}

// Owns reports whether a locally stored secret grants overwrite rights over a
// paste carrying pasteSecret. A missing local secret never does.
func Owns(localSecret, pasteSecret string) bool {
	return localSecret != "" && localSecret == pasteSecret
}
