package draft

import (
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/cockroachdb/pebble"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/Scrin/pasta-frontend/internal/paste"
)

// Pebble is a Store backed by an on-disk pebble database, one per profile.
type Pebble struct {
	db  *pebble.DB
	log zerolog.Logger
}

// Ensure Pebble implements Store at compile time.
var _ Store = (*Pebble)(nil)

// ErrLocked is returned by Open when another pasta process, or another
// Open in this one, holds the store.
var ErrLocked = errors.New("draft store is in use")

// Open opens (creating if needed) the store in dir. Pebble locks the
// directory, so only one process can hold a profile at a time.
func Open(dir string, log zerolog.Logger) (*Pebble, error) {
	if dir == "" {
		return nil, errors.New("draft dir is empty")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, errors.Wrap(err, "create draft dir")
	}
	db, err := pebble.Open(dir, &pebble.Options{Logger: pebbleLogger{log: log}})
	if err != nil {
		if isLockErr(err) {
			return nil, errors.Wrapf(ErrLocked, "open draft store %s: %v", dir, err)
		}
		return nil, errors.Wrapf(err, "open draft store %s", dir)
	}
	return &Pebble{db: db, log: log}, nil
}

// Close flushes and closes the database.
func (p *Pebble) Close() error {
	if p == nil || p.db == nil {
		return nil
	}
	err := p.db.Close()
	p.db = nil
	return err
}

func (p *Pebble) get(key string) []byte {
	value, closer, err := p.db.Get([]byte(key))
	if err != nil {
		if !errors.Is(err, pebble.ErrNotFound) {
			p.log.Warn().Err(err).Str("key", key).Msg("read draft store failed")
		}
		return nil
	}
	defer func() { _ = closer.Close() }()
	dup := make([]byte, len(value))
	copy(dup, value)
	return dup
}

func (p *Pebble) set(key string, value []byte) error {
	if err := p.db.Set([]byte(key), value, pebble.Sync); err != nil {
		return errors.Wrapf(err, "write draft %s", key)
	}
	return nil
}

// Text returns the stored draft text.
func (p *Pebble) Text() string { return string(p.get(KeyText)) }

// SetText stores the draft text.
func (p *Pebble) SetText(text string) error { return p.set(KeyText, []byte(text)) }

// Options returns the stored editor options.
func (p *Pebble) Options() (paste.Options, bool) {
	return decodeOptions(p.get(KeyOptions))
}

// SetOptions stores the editor options.
func (p *Pebble) SetOptions(opts paste.Options) error {
	b, err := encodeOptions(opts)
	if err != nil {
		return err
	}
	return p.set(KeyOptions, b)
}

// Secret returns the stored ownership secret.
func (p *Pebble) Secret() string { return string(p.get(KeySecret)) }

// SetSecret stores the ownership secret.
func (p *Pebble) SetSecret(secret string) error { return p.set(KeySecret, []byte(secret)) }

// pebbleLogger routes pebble's internal logging into zerolog so it never
// writes over the terminal UI.
type pebbleLogger struct {
	log zerolog.Logger
}

func (l pebbleLogger) Infof(format string, args ...interface{}) {
	l.log.Debug().Str("component", "pebble").Msg(fmt.Sprintf(format, args...))
}

func (l pebbleLogger) Errorf(format string, args ...interface{}) {
	l.log.Error().Str("component", "pebble").Msg(fmt.Sprintf(format, args...))
}

func (l pebbleLogger) Fatalf(format string, args ...interface{}) {
	l.log.Fatal().Str("component", "pebble").Msg(fmt.Sprintf(format, args...))
}

// isLockErr reports whether err comes from pebble's directory lock: the
// in-process check or a refused fcntl lock.
func isLockErr(err error) bool {
	if errors.Is(err, syscall.EAGAIN) || errors.Is(err, syscall.EACCES) {
		return true
	}
	return strings.Contains(err.Error(), "lock held")
}
