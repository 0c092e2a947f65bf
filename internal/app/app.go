package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Scrin/pasta-frontend/internal/backend"
	"github.com/Scrin/pasta-frontend/internal/config"
	"github.com/Scrin/pasta-frontend/internal/draft"
	"github.com/Scrin/pasta-frontend/internal/editor"
	"github.com/Scrin/pasta-frontend/internal/logging"
	"github.com/Scrin/pasta-frontend/internal/nav"
	"github.com/Scrin/pasta-frontend/internal/prefs"
	"github.com/Scrin/pasta-frontend/internal/ui"
)

// Options configure the pasta application. Empty fields keep the values
// from the config file and environment.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/pasta/prefs.toml
	Profile    string
	BackendURL string
	LogLevel   string
	// LogOutput receives console logs. Nil logs to the configured file.
	LogOutput io.Writer
	// SharedDrafts lets read-only commands run while another pasta process
	// holds the profile's draft store. They then see no stored secret.
	SharedDrafts bool
}

// Env holds the shared dependencies of every pasta command.
type Env struct {
	Config config.Config
	Log    zerolog.Logger
	Drafts draft.Store
	Client *backend.Client
	// Detached is set when the draft store was held elsewhere and Drafts
	// is an empty in-memory store.
	Detached bool

	closers []io.Closer
}

// LoadConfig reads the config file and environment and applies the
// overrides in opts.
func LoadConfig(opts Options) (config.Config, error) {
	if err := config.LoadDotEnv(); err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if v := strings.TrimSpace(opts.Profile); v != "" {
		cfg.Profile = v
	}
	if v := strings.TrimSpace(opts.BackendURL); v != "" {
		cfg.BackendURL = v
	}
	if v := strings.TrimSpace(opts.LogLevel); v != "" {
		cfg.LogLevel = v
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Open loads configuration and opens the draft store and backend client.
func Open(opts Options) (*Env, error) {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return nil, err
	}

	env := &Env{Config: cfg}
	if opts.LogOutput != nil {
		env.Log = logging.NewConsole(opts.LogOutput, cfg.LogLevel)
	} else {
		log, closer, err := logging.NewFile(cfg.LogPath(), cfg.LogLevel)
		if err != nil {
			return nil, err
		}
		env.Log = log
		env.closers = append(env.closers, closer)
	}
	env.Log = env.Log.With().Str("profile", cfg.Profile).Logger()

	drafts, err := draft.Open(cfg.DraftDir(), env.Log)
	switch {
	case err == nil:
		env.Drafts = drafts
		env.closers = append(env.closers, drafts)
	case errors.Is(err, draft.ErrLocked) && opts.SharedDrafts:
		env.Log.Warn().Err(err).Msg("draft store in use, continuing without the stored secret")
		env.Drafts = draft.NewMemory()
		env.Detached = true
	case errors.Is(err, draft.ErrLocked):
		_ = env.Close()
		return nil, fmt.Errorf("profile %q is in use by another pasta process (is the editor open?): %w", cfg.Profile, err)
	default:
		_ = env.Close()
		return nil, fmt.Errorf("open draft store: %w", err)
	}

	client, err := backend.NewClient(cfg.BackendURL, env.Drafts,
		backend.WithTimeout(cfg.RequestTimeout),
		backend.WithRateLimit(cfg.RequestsPerSecond, 1),
		backend.WithLogger(env.Log),
	)
	if err != nil {
		_ = env.Close()
		return nil, fmt.Errorf("init backend client: %w", err)
	}
	env.Client = client
	return env, nil
}

// Close releases the draft store and the log file in reverse order of
// opening.
func (e *Env) Close() error {
	var first error
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	e.closers = nil
	return first
}

// Editor builds the editor session for location, which may be an id, a
// path or a share link.
func (e *Env) Editor(location string) (*editor.Session, *nav.History) {
	history := nav.NewHistory(location, e.Config.RecentLimit)
	session := editor.New(history, e.Drafts, e.Client,
		editor.WithLogger(e.Log),
		editor.WithTimeout(e.Config.RequestTimeout),
	)
	return session, history
}

// Run boots the pasta editor at location until the user quits or the
// context is cancelled.
func Run(ctx context.Context, opts Options, location string) error {
	env, err := Open(opts)
	if err != nil {
		return err
	}
	defer env.Close()

	userPrefs, _ := prefs.Load(opts.PrefsPath)
	session, history := env.Editor(location)

	env.Log.Info().
		Str("backend", env.Client.BaseURL()).
		Str("location", history.Path()).
		Msg("starting editor")

	uiOpts := ui.Options{
		Session:   session,
		History:   history,
		ShareBase: env.Config.ShareBase(),
		ThemeName: userPrefs.Theme,
		Expiry:    userPrefs.Expiry,
		PrefsPath: opts.PrefsPath,
		Logger:    env.Log,
	}
	return ui.Run(ctx, uiOpts)
}
