// Package app is the composition root of pasta.
//
// # Overview
//
// Open loads configuration (config file, .env, environment, then command
// line overrides), builds the logger, opens the per-profile draft store and
// creates the backend client. Every command shares the resulting Env; Run
// additionally starts the interactive editor.
//
// # Data Flow
//
//	┌──────────────┐
//	│   Open()     │
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()       Read ~/.config/pasta/config.toml
//	       ├─────> logging.NewFile()   Log file (editor) or console (CLI)
//	       ├─────> draft.Open()        Pebble store under <data_dir>/<profile>
//	       └─────> backend.NewClient() Rate limited HTTP client
//
//	Run():
//	       ├─────> prefs.Load()        Theme and default expiry
//	       ├─────> Env.Editor()        nav.History + editor.Session
//	       └─────> ui.Run()            Start TUI (blocks)
//
// # Error Handling
//
// Configuration, log file and draft store failures are fatal and returned
// from Open. A missing or unreadable prefs file falls back to defaults.
// Backend failures never abort the editor; they are shown in the status
// line.
//
// # Logging
//
// The interactive editor owns the terminal, so it logs JSON to
// <data_dir>/pasta.log (see `pasta logs`). Subcommands pass a LogOutput and
// log to stderr instead.
package app
