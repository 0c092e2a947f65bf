// Package cli defines the pasta command tree.
//
// The root command opens the interactive editor; get, meta and put work
// on pastes without it and logs prints the editor's log file. Global flags
// (--config, --profile, --backend, --log-level) override the config file
// for every command.
package cli
