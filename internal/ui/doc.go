// Package ui is the Bubble Tea front end of the pasta editor.
//
// # Layout
//
// The screen is three stacked parts:
//
//   - Header: a two line toolbar with the location, the session phase, the
//     expiry countdown, and the editor controls with their keys
//   - Editor: a bubbles textarea holding the paste, read-only whenever the
//     session is not editable
//   - Status line: save errors, load notices and transient messages
//
// Help, the mode and recent-paste pickers and the unsaved-changes diff are
// overlays drawn in place of the main screen.
//
// # Data Flow
//
// All paste state lives in an editor.Session. The root Model forwards edits
// to it and copies its state back into the header and textarea after every
// change (Model.sync). The header never mutates paste state itself: toggles,
// mode selection and saves are emitted as OptionsChangedMsg and
// SaveRequestedMsg and routed to the session by the root model.
//
// Remote calls run as tea.Cmd values returned by the session. Their results
// come back through Update as editor messages; the session drops those that
// are stale.
//
// # Countdown
//
// The header counts the paste's remaining lifetime down by ten seconds every
// ten seconds. Ticks carry a tag and Header.Stop bumps it, so ticks scheduled
// before a stop are ignored.
//
// # Line Wrapping
//
// The textarea always soft-wraps long lines. The line wrap option is kept
// with the draft options and labelled "stored only" in the header and help,
// since it does not change how the terminal editor lays out text.
//
// # Themes
//
// Themes (Dracula, Slate) are cycled with F2 and persisted through the prefs
// package together with the preselected expiry.
package ui
