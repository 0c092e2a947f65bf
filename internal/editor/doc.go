// Package editor holds the editing session behind the terminal UI.
//
// A Session owns the paste text, the editor options and the derived flags
// the UI renders from:
//
//   - saveable: the text is non-empty and differs from what was last loaded
//     or saved, so a save would do something
//   - editable: input is accepted; false while metadata is pending and while
//     a save is in flight
//   - overwritable: the locally stored secret matches the loaded paste's
//     secret, so "save and overwrite" is offered
//
// The session never blocks. Load and Save return tea.Cmd values that run
// the remote calls off the update loop and report back with LoadedMsg,
// MetaMsg and SavedMsg, which the caller hands to Session.Update. Every load
// is stamped with the paste id and a sequence number; results that no
// longer match the current location, or that arrive after Close, are
// dropped.
//
// Location and local persistence are injected as nav.Navigator and
// draft.Store so tests can drive the session without a terminal or disk.
package editor
