// Package paste holds the domain types shared by the pasta client: paste
// metadata, editor options, the syntax mode catalog, and the pure helpers
// that turn locations into paste ids and remaining lifetimes into text.
//
// # Expiry formatting
//
// FormatExpiry coarsens long lifetimes on purpose:
//
//   - years are always shown, and suppress hours and minutes
//   - hours are shown only while fewer than 7 days remain
//   - minutes are shown only while less than 12 hours remain
//
// so a paste with 1 year left reads "Will be deleted in 1 year" while one
// with 3 hours 20 minutes left reads "Will be deleted in 3 hours 20 minutes".
//
// # Locations
//
// The client addresses pastes the way the web frontend does: "/" is a fresh
// editor and "/{id}" is paste {id}. IDFromPath extracts the id from such a
// path and ParseLocation also accepts bare ids and full share URLs.
package paste
