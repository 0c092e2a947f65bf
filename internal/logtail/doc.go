// Package logtail reads the tail of the pasta log file for `pasta logs`.
//
// Read keeps a ring buffer of the last N lines, so memory is bounded by N
// rather than by the file size. Filter drops JSON entries below a level and
// Render prints entries through zerolog's ConsoleWriter.
//
// A missing log file is not an error: the editor creates it on first start.
package logtail
