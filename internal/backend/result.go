package backend

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// Outcome tags the result of a remote read.
type Outcome int

const (
	// OutcomeOK means the value was fetched.
	OutcomeOK Outcome = iota
	// OutcomeNotFound means the backend answered but has no such paste,
	// either because it never existed or because it expired.
	OutcomeNotFound
	// OutcomeTransient covers transport failures, server errors and
	// undecodable responses.
	OutcomeTransient
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeNotFound:
		return "not found"
	case OutcomeTransient:
		return "transient error"
	default:
		return "unknown"
	}
}

// Result is the tagged outcome of GetMeta and GetPaste. Value is only
// meaningful when Outcome is OutcomeOK; Err carries the detail otherwise.
type Result[T any] struct {
	Value   T
	Outcome Outcome
	Err     error
}

// OK reports whether the fetch succeeded.
func (r Result[T]) OK() bool { return r.Outcome == OutcomeOK }

// NotFound reports whether the backend has no such paste.
func (r Result[T]) NotFound() bool { return r.Outcome == OutcomeNotFound }

func ok[T any](v T) Result[T] {
	return Result[T]{Value: v, Outcome: OutcomeOK}
}

func failed[T any](err error) Result[T] {
	return Result[T]{Outcome: classify(err), Err: err}
}

// StatusError is returned when the backend answers with an error status.
// Op names the call ("meta", "raw", "new") so secrets never end up in
// error strings.
type StatusError struct {
	Op     string
	Status int
	Body   []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api %s returned status %d", e.Op, e.Status)
}

// classify maps a failed call to an outcome. Only 404 and 410 mean the
// paste is gone; throttling and other client errors are worth retrying.
func classify(err error) Outcome {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		switch statusErr.Status {
		case http.StatusNotFound, http.StatusGone:
			return OutcomeNotFound
		}
	}
	return OutcomeTransient
}
