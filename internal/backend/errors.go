package backend

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

// UnexpectedSaveMessage is reported when a save fails without a structured
// error list from the backend.
const UnexpectedSaveMessage = "Unexpected error occurred while trying to save, please try again"

// SaveError is returned by SavePaste. Errors holds the backend's validation
// messages, or the single UnexpectedSaveMessage.
type SaveError struct {
	Errors []string
	cause  error
}

func (e *SaveError) Error() string {
	return strings.Join(e.Errors, "; ")
}

// Unwrap exposes the transport or status error behind the failure.
func (e *SaveError) Unwrap() error { return e.cause }

// Cause satisfies github.com/pkg/errors.Cause.
func (e *SaveError) Cause() error { return e.cause }

// errorBody is the backend's validation failure payload.
type errorBody struct {
	Errors []string `json:"errors"`
}

func newSaveError(err error) *SaveError {
	var statusErr *StatusError
	if errors.As(err, &statusErr) && len(statusErr.Body) > 0 {
		var body errorBody
		if jsonErr := json.Unmarshal(statusErr.Body, &body); jsonErr == nil && len(body.Errors) > 0 {
			return &SaveError{Errors: body.Errors, cause: err}
		}
	}
	return &SaveError{Errors: []string{UnexpectedSaveMessage}, cause: err}
}

// SaveErrors extracts the user-facing messages from an error returned by
// SavePaste. Other errors yield the generic message.
func SaveErrors(err error) []string {
	if err == nil {
		return nil
	}
	var saveErr *SaveError
	if errors.As(err, &saveErr) {
		return append([]string(nil), saveErr.Errors...)
	}
	return []string{UnexpectedSaveMessage}
}
