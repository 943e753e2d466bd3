// Package common defines the closed error taxonomy shared by every layer
// of the health tracker. Callers match these values with errors.Is; layers
// add context by wrapping them with fmt.Errorf and %w.
package common

import "errors"

var (
	// ErrValidation marks malformed external input: a timestamp that does
	// not parse, an intensity outside the closed set, a bad sync cursor.
	ErrValidation = errors.New("validation error")

	// ErrNotFound marks a read, update or delete whose target row is absent.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks an insert whose key already exists.
	ErrConflict = errors.New("already exists")

	// ErrStore marks a store operation the database rejected. Full detail
	// goes to logs; public consumers only see the SeeLogs marker.
	ErrStore = errors.New("store error")

	// ErrConversion marks a stored row that no longer parses back into a
	// valid entity. Treated as data corruption.
	ErrConversion = errors.New("conversion error")
)

// SeeLogs is the message returned to public consumers instead of internal
// error details. When it is used, the actual error has been logged.
const SeeLogs = "see logs for further details on error"
