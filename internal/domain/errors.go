package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrDataIntegrity marks element data that cannot be rendered as an answer.
	ErrDataIntegrity = errors.New("element data integrity violated")
	// ErrPoolTooSmall is returned when a pool cannot yield enough distinct options for a kind.
	ErrPoolTooSmall = errors.New("element pool too small for question kind")
	// ErrProtocolViolation is returned when a session operation is called in the wrong state.
	ErrProtocolViolation = errors.New("quiz session protocol violation")
	// ErrSessionNotFound is returned when a quiz session is unknown to the host.
	ErrSessionNotFound = errors.New("quiz session not found")
	// ErrElementNotFound indicates a requested element is not in the pool.
	ErrElementNotFound = errors.New("element not found")
	// ErrUnknownKind indicates a question kind name could not be parsed.
	ErrUnknownKind = errors.New("unknown question kind")
	// ErrUnknownMode indicates a quiz mode name could not be parsed.
	ErrUnknownMode = errors.New("unknown quiz mode")
)

// FormatError reports an element attribute that is present but malformed.
type FormatError struct {
	Kind    string
	Element string
	Value   string
	Err     error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("format %s of %q: bad value %q: %v", e.Kind, e.Element, e.Value, e.Err)
}

// Unwrap lets errors.Is match both ErrDataIntegrity and the parse cause.
func (e *FormatError) Unwrap() []error {
	return []error{ErrDataIntegrity, e.Err}
}
