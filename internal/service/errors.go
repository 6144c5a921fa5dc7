package service

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrInvalid       = errors.New("invalid")
	ErrAIUnavailable = errors.New("ai provider not configured")
	ErrSyncRunning   = errors.New("sync already running")
)

// ParseError is returned when an uploaded file is not a usable TS document.
type ParseError struct {
	Name string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Name, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func (e *ParseError) Is(target error) bool {
	return target == ErrInvalid
}

// ErrAIReply marks a provider reply that could not be turned into a suggestion.
var ErrAIReply = errors.New("unusable ai reply")
