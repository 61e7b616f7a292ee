package interview

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyAnswer       = errors.New("please provide an answer")
	ErrBotMessagePending = errors.New("a bot message must be acknowledged first")
	ErrInvalidTransition = errors.New("event is not allowed in the current phase")
	ErrPhaseIncomplete   = errors.New("current phase is not complete")
	ErrNoActiveQuestion  = errors.New("there is no question to answer")
)

// ValidationError lists the profile fields that are missing or invalid.
type ValidationError struct {
	Fields []string
	Detail string
}

func (e *ValidationError) Error() string {
	msg := "invalid profile"
	if len(e.Fields) > 0 {
		msg += ": missing or invalid fields: " + strings.Join(e.Fields, ", ")
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// CompletionError wraps a failed call to the completion service. The session
// is left as it was before the event.
type CompletionError struct {
	Op  string
	Err error
}

func (e *CompletionError) Error() string {
	return fmt.Sprintf("%s: completion service failed: %v", e.Op, e.Err)
}

func (e *CompletionError) Unwrap() error {
	return e.Err
}
