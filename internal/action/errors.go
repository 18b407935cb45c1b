package action

import (
	"context"
	"errors"
	"strings"
)

const (
	FallbackMessage = "An error occurred while processing your request"
	TimeoutMessage  = "request timed out"
)

var (
	// ErrUnknownAction is a programming error: the caller asked for an id
	// the registry never declared.
	ErrUnknownAction = errors.New("unknown action")

	ErrMissingField    = errors.New("missing required field(s)")
	ErrNoFieldProvided = errors.New("no field provided")
)

// ValidationError is raised locally, before any remote call.
type ValidationError struct {
	Err    error
	Fields []string
	Msg    string
}

func (e *ValidationError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if len(e.Fields) > 0 {
		return e.Err.Error() + ": " + strings.Join(e.Fields, ", ")
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

func (e *ValidationError) UserMessage() string { return e.Error() }

// UserMessager is implemented by errors that carry text meant for the
// end user, such as a backend-reported message.
type UserMessager interface {
	UserMessage() string
}

// Message maps an error to the text a dashboard shows. Only errors that
// carry user-facing text are shown; anything else, decode and transport
// failures included, becomes the generic message.
func Message(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrUnknownAction) {
		return FallbackMessage
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return TimeoutMessage
	}

	var um UserMessager
	if errors.As(err, &um) {
		if msg := strings.TrimSpace(um.UserMessage()); msg != "" {
			return msg
		}
	}
	return FallbackMessage
}
