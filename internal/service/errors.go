package service

import "errors"

// Domain errors surfaced to the HTTP layer.
var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	// ErrInvalidCredentials covers both unknown email and wrong password.
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrNoteNotFound       = errors.New("note not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidToken       = errors.New("invalid token")
)

// Action names what the caller attempted on a note.
type Action string

const (
	ActionAccess Action = "access"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// ForbiddenError is returned when the actor does not own the note. It matches ErrForbidden.
type ForbiddenError struct {
	Action Action
}

// Message is the client-facing refusal for the action.
func (a Action) Message() string {
	return "Not authorized to " + string(a) + " this note"
}

func (e *ForbiddenError) Error() string {
	return e.Action.Message()
}

func (e *ForbiddenError) Unwrap() error { return ErrForbidden }

// ValidationError describes the first invalid field of a request.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}
