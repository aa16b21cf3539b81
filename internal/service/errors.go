package service

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSession indicates a task operation was attempted without an
	// active session.
	ErrNoSession = errors.New("no active session")

	// ErrUnauthorized indicates the server rejected the request's
	// credentials or token.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrDuplicateAccount indicates signup with an email or username that
	// already exists.
	ErrDuplicateAccount = errors.New("account already exists")

	// ErrTaskNotFound indicates the server has no task with the given ID.
	ErrTaskNotFound = errors.New("task not found")

	// ErrEmptyTitle indicates a create was rejected locally because the
	// title is empty or whitespace-only. No request is issued.
	ErrEmptyTitle = errors.New("title is empty")

	// ErrTransport indicates no response was received at all.
	ErrTransport = errors.New("network error")
)

// APIError carries the server-provided message for a rejected request.
// It wraps one of the sentinel errors above so callers can branch with
// errors.Is while still surfacing the server's own wording.
type APIError struct {
	Kind    error
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Message)
}

func (e *APIError) Unwrap() error { return e.Kind }
