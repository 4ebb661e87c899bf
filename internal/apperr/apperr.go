// Package apperr enumerates the error kinds the dining core can return.
// Every failure crossing a service boundary is one of these kinds, with
// enough context (entity, id) for the transport layer to render a message.
package apperr

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindNotFound           Kind = "not_found"
	KindConflict           Kind = "conflict"
	KindFailedPrecondition Kind = "failed_precondition"
	KindInvalidArgument    Kind = "invalid_argument"
	KindInvalidTransition  Kind = "invalid_transition"
)

type Error struct {
	Kind   Kind
	Entity string // "table" | "session" | "order" | ...
	ID     string
	Detail string
}

func (e *Error) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s: %s %s: %s", e.Kind, e.Entity, e.ID, e.Detail)
	}
	return fmt.Sprintf("%s: %s: %s", e.Kind, e.Entity, e.Detail)
}

// Is lets errors.Is match on the kind alone, e.g.
// errors.Is(err, &Error{Kind: KindConflict}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Entity == "" || t.Entity == e.Entity)
}

func NotFound(entity, id string) *Error {
	return &Error{Kind: KindNotFound, Entity: entity, ID: id, Detail: "does not exist"}
}

func Conflict(entity, id, detail string) *Error {
	return &Error{Kind: KindConflict, Entity: entity, ID: id, Detail: detail}
}

func FailedPrecondition(entity, id, detail string) *Error {
	return &Error{Kind: KindFailedPrecondition, Entity: entity, ID: id, Detail: detail}
}

func InvalidArgument(entity, detail string) *Error {
	return &Error{Kind: KindInvalidArgument, Entity: entity, Detail: detail}
}

func InvalidTransition(entity, id, detail string) *Error {
	return &Error{Kind: KindInvalidTransition, Entity: entity, ID: id, Detail: detail}
}

// KindOf extracts the kind from an error chain; empty when the error is not
// an apperr.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
