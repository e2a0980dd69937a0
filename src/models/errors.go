package models

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindNotFound
	KindDuplicateEmail
	KindClientNotFound
	KindValidation
	KindStore
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindDuplicateEmail:
		return "duplicate_email"
	case KindClientNotFound:
		return "client_not_found"
	case KindValidation:
		return "validation"
	case KindStore:
		return "store"
	default:
		return "unknown"
	}
}

// Error is the tagged failure returned by the rule engine and the stores.
// Two Errors match under errors.Is when their kinds are equal.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrNotFound       = &Error{Kind: KindNotFound, Message: "not found"}
	ErrDuplicateEmail = &Error{Kind: KindDuplicateEmail, Message: "email already registered"}
	ErrClientNotFound = &Error{Kind: KindClientNotFound, Message: "client not found"}
	ErrValidation     = &Error{Kind: KindValidation, Message: "validation failed"}
	ErrStore          = &Error{Kind: KindStore, Message: "store failure"}
)

func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// StoreError wraps an unexpected datastore error. Errors that already carry a
// kind pass through unchanged.
func StoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return &Error{Kind: KindStore, Message: op, Err: err}
}

func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
