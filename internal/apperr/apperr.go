// Package apperr carries the error taxonomy the service layer raises and the
// HTTP layer maps to status codes. Business logic never smuggles status codes
// through ad hoc values.
package apperr

import "errors"

type Kind int

const (
	// KindInvalidInput marks malformed or missing caller-supplied fields.
	KindInvalidInput Kind = iota + 1
	// KindNotFound marks entities that do not exist or are not owned by the
	// requester; the two cases are deliberately indistinguishable.
	KindNotFound
	// KindInvalidOperation marks business-rule violations on well-formed
	// requests (already-ordered cart, insufficient stock, foreign address).
	KindInvalidOperation
)

type Error struct {
	Kind   Kind
	Detail string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	switch e.Kind {
	case KindInvalidInput:
		return "invalid input"
	case KindNotFound:
		return "not found"
	case KindInvalidOperation:
		return "invalid operation"
	}
	return "unknown error"
}

func InvalidInput(detail string) error {
	return &Error{Kind: KindInvalidInput, Detail: detail}
}

func NotFound(detail string) error {
	return &Error{Kind: KindNotFound, Detail: detail}
}

func InvalidOperation(detail string) error {
	return &Error{Kind: KindInvalidOperation, Detail: detail}
}

// KindOf returns the taxonomy kind of err, or 0 for transport/unexpected
// errors that carry no kind.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func IsInvalidInput(err error) bool     { return KindOf(err) == KindInvalidInput }
func IsNotFound(err error) bool         { return KindOf(err) == KindNotFound }
func IsInvalidOperation(err error) bool { return KindOf(err) == KindInvalidOperation }
