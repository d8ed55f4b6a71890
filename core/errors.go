package core

import (
	"errors"
	"fmt"
)

// Kind classifies a domain failure.
type Kind string

const (
	// KindNotFound is used for unknown ISBNs, series titles and borrower IDs.
	KindNotFound Kind = "NOT_FOUND"

	// KindAlreadyExists is used for duplicate ISBNs, borrower IDs and series titles.
	KindAlreadyExists Kind = "ALREADY_EXISTS"

	// KindInvalidTransition is used when the lifecycle state does not allow the operation.
	KindInvalidTransition Kind = "INVALID_TRANSITION"

	// KindPolicyViolation is used when a lending rule (loan period, book limit, series availability) is broken.
	KindPolicyViolation Kind = "POLICY_VIOLATION"

	// KindValidation is used for malformed input.
	KindValidation Kind = "VALIDATION_ERROR"
)

// Sentinel errors, one per Kind, to be used with errors.Is.
var (
	ErrNotFound          = errors.New("not found")
	ErrAlreadyExists     = errors.New("already exists")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrPolicyViolation   = errors.New("policy violation")
	ErrValidation        = errors.New("validation error")
)

var sentinelByKind = map[Kind]error{
	KindNotFound:          ErrNotFound,
	KindAlreadyExists:     ErrAlreadyExists,
	KindInvalidTransition: ErrInvalidTransition,
	KindPolicyViolation:   ErrPolicyViolation,
	KindValidation:        ErrValidation,
}

// Error is the single recoverable failure value of the lending domain.
// It carries a Kind and a human-readable message which is meant to be shown to the user as is.
type Error struct {
	Kind    Kind
	Message string
}

// Error returns the human-readable message.
func (e *Error) Error() string {
	return e.Message
}

// Is makes errors.Is(err, ErrPolicyViolation) and friends work.
func (e *Error) Is(target error) bool {
	sentinel, ok := sentinelByKind[e.Kind]

	return ok && target == sentinel
}

func newError(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NotFoundError creates an Error of KindNotFound.
func NotFoundError(format string, args ...any) error {
	return newError(KindNotFound, format, args...)
}

// AlreadyExistsError creates an Error of KindAlreadyExists.
func AlreadyExistsError(format string, args ...any) error {
	return newError(KindAlreadyExists, format, args...)
}

// InvalidTransitionError creates an Error of KindInvalidTransition.
func InvalidTransitionError(format string, args ...any) error {
	return newError(KindInvalidTransition, format, args...)
}

// PolicyViolationError creates an Error of KindPolicyViolation.
func PolicyViolationError(format string, args ...any) error {
	return newError(KindPolicyViolation, format, args...)
}

// ValidationError creates an Error of KindValidation.
func ValidationError(format string, args ...any) error {
	return newError(KindValidation, format, args...)
}

// KindOf returns the Kind of a domain error anywhere in err's chain.
func KindOf(err error) (Kind, bool) {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Kind, true
	}

	return "", false
}

// IsNotFound reports whether err is a KindNotFound domain error.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsAlreadyExists reports whether err is a KindAlreadyExists domain error.
func IsAlreadyExists(err error) bool { return errors.Is(err, ErrAlreadyExists) }

// IsInvalidTransition reports whether err is a KindInvalidTransition domain error.
func IsInvalidTransition(err error) bool { return errors.Is(err, ErrInvalidTransition) }

// IsPolicyViolation reports whether err is a KindPolicyViolation domain error.
func IsPolicyViolation(err error) bool { return errors.Is(err, ErrPolicyViolation) }

// IsValidation reports whether err is a KindValidation domain error.
func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }
