package keyring

import "errors"

// Kind is a stable category for programmatic error handling.
//
// These categories are intended to remain stable across versions.
// Callers should branch on Kind rather than matching error strings.
//
// NOTE: Error() strings are intentionally kept human-readable and may evolve.
// Use errors.As to extract *Error for structured handling.
type Kind string

const (
	// KindRegistrationConflict: a type URL is already bound to a different
	// key manager implementation.
	KindRegistrationConflict Kind = "RegistrationConflict"
	// KindUnknownTypeURL: no key manager is registered for the type URL.
	KindUnknownTypeURL Kind = "UnknownTypeUrl"
	// KindKeyMaterialInvalid: serialized key or key-format bytes cannot be
	// parsed, or their parameters are out of the supported range.
	KindKeyMaterialInvalid Kind = "KeyMaterialInvalid"
	// KindInvalidKeyset: a keyset violates a structural invariant.
	KindInvalidKeyset Kind = "InvalidKeyset"
	// KindNoPrimaryKey: no enabled entry matched the declared primary id.
	KindNoPrimaryKey Kind = "NoPrimaryKey"
	// KindNoMatchingKey: decrypt/verify exhausted every candidate key.
	KindNoMatchingKey Kind = "NoMatchingKey"
	// KindUnsupportedOutputPrefixKind: an output prefix kind outside the
	// recognized set (TINK, LEGACY, CRUNCHY, RAW).
	KindUnsupportedOutputPrefixKind Kind = "UnsupportedOutputPrefixKind"
	// KindInternal: a defect in this library, not a caller error.
	KindInternal Kind = "Internal"
)

// Error is the library's structured error type.
//
// Message is intended for humans; do not match on it.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// NewError returns a structured error with the given kind.
func NewError(kind Kind, msg string) error {
	return &Error{Kind: kind, Message: msg}
}

// WrapError returns a structured error carrying cause, preserving the
// causal chain across component boundaries.
func WrapError(kind Kind, msg string, cause error) error {
	if cause == nil {
		return NewError(kind, msg)
	}
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

// IsKind reports whether err is (or wraps) a *Error with the given Kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}

// ErrKind returns the Kind of a structured error, or "" if err is not one.
func ErrKind(err error) Kind {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	return e.Kind
}
