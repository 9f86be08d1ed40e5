package auth

import (
	"errors"
	"fmt"
)

// Kind names a terminal authentication or authorization failure.
type Kind string

const (
	KindInvalidIdentity  Kind = "INVALID_IDENTITY"
	KindMalformedToken   Kind = "MALFORMED_TOKEN"
	KindInvalidSignature Kind = "INVALID_SIGNATURE"
	KindInvalidIssuer    Kind = "INVALID_ISSUER"
	KindInvalidAudience  Kind = "INVALID_AUDIENCE"
	KindTokenExpired     Kind = "TOKEN_EXPIRED"
	KindInvalidLifetime  Kind = "INVALID_LIFETIME"
	KindMissingToken     Kind = "MISSING_TOKEN"
	KindInsufficientRole Kind = "INSUFFICIENT_ROLE"
	KindUnknownOperation Kind = "UNKNOWN_OPERATION"
)

// Error carries a failure kind and, optionally, the underlying cause.
// Two errors match under errors.Is when their kinds are equal.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("auth: %s: %v", e.Kind, e.Err)
	}
	return "auth: " + string(e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Forbidden reports whether the failure happened after the caller was
// authenticated. Everything else is an authentication failure.
func (e *Error) Forbidden() bool {
	return e.Kind == KindInsufficientRole || e.Kind == KindUnknownOperation
}

var (
	ErrInvalidIdentity  = &Error{Kind: KindInvalidIdentity}
	ErrMalformedToken   = &Error{Kind: KindMalformedToken}
	ErrInvalidSignature = &Error{Kind: KindInvalidSignature}
	ErrInvalidIssuer    = &Error{Kind: KindInvalidIssuer}
	ErrInvalidAudience  = &Error{Kind: KindInvalidAudience}
	ErrTokenExpired     = &Error{Kind: KindTokenExpired}
	ErrInvalidLifetime  = &Error{Kind: KindInvalidLifetime}
	ErrMissingToken     = &Error{Kind: KindMissingToken}
	ErrInsufficientRole = &Error{Kind: KindInsufficientRole}
	ErrUnknownOperation = &Error{Kind: KindUnknownOperation}
)

func fail(kind Kind, cause error) error {
	return &Error{Kind: kind, Err: cause}
}

// KindOf extracts the failure kind from err, or "" when err is not an auth error.
func KindOf(err error) Kind {
	var authErr *Error
	if errors.As(err, &authErr) {
		return authErr.Kind
	}
	return ""
}
