package apperr

import (
	"errors"
	"net/http"
)

// Kind is a stable machine-readable failure category. Callers branch on the
// kind (or its Code) instead of string-matching messages.
type Kind struct {
	Code   string
	Status int
	// RequiresReauth marks the recoverable step-up failures: the client
	// should silently re-prompt for a fresh credential instead of showing
	// a hard error.
	RequiresReauth bool
}

var (
	KindDuplicateVersion = Kind{Code: "DUPLICATE_VERSION", Status: http.StatusBadRequest}
	KindNotFound         = Kind{Code: "NOT_FOUND", Status: http.StatusNotFound}
	KindInvalidState     = Kind{Code: "INVALID_STATE", Status: http.StatusForbidden}
	KindHasAcceptances   = Kind{Code: "HAS_ACCEPTANCES", Status: http.StatusForbidden}
	KindNoActiveDocument = Kind{Code: "NO_ACTIVE_DOCUMENT", Status: http.StatusNotFound}
	KindNotActive        = Kind{Code: "NOT_ACTIVE", Status: http.StatusBadRequest}

	KindUnauthenticated          = Kind{Code: "UNAUTHENTICATED", Status: http.StatusUnauthorized}
	KindReauthenticationRequired = Kind{Code: "REAUTHENTICATION_REQUIRED", Status: http.StatusUnauthorized, RequiresReauth: true}
	KindReauthTokenExpired       = Kind{Code: "REAUTH_TOKEN_EXPIRED", Status: http.StatusUnauthorized, RequiresReauth: true}
	KindInvalidReauthToken       = Kind{Code: "INVALID_REAUTH_TOKEN", Status: http.StatusUnauthorized}
	KindReauthTokenMismatch      = Kind{Code: "REAUTH_TOKEN_MISMATCH", Status: http.StatusForbidden}
)

// Error is a failure with a Kind attached. It wraps an optional cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.Code
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an Error of the given kind with a caller-facing message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap builds an Error of the given kind around a cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the Kind from err, reporting ok=false for plain errors.
func KindOf(err error) (Kind, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind, true
	}
	return Kind{}, false
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k.Code == kind.Code
}
