package domain

import (
	"errors"
	"fmt"
)

// FailureKind classifies why a lookup did not produce a result.
type FailureKind int

const (
	// FailureTransport covers network errors, non-success statuses and
	// bodies that do not match the expected schema.
	FailureTransport FailureKind = iota
	// FailureInvalidIdentifier is a local validation failure. It never
	// reaches the network.
	FailureInvalidIdentifier
	// FailureNotFound means the remote reported no such entity.
	FailureNotFound
	// FailureMissingCredential is relay-side only: the platform API key is
	// not configured.
	FailureMissingCredential
)

func (k FailureKind) String() string {
	switch k {
	case FailureInvalidIdentifier:
		return "invalid_identifier"
	case FailureNotFound:
		return "not_found"
	case FailureMissingCredential:
		return "missing_server_credential"
	default:
		return "transport"
	}
}

// LookupError is the single error type produced by parsers, lookup clients
// and relay upstreams.
type LookupError struct {
	Kind    FailureKind
	Message string
	Err     error
}

func (e *LookupError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *LookupError) Unwrap() error { return e.Err }

func InvalidIdentifier(msg string) *LookupError {
	return &LookupError{Kind: FailureInvalidIdentifier, Message: msg}
}

func NotFound(msg string) *LookupError {
	return &LookupError{Kind: FailureNotFound, Message: msg}
}

func Transport(msg string, err error) *LookupError {
	return &LookupError{Kind: FailureTransport, Message: msg, Err: err}
}

func MissingCredential(msg string) *LookupError {
	return &LookupError{Kind: FailureMissingCredential, Message: msg}
}

// FailureOf reports the failure kind carried by err. Errors that are not
// LookupErrors count as transport failures.
func FailureOf(err error) FailureKind {
	var le *LookupError
	if errors.As(err, &le) {
		return le.Kind
	}
	return FailureTransport
}

// GenericFailureMessage is what callers see instead of relay-internal details.
const GenericFailureMessage = "Failed to fetch data. Please try again later."

// PublicMessage returns the text that may be shown to an end user for err.
// Wrapped causes are dropped and credential problems are reported as a
// generic failure.
func PublicMessage(err error) string {
	if err == nil {
		return ""
	}
	var le *LookupError
	if !errors.As(err, &le) || le.Kind == FailureMissingCredential || le.Message == "" {
		return GenericFailureMessage
	}
	return le.Message
}
