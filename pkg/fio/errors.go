package fio

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Kind enumerates every way a fetch or parse can fail. The set is
// closed: callers branch on kinds, never on raw statuses or wrapped
// transport errors.
type Kind int

const (
	// Unauthorized means the token is invalid, revoked or lacks access.
	Unauthorized Kind = iota + 1
	// RateLimited means the bank refused the request because it came
	// too soon after the previous one.
	RateLimited
	// NotFound means the bank rejected the requested range or account.
	// Distinct from an empty report, which parses fine.
	NotFound
	// ServerError covers 5xx and any status outside the mapped set.
	ServerError
	// Transport covers connection and timeout failures below HTTP.
	Transport
	// UnsupportedFormat means the payload format cannot be parsed into
	// the domain model.
	UnsupportedFormat
	// MalformedField means a required column was missing or could not
	// be decoded.
	MalformedField
)

func (k Kind) String() string {
	switch k {
	case Unauthorized:
		return "unauthorized"
	case RateLimited:
		return "rate limited"
	case NotFound:
		return "not found"
	case ServerError:
		return "server error"
	case Transport:
		return "transport"
	case UnsupportedFormat:
		return "unsupported format"
	case MalformedField:
		return "malformed field"
	}
	return "unknown"
}

// Error is the one error type this package returns.
type Error struct {
	Kind Kind

	// Status is the HTTP status that produced the error, when one did.
	Status int

	// Column is the offending numeric column ID for MalformedField,
	// or -1 when the failure is not tied to a single column.
	Column int

	Reason string

	cause error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	if e.Kind == MalformedField && e.Column >= 0 {
		fmt.Fprintf(&b, ": column %d", e.Column)
	}
	if e.Status != 0 {
		fmt.Fprintf(&b, " (status %d)", e.Status)
	}
	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.cause
}

// IsKind reports whether err is (or wraps) an Error of the given kind.
func IsKind(err error, k Kind) bool {
	var fe *Error
	return errors.As(err, &fe) && fe.Kind == k
}

const maxReasonLen = 200

// mapStatus is the single place bank statuses become error kinds.
// Returns nil for 2xx. The reason, when present, is body text already
// stripped of the token.
func mapStatus(status int, reason string) *Error {
	if status >= 200 && status < 300 {
		return nil
	}

	var kind Kind
	switch status {
	case 401, 403, 422:
		// Fio signals bad authorization with 422.
		kind = Unauthorized
	case 409, 429:
		// Fio answers 409 when a request arrives inside the 30s
		// cadence window.
		kind = RateLimited
	case 404:
		kind = NotFound
	default:
		// 5xx and anything unmapped; Status carries the specifics
		// (e.g. Fio's 413 for oversized ranges).
		kind = ServerError
	}

	return &Error{Kind: kind, Status: status, Column: -1, Reason: capReason(reason)}
}

// capReason trims and bounds body text without splitting a rune; Fio
// error bodies are Czech and multibyte.
func capReason(reason string) string {
	reason = strings.TrimSpace(reason)
	if len(reason) <= maxReasonLen {
		return reason
	}
	cut := maxReasonLen
	for cut > 0 && !utf8.RuneStart(reason[cut]) {
		cut--
	}
	return reason[:cut]
}

func transportError(reason string, cause error) *Error {
	return &Error{Kind: Transport, Column: -1, Reason: reason, cause: cause}
}

func unsupportedFormat(format string) *Error {
	return &Error{
		Kind:   UnsupportedFormat,
		Column: -1,
		Reason: fmt.Sprintf("format %q cannot be parsed into the domain model", format),
	}
}

func unknownFormat(format string) *Error {
	return &Error{
		Kind:   UnsupportedFormat,
		Column: -1,
		Reason: fmt.Sprintf("unknown format %q", format),
	}
}

func malformedField(column int, name, reason string) *Error {
	return &Error{
		Kind:   MalformedField,
		Column: column,
		Reason: fmt.Sprintf("%s: %s", name, reason),
	}
}
