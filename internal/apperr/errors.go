// Package apperr defines the closed set of application errors produced while
// serving a request: input parsing, persistence, and calls to the external
// moderation API. Every error that reaches the HTTP layer is either one of
// these kinds or a transport-level condition handled by the router.
//
// Callers match on kind with errors.Is against the exported sentinels:
//
//	if errors.Is(err, apperr.ErrQuestionNotFound) { ... }
//
// or extract the full value with errors.As / KindOf.
package apperr

import (
	"errors"
	"fmt"
)

// Kind enumerates the error classes. The zero value is never produced.
type Kind int

const (
	// KindParse: a query or path parameter is not a valid non-negative integer.
	KindParse Kind = iota + 1
	// KindMissingParameters: a required pagination parameter is absent.
	KindMissingParameters
	// KindQuestionNotFound: no question exists with the requested id.
	KindQuestionNotFound
	// KindDatabaseQuery: the backing database rejected or failed a query.
	KindDatabaseQuery
	// KindExternalAPI: the moderation call failed at transport level or
	// returned an unreadable body.
	KindExternalAPI
	// KindClient: the moderation API answered with a 4xx status.
	KindClient
	// KindServer: the moderation API answered with a 5xx status.
	KindServer
)

var kindNames = map[Kind]string{
	KindParse:             "parse_error",
	KindMissingParameters: "missing_parameters",
	KindQuestionNotFound:  "question_not_found",
	KindDatabaseQuery:     "database_query_error",
	KindExternalAPI:       "external_api_error",
	KindClient:            "client_error",
	KindServer:            "server_error",
}

// String returns a stable snake_case name for the kind.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is the single concrete error type of the taxonomy.
//
// Status and Message are only populated for KindClient and KindServer, where
// they carry the upstream HTTP status and the "message" field of its body.
// Err holds the underlying cause for KindParse, KindDatabaseQuery and
// KindExternalAPI.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindParse:
		return fmt.Sprintf("cannot parse parameter: %v", e.Err)
	case KindMissingParameters:
		return "missing parameter"
	case KindQuestionNotFound:
		return "question not found"
	case KindDatabaseQuery:
		return "database query failed"
	case KindExternalAPI:
		return fmt.Sprintf("cannot execute moderation request: %v", e.Err)
	case KindClient:
		return fmt.Sprintf("moderation client error: status %d: %s", e.Status, e.Message)
	case KindServer:
		return fmt.Sprintf("moderation server error: status %d: %s", e.Status, e.Message)
	}
	return e.Kind.String()
}

// Unwrap exposes the underlying cause, if any.
func (e *Error) Unwrap() error { return e.Err }

// Is reports kind equality so that the sentinels below match any error of
// the same kind regardless of cause or upstream status.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels for errors.Is matching.
var (
	ErrParse             = &Error{Kind: KindParse}
	ErrMissingParameters = &Error{Kind: KindMissingParameters}
	ErrQuestionNotFound  = &Error{Kind: KindQuestionNotFound}
	ErrDatabaseQuery     = &Error{Kind: KindDatabaseQuery}
	ErrExternalAPI       = &Error{Kind: KindExternalAPI}
	ErrClient            = &Error{Kind: KindClient}
	ErrServer            = &Error{Kind: KindServer}
)

// Parse wraps a number parsing failure.
func Parse(err error) *Error { return &Error{Kind: KindParse, Err: err} }

// MissingParameters is returned when a required query parameter is absent.
func MissingParameters() *Error { return &Error{Kind: KindMissingParameters} }

// QuestionNotFound is returned when no record exists at the requested id.
func QuestionNotFound() *Error { return &Error{Kind: KindQuestionNotFound} }

// DatabaseQuery wraps a failed database operation.
func DatabaseQuery(err error) *Error { return &Error{Kind: KindDatabaseQuery, Err: err} }

// ExternalAPI wraps a transport or decoding failure of the moderation call.
func ExternalAPI(err error) *Error { return &Error{Kind: KindExternalAPI, Err: err} }

// Upstream classifies a non-2xx moderation response: 4xx becomes KindClient,
// 5xx KindServer. Any other status is not a defined upstream answer and is
// reported as KindExternalAPI.
func Upstream(status int, message string) *Error {
	switch {
	case status >= 400 && status < 500:
		return &Error{Kind: KindClient, Status: status, Message: message}
	case status >= 500 && status < 600:
		return &Error{Kind: KindServer, Status: status, Message: message}
	default:
		return ExternalAPI(fmt.Errorf("unexpected status %d: %s", status, message))
	}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
