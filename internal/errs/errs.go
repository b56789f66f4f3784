package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a domain error independently of its transport status.
type Kind string

const (
	KindValidation       Kind = "validation"
	KindConflict         Kind = "conflict"
	KindUnauthorized     Kind = "unauthorized"
	KindNotFound         Kind = "not_found"
	KindBadRequest       Kind = "bad_request"
	KindUnsupportedMedia Kind = "unsupported_media"
	KindInternal         Kind = "internal"
)

// Common error sentinel values, one per kind. errors.Is(err, ErrNotFound)
// holds for every *Error of that kind.
var (
	ErrValidation       = errors.New("validation failed")
	ErrConflict         = errors.New("resource conflict")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrNotFound         = errors.New("resource not found")
	ErrBadRequest       = errors.New("malformed request")
	ErrUnsupportedMedia = errors.New("unsupported media type")
	ErrInternal         = errors.New("internal server error")
)

var sentinels = map[Kind]error{
	KindValidation:       ErrValidation,
	KindConflict:         ErrConflict,
	KindUnauthorized:     ErrUnauthorized,
	KindNotFound:         ErrNotFound,
	KindBadRequest:       ErrBadRequest,
	KindUnsupportedMedia: ErrUnsupportedMedia,
	KindInternal:         ErrInternal,
}

// Error is the typed error returned by services. Handlers translate it
// verbatim into {status, {"message": Message}}.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Fields  map[string]string // per-field reasons for validation failures
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap lets errors.Is match both the kind sentinel and the cause.
func (e *Error) Unwrap() []error {
	out := []error{sentinels[e.Kind]}
	if e.Cause != nil {
		out = append(out, e.Cause)
	}
	return out
}

func newErr(kind Kind, status int, message string) *Error {
	return &Error{Kind: kind, Status: status, Message: message}
}

func Validation(message string, fields map[string]string) *Error {
	e := newErr(KindValidation, http.StatusUnprocessableEntity, message)
	e.Fields = fields
	return e
}

// Conflict reports a duplicate with 409.
func Conflict(message string) *Error {
	return newErr(KindConflict, http.StatusConflict, message)
}

// ConflictBadRequest reports a duplicate with 400. Signup answers an
// existing email this way.
func ConflictBadRequest(message string) *Error {
	return newErr(KindConflict, http.StatusBadRequest, message)
}

func Unauthorized(message string) *Error {
	return newErr(KindUnauthorized, http.StatusUnauthorized, message)
}

func NotFound(message string) *Error {
	return newErr(KindNotFound, http.StatusNotFound, message)
}

func BadRequest(message string) *Error {
	return newErr(KindBadRequest, http.StatusBadRequest, message)
}

func UnsupportedMedia(message string) *Error {
	return newErr(KindUnsupportedMedia, http.StatusUnsupportedMediaType, message)
}

// Internal wraps an unexpected failure. The cause is logged, never returned
// to the client.
func Internal(cause error) *Error {
	e := newErr(KindInternal, http.StatusInternalServerError, "Server error")
	e.Cause = cause
	return e
}

// As extracts an *Error from err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
