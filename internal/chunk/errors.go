package chunk

import (
	"errors"
	"fmt"
)

// Sentinel errors matched by the concrete error types via errors.Is.
var (
	// ErrNotFound matches *NotFoundError.
	ErrNotFound = errors.New("chunk: resource not found")

	// ErrHTTPStatus matches *HTTPError.
	ErrHTTPStatus = errors.New("chunk: unexpected HTTP status")

	// ErrIO matches *IOError.
	ErrIO = errors.New("chunk: I/O failure")
)

// NotFoundError reports that the resource does not exist at the backend.
type NotFoundError struct {
	Resource ResourceID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("resource not found: %s", e.Resource)
}

// Is reports whether target is ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// HTTPError reports a response status other than 200 or 404.
type HTTPError struct {
	StatusCode uint16
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP error: %d", e.StatusCode)
}

// Is reports whether target is ErrHTTPStatus.
func (e *HTTPError) Is(target error) bool {
	return target == ErrHTTPStatus
}

// IOError wraps any other failure while reading a resource.
type IOError struct {
	Resource ResourceID
	Err      error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("IO error for resource %s: %v", e.Resource, e.Err)
}

// Unwrap returns the underlying cause.
func (e *IOError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrIO.
func (e *IOError) Is(target error) bool {
	return target == ErrIO
}

// FromIOError converts err into an *IOError without resource context.
// The resulting error carries an empty ResourceID. Errors that already
// belong to the taxonomy are returned unchanged, and nil stays nil.
func FromIOError(err error) error {
	if err == nil {
		return nil
	}
	if KindOf(err) != KindUnknown {
		return err
	}
	return &IOError{Err: err}
}

// Kind classifies an error produced by a Reader.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindHTTP
	KindIO
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindHTTP:
		return "http"
	case KindIO:
		return "io"
	default:
		return "unknown"
	}
}

// KindOf returns the taxonomy kind of err, looking through wrapping.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrHTTPStatus):
		return KindHTTP
	case errors.Is(err, ErrIO):
		return KindIO
	default:
		return KindUnknown
	}
}
