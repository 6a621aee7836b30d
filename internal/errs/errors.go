package errs

import (
    "errors"
    "fmt"
    "strconv"
)

// Common sentinel errors for cross-layer signaling.
var (
    ErrNotFound = errors.New("not_found")
    ErrInvalid  = errors.New("invalid")
    // ErrUnprocessable is used for semantic validation failures (HTTP 422)
    ErrUnprocessable = errors.New("unprocessable")
)

// NotFoundError carries the id that a store could not resolve.
// It matches ErrNotFound under errors.Is.
type NotFoundError struct {
    ID int64
}

// NotFound returns a *NotFoundError for id.
func NotFound(id int64) error { return &NotFoundError{ID: id} }

func (e *NotFoundError) Error() string { return "merchant " + strconv.FormatInt(e.ID, 10) + " not found" }

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ValidationError is a client-facing validation failure. Its message is shown
// to callers verbatim; it matches ErrUnprocessable under errors.Is.
type ValidationError struct {
    Msg string
}

// Unprocessable returns a *ValidationError with a formatted message.
func Unprocessable(format string, args ...any) error {
    return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string { return e.Msg }

func (e *ValidationError) Is(target error) bool { return target == ErrUnprocessable }
