package waypoint

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
)

var (
	ErrNilResponse   = errors.New("endpoint returned nil response")
	ErrNilMiddleware = errors.New("middleware cannot be nil")
)

// PanicError is the error a recovered panic is turned into before it reaches
// the error handler. Error handlers can detect it with errors.As.
type PanicError interface {
	error
	// Value returns the original panic value.
	Value() any
	// Stack returns the stack trace captured at the panic point.
	Stack() []byte
}

type panicError struct {
	value any
	stack []byte
}

func newPanicError(v any) *panicError {
	return &panicError{value: v, stack: debug.Stack()}
}

func (e *panicError) Error() string {
	return fmt.Sprintf("panic: %v", e.value)
}

func (e *panicError) Value() any {
	return e.value
}

func (e *panicError) Stack() []byte {
	return e.stack
}

// StatusCode is always 500.
func (e *panicError) StatusCode() int {
	return http.StatusInternalServerError
}

// Unwrap exposes the panic value when it is an error.
func (e *panicError) Unwrap() error {
	if err, ok := e.value.(error); ok {
		return err
	}
	return nil
}
