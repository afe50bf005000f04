package mcore

import (
	"errors"
	"fmt"

	"github.com/agiangrant/mcore/cmdbuf"
)

// ErrArenaExhausted is returned when a frame declares more nodes than the
// frame arena holds (Config.MaxNodes).
var ErrArenaExhausted = errors.New("mcore: frame arena exhausted")

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindCapacity means the command buffer filled up. The frame was still
	// presented with the commands that fit.
	KindCapacity ErrorKind = iota + 1
	// KindAllocation means frame storage ran out. The frame was not presented.
	KindAllocation
	// KindEngine means the native engine reported a failure.
	KindEngine
)

func (k ErrorKind) String() string {
	switch k {
	case KindCapacity:
		return "capacity"
	case KindAllocation:
		return "allocation"
	case KindEngine:
		return "engine"
	default:
		return "unknown"
	}
}

// Error is a frame or engine failure.
type Error struct {
	// Op is the operation that failed (e.g. "EndFrame", "Resize").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsCapacity reports whether err is a command buffer overflow.
func IsCapacity(err error) bool {
	return errors.Is(err, cmdbuf.ErrCapacityExceeded)
}

// PreconditionError is the panic value for API misuse: unbalanced scopes,
// widgets outside any layout, nested scroll areas.
type PreconditionError struct {
	Op  string
	Msg string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("mcore: %s: %s", e.Op, e.Msg)
}

func precondition(op, format string, args ...any) {
	panic(&PreconditionError{Op: op, Msg: fmt.Sprintf(format, args...)})
}
