package symbolic

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed symbolic computation.
type ErrorKind int

const (
	// ParseFailure means the input text is not a valid expression.
	ParseFailure ErrorKind = iota + 1
	// UnsupportedForm means the input parsed but is outside what an
	// operation handles (no '=' in an equation, a = 0 in a quadratic).
	UnsupportedForm
	// SolverEmpty means the solver found no solution.
	SolverEmpty
	// InternalComputation covers panics and timeouts inside the engine.
	InternalComputation
)

func (k ErrorKind) String() string {
	switch k {
	case ParseFailure:
		return "parse_failure"
	case UnsupportedForm:
		return "unsupported_form"
	case SolverEmpty:
		return "solver_empty"
	case InternalComputation:
		return "internal_computation"
	}
	return "unknown"
}

// Sentinels for errors.Is matching on kind alone.
var (
	ErrParse       = &Error{Kind: ParseFailure}
	ErrUnsupported = &Error{Kind: UnsupportedForm}
	ErrNoSolution  = &Error{Kind: SolverEmpty}
	ErrInternal    = &Error{Kind: InternalComputation}
)

// Error is returned by every fallible operation in the kernel.
type Error struct {
	Kind ErrorKind
	Op   string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func errorf(kind ErrorKind, op, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of err, or 0 when err is not a kernel error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
