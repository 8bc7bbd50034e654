// Package gatewayerr carries the gateway's error taxonomy: a structured
// error with a kind, a message, and an optional wrapped cause, convertible
// to a gRPC status.
package gatewayerr

import (
	"errors"
	"fmt"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type Kind int

const (
	// KindPreconditionFailed flags a structural mismatch detectable before
	// touching individual values: wrong value count, wrong name count,
	// malformed composite-type arity.
	KindPreconditionFailed Kind = iota
	// KindInvalidArgument flags a specific value that failed against its
	// declared type, or an unresolvable bind-marker name.
	KindInvalidArgument
	// KindInternal flags invariants that never break on a healthy system.
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindPreconditionFailed:
		return "preconditionFailed"
	case KindInvalidArgument:
		return "invalidArgument"
	case KindInternal:
		return "internal"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) grpcCode() codes.Code {
	switch k {
	case KindPreconditionFailed:
		return codes.FailedPrecondition
	case KindInvalidArgument:
		return codes.InvalidArgument
	default:
		return codes.Internal
	}
}

type Error struct {
	Kind    Kind
	Message string
	err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.err
}

// GRPCStatus makes the error convertible via status.FromError. The kind
// travels as an ErrorInfo detail so clients get more than a message string.
func (e *Error) GRPCStatus() *status.Status {
	st := status.New(e.Kind.grpcCode(), e.Message)
	detailed, err := st.WithDetails(&errdetails.ErrorInfo{
		Reason: e.Kind.String(),
		Domain: "grpcql",
	})
	if err != nil {
		return st
	}
	return detailed
}

func newf(kind Kind, format string, args ...interface{}) *Error {
	err := fmt.Errorf(format, args...)
	return &Error{Kind: kind, Message: err.Error(), err: errors.Unwrap(err)}
}

// PreconditionFailedf builds a KindPreconditionFailed error. The format
// string supports %w for a cause, like fmt.Errorf.
func PreconditionFailedf(format string, args ...interface{}) *Error {
	return newf(KindPreconditionFailed, format, args...)
}

func InvalidArgumentf(format string, args ...interface{}) *Error {
	return newf(KindInvalidArgument, format, args...)
}

func Internalf(format string, args ...interface{}) *Error {
	return newf(KindInternal, format, args...)
}

// KindOf reports the kind of err if it is (or wraps) an *Error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
