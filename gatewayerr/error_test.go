package gatewayerr

import (
	"errors"
	"fmt"
	"testing"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestErrorMessage(t *testing.T) {
	err := PreconditionFailedf("Expected %d, but received %d", 2, 1)
	want := "preconditionFailed: Expected 2, but received 1"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrappedCause(t *testing.T) {
	cause := fmt.Errorf("expected integer value")
	err := InvalidArgumentf("Invalid argument at position %d: %w", 1, cause)
	if !errors.Is(err, cause) {
		t.Error("errors.Is does not find the wrapped cause")
	}
	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), cause)
	}
}

func TestKindOf(t *testing.T) {
	err := Internalf("boom")
	kind, ok := KindOf(fmt.Errorf("outer: %w", err))
	if !ok || kind != KindInternal {
		t.Errorf("KindOf = %v (%v), want KindInternal", kind, ok)
	}
	if _, ok := KindOf(errors.New("plain")); ok {
		t.Error("KindOf reported a kind for a plain error")
	}
}

func TestGRPCStatus(t *testing.T) {
	tests := []struct {
		err  *Error
		code codes.Code
	}{
		{PreconditionFailedf("shape"), codes.FailedPrecondition},
		{InvalidArgumentf("value"), codes.InvalidArgument},
		{Internalf("defect"), codes.Internal},
	}
	for _, tt := range tests {
		st, ok := status.FromError(tt.err)
		if !ok {
			t.Fatalf("status.FromError failed for %v", tt.err)
		}
		if st.Code() != tt.code {
			t.Errorf("code for kind %s = %s, want %s", tt.err.Kind, st.Code(), tt.code)
		}
	}
}

func TestGRPCStatusDetails(t *testing.T) {
	st := InvalidArgumentf("bad value").GRPCStatus()
	var info *errdetails.ErrorInfo
	for _, d := range st.Details() {
		if ei, ok := d.(*errdetails.ErrorInfo); ok {
			info = ei
		}
	}
	if info == nil {
		t.Fatal("status carries no ErrorInfo detail")
	}
	if info.Reason != "invalidArgument" || info.Domain != "grpcql" {
		t.Errorf("ErrorInfo = %s/%s, want invalidArgument/grpcql", info.Reason, info.Domain)
	}
}
