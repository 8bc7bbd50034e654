package payload

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/grpcql/grpcql/gatewayerr"
	"github.com/grpcql/grpcql/types"
	"github.com/grpcql/grpcql/wire"
)

func idNameMetadata() types.PreparedMetadata {
	return types.PreparedMetadata{Columns: []types.Column{
		types.NewColumn("id", types.TypeInt),
		types.NewColumn("name", types.TypeText),
	}}
}

func wantKind(t *testing.T, err error, kind gatewayerr.Kind) {
	t.Helper()
	if err == nil {
		t.Fatal("want error, got nil")
	}
	got, ok := gatewayerr.KindOf(err)
	if !ok {
		t.Fatalf("error %q is not a gateway error", err)
	}
	if got != kind {
		t.Fatalf("error kind = %s, want %s (error: %v)", got, kind, err)
	}
}

func TestBindValuesPositional(t *testing.T) {
	prepared := &Prepared{StatementID: []byte{0xca, 0xfe}, Metadata: idNameMetadata()}
	bound, err := BindValues(context.Background(), prepared, &wire.Values{
		Values: []wire.Value{wire.Int(42), wire.Text("alice")},
	}, nil)
	if err != nil {
		t.Fatalf("BindValues returned error: %v", err)
	}
	want := &wire.BoundStatement{
		StatementID: []byte{0xca, 0xfe},
		Values:      [][]byte{{0, 0, 0, 42}, []byte("alice")},
	}
	if diff := cmp.Diff(want, bound); diff != "" {
		t.Errorf("bound statement mismatch (-want +got):\n%s", diff)
	}
	if bound.Names != nil {
		t.Errorf("Names = %v, want nil in positional mode", bound.Names)
	}
}

func TestBindValuesNamedFollowsSuppliedOrder(t *testing.T) {
	prepared := &Prepared{Metadata: idNameMetadata()}
	bound, err := BindValues(context.Background(), prepared, &wire.Values{
		Values:     []wire.Value{wire.Text("alice"), wire.Int(42)},
		ValueNames: []string{"name", "id"},
	}, nil)
	if err != nil {
		t.Fatalf("BindValues returned error: %v", err)
	}
	wantValues := [][]byte{[]byte("alice"), {0, 0, 0, 42}}
	if diff := cmp.Diff(wantValues, bound.Values); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"name", "id"}, bound.Names); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestBindValuesCountMismatch(t *testing.T) {
	prepared := &Prepared{Metadata: idNameMetadata()}

	_, err := BindValues(context.Background(), prepared, &wire.Values{
		Values: []wire.Value{wire.Int(42)},
	}, nil)
	wantKind(t, err, gatewayerr.KindPreconditionFailed)
	if !strings.Contains(err.Error(), "Expected 2, but received 1") {
		t.Errorf("error %q does not report both counts", err)
	}

	_, err = BindValues(context.Background(), prepared, &wire.Values{
		Values:     []wire.Value{wire.Int(42), wire.Text("alice")},
		ValueNames: []string{"id"},
	}, nil)
	wantKind(t, err, gatewayerr.KindPreconditionFailed)
	if !strings.Contains(err.Error(), "bind names") || !strings.Contains(err.Error(), "Expected 2, but received 1") {
		t.Errorf("error %q does not report the name-count mismatch", err)
	}
}

func TestBindValuesUnknownName(t *testing.T) {
	prepared := &Prepared{Metadata: idNameMetadata()}
	_, err := BindValues(context.Background(), prepared, &wire.Values{
		Values:     []wire.Value{wire.Int(42), wire.Text("alice")},
		ValueNames: []string{"id", "nickname"},
	}, nil)
	wantKind(t, err, gatewayerr.KindInvalidArgument)
	if !strings.Contains(err.Error(), "Unable to find bind marker with name 'nickname'") {
		t.Errorf("error %q does not name the missing marker", err)
	}
}

func TestBindValuesUnsetSentinelPassThrough(t *testing.T) {
	sentinel := []byte("unset-sentinel")
	prepared := &Prepared{Metadata: idNameMetadata()}
	bound, err := BindValues(context.Background(), prepared, &wire.Values{
		Values: []wire.Value{wire.Unset{}, wire.Text("alice")},
	}, sentinel)
	if err != nil {
		t.Fatalf("BindValues returned error: %v", err)
	}
	if &bound.Values[0][0] != &sentinel[0] {
		t.Error("unset slot does not hold the sentinel slice verbatim")
	}
	if diff := cmp.Diff([]byte("alice"), bound.Values[1]); diff != "" {
		t.Errorf("second value mismatch (-want +got):\n%s", diff)
	}
}

func TestBindValuesEncodeFailureCarriesPosition(t *testing.T) {
	prepared := &Prepared{Metadata: idNameMetadata()}
	_, err := BindValues(context.Background(), prepared, &wire.Values{
		Values: []wire.Value{wire.Text("oops"), wire.Text("alice")},
	}, nil)
	wantKind(t, err, gatewayerr.KindInvalidArgument)
	if !strings.Contains(err.Error(), "Invalid argument at position 1") {
		t.Errorf("error %q does not carry the 1-based position", err)
	}
	if !strings.Contains(err.Error(), "expected integer value") {
		t.Errorf("error %q does not carry the cause message", err)
	}
	if errors.Unwrap(err) == nil {
		t.Error("error does not wrap the underlying cause")
	}
}

func TestBindValuesEncodeFailureCarriesName(t *testing.T) {
	prepared := &Prepared{Metadata: idNameMetadata()}
	_, err := BindValues(context.Background(), prepared, &wire.Values{
		Values:     []wire.Value{wire.Boolean(true), wire.Int(1)},
		ValueNames: []string{"name", "id"},
	}, nil)
	wantKind(t, err, gatewayerr.KindInvalidArgument)
	if !strings.Contains(err.Error(), "Invalid argument for name 'name'") {
		t.Errorf("error %q does not carry the offending name", err)
	}
}

func TestBindValuesColumnWithoutType(t *testing.T) {
	prepared := &Prepared{Metadata: types.PreparedMetadata{Columns: []types.Column{
		{Name: "broken"},
	}}}
	_, err := BindValues(context.Background(), prepared, &wire.Values{
		Values: []wire.Value{wire.Int(1)},
	}, nil)
	wantKind(t, err, gatewayerr.KindInternal)
	if !strings.Contains(err.Error(), "Column 'broken' doesn't have a valid type") {
		t.Errorf("error %q does not name the broken column", err)
	}
}

func TestBindValuesDoesNotMutateMetadata(t *testing.T) {
	metadata := idNameMetadata()
	prepared := &Prepared{Metadata: metadata}
	if _, err := BindValues(context.Background(), prepared, &wire.Values{
		Values: []wire.Value{wire.Int(1), wire.Text("a")},
	}, nil); err != nil {
		t.Fatalf("BindValues returned error: %v", err)
	}
	if diff := cmp.Diff(idNameMetadata(), prepared.Metadata); diff != "" {
		t.Errorf("metadata mutated (-want +got):\n%s", diff)
	}
}

func TestProcessResult(t *testing.T) {
	rows := &Rows{
		Rows: [][][]byte{
			{{0, 0, 0, 1}},
			{{0, 0, 0, 2}},
		},
		Metadata: types.PreparedMetadata{Columns: []types.Column{
			types.NewColumn("id", types.TypeInt),
		}},
	}
	result, err := ProcessResult(context.Background(), rows, ResultParameters{})
	if err != nil {
		t.Fatalf("ProcessResult returned error: %v", err)
	}
	wantColumns := []wire.ColumnSpec{{Name: "id", Type: wire.Basic(9)}}
	if diff := cmp.Diff(wantColumns, result.Columns); diff != "" {
		t.Errorf("columns mismatch (-want +got):\n%s", diff)
	}
	wantRows := [][]wire.Value{{wire.Int(1)}, {wire.Int(2)}}
	if diff := cmp.Diff(wantRows, result.Rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
	if result.PagingState != nil || result.PageSize != 0 {
		t.Errorf("paging fields set without a continuation token: %v %d", result.PagingState, result.PageSize)
	}
}

func TestProcessResultSkipMetadata(t *testing.T) {
	rows := &Rows{
		Rows: [][][]byte{{{0, 0, 0, 1}}},
		Metadata: types.PreparedMetadata{Columns: []types.Column{
			types.NewColumn("id", types.TypeInt),
		}},
	}
	result, err := ProcessResult(context.Background(), rows, ResultParameters{SkipMetadata: true})
	if err != nil {
		t.Fatalf("ProcessResult returned error: %v", err)
	}
	if result.Columns != nil {
		t.Errorf("Columns = %v, want nil with SkipMetadata", result.Columns)
	}
	if len(result.Rows) != 1 {
		t.Errorf("len(Rows) = %d, want 1", len(result.Rows))
	}
}

func TestProcessResultPaging(t *testing.T) {
	token := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	rows := &Rows{
		Rows: [][][]byte{
			{{0, 0, 0, 1}},
			{{0, 0, 0, 2}},
			{{0, 0, 0, 3}},
		},
		Metadata: types.PreparedMetadata{Columns: []types.Column{
			types.NewColumn("id", types.TypeInt),
		}},
		PagingState: token,
	}
	result, err := ProcessResult(context.Background(), rows, ResultParameters{})
	if err != nil {
		t.Fatalf("ProcessResult returned error: %v", err)
	}
	if diff := cmp.Diff(token, result.PagingState); diff != "" {
		t.Errorf("paging state mismatch (-want +got):\n%s", diff)
	}
	if result.PageSize != 3 {
		t.Errorf("PageSize = %d, want the actual row count 3", result.PageSize)
	}
}

func TestProcessResultDecodeFailureIsInternal(t *testing.T) {
	rows := &Rows{
		Rows: [][][]byte{{{1, 2, 3}}},
		Metadata: types.PreparedMetadata{Columns: []types.Column{
			types.NewColumn("id", types.TypeInt),
		}},
	}
	_, err := ProcessResult(context.Background(), rows, ResultParameters{})
	wantKind(t, err, gatewayerr.KindInternal)
	if !strings.Contains(err.Error(), "column 'id'") {
		t.Errorf("error %q does not name the corrupt column", err)
	}
}

func TestProcessResultRowWidthMismatch(t *testing.T) {
	rows := &Rows{
		Rows: [][][]byte{{{0, 0, 0, 1}, {0, 0, 0, 2}}},
		Metadata: types.PreparedMetadata{Columns: []types.Column{
			types.NewColumn("id", types.TypeInt),
		}},
	}
	_, err := ProcessResult(context.Background(), rows, ResultParameters{})
	wantKind(t, err, gatewayerr.KindInternal)
}

func TestBindThenProjectRoundTrip(t *testing.T) {
	metadata := types.PreparedMetadata{Columns: []types.Column{
		types.NewColumn("tags", types.SetOf(types.TypeText)),
		types.NewColumn("scores", types.MapOf(types.TypeText, types.TypeInt)),
	}}
	values := []wire.Value{
		wire.Collection{Elements: []wire.Value{wire.Text("a"), wire.Text("b")}},
		wire.Collection{Elements: []wire.Value{wire.Text("x"), wire.Int(1)}},
	}
	bound, err := BindValues(context.Background(), &Prepared{Metadata: metadata}, &wire.Values{Values: values}, nil)
	if err != nil {
		t.Fatalf("BindValues returned error: %v", err)
	}
	result, err := ProcessResult(context.Background(), &Rows{
		Rows:     [][][]byte{bound.Values},
		Metadata: metadata,
	}, ResultParameters{SkipMetadata: true})
	if err != nil {
		t.Fatalf("ProcessResult returned error: %v", err)
	}
	if diff := cmp.Diff([][]wire.Value{values}, result.Rows); diff != "" {
		t.Errorf("bind/project round trip mismatch (-want +got):\n%s", diff)
	}
}
