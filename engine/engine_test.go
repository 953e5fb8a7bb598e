package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/tetratelabs/wazero/api"

	swerrors "github.com/wippyai/swisseph-wasm/errors"
)

var header = []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}

// memoryOnlyModule exports one page of memory and nothing else.
var memoryOnlyModule = concat(header,
	[]byte{0x05, 0x03, 0x01, 0x00, 0x01},
	[]byte{0x07, 0x0a, 0x01, 0x06, 'm', 'e', 'm', 'o', 'r', 'y', 0x02, 0x00},
)

// bumpModule exports memory, a bump malloc starting at 1024, a no-op free
// and double(f64) -> f64.
var bumpModule = concat(header,
	// types: (i32)->i32, (i32)->(), (f64)->f64
	[]byte{0x01, 0x0f, 0x03,
		0x60, 0x01, 0x7f, 0x01, 0x7f,
		0x60, 0x01, 0x7f, 0x00,
		0x60, 0x01, 0x7c, 0x01, 0x7c},
	[]byte{0x03, 0x04, 0x03, 0x00, 0x01, 0x02},
	[]byte{0x05, 0x03, 0x01, 0x00, 0x01},
	// global mut i32 = 1024
	[]byte{0x06, 0x07, 0x01, 0x7f, 0x01, 0x41, 0x80, 0x08, 0x0b},
	[]byte{0x07, 0x23, 0x04,
		0x06, 'm', 'e', 'm', 'o', 'r', 'y', 0x02, 0x00,
		0x06, 'm', 'a', 'l', 'l', 'o', 'c', 0x00, 0x00,
		0x04, 'f', 'r', 'e', 'e', 0x00, 0x01,
		0x06, 'd', 'o', 'u', 'b', 'l', 'e', 0x00, 0x02},
	[]byte{0x0a, 0x18, 0x03,
		0x0b, 0x00, 0x23, 0x00, 0x23, 0x00, 0x20, 0x00, 0x6a, 0x24, 0x00, 0x0b,
		0x02, 0x00, 0x0b,
		0x07, 0x00, 0x20, 0x00, 0x20, 0x00, 0xa0, 0x0b},
)

// envImportModule imports env.foo, which no host provides.
var envImportModule = concat(header,
	[]byte{0x01, 0x04, 0x01, 0x60, 0x00, 0x00},
	[]byte{0x02, 0x0b, 0x01, 0x03, 'e', 'n', 'v', 0x03, 'f', 'o', 'o', 0x00, 0x00},
)

func concat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func TestNewRejectsEmptyModule(t *testing.T) {
	_, err := New(context.Background(), nil, nil)
	if !errors.Is(err, &swerrors.Error{Phase: swerrors.PhaseLoad, Kind: swerrors.KindInvalidInput}) {
		t.Fatalf("expected invalid input error, got %v", err)
	}
}

func TestNewRejectsGarbage(t *testing.T) {
	_, err := New(context.Background(), []byte("not wasm"), nil)
	if !errors.Is(err, &swerrors.Error{Phase: swerrors.PhaseLoad, Kind: swerrors.KindInvalidData}) {
		t.Fatalf("expected load error, got %v", err)
	}
}

func TestUnknownImport(t *testing.T) {
	_, err := New(context.Background(), envImportModule, nil)
	if !errors.Is(err, &swerrors.Error{Phase: swerrors.PhaseLink, Kind: swerrors.KindUnsupported}) {
		t.Fatalf("expected link error, got %v", err)
	}
}

func TestMemoryOnlyModule(t *testing.T) {
	ctx := context.Background()
	e, err := New(ctx, memoryOnlyModule, &Config{MemoryLimitPages: 16})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer e.Close(ctx)

	mem := e.Memory()
	if err := mem.WriteF64(64, 2460111.0); err != nil {
		t.Fatalf("WriteF64: %v", err)
	}
	if v, err := mem.ReadF64(64); err != nil || v != 2460111.0 {
		t.Errorf("ReadF64 = %v, %v", v, err)
	}
	if err := mem.WriteU32(128, 0xdeadbeef); err != nil {
		t.Fatalf("WriteU32: %v", err)
	}
	if v, err := mem.ReadU32(128); err != nil || v != 0xdeadbeef {
		t.Errorf("ReadU32 = %#x, %v", v, err)
	}
	if err := mem.WriteU8(3, 'P'); err != nil {
		t.Fatalf("WriteU8: %v", err)
	}
	if v, _ := mem.ReadU8(3); v != 'P' {
		t.Errorf("ReadU8 = %q", v)
	}

	if _, err := mem.Read(65530, 16); !errors.Is(err, &swerrors.Error{Phase: swerrors.PhaseDecode, Kind: swerrors.KindOutOfBounds}) {
		t.Errorf("expected out of bounds, got %v", err)
	}
	if err := mem.Write(65535, []byte{1, 2}); err == nil {
		t.Error("expected write past end to fail")
	}

	if _, err := e.Allocator().Malloc(8); !errors.Is(err, &swerrors.Error{Phase: swerrors.PhaseEncode, Kind: swerrors.KindMissingExport}) {
		t.Errorf("expected missing allocator, got %v", err)
	}
	e.Allocator().Free(1024)

	if _, err := e.Call(ctx, "swe_julday"); !errors.Is(err, &swerrors.Error{Phase: swerrors.PhaseCall, Kind: swerrors.KindMissingExport}) {
		t.Errorf("expected missing export, got %v", err)
	}
	if e.HasExport("swe_julday") {
		t.Error("HasExport should be false")
	}
}

func TestAllocatorAndCall(t *testing.T) {
	ctx := context.Background()
	e, err := New(ctx, bumpModule, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer e.Close(ctx)

	alloc := e.Allocator()
	p1, err := alloc.Malloc(16)
	if err != nil {
		t.Fatalf("Malloc: %v", err)
	}
	p2, err := alloc.Malloc(8)
	if err != nil {
		t.Fatalf("Malloc: %v", err)
	}
	if p1 != 1024 || p2 != 1040 {
		t.Errorf("bump pointers = %d, %d, want 1024, 1040", p1, p2)
	}
	alloc.Free(p2)
	alloc.Free(p1)

	res, err := e.Call(ctx, "double", api.EncodeF64(2.25))
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if got := api.DecodeF64(res[0]); got != 4.5 {
		t.Errorf("double(2.25) = %v, want 4.5", got)
	}

	// cached lookup path
	if _, err := e.Call(ctx, "double", api.EncodeF64(1)); err != nil {
		t.Fatalf("second Call: %v", err)
	}

	names := e.Exports()
	want := []string{"double", "free", "malloc"}
	if len(names) != len(want) {
		t.Fatalf("Exports = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Exports[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestCloseIdempotent(t *testing.T) {
	ctx := context.Background()
	e, err := New(ctx, bumpModule, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := e.Close(ctx); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := e.Close(ctx); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if !e.Closed() {
		t.Error("Closed should report true")
	}

	_, err = e.Call(ctx, "double", api.EncodeF64(1))
	if !swerrors.IsClosed(err) {
		t.Errorf("Call after Close = %v, want closed error", err)
	}
	if e.HasExport("double") {
		t.Error("HasExport after Close should be false")
	}
}

func TestNewValidatesExports(t *testing.T) {
	ctx := context.Background()

	t.Run("matching", func(t *testing.T) {
		sigs, err := ParseSignatures(`
			malloc: func(size: u32) -> list<u8>;
			free: func(ptr: list<u8>);
			double: func(x: f64) -> f64;
		`)
		if err != nil {
			t.Fatalf("ParseSignatures: %v", err)
		}
		e, err := New(ctx, bumpModule, &Config{Exports: sigs})
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		e.Close(ctx)
	})

	t.Run("mismatch and missing", func(t *testing.T) {
		sigs, err := ParseSignatures(`
			double: func(x: s32) -> f64;
			swe_julday: func(y: s32, m: s32, d: s32, hour: f64, greg: s32) -> f64;
		`)
		if err != nil {
			t.Fatalf("ParseSignatures: %v", err)
		}
		_, err = New(ctx, bumpModule, &Config{Exports: sigs})
		if !errors.Is(err, &swerrors.Error{Phase: swerrors.PhaseValidate, Kind: swerrors.KindSignature}) {
			t.Fatalf("expected signature error, got %v", err)
		}

		var exportsErr *swerrors.ExportsError
		if !errors.As(err, &exportsErr) {
			t.Fatalf("expected ExportsError cause, got %v", err)
		}
		if len(exportsErr.Problems) != 2 {
			t.Fatalf("problems = %v, want 2", exportsErr.Problems)
		}
		if exportsErr.Problems[0].Name != "double" || exportsErr.Problems[0].Reason != "has (f64) -> f64 want (i32) -> f64" {
			t.Errorf("problem[0] = %+v", exportsErr.Problems[0])
		}
		if exportsErr.Problems[1].Name != "swe_julday" || exportsErr.Problems[1].Reason != "missing" {
			t.Errorf("problem[1] = %+v", exportsErr.Problems[1])
		}
	})
}
