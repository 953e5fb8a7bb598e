package transcoder_test

import (
	"math"
	"testing"

	"github.com/wippyai/swisseph-wasm/internal/fakeswe"
	"github.com/wippyai/swisseph-wasm/transcoder"
)

func TestScalarRoundTrip(t *testing.T) {
	for _, v := range []float64{0, -1.5, 2451545.0, math.Inf(1), math.SmallestNonzeroFloat64} {
		if got := transcoder.AsF64(transcoder.F64(v)); got != v {
			t.Errorf("f64 %v -> %v", v, got)
		}
	}
	for _, v := range []int32{0, -1, -2, math.MaxInt32, math.MinInt32} {
		if got := transcoder.AsI32(transcoder.I32(v)); got != v {
			t.Errorf("i32 %v -> %v", v, got)
		}
	}
	if got := transcoder.AsPtr(transcoder.Ptr(0xfffffff0)); got != 0xfffffff0 {
		t.Errorf("ptr -> %#x", got)
	}
}

func TestArrays(t *testing.T) {
	mem := fakeswe.NewMemory(4096)

	in := []float64{69.79, -5.47, 1e7, 0.0001, 0, -0}
	if err := transcoder.WriteF64s(mem, 128, in); err != nil {
		t.Fatal(err)
	}
	out, err := transcoder.ReadF64s(mem, 128, len(in))
	if err != nil {
		t.Fatal(err)
	}
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("[%d] = %v, want %v", i, out[i], in[i])
		}
	}

	for i, v := range []int32{2000, 1, -3} {
		if err := mem.WriteU32(512+uint32(i*4), uint32(v)); err != nil {
			t.Fatal(err)
		}
	}
	ints, err := transcoder.ReadI32s(mem, 512, 3)
	if err != nil {
		t.Fatal(err)
	}
	if ints[0] != 2000 || ints[1] != 1 || ints[2] != -3 {
		t.Errorf("got %v", ints)
	}

	if _, err := transcoder.ReadF64s(mem, 4090, 1); err == nil {
		t.Error("expected out of bounds")
	}
	if err := transcoder.WriteF64s(mem, 4090, []float64{1}); err == nil {
		t.Error("expected out of bounds")
	}
}

func TestReadCString(t *testing.T) {
	mem := fakeswe.NewMemory(256)
	if err := mem.Write(16, []byte("Lahiri\x00garbage")); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		ptr  uint32
		max  int
		want string
	}{
		{"terminated", 16, 64, "Lahiri"},
		{"truncated at max", 16, 3, "Lah"},
		{"near end of memory", 250, 64, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := transcoder.ReadCString(mem, tt.ptr, tt.max)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}

	if _, err := transcoder.ReadCString(mem, 0, 16); err == nil {
		t.Error("null pointer should fail")
	}
	if _, err := transcoder.ReadCString(mem, 300, 16); err == nil {
		t.Error("pointer past memory should fail")
	}
}
