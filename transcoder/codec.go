package transcoder

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/tetratelabs/wazero/api"

	swisseph "github.com/wippyai/swisseph-wasm"
	"github.com/wippyai/swisseph-wasm/errors"
)

// F64 encodes a double parameter.
func F64(v float64) uint64 { return api.EncodeF64(v) }

// I32 encodes a signed 32-bit parameter.
func I32(v int32) uint64 { return api.EncodeI32(v) }

// Ptr encodes a guest pointer parameter.
func Ptr(p uint32) uint64 { return api.EncodeU32(p) }

// AsF64 decodes a double result.
func AsF64(v uint64) float64 { return api.DecodeF64(v) }

// AsI32 decodes a signed 32-bit result.
func AsI32(v uint64) int32 { return api.DecodeI32(v) }

// AsPtr decodes a pointer result.
func AsPtr(v uint64) uint32 { return api.DecodeU32(v) }

// ReadF64s reads n little-endian doubles starting at ptr.
func ReadF64s(mem Memory, ptr uint32, n int) ([]float64, error) {
	data, err := mem.Read(ptr, uint32(n*sizeF64))
	if err != nil {
		return nil, errors.Wrap(errors.PhaseDecode, errors.KindOutOfBounds, err, "read f64 array")
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Float64frombits(binary.LittleEndian.Uint64(data[i*sizeF64:]))
	}
	return out, nil
}

// WriteF64s writes vals as little-endian doubles starting at ptr.
func WriteF64s(mem Memory, ptr uint32, vals []float64) error {
	buf := make([]byte, len(vals)*sizeF64)
	for i, v := range vals {
		binary.LittleEndian.PutUint64(buf[i*sizeF64:], math.Float64bits(v))
	}
	if err := mem.Write(ptr, buf); err != nil {
		return errors.Wrap(errors.PhaseEncode, errors.KindOutOfBounds, err, "write f64 array")
	}
	return nil
}

// ReadI32s reads n little-endian signed integers starting at ptr.
func ReadI32s(mem Memory, ptr uint32, n int) ([]int32, error) {
	data, err := mem.Read(ptr, uint32(n*sizeI32))
	if err != nil {
		return nil, errors.Wrap(errors.PhaseDecode, errors.KindOutOfBounds, err, "read i32 array")
	}
	out := make([]int32, n)
	for i := range out {
		out[i] = int32(binary.LittleEndian.Uint32(data[i*sizeI32:]))
	}
	return out, nil
}

// ReadCString reads a NUL-terminated string of at most max bytes. A string
// that fills max without a terminator is returned truncated.
func ReadCString(mem Memory, ptr uint32, max int) (string, error) {
	if ptr == 0 {
		return "", errors.InvalidInput(errors.PhaseDecode, "null string pointer")
	}
	data, err := mem.Read(ptr, uint32(max))
	if err != nil {
		// static strings may sit closer than max to the end of memory
		if sizer, ok := mem.(swisseph.MemorySizer); ok && ptr < sizer.Size() {
			data, err = mem.Read(ptr, sizer.Size()-ptr)
		}
		if err != nil {
			return "", errors.Wrap(errors.PhaseDecode, errors.KindOutOfBounds, err, "read string")
		}
	}
	if i := bytes.IndexByte(data, 0); i >= 0 {
		data = data[:i]
	}
	return string(data), nil
}
