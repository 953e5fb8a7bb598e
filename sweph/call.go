package sweph

import (
	"context"

	"go.uber.org/zap"

	"github.com/wippyai/swisseph-wasm/errors"
	"github.com/wippyai/swisseph-wasm/transcoder"
)

// serrSize is the diagnostic buffer every fallible export writes into.
const serrSize = 256

// call carries one native invocation: its scratch, its diagnostic buffer
// and the first error hit. Every step is a no-op once err is set, so a
// method reads top to bottom and checks err once.
type call struct {
	s    *SwissEph
	sc   *transcoder.Scratch
	name string
	serr uint32
	err  error
}

func (s *SwissEph) begin(name string) *call {
	c := &call{s: s, name: name}
	if c.err = s.check(); c.err == nil {
		c.sc = s.scratch
	}
	return c
}

// end releases every block the call allocated.
func (c *call) end() {
	if c.sc != nil {
		c.sc.Release()
	}
}

func (c *call) f64s(n int) uint32 {
	if c.err != nil {
		return 0
	}
	ptr, err := c.sc.F64s(n)
	c.err = err
	return ptr
}

func (c *call) i32s(n int) uint32 {
	if c.err != nil {
		return 0
	}
	ptr, err := c.sc.I32s(n)
	c.err = err
	return ptr
}

func (c *call) bytes(n int) uint32 {
	if c.err != nil {
		return 0
	}
	ptr, err := c.sc.Bytes(n)
	c.err = err
	return ptr
}

func (c *call) put(vals ...float64) uint32 {
	if c.err != nil {
		return 0
	}
	ptr, err := c.sc.PutF64s(vals...)
	c.err = err
	return ptr
}

func (c *call) cstring(str string) uint32 {
	if c.err != nil {
		return 0
	}
	ptr, err := c.sc.CString(str)
	c.err = err
	return ptr
}

// cbuf copies str into a size-byte buffer the library may rewrite.
func (c *call) cbuf(str string, size int) uint32 {
	if c.err != nil {
		return 0
	}
	ptr, err := c.sc.CStringBuf(str, size)
	c.err = err
	return ptr
}

// errBuf allocates the diagnostic buffer.
func (c *call) errBuf() uint32 {
	c.serr = c.bytes(serrSize)
	return c.serr
}

func (c *call) invoke(ctx context.Context, params ...uint64) []uint64 {
	if c.err != nil {
		return nil
	}
	res, err := c.s.native.Call(ctx, c.name, params...)
	if err != nil {
		c.err = err
		return nil
	}
	return res
}

func (c *call) result(ctx context.Context, params ...uint64) uint64 {
	res := c.invoke(ctx, params...)
	if c.err != nil {
		return 0
	}
	if len(res) == 0 {
		c.err = errors.New(errors.PhaseDecode, errors.KindInvalidData).
			Func(c.name).
			Detail("export returned no value").
			Build()
		return 0
	}
	return res[0]
}

func (c *call) f64(ctx context.Context, params ...uint64) float64 {
	return transcoder.AsF64(c.result(ctx, params...))
}

func (c *call) i32(ctx context.Context, params ...uint64) int32 {
	return transcoder.AsI32(c.result(ctx, params...))
}

func (c *call) ptr(ctx context.Context, params ...uint64) uint32 {
	return transcoder.AsPtr(c.result(ctx, params...))
}

// status turns a negative return into a native error carrying the
// library's diagnostic.
func (c *call) status(rc int32) {
	if c.err == nil && rc < 0 {
		c.err = errors.Native(c.name, rc, c.message())
	}
}

// message reads the diagnostic buffer, or "" when there is none.
func (c *call) message() string {
	if c.serr == 0 || c.sc == nil {
		return ""
	}
	msg, err := transcoder.ReadCString(c.sc.Memory(), c.serr, serrSize)
	if err != nil {
		return ""
	}
	return msg
}

// noResult logs why the call produced nothing.
func (c *call) noResult(rc int32) {
	c.s.log.Debug("no result",
		zap.String("func", c.name),
		zap.Int32("status", rc),
		zap.String("serr", c.message()))
}

// warnings logs a diagnostic the library left on a successful call, such
// as a fallback to the Moshier ephemeris.
func (c *call) warnings() {
	if c.err != nil {
		return
	}
	if msg := c.message(); msg != "" {
		c.s.log.Debug("native warning", zap.String("func", c.name), zap.String("serr", msg))
	}
}

func (c *call) readF64s(ptr uint32, n int) []float64 {
	if c.err != nil {
		return nil
	}
	vals, err := transcoder.ReadF64s(c.sc.Memory(), ptr, n)
	c.err = err
	return vals
}

func (c *call) readI32s(ptr uint32, n int) []int32 {
	if c.err != nil {
		return nil
	}
	vals, err := transcoder.ReadI32s(c.sc.Memory(), ptr, n)
	c.err = err
	return vals
}

func (c *call) readF64(ptr uint32) float64 {
	vals := c.readF64s(ptr, 1)
	if c.err != nil {
		return 0
	}
	return vals[0]
}

func (c *call) readI32(ptr uint32) int32 {
	vals := c.readI32s(ptr, 1)
	if c.err != nil {
		return 0
	}
	return vals[0]
}

func (c *call) readString(ptr uint32, max int) string {
	if c.err != nil {
		return ""
	}
	str, err := transcoder.ReadCString(c.sc.Memory(), ptr, max)
	c.err = err
	return str
}

func boolArg(v bool) int32 {
	if v {
		return 1
	}
	return 0
}
