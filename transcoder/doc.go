// Package transcoder moves values between Go and the ephemeris module's
// linear memory.
//
// Native exports take scalars by value and everything else by pointer:
// output arrays (double xx[6], double cusps[13]), in/out geographic
// positions, NUL-terminated names and 256-byte diagnostic buffers. A
// Scratch owns the guest blocks for one call:
//
//	s := transcoder.NewScratch(mem, alloc)
//	defer s.Release()
//
//	xx, _ := s.F64s(6)
//	serr, _ := s.Bytes(256)
//	// call export with transcoder.Ptr(xx), transcoder.Ptr(serr)
//	vals, _ := transcoder.ReadF64s(mem, xx, 6)
//
// Release frees in reverse order and leaves Live() at zero whether the call
// succeeded or not.
//
// # Scalar Encoding
//
// Parameters and results travel as uint64 stack slots:
//
//	Type    Encode  Decode
//	───────────────────────
//	double  F64     AsF64
//	int32   I32     AsI32
//	ptr     Ptr     AsPtr
package transcoder
