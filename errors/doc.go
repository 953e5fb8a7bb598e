// Package errors provides structured error types for the ephemeris host.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). Failures reported by the ephemeris itself carry Kind
// KindNative, the export name and the library's diagnostic text.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseCall, errors.KindNative).
//		Func("swe_calc_ut").
//		Code(-1).
//		Detail("illegal planet number %d", 99).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Native("swe_calc", -1, serr)
//	err := errors.OutOfBounds(errors.PhaseDecode, ptr, 48)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
