package errors

import (
	stderrors "errors"
	"fmt"
	"sort"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseLoad      Phase = "load"      // module compilation
	PhaseLink      Phase = "link"      // host import wiring
	PhaseValidate  Phase = "validate"  // export signature checks
	PhaseEncode    Phase = "encode"    // Go to guest memory
	PhaseDecode    Phase = "decode"    // guest memory to Go
	PhaseCall      Phase = "call"      // native export invocation
	PhaseLifecycle Phase = "lifecycle" // open/close
	PhaseConfig    Phase = "config"    // configuration loading
	PhaseParse     Phase = "parse"     // signature table and input parsing
	PhaseData      Phase = "data"      // ephemeris data files
)

// Kind categorizes the error
type Kind string

const (
	KindInvalidData    Kind = "invalid_data"
	KindInvalidInput   Kind = "invalid_input"
	KindUnsupported    Kind = "unsupported"
	KindAllocation     Kind = "allocation"
	KindOutOfBounds    Kind = "out_of_bounds"
	KindNotFound       Kind = "not_found"
	KindNotInitialized Kind = "not_initialized"
	KindInstantiation  Kind = "instantiation"
	KindMissingExport  Kind = "missing_export"
	KindSignature      Kind = "signature"
	KindNative         Kind = "native" // negative status from the ephemeris
	KindTrap           Kind = "trap"
	KindClosed         Kind = "closed"
)

// Error is the structured error type used throughout the module
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Func   string // native export involved, if any
	Detail string
	Code   int32 // native status; meaningful only for KindNative
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Func != "" {
		b.WriteString(" in ")
		b.WriteString(e.Func)
		if e.Kind == KindNative {
			fmt.Fprintf(&b, " (status %d)", e.Code)
		}
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Func sets the native export name
func (b *Builder) Func(name string) *Builder {
	b.err.Func = name
	return b
}

// Code sets the native status code
func (b *Builder) Code(code int32) *Builder {
	b.err.Code = code
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Native creates the error for a negative status returned by an export.
// msg is the diagnostic the library wrote into its serr buffer; it may be
// empty when the export has no such buffer.
func Native(fn string, code int32, msg string) *Error {
	if msg == "" {
		msg = "native call failed"
	}
	return &Error{
		Phase:  PhaseCall,
		Kind:   KindNative,
		Func:   fn,
		Code:   code,
		Detail: msg,
	}
}

// Trap creates an error for a guest trap or host failure during a call
func Trap(fn string, cause error) *Error {
	return &Error{
		Phase:  PhaseCall,
		Kind:   KindTrap,
		Func:   fn,
		Detail: "call aborted",
		Cause:  cause,
	}
}

// Closed creates the error returned by operations on a closed handle
func Closed(what string) *Error {
	return &Error{
		Phase:  PhaseLifecycle,
		Kind:   KindClosed,
		Detail: fmt.Sprintf("%s is closed", what),
	}
}

// AllocationFailed creates an allocation failure error
func AllocationFailed(phase Phase, size uint32, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindAllocation,
		Detail: fmt.Sprintf("failed to allocate %d bytes", size),
		Value:  size,
		Cause:  cause,
	}
}

// OutOfBounds creates a guest memory access error
func OutOfBounds(phase Phase, offset, length uint32) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Detail: fmt.Sprintf("memory access out of bounds: offset=%d, length=%d", offset, length),
		Value:  offset,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// NotInitialized creates a not-initialized error for missing module/instance
func NotInitialized(phase Phase, component string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotInitialized,
		Detail: fmt.Sprintf("%s not initialized", component),
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Instantiation creates an instantiation error
func Instantiation(cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInstantiation,
		Detail: "instantiate module",
		Cause:  cause,
	}
}

// Load creates a module loading error
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInvalidData,
		Detail: detail,
		Cause:  cause,
	}
}

// ParseFailed creates a parsing error
func ParseFailed(what string, cause error) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindInvalidData,
		Detail: fmt.Sprintf("parse %s", what),
		Cause:  cause,
	}
}

// IsNative reports whether err carries a negative status from the library.
func IsNative(err error) bool {
	return stderrors.Is(err, &Error{Phase: PhaseCall, Kind: KindNative})
}

// IsClosed reports whether err was caused by using a closed handle.
func IsClosed(err error) bool {
	return stderrors.Is(err, &Error{Phase: PhaseLifecycle, Kind: KindClosed})
}

// ExportProblem describes one export that does not match the expected
// signature table.
type ExportProblem struct {
	Name   string // export name, e.g. "swe_calc_ut"
	Reason string // "missing" or a signature description
}

// ExportsError is returned when a module lacks required exports or exposes
// them with the wrong core types.
type ExportsError struct {
	Problems []ExportProblem
}

// NewExportsError creates an error from a map of export name to reason
func NewExportsError(problems map[string]string) *ExportsError {
	names := make([]string, 0, len(problems))
	for name := range problems {
		names = append(names, name)
	}
	sort.Strings(names)

	result := &ExportsError{
		Problems: make([]ExportProblem, 0, len(problems)),
	}
	for _, name := range names {
		result.Problems = append(result.Problems, ExportProblem{
			Name:   name,
			Reason: problems[name],
		})
	}
	return result
}

func (e *ExportsError) Error() string {
	if len(e.Problems) == 0 {
		return "[validate] signature: no problems specified"
	}

	var missing, mismatched []ExportProblem
	for _, p := range e.Problems {
		if p.Reason == "missing" {
			missing = append(missing, p)
		} else {
			mismatched = append(mismatched, p)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "module does not satisfy %d export(s):", len(e.Problems))
	if len(missing) > 0 {
		b.WriteString("\n  missing:")
		for _, p := range missing {
			b.WriteString("\n    - ")
			b.WriteString(p.Name)
		}
	}
	if len(mismatched) > 0 {
		b.WriteString("\n  mismatched:")
		for _, p := range mismatched {
			b.WriteString("\n    - ")
			b.WriteString(p.Name)
			b.WriteString(": ")
			b.WriteString(p.Reason)
		}
	}
	return b.String()
}

// Is reports whether target matches this error type
func (e *ExportsError) Is(target error) bool {
	_, ok := target.(*ExportsError)
	return ok
}
