package transcoder

import (
	swisseph "github.com/wippyai/swisseph-wasm"
	"github.com/wippyai/swisseph-wasm/errors"
)

type Memory = swisseph.Memory
type Allocator = swisseph.Allocator

const (
	sizeF64 = 8
	sizeI32 = 4
)

type Allocation struct {
	Ptr  uint32
	Size uint32
}

// Scratch tracks guest blocks allocated for a single native call.
// Release frees every block exactly once; the Scratch may be reused after.
// Not safe for concurrent use.
type Scratch struct {
	mem         Memory
	alloc       Allocator
	allocations []Allocation
}

func NewScratch(mem Memory, alloc Allocator) *Scratch {
	return &Scratch{
		mem:         mem,
		alloc:       alloc,
		allocations: make([]Allocation, 0, 8),
	}
}

// Memory returns the guest memory scratch blocks live in.
func (s *Scratch) Memory() Memory {
	return s.mem
}

// Bytes allocates n zeroed bytes.
func (s *Scratch) Bytes(n int) (uint32, error) {
	if n <= 0 {
		return 0, errors.InvalidInput(errors.PhaseEncode, "scratch size must be positive")
	}
	size := uint32(n)
	ptr, err := s.alloc.Malloc(size)
	if err != nil {
		return 0, errors.AllocationFailed(errors.PhaseEncode, size, err)
	}
	if ptr == 0 {
		return 0, errors.AllocationFailed(errors.PhaseEncode, size, nil)
	}
	s.allocations = append(s.allocations, Allocation{Ptr: ptr, Size: size})

	// malloc does not clear; outputs the library leaves untouched must read as zero
	if err := s.mem.Write(ptr, make([]byte, size)); err != nil {
		return 0, errors.Wrap(errors.PhaseEncode, errors.KindOutOfBounds, err, "clear scratch")
	}
	return ptr, nil
}

// F64s allocates room for n doubles.
func (s *Scratch) F64s(n int) (uint32, error) {
	return s.Bytes(n * sizeF64)
}

// I32s allocates room for n 32-bit integers.
func (s *Scratch) I32s(n int) (uint32, error) {
	return s.Bytes(n * sizeI32)
}

// PutF64s allocates and fills a double array, for in/out parameters such
// as geographic positions.
func (s *Scratch) PutF64s(vals ...float64) (uint32, error) {
	ptr, err := s.F64s(len(vals))
	if err != nil {
		return 0, err
	}
	if err := WriteF64s(s.mem, ptr, vals); err != nil {
		return 0, err
	}
	return ptr, nil
}

// CString copies str into guest memory with a NUL terminator.
func (s *Scratch) CString(str string) (uint32, error) {
	return s.CStringBuf(str, len(str)+1)
}

// CStringBuf copies str into a buffer of size bytes. Used for in/out string
// parameters the library may rewrite, such as star names.
func (s *Scratch) CStringBuf(str string, size int) (uint32, error) {
	for i := 0; i < len(str); i++ {
		if str[i] == 0 {
			return 0, errors.New(errors.PhaseEncode, errors.KindInvalidInput).
				Value(str).
				Detail("string contains NUL at byte %d", i).
				Build()
		}
	}
	if len(str)+1 > size {
		return 0, errors.New(errors.PhaseEncode, errors.KindInvalidInput).
			Value(str).
			Detail("string of %d bytes does not fit buffer of %d", len(str), size).
			Build()
	}
	ptr, err := s.Bytes(size)
	if err != nil {
		return 0, err
	}
	if len(str) > 0 {
		if err := s.mem.Write(ptr, []byte(str)); err != nil {
			return 0, errors.Wrap(errors.PhaseEncode, errors.KindOutOfBounds, err, "write string")
		}
	}
	return ptr, nil
}

// Live reports how many blocks are allocated and not yet released.
func (s *Scratch) Live() int {
	return len(s.allocations)
}

// Release frees every outstanding block in reverse allocation order.
func (s *Scratch) Release() {
	for i := len(s.allocations) - 1; i >= 0; i-- {
		s.alloc.Free(s.allocations[i].Ptr)
	}
	s.allocations = s.allocations[:0]
}
