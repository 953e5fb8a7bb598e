package fakeswe

import (
	"encoding/binary"
	"math"
	"sync"

	"github.com/wippyai/swisseph-wasm/errors"
)

// Memory is a fixed-size linear memory backed by a byte slice.
type Memory struct {
	buf []byte
}

func NewMemory(size uint32) *Memory {
	return &Memory{buf: make([]byte, size)}
}

func (m *Memory) bounds(offset, length uint32) error {
	if uint64(offset)+uint64(length) > uint64(len(m.buf)) {
		return errors.OutOfBounds(errors.PhaseDecode, offset, length)
	}
	return nil
}

func (m *Memory) Read(offset, length uint32) ([]byte, error) {
	if err := m.bounds(offset, length); err != nil {
		return nil, err
	}
	out := make([]byte, length)
	copy(out, m.buf[offset:])
	return out, nil
}

func (m *Memory) Write(offset uint32, data []byte) error {
	if err := m.bounds(offset, uint32(len(data))); err != nil {
		return err
	}
	copy(m.buf[offset:], data)
	return nil
}

func (m *Memory) ReadU8(offset uint32) (uint8, error) {
	if err := m.bounds(offset, 1); err != nil {
		return 0, err
	}
	return m.buf[offset], nil
}

func (m *Memory) ReadU32(offset uint32) (uint32, error) {
	if err := m.bounds(offset, 4); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(m.buf[offset:]), nil
}

func (m *Memory) ReadF64(offset uint32) (float64, error) {
	if err := m.bounds(offset, 8); err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(m.buf[offset:])), nil
}

func (m *Memory) WriteU8(offset uint32, value uint8) error {
	if err := m.bounds(offset, 1); err != nil {
		return err
	}
	m.buf[offset] = value
	return nil
}

func (m *Memory) WriteU32(offset uint32, value uint32) error {
	if err := m.bounds(offset, 4); err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(m.buf[offset:], value)
	return nil
}

func (m *Memory) WriteF64(offset uint32, value float64) error {
	if err := m.bounds(offset, 8); err != nil {
		return err
	}
	binary.LittleEndian.PutUint64(m.buf[offset:], math.Float64bits(value))
	return nil
}

func (m *Memory) Size() uint32 {
	return uint32(len(m.buf))
}

// Heap is a bump allocator that tracks live blocks. Freed blocks are not
// reused, so a stale pointer never aliases a newer allocation.
type Heap struct {
	mu        sync.Mutex
	mem       *Memory
	next      uint32
	live      map[uint32]uint32
	badFrees  int
	failAfter int
	mallocs   int
	peak      int
}

// HeapBase is the first address the heap hands out. Memory below it holds
// static strings.
const HeapBase = 4096

func NewHeap(mem *Memory) *Heap {
	return &Heap{
		mem:       mem,
		next:      HeapBase,
		live:      make(map[uint32]uint32),
		failAfter: -1,
	}
}

func (h *Heap) Malloc(size uint32) (uint32, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.failAfter == 0 {
		return 0, nil
	}
	if h.failAfter > 0 {
		h.failAfter--
	}

	ptr := (h.next + 7) &^ 7
	if uint64(ptr)+uint64(size) > uint64(h.mem.Size()) {
		return 0, nil
	}
	h.next = ptr + size
	h.live[ptr] = size
	h.mallocs++
	h.peak = max(h.peak, len(h.live))
	return ptr, nil
}

func (h *Heap) Free(ptr uint32) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if ptr == 0 {
		return
	}
	if _, ok := h.live[ptr]; !ok {
		h.badFrees++
		return
	}
	delete(h.live, ptr)
}

// Live returns the number of blocks allocated and not freed.
func (h *Heap) Live() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.live)
}

// Peak returns the most blocks that were ever live at once.
func (h *Heap) Peak() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.peak
}

// BadFrees counts frees of pointers that were not live: double frees and
// frees of foreign pointers.
func (h *Heap) BadFrees() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.badFrees
}

// Mallocs counts successful allocations.
func (h *Heap) Mallocs() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.mallocs
}

// FailAfter makes every allocation after the next n return a null pointer.
// A negative n disables the failure.
func (h *Heap) FailAfter(n int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.failAfter = n
}
