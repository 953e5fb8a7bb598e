// Package fakeswe is an in-process stand-in for the ephemeris module. It
// honours the export signature table and the malloc/free contract, and
// answers a subset of exports with simplified astronomy, enough to
// exercise marshaling without the real binary.
package fakeswe

import (
	"context"
	"fmt"
	"sync"

	swisseph "github.com/wippyai/swisseph-wasm"
	"github.com/wippyai/swisseph-wasm/engine"
	"github.com/wippyai/swisseph-wasm/errors"
	"github.com/wippyai/swisseph-wasm/sweph"
	"github.com/wippyai/swisseph-wasm/transcoder"
)

// MemorySize is the size of the fake linear memory.
const MemorySize = 1 << 20

// Handler answers one export. Its results must match the export's result
// arity.
type Handler func(m *Module, args []uint64) []uint64

// Module implements sweph.Native.
type Module struct {
	mu       sync.Mutex
	mem      *Memory
	heap     *Heap
	sigs     map[string]engine.Signature
	handlers map[string]Handler
	traps    map[string]error
	calls    map[string]int
	args     map[string][]uint64

	statics    map[string]uint32
	staticNext uint32

	ephePath   string
	closeCalls int
	closed     bool
	noCatalog  bool
}

// New returns a module answering the default handlers.
func New() (*Module, error) {
	sigs, err := sweph.Signatures()
	if err != nil {
		return nil, err
	}
	mem := NewMemory(MemorySize)
	m := &Module{
		mem:        mem,
		heap:       NewHeap(mem),
		sigs:       make(map[string]engine.Signature, len(sigs)),
		handlers:   make(map[string]Handler),
		traps:      make(map[string]error),
		calls:      make(map[string]int),
		args:       make(map[string][]uint64),
		statics:    make(map[string]uint32),
		staticNext: 64,
	}
	for _, sig := range sigs {
		m.sigs[sig.Name] = sig
	}
	for _, set := range handlerSets {
		for name, h := range set {
			m.handlers[name] = h
		}
	}
	return m, nil
}

// Handle replaces the handler of one export.
func (m *Module) Handle(name string, h Handler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[name] = h
}

// Trap makes every call of name fail as a guest trap with cause.
func (m *Module) Trap(name string, cause error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.traps[name] = cause
}

func (m *Module) Call(_ context.Context, name string, params ...uint64) ([]uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, errors.Closed("module")
	}
	sig, ok := m.sigs[name]
	if !ok {
		return nil, errors.New(errors.PhaseCall, errors.KindMissingExport).
			Func(name).
			Detail("export not found").
			Build()
	}
	if len(params) != len(sig.Params) {
		return nil, errors.New(errors.PhaseCall, errors.KindSignature).
			Func(name).
			Detail("got %d params, want %d", len(params), len(sig.Params)).
			Build()
	}
	m.calls[name]++
	m.args[name] = append([]uint64(nil), params...)

	if cause := m.traps[name]; cause != nil {
		return nil, errors.Trap(name, cause)
	}
	h := m.handlers[name]
	if h == nil {
		return make([]uint64, len(sig.Results)), nil
	}
	res := h(m, params)
	if len(res) != len(sig.Results) {
		panic(fmt.Sprintf("fakeswe: %s handler returned %d results, want %d", name, len(res), len(sig.Results)))
	}
	return res, nil
}

func (m *Module) Memory() swisseph.Memory { return m.mem }

func (m *Module) Allocator() swisseph.Allocator { return m.heap }

func (m *Module) Close(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Heap exposes the allocator for leak checks.
func (m *Module) Heap() *Heap { return m.heap }

// Calls returns how many times name was invoked.
func (m *Module) Calls(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[name]
}

// Args returns the parameters of the last call of name.
func (m *Module) Args(name string) []uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]uint64(nil), m.args[name]...)
}

// RemoveStarCatalog makes the fixed star exports fail as if sefstars.txt
// were missing from the search path.
func (m *Module) RemoveStarCatalog() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.noCatalog = true
}

// EphePath returns the last path passed to swe_set_ephe_path.
func (m *Module) EphePath() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ephePath
}

// CloseCalls counts swe_close invocations.
func (m *Module) CloseCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closeCalls
}

// Closed reports whether the module itself was closed.
func (m *Module) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// static interns s below the heap, the way string literals live in a
// module's data section.
func (m *Module) static(s string) uint32 {
	if ptr, ok := m.statics[s]; ok {
		return ptr
	}
	ptr := m.staticNext
	if ptr+uint32(len(s))+1 > HeapBase {
		panic("fakeswe: static area exhausted")
	}
	m.writeString(ptr, s)
	m.staticNext += uint32(len(s)) + 1
	m.statics[s] = ptr
	return ptr
}

func (m *Module) writeString(ptr uint32, s string) {
	if ptr == 0 {
		return
	}
	_ = m.mem.Write(ptr, append([]byte(s), 0))
}

func (m *Module) readString(ptr uint32) string {
	if ptr == 0 {
		return ""
	}
	s, _ := transcoder.ReadCString(m.mem, ptr, 256)
	return s
}

func (m *Module) writeF64s(ptr uint32, vals ...float64) {
	if ptr == 0 {
		return
	}
	_ = transcoder.WriteF64s(m.mem, ptr, vals)
}

func (m *Module) readF64s(ptr uint32, n int) []float64 {
	v, _ := transcoder.ReadF64s(m.mem, ptr, n)
	return v
}

func (m *Module) writeI32(ptr uint32, v int32) {
	if ptr == 0 {
		return
	}
	_ = m.mem.WriteU32(ptr, uint32(v))
}
