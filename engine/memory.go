package engine

import (
	"context"
	"sync"

	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/swisseph-wasm/errors"
)

// Memory adapts wazero's api.Memory to swisseph.Memory.
type Memory struct {
	mem api.Memory
}

func (m *Memory) Read(offset uint32, length uint32) ([]byte, error) {
	data, ok := m.mem.Read(offset, length)
	if !ok {
		return nil, errors.OutOfBounds(errors.PhaseDecode, offset, length)
	}
	return data, nil
}

func (m *Memory) Write(offset uint32, data []byte) error {
	if !m.mem.Write(offset, data) {
		return errors.OutOfBounds(errors.PhaseEncode, offset, uint32(len(data)))
	}
	return nil
}

func (m *Memory) ReadU8(offset uint32) (uint8, error) {
	v, ok := m.mem.ReadByte(offset)
	if !ok {
		return 0, errors.OutOfBounds(errors.PhaseDecode, offset, 1)
	}
	return v, nil
}

func (m *Memory) ReadU32(offset uint32) (uint32, error) {
	v, ok := m.mem.ReadUint32Le(offset)
	if !ok {
		return 0, errors.OutOfBounds(errors.PhaseDecode, offset, 4)
	}
	return v, nil
}

func (m *Memory) ReadF64(offset uint32) (float64, error) {
	v, ok := m.mem.ReadFloat64Le(offset)
	if !ok {
		return 0, errors.OutOfBounds(errors.PhaseDecode, offset, 8)
	}
	return v, nil
}

func (m *Memory) WriteU8(offset uint32, value uint8) error {
	if !m.mem.WriteByte(offset, value) {
		return errors.OutOfBounds(errors.PhaseEncode, offset, 1)
	}
	return nil
}

func (m *Memory) WriteU32(offset uint32, value uint32) error {
	if !m.mem.WriteUint32Le(offset, value) {
		return errors.OutOfBounds(errors.PhaseEncode, offset, 4)
	}
	return nil
}

func (m *Memory) WriteF64(offset uint32, value float64) error {
	if !m.mem.WriteFloat64Le(offset, value) {
		return errors.OutOfBounds(errors.PhaseEncode, offset, 8)
	}
	return nil
}

// Size returns the current memory size in bytes.
func (m *Memory) Size() uint32 {
	return m.mem.Size()
}

// Allocator calls the guest's malloc and free exports. Guest heap calls
// always run under context.Background so a cancelled request cannot leave
// the heap half-updated.
type Allocator struct {
	mallocFn api.Function
	freeFn   api.Function
	stackBuf []uint64
	mu       sync.Mutex
}

func (a *Allocator) Malloc(size uint32) (uint32, error) {
	if a.mallocFn == nil {
		return 0, errors.New(errors.PhaseEncode, errors.KindMissingExport).
			Func(ExportMalloc).
			Detail("module does not export an allocator").
			Build()
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.stackBuf[0] = api.EncodeU32(size)
	if err := a.mallocFn.CallWithStack(context.Background(), a.stackBuf[:1]); err != nil {
		return 0, errors.Trap(ExportMalloc, err)
	}
	ptr := api.DecodeU32(a.stackBuf[0])
	if ptr == 0 {
		return 0, errors.AllocationFailed(errors.PhaseEncode, size, nil)
	}
	return ptr, nil
}

func (a *Allocator) Free(ptr uint32) {
	if a.freeFn == nil || ptr == 0 {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.stackBuf[0] = api.EncodeU32(ptr)
	if err := a.freeFn.CallWithStack(context.Background(), a.stackBuf[:1]); err != nil {
		Logger().Warn("free failed",
			zap.Uint32("ptr", ptr),
			zap.Error(err))
	}
}
