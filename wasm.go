package swisseph

// Memory is the guest's linear memory as seen by the marshaling layer.
// All multi-byte values are little-endian, matching wasm32.
type Memory interface {
	Read(offset uint32, length uint32) ([]byte, error)
	Write(offset uint32, data []byte) error
	ReadU8(offset uint32) (uint8, error)
	ReadU32(offset uint32) (uint32, error)
	ReadF64(offset uint32) (float64, error)
	WriteU8(offset uint32, value uint8) error
	WriteU32(offset uint32, value uint32) error
	WriteF64(offset uint32, value float64) error
}

// MemorySizer provides the current size of linear memory in bytes.
type MemorySizer interface {
	Size() uint32
}

// Allocator hands out guest heap blocks through the module's own
// malloc/free exports. Ptr 0 is never a valid block.
type Allocator interface {
	Malloc(size uint32) (uint32, error)
	Free(ptr uint32)
}
