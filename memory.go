package inlinestr

// Memory is a guest linear memory that string values are lowered into and
// lifted from.
type Memory interface {
	Read(offset uint32, length uint32) ([]byte, error)
	Write(offset uint32, data []byte) error
	ReadU32(offset uint32) (uint32, error)
	WriteU32(offset uint32, value uint32) error
}

// MemorySizer provides the current size of guest memory in bytes.
type MemorySizer interface {
	Size() uint32
}

// Allocator allocates guest memory. Alloc must report exhaustion as an
// error rather than returning a zero pointer.
type Allocator interface {
	Alloc(size, align uint32) (uint32, error)
	Free(ptr, size, align uint32)
}
