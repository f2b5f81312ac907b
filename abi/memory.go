package abi

import (
	"fmt"

	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/inlinestr"
	"github.com/wippyai/inlinestr/errors"
)

type (
	Memory      = inlinestr.Memory
	Allocator   = inlinestr.Allocator
	MemorySizer = inlinestr.MemorySizer
)

var (
	_ Memory      = (*WazeroMemory)(nil)
	_ MemorySizer = (*WazeroMemory)(nil)
	_ Allocator   = (*BumpAllocator)(nil)
)

// WazeroMemory wraps wazero memory to implement Memory.
type WazeroMemory struct {
	mem api.Memory
}

// NewWazeroMemory adapts a module's exported memory.
func NewWazeroMemory(mem api.Memory) *WazeroMemory {
	return &WazeroMemory{mem: mem}
}

// Read returns a view of guest memory. It aliases the guest and is only
// valid until the guest next runs or memory grows.
func (m *WazeroMemory) Read(offset uint32, length uint32) ([]byte, error) {
	data, ok := m.mem.Read(offset, length)
	if !ok {
		return nil, fmt.Errorf("read out of bounds: offset=%d, length=%d", offset, length)
	}
	return data, nil
}

func (m *WazeroMemory) Write(offset uint32, data []byte) error {
	if !m.mem.Write(offset, data) {
		return fmt.Errorf("write out of bounds: offset=%d, length=%d", offset, len(data))
	}
	return nil
}

func (m *WazeroMemory) ReadU32(offset uint32) (uint32, error) {
	val, ok := m.mem.ReadUint32Le(offset)
	if !ok {
		return 0, fmt.Errorf("read out of bounds: offset=%d, length=4", offset)
	}
	return val, nil
}

func (m *WazeroMemory) WriteU32(offset uint32, value uint32) error {
	if !m.mem.WriteUint32Le(offset, value) {
		return fmt.Errorf("write out of bounds: offset=%d, length=4", offset)
	}
	return nil
}

func (m *WazeroMemory) Size() uint32 {
	return m.mem.Size()
}

// BumpAllocator hands out guest memory from base upward and never reuses
// it, except that freeing the most recent allocation rolls it back. It is
// meant for hosts that own a scratch region of guest memory.
type BumpAllocator struct {
	mem  MemorySizer
	next uint32
}

// NewBumpAllocator allocates from base up to the current size of mem.
func NewBumpAllocator(mem MemorySizer, base uint32) *BumpAllocator {
	return &BumpAllocator{mem: mem, next: base}
}

func (a *BumpAllocator) Alloc(size, align uint32) (uint32, error) {
	if align == 0 || align&(align-1) != 0 {
		return 0, errors.New(errors.PhaseLower, errors.KindInvalidInput).
			Op("alloc").
			Detail("alignment %d is not a power of two", align).
			Build()
	}
	ptr := alignTo(a.next, align)
	end := uint64(ptr) + uint64(size)
	if ptr < a.next || end > uint64(a.mem.Size()) {
		return 0, errors.AllocationFailed(errors.PhaseLower, size, align)
	}
	a.next = uint32(end)
	return ptr, nil
}

func (a *BumpAllocator) Free(ptr, size, _ uint32) {
	if ptr+size == a.next {
		a.next = ptr
	}
}

// Offset returns the next free address before alignment.
func (a *BumpAllocator) Offset() uint32 { return a.next }

func alignTo(offset, align uint32) uint32 {
	return (offset + align - 1) &^ (align - 1)
}
