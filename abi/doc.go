// Package abi copies string values between the host and WebAssembly linear
// memory using the canonical ABI string layout.
//
// A lowered string is a pointer and a length in code units: bytes for
// UTF-8, 16-bit units for UTF-16. Store and Load additionally read or write
// that (ptr, len) pair as two little-endian u32 values at a given address.
//
//	mem := abi.NewWazeroMemory(module.Memory())
//	alloc := abi.NewBumpAllocator(mem, 1024)
//
//	s := inlinable.From("hello")
//	ptr, n, err := abi.Lower(&s, mem, alloc, abi.DefaultOptions())
//
//	var back inlinable.String
//	err = abi.Lift(&back, mem, ptr, n, abi.DefaultOptions())
//
// Lifted content is validated before it is appended, so a malformed guest
// string never produces an invalid value.
package abi
