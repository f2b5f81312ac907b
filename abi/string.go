package abi

import (
	"fmt"

	"go.bytecodealliance.org/wit"
	"go.uber.org/zap"

	"github.com/wippyai/inlinestr"
	"github.com/wippyai/inlinestr/errors"
	"github.com/wippyai/inlinestr/internal/textbuf"
	"github.com/wippyai/inlinestr/internal/transcode"
)

// CheckType reports whether t is the WIT string type, following type
// aliases.
func CheckType(t wit.Type) error {
	switch t := t.(type) {
	case wit.String:
		return nil
	case *wit.TypeDef:
		if t == nil {
			return errors.TypeMismatch(errors.PhaseLower, "check_type", "nil", "string")
		}
		if k, ok := t.Kind.(wit.Type); ok {
			return CheckType(k)
		}
		return errors.TypeMismatch(errors.PhaseLower, "check_type", fmt.Sprintf("%T", t.Kind), "string")
	default:
		return errors.TypeMismatch(errors.PhaseLower, "check_type", fmt.Sprintf("%T", t), "string")
	}
}

// Lower copies s into freshly allocated guest memory and returns the
// pointer and the length in code units of opts.Encoding. An empty string
// lowers to (0, 0) without allocating.
func Lower(s inlinestr.StringExt, mem Memory, alloc Allocator, opts Options) (ptr, units uint32, err error) {
	if err := opts.check(errors.PhaseLower, "lower"); err != nil {
		return 0, 0, err
	}
	data := s.Bytes()
	if err := textbuf.Validate(errors.PhaseLower, "lower", data); err != nil {
		return 0, 0, err
	}
	if opts.Encoding == UTF16 {
		if data, err = transcode.EncodeUTF16LE(errors.PhaseLower, "lower", data); err != nil {
			return 0, 0, err
		}
	}

	if uint64(len(data)) > uint64(opts.limit()) {
		return 0, 0, errors.Overflow(errors.PhaseLower, "lower", len(data), opts.limit())
	}
	if len(data) == 0 {
		return 0, 0, nil
	}

	size, align := uint32(len(data)), opts.Encoding.unitSize()
	ptr, err = alloc.Alloc(size, align)
	if err != nil {
		return 0, 0, errors.New(errors.PhaseLower, errors.KindAllocation).
			Op("lower").
			Detail("failed to allocate %d bytes for string data", size).
			Cause(err).
			Build()
	}
	if err := mem.Write(ptr, data); err != nil {
		alloc.Free(ptr, size, align)
		return 0, 0, errors.Wrap(errors.PhaseLower, errors.KindOutOfBounds, err, "write string data")
	}
	if ce := Logger().Check(zap.DebugLevel, "lowered string"); ce != nil {
		ce.Write(zap.Uint32("ptr", ptr), zap.Uint32("size", size), zap.Stringer("encoding", opts.Encoding))
	}
	return ptr, size / align, nil
}

// Store lowers s and writes its (ptr, len) pair at addr.
func Store(addr uint32, s inlinestr.StringExt, mem Memory, alloc Allocator, opts Options) error {
	ptr, units, err := Lower(s, mem, alloc, opts)
	if err != nil {
		return err
	}
	if err := mem.WriteU32(addr, ptr); err != nil {
		release(alloc, ptr, units, opts)
		return errors.Wrap(errors.PhaseLower, errors.KindOutOfBounds, err, "write string pointer")
	}
	if err := mem.WriteU32(addr+4, units); err != nil {
		release(alloc, ptr, units, opts)
		return errors.Wrap(errors.PhaseLower, errors.KindOutOfBounds, err, "write string length")
	}
	return nil
}

func release(alloc Allocator, ptr, units uint32, opts Options) {
	if units == 0 {
		return
	}
	unit := opts.Encoding.unitSize()
	alloc.Free(ptr, units*unit, unit)
	Logger().Warn("released string data after failed store",
		zap.Uint32("ptr", ptr), zap.Uint32("size", units*unit))
}

// Lift reads units code units at ptr and appends them to dst. Malformed
// data fails with an encoding error and leaves dst unchanged unless
// opts.Lossy is set.
func Lift(dst inlinestr.StringExt, mem Memory, ptr, units uint32, opts Options) error {
	if err := opts.check(errors.PhaseLift, "lift"); err != nil {
		return err
	}
	if units == 0 {
		return nil
	}
	size := uint64(units) * uint64(opts.Encoding.unitSize())
	if size > uint64(opts.limit()) {
		return errors.Overflow(errors.PhaseLift, "lift", size, opts.limit())
	}
	raw, err := mem.Read(ptr, uint32(size))
	if err != nil {
		return errors.Wrap(errors.PhaseLift, errors.KindOutOfBounds, err, "read string data")
	}

	switch opts.Encoding {
	case UTF16:
		text, err := transcode.DecodeUTF16LE(errors.PhaseLift, "lift", raw, !opts.Lossy)
		if err != nil {
			return err
		}
		dst.PushBytesUnchecked(text)
	default:
		if err := textbuf.Validate(errors.PhaseLift, "lift", raw); err != nil {
			if !opts.Lossy {
				return err
			}
			Logger().Warn("replaced malformed UTF-8 from guest", zap.Uint32("ptr", ptr), zap.Uint32("len", units))
			raw = transcode.UTF8Lossy(raw)
		}
		dst.PushBytesUnchecked(raw)
	}
	return nil
}

// Load reads a (ptr, len) pair at addr and lifts the string it describes.
func Load(dst inlinestr.StringExt, addr uint32, mem Memory, opts Options) error {
	ptr, err := mem.ReadU32(addr)
	if err != nil {
		return errors.Wrap(errors.PhaseLift, errors.KindOutOfBounds, err, "read string pointer")
	}
	units, err := mem.ReadU32(addr + 4)
	if err != nil {
		return errors.Wrap(errors.PhaseLift, errors.KindOutOfBounds, err, "read string length")
	}
	return Lift(dst, mem, ptr, units, opts)
}
