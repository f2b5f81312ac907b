// Package inlinable provides String, a growable UTF-8 string that keeps
// short content inside its own footprint and moves to the heap only when
// the content outgrows it.
//
// # Representation
//
// A String occupies exactly the space of a []byte header: one pointer and
// two words. While the pointer is nil the two words hold up to
// inline.Capacity bytes of content plus a length byte (the Inline state).
// Once content needs more room the String allocates a buffer and the two
// words become its length and capacity (the Heap state).
//
//	var s inlinable.String    // inline, len 0
//	s.PushStr("hello")        // still inline
//	s.PushStr(" world, this is long")
//	s.IsInline()              // false
//
// Promotion is one-way. Shrinking content, ShrinkToFit and Clear keep a
// heap String on the heap; a fresh value starts inline again.
//
// # Values and copies
//
// Like a slice, assigning a String copies the header. A heap String copied
// this way shares its buffer with the original, so mutate only one of them
// or take an independent copy with Clone.
//
// # Errors
//
// Offsets are byte offsets. Operations taking an offset or range validate it
// before touching the value and report failures as *errors.Error with kind
// out_of_bounds or char_boundary; on error the value is unchanged. Running
// out of memory is not an error value: the Go runtime aborts.
//
// # Logging
//
// Promotions are logged at debug level through Logger, which discards
// everything until SetLogger installs a real logger.
package inlinable
