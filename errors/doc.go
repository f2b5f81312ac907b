// Package errors provides structured error types for the inlinestr module.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the operation name, the offending byte offset and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseMutate, errors.KindCharBoundary).
//		Op("insert_str").
//		Index(2).
//		Detail("byte index %d is not a char boundary", 2).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.CharBoundary(errors.PhaseMutate, "truncate", 2)
//	err := errors.OutOfBounds(errors.PhaseInspect, "slice", 10, 5)
//
// Callers branch on the Kind, either through errors.Is with one of the
// Phase-less sentinels or through KindOf:
//
//	if errors.Is(err, errors.ErrCharBoundary) { ... }
//	switch errors.KindOf(err) { ... }
//
// Running out of Go heap memory is not reported through this package; like
// the runtime's own append, an allocation failure aborts the program.
package errors
