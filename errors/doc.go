// Package errors provides structured error types for binding generation.
//
// Errors are categorized by Phase (which generation stage failed) and Kind
// (error category). Every generation-time error is fatal: the generator
// aborts the whole run instead of emitting a partially consistent module.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseEmit, errors.KindUnsupported).
//		Path("wasi:http/types@0.2.0", "handle").
//		WitType("future<u32>").
//		Detail("async types are not supported").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.DirectionConflict("counter", "import", "export")
//	err := errors.NameCollision("foo", "exported as both function and interface")
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
