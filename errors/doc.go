// Package errors provides structured error types for the msgpack-codec library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type includes rich context: the path into the value tree
// where the failure happened, the Go type of the offending value, and a cause
// chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseEncode, errors.KindInvalidInput).
//		Path("user", "avatar").
//		GoType("chan int").
//		Detail("type has no native encoding").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.NoRepresentation(path, "mypkg.Empty")
//	err := errors.TimeEncoding(path, cause)
//
// Errors of KindUsageFault are never returned: they are raised as panic values
// for unrecoverable programmer misuse of the encoder API.
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
