// Package errors provides structured error types for the bytecode module.
//
// Errors are categorized by Phase (where the error occurred) and Kind. There
// are three kinds:
//
//   - KindIncompleteInstruction: the input ended too early. Retryable.
//   - KindInvalidInstruction: the input can never decode.
//   - KindOther: descriptor build failures and every other condition.
//
// Decoders return the preallocated ErrIncompleteInstruction and
// ErrInvalidInstruction values unmodified, so callers can compare with
// errors.Is or use IsIncomplete, IsInvalid and Retryable.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseEncode, errors.KindOther).
//		Path("load", "reg").
//		GoType("string").
//		WireType("u8").
//		Detail("cannot convert string to integer").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.TypeMismatch(errors.PhaseEncode, path, "string", "u8")
//	err := errors.InvalidDescriptor("Opcode", "sum has %d variants", n)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
