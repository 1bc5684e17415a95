package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseBuild   Phase = "build"   // descriptor validation and registration
	PhaseCompile Phase = "compile" // descriptor to codec
	PhaseEncode  Phase = "encode"  // Go value to bytes
	PhaseDecode  Phase = "decode"  // bytes to Go value
	PhaseBind    Phase = "bind"    // Go struct binding
	PhaseSchema  Phase = "schema"  // schema file loading
	PhaseAdapt   Phase = "adapt"   // foreign type systems to descriptors
)

// Kind categorizes the error
type Kind string

const (
	// KindIncompleteInstruction means the input ended before one value
	// could be determined or completed. More bytes may fix it.
	KindIncompleteInstruction Kind = "incomplete_instruction"
	// KindInvalidInstruction means the input can never decode, e.g. a tag
	// outside the variant range.
	KindInvalidInstruction Kind = "invalid_instruction"
	// KindOther covers build-time failures and everything else.
	KindOther Kind = "other"
)

// Decode sentinels. Decoders return these exact values so that a failure
// deep inside a nested value reaches the caller unchanged.
var (
	ErrIncompleteInstruction = &Error{Phase: PhaseDecode, Kind: KindIncompleteInstruction}
	ErrInvalidInstruction    = &Error{Phase: PhaseDecode, Kind: KindInvalidInstruction}
)

// Error is the structured error type used throughout the module
type Error struct {
	Value    any
	Cause    error
	Phase    Phase
	Kind     Kind
	GoType   string
	WireType string
	Detail   string
	Path     []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.GoType != "" || e.WireType != "" {
		b.WriteString(": ")
		switch {
		case e.GoType != "" && e.WireType != "":
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
			b.WriteString(", wire type ")
			b.WriteString(e.WireType)
		case e.GoType != "":
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
		default:
			b.WriteString("wire type ")
			b.WriteString(e.WireType)
		}
	}

	if e.Detail != "" {
		if e.GoType != "" || e.WireType != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// KindOf returns the Kind of the first *Error in err's chain, or KindOther
// when there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindOther
}

// IsIncomplete reports whether err is an IncompleteInstruction failure.
func IsIncomplete(err error) bool {
	return err != nil && KindOf(err) == KindIncompleteInstruction
}

// IsInvalid reports whether err is an InvalidInstruction failure.
func IsInvalid(err error) bool {
	return err != nil && KindOf(err) == KindInvalidInstruction
}

// Retryable reports whether decoding may succeed once more input arrives.
func Retryable(err error) bool {
	return IsIncomplete(err)
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// WireType sets the wire type name
func (b *Builder) WireType(t string) *Builder {
	b.err.WireType = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// Other creates a generic error with a formatted message
func Other(phase Phase, msg string, args ...any) *Error {
	return New(phase, KindOther).Detail(msg, args...).Build()
}

// TypeMismatch creates a type mismatch error
func TypeMismatch(phase Phase, path []string, goType, wireType string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindOther,
		Path:     path,
		GoType:   goType,
		WireType: wireType,
		Detail:   "type mismatch",
	}
}

// FieldMissing creates a missing field error
func FieldMissing(phase Phase, path []string, fieldName string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOther,
		Path:   path,
		Detail: fmt.Sprintf("required field %q not found", fieldName),
	}
}

// UnknownVariant creates an error for a variant selector that names no case
func UnknownVariant(phase Phase, path []string, selector any, sumType string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindOther,
		Path:     path,
		WireType: sumType,
		Detail:   fmt.Sprintf("no variant %v", selector),
		Value:    selector,
	}
}

// Overflow creates an overflow error
func Overflow(phase Phase, path []string, value any, targetType string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindOther,
		Path:     path,
		WireType: targetType,
		Detail:   fmt.Sprintf("value %v overflows %s", value, targetType),
		Value:    value,
	}
}

// InvalidDescriptor creates a build-time descriptor error
func InvalidDescriptor(typeName, detail string, args ...any) *Error {
	return New(PhaseBuild, KindOther).WireType(typeName).Detail(detail, args...).Build()
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOther,
		Detail: "unsupported: " + what,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOther,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOther,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
