package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseEncode Phase = "encode" // structural encoding of application values
	PhasePack   Phase = "pack"   // canonical value to MessagePack bytes
	PhaseUnpack Phase = "unpack" // MessagePack bytes to canonical value
)

// Kind categorizes the error
type Kind string

const (
	KindNoRepresentation Kind = "no_representation" // value described no container
	KindTimeEncoding     Kind = "time_encoding"     // custom time transform failed
	KindCapability       Kind = "capability"        // platform feature unavailable
	KindInvalidInput     Kind = "invalid_input"
	KindInvalidData      Kind = "invalid_data"
	KindOverflow         Kind = "overflow"
	KindTruncated        Kind = "truncated"
	KindUsageFault       Kind = "usage_fault" // programmer misuse, raised as a panic
)

// Error is the structured error type used throughout the codec
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	GoType string
	Detail string
	Path   []string
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
		writePath(&b, e.Path)
	}

	if e.GoType != "" {
		b.WriteString(": Go type ")
		b.WriteString(e.GoType)
	}

	if e.Detail != "" {
		if e.GoType != "" {
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

// writePath renders a field path. Index segments attach to the preceding
// segment without a separator, so a path renders as items[2].name.
func writePath(b *strings.Builder, path []string) {
	for i, seg := range path {
		if i > 0 && !strings.HasPrefix(seg, "[") {
			b.WriteByte('.')
		}
		b.WriteString(seg)
	}
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

// WithPathPrefix returns a copy of the error whose path is prefixed with the
// given segments. Used when a failure inside a detached child encode surfaces
// through the parent that spawned it.
func (e *Error) WithPathPrefix(prefix []string) *Error {
	if len(prefix) == 0 {
		return e
	}
	clone := *e
	clone.Path = append(append([]string(nil), prefix...), e.Path...)
	return &clone
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

// NoRepresentation creates the error for a value whose self-description
// requested no container at all.
func NoRepresentation(path []string, goType string) *Error {
	return &Error{
		Phase:  PhaseEncode,
		Kind:   KindNoRepresentation,
		Path:   path,
		GoType: goType,
		Detail: "value produced no encodable representation",
	}
}

// TimeEncoding wraps a failure from a user-supplied time transform.
func TimeEncoding(path []string, cause error) *Error {
	return &Error{
		Phase:  PhaseEncode,
		Kind:   KindTimeEncoding,
		Path:   path,
		Detail: "custom time transform failed",
		Cause:  cause,
	}
}

// Capability creates the error for a platform feature that is unavailable.
func Capability(what string) *Error {
	return &Error{
		Phase:  PhaseEncode,
		Kind:   KindCapability,
		Detail: what,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Unencodable creates the error for a Go value the generic encode path
// cannot handle.
func Unencodable(path []string, goType string) *Error {
	return &Error{
		Phase:  PhaseEncode,
		Kind:   KindInvalidInput,
		Path:   path,
		GoType: goType,
		Detail: "type does not implement Encodable and has no native encoding",
	}
}

// Truncated creates the error for MessagePack input that ends mid-value.
func Truncated(detail string) *Error {
	return &Error{
		Phase:  PhaseUnpack,
		Kind:   KindTruncated,
		Detail: detail,
	}
}

// Overflow creates an overflow error
func Overflow(phase Phase, path []string, value any, targetType string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOverflow,
		Path:   path,
		Detail: fmt.Sprintf("value %v overflows %s", value, targetType),
		Value:  value,
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
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

// UsageFault creates the error raised (as a panic value) for programmer
// misuse of the encoder: a second container request, a second scalar write,
// a second super link, or continuing after an unhandled failure.
func UsageFault(path []string, detail string, args ...any) *Error {
	if len(args) > 0 {
		detail = fmt.Sprintf(detail, args...)
	}
	return &Error{
		Phase:  PhaseEncode,
		Kind:   KindUsageFault,
		Path:   path,
		Detail: detail,
	}
}
