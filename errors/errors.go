package errors

import (
	"fmt"
	"strings"
)

// Phase indicates which generation stage produced the error
type Phase string

const (
	PhaseConfig    Phase = "config"    // options validation
	PhaseClassify  Phase = "classify"  // resource direction discovery
	PhaseNaming    Phase = "naming"    // identifier allocation
	PhaseSignature Phase = "signature" // core ABI derivation
	PhaseEmit      Phase = "emit"      // function binding emission
	PhaseWiring    Phase = "wiring"    // import/export assembly
)

// Kind categorizes the error
type Kind string

const (
	KindDirectionConflict Kind = "direction_conflict"
	KindNameCollision     Kind = "name_collision"
	KindNestedInterface   Kind = "nested_interface"
	KindUnsupported       Kind = "unsupported"
	KindNotFound          Kind = "not_found"
	KindInvalidInput      Kind = "invalid_input"
	KindInvalidType       Kind = "invalid_type"
)

// Error is the structured error type returned by generation
type Error struct {
	Value   any
	Cause   error
	Phase   Phase
	Kind    Kind
	WitType string
	Detail  string
	Path    []string
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

	if e.WitType != "" {
		b.WriteString(": WIT type ")
		b.WriteString(e.WitType)
	}

	if e.Detail != "" {
		if e.WitType != "" {
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

// Path sets the item path (world key, interface, function)
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// WitType sets the WIT type name
func (b *Builder) WitType(t string) *Builder {
	b.err.WitType = t
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

// DirectionConflict reports a resource seen both as imported and exported
func DirectionConflict(resource, first, second string) *Error {
	return &Error{
		Phase:   PhaseClassify,
		Kind:    KindDirectionConflict,
		WitType: resource,
		Detail:  fmt.Sprintf("resource already classified as %s, cannot reclassify as %s", first, second),
	}
}

// NameCollision reports an export name bound to two incompatible items
func NameCollision(name, detail string) *Error {
	return &Error{
		Phase:  PhaseWiring,
		Kind:   KindNameCollision,
		Path:   []string{name},
		Detail: detail,
	}
}

// NestedInterface reports an interface binding requested inside another interface
func NestedInterface(path ...string) *Error {
	return &Error{
		Phase:  PhaseWiring,
		Kind:   KindNestedInterface,
		Path:   path,
		Detail: "nested interfaces are not supported",
	}
}

// Unsupported creates an unsupported input error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
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

// InvalidType reports a type that cannot appear in the given position
func InvalidType(phase Phase, path []string, witType, detail string) *Error {
	return &Error{
		Phase:   phase,
		Kind:    KindInvalidType,
		Path:    path,
		WitType: witType,
		Detail:  detail,
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

// WithPath returns err with path prepended when err is an *Error.
// Other errors are wrapped as invalid input of the given phase.
func WithPath(phase Phase, err error, path ...string) error {
	if err == nil {
		return nil
	}
	if e, ok := err.(*Error); ok {
		cp := *e
		cp.Path = append(append([]string{}, path...), e.Path...)
		return &cp
	}
	return &Error{
		Phase: phase,
		Kind:  KindInvalidInput,
		Path:  path,
		Cause: err,
	}
}
