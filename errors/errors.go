package errors

import (
	"fmt"
	"strings"
)

// Phase indicates which lifecycle operation or data plane the error occurred in
type Phase string

const (
	PhaseInstantiate Phase = "instantiate" // plugin creation from an entry
	PhaseInit        Phase = "init"        // one-shot instance initialization
	PhaseActivate    Phase = "activate"    // activation / deactivation
	PhaseProcess     Phase = "process"     // audio-thread processing
	PhaseExtension   Phase = "extension"   // capability negotiation
	PhaseEvent       Phase = "event"       // event list operations
	PhaseBuffer      Phase = "buffer"      // audio buffer construction
	PhaseDestroy     Phase = "destroy"     // instance destruction
)

// Kind categorizes the error
type Kind string

const (
	KindLifecycleMisuse    Kind = "lifecycle_misuse"    // call made in an illegal state
	KindProtocolViolation  Kind = "protocol_violation"  // the other side broke the ABI contract
	KindUserCode           Kind = "user_code"           // plugin/host implementation returned an error
	KindPanic              Kind = "panic"               // panic caught at the ABI boundary
	KindExhausted          Kind = "exhausted"           // recoverable resource exhaustion
	KindUnsupported        Kind = "unsupported"         // capability or representation not offered
	KindNotFound           Kind = "not_found"
	KindNilPointer         Kind = "nil_pointer"
	KindMismatchedInstance Kind = "mismatched_instance"
	KindInvalidData        Kind = "invalid_data"
	KindRegistration       Kind = "registration"
)

// Error is the structured error type used throughout clapkit
type Error struct {
	Cause     error
	Phase     Phase
	Kind      Kind
	Operation string // ABI entry point or method involved, e.g. "activate"
	Extension string // capability identifier, when relevant
	Detail    string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Operation != "" {
		b.WriteString(" in ")
		b.WriteString(e.Operation)
	}

	if e.Extension != "" {
		b.WriteString(" (extension ")
		b.WriteString(e.Extension)
		b.WriteByte(')')
	}

	if e.Detail != "" {
		b.WriteString(": ")
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

// Operation sets the ABI entry point or method name
func (b *Builder) Operation(op string) *Builder {
	b.err.Operation = op
	return b
}

// Extension sets the capability identifier
func (b *Builder) Extension(id string) *Builder {
	b.err.Extension = id
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

// NotInitialized creates an error for operations attempted before init succeeded
func NotInitialized(phase Phase, component string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindLifecycleMisuse,
		Detail: fmt.Sprintf("%s is not initialized", component),
	}
}

// AlreadyInitialized creates an error for a second init attempt
func AlreadyInitialized(component string) *Error {
	return &Error{
		Phase:  PhaseInit,
		Kind:   KindLifecycleMisuse,
		Detail: fmt.Sprintf("%s is already initialized", component),
	}
}

// InitializationFailed creates an error for a failed, now terminal, init
func InitializationFailed(component string, cause error) *Error {
	return &Error{
		Phase:  PhaseInit,
		Kind:   KindUserCode,
		Detail: fmt.Sprintf("%s failed to initialize", component),
		Cause:  cause,
	}
}

// AlreadyActivated creates an error for double activation
func AlreadyActivated() *Error {
	return &Error{
		Phase:     PhaseActivate,
		Kind:      KindLifecycleMisuse,
		Operation: "activate",
		Detail:    "plugin is already activated",
	}
}

// Deactivated creates an error for audio-thread calls on an inactive plugin
func Deactivated(phase Phase, op string) *Error {
	return &Error{
		Phase:     phase,
		Kind:      KindLifecycleMisuse,
		Operation: op,
		Detail:    "plugin is deactivated",
	}
}

// Destroyed creates an error for use of an instance after destruction started
func Destroyed(phase Phase, op string) *Error {
	return &Error{
		Phase:     phase,
		Kind:      KindLifecycleMisuse,
		Operation: op,
		Detail:    "plugin instance has been destroyed",
	}
}

// NilPointer creates a protocol violation error for a null required pointer
func NilPointer(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNilPointer,
		Detail: fmt.Sprintf("required pointer %s is nil", what),
	}
}

// MismatchedInstance creates an error for a handle used with the wrong instance
func MismatchedInstance(phase Phase) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindMismatchedInstance,
		Detail: "instance handle does not match the instance this was obtained from",
	}
}

// Unsupported creates an error for a missing capability or representation
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: fmt.Sprintf("%s is not supported", what),
	}
}

// Exhausted creates a recoverable resource exhaustion error
func Exhausted(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindExhausted,
		Detail: what,
	}
}

// NotFound creates a not found error
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
		Kind:   KindInvalidData,
		Detail: detail,
	}
}

// UserCode wraps an error returned by plugin or host implementation code
func UserCode(phase Phase, op string, cause error) *Error {
	return &Error{
		Phase:     phase,
		Kind:      KindUserCode,
		Operation: op,
		Cause:     cause,
	}
}

// Panic creates an error for a panic caught at the ABI boundary
func Panic(phase Phase, op string, recovered any) *Error {
	return &Error{
		Phase:     phase,
		Kind:      KindPanic,
		Operation: op,
		Detail:    fmt.Sprintf("panic: %v", recovered),
	}
}

// Registration creates an error for invalid capability registration
func Registration(extensionID, detail string) *Error {
	return &Error{
		Phase:     PhaseExtension,
		Kind:      KindRegistration,
		Extension: extensionID,
		Detail:    detail,
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
