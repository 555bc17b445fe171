// Package errors provides structured error types for the clapkit library.
//
// Errors are categorized by Phase (which lifecycle operation or data plane
// the error occurred in) and Kind (error category). The Error type includes
// context about the operation and capability involved, plus a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseActivate, errors.KindLifecycleMisuse).
//		Operation("activate").
//		Detail("plugin is already activated").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.NotInitialized(errors.PhaseActivate, "plugin instance")
//	err := errors.Unsupported(errors.PhaseExtension, "clap.gui")
//
// All errors implement the standard error interface and support errors.Is/As.
// Two structured errors compare equal under errors.Is when their Phase and
// Kind match, so callers can test for a category without holding the exact
// error value.
package errors
