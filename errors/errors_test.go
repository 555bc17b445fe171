package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:     PhaseActivate,
				Kind:      KindLifecycleMisuse,
				Operation: "activate",
				Detail:    "plugin is already activated",
			},
			contains: []string{"[activate]", "lifecycle_misuse", "in activate", "already activated"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseProcess,
				Kind:  KindPanic,
			},
			contains: []string{"[process]", "panic"},
		},
		{
			name: "error with extension",
			err: &Error{
				Phase:     PhaseExtension,
				Kind:      KindNotFound,
				Extension: "clap.latency",
			},
			contains: []string{"[extension]", "not_found", "clap.latency"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseInit,
				Kind:   KindUserCode,
				Detail: "shared data construction failed",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[init]", "user_code", "shared data construction failed", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseProcess,
		Kind:  KindUserCode,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}

	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase:     PhaseActivate,
		Kind:      KindLifecycleMisuse,
		Operation: "activate",
	}

	// Same phase and kind
	if !err.Is(&Error{Phase: PhaseActivate, Kind: KindLifecycleMisuse}) {
		t.Error("Is should match same phase and kind")
	}

	// Different phase
	if err.Is(&Error{Phase: PhaseProcess, Kind: KindLifecycleMisuse}) {
		t.Error("Is should not match different phase")
	}

	// Different kind
	if err.Is(&Error{Phase: PhaseActivate, Kind: KindPanic}) {
		t.Error("Is should not match different kind")
	}

	// Test with errors.Is
	target := &Error{Phase: PhaseActivate, Kind: KindLifecycleMisuse}
	if !errors.Is(err, target) {
		t.Error("errors.Is should match")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseExtension, KindRegistration).
		Operation("register").
		Extension("clap.log").
		Cause(cause).
		Detail("wrong thread domain: %s", "audio-thread").
		Build()

	if err.Phase != PhaseExtension {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseExtension)
	}
	if err.Kind != KindRegistration {
		t.Errorf("Kind = %v, want %v", err.Kind, KindRegistration)
	}
	if err.Operation != "register" {
		t.Errorf("Operation = %v, want 'register'", err.Operation)
	}
	if err.Extension != "clap.log" {
		t.Errorf("Extension = %v, want 'clap.log'", err.Extension)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "wrong thread domain: audio-thread" {
		t.Errorf("Detail = %v", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("NotInitialized", func(t *testing.T) {
		err := NotInitialized(PhaseActivate, "plugin instance")
		if err.Kind != KindLifecycleMisuse {
			t.Errorf("Kind = %v, want %v", err.Kind, KindLifecycleMisuse)
		}
		if !strings.Contains(err.Detail, "plugin instance") {
			t.Errorf("Detail = %v", err.Detail)
		}
	})

	t.Run("AlreadyActivated", func(t *testing.T) {
		err := AlreadyActivated()
		if err.Phase != PhaseActivate || err.Kind != KindLifecycleMisuse {
			t.Errorf("Phase=%v Kind=%v", err.Phase, err.Kind)
		}
	})

	t.Run("Deactivated", func(t *testing.T) {
		err := Deactivated(PhaseProcess, "process")
		if err.Operation != "process" {
			t.Errorf("Operation = %v, want 'process'", err.Operation)
		}
	})

	t.Run("Panic", func(t *testing.T) {
		err := Panic(PhaseProcess, "process", "boom")
		if err.Kind != KindPanic {
			t.Errorf("Kind = %v, want %v", err.Kind, KindPanic)
		}
		if !strings.Contains(err.Detail, "boom") {
			t.Errorf("Detail = %v", err.Detail)
		}
	})

	t.Run("MismatchedInstance", func(t *testing.T) {
		err := MismatchedInstance(PhaseExtension)
		if err.Kind != KindMismatchedInstance {
			t.Errorf("Kind = %v, want %v", err.Kind, KindMismatchedInstance)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		err := NotFound(PhaseExtension, "extension", "clap.gui")
		if !strings.Contains(err.Detail, "clap.gui") {
			t.Errorf("Detail = %v", err.Detail)
		}
	})

	t.Run("Wrap", func(t *testing.T) {
		cause := errors.New("inner")
		err := Wrap(PhaseProcess, KindUserCode, cause, "processing failed")
		if !errors.Is(err, &Error{Phase: PhaseProcess, Kind: KindUserCode}) {
			t.Error("wrapped error should match phase and kind")
		}
		if !errors.Is(err, cause) {
			t.Error("wrapped error should match cause")
		}
	})
}
