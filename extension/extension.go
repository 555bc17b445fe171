package extension

import (
	"fmt"
	"unsafe"

	"github.com/freqlab/clapkit/abi"
)

// ID is a stable textual capability identifier, in reverse-URI form for
// third parties and a short dotted form for the built-in set.
type ID string

// Side says which side of the protocol provides an extension.
type Side uint8

const (
	// SidePlugin marks extensions provided by the plugin and used by the host.
	SidePlugin Side = iota
	// SideHost marks extensions provided by the host and used by the plugin.
	SideHost
)

func (s Side) String() string {
	switch s {
	case SidePlugin:
		return "plugin"
	case SideHost:
		return "host"
	default:
		return "unknown"
	}
}

// ThreadDomain says which thread an extension's functions may be called
// from.
type ThreadDomain uint8

const (
	// DomainMainThread restricts calls to the designated main thread.
	DomainMainThread ThreadDomain = iota
	// DomainAudioThread restricts calls to the audio thread, while the
	// instance's processor is active.
	DomainAudioThread
	// DomainShared allows calls from any thread. Implementations must be
	// internally synchronized.
	DomainShared
)

func (d ThreadDomain) String() string {
	switch d {
	case DomainMainThread:
		return "main_thread"
	case DomainAudioThread:
		return "audio_thread"
	case DomainShared:
		return "shared"
	default:
		return "unknown"
	}
}

// MainThreaded is the domain marker for main-thread extensions. Embed
// MainThreadMarker to implement it.
type MainThreaded interface {
	MainThreadOnly()
}

// AudioThreaded is the domain marker for audio-thread extensions. Embed
// AudioThreadMarker to implement it.
type AudioThreaded interface {
	AudioThreadOnly()
}

// Shared is the domain marker for thread-safe extensions. Embed
// SharedMarker to implement it.
type Shared interface {
	ThreadSafe()
}

// MainThreadMarker implements MainThreaded by embedding.
type MainThreadMarker struct{}

func (MainThreadMarker) MainThreadOnly() {}

// AudioThreadMarker implements AudioThreaded by embedding.
type AudioThreadMarker struct{}

func (AudioThreadMarker) AudioThreadOnly() {}

// SharedMarker implements Shared by embedding.
type SharedMarker struct{}

func (SharedMarker) ThreadSafe() {}

// Extension is a registrable capability implementation: a pointer to a
// struct of function fields that also declares its identity and thread
// domain.
type Extension interface {
	ExtensionID() ID
	Domain() ThreadDomain
}

// RawExtension is a borrowed, untyped reference to an extension function
// table, tagged with the instance that produced it. The zero value is the
// null extension.
//
// A RawExtension is valid exactly as long as its owning instance; it is
// never freed independently.
type RawExtension struct {
	ptr   unsafe.Pointer
	owner abi.InstanceHandle
	id    ID
	side  Side
}

// NewRawExtension tags a raw function table pointer with its owner.
func NewRawExtension(ptr unsafe.Pointer, owner abi.InstanceHandle, id ID, side Side) RawExtension {
	return RawExtension{ptr: ptr, owner: owner, id: id, side: side}
}

// ID returns the capability identifier this reference was obtained for.
func (r RawExtension) ID() ID {
	return r.id
}

// Side returns which side of the protocol provided the extension.
func (r RawExtension) Side() Side {
	return r.side
}

// IsNull reports whether this is the null extension.
func (r RawExtension) IsNull() bool {
	return r.ptr == nil
}

// Use returns the raw function table pointer, checking that the caller is
// holding the instance the extension was obtained from. A mismatched
// instance handle is a programmer error and panics.
func (r RawExtension) Use(instance abi.InstanceHandle) unsafe.Pointer {
	if instance != r.owner {
		panic(fmt.Sprintf("extension %q used with a mismatched instance handle", r.id))
	}
	return r.ptr
}

// As retrieves the extension's function table as a concrete type, checking
// the instance handle like Use. Returns nil for the null extension.
func As[T any](r RawExtension, instance abi.InstanceHandle) *T {
	p := r.Use(instance)
	if p == nil {
		return nil
	}
	return (*T)(p)
}
