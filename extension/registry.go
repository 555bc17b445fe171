package extension

import (
	"fmt"
	"reflect"
	"sync"
	"unsafe"

	"github.com/freqlab/clapkit/abi"
	"github.com/freqlab/clapkit/errors"
)

// Registry holds one side's extension implementations, keyed by capability
// identifier. A registry is populated at instance construction time and
// consulted by that side's get-extension entry point.
type Registry struct {
	side    Side
	entries map[ID]Extension
	mu      sync.RWMutex
}

// NewRegistry creates an empty registry for the given side.
func NewRegistry(side Side) *Registry {
	return &Registry{
		side:    side,
		entries: make(map[ID]Extension),
	}
}

// Side returns which side's extensions this registry holds.
func (r *Registry) Side() Side {
	return r.side
}

// Register adds an extension implementation. The implementation must be a
// non-nil pointer, must carry the domain marker matching its declared
// domain, and must not collide with an already registered identifier.
func (r *Registry) Register(ext Extension) error {
	if ext == nil {
		return errors.NilPointer(errors.PhaseExtension, "extension")
	}
	id := ext.ExtensionID()
	if id == "" {
		return errors.Registration("", "extension identifier cannot be empty")
	}

	rv := reflect.ValueOf(ext)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return errors.Registration(string(id), "implementation must be a non-nil pointer to its function table")
	}

	if err := checkDomainMarker(ext); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[id]; exists {
		return errors.Registration(string(id), "already registered")
	}
	r.entries[id] = ext
	return nil
}

// checkDomainMarker verifies that the implementation's embedded domain
// marker agrees with its declared domain.
func checkDomainMarker(ext Extension) error {
	id := string(ext.ExtensionID())
	switch d := ext.Domain(); d {
	case DomainMainThread:
		if _, ok := ext.(MainThreaded); !ok {
			return errors.Registration(id, "declares the main thread domain but lacks the marker")
		}
	case DomainAudioThread:
		if _, ok := ext.(AudioThreaded); !ok {
			return errors.Registration(id, "declares the audio thread domain but lacks the marker")
		}
	case DomainShared:
		if _, ok := ext.(Shared); !ok {
			return errors.Registration(id, "declares the shared domain but lacks the marker")
		}
	default:
		return errors.Registration(id, fmt.Sprintf("declares unknown thread domain %d", d))
	}
	return nil
}

// Get returns the untyped reference for the given identifier, tagged with
// the owning instance, or a null reference when the capability is absent.
func (r *Registry) Get(id ID, owner abi.InstanceHandle) RawExtension {
	r.mu.RLock()
	ext, ok := r.entries[id]
	r.mu.RUnlock()
	if !ok {
		return RawExtension{id: id, side: r.side}
	}
	ptr := reflect.ValueOf(ext).UnsafePointer()
	return NewRawExtension(ptr, owner, id, r.side)
}

// Pointer returns the raw function table pointer for the given identifier,
// or nil when the capability is absent. This is the get-extension ABI
// answer.
func (r *Registry) Pointer(id ID) unsafe.Pointer {
	r.mu.RLock()
	ext, ok := r.entries[id]
	r.mu.RUnlock()
	if !ok {
		return nil
	}
	return reflect.ValueOf(ext).UnsafePointer()
}

// IDs returns the registered identifiers, in no particular order.
func (r *Registry) IDs() []ID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]ID, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	return ids
}
