package host

import (
	"sync"
	"sync/atomic"

	"github.com/freqlab/clapkit/errors"
)

// destroyGate coordinates instance destruction with in-flight read-only
// access from auxiliary threads. Readers either complete before
// destruction proceeds or are told the instance is gone; they never touch
// freed state.
type destroyGate struct {
	destroying atomic.Bool
	mu         sync.RWMutex
}

// access runs fn under the gate's read lock, refusing once destruction has
// started.
func (g *destroyGate) access(phase errors.Phase, op string, fn func() error) error {
	if g.destroying.Load() {
		return errors.Destroyed(phase, op)
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	// destruction may have started while we were acquiring the lock
	if g.destroying.Load() {
		return errors.Destroyed(phase, op)
	}
	return fn()
}

// beginDestroy flips the one-shot destruction flag and waits for in-flight
// readers to drain. Reports false if destruction had already begun.
func (g *destroyGate) beginDestroy() bool {
	if g.destroying.Swap(true) {
		return false
	}
	// taking the write lock waits for every reader holding the gate
	g.mu.Lock()
	defer g.mu.Unlock()
	return true
}

// RemoteHandle is an auxiliary-thread view of a plugin instance. It only
// exposes the thread-safe surface, and every access is checked against the
// instance's destruction gate.
type RemoteHandle struct {
	inst *PluginInstance
}

// Use runs fn with the instance's shared, thread-safe surface. It returns
// a destroyed error instead of running fn once destruction has started.
func (r RemoteHandle) Use(fn func(shared SharedHandle) error) error {
	return r.inst.gate.access(errors.PhaseDestroy, "remote_access", func() error {
		return fn(SharedHandle{inst: r.inst})
	})
}

// SharedHandle is the thread-safe surface handed out by RemoteHandle.Use.
// It is only valid inside the Use callback.
type SharedHandle struct {
	inst *PluginInstance
}

// PluginID returns the instantiated plugin's identifier.
func (s SharedHandle) PluginID() string {
	return s.inst.plugin.Descriptor.ID
}

// Shared returns the host's shared data for this instance, as built by the
// template.
func (s SharedHandle) Shared() any {
	return s.inst.shared
}
