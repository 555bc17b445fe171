package abi

import (
	"runtime/cgo"
	"unsafe"
)

// InstanceHandle is the opaque instance token passed as the first argument
// of every lifecycle and capability call. It stands in for the raw instance
// pointer of the native protocol.
//
// Handles are backed by cgo.Handle, so a handle resolved after its instance
// was destroyed fails instead of dereferencing freed memory.
type InstanceHandle uintptr

// NewInstanceHandle allocates a handle for the given instance data.
func NewInstanceHandle(v any) InstanceHandle {
	return InstanceHandle(cgo.NewHandle(v))
}

// Resolve returns the instance data behind the handle. It reports false for
// the zero handle and for handles whose instance has been destroyed.
func (h InstanceHandle) Resolve() (v any, ok bool) {
	if h == 0 {
		return nil, false
	}
	defer func() {
		if recover() != nil {
			v, ok = nil, false
		}
	}()
	return cgo.Handle(h).Value(), true
}

// Free invalidates the handle. Resolving it afterwards reports false.
func (h InstanceHandle) Free() {
	if h == 0 {
		return
	}
	defer func() { _ = recover() }()
	cgo.Handle(h).Delete()
}

// PluginDescriptor identifies a plugin implementation to the host.
type PluginDescriptor struct {
	// ID is the globally unique, stable identifier, in reverse-URI form.
	ID          string
	Name        string
	Vendor      string
	URL         string
	Version     string
	Description string
	Features    []string
}

// PluginVTable is the function table a plugin instance exposes to its host.
// Instance is the handle every function must be called with.
//
// All functions are main-thread only, except Process, Reset,
// StartProcessing and StopProcessing (audio thread, active state only) and
// GetExtension (main thread, but callable before Init).
type PluginVTable struct {
	Descriptor *PluginDescriptor
	Instance   InstanceHandle

	Init            func(plugin InstanceHandle) bool
	Destroy         func(plugin InstanceHandle)
	Activate        func(plugin InstanceHandle, sampleRate float64, minFrames, maxFrames uint32) bool
	Deactivate      func(plugin InstanceHandle)
	StartProcessing func(plugin InstanceHandle) bool
	StopProcessing  func(plugin InstanceHandle)
	Reset           func(plugin InstanceHandle)
	Process         func(plugin InstanceHandle, process *Process) ProcessStatus
	GetExtension    func(plugin InstanceHandle, id string) unsafe.Pointer
	OnMainThread    func(plugin InstanceHandle)
}

// HostInfo describes the host application to plugins.
type HostInfo struct {
	Name    string
	Vendor  string
	URL     string
	Version string
}

// HostVTable is the function table a host exposes to each plugin instance.
// Instance is the host-side handle every function must be called with.
//
// GetExtension is main-thread only; the request functions are thread-safe.
type HostVTable struct {
	Info     HostInfo
	Instance InstanceHandle

	GetExtension func(host InstanceHandle, id string) unsafe.Pointer
	// RequestRestart asks the host to deactivate and reactivate the plugin.
	RequestRestart func(host InstanceHandle)
	// RequestProcess asks the host to start the processing loop.
	RequestProcess func(host InstanceHandle)
	// RequestCallback asks the host to call OnMainThread on the main thread.
	RequestCallback func(host InstanceHandle)
}
