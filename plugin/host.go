package plugin

import (
	"github.com/freqlab/clapkit/abi"
	"github.com/freqlab/clapkit/extension"
)

// HostHandle is the plugin's view of its host, usable from any thread. The
// zero value is a detached handle whose requests go nowhere.
type HostHandle struct {
	vt *abi.HostVTable
}

// NewHostHandle wraps the host function table handed to the plugin at
// instantiation.
func NewHostHandle(vt *abi.HostVTable) HostHandle {
	return HostHandle{vt: vt}
}

// Instance returns the host-side instance handle, which host extension
// functions take as their first argument.
func (h HostHandle) Instance() abi.InstanceHandle {
	if h.vt == nil {
		return 0
	}
	return h.vt.Instance
}

// Info returns the host application's identity.
func (h HostHandle) Info() abi.HostInfo {
	if h.vt == nil {
		return abi.HostInfo{}
	}
	return h.vt.Info
}

// RequestRestart asks the host to deactivate and reactivate the plugin.
func (h HostHandle) RequestRestart() {
	if h.vt != nil && h.vt.RequestRestart != nil {
		h.vt.RequestRestart(h.vt.Instance)
	}
}

// RequestProcess asks the host to start processing, waking the plugin from
// a sleep status.
func (h HostHandle) RequestProcess() {
	if h.vt != nil && h.vt.RequestProcess != nil {
		h.vt.RequestProcess(h.vt.Instance)
	}
}

// RequestCallback asks the host to call back on the main thread.
func (h HostHandle) RequestCallback() {
	if h.vt != nil && h.vt.RequestCallback != nil {
		h.vt.RequestCallback(h.vt.Instance)
	}
}

// HostMainThreadHandle is the plugin's main-thread view of its host. Only
// this view may query host extensions.
type HostMainThreadHandle struct {
	HostHandle
}

// GetExtension queries a host capability by identifier. The returned
// reference is null when the host does not support it, and stays valid for
// the host instance's lifetime.
func (h HostMainThreadHandle) GetExtension(id extension.ID) extension.RawExtension {
	if h.vt == nil || h.vt.GetExtension == nil {
		return extension.NewRawExtension(nil, 0, id, extension.SideHost)
	}
	ptr := h.vt.GetExtension(h.vt.Instance, string(id))
	return extension.NewRawExtension(ptr, h.vt.Instance, id, extension.SideHost)
}

// HostAudioThreadHandle is the plugin's audio-thread view of its host.
type HostAudioThreadHandle struct {
	HostHandle
}
