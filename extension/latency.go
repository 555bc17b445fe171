package extension

import "github.com/freqlab/clapkit/abi"

// PluginLatencyID identifies the plugin latency extension.
const PluginLatencyID ID = "clap.latency"

// PluginLatency reports the plugin's processing latency to the host. Get
// may only be called on the main thread, and only while the plugin is
// activated.
type PluginLatency struct {
	MainThreadMarker
	Get func(plugin abi.InstanceHandle) uint32
}

func (*PluginLatency) ExtensionID() ID {
	return PluginLatencyID
}

func (*PluginLatency) Domain() ThreadDomain {
	return DomainMainThread
}

// HostLatency is the host-side counterpart: plugins call Changed after
// their latency changed, so the host can re-query it and recompensate.
type HostLatency struct {
	MainThreadMarker
	Changed func(host abi.InstanceHandle)
}

func (*HostLatency) ExtensionID() ID {
	return PluginLatencyID
}

func (*HostLatency) Domain() ThreadDomain {
	return DomainMainThread
}
