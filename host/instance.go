package host

import (
	"sync/atomic"
	"unsafe"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/freqlab/clapkit/abi"
	"github.com/freqlab/clapkit/errors"
	"github.com/freqlab/clapkit/extension"
)

// EntryProvider supplies plugin function tables. The loading layer (bundle
// discovery, dynamic libraries) implements it; tests implement it with
// in-process plugins.
type EntryProvider interface {
	// Create instantiates the plugin with the given identifier against the
	// host's function table.
	Create(hostVT *abi.HostVTable, pluginID string) (*abi.PluginVTable, error)
}

// Template describes the host side of an instance: its identity, the
// handlers behind the plugin's thread-safe request entry points, and the
// capabilities it offers.
type Template struct {
	Info abi.HostInfo

	// NewShared constructs the host's shared data for one instance.
	// Optional. The result is reachable from auxiliary threads through
	// RemoteHandle and must be internally synchronized.
	NewShared func() (any, error)

	// OnRestartRequested handles the plugin's request to be deactivated and
	// reactivated. Optional; may be called from any thread.
	OnRestartRequested func()
	// OnProcessRequested handles the plugin's request to start processing.
	// Optional; may be called from any thread.
	OnProcessRequested func()
	// OnCallbackRequested handles the plugin's request for a main-thread
	// callback. Optional; may be called from any thread. The host must
	// eventually call OnMainThread on its main thread.
	OnCallbackRequested func()

	// Extensions populates the host-side capability registry. Optional.
	Extensions func(reg *extension.Registry) error
}

// PluginInstance is the host's wrapper around one plugin instance. All of
// its methods are main-thread only unless stated otherwise.
type PluginInstance struct {
	id       uuid.UUID
	log      *zap.Logger
	template Template

	plugin     *abi.PluginVTable
	hostHandle abi.InstanceHandle
	registry   *extension.Registry
	shared     any

	gate      destroyGate
	active    atomic.Bool
	destroyed bool
}

// Instantiate creates, wires and initializes a plugin instance. A plugin
// whose init entry point reports failure is destroyed before the error is
// returned, so a non-nil result is always initialized.
func Instantiate(t Template, provider EntryProvider, pluginID string) (*PluginInstance, error) {
	if provider == nil {
		return nil, errors.NilPointer(errors.PhaseInstantiate, "entry provider")
	}

	inst := &PluginInstance{
		id:       uuid.New(),
		template: t,
		registry: extension.NewRegistry(extension.SideHost),
	}
	inst.log = Logger().With(
		zap.String("instance_id", inst.id.String()),
		zap.String("plugin", pluginID),
	)

	if t.NewShared != nil {
		shared, err := t.NewShared()
		if err != nil {
			return nil, errors.Wrap(errors.PhaseInstantiate, errors.KindUserCode, err, "host shared data construction failed")
		}
		inst.shared = shared
	}
	if t.Extensions != nil {
		if err := t.Extensions(inst.registry); err != nil {
			return nil, err
		}
	}

	inst.hostHandle = abi.NewInstanceHandle(inst)
	hostVT := &abi.HostVTable{
		Info:            t.Info,
		Instance:        inst.hostHandle,
		GetExtension:    hostGetExtension,
		RequestRestart:  hostRequestRestart,
		RequestProcess:  hostRequestProcess,
		RequestCallback: hostRequestCallback,
	}

	plugin, err := provider.Create(hostVT, pluginID)
	if err != nil {
		inst.hostHandle.Free()
		return nil, errors.Wrap(errors.PhaseInstantiate, errors.KindUserCode, err, "entry provider failed")
	}
	if plugin == nil || plugin.Init == nil {
		inst.hostHandle.Free()
		return nil, errors.NilPointer(errors.PhaseInstantiate, "plugin function table")
	}
	inst.plugin = plugin

	ok := false
	initErr := inst.guard(errors.PhaseInit, "init", func() error {
		ok = plugin.Init(plugin.Instance)
		return nil
	})
	if initErr != nil || !ok {
		// a plugin that failed init still gets its destroy call
		_ = inst.guard(errors.PhaseDestroy, "destroy", func() error {
			plugin.Destroy(plugin.Instance)
			return nil
		})
		inst.hostHandle.Free()
		if initErr == nil {
			initErr = errors.InitializationFailed(pluginID, nil)
		}
		return nil, initErr
	}

	inst.log.Debug("plugin instance initialized")
	return inst, nil
}

// resolveHost returns the instance behind a host handle.
func resolveHost(h abi.InstanceHandle) *PluginInstance {
	v, ok := h.Resolve()
	if !ok {
		return nil
	}
	inst, _ := v.(*PluginInstance)
	return inst
}

func hostGetExtension(host abi.InstanceHandle, id string) unsafe.Pointer {
	inst := resolveHost(host)
	if inst == nil {
		return nil
	}
	return inst.registry.Pointer(extension.ID(id))
}

func hostRequestRestart(host abi.InstanceHandle) {
	if inst := resolveHost(host); inst != nil && inst.template.OnRestartRequested != nil {
		inst.template.OnRestartRequested()
	}
}

func hostRequestProcess(host abi.InstanceHandle) {
	if inst := resolveHost(host); inst != nil && inst.template.OnProcessRequested != nil {
		inst.template.OnProcessRequested()
	}
}

func hostRequestCallback(host abi.InstanceHandle) {
	if inst := resolveHost(host); inst != nil && inst.template.OnCallbackRequested != nil {
		inst.template.OnCallbackRequested()
	}
}

// guard runs fn, converting a plugin panic into a logged error.
func (i *PluginInstance) guard(phase errors.Phase, op string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Panic(phase, op, r)
			i.log.Error("plugin panicked",
				zap.String("operation", op),
				zap.Stringer("severity", extension.SeverityPluginMisbehaving),
				zap.Any("panic", r))
		}
	}()
	return fn()
}

// ID returns the host-side identity of this instance, unique per
// instantiation.
func (i *PluginInstance) ID() uuid.UUID {
	return i.id
}

// Descriptor returns the plugin's descriptor.
func (i *PluginInstance) Descriptor() *abi.PluginDescriptor {
	return i.plugin.Descriptor
}

// IsActive reports whether the instance currently holds an activation.
func (i *PluginInstance) IsActive() bool {
	return i.active.Load()
}

// GetExtension queries a plugin capability by identifier. The returned
// reference is null when the plugin does not support it, and stays valid
// for the plugin instance's lifetime.
func (i *PluginInstance) GetExtension(id extension.ID) extension.RawExtension {
	if i.destroyed || i.plugin.GetExtension == nil {
		return extension.NewRawExtension(nil, 0, id, extension.SidePlugin)
	}
	var ptr unsafe.Pointer
	err := i.guard(errors.PhaseExtension, "get_extension", func() error {
		ptr = i.plugin.GetExtension(i.plugin.Instance, string(id))
		return nil
	})
	if err != nil {
		return extension.NewRawExtension(nil, 0, id, extension.SidePlugin)
	}
	return extension.NewRawExtension(ptr, i.plugin.Instance, id, extension.SidePlugin)
}

// Activate moves the plugin into its active state and returns the stopped
// processor owning the audio-thread surface. A refused or panicking
// activation leaves the instance cleanly deactivated.
func (i *PluginInstance) Activate(sampleRate float64, minFrames, maxFrames uint32) (*StoppedProcessor, error) {
	if i.destroyed {
		return nil, errors.Destroyed(errors.PhaseActivate, "activate")
	}
	if i.active.Load() {
		return nil, errors.AlreadyActivated()
	}

	ok := false
	err := i.guard(errors.PhaseActivate, "activate", func() error {
		ok = i.plugin.Activate(i.plugin.Instance, sampleRate, minFrames, maxFrames)
		return nil
	})
	if err != nil {
		// the panic may have left the plugin half activated; deactivate so
		// the error is reported from a clean state
		_ = i.guard(errors.PhaseActivate, "deactivate", func() error {
			i.plugin.Deactivate(i.plugin.Instance)
			return nil
		})
		return nil, err
	}
	if !ok {
		return nil, errors.New(errors.PhaseActivate, errors.KindUserCode).
			Operation("activate").
			Detail("plugin refused activation").
			Build()
	}

	i.active.Store(true)
	return &StoppedProcessor{inst: i}, nil
}

// Deactivate returns the activation owned by the given processor. The
// processor must have been obtained from this instance; passing another
// instance's processor is a programmer error and panics.
func (i *PluginInstance) Deactivate(p *StoppedProcessor) {
	if p == nil || p.inst != i {
		panic("deactivate called with a processor from a different instance")
	}
	if !i.active.Load() {
		return
	}
	_ = i.guard(errors.PhaseActivate, "deactivate", func() error {
		i.plugin.Deactivate(i.plugin.Instance)
		return nil
	})
	i.active.Store(false)
	p.inst = nil
}

// OnMainThread forwards the host's main-thread callback to the plugin.
func (i *PluginInstance) OnMainThread() {
	if i.destroyed || i.plugin.OnMainThread == nil {
		return
	}
	_ = i.guard(errors.PhaseProcess, "on_main_thread", func() error {
		i.plugin.OnMainThread(i.plugin.Instance)
		return nil
	})
}

// RemoteHandle returns an auxiliary-thread view of this instance. The
// handle itself is thread-safe and stays valid forever; accesses through
// it fail once destruction has started.
func (i *PluginInstance) RemoteHandle() RemoteHandle {
	return RemoteHandle{inst: i}
}

// Destroy tears the instance down. It is idempotent, implies deactivation,
// and blocks until in-flight auxiliary-thread accesses have drained, so no
// remote caller ever observes a destroyed plugin.
func (i *PluginInstance) Destroy() {
	if !i.gate.beginDestroy() {
		return
	}
	i.destroyed = true

	if i.active.Swap(false) {
		_ = i.guard(errors.PhaseDestroy, "deactivate", func() error {
			i.plugin.Deactivate(i.plugin.Instance)
			return nil
		})
	}
	_ = i.guard(errors.PhaseDestroy, "destroy", func() error {
		i.plugin.Destroy(i.plugin.Instance)
		return nil
	})
	i.hostHandle.Free()
	i.log.Debug("plugin instance destroyed")
}
