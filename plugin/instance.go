package plugin

import (
	"fmt"
	"sync/atomic"
	"unsafe"

	"go.uber.org/zap"

	"github.com/freqlab/clapkit/abi"
	"github.com/freqlab/clapkit/errors"
	"github.com/freqlab/clapkit/extension"
)

// AudioConfig carries the activation parameters the audio processor is
// built against. Frame counts bound every block until deactivation.
type AudioConfig struct {
	SampleRate float64
	MinFrames  uint32
	MaxFrames  uint32
}

// AudioProcessor is the audio-thread part of a plugin implementation. It
// only exists while the instance is activated, and all of its methods run
// on the audio thread.
type AudioProcessor interface {
	// StartProcessing prepares for a run of process calls. An error refuses
	// the start without deactivating.
	StartProcessing() error
	// StopProcessing ends a run of process calls.
	StopProcessing()
	// Process renders one block.
	Process(ctx *ProcessContext) (abi.ProcessStatus, error)
	// Reset clears playback state, e.g. kills playing voices and clears
	// delay lines. Called between processing runs.
	Reset()
}

// MainThreadCallback is implemented by main-thread parts that want the
// host's on-main-thread callbacks.
type MainThreadCallback interface {
	OnMainThread()
}

// Template describes a plugin implementation to the wrapper: its identity
// and the factories for its thread-domain parts. NewShared and Extensions
// run during init, NewMainThread right after, Activate on every
// activation.
type Template struct {
	Descriptor abi.PluginDescriptor

	// NewShared constructs the thread-safe shared part. Required.
	NewShared func(host HostHandle) (any, error)
	// NewMainThread constructs the main-thread part over the shared one.
	// Optional; plugins without main-thread state may omit it.
	NewMainThread func(host HostMainThreadHandle, shared any) (any, error)
	// Activate constructs the audio processor for one activation. Required.
	Activate func(host HostAudioThreadHandle, shared, mainThread any, cfg AudioConfig) (AudioProcessor, error)
	// Extensions populates the plugin-side capability registry. Optional.
	Extensions func(reg *extension.Registry, shared any) error
}

// Lifecycle states.
const (
	stateUninitialized uint32 = iota
	stateInitializing
	stateInitialized
	stateInitializationFailed
	stateDestroying
)

// wrapper holds a plugin instance's state behind its handle. State moves
// Uninitialized -> Initializing -> Initialized | InitializationFailed ->
// Destroying; the audio processor toggles separately while Initialized.
type wrapper struct {
	template Template
	host     HostHandle
	handle   abi.InstanceHandle
	registry *extension.Registry
	log      *zap.Logger

	// hostLog mirrors caught panics to the host when it exposes the log
	// capability. Set once during init, before any audio-thread call.
	hostLog *extension.HostLog

	state atomic.Uint32

	shared     any
	mainThread any

	// processor and processing are owned by the activate/deactivate pair on
	// the main thread; active publishes activation to the audio thread
	processor  AudioProcessor
	active     atomic.Bool
	processing atomic.Bool
}

// NewInstance wraps a plugin implementation into the raw function table a
// host drives. The returned table's Instance field is the handle every
// call must pass.
func NewInstance(t Template, hostVT *abi.HostVTable) (*abi.PluginVTable, error) {
	if t.Descriptor.ID == "" {
		return nil, errors.InvalidInput(errors.PhaseInstantiate, "plugin descriptor has no ID")
	}
	if t.NewShared == nil || t.Activate == nil {
		return nil, errors.InvalidInput(errors.PhaseInstantiate, "template must provide NewShared and Activate")
	}

	w := &wrapper{
		template: t,
		host:     NewHostHandle(hostVT),
		registry: extension.NewRegistry(extension.SidePlugin),
		log:      Logger().With(zap.String("plugin", t.Descriptor.ID)),
	}
	w.handle = abi.NewInstanceHandle(w)

	desc := t.Descriptor
	return &abi.PluginVTable{
		Descriptor:      &desc,
		Instance:        w.handle,
		Init:            pluginInit,
		Destroy:         pluginDestroy,
		Activate:        pluginActivate,
		Deactivate:      pluginDeactivate,
		StartProcessing: pluginStartProcessing,
		StopProcessing:  pluginStopProcessing,
		Reset:           pluginReset,
		Process:         pluginProcess,
		GetExtension:    pluginGetExtension,
		OnMainThread:    pluginOnMainThread,
	}, nil
}

// resolve returns the wrapper behind a handle, or nil after destruction.
func resolve(h abi.InstanceHandle) *wrapper {
	v, ok := h.Resolve()
	if !ok {
		return nil
	}
	w, _ := v.(*wrapper)
	return w
}

// guard runs fn, converting a panic into a logged error so no unwind ever
// crosses the boundary.
func (w *wrapper) guard(phase errors.Phase, op string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Panic(phase, op, r)
			w.log.Error("panic contained at boundary",
				zap.String("operation", op),
				zap.Stringer("severity", extension.SeverityFatal),
				zap.Any("panic", r))
			if w.hostLog != nil && w.hostLog.Log != nil {
				w.hostLog.Log(w.host.Instance(), extension.SeverityFatal,
					fmt.Sprintf("panic in %s: %v", op, r))
			}
		}
	}()
	return fn()
}

func pluginInit(plugin abi.InstanceHandle) bool {
	w := resolve(plugin)
	if w == nil {
		return false
	}
	if !w.state.CompareAndSwap(stateUninitialized, stateInitializing) {
		w.log.Warn("init refused", zap.Error(errors.AlreadyInitialized("plugin instance")))
		return false
	}
	w.hostLog = extension.As[extension.HostLog](
		HostMainThreadHandle{w.host}.GetExtension(extension.HostLogID), w.host.Instance())

	err := w.guard(errors.PhaseInit, "init", func() error {
		shared, err := w.template.NewShared(w.host)
		if err != nil {
			return errors.UserCode(errors.PhaseInit, "new_shared", err)
		}
		w.shared = shared

		if w.template.NewMainThread != nil {
			mt, err := w.template.NewMainThread(HostMainThreadHandle{w.host}, shared)
			if err != nil {
				return errors.UserCode(errors.PhaseInit, "new_main_thread", err)
			}
			w.mainThread = mt
		}

		if w.template.Extensions != nil {
			if err := w.template.Extensions(w.registry, shared); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		w.state.Store(stateInitializationFailed)
		w.log.Error("initialization failed", zap.Error(err))
		return false
	}

	w.state.Store(stateInitialized)
	return true
}

func pluginActivate(plugin abi.InstanceHandle, sampleRate float64, minFrames, maxFrames uint32) bool {
	w := resolve(plugin)
	if w == nil {
		return false
	}
	if w.state.Load() != stateInitialized {
		w.log.Warn("activate refused", zap.Error(errors.NotInitialized(errors.PhaseActivate, "plugin instance")))
		return false
	}
	if w.active.Load() {
		w.log.Warn("activate refused", zap.Error(errors.AlreadyActivated()))
		return false
	}

	cfg := AudioConfig{SampleRate: sampleRate, MinFrames: minFrames, MaxFrames: maxFrames}
	err := w.guard(errors.PhaseActivate, "activate", func() error {
		processor, err := w.template.Activate(HostAudioThreadHandle{w.host}, w.shared, w.mainThread, cfg)
		if err != nil {
			return errors.UserCode(errors.PhaseActivate, "activate", err)
		}
		if processor == nil {
			return errors.NilPointer(errors.PhaseActivate, "audio processor")
		}
		w.processor = processor
		return nil
	})
	if err != nil {
		// failed activation must leave the instance cleanly deactivated
		w.processor = nil
		w.active.Store(false)
		w.log.Error("activation failed", zap.Error(err))
		return false
	}

	w.active.Store(true)
	return true
}

func pluginDeactivate(plugin abi.InstanceHandle) {
	w := resolve(plugin)
	if w == nil {
		return
	}
	if !w.active.Load() {
		w.log.Warn("deactivate refused", zap.Error(errors.Deactivated(errors.PhaseActivate, "deactivate")))
		return
	}
	w.processing.Store(false)
	w.active.Store(false)
	w.processor = nil
}

func pluginStartProcessing(plugin abi.InstanceHandle) bool {
	w := resolve(plugin)
	if w == nil {
		return false
	}
	if !w.active.Load() {
		w.log.Warn("start_processing refused", zap.Error(errors.Deactivated(errors.PhaseProcess, "start_processing")))
		return false
	}
	err := w.guard(errors.PhaseProcess, "start_processing", func() error {
		return w.processor.StartProcessing()
	})
	if err != nil {
		w.log.Error("start_processing failed", zap.Error(err))
		return false
	}
	w.processing.Store(true)
	return true
}

func pluginStopProcessing(plugin abi.InstanceHandle) {
	w := resolve(plugin)
	if w == nil || !w.active.Load() {
		return
	}
	w.processing.Store(false)
	_ = w.guard(errors.PhaseProcess, "stop_processing", func() error {
		w.processor.StopProcessing()
		return nil
	})
}

func pluginReset(plugin abi.InstanceHandle) {
	w := resolve(plugin)
	if w == nil {
		return
	}
	if !w.active.Load() {
		w.log.Warn("reset refused", zap.Error(errors.Deactivated(errors.PhaseProcess, "reset")))
		return
	}
	_ = w.guard(errors.PhaseProcess, "reset", func() error {
		w.processor.Reset()
		return nil
	})
}

func pluginProcess(plugin abi.InstanceHandle, process *abi.Process) abi.ProcessStatus {
	w := resolve(plugin)
	if w == nil {
		return abi.ProcessError
	}
	if !w.active.Load() {
		w.log.Warn("process refused", zap.Error(errors.Deactivated(errors.PhaseProcess, "process")))
		return abi.ProcessError
	}

	var status abi.ProcessStatus
	err := w.guard(errors.PhaseProcess, "process", func() error {
		ctx, err := bindProcess(process)
		if err != nil {
			return err
		}
		s, err := w.processor.Process(&ctx)
		if err != nil {
			return errors.UserCode(errors.PhaseProcess, "process", err)
		}
		status = s
		return nil
	})
	if err != nil {
		w.log.Error("process failed", zap.Error(err))
		return abi.ProcessError
	}
	return status
}

func pluginGetExtension(plugin abi.InstanceHandle, id string) unsafe.Pointer {
	w := resolve(plugin)
	if w == nil {
		return nil
	}
	// callable before init; the registry is only populated by init, so
	// earlier queries simply find nothing
	return w.registry.Pointer(extension.ID(id))
}

func pluginOnMainThread(plugin abi.InstanceHandle) {
	w := resolve(plugin)
	if w == nil {
		return
	}
	cb, ok := w.mainThread.(MainThreadCallback)
	if !ok {
		return
	}
	_ = w.guard(errors.PhaseProcess, "on_main_thread", func() error {
		cb.OnMainThread()
		return nil
	})
}

func pluginDestroy(plugin abi.InstanceHandle) {
	w := resolve(plugin)
	if w == nil {
		// second destroy: the handle is already gone, nothing to do
		return
	}
	w.state.Store(stateDestroying)

	// destroy implies deactivate
	if w.active.Load() {
		w.processing.Store(false)
		w.active.Store(false)
		w.processor = nil
	}

	w.shared = nil
	w.mainThread = nil
	plugin.Free()
}
