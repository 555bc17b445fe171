package abi

import "unsafe"

// AudioBuffer describes one audio port's channel data for a process call.
//
// Exactly one of Data32/Data64 is non-nil in the common case; both non-nil
// is legal but degenerate, and both nil is a protocol violation. Each
// channel pointer is valid for exactly the process call's frame count.
type AudioBuffer struct {
	Data32       **float32
	Data64       **float64
	ChannelCount uint32
	Latency      uint32
	ConstantMask uint64
}

// Channels32 returns the port's 32-bit channel pointers, or nil if the port
// does not offer a 32-bit representation.
func (b *AudioBuffer) Channels32() []*float32 {
	if b.Data32 == nil {
		return nil
	}
	return unsafe.Slice(b.Data32, b.ChannelCount)
}

// Channels64 returns the port's 64-bit channel pointers, or nil if the port
// does not offer a 64-bit representation.
func (b *AudioBuffer) Channels64() []*float64 {
	if b.Data64 == nil {
		return nil
	}
	return unsafe.Slice(b.Data64, b.ChannelCount)
}

// ProcessStatus is the result code of a process call.
type ProcessStatus int32

const (
	// ProcessError indicates processing failed; output buffers must be discarded.
	ProcessError ProcessStatus = 0
	// ProcessContinue asks the host to keep processing.
	ProcessContinue ProcessStatus = 1
	// ProcessContinueIfNotQuiet asks the host to keep processing until all
	// inputs have gone quiet.
	ProcessContinueIfNotQuiet ProcessStatus = 2
	// ProcessTail asks the host to keep processing until the plugin's tail
	// has played out.
	ProcessTail ProcessStatus = 3
	// ProcessSleep tells the host no more processing is required until the
	// next event or variation in audio input.
	ProcessSleep ProcessStatus = 4
)

func (s ProcessStatus) String() string {
	switch s {
	case ProcessError:
		return "error"
	case ProcessContinue:
		return "continue"
	case ProcessContinueIfNotQuiet:
		return "continue_if_not_quiet"
	case ProcessTail:
		return "tail"
	case ProcessSleep:
		return "sleep"
	default:
		return "unknown"
	}
}

// UnknownSteadyTime is the SteadyTime value meaning the host does not
// provide a steady sample counter.
const UnknownSteadyTime int64 = -1

// Process carries everything a plugin needs for one block of processing.
type Process struct {
	// SteadyTime is a monotonic sample counter across process calls, unless
	// reset is called; UnknownSteadyTime if unavailable.
	SteadyTime int64
	// FramesCount is the number of samples to process in this block.
	FramesCount uint32

	// Transport points at the transport state for this block, or nil for a
	// free-running host.
	Transport *TransportEvent

	AudioInputs       *AudioBuffer
	AudioOutputs      *AudioBuffer
	AudioInputsCount  uint32
	AudioOutputsCount uint32

	InEvents  *InputEventsVTable
	OutEvents *OutputEventsVTable
}

// Inputs returns the input port descriptors as a slice.
func (p *Process) Inputs() []AudioBuffer {
	if p.AudioInputs == nil {
		return nil
	}
	return unsafe.Slice(p.AudioInputs, p.AudioInputsCount)
}

// Outputs returns the output port descriptors as a slice.
func (p *Process) Outputs() []AudioBuffer {
	if p.AudioOutputs == nil {
		return nil
	}
	return unsafe.Slice(p.AudioOutputs, p.AudioOutputsCount)
}
