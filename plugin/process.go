package plugin

import (
	"github.com/freqlab/clapkit/abi"
	"github.com/freqlab/clapkit/audio"
	"github.com/freqlab/clapkit/errors"
	"github.com/freqlab/clapkit/event"
)

// ProcessContext gathers everything one process call hands the audio
// processor: the block's audio buffers, its event lists, the transport
// state and the steady sample counter. It aliases host-owned storage and
// is only valid for the duration of the call.
type ProcessContext struct {
	// SteadyTime is a sample counter that grows monotonically across
	// blocks unless reset is called; abi.UnknownSteadyTime if the host
	// does not provide one.
	SteadyTime  int64
	FramesCount uint32

	// Transport is the host transport state, or nil for a free-running host.
	Transport *event.TransportEvent

	Audio     audio.Buffers
	InEvents  event.InputEvents
	OutEvents event.OutputEvents
}

// bindProcess views the raw process struct as a ProcessContext.
func bindProcess(p *abi.Process) (ProcessContext, error) {
	if p == nil {
		return ProcessContext{}, errors.NilPointer(errors.PhaseProcess, "process struct")
	}
	return ProcessContext{
		SteadyTime:  p.SteadyTime,
		FramesCount: p.FramesCount,
		Transport:   (*event.TransportEvent)(p.Transport),
		Audio:       audio.BindProcess(p),
		InEvents:    event.NewInputEvents(p.InEvents),
		OutEvents:   event.NewOutputEvents(p.OutEvents),
	}, nil
}
