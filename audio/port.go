package audio

import (
	"unsafe"

	"github.com/freqlab/clapkit/abi"
	"github.com/freqlab/clapkit/errors"
)

// Sample is the set of sample representations a channel view can hold.
type Sample interface {
	~float32 | ~float64
}

// Channels is a view over one port's channel buffers in a single sample
// representation. The zero value has no channels.
type Channels[S Sample] struct {
	ptrs   []*S
	frames uint32
}

// ChannelCount returns the number of channels.
func (c Channels[S]) ChannelCount() uint32 {
	return uint32(len(c.ptrs))
}

// FramesCount returns the number of samples each channel holds.
func (c Channels[S]) FramesCount() uint32 {
	return c.frames
}

// Channel returns the samples of the given channel, or nil when the index
// is out of range or the channel pointer is null.
func (c Channels[S]) Channel(index uint32) []S {
	if index >= uint32(len(c.ptrs)) || c.ptrs[index] == nil {
		return nil
	}
	return unsafe.Slice(c.ptrs[index], c.frames)
}

// Port is a non-owning view over one audio port's buffers for a single
// process call.
type Port struct {
	raw    *abi.AudioBuffer
	frames uint32
}

// NewPort views the given raw port descriptor. The frame count bounds every
// channel slice handed out from it.
func NewPort(raw *abi.AudioBuffer, frames uint32) Port {
	return Port{raw: raw, frames: frames}
}

// ChannelCount returns the number of channels the port declares.
func (p Port) ChannelCount() uint32 {
	if p.raw == nil {
		return 0
	}
	return p.raw.ChannelCount
}

// FramesCount returns the number of samples in this block.
func (p Port) FramesCount() uint32 {
	return p.frames
}

// Latency returns the port's declared latency in samples.
func (p Port) Latency() uint32 {
	if p.raw == nil {
		return 0
	}
	return p.raw.Latency
}

// ConstantMask returns the port's constant channel hints.
func (p Port) ConstantMask() ConstantMask {
	if p.raw == nil {
		return 0
	}
	return ConstantMask(p.raw.ConstantMask)
}

// SetConstantMask writes the port's constant channel hints. Only the side
// that owns the port's buffers for this call may do this.
func (p Port) SetConstantMask(m ConstantMask) {
	if p.raw != nil {
		p.raw.ConstantMask = m.Bits()
	}
}

// SampleType reports which sample representations the port offers. A port
// that offers neither broke the protocol; that is reported as an error
// instead of an empty view.
func (p Port) SampleType() (SampleType, error) {
	if p.raw == nil || (p.raw.Data32 == nil && p.raw.Data64 == nil) {
		return 0, errors.New(errors.PhaseBuffer, errors.KindProtocolViolation).
			Detail("audio port offers neither 32-bit nor 64-bit data").
			Build()
	}
	switch {
	case p.raw.Data32 != nil && p.raw.Data64 != nil:
		return SampleBoth, nil
	case p.raw.Data64 != nil:
		return SampleF64, nil
	default:
		return SampleF32, nil
	}
}

// Channels32 returns the port's 32-bit channel view, or false when the port
// does not offer 32-bit data.
func (p Port) Channels32() (Channels[float32], bool) {
	if p.raw == nil || p.raw.Data32 == nil {
		return Channels[float32]{}, false
	}
	return Channels[float32]{ptrs: p.raw.Channels32(), frames: p.frames}, true
}

// Channels64 returns the port's 64-bit channel view, or false when the port
// does not offer 64-bit data.
func (p Port) Channels64() (Channels[float64], bool) {
	if p.raw == nil || p.raw.Data64 == nil {
		return Channels[float64]{}, false
	}
	return Channels[float64]{ptrs: p.raw.Channels64(), frames: p.frames}, true
}

// Buffers views the input and output port arrays of one process call.
type Buffers struct {
	inputs  []abi.AudioBuffer
	outputs []abi.AudioBuffer
	frames  uint32
}

// BindProcess views the audio ports of the given raw process struct.
func BindProcess(p *abi.Process) Buffers {
	return Buffers{
		inputs:  p.Inputs(),
		outputs: p.Outputs(),
		frames:  p.FramesCount,
	}
}

// NewBuffers views explicit input and output port arrays.
func NewBuffers(inputs, outputs []abi.AudioBuffer, frames uint32) Buffers {
	return Buffers{inputs: inputs, outputs: outputs, frames: frames}
}

// FramesCount returns the number of samples in this block.
func (b Buffers) FramesCount() uint32 {
	return b.frames
}

// InputPortCount returns the number of input ports.
func (b Buffers) InputPortCount() uint32 {
	return uint32(len(b.inputs))
}

// OutputPortCount returns the number of output ports.
func (b Buffers) OutputPortCount() uint32 {
	return uint32(len(b.outputs))
}

// InputPort returns a view over the given input port.
func (b Buffers) InputPort(index uint32) (Port, bool) {
	if index >= uint32(len(b.inputs)) {
		return Port{}, false
	}
	return NewPort(&b.inputs[index], b.frames), true
}

// OutputPort returns a view over the given output port.
func (b Buffers) OutputPort(index uint32) (Port, bool) {
	if index >= uint32(len(b.outputs)) {
		return Port{}, false
	}
	return NewPort(&b.outputs[index], b.frames), true
}

// PortPairCount returns the number of input/output port pairs, which is the
// larger of the two port counts.
func (b Buffers) PortPairCount() uint32 {
	if len(b.inputs) > len(b.outputs) {
		return uint32(len(b.inputs))
	}
	return uint32(len(b.outputs))
}

// PortPair returns a paired view over the input and output ports at the
// given index. Either side may be absent when the counts differ.
func (b Buffers) PortPair(index uint32) (PortPair, bool) {
	if index >= b.PortPairCount() {
		return PortPair{}, false
	}
	var pair PortPair
	pair.frames = b.frames
	if index < uint32(len(b.inputs)) {
		pair.in = &b.inputs[index]
	}
	if index < uint32(len(b.outputs)) {
		pair.out = &b.outputs[index]
	}
	return pair, true
}
