package audio

import (
	"unsafe"

	"github.com/freqlab/clapkit/abi"
)

// PairKind classifies an input/output channel pairing.
type PairKind uint8

const (
	// PairInputOnly means only the input side has a buffer for this channel.
	PairInputOnly PairKind = iota
	// PairOutputOnly means only the output side has a buffer for this channel.
	PairOutputOnly
	// PairInPlace means input and output share the same buffer. Processing
	// code must read each input sample before overwriting it.
	PairInPlace
	// PairSeparate means input and output have distinct buffers.
	PairSeparate
)

func (k PairKind) String() string {
	switch k {
	case PairInputOnly:
		return "input_only"
	case PairOutputOnly:
		return "output_only"
	case PairInPlace:
		return "in_place"
	case PairSeparate:
		return "separate"
	default:
		return "unknown"
	}
}

// ChannelPair is one channel's input and output buffers, classified so
// processing code can pick an in-place algorithm when the host provided
// shared storage.
type ChannelPair[S Sample] struct {
	Kind PairKind
	// In is the input samples; nil for PairOutputOnly. For PairInPlace it
	// aliases Out.
	In []S
	// Out is the output samples; nil for PairInputOnly.
	Out []S
}

// PortPair views an input port and the output port at the same index.
// Either side may be absent.
type PortPair struct {
	in     *abi.AudioBuffer
	out    *abi.AudioBuffer
	frames uint32
}

// NewPortPair views the given raw input and output descriptors, either of
// which may be nil.
func NewPortPair(in, out *abi.AudioBuffer, frames uint32) PortPair {
	return PortPair{in: in, out: out, frames: frames}
}

// Input returns the input side, if present.
func (p PortPair) Input() (Port, bool) {
	if p.in == nil {
		return Port{}, false
	}
	return NewPort(p.in, p.frames), true
}

// Output returns the output side, if present.
func (p PortPair) Output() (Port, bool) {
	if p.out == nil {
		return Port{}, false
	}
	return NewPort(p.out, p.frames), true
}

// FramesCount returns the number of samples in this block.
func (p PortPair) FramesCount() uint32 {
	return p.frames
}

// ChannelPairCount returns the number of channel pairs, which is the larger
// of the two sides' channel counts.
func (p PortPair) ChannelPairCount() uint32 {
	var in, out uint32
	if p.in != nil {
		in = p.in.ChannelCount
	}
	if p.out != nil {
		out = p.out.ChannelCount
	}
	if in > out {
		return in
	}
	return out
}

// ChannelPair32 returns the classified 32-bit buffers for the given channel
// index, or false when neither side offers 32-bit data for it.
func (p PortPair) ChannelPair32(index uint32) (ChannelPair[float32], bool) {
	in := channelPtr(p.in, index, (*abi.AudioBuffer).Channels32)
	out := channelPtr(p.out, index, (*abi.AudioBuffer).Channels32)
	return pairChannels(in, out, p.frames)
}

// ChannelPair64 returns the classified 64-bit buffers for the given channel
// index, or false when neither side offers 64-bit data for it.
func (p PortPair) ChannelPair64(index uint32) (ChannelPair[float64], bool) {
	in := channelPtr(p.in, index, (*abi.AudioBuffer).Channels64)
	out := channelPtr(p.out, index, (*abi.AudioBuffer).Channels64)
	return pairChannels(in, out, p.frames)
}

func channelPtr[S Sample](raw *abi.AudioBuffer, index uint32, channels func(*abi.AudioBuffer) []*S) *S {
	if raw == nil || index >= raw.ChannelCount {
		return nil
	}
	ptrs := channels(raw)
	if ptrs == nil {
		return nil
	}
	return ptrs[index]
}

func pairChannels[S Sample](in, out *S, frames uint32) (ChannelPair[S], bool) {
	switch {
	case in == nil && out == nil:
		return ChannelPair[S]{}, false
	case out == nil:
		return ChannelPair[S]{Kind: PairInputOnly, In: unsafe.Slice(in, frames)}, true
	case in == nil:
		return ChannelPair[S]{Kind: PairOutputOnly, Out: unsafe.Slice(out, frames)}, true
	case in == out:
		shared := unsafe.Slice(out, frames)
		return ChannelPair[S]{Kind: PairInPlace, In: shared, Out: shared}, true
	default:
		return ChannelPair[S]{Kind: PairSeparate, In: unsafe.Slice(in, frames), Out: unsafe.Slice(out, frames)}, true
	}
}
