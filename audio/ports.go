package audio

import (
	"math"

	"github.com/freqlab/clapkit/abi"
	"github.com/freqlab/clapkit/errors"
)

// Channel32 declares one 32-bit channel buffer for a port.
type Channel32 struct {
	Data []float32
	// Constant hints that every sample in Data holds the same value.
	Constant bool
}

// Channel64 declares one 64-bit channel buffer for a port.
type Channel64 struct {
	Data     []float64
	Constant bool
}

// PortBuffer declares one port's buffers for a block. Exactly one of
// Channels32/Channels64 may be non-empty.
type PortBuffer struct {
	Latency    uint32
	Channels32 []Channel32
	Channels64 []Channel64
}

// Ports assembles raw port descriptor arrays from per-port channel buffer
// declarations, caching the channel pointer tables across blocks. A host
// keeps one Ports per direction and rebinds it every process call.
//
// The descriptors returned by Bind alias the builder's internal storage and
// stay valid until the next Bind or until the builder is dropped.
type Ports struct {
	ptrs32  []*float32
	ptrs64  []*float64
	configs []abi.AudioBuffer
}

// NewPorts creates a builder with room for the given number of ports and
// total channels before it has to grow.
func NewPorts(portCapacity, channelCapacity int) *Ports {
	return &Ports{
		ptrs32:  make([]*float32, 0, channelCapacity),
		ptrs64:  make([]*float64, 0, channelCapacity),
		configs: make([]abi.AudioBuffer, 0, portCapacity),
	}
}

// Bind builds raw descriptors for the given ports and returns them together
// with the block's frame count, the length of the shortest declared channel.
// Binding more ports or channels than the builder has seen before grows the
// internal pointer tables; every descriptor is computed against the grown
// tables, so earlier ports never end up pointing into freed storage.
func (a *Ports) Bind(ports []PortBuffer) ([]abi.AudioBuffer, uint32, error) {
	a.ptrs32 = a.ptrs32[:0]
	a.ptrs64 = a.ptrs64[:0]
	a.configs = a.configs[:0]

	minFrames := uint32(math.MaxUint32)

	// first pass: collect channel pointers and per-port metadata; pointer
	// tables may still grow, so descriptors are not built yet
	type portMeta struct {
		offset  int
		count   uint32
		is64    bool
		latency uint32
		mask    uint64
	}
	metas := make([]portMeta, 0, len(ports))

	for i := range ports {
		p := &ports[i]
		if len(p.Channels32) > 0 && len(p.Channels64) > 0 {
			return nil, 0, errors.New(errors.PhaseBuffer, errors.KindInvalidData).
				Detail("port %d declares both 32-bit and 64-bit channels", i).
				Build()
		}

		meta := portMeta{latency: p.Latency, is64: len(p.Channels64) > 0}
		if meta.is64 {
			meta.offset = len(a.ptrs64)
			meta.count = uint32(len(p.Channels64))
			for ch := range p.Channels64 {
				c := &p.Channels64[ch]
				a.ptrs64 = append(a.ptrs64, firstSample(c.Data))
				if c.Constant && ch < 64 {
					meta.mask |= 1 << uint(ch)
				}
				if n := uint32(len(c.Data)); n < minFrames {
					minFrames = n
				}
			}
		} else {
			meta.offset = len(a.ptrs32)
			meta.count = uint32(len(p.Channels32))
			for ch := range p.Channels32 {
				c := &p.Channels32[ch]
				a.ptrs32 = append(a.ptrs32, firstSample(c.Data))
				if c.Constant && ch < 64 {
					meta.mask |= 1 << uint(ch)
				}
				if n := uint32(len(c.Data)); n < minFrames {
					minFrames = n
				}
			}
		}
		metas = append(metas, meta)
	}

	// second pass: the pointer tables are final, build the descriptors
	for _, m := range metas {
		cfg := abi.AudioBuffer{
			ChannelCount: m.count,
			Latency:      m.latency,
			ConstantMask: m.mask,
		}
		if m.count > 0 {
			if m.is64 {
				cfg.Data64 = &a.ptrs64[m.offset]
			} else {
				cfg.Data32 = &a.ptrs32[m.offset]
			}
		}
		a.configs = append(a.configs, cfg)
	}

	if minFrames == math.MaxUint32 {
		minFrames = 0
	}
	return a.configs, minFrames, nil
}

func firstSample[S Sample](data []S) *S {
	if len(data) == 0 {
		return nil
	}
	return &data[0]
}
