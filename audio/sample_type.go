package audio

// SampleType identifies which sample representations a port offers.
type SampleType uint8

const (
	// SampleF32 means the port offers 32-bit float channel data only.
	SampleF32 SampleType = iota
	// SampleF64 means the port offers 64-bit float channel data only.
	SampleF64
	// SampleBoth means the port offers both representations for the same
	// channels. This is legal but degenerate; most hosts pick one.
	SampleBoth
)

func (t SampleType) String() string {
	switch t {
	case SampleF32:
		return "f32"
	case SampleF64:
		return "f64"
	case SampleBoth:
		return "f32+f64"
	default:
		return "unknown"
	}
}

// Has32 reports whether a 32-bit representation is offered.
func (t SampleType) Has32() bool {
	return t == SampleF32 || t == SampleBoth
}

// Has64 reports whether a 64-bit representation is offered.
func (t SampleType) Has64() bool {
	return t == SampleF64 || t == SampleBoth
}
