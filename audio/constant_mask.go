package audio

import "math/bits"

// ConstantMask hints which of a port's first 64 channels hold one repeated
// sample value for the whole block. Channels beyond the first 64 are always
// treated as non-constant.
type ConstantMask uint64

// FullyConstant is the mask with every representable channel flagged constant.
const FullyConstant ConstantMask = ^ConstantMask(0)

// ConstantMaskFromBits reinterprets a raw mask value.
func ConstantMaskFromBits(bits uint64) ConstantMask {
	return ConstantMask(bits)
}

// Bits returns the raw mask value.
func (m ConstantMask) Bits() uint64 {
	return uint64(m)
}

// IsChannelConstant reports whether the given channel is flagged constant.
// Channels at index 64 and above always report false.
func (m ConstantMask) IsChannelConstant(index uint32) bool {
	if index >= 64 {
		return false
	}
	return m&(1<<index) != 0
}

// SetChannelConstant flags or unflags the given channel. Indexes at 64 and
// above are ignored.
func (m *ConstantMask) SetChannelConstant(index uint32, constant bool) {
	if index >= 64 {
		return
	}
	if constant {
		*m |= 1 << index
	} else {
		*m &^= 1 << index
	}
}

// ConstantChannelCount returns how many channels the mask flags constant.
func (m ConstantMask) ConstantChannelCount() int {
	return bits.OnesCount64(uint64(m))
}

// And returns the intersection of the two masks.
func (m ConstantMask) And(other ConstantMask) ConstantMask {
	return m & other
}

// Or returns the union of the two masks.
func (m ConstantMask) Or(other ConstantMask) ConstantMask {
	return m | other
}

// Xor returns the symmetric difference of the two masks.
func (m ConstantMask) Xor(other ConstantMask) ConstantMask {
	return m ^ other
}
