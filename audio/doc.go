// Package audio implements the audio buffer data plane: zero-copy channel
// views over raw sample pointer arrays, 32/64-bit sample type polymorphism,
// the per-channel constant value hint, and input/output channel pairing for
// in-place processing.
//
// Plugins consume Port and PortPair views assembled from the raw process
// struct; hosts use the Ports builder to declare per-port channel buffers
// once per block and hand the resulting raw descriptors to the plugin.
// Neither side copies samples: every view aliases caller-owned storage and
// is only valid for the duration of one process call.
package audio
