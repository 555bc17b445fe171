package abi

import "unsafe"

// Compile-time layout assertions. Structs that must match the wire layout
// byte-for-byte fail the build here if field ordering or padding drifts.
// Structs containing pointers are excluded: their size is platform-defined
// on both sides of the contract.
var (
	_ [EventHeaderSize - unsafe.Sizeof(EventHeader{})]byte
	_ [unsafe.Sizeof(EventHeader{}) - EventHeaderSize]byte

	_ [40 - unsafe.Sizeof(NoteEvent{})]byte
	_ [unsafe.Sizeof(NoteEvent{}) - 40]byte

	_ [40 - unsafe.Sizeof(NoteExpressionEvent{})]byte
	_ [unsafe.Sizeof(NoteExpressionEvent{}) - 40]byte

	_ [20 - unsafe.Sizeof(ParamGestureEvent{})]byte
	_ [unsafe.Sizeof(ParamGestureEvent{}) - 20]byte

	_ [104 - unsafe.Sizeof(TransportEvent{})]byte
	_ [unsafe.Sizeof(TransportEvent{}) - 104]byte

	_ [24 - unsafe.Sizeof(MidiEvent{})]byte
	_ [unsafe.Sizeof(MidiEvent{}) - 24]byte
)
