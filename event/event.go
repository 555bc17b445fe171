package event

import (
	"unsafe"

	"github.com/freqlab/clapkit/abi"
)

// Event is any event record that starts with an abi.EventHeader and whose
// header Size covers the full record.
type Event interface {
	// EventHeader returns the header, which addresses the first byte of the
	// full event record.
	EventHeader() *abi.EventHeader
}

// UnknownEvent is a borrowed view over an event of undetermined type. It is
// never constructed by value: an UnknownEvent pointer always aliases the
// full event record it was obtained from.
type UnknownEvent struct {
	header abi.EventHeader
}

// FromRaw views the event record starting at the given header. Returns nil
// for a nil header.
func FromRaw(h *abi.EventHeader) *UnknownEvent {
	return (*UnknownEvent)(unsafe.Pointer(h))
}

// EventHeader implements Event.
func (e *UnknownEvent) EventHeader() *abi.EventHeader {
	return (*abi.EventHeader)(unsafe.Pointer(e))
}

// Time returns the event's sample offset within the current block.
func (e *UnknownEvent) Time() uint32 {
	return e.header.Time
}

// SpaceID returns the event's space tag.
func (e *UnknownEvent) SpaceID() uint16 {
	return e.header.SpaceID
}

// Type returns the event's type tag.
func (e *UnknownEvent) Type() uint16 {
	return e.header.Type
}

// Size returns the total size of the event record, header included.
func (e *UnknownEvent) Size() uint32 {
	return e.header.Size
}

// Bytes returns the raw bytes of the full event record.
func (e *UnknownEvent) Bytes() []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(e)), e.header.Size)
}

func (e *UnknownEvent) isCore(typ uint16, size uintptr) bool {
	return e.header.SpaceID == abi.CoreEventSpaceID &&
		e.header.Type == typ &&
		uintptr(e.header.Size) >= size
}

// AsNote downcasts to a note event (NoteOn, NoteOff, NoteChoke or NoteEnd).
func (e *UnknownEvent) AsNote() (*NoteEvent, bool) {
	switch e.header.Type {
	case abi.EventNoteOn, abi.EventNoteOff, abi.EventNoteChoke, abi.EventNoteEnd:
	default:
		return nil, false
	}
	if e.header.SpaceID != abi.CoreEventSpaceID || uintptr(e.header.Size) < unsafe.Sizeof(abi.NoteEvent{}) {
		return nil, false
	}
	return (*NoteEvent)(unsafe.Pointer(e)), true
}

// AsNoteExpression downcasts to a note expression event.
func (e *UnknownEvent) AsNoteExpression() (*NoteExpressionEvent, bool) {
	if !e.isCore(abi.EventNoteExpression, unsafe.Sizeof(abi.NoteExpressionEvent{})) {
		return nil, false
	}
	return (*NoteExpressionEvent)(unsafe.Pointer(e)), true
}

// AsParamValue downcasts to a parameter value event.
func (e *UnknownEvent) AsParamValue() (*ParamValueEvent, bool) {
	if !e.isCore(abi.EventParamValue, unsafe.Sizeof(abi.ParamValueEvent{})) {
		return nil, false
	}
	return (*ParamValueEvent)(unsafe.Pointer(e)), true
}

// AsParamMod downcasts to a parameter modulation event.
func (e *UnknownEvent) AsParamMod() (*ParamModEvent, bool) {
	if !e.isCore(abi.EventParamMod, unsafe.Sizeof(abi.ParamModEvent{})) {
		return nil, false
	}
	return (*ParamModEvent)(unsafe.Pointer(e)), true
}

// AsParamGesture downcasts to a gesture begin/end event.
func (e *UnknownEvent) AsParamGesture() (*ParamGestureEvent, bool) {
	if e.header.Type != abi.EventParamGestureBegin && e.header.Type != abi.EventParamGestureEnd {
		return nil, false
	}
	if e.header.SpaceID != abi.CoreEventSpaceID || uintptr(e.header.Size) < unsafe.Sizeof(abi.ParamGestureEvent{}) {
		return nil, false
	}
	return (*ParamGestureEvent)(unsafe.Pointer(e)), true
}

// AsTransport downcasts to a transport event.
func (e *UnknownEvent) AsTransport() (*TransportEvent, bool) {
	if !e.isCore(abi.EventTransport, unsafe.Sizeof(abi.TransportEvent{})) {
		return nil, false
	}
	return (*TransportEvent)(unsafe.Pointer(e)), true
}

// AsMidi downcasts to a raw MIDI 1.0 event.
func (e *UnknownEvent) AsMidi() (*MidiEvent, bool) {
	if !e.isCore(abi.EventMidi, unsafe.Sizeof(abi.MidiEvent{})) {
		return nil, false
	}
	return (*MidiEvent)(unsafe.Pointer(e)), true
}
