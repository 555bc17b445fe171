package event

import (
	"unsafe"

	"github.com/freqlab/clapkit/abi"
)

// pcknCarrier is implemented by every event type that addresses a note
// through raw PCKN fields. The public Pckn accessors on each type are all
// funneled through this single interface instead of being restated per type.
type pcknCarrier interface {
	rawPckn() (port, channel, key int16, noteID int32)
	setRawPckn(port, channel, key int16, noteID int32)
}

func pcknOf(c pcknCarrier) Pckn {
	return PcknFromRaw(c.rawPckn())
}

func applyPckn(c pcknCarrier, p Pckn) {
	c.setRawPckn(p.RawPort(), p.RawChannel(), p.RawKey(), p.RawNoteID())
}

func coreHeader(size uintptr, typ uint16, time uint32) abi.EventHeader {
	return abi.EventHeader{
		Size:    uint32(size),
		Time:    time,
		SpaceID: abi.CoreEventSpaceID,
		Type:    typ,
	}
}

// NoteEvent is a NoteOn, NoteOff, NoteChoke or NoteEnd event; the header's
// type tag tells which.
type NoteEvent abi.NoteEvent

func newNote(typ uint16, time uint32, pckn Pckn, velocity float64) *NoteEvent {
	e := &NoteEvent{
		Header:   coreHeader(unsafe.Sizeof(abi.NoteEvent{}), typ, time),
		Velocity: velocity,
	}
	applyPckn(e, pckn)
	return e
}

// NewNoteOn creates a note-on event.
func NewNoteOn(time uint32, pckn Pckn, velocity float64) *NoteEvent {
	return newNote(abi.EventNoteOn, time, pckn, velocity)
}

// NewNoteOff creates a note-off event.
func NewNoteOff(time uint32, pckn Pckn, velocity float64) *NoteEvent {
	return newNote(abi.EventNoteOff, time, pckn, velocity)
}

// NewNoteChoke creates a note-choke event, asking the voice to stop immediately.
func NewNoteChoke(time uint32, pckn Pckn) *NoteEvent {
	return newNote(abi.EventNoteChoke, time, pckn, 0)
}

// NewNoteEnd creates a note-end event, sent by the plugin when a voice ended.
func NewNoteEnd(time uint32, pckn Pckn) *NoteEvent {
	return newNote(abi.EventNoteEnd, time, pckn, 0)
}

func (e *NoteEvent) EventHeader() *abi.EventHeader { return &e.Header }

func (e *NoteEvent) rawPckn() (int16, int16, int16, int32) {
	return e.PortIndex, e.Channel, e.Key, e.NoteID
}

func (e *NoteEvent) setRawPckn(port, channel, key int16, noteID int32) {
	e.PortIndex, e.Channel, e.Key, e.NoteID = port, channel, key, noteID
}

// Pckn returns the note address of this event.
func (e *NoteEvent) Pckn() Pckn { return pcknOf(e) }

// SetPckn sets the note address of this event.
func (e *NoteEvent) SetPckn(p Pckn) { applyPckn(e, p) }

// IsNoteOn reports whether this is a note-on.
func (e *NoteEvent) IsNoteOn() bool { return e.Header.Type == abi.EventNoteOn }

// IsNoteOff reports whether this is a note-off.
func (e *NoteEvent) IsNoteOff() bool { return e.Header.Type == abi.EventNoteOff }

// NoteExpressionEvent carries a per-note expression value.
type NoteExpressionEvent abi.NoteExpressionEvent

// NewNoteExpression creates a note expression event.
func NewNoteExpression(time uint32, expressionID int32, pckn Pckn, value float64) *NoteExpressionEvent {
	e := &NoteExpressionEvent{
		Header:       coreHeader(unsafe.Sizeof(abi.NoteExpressionEvent{}), abi.EventNoteExpression, time),
		ExpressionID: expressionID,
		Value:        value,
	}
	applyPckn(e, pckn)
	return e
}

func (e *NoteExpressionEvent) EventHeader() *abi.EventHeader { return &e.Header }

func (e *NoteExpressionEvent) rawPckn() (int16, int16, int16, int32) {
	return e.PortIndex, e.Channel, e.Key, e.NoteID
}

func (e *NoteExpressionEvent) setRawPckn(port, channel, key int16, noteID int32) {
	e.PortIndex, e.Channel, e.Key, e.NoteID = port, channel, key, noteID
}

// Pckn returns the note address of this event.
func (e *NoteExpressionEvent) Pckn() Pckn { return pcknOf(e) }

// SetPckn sets the note address of this event.
func (e *NoteExpressionEvent) SetPckn(p Pckn) { applyPckn(e, p) }

// ParamValueEvent sets a parameter's value, optionally scoped to one note.
type ParamValueEvent abi.ParamValueEvent

// NewParamValue creates a parameter value event addressing all notes.
func NewParamValue(time uint32, paramID uint32, value float64) *ParamValueEvent {
	e := &ParamValueEvent{
		Header:  coreHeader(unsafe.Sizeof(abi.ParamValueEvent{}), abi.EventParamValue, time),
		ParamID: paramID,
		Value:   value,
	}
	applyPckn(e, PcknMatchAll())
	return e
}

func (e *ParamValueEvent) EventHeader() *abi.EventHeader { return &e.Header }

func (e *ParamValueEvent) rawPckn() (int16, int16, int16, int32) {
	return e.PortIndex, e.Channel, e.Key, e.NoteID
}

func (e *ParamValueEvent) setRawPckn(port, channel, key int16, noteID int32) {
	e.PortIndex, e.Channel, e.Key, e.NoteID = port, channel, key, noteID
}

// Pckn returns the note scope of this event.
func (e *ParamValueEvent) Pckn() Pckn { return pcknOf(e) }

// SetPckn sets the note scope of this event.
func (e *ParamValueEvent) SetPckn(p Pckn) { applyPckn(e, p) }

// ParamModEvent applies a modulation amount on top of a parameter's value.
type ParamModEvent abi.ParamModEvent

// NewParamMod creates a parameter modulation event addressing all notes.
func NewParamMod(time uint32, paramID uint32, amount float64) *ParamModEvent {
	e := &ParamModEvent{
		Header:  coreHeader(unsafe.Sizeof(abi.ParamModEvent{}), abi.EventParamMod, time),
		ParamID: paramID,
		Amount:  amount,
	}
	applyPckn(e, PcknMatchAll())
	return e
}

func (e *ParamModEvent) EventHeader() *abi.EventHeader { return &e.Header }

func (e *ParamModEvent) rawPckn() (int16, int16, int16, int32) {
	return e.PortIndex, e.Channel, e.Key, e.NoteID
}

func (e *ParamModEvent) setRawPckn(port, channel, key int16, noteID int32) {
	e.PortIndex, e.Channel, e.Key, e.NoteID = port, channel, key, noteID
}

// Pckn returns the note scope of this event.
func (e *ParamModEvent) Pckn() Pckn { return pcknOf(e) }

// SetPckn sets the note scope of this event.
func (e *ParamModEvent) SetPckn(p Pckn) { applyPckn(e, p) }

// ParamGestureEvent marks the boundaries of a user parameter gesture.
type ParamGestureEvent abi.ParamGestureEvent

// NewParamGestureBegin creates a gesture begin event.
func NewParamGestureBegin(time uint32, paramID uint32) *ParamGestureEvent {
	return &ParamGestureEvent{
		Header:  coreHeader(unsafe.Sizeof(abi.ParamGestureEvent{}), abi.EventParamGestureBegin, time),
		ParamID: paramID,
	}
}

// NewParamGestureEnd creates a gesture end event.
func NewParamGestureEnd(time uint32, paramID uint32) *ParamGestureEvent {
	return &ParamGestureEvent{
		Header:  coreHeader(unsafe.Sizeof(abi.ParamGestureEvent{}), abi.EventParamGestureEnd, time),
		ParamID: paramID,
	}
}

func (e *ParamGestureEvent) EventHeader() *abi.EventHeader { return &e.Header }

// IsBegin reports whether this marks the beginning of a gesture.
func (e *ParamGestureEvent) IsBegin() bool { return e.Header.Type == abi.EventParamGestureBegin }

// TransportEvent describes the host transport state.
type TransportEvent abi.TransportEvent

// NewTransport creates a transport event at time 0 with the given flags.
func NewTransport(flags uint32) *TransportEvent {
	return &TransportEvent{
		Header:         coreHeader(unsafe.Sizeof(abi.TransportEvent{}), abi.EventTransport, 0),
		TransportFlags: flags,
	}
}

func (e *TransportEvent) EventHeader() *abi.EventHeader { return &e.Header }

// IsPlaying reports whether the transport is rolling.
func (e *TransportEvent) IsPlaying() bool {
	return e.TransportFlags&abi.TransportIsPlaying != 0
}

// MidiEvent carries a raw 3-byte MIDI 1.0 message.
type MidiEvent abi.MidiEvent

// NewMidi creates a raw MIDI event.
func NewMidi(time uint32, portIndex uint16, data [3]byte) *MidiEvent {
	return &MidiEvent{
		Header:    coreHeader(unsafe.Sizeof(abi.MidiEvent{}), abi.EventMidi, time),
		PortIndex: portIndex,
		Data:      data,
	}
}

func (e *MidiEvent) EventHeader() *abi.EventHeader { return &e.Header }
