package abi

import "unsafe"

// EventHeader is the common metadata header carried by every event.
//
// The header records the total size of the event (header included), the
// sample offset the event occurs at within the current process call, the
// event space and type tags used for downcasting, and the event flags.
type EventHeader struct {
	Size    uint32
	Time    uint32
	SpaceID uint16
	Type    uint16
	Flags   uint32
}

// EventHeaderSize is the byte size of EventHeader, part of the wire contract.
const EventHeaderSize = 16

// Event flags.
const (
	// EventIsLive marks an event as a live user gesture rather than playback.
	EventIsLive uint32 = 1 << 0
	// EventDontRecord asks the host not to record this event.
	EventDontRecord uint32 = 1 << 1
)

// Event space IDs. Spaces partition the 16-bit type tag namespace so
// third-party event sets cannot collide with the core ones.
const (
	CoreEventSpaceID    uint16 = 0
	InvalidEventSpaceID uint16 = 0xFFFF
)

// Core event type tags.
const (
	EventNoteOn            uint16 = 0
	EventNoteOff           uint16 = 1
	EventNoteChoke         uint16 = 2
	EventNoteEnd           uint16 = 3
	EventNoteExpression    uint16 = 4
	EventParamValue        uint16 = 5
	EventParamMod          uint16 = 6
	EventParamGestureBegin uint16 = 7
	EventParamGestureEnd   uint16 = 8
	EventTransport         uint16 = 9
	EventMidi              uint16 = 10
	EventMidiSysex         uint16 = 11
	EventMidi2             uint16 = 12
)

// PcknAll is the raw sentinel meaning "match all values" in any of the
// port/channel/key/note-id fields below.
const PcknAll = -1

// NoteEvent is the payload for the NoteOn/NoteOff/NoteChoke/NoteEnd types.
type NoteEvent struct {
	Header    EventHeader
	NoteID    int32
	PortIndex int16
	Channel   int16
	Key       int16
	Velocity  float64
}

// NoteExpressionEvent carries a per-note expression value change.
type NoteExpressionEvent struct {
	Header       EventHeader
	ExpressionID int32
	NoteID       int32
	PortIndex    int16
	Channel      int16
	Key          int16
	Value        float64
}

// Note expression IDs.
const (
	NoteExpressionVolume     int32 = 0
	NoteExpressionPan        int32 = 1
	NoteExpressionTuning     int32 = 2
	NoteExpressionVibrato    int32 = 3
	NoteExpressionExpression int32 = 4
	NoteExpressionBrightness int32 = 5
	NoteExpressionPressure   int32 = 6
)

// ParamValueEvent carries a parameter value change, optionally scoped to a
// single note through its PCKN fields.
type ParamValueEvent struct {
	Header    EventHeader
	ParamID   uint32
	Cookie    unsafe.Pointer
	NoteID    int32
	PortIndex int16
	Channel   int16
	Key       int16
	Value     float64
}

// ParamModEvent carries a parameter modulation amount, relative to the
// parameter's base value.
type ParamModEvent struct {
	Header    EventHeader
	ParamID   uint32
	Cookie    unsafe.Pointer
	NoteID    int32
	PortIndex int16
	Channel   int16
	Key       int16
	Amount    float64
}

// ParamGestureEvent marks the beginning or end of a user parameter gesture.
type ParamGestureEvent struct {
	Header  EventHeader
	ParamID uint32
}

// BeatTime is a position on the musical timeline, as a signed 32.31 fixed
// point number of beats.
type BeatTime int64

// SecTime is a position on the wall-clock timeline, as a signed 32.31 fixed
// point number of seconds.
type SecTime int64

// FixedPointFactor converts between fixed point time values and their
// floating point equivalents.
const FixedPointFactor = int64(1) << 31

// TransportEvent describes the host transport state for a process call.
type TransportEvent struct {
	Header           EventHeader
	TransportFlags   uint32
	SongPosBeats     BeatTime
	SongPosSeconds   SecTime
	Tempo            float64
	TempoInc         float64
	LoopStartBeats   BeatTime
	LoopEndBeats     BeatTime
	LoopStartSeconds SecTime
	LoopEndSeconds   SecTime
	BarStart         BeatTime
	BarNumber        int32
	TSigNum          uint16
	TSigDenom        uint16
}

// Transport flags.
const (
	TransportHasTempo           uint32 = 1 << 0
	TransportHasBeatsTimeline   uint32 = 1 << 1
	TransportHasSecondsTimeline uint32 = 1 << 2
	TransportHasTimeSignature   uint32 = 1 << 3
	TransportIsPlaying          uint32 = 1 << 4
	TransportIsRecording        uint32 = 1 << 5
	TransportIsLoopActive       uint32 = 1 << 6
	TransportIsWithinPreRoll    uint32 = 1 << 7
)

// MidiEvent carries a raw 3-byte MIDI 1.0 message.
type MidiEvent struct {
	Header    EventHeader
	PortIndex uint16
	Data      [3]byte
}

// InputEventsVTable is the function table backing a read-only, ordered event
// list. Ctx is the list's own context pointer and is passed back as the
// first argument of every call.
type InputEventsVTable struct {
	Ctx  unsafe.Pointer
	Size func(ctx unsafe.Pointer) uint32
	Get  func(ctx unsafe.Pointer, index uint32) *EventHeader
}

// OutputEventsVTable is the function table backing an append-only event
// list. TryPush reports false when the event could not be stored.
type OutputEventsVTable struct {
	Ctx     unsafe.Pointer
	TryPush func(ctx unsafe.Pointer, event *EventHeader) bool
}
