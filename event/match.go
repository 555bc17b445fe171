package event

import "github.com/freqlab/clapkit/abi"

// Value is the set of field types a Match can hold.
type Value interface {
	~uint16 | ~uint32
}

// Match represents either a specific value or a wildcard matching all
// values of its field. The zero value is the wildcard.
type Match[T Value] struct {
	value    T
	specific bool
}

// Specific returns a Match for one exact value.
func Specific[T Value](v T) Match[T] {
	return Match[T]{value: v, specific: true}
}

// MatchAll returns the wildcard Match.
func MatchAll[T Value]() Match[T] {
	return Match[T]{}
}

// IsAll reports whether this is the wildcard.
func (m Match[T]) IsAll() bool {
	return !m.specific
}

// Value returns the specific value, or false for the wildcard.
func (m Match[T]) Value() (T, bool) {
	return m.value, m.specific
}

// Matches reports whether the two matchers agree. The wildcard matches
// everything, in both directions; two specific values match iff equal.
func (m Match[T]) Matches(other Match[T]) bool {
	if !m.specific || !other.specific {
		return true
	}
	return m.value == other.value
}

// MatchFromRaw16 interprets a raw field value: negative means wildcard.
func MatchFromRaw16(raw int16) Match[uint16] {
	if raw < 0 {
		return Match[uint16]{}
	}
	return Specific(uint16(raw))
}

// MatchFromRaw32 interprets a raw field value: negative means wildcard.
func MatchFromRaw32(raw int32) Match[uint32] {
	if raw < 0 {
		return Match[uint32]{}
	}
	return Specific(uint32(raw))
}

func rawOf16(m Match[uint16]) int16 {
	if !m.specific {
		return abi.PcknAll
	}
	return int16(m.value)
}

func rawOf32(m Match[uint32]) int32 {
	if !m.specific {
		return abi.PcknAll
	}
	return int32(m.value)
}

// Pckn is the Port, Channel, Key, NoteID tuple addressing a note or voice.
// Each field is independently wildcardable.
//
// A Pckn of (0, 3, all, all) matches every voice on channel 3 of port 0;
// (all, 0, 60, all) matches every channel-0 middle-C voice regardless of
// port or note id.
type Pckn struct {
	// Port is the note port the event addresses. See the note ports extension.
	Port Match[uint16]
	// Channel is the note's channel, usually in 0..=15 as in MIDI 1.
	Channel Match[uint16]
	// Key is the note's key number, 60 being middle C, in 0..=127.
	Key Match[uint16]
	// NoteID uniquely identifies a note among overlapping notes that play
	// the same key.
	NoteID Match[uint32]
}

// NewPckn constructs a Pckn from its components.
func NewPckn(port, channel, key Match[uint16], noteID Match[uint32]) Pckn {
	return Pckn{Port: port, Channel: channel, Key: key, NoteID: noteID}
}

// PcknMatchAll returns the Pckn whose every field is the wildcard.
func PcknMatchAll() Pckn {
	return Pckn{}
}

// Matches reports whether this tuple matches the given one, honoring
// wildcards in either tuple. Matching is reflexive and symmetric.
func (p Pckn) Matches(other Pckn) bool {
	return p.Port.Matches(other.Port) &&
		p.Channel.Matches(other.Channel) &&
		p.Key.Matches(other.Key) &&
		p.NoteID.Matches(other.NoteID)
}

// PcknFromRaw constructs a Pckn from raw field encodings, where any
// negative value means the wildcard.
func PcknFromRaw(port, channel, key int16, noteID int32) Pckn {
	return Pckn{
		Port:    MatchFromRaw16(port),
		Channel: MatchFromRaw16(channel),
		Key:     MatchFromRaw16(key),
		NoteID:  MatchFromRaw32(noteID),
	}
}

// RawPort returns the raw encoding of the port field, -1 for the wildcard.
func (p Pckn) RawPort() int16 { return rawOf16(p.Port) }

// RawChannel returns the raw encoding of the channel field, -1 for the wildcard.
func (p Pckn) RawChannel() int16 { return rawOf16(p.Channel) }

// RawKey returns the raw encoding of the key field, -1 for the wildcard.
func (p Pckn) RawKey() int16 { return rawOf16(p.Key) }

// RawNoteID returns the raw encoding of the note id field, -1 for the wildcard.
func (p Pckn) RawNoteID() int32 { return rawOf32(p.NoteID) }
