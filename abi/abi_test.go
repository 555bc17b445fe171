package abi

import (
	"testing"
	"unsafe"
)

func TestEventHeaderLayout(t *testing.T) {
	if got := unsafe.Sizeof(EventHeader{}); got != EventHeaderSize {
		t.Fatalf("EventHeader size = %d, want %d", got, EventHeaderSize)
	}

	h := EventHeader{Size: 40, Time: 7, SpaceID: CoreEventSpaceID, Type: EventNoteOn, Flags: EventIsLive}
	if h.Size < EventHeaderSize {
		t.Fatalf("event size %d smaller than header", h.Size)
	}
}

func TestTypedEventHeaderOffset(t *testing.T) {
	// The header must be the first field of every typed event so an event
	// pointer and its header pointer are interchangeable.
	tests := []struct {
		name   string
		offset uintptr
	}{
		{"NoteEvent", unsafe.Offsetof(NoteEvent{}.Header)},
		{"NoteExpressionEvent", unsafe.Offsetof(NoteExpressionEvent{}.Header)},
		{"ParamValueEvent", unsafe.Offsetof(ParamValueEvent{}.Header)},
		{"ParamModEvent", unsafe.Offsetof(ParamModEvent{}.Header)},
		{"ParamGestureEvent", unsafe.Offsetof(ParamGestureEvent{}.Header)},
		{"TransportEvent", unsafe.Offsetof(TransportEvent{}.Header)},
		{"MidiEvent", unsafe.Offsetof(MidiEvent{}.Header)},
	}
	for _, tt := range tests {
		if tt.offset != 0 {
			t.Errorf("%s: header offset = %d, want 0", tt.name, tt.offset)
		}
	}
}

func TestInstanceHandle(t *testing.T) {
	type data struct{ n int }
	d := &data{n: 42}

	h := NewInstanceHandle(d)
	got, ok := h.Resolve()
	if !ok {
		t.Fatal("Resolve failed for a live handle")
	}
	if got.(*data).n != 42 {
		t.Fatalf("Resolve returned %v", got)
	}

	h.Free()
	if _, ok := h.Resolve(); ok {
		t.Fatal("Resolve succeeded after Free")
	}

	// Freeing twice must not panic out of Free.
	h.Free()

	var zero InstanceHandle
	if _, ok := zero.Resolve(); ok {
		t.Fatal("zero handle resolved")
	}
}

func TestAudioBufferChannels(t *testing.T) {
	var b AudioBuffer
	if b.Channels32() != nil || b.Channels64() != nil {
		t.Fatal("nil data should yield nil channel slices")
	}

	ch0 := make([]float32, 8)
	ch1 := make([]float32, 8)
	ptrs := []*float32{&ch0[0], &ch1[0]}
	b = AudioBuffer{Data32: &ptrs[0], ChannelCount: 2}

	chans := b.Channels32()
	if len(chans) != 2 {
		t.Fatalf("channel count = %d, want 2", len(chans))
	}
	if chans[0] != &ch0[0] || chans[1] != &ch1[0] {
		t.Fatal("channel pointers do not round-trip")
	}
}
