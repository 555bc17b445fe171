package event

import (
	"testing"

	"github.com/freqlab/clapkit/abi"
)

func noteOnAt(time uint32, key uint16) *NoteEvent {
	return NewNoteOn(time, NewPckn(Specific[uint16](0), Specific[uint16](0), Specific(key), MatchAll[uint32]()), 0.8)
}

func TestEventBufferPushGet(t *testing.T) {
	buf := NewEventBuffer()
	if buf.Len() != 0 {
		t.Fatalf("new buffer Len() = %d, want 0", buf.Len())
	}
	if buf.Get(0) != nil {
		t.Fatal("Get on empty buffer should return nil")
	}

	buf.Push(noteOnAt(3, 60))
	buf.Push(NewParamValue(7, 11, 0.5))
	buf.Push(NewMidi(9, 0, [3]byte{0x90, 60, 100}))

	if buf.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", buf.Len())
	}

	note, ok := buf.Get(0).AsNote()
	if !ok {
		t.Fatal("event 0 should downcast to a note event")
	}
	if !note.IsNoteOn() || note.Velocity != 0.8 {
		t.Errorf("note = type %d velocity %v", note.Header.Type, note.Velocity)
	}
	if key, keyOK := note.Pckn().Key.Value(); !keyOK || key != 60 {
		t.Errorf("note key = %v, %v, want 60", key, keyOK)
	}

	pv, ok := buf.Get(1).AsParamValue()
	if !ok {
		t.Fatal("event 1 should downcast to a param value event")
	}
	if pv.ParamID != 11 || pv.Value != 0.5 {
		t.Errorf("param value = id %d value %v", pv.ParamID, pv.Value)
	}

	midi, ok := buf.Get(2).AsMidi()
	if !ok {
		t.Fatal("event 2 should downcast to a midi event")
	}
	if midi.Data != [3]byte{0x90, 60, 100} {
		t.Errorf("midi data = %v", midi.Data)
	}

	if _, ok := buf.Get(2).AsTransport(); ok {
		t.Error("midi event should not downcast to transport")
	}
}

func TestEventBufferCopiesRecords(t *testing.T) {
	buf := NewEventBuffer()
	src := noteOnAt(5, 62)
	buf.Push(src)

	// mutating the source after the push must not affect the stored copy
	src.Velocity = 0
	src.Header.Time = 99

	stored, ok := buf.Get(0).AsNote()
	if !ok {
		t.Fatal("stored event should downcast to a note event")
	}
	if stored.Velocity != 0.8 || stored.Header.Time != 5 {
		t.Errorf("stored copy changed: time %d velocity %v", stored.Header.Time, stored.Velocity)
	}
}

func TestEventBufferPushSorted(t *testing.T) {
	buf := NewEventBuffer()
	buf.PushSorted(noteOnAt(10, 60))
	buf.PushSorted(noteOnAt(2, 61))
	buf.PushSorted(noteOnAt(10, 62))
	buf.PushSorted(noteOnAt(5, 63))

	wantTimes := []uint32{2, 5, 10, 10}
	wantKeys := []uint16{61, 63, 60, 62}
	for i, want := range wantTimes {
		e := buf.Get(uint32(i))
		if e.Time() != want {
			t.Errorf("event %d time = %d, want %d", i, e.Time(), want)
		}
		note, _ := e.AsNote()
		if key, _ := note.Pckn().Key.Value(); key != wantKeys[i] {
			t.Errorf("event %d key = %d, want %d", i, key, wantKeys[i])
		}
	}
}

func TestEventBufferSortIsStable(t *testing.T) {
	buf := NewEventBuffer()
	buf.Push(noteOnAt(8, 60))
	buf.Push(noteOnAt(3, 61))
	buf.Push(noteOnAt(8, 62))
	buf.Push(noteOnAt(3, 63))
	buf.Sort()

	wantKeys := []uint16{61, 63, 60, 62}
	for i, want := range wantKeys {
		note, ok := buf.Get(uint32(i)).AsNote()
		if !ok {
			t.Fatalf("event %d should be a note", i)
		}
		if key, _ := note.Pckn().Key.Value(); key != want {
			t.Errorf("event %d key = %d, want %d", i, key, want)
		}
	}
}

func TestEventBufferClear(t *testing.T) {
	buf := NewEventBuffer()
	buf.Push(noteOnAt(0, 60))
	buf.Clear()
	if buf.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", buf.Len())
	}
	buf.Push(noteOnAt(4, 64))
	if buf.Len() != 1 || buf.Get(0).Time() != 4 {
		t.Error("buffer should be reusable after Clear")
	}
}

func TestEventBufferRejectsTruncatedRecords(t *testing.T) {
	buf := NewEventBuffer()
	bad := noteOnAt(0, 60)
	bad.Header.Size = abi.EventHeaderSize - 1
	buf.Push(bad)
	if buf.Len() != 0 {
		t.Errorf("Len() = %d, want 0 after rejecting truncated record", buf.Len())
	}
}

func TestEventBufferListViews(t *testing.T) {
	buf := NewEventBuffer()
	buf.Push(noteOnAt(1, 60))
	buf.Push(noteOnAt(2, 61))

	in := buf.InputEvents()
	if in.Len() != 2 {
		t.Fatalf("input view Len() = %d, want 2", in.Len())
	}
	if e := in.Get(1); e == nil || e.Time() != 2 {
		t.Error("input view Get(1) should resolve the second event")
	}
	if in.Get(2) != nil {
		t.Error("input view Get out of range should return nil")
	}

	out := buf.OutputEvents()
	if err := out.TryPush(noteOnAt(3, 62)); err != nil {
		t.Fatalf("TryPush failed: %v", err)
	}
	// the input view reflects the growth
	if in.Len() != 3 {
		t.Errorf("input view Len() after push = %d, want 3", in.Len())
	}

	count := 0
	for it := in.Iter(); ; {
		e, ok := it.Next()
		if !ok {
			break
		}
		if e.Time() != uint32(count+1) {
			t.Errorf("iter event %d time = %d", count, e.Time())
		}
		count++
	}
	if count != 3 {
		t.Errorf("iterated %d events, want 3", count)
	}

	times := []uint32{}
	for it := in.IterRange(1, 5); ; {
		e, ok := it.Next()
		if !ok {
			break
		}
		times = append(times, e.Time())
	}
	if len(times) != 2 || times[0] != 2 || times[1] != 3 {
		t.Errorf("IterRange(1, 5) times = %v, want [2 3]", times)
	}
	if _, ok := in.IterRange(4, 2).Next(); ok {
		t.Error("inverted range should be empty")
	}
}

func TestOutputEventsZeroValue(t *testing.T) {
	var out OutputEvents
	if err := out.TryPush(noteOnAt(0, 60)); err == nil {
		t.Error("zero value OutputEvents should reject pushes")
	}
	if err := out.TryPush(nil); err == nil {
		t.Error("nil event should be rejected")
	}
}
