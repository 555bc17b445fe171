package event

import "testing"

func TestMatchWildcard(t *testing.T) {
	all := MatchAll[uint16]()
	if !all.IsAll() {
		t.Error("MatchAll should report IsAll")
	}
	if _, ok := all.Value(); ok {
		t.Error("wildcard should not carry a value")
	}

	var zero Match[uint16]
	if !zero.IsAll() {
		t.Error("zero value should be the wildcard")
	}

	spec := Specific[uint16](60)
	if spec.IsAll() {
		t.Error("Specific should not report IsAll")
	}
	if v, ok := spec.Value(); !ok || v != 60 {
		t.Errorf("Value() = %v, %v, want 60, true", v, ok)
	}
}

func TestMatchMatches(t *testing.T) {
	tests := []struct {
		name string
		a, b Match[uint16]
		want bool
	}{
		{"all vs all", MatchAll[uint16](), MatchAll[uint16](), true},
		{"all vs specific", MatchAll[uint16](), Specific[uint16](3), true},
		{"specific vs all", Specific[uint16](3), MatchAll[uint16](), true},
		{"equal specifics", Specific[uint16](3), Specific[uint16](3), true},
		{"different specifics", Specific[uint16](3), Specific[uint16](4), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Matches(tt.b); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
			if got := tt.b.Matches(tt.a); got != tt.want {
				t.Errorf("reverse Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatchFromRaw(t *testing.T) {
	if m := MatchFromRaw16(-1); !m.IsAll() {
		t.Error("negative raw should decode as wildcard")
	}
	if m := MatchFromRaw16(0); m.IsAll() {
		t.Error("zero raw should decode as specific")
	}
	if m := MatchFromRaw32(-1); !m.IsAll() {
		t.Error("negative raw should decode as wildcard")
	}
	if v, ok := MatchFromRaw32(42).Value(); !ok || v != 42 {
		t.Errorf("MatchFromRaw32(42).Value() = %v, %v", v, ok)
	}
}

func TestPcknMatches(t *testing.T) {
	middleC := NewPckn(Specific[uint16](0), Specific[uint16](1), Specific[uint16](60), MatchAll[uint32]())

	tests := []struct {
		name  string
		other Pckn
		want  bool
	}{
		{"match all", PcknMatchAll(), true},
		{"same key any port", NewPckn(MatchAll[uint16](), Specific[uint16](1), Specific[uint16](60), MatchAll[uint32]()), true},
		{"different key", NewPckn(Specific[uint16](0), Specific[uint16](1), Specific[uint16](61), MatchAll[uint32]()), false},
		{"different channel", NewPckn(Specific[uint16](0), Specific[uint16](2), Specific[uint16](60), MatchAll[uint32]()), false},
		{"specific note id", NewPckn(Specific[uint16](0), Specific[uint16](1), Specific[uint16](60), Specific[uint32](7)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := middleC.Matches(tt.other); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
			if got := tt.other.Matches(middleC); got != tt.want {
				t.Errorf("reverse Matches() = %v, want %v", got, tt.want)
			}
		})
	}

	if !middleC.Matches(middleC) {
		t.Error("Matches should be reflexive")
	}
}

func TestPcknRawRoundTrip(t *testing.T) {
	p := NewPckn(Specific[uint16](2), MatchAll[uint16](), Specific[uint16](64), Specific[uint32](99))

	if got := p.RawPort(); got != 2 {
		t.Errorf("RawPort() = %d, want 2", got)
	}
	if got := p.RawChannel(); got != -1 {
		t.Errorf("RawChannel() = %d, want -1", got)
	}
	if got := p.RawKey(); got != 64 {
		t.Errorf("RawKey() = %d, want 64", got)
	}
	if got := p.RawNoteID(); got != 99 {
		t.Errorf("RawNoteID() = %d, want 99", got)
	}

	back := PcknFromRaw(p.RawPort(), p.RawChannel(), p.RawKey(), p.RawNoteID())
	if back != p {
		t.Errorf("round trip = %+v, want %+v", back, p)
	}
}
