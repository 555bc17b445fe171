package audio

import "testing"

func monoPort32(samples []float32) PortBuffer {
	return PortBuffer{Channels32: []Channel32{{Data: samples}}}
}

func TestPortsBind(t *testing.T) {
	builder := NewPorts(2, 4)
	left := []float32{1, 2, 3, 4}
	right := []float32{5, 6, 7, 8}

	configs, frames, err := builder.Bind([]PortBuffer{
		{
			Latency:    32,
			Channels32: []Channel32{{Data: left}, {Data: right, Constant: true}},
		},
	})
	if err != nil {
		t.Fatalf("Bind failed: %v", err)
	}
	if len(configs) != 1 || frames != 4 {
		t.Fatalf("got %d configs, %d frames", len(configs), frames)
	}

	port := NewPort(&configs[0], frames)
	if port.ChannelCount() != 2 || port.Latency() != 32 {
		t.Fatalf("port = %d channels latency %d", port.ChannelCount(), port.Latency())
	}
	if port.ConstantMask().IsChannelConstant(0) || !port.ConstantMask().IsChannelConstant(1) {
		t.Errorf("constant mask = %#x, want channel 1 only", port.ConstantMask().Bits())
	}

	ch, ok := port.Channels32()
	if !ok {
		t.Fatal("bound port should offer 32-bit data")
	}
	if got := ch.Channel(0); got[0] != 1 || got[3] != 4 {
		t.Errorf("channel 0 = %v", got)
	}
	if got := ch.Channel(1); got[0] != 5 {
		t.Errorf("channel 1 = %v", got)
	}
}

func TestPortsBindFrameCountIsShortestChannel(t *testing.T) {
	builder := NewPorts(1, 2)
	_, frames, err := builder.Bind([]PortBuffer{{
		Channels32: []Channel32{{Data: make([]float32, 16)}, {Data: make([]float32, 10)}},
	}})
	if err != nil {
		t.Fatal(err)
	}
	if frames != 10 {
		t.Errorf("frames = %d, want 10", frames)
	}
}

func TestPortsBindRejectsMixedRepresentations(t *testing.T) {
	builder := NewPorts(1, 2)
	_, _, err := builder.Bind([]PortBuffer{{
		Channels32: []Channel32{{Data: make([]float32, 4)}},
		Channels64: []Channel64{{Data: make([]float64, 4)}},
	}})
	if err == nil {
		t.Fatal("mixed 32/64 declarations on one port should fail")
	}
}

func TestPortsBindGrowth(t *testing.T) {
	// deliberately undersized so rebinding with more ports grows storage
	builder := NewPorts(1, 1)

	first := []float32{1, 1}
	configs, frames, err := builder.Bind([]PortBuffer{monoPort32(first)})
	if err != nil {
		t.Fatal(err)
	}
	if got := NewPort(&configs[0], frames).mustChannel32(t, 0); got[0] != 1 {
		t.Errorf("channel = %v", got)
	}

	// grow past the prior high-water mark; every port's pointer table must
	// resolve against the reallocated storage
	buffers := [][]float32{{10, 10}, {20, 20}, {30, 30}, {40, 40}}
	ports := make([]PortBuffer, len(buffers))
	for i, b := range buffers {
		ports[i] = monoPort32(b)
	}
	configs, frames, err = builder.Bind(ports)
	if err != nil {
		t.Fatal(err)
	}
	if len(configs) != 4 {
		t.Fatalf("got %d configs, want 4", len(configs))
	}
	for i, want := range []float32{10, 20, 30, 40} {
		got := NewPort(&configs[i], frames).mustChannel32(t, 0)
		if got[0] != want {
			t.Errorf("port %d channel 0 = %v, want first sample %v", i, got, want)
		}
	}
}

func TestPortsBind64(t *testing.T) {
	builder := NewPorts(1, 1)
	data := []float64{0.5, 0.25}
	configs, frames, err := builder.Bind([]PortBuffer{{
		Channels64: []Channel64{{Data: data, Constant: false}},
	}})
	if err != nil {
		t.Fatal(err)
	}
	port := NewPort(&configs[0], frames)
	if st, _ := port.SampleType(); st != SampleF64 {
		t.Fatalf("sample type = %v, want f64", st)
	}
	ch, ok := port.Channels64()
	if !ok {
		t.Fatal("64-bit channels should be present")
	}
	if got := ch.Channel(0); got[1] != 0.25 {
		t.Errorf("channel 0 = %v", got)
	}
}

func TestPortsBindEmpty(t *testing.T) {
	builder := NewPorts(0, 0)
	configs, frames, err := builder.Bind(nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(configs) != 0 || frames != 0 {
		t.Errorf("got %d configs, %d frames", len(configs), frames)
	}
}

// mustChannel32 is a test helper fetching one channel or failing.
func (p Port) mustChannel32(t *testing.T, index uint32) []float32 {
	t.Helper()
	ch, ok := p.Channels32()
	if !ok {
		t.Fatal("port should offer 32-bit data")
	}
	s := ch.Channel(index)
	if s == nil {
		t.Fatalf("channel %d missing", index)
	}
	return s
}
