package extension

import (
	goerrors "errors"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/freqlab/clapkit/abi"
	"github.com/freqlab/clapkit/errors"
)

type fakeTuner struct {
	MainThreadMarker
	GetTuning func(plugin abi.InstanceHandle, key uint16) float64
}

func (*fakeTuner) ExtensionID() ID      { return "test.tuner" }
func (*fakeTuner) Domain() ThreadDomain { return DomainMainThread }

// misdeclared extension: claims the audio thread domain but only carries
// the main thread marker
type misdeclared struct {
	MainThreadMarker
}

func (*misdeclared) ExtensionID() ID      { return "test.misdeclared" }
func (*misdeclared) Domain() ThreadDomain { return DomainAudioThread }

func TestRegistryRegisterAndGet(t *testing.T) {
	reg := NewRegistry(SidePlugin)
	tuner := &fakeTuner{
		GetTuning: func(abi.InstanceHandle, uint16) float64 { return 440 },
	}
	if err := reg.Register(tuner); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	owner := abi.NewInstanceHandle("instance")
	defer owner.Free()

	raw := reg.Get("test.tuner", owner)
	if raw.IsNull() {
		t.Fatal("registered extension should resolve")
	}
	if raw.ID() != "test.tuner" || raw.Side() != SidePlugin {
		t.Errorf("raw = id %q side %v", raw.ID(), raw.Side())
	}

	got := As[fakeTuner](raw, owner)
	if got == nil {
		t.Fatal("As should return the function table")
	}
	if f := got.GetTuning(owner, 69); f != 440 {
		t.Errorf("GetTuning = %v, want 440", f)
	}
}

func TestRegistryMissingCapability(t *testing.T) {
	reg := NewRegistry(SideHost)
	owner := abi.NewInstanceHandle("instance")
	defer owner.Free()

	raw := reg.Get("test.absent", owner)
	if !raw.IsNull() {
		t.Error("unregistered extension should be null")
	}
	if As[fakeTuner](raw, owner) != nil {
		t.Error("As on a null extension should return nil")
	}
	if reg.Pointer("test.absent") != nil {
		t.Error("Pointer for an absent capability should be nil")
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	reg := NewRegistry(SidePlugin)
	if err := reg.Register(&fakeTuner{}); err != nil {
		t.Fatal(err)
	}
	err := reg.Register(&fakeTuner{})
	if err == nil {
		t.Fatal("duplicate registration should fail")
	}
	if !goerrors.Is(err, &errors.Error{Phase: errors.PhaseExtension, Kind: errors.KindRegistration}) {
		t.Errorf("error = %v, want a registration error", err)
	}
}

func TestRegistryRejectsMisdeclaredDomain(t *testing.T) {
	reg := NewRegistry(SidePlugin)
	if err := reg.Register(&misdeclared{}); err == nil {
		t.Fatal("registration should fail when the domain marker is missing")
	}
	if err := reg.Register(nil); err == nil {
		t.Fatal("nil extension should be rejected")
	}
}

func TestRawExtensionMismatchedInstancePanics(t *testing.T) {
	reg := NewRegistry(SidePlugin)
	if err := reg.Register(&fakeTuner{}); err != nil {
		t.Fatal(err)
	}

	owner := abi.NewInstanceHandle("owner")
	defer owner.Free()
	other := abi.NewInstanceHandle("other")
	defer other.Free()

	raw := reg.Get("test.tuner", owner)

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("using a mismatched instance handle should panic")
		}
		if !strings.Contains(r.(string), "mismatched instance") {
			t.Errorf("panic message = %v", r)
		}
	}()
	raw.Use(other)
}

func TestHostLogRoutesToLogger(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	hostLog := NewHostLog(zap.New(core))

	host := abi.NewInstanceHandle("host")
	defer host.Free()

	hostLog.Log(host, SeverityInfo, "processing started")
	hostLog.Log(host, SeverityPluginMisbehaving, "plugin pushed an unsorted event")

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("got %d log entries, want 2", len(entries))
	}
	if entries[0].Level != zap.InfoLevel || entries[0].Message != "processing started" {
		t.Errorf("entry 0 = %v %q", entries[0].Level, entries[0].Message)
	}
	if entries[1].Level != zap.ErrorLevel {
		t.Errorf("misbehaving severity should log at error level, got %v", entries[1].Level)
	}
	violation := false
	for _, f := range entries[1].Context {
		if f.Key == "protocol_violation" {
			violation = true
		}
	}
	if !violation {
		t.Error("misbehaving entry should carry the protocol_violation field")
	}
}

func TestHostLogNilLogger(t *testing.T) {
	hostLog := NewHostLog(nil)
	host := abi.NewInstanceHandle("host")
	defer host.Free()
	// must not panic
	hostLog.Log(host, SeverityDebug, "quiet")
}

func TestPluginLatencyDomains(t *testing.T) {
	reg := NewRegistry(SidePlugin)
	lat := &PluginLatency{Get: func(abi.InstanceHandle) uint32 { return 64 }}
	if err := reg.Register(lat); err != nil {
		t.Fatalf("latency registration failed: %v", err)
	}

	owner := abi.NewInstanceHandle("instance")
	defer owner.Free()
	got := As[PluginLatency](reg.Get(PluginLatencyID, owner), owner)
	if got == nil || got.Get(owner) != 64 {
		t.Error("latency extension should round-trip through the registry")
	}
}
