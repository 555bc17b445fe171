// Package clapkit provides a safety layer over a CLAP-style native audio
// plugin ABI: the raw, thread-sensitive C protocol between a host process
// and its plugin instances, made usable behind typed Go wrappers without
// copying samples or events.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	clapkit/          Root package with shared documentation
//	├── abi/          Wire-level contract: event/audio/process structs,
//	│                 plugin and host function tables, instance handles
//	├── event/        Event data plane: PCKN note addressing, typed core
//	│                 events, ordered list views, the batching iterator
//	├── audio/        Audio buffer data plane: channel views, 32/64-bit
//	│                 polymorphism, constant masks, in-place pairing,
//	│                 the host-side port builder
//	├── extension/    Capability negotiation: ID-keyed registries with
//	│                 thread-domain checking, built-in log and latency
//	│                 extensions
//	├── plugin/       Plugin-side instance wrapper: lifecycle state
//	│                 machine, panic containment, process context
//	├── host/         Host-side instance wrapper: processor type states,
//	│                 destroy gate, auxiliary-thread handles
//	└── errors/       Structured error types (phase/kind taxonomy)
//
// # Quick Start
//
// Implement a plugin by filling a template and wrapping it:
//
//	vt, err := plugin.NewInstance(plugin.Template{
//	    Descriptor: abi.PluginDescriptor{ID: "org.example.gain"},
//	    NewShared:  newShared,
//	    Activate:   newProcessor,
//	}, hostVT)
//
// Host a plugin through the lifecycle wrapper:
//
//	inst, err := host.Instantiate(template, provider, "org.example.gain")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer inst.Destroy()
//
//	stopped, err := inst.Activate(48000, 32, 512)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	started, err := stopped.Start()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	status, err := started.Process(processStruct)
//
// Both wrappers contain panics at the boundary, enforce the lifecycle
// state machine, and log through an injectable zap logger (see each
// package's SetLogger).
package clapkit
