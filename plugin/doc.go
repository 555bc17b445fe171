// Package plugin implements the plugin-side instance wrapper: it turns a
// user implementation described by a Template into the raw function table
// a host drives, enforcing the lifecycle state machine and containing
// panics at the boundary.
//
// A plugin implementation is split along thread domains the way the
// protocol is: a shared part constructed first and reachable from any
// thread, a main-thread part owning control state, and an audio processor
// that only exists while the instance is activated. The wrapper guarantees
// init runs exactly once, activation toggles cleanly, processing calls are
// refused while inactive, and destruction is idempotent and implies
// deactivation.
//
// No user panic ever crosses the boundary: every entry point catches,
// logs through this package's zap logger, and returns the protocol's
// failure sentinel instead.
package plugin
