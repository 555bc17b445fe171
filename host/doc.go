// Package host implements the host-side instance wrapper: it drives a
// plugin's raw function table through the lifecycle state machine while
// protecting the host from the plugin's failures.
//
// A PluginInstance is created from an EntryProvider, initialized exactly
// once, and destroyed exactly once; destruction is idempotent, implies
// deactivation, and gates concurrent auxiliary-thread access so no remote
// caller ever touches a freed instance. Activation hands back a
// StoppedProcessor, and starting it a StartedProcessor, so calling process
// on a stopped plugin is unrepresentable rather than merely checked.
//
// Every outgoing call into the plugin runs under a recover wrapper: a
// panicking plugin is logged and reported as an error, never allowed to
// take the host down.
package host
