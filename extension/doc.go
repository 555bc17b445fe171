// Package extension implements capability negotiation between hosts and
// plugins: function tables identified by stable string IDs, exchanged
// through each side's get-extension entry point and checked against the
// thread domain they are allowed to run in.
//
// Extension implementations are structs of function fields registered in a
// Registry. Each implementation declares its thread domain by embedding one
// of the domain markers; Register refuses implementations whose marker does
// not match their declared domain, so a misdeclared extension fails at
// registration instead of at call time.
//
// Retrieved extensions are carried as RawExtension values tagged with the
// instance that produced them. Using one with a different instance handle
// is a programmer error and panics rather than silently corrupting memory.
//
// Built-in extensions live alongside the registry: HostLog routes plugin
// log messages to the host's structured logger, and PluginLatency reports
// the plugin's processing latency.
package extension
