// Package abi defines the raw, C-layout-compatible contract between a host
// and its plugin instances: the event header and typed event records, the
// audio buffer and process call structs, the event list function tables, and
// the lifecycle function tables both sides exchange.
//
// Everything in this package mirrors the wire layout of the native protocol.
// Data structs keep field-for-field layout with the C definitions, enforced
// by compile-time size assertions where the layout is byte-exact. Function
// tables are structs of Go funcs that always take the opaque instance handle
// as their first argument.
//
// This package performs no validation beyond layout: the safe views in the
// event and audio packages, and the lifecycle wrappers in the plugin and
// host packages, are the intended consumers.
package abi
