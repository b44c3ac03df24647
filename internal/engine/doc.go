// Package engine provides the transport engine used by the request executor.
// It exposes a handle-based capability interface (acquire, configure, perform, release),
// persistent header lists, numeric result codes with human-readable descriptions,
// and an explicit process-wide Init/Teardown lifecycle.
// The concrete NetEngine performs I/O through Go's net/http stack
// and streams response bodies into a caller-provided sink.
package engine
