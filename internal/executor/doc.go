// Package executor runs exactly one HTTP request to completion through a transport engine
// and returns the whole response body in memory.
// Transport failures (DNS, connect, TLS, timeout, sink rejection) are reported as *TransportError;
// HTTP error statuses are successful transfers whose status is returned as separate metadata.
// Every resource acquired for a call (handle, header list, body buffer) is released exactly once
// on every exit path.
package executor
