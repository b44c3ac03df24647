// Package app wires the transport engine, the request executor and the configuration
// into the commands of the oneshot CLI.
package app
