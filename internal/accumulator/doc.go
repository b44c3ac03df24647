// Package accumulator collects a response body of unknown length into one contiguous buffer.
// Chunks are appended through Sink, which follows the engine's sink contract
// (return the number of accepted bytes), and the final buffer is handed over once by Finalize.
package accumulator
