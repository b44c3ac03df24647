package accumulator

// Accumulator owns a growable byte buffer filled by Sink.
// It is used by a single transfer and must not be shared between goroutines.
type Accumulator struct {
	// data holds the accumulated bytes followed by a zero terminator at data[size].
	data []byte
	// size is the number of accumulated bytes, not counting the terminator.
	size int
	// limit is the largest accepted size, zero or negative for no limit.
	limit int64
	// rejected is set once a chunk was refused because of the limit.
	rejected bool
}

// New creates an accumulator holding an empty, non-nil buffer.
// A positive limit caps the number of bytes the accumulator agrees to hold.
func New(limit int64) *Accumulator {
	return &Accumulator{
		// Room for the terminator only.
		data:  make([]byte, 1),
		limit: limit,
	}
}

// Sink appends chunk to the buffer and returns len(chunk) on success.
// It returns 0 when the buffer cannot grow, which the engine reports as a write error.
// Slices previously returned by Bytes may be invalidated by a later call.
func (a *Accumulator) Sink(chunk []byte) int {
	if len(chunk) == 0 {
		return 0
	}

	if a.data == nil {
		return 0
	}

	if a.limit > 0 && int64(a.size)+int64(len(chunk)) > a.limit {
		a.rejected = true

		return 0
	}

	// Keep the previous content, add the chunk and a fresh terminator.
	a.data = append(a.data[:a.size], chunk...)
	a.data = append(a.data, 0)
	a.size += len(chunk)

	return len(chunk)
}

// Finalize hands the buffer over to the caller and returns it with its length.
// The byte at index length of the backing array is a zero terminator.
// The accumulator holds nothing afterwards and rejects further chunks.
func (a *Accumulator) Finalize() ([]byte, int) {
	if a.data == nil {
		return nil, 0
	}

	data, size := a.data[:a.size], a.size

	a.data = nil
	a.size = 0

	return data, size
}

// Discard releases the buffer without handing it over.
func (a *Accumulator) Discard() {
	a.data = nil
	a.size = 0
}

// Bytes returns a view of the accumulated bytes without transferring ownership.
func (a *Accumulator) Bytes() []byte {
	if a.data == nil {
		return nil
	}

	return a.data[:a.size]
}

// Len returns the number of accumulated bytes.
func (a *Accumulator) Len() int {
	return a.size
}

// Reserved returns the number of bytes currently held by the accumulator, including spare capacity.
func (a *Accumulator) Reserved() int {
	return cap(a.data)
}

// Rejected reports whether a chunk was refused because it would exceed the limit.
func (a *Accumulator) Rejected() bool {
	return a.rejected
}
