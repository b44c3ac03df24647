package accumulator

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNew tests the initial state of an accumulator.
func TestNew(t *testing.T) {
	t.Parallel()

	acc := New(0)

	assert.NotNil(t, acc.Bytes())
	assert.Empty(t, acc.Bytes())
	assert.Equal(t, 0, acc.Len())
	assert.Positive(t, acc.Reserved())
	assert.False(t, acc.Rejected())
}

// TestAccumulator_Sink tests that the final content is the concatenation of all chunks.
func TestAccumulator_Sink(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		chunks [][]byte
	}{
		{
			name:   "single chunk",
			chunks: [][]byte{[]byte("hello")},
		},
		{
			name:   "several chunks",
			chunks: [][]byte{[]byte("he"), []byte("ll"), []byte("o, "), []byte("world")},
		},
		{
			name:   "embedded zero bytes",
			chunks: [][]byte{{0, 1, 0}, {0}, []byte("a\x00b")},
		},
		{
			name:   "large chunks",
			chunks: [][]byte{bytes.Repeat([]byte("a"), 16*1024), bytes.Repeat([]byte("b"), 40*1024)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			acc := New(0)

			for _, chunk := range tt.chunks {
				require.Equal(t, len(chunk), acc.Sink(chunk))
			}

			expected := bytes.Join(tt.chunks, nil)

			assert.Equal(t, expected, acc.Bytes())
			assert.Equal(t, len(expected), acc.Len())

			data, length := acc.Finalize()
			assert.Equal(t, len(expected), length)
			assert.Equal(t, expected, data)

			// The byte past the content is a terminator.
			require.Greater(t, cap(data), length)
			assert.Equal(t, byte(0), data[:length+1][length])
		})
	}
}

// TestAccumulator_Sink_ZeroLength tests that an empty chunk is reported as not accepted.
func TestAccumulator_Sink_ZeroLength(t *testing.T) {
	t.Parallel()

	acc := New(0)
	require.Equal(t, 3, acc.Sink([]byte("abc")))

	assert.Equal(t, 0, acc.Sink(nil))
	assert.Equal(t, 0, acc.Sink([]byte{}))
	assert.Equal(t, []byte("abc"), acc.Bytes())
	assert.False(t, acc.Rejected())
}

// TestAccumulator_Sink_Limit tests that a chunk crossing the limit is refused and nothing is kept from it.
func TestAccumulator_Sink_Limit(t *testing.T) {
	t.Parallel()

	acc := New(8)

	require.Equal(t, 5, acc.Sink([]byte("12345")))
	require.Equal(t, 3, acc.Sink([]byte("678")))

	assert.Equal(t, 0, acc.Sink([]byte("9")))
	assert.True(t, acc.Rejected())
	assert.Equal(t, []byte("12345678"), acc.Bytes())
	assert.Equal(t, 8, acc.Len())
}

// TestAccumulator_Finalize tests the ownership transfer.
func TestAccumulator_Finalize(t *testing.T) {
	t.Parallel()

	acc := New(0)
	acc.Sink([]byte("payload"))

	data, length := acc.Finalize()
	assert.Equal(t, []byte("payload"), data)
	assert.Equal(t, 7, length)

	assert.Nil(t, acc.Bytes())
	assert.Equal(t, 0, acc.Len())
	assert.Equal(t, 0, acc.Reserved())
	assert.Equal(t, 0, acc.Sink([]byte("more")))

	data, length = acc.Finalize()
	assert.Nil(t, data)
	assert.Equal(t, 0, length)
}

// TestAccumulator_Finalize_Empty tests that an empty transfer yields an empty, non-nil body.
func TestAccumulator_Finalize_Empty(t *testing.T) {
	t.Parallel()

	data, length := New(0).Finalize()

	assert.NotNil(t, data)
	assert.Empty(t, data)
	assert.Equal(t, 0, length)
}

// TestAccumulator_Discard tests that a discarded accumulator holds nothing.
func TestAccumulator_Discard(t *testing.T) {
	t.Parallel()

	acc := New(0)
	acc.Sink(bytes.Repeat([]byte("x"), 4096))

	acc.Discard()

	assert.Equal(t, 0, acc.Reserved())
	assert.Equal(t, 0, acc.Len())
	assert.Nil(t, acc.Bytes())
	assert.Equal(t, 0, acc.Sink([]byte("x")))
}
