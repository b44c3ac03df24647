package executor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oshokin/oneshot/internal/engine"
)

// TestHeaderListBuilder tests list construction through a real engine.
func TestHeaderListBuilder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		headers       []Header
		expectedLines []string
		expectedErr   error
	}{
		{
			name: "no headers",
		},
		{
			name: "duplicates kept in order",
			headers: []Header{
				{Name: "X-Dup", Value: "1"},
				{Name: "Accept", Value: "*/*"},
				{Name: "X-Dup", Value: "2"},
			},
			expectedLines: []string{"X-Dup: 1", "Accept: */*", "X-Dup: 2"},
		},
		{
			name:          "empty value",
			headers:       []Header{{Name: "X-Empty", Value: ""}},
			expectedLines: []string{"X-Empty;"},
		},
		{
			name: "line break in value",
			headers: []Header{
				{Name: "X-Ok", Value: "1"},
				{Name: "X-Bad", Value: "a\r\nInjected: 1"},
			},
			expectedErr: ErrConfigFailed,
		},
		{
			name:        "empty name",
			headers:     []Header{{Name: "", Value: "value"}},
			expectedErr: ErrConfigFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			builder := NewHeaderListBuilder(engine.New(engine.Config{}))
			for _, header := range tt.headers {
				builder.Add(header.Name, header.Value)
			}

			list, err := builder.Build()
			if tt.expectedErr != nil {
				require.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, list)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expectedLines, list.Lines())
		})
	}
}

// TestHeaderListBuilder_BuildTwice tests that a builder hands its list over only once.
func TestHeaderListBuilder_BuildTwice(t *testing.T) {
	t.Parallel()

	builder := NewHeaderListBuilder(engine.New(engine.Config{})).Add("X-Test", "1")

	list, err := builder.Build()
	require.NoError(t, err)
	assert.Equal(t, 1, list.Len())

	list, err = builder.Build()
	require.ErrorIs(t, err, ErrConfigFailed)
	assert.Nil(t, list)
}
