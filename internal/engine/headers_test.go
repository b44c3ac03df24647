package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAppendHeaderLine tests header line validation and ordering.
func TestAppendHeaderLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		lines    []string
		expected []string
	}{
		{
			name:     "single line",
			lines:    []string{"Accept: */*"},
			expected: []string{"Accept: */*"},
		},
		{
			name:     "order and duplicates are kept",
			lines:    []string{"X-A: 1", "X-B: 2", "X-A: 3"},
			expected: []string{"X-A: 1", "X-B: 2", "X-A: 3"},
		},
		{
			name:     "removal and empty forms",
			lines:    []string{"Accept:", "X-Empty;"},
			expected: []string{"Accept:", "X-Empty;"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var list *HeaderList

			for _, line := range tt.lines {
				list = appendHeaderLine(list, line)
				require.NotNil(t, list)
			}

			assert.Equal(t, tt.expected, list.Lines())
			assert.Equal(t, len(tt.expected), list.Len())
		})
	}
}

// TestAppendHeaderLine_Invalid tests that invalid lines are rejected and the list is left untouched.
func TestAppendHeaderLine_Invalid(t *testing.T) {
	t.Parallel()

	invalid := []string{
		"",
		"no separator",
		": value",
		"X-Test: a\r\nInjected: 1",
		"X-Test: a\nb",
		"X-Test: a\x00b",
	}

	list := appendHeaderLine(nil, "X-Keep: 1")
	require.NotNil(t, list)

	for _, line := range invalid {
		assert.Nil(t, appendHeaderLine(list, line), "line %q", line)
		assert.Nil(t, appendHeaderLine(nil, line), "line %q", line)
	}

	assert.Equal(t, []string{"X-Keep: 1"}, list.Lines())
}

// TestSplitHeaderLine tests the three header line forms.
func TestSplitHeaderLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line           string
		expectedName   string
		expectedValue  string
		expectedRemove bool
	}{
		{line: "Accept: text/html", expectedName: "Accept", expectedValue: "text/html"},
		{line: "X-Time: 10:20", expectedName: "X-Time", expectedValue: "10:20"},
		{line: "Accept:", expectedName: "Accept", expectedRemove: true},
		{line: "Accept:   ", expectedName: "Accept", expectedRemove: true},
		{line: "X-Empty;", expectedName: "X-Empty"},
		{line: "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			t.Parallel()

			name, value, remove := splitHeaderLine(tt.line)

			assert.Equal(t, tt.expectedName, name)
			assert.Equal(t, tt.expectedValue, value)
			assert.Equal(t, tt.expectedRemove, remove)
		})
	}
}

// TestFreeHeaderList tests that a freed list can no longer be walked.
func TestFreeHeaderList(t *testing.T) {
	t.Parallel()

	list := appendHeaderLine(nil, "X-A: 1")
	list = appendHeaderLine(list, "X-B: 2")

	freeHeaderList(list)

	assert.Equal(t, 1, list.Len())
	assert.Nil(t, list.next)

	// Nil lists are accepted.
	freeHeaderList(nil)
	assert.Equal(t, 0, (*HeaderList)(nil).Len())
}
