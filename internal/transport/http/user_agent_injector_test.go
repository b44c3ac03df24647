package http

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/oshokin/oneshot/internal/utils"
	mock_utils "github.com/oshokin/oneshot/internal/utils/mocks"
)

// newEchoServer returns a server writing back the received User-Agent values.
func newEchoServer(t *testing.T) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		values, ok := r.Header[userAgentHeader]
		if !ok {
			_, _ = w.Write([]byte("<none>"))

			return
		}

		_, _ = w.Write([]byte(values[0]))
	}))
	t.Cleanup(server.Close)

	return server
}

// TestUserAgentInjector_RoundTrip tests when the provider value is injected.
func TestUserAgentInjector_RoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		header         []string
		expectInjected bool
		expectedAgent  string
	}{
		{
			name:           "missing header is injected",
			expectInjected: true,
			expectedAgent:  "oneshot/test",
		},
		{
			name:          "existing header is kept",
			header:        []string{"curl/8.0"},
			expectedAgent: "curl/8.0",
		},
		{
			name:          "explicitly empty header suppresses the User-Agent",
			header:        []string{""},
			expectedAgent: "<none>",
		},
	}

	server := newEchoServer(t)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			mockProvider := mock_utils.NewMockUserAgentProvider(ctrl)

			if tt.expectInjected {
				mockProvider.EXPECT().GetUserAgent().Return("oneshot/test").Times(1)
			}

			req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, server.URL, nil)
			require.NoError(t, err)

			if tt.header != nil {
				req.Header[userAgentHeader] = tt.header
			}

			resp, err := NewUserAgentInjector(http.DefaultTransport, mockProvider).RoundTrip(req)
			require.NoError(t, err)

			defer resp.Body.Close() //nolint:errcheck // Test cleanup, error is not critical.

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedAgent, string(body))

			// The caller's request is never modified.
			assert.Equal(t, tt.header, req.Header[userAgentHeader])
		})
	}
}

// TestUserAgentInjector_NilRequest tests that a nil request is rejected.
func TestUserAgentInjector_NilRequest(t *testing.T) {
	t.Parallel()

	injector := NewUserAgentInjector(http.DefaultTransport, utils.NewSimpleUserAgentProvider("x"))

	resp, err := injector.RoundTrip(nil) //nolint:bodyclose // No response on error.
	require.ErrorIs(t, err, ErrNilRequest)
	assert.Nil(t, resp)
}

// TestUserAgentInjector_TransportError tests that errors of the wrapped transport are returned as is.
func TestUserAgentInjector_TransportError(t *testing.T) {
	t.Parallel()

	injector := NewUserAgentInjector(http.DefaultTransport, utils.NewSimpleUserAgentProvider("x"))

	req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, "http://[::1]:0", nil)
	require.NoError(t, err)

	resp, err := injector.RoundTrip(req) //nolint:bodyclose // Body is empty on error.
	require.Error(t, err)
	assert.Nil(t, resp)
}
