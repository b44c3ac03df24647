package executor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oshokin/oneshot/internal/engine"
)

// newTestEngine returns an initialized engine torn down when the test ends.
func newTestEngine(t *testing.T) *engine.NetEngine {
	t.Helper()

	eng := engine.New(engine.Config{})
	require.NoError(t, eng.Init())

	t.Cleanup(func() {
		assert.NoError(t, eng.Teardown())
	})

	return eng
}

// TestExecute_ErrorStatusIsSuccess tests that an HTTP error status is returned as a successful transfer.
func TestExecute_ErrorStatusIsSuccess(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("error body"))
	}))
	t.Cleanup(server.Close)

	result, info, err := New(newTestEngine(t), Options{}).
		Execute(context.Background(), NewRequestBuilder(server.URL).Build())
	require.NoError(t, err)

	assert.Equal(t, http.StatusInternalServerError, info.StatusCode)
	assert.Equal(t, 10, result.Length)
	assert.Equal(t, "error body", string(result.Body))
}

// TestExecute_BinarySafeBodies tests that zero bytes survive in both directions.
func TestExecute_BinarySafeBodies(t *testing.T) {
	t.Parallel()

	payload := []byte("ab\x00cd")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, int64(len(payload)), r.ContentLength)

		received, err := io.ReadAll(r.Body)
		assert.NoError(t, err)

		_, _ = w.Write(bytes.Repeat(received, 2))
	}))
	t.Cleanup(server.Close)

	request := NewRequestBuilder(server.URL).
		WithMethod(http.MethodPost).
		WithBody(payload).
		Build()

	result, info, err := New(newTestEngine(t), Options{}).Execute(context.Background(), request)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, info.StatusCode)
	assert.Equal(t, 10, result.Length)
	assert.Equal(t, []byte("ab\x00cdab\x00cd"), result.Body)
}

// TestExecute_MethodIsNotInferred tests that a body does not turn GET into POST.
func TestExecute_MethodIsNotInferred(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(r.Method))
	}))
	t.Cleanup(server.Close)

	request := NewRequestBuilder(server.URL).
		WithMethod(http.MethodPut).
		WithBody([]byte{}).
		Build()

	result, _, err := New(newTestEngine(t), Options{}).Execute(context.Background(), request)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, string(result.Body))
}

// TestExecute_HeadersInOrder tests duplicate headers, empty values and the User-Agent override.
func TestExecute_HeadersInOrder(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, []string{"first", "second"}, r.Header.Values("X-Dup"))
		assert.Equal(t, []string{""}, r.Header["X-Empty"])
		assert.Equal(t, "custom-agent", r.Header.Get("User-Agent"))
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(server.Close)

	request := NewRequestBuilder(server.URL).
		WithHeader("X-Dup", "first").
		WithHeader("X-Dup", "second").
		WithHeader("X-Empty", "").
		WithHeader("User-Agent", "custom-agent").
		Build()

	result, info, err := New(newTestEngine(t), Options{UserAgent: "default-agent"}).
		Execute(context.Background(), request)
	require.NoError(t, err)

	assert.Equal(t, http.StatusNoContent, info.StatusCode)
	assert.Equal(t, 0, result.Length)
}

// TestExecute_UserAgentOption tests the default User-Agent.
func TestExecute_UserAgentOption(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(r.Header.Get("User-Agent")))
	}))
	t.Cleanup(server.Close)

	result, _, err := New(newTestEngine(t), Options{UserAgent: "oneshot-test"}).
		Execute(context.Background(), NewRequestBuilder(server.URL).Build())
	require.NoError(t, err)

	assert.Equal(t, "oneshot-test", string(result.Body))
}

// TestExecute_ResponseLimit tests that an oversized body fails with ErrOutOfMemory.
func TestExecute_ResponseLimit(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(bytes.Repeat([]byte("x"), 1024))
	}))
	t.Cleanup(server.Close)

	result, info, err := New(newTestEngine(t), Options{MaxResponseSize: 100}).
		Execute(context.Background(), NewRequestBuilder(server.URL).Build())

	require.ErrorIs(t, err, ErrOutOfMemory)
	assert.Nil(t, result)
	require.NotNil(t, info)
	assert.Equal(t, http.StatusOK, info.StatusCode)

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, engine.CodeWriteError, transportErr.Code)
}

// TestExecute_UnresolvableHost tests a DNS failure.
func TestExecute_UnresolvableHost(t *testing.T) {
	t.Parallel()

	result, info, err := New(newTestEngine(t), Options{Timeout: 10 * time.Second}).
		Execute(context.Background(), NewRequestBuilder("http://host.invalid/").Build())

	require.ErrorIs(t, err, ErrTransport)
	assert.Nil(t, result)
	require.NotNil(t, info)
	assert.Zero(t, info.StatusCode)

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, engine.CodeCouldntResolveHost, transportErr.Code)
	assert.NotEmpty(t, transportErr.Message)
	assert.NotEmpty(t, transportErr.Detail)
}

// TestExecute_MalformedURL tests that a URL the engine cannot parse fails as a transport error.
func TestExecute_MalformedURL(t *testing.T) {
	t.Parallel()

	_, _, err := New(newTestEngine(t), Options{}).
		Execute(context.Background(), NewRequestBuilder("not a url").Build())

	require.ErrorIs(t, err, ErrTransport)

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, engine.CodeURLMalformat, transportErr.Code)
}

// TestExecute_Timeout tests that a slow server fails with a timeout.
func TestExecute_Timeout(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}

		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	_, _, err := New(newTestEngine(t), Options{Timeout: 50 * time.Millisecond}).
		Execute(context.Background(), NewRequestBuilder(server.URL).Build())

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, engine.CodeOperationTimedout, transportErr.Code)
}

// TestExecute_Concurrent tests that parallel calls keep their bodies apart.
func TestExecute_Concurrent(t *testing.T) {
	t.Parallel()

	const workers = 16

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(r.URL.Query().Get("id")))
	}))
	t.Cleanup(server.Close)

	executor := New(newTestEngine(t), Options{})

	var wg sync.WaitGroup

	for i := range workers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			id := fmt.Sprintf("worker-%d", i)

			result, info, err := executor.Execute(context.Background(),
				NewRequestBuilder(server.URL+"/?id="+id).Build())
			if !assert.NoError(t, err) {
				return
			}

			assert.Equal(t, http.StatusOK, info.StatusCode)
			assert.Equal(t, id, string(result.Body))
		}()
	}

	wg.Wait()
}

// TestExecute_EngineNotInitialized tests a call against an engine that was never initialized.
func TestExecute_EngineNotInitialized(t *testing.T) {
	t.Parallel()

	_, info, err := New(engine.New(engine.Config{}), Options{}).
		Execute(context.Background(), NewRequestBuilder("http://example.com").Build())

	require.ErrorIs(t, err, ErrInitFailed)
	require.ErrorIs(t, err, engine.ErrNotInitialized)
	assert.Nil(t, info)
}

// TestExecute_MethodSentVerbatim tests that the method case is not changed on the wire.
func TestExecute_MethodSentVerbatim(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(r.Method))
	}))
	t.Cleanup(server.Close)

	request := NewRequestBuilder(server.URL).WithMethod(" get ").Build()

	result, _, err := New(newTestEngine(t), Options{}).Execute(context.Background(), request)
	require.NoError(t, err)

	assert.Equal(t, "get", string(result.Body))
}

// TestExecute_DistinctHeaderNames tests that every header arrives and repeated names keep their order.
func TestExecute_DistinctHeaderNames(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, []string{"1", "3"}, r.Header.Values("Zeta"))
		assert.Equal(t, []string{"2"}, r.Header.Values("Alpha"))
		assert.Equal(t, []string{""}, r.Header["X-Blank"])
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(server.Close)

	request := NewRequestBuilder(server.URL).
		WithHeader("Zeta", "1").
		WithHeader("Alpha", "2").
		WithHeader("X-Blank", "").
		WithHeader("Zeta", "3").
		Build()

	_, info, err := New(newTestEngine(t), Options{}).Execute(context.Background(), request)
	require.NoError(t, err)

	assert.Equal(t, http.StatusNoContent, info.StatusCode)
}

// TestExecute_RedirectLimit tests how MaxRedirects bounds followed redirects.
func TestExecute_RedirectLimit(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/target" {
			_, _ = w.Write([]byte("arrived"))

			return
		}

		http.Redirect(w, r, "/target", http.StatusFound)
	}))
	t.Cleanup(server.Close)

	tests := []struct {
		name           string
		opts           Options
		expectedCode   engine.Code
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "not following returns the redirect",
			opts:           Options{},
			expectedCode:   engine.CodeOK,
			expectedStatus: http.StatusFound,
		},
		{
			name:         "zero limit follows none",
			opts:         Options{FollowRedirects: true},
			expectedCode: engine.CodeTooManyRedirects,
		},
		{
			name:           "unlimited",
			opts:           Options{FollowRedirects: true, MaxRedirects: -1},
			expectedCode:   engine.CodeOK,
			expectedStatus: http.StatusOK,
			expectedBody:   "arrived",
		},
		{
			name:           "within limit",
			opts:           Options{FollowRedirects: true, MaxRedirects: 1},
			expectedCode:   engine.CodeOK,
			expectedStatus: http.StatusOK,
			expectedBody:   "arrived",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			request := NewRequestBuilder(server.URL + "/start").Build()

			result, info, err := New(newTestEngine(t), tt.opts).Execute(context.Background(), request)

			if tt.expectedCode != engine.CodeOK {
				var transportErr *TransportError
				require.ErrorAs(t, err, &transportErr)
				assert.Equal(t, tt.expectedCode, transportErr.Code)
				assert.ErrorIs(t, err, ErrTransport)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, info.StatusCode)

			if tt.expectedBody != "" {
				assert.Equal(t, tt.expectedBody, string(result.Body))
			}
		})
	}
}
