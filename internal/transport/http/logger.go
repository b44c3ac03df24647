package http

import (
	"errors"
	"net/http"
	"net/http/httputil"
	"time"

	"github.com/oshokin/oneshot/internal/config"
	"github.com/oshokin/oneshot/internal/logger"
	"github.com/oshokin/oneshot/internal/utils"
)

// LogTransport is a http.RoundTripper that logs requests and responses at debug level.
// Log entries carry the fields of the request context logger, such as the request ID.
type LogTransport struct {
	// next is the underlying HTTP round tripper.
	next http.RoundTripper
	// maxLogLength is the maximum length of a logged dump.
	maxLogLength uint64
}

// Static error definitions for better error handling.
var (
	// ErrNilRequest indicates that the HTTP request is nil.
	ErrNilRequest = errors.New("request is nil")
)

// NewLogTransport creates and returns a new instance of LogTransport.
// If maxLogLength is 0, it defaults to config.DefaultMaxLogLength.
func NewLogTransport(next http.RoundTripper, maxLogLength uint64) http.RoundTripper {
	if maxLogLength == 0 {
		maxLogLength = config.DefaultMaxLogLength
	}

	return &LogTransport{
		next:         next,
		maxLogLength: maxLogLength,
	}
}

// RoundTrip executes a single HTTP transaction and logs the request and response.
// It implements the http.RoundTripper interface.
func (t *LogTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, ErrNilRequest
	}

	// Skip dumping if the logger is not at debug level.
	if !logger.IsDebugLevel() {
		return t.next.RoundTrip(req)
	}

	ctx := req.Context()
	requestDump := t.dumpRequest(req)
	startTime := time.Now()

	resp, err := t.next.RoundTrip(req)

	duration := time.Since(startTime)

	if err != nil {
		logger.DebugKV(ctx, "Round trip failed",
			"method", req.Method,
			"url", req.URL.String(),
			"duration", duration,
			"error", err)

		return nil, err
	}

	logger.DebugKV(ctx, "Round trip completed",
		"method", req.Method,
		"url", req.URL.String(),
		"status", resp.StatusCode,
		"protocol", resp.Proto,
		"duration", duration,
		"request", requestDump,
		"response", t.dumpResponse(resp))

	return resp, nil
}

func (t *LogTransport) dumpRequest(req *http.Request) string {
	withBody := req.GetBody != nil && utils.IsTextContentType(req.Header.Get(contentTypeHeader))

	dump, err := httputil.DumpRequestOut(req, withBody)
	if err != nil {
		return err.Error()
	}

	return t.truncate(dump)
}

// dumpResponse dumps the response. The body is included only for text bodies of a known length
// that fits into the log, so large or streamed bodies are never read ahead of the engine.
func (t *LogTransport) dumpResponse(resp *http.Response) string {
	withBody := utils.IsTextContentType(resp.Header.Get(contentTypeHeader)) &&
		resp.ContentLength >= 0 &&
		uint64(resp.ContentLength) <= t.maxLogLength

	dump, err := httputil.DumpResponse(resp, withBody)
	if err != nil {
		return err.Error()
	}

	return t.truncate(dump)
}

func (t *LogTransport) truncate(data []byte) string {
	if uint64(len(data)) > t.maxLogLength {
		return string(data[:t.maxLogLength]) + truncatedSuffix
	}

	return string(data)
}
