package engine

import (
	"net/http"
	"time"
)

// Sink receives response body chunks as they arrive and returns how many bytes it accepted.
// The chunk is only valid for the duration of the call.
// Returning anything other than len(chunk) aborts the transfer with CodeWriteError.
type Sink func(chunk []byte) int

// ProgressFunc is called after every received chunk.
// downloadTotal is -1 when the length is unknown. Returning false aborts the transfer
// with CodeAbortedByCallback.
type ProgressFunc func(downloadTotal, downloaded int64) bool

// Info holds transfer metadata that can be read from a handle after Perform.
type Info struct {
	// StatusCode is the last HTTP status code received, 0 if no response arrived.
	StatusCode int
	// EffectiveURL is the last URL used, after any followed redirects.
	EffectiveURL string
	// Protocol is the response protocol, e.g. "HTTP/1.1".
	Protocol string
	// ContentType is the Content-Type of the response.
	ContentType string
	// ContentLength is the announced body length, -1 if unknown.
	ContentLength int64
	// RedirectCount is the number of redirects that were followed.
	RedirectCount int
	// TotalTime is the duration of the whole transfer.
	TotalTime time.Duration
	// BytesDownloaded is the number of body bytes received.
	BytesDownloaded int64
	// BytesUploaded is the number of request body bytes sent.
	BytesUploaded int64
	// ErrorDetail describes the underlying failure of the last Perform, if any.
	ErrorDetail string
}

// Handle is one transfer session. It is not safe for concurrent use
// and must be returned with ReleaseHandle exactly once.
type Handle struct {
	// url is the target URL.
	url string
	// method overrides the request method when not empty.
	method string
	// userAgent is the User-Agent used when headers carry none.
	userAgent string
	// caInfo is the path to a PEM bundle.
	caInfo string
	// noSignal mirrors OptNoSignal.
	noSignal bool
	// httpVersion is one of HTTPVersion* values.
	httpVersion int64
	// verifyPeer enables certificate chain verification.
	verifyPeer bool
	// verifyHost enables hostname verification.
	verifyHost bool
	// timeout bounds the whole transfer.
	timeout time.Duration
	// followLocation enables redirect following.
	followLocation bool
	// maxRedirs limits followed redirects, negative means unlimited.
	maxRedirs int64
	// headers is the attached header list, owned by the caller.
	headers *HeaderList
	// body is the request body, sent only when hasBody is set.
	body []byte
	// hasBody distinguishes an empty body from no body.
	hasBody bool
	// sink receives body chunks.
	sink Sink
	// progress is called after every chunk.
	progress ProgressFunc
	// transport is created lazily by Perform and closed on release.
	transport *http.Transport
	// info is the metadata of the last transfer.
	info Info
	// released is set by ReleaseHandle.
	released bool
}

// defaultMaxRedirs matches the redirect limit libcurl applies by default.
const defaultMaxRedirs = 30

func newHandle() *Handle {
	return &Handle{
		verifyPeer: true,
		verifyHost: true,
		maxRedirs:  defaultMaxRedirs,
	}
}
