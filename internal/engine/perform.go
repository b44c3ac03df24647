package engine

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// errTooManyRedirects is returned from the redirect policy when the limit is hit.
var errTooManyRedirects = errors.New("maximum redirects followed")

// Perform runs the transfer described by the handle and blocks until it completes or fails.
// Response bytes are delivered to the sink on the calling goroutine.
// HTTP error statuses are not failures: the status is available through GetInfo.
func (e *NetEngine) Perform(ctx context.Context, h *Handle) Code {
	if !isUsable(h) {
		return CodeBadFunctionArgument
	}

	h.info = Info{ContentLength: -1}

	startTime := time.Now()
	code, err := e.perform(ctx, h)
	h.info.TotalTime = time.Since(startTime)

	if err != nil {
		h.info.ErrorDetail = err.Error()
	}

	return code
}

func (e *NetEngine) perform(ctx context.Context, h *Handle) (Code, error) {
	request, code, err := e.newRequest(ctx, h)
	if err != nil {
		return code, err
	}

	client, code, err := e.clientFor(h)
	if err != nil {
		return code, err
	}

	response, err := client.Do(request)
	if err != nil {
		return classifyError(err), err
	}

	defer response.Body.Close() //nolint:errcheck // Error on close is not critical here.

	if h.hasBody {
		h.info.BytesUploaded = int64(len(h.body))
	}

	h.info.StatusCode = response.StatusCode
	h.info.Protocol = response.Proto
	h.info.ContentType = response.Header.Get("Content-Type")
	h.info.ContentLength = response.ContentLength
	h.info.EffectiveURL = response.Request.URL.String()

	return e.readBody(h, response.Body)
}

// readBody streams the body into the sink in chunks of at most ChunkSize bytes.
func (e *NetEngine) readBody(h *Handle, body io.Reader) (Code, error) {
	chunk := make([]byte, e.cfg.ChunkSize)

	for {
		n, readErr := body.Read(chunk)
		if n > 0 {
			h.info.BytesDownloaded += int64(n)

			if h.sink != nil {
				if accepted := h.sink(chunk[:n]); accepted != n {
					return CodeWriteError, fmt.Errorf("sink accepted %d of %d bytes", accepted, n)
				}
			}

			if h.progress != nil && !h.progress(h.info.ContentLength, h.info.BytesDownloaded) {
				return CodeAbortedByCallback, errors.New("transfer aborted by progress callback")
			}
		}

		if errors.Is(readErr, io.EOF) {
			return CodeOK, nil
		}

		if readErr != nil {
			code := classifyError(readErr)
			if code == CodeGotNothing {
				// A response already arrived, so a truncated body is a receive failure.
				code = CodeRecvError
			}

			return code, readErr
		}
	}
}

func (e *NetEngine) newRequest(ctx context.Context, h *Handle) (*http.Request, Code, error) {
	if h.url == "" {
		return nil, CodeURLMalformat, errors.New("no URL set")
	}

	target, err := url.Parse(h.url)
	if err != nil {
		return nil, CodeURLMalformat, err
	}

	switch strings.ToLower(target.Scheme) {
	case "http", "https":
	case "":
		return nil, CodeURLMalformat, fmt.Errorf("missing scheme in %q", h.url)
	default:
		return nil, CodeUnsupportedProtocol, fmt.Errorf("protocol %q not supported", target.Scheme)
	}

	if target.Host == "" {
		return nil, CodeURLMalformat, fmt.Errorf("missing host in %q", h.url)
	}

	method := h.method
	if method == "" {
		method = http.MethodGet
		if h.hasBody {
			method = http.MethodPost
		}
	}

	var body io.Reader = http.NoBody
	if h.hasBody {
		body = bytes.NewReader(h.body)
	}

	request, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return nil, CodeURLMalformat, err
	}

	if h.hasBody {
		request.ContentLength = int64(len(h.body))
	}

	applyHeaders(request, h)

	return request, CodeOK, nil
}

// applyHeaders copies the header list onto the request, preserving the order of repeated names.
func applyHeaders(request *http.Request, h *Handle) {
	for node := h.headers; node != nil; node = node.next {
		name, value, remove := splitHeaderLine(node.line)
		if name == "" {
			continue
		}

		switch {
		case strings.EqualFold(name, "Host"):
			if !remove {
				request.Host = value
			}
		case remove:
			// An empty value stops net/http from sending its default for this header.
			request.Header[http.CanonicalHeaderKey(name)] = []string{""}
		default:
			request.Header.Add(name, value)
		}
	}

	if h.userAgent != "" {
		if _, ok := request.Header["User-Agent"]; !ok {
			request.Header.Set("User-Agent", h.userAgent)
		}
	}
}

// clientFor returns a client bound to the handle's own transport.
func (e *NetEngine) clientFor(h *Handle) (*http.Client, Code, error) {
	tlsConfig, code, err := e.tlsConfigFor(h)
	if err != nil {
		return nil, code, err
	}

	if h.transport != nil {
		h.transport.CloseIdleConnections()
	}

	dialer := &net.Dialer{
		Timeout:   e.cfg.ConnectTimeout,
		KeepAlive: 30 * time.Second, //nolint:mnd // Matches net/http default.
	}

	transport := &http.Transport{
		Proxy:                 nil,
		DialContext:           dialer.DialContext,
		TLSClientConfig:       tlsConfig,
		TLSHandshakeTimeout:   e.cfg.ConnectTimeout,
		DisableCompression:    true,
		MaxIdleConnsPerHost:   1,
		ExpectContinueTimeout: time.Second,
	}

	if h.httpVersion == HTTPVersion2 || h.httpVersion == HTTPVersionNone {
		transport.ForceAttemptHTTP2 = true
	} else {
		// A non-nil empty map disables the HTTP/2 upgrade entirely.
		transport.TLSNextProto = map[string]func(string, *tls.Conn) http.RoundTripper{}
	}

	h.transport = transport

	var roundTripper http.RoundTripper = transport
	if e.cfg.Wrap != nil {
		roundTripper = e.cfg.Wrap(transport)
	}

	client := &http.Client{
		Transport:     roundTripper,
		Timeout:       h.timeout,
		CheckRedirect: redirectPolicy(h),
	}

	return client, CodeOK, nil
}

func redirectPolicy(h *Handle) func(*http.Request, []*http.Request) error {
	return func(_ *http.Request, via []*http.Request) error {
		if !h.followLocation {
			return http.ErrUseLastResponse
		}

		if h.maxRedirs >= 0 && int64(len(via)) > h.maxRedirs {
			return fmt.Errorf("%w: %d", errTooManyRedirects, h.maxRedirs)
		}

		h.info.RedirectCount = len(via)

		return nil
	}
}
