package executor

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/oshokin/oneshot/internal/accumulator"
	"github.com/oshokin/oneshot/internal/engine"
	"github.com/oshokin/oneshot/internal/logger"
)

// Options are the optional settings applied to every request of an Executor.
// The TLS and protocol safety defaults are not part of Options and cannot be turned off.
type Options struct {
	// Timeout bounds a whole request. Zero means no limit.
	Timeout time.Duration
	// FollowRedirects enables redirect following.
	FollowRedirects bool
	// MaxRedirects limits followed redirects when FollowRedirects is set, -1 means unlimited.
	// The zero value follows none: the first redirect fails with engine.CodeTooManyRedirects.
	MaxRedirects int64
	// UserAgent is sent unless the request carries its own User-Agent header.
	UserAgent string
	// CABundle is a PEM file used instead of the system roots.
	CABundle string
	// MaxResponseSize caps the buffered body size. Zero means no limit.
	MaxResponseSize int64
	// Progress is called as body bytes arrive.
	Progress engine.ProgressFunc
}

// Result is the body of a successfully transferred response.
type Result struct {
	// Body holds exactly Length bytes.
	Body []byte
	// Length is the body size.
	Length int
}

// Executor performs single, blocking, fully buffered requests.
// It is safe for concurrent use: every Execute call acquires its own handle.
type Executor struct {
	// engine performs the transfers.
	engine engine.Engine
	// opts are applied to every request.
	opts Options
}

// New creates an Executor. The engine must be initialized before Execute is called.
func New(eng engine.Engine, opts Options) *Executor {
	return &Executor{
		engine: eng,
		opts:   opts,
	}
}

// Execute performs the request and blocks until the transfer completes or fails.
// On success it returns the body and the transfer metadata; an HTTP error status is a success.
// On failure it returns a *TransportError and, when a transfer was attempted, its metadata.
//
//nolint:funlen // Each exit path releases its resources explicitly.
func (x *Executor) Execute(ctx context.Context, req *Request) (*Result, *engine.Info, error) {
	if req == nil {
		return nil, nil, ErrNilRequest
	}

	ctx = logger.WithKV(ctx, "request_id", uuid.NewString())
	state := StateIdle

	transition := func(next State) {
		logger.DebugKV(ctx, "Request state changed", "from", state, "to", next)

		state = next
	}

	logger.DebugKV(ctx, "Executing request", "method", req.Method, "url", req.URL)

	handle, err := x.engine.AcquireHandle()
	if err != nil {
		failure := x.newError(ErrInitFailed, engine.CodeFailedInit, state, req).withCause(err)

		transition(StateInitFailed)

		return nil, nil, failure
	}

	transition(StateHandleAcquired)

	var headers *engine.HeaderList

	defer func() {
		x.engine.ReleaseHandle(handle)

		if headers != nil {
			x.engine.ReleaseHeaderList(headers)
		}
	}()

	buffer := accumulator.New(x.opts.MaxResponseSize)

	headers, err = x.buildHeaders(req.Headers)
	if err != nil {
		buffer.Discard()

		failure := x.newError(ErrConfigFailed, engine.CodeBadFunctionArgument, state, req).withCause(err)

		transition(StateFailed)

		return nil, nil, failure
	}

	if code, option := x.configure(handle, req, headers, buffer); !code.OK() {
		buffer.Discard()

		failure := x.newError(ErrConfigFailed, code, state, req).withDetail("rejected option: " + option)

		transition(StateFailed)

		return nil, nil, failure
	}

	transition(StateConfigured)
	transition(StateInFlight)

	code := x.engine.Perform(ctx, handle)
	info := x.engine.GetInfo(handle)

	if !code.OK() {
		kind := ErrTransport
		if code == engine.CodeWriteError && buffer.Rejected() {
			kind = ErrOutOfMemory
		}

		buffer.Discard()

		failure := x.newError(kind, code, state, req).withDetail(info.ErrorDetail)

		transition(StateFailed)
		logger.DebugKV(ctx, "Request failed", "code", int(code), "error", failure.Error())

		return nil, &info, failure
	}

	body, length := buffer.Finalize()

	transition(StateCompleted)
	logger.DebugKV(ctx, "Request completed",
		"status", info.StatusCode,
		"bytes", length,
		"duration", info.TotalTime)

	return &Result{Body: body, Length: length}, &info, nil
}

func (x *Executor) buildHeaders(headers []Header) (*engine.HeaderList, error) {
	if len(headers) == 0 {
		return nil, nil
	}

	builder := NewHeaderListBuilder(x.engine)
	for _, header := range headers {
		builder.Add(header.Name, header.Value)
	}

	return builder.Build()
}

// configure applies every option to the handle.
// It returns the first rejected code together with the option name.
//
//nolint:cyclop // Optional settings are applied one after another.
func (x *Executor) configure(
	handle *engine.Handle,
	req *Request,
	headers *engine.HeaderList,
	buffer *accumulator.Accumulator,
) (engine.Code, string) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	stringOptions := []struct {
		option engine.Option
		value  string
	}{
		{engine.OptURL, req.URL},
		{engine.OptCustomRequest, method},
	}

	if x.opts.UserAgent != "" {
		stringOptions = append(stringOptions, struct {
			option engine.Option
			value  string
		}{engine.OptUserAgent, x.opts.UserAgent})
	}

	if x.opts.CABundle != "" {
		stringOptions = append(stringOptions, struct {
			option engine.Option
			value  string
		}{engine.OptCAInfo, x.opts.CABundle})
	}

	for _, o := range stringOptions {
		if code := x.engine.SetString(handle, o.option, o.value); !code.OK() {
			return code, o.option.String()
		}
	}

	longOptions := []struct {
		option engine.Option
		value  int64
	}{
		{engine.OptNoSignal, 1},
		{engine.OptHTTPVersion, engine.HTTPVersion11},
		{engine.OptSSLVerifyPeer, 1},
		{engine.OptSSLVerifyHost, engine.VerifyHostStrict},
	}

	if x.opts.Timeout > 0 {
		longOptions = append(longOptions, struct {
			option engine.Option
			value  int64
		}{engine.OptTimeoutMS, x.opts.Timeout.Milliseconds()})
	}

	if x.opts.FollowRedirects {
		longOptions = append(longOptions,
			struct {
				option engine.Option
				value  int64
			}{engine.OptFollowLocation, 1},
			struct {
				option engine.Option
				value  int64
			}{engine.OptMaxRedirs, x.opts.MaxRedirects})
	}

	for _, o := range longOptions {
		if code := x.engine.SetLong(handle, o.option, o.value); !code.OK() {
			return code, o.option.String()
		}
	}

	if headers != nil {
		if code := x.engine.SetHeaders(handle, headers); !code.OK() {
			return code, "headers"
		}
	}

	if req.Body != nil {
		if code := x.engine.SetBody(handle, req.Body); !code.OK() {
			return code, "body"
		}
	}

	if code := x.engine.SetSink(handle, buffer.Sink); !code.OK() {
		return code, "sink"
	}

	if x.opts.Progress != nil {
		if code := x.engine.SetProgress(handle, x.opts.Progress); !code.OK() {
			return code, "progress"
		}
	}

	return engine.CodeOK, ""
}

func (x *Executor) newError(kind error, code engine.Code, state State, req *Request) *TransportError {
	return newTransportError(kind, code, x.engine.DescribeError(code), state, req.URL)
}

// String implements fmt.Stringer for debugging output.
func (r *Result) String() string {
	return fmt.Sprintf("%d bytes", r.Length)
}
