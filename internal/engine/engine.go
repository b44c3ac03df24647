package engine

//go:generate $MOCKGEN -source=engine.go -destination=mocks/engine_mock.go

import (
	"context"
	"crypto/x509"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/oshokin/oneshot/internal/logger"
)

// Engine is the capability interface the request executor needs from a transport engine.
type Engine interface {
	// AcquireHandle returns a fresh handle with default settings.
	AcquireHandle() (*Handle, error)
	// ReleaseHandle frees the handle and every resource it holds.
	ReleaseHandle(h *Handle)
	// SetString sets a string option.
	SetString(h *Handle, opt Option, value string) Code
	// SetLong sets an integer option.
	SetLong(h *Handle, opt Option, value int64) Code
	// SetSink sets the body write target.
	SetSink(h *Handle, sink Sink) Code
	// SetBody attaches a request body with its exact length.
	SetBody(h *Handle, body []byte) Code
	// SetHeaders attaches a header list. The list must outlive the transfer.
	SetHeaders(h *Handle, list *HeaderList) Code
	// SetProgress sets the progress callback.
	SetProgress(h *Handle, fn ProgressFunc) Code
	// Perform runs the transfer and blocks until it completes or fails.
	Perform(ctx context.Context, h *Handle) Code
	// GetInfo returns metadata of the last transfer.
	GetInfo(h *Handle) Info
	// AppendHeader appends a raw header line and returns the authoritative list head,
	// or nil if the line was rejected.
	AppendHeader(list *HeaderList, line string) *HeaderList
	// ReleaseHeaderList frees every entry of the list.
	ReleaseHeaderList(list *HeaderList)
	// DescribeError returns a human-readable description of a code.
	DescribeError(code Code) string
}

// Lifecycle is the process-wide setup and cleanup of an engine.
type Lifecycle interface {
	// Init must run once before any handle is acquired.
	Init() error
	// Teardown must run once after every handle is released.
	Teardown() error
}

// Config holds NetEngine settings.
type Config struct {
	// Wrap decorates the per-handle transport, e.g. with logging. Nil means no decoration.
	Wrap func(next http.RoundTripper) http.RoundTripper
	// ChunkSize is the largest chunk handed to a sink. Defaults to DefaultChunkSize.
	ChunkSize int
	// CAPoolCacheSize is the number of parsed CA bundles kept in memory.
	// Defaults to DefaultCAPoolCacheSize.
	CAPoolCacheSize int
	// ConnectTimeout bounds connection establishment. Defaults to DefaultConnectTimeout.
	ConnectTimeout time.Duration
}

const (
	// DefaultChunkSize is the largest body chunk delivered to a sink in one call.
	DefaultChunkSize = 16 * 1024
	// DefaultCAPoolCacheSize is the default number of parsed CA bundles kept in memory.
	DefaultCAPoolCacheSize = 16
	// DefaultConnectTimeout is the default connection establishment timeout.
	DefaultConnectTimeout = 300 * time.Second
)

type lifecycleState int

const (
	stateUninitialized lifecycleState = iota
	stateInitialized
)

// Static error definitions for better error handling.
var (
	// ErrNotInitialized indicates that Init was not called or Teardown already ran.
	ErrNotInitialized = errors.New("engine is not initialized")
	// ErrAlreadyInitialized indicates a repeated Init call.
	ErrAlreadyInitialized = errors.New("engine is already initialized")
	// ErrHandlesOutstanding indicates Teardown was called while handles are still acquired.
	ErrHandlesOutstanding = errors.New("engine has outstanding handles")
)

// NetEngine is an Engine backed by net/http.
// Every handle owns its own transport, so no connection is shared between handles.
type NetEngine struct {
	// cfg holds the engine settings.
	cfg Config
	// mu guards state, liveHandles, systemRoots and caPools.
	mu sync.Mutex
	// state is the lifecycle state.
	state lifecycleState
	// liveHandles counts acquired, not yet released handles.
	liveHandles int
	// systemRoots is the system certificate pool loaded by Init, nil if unavailable.
	systemRoots *x509.CertPool
	// caPools caches parsed CA bundles by path.
	caPools *lru.Cache[string, *x509.CertPool]
}

// New creates a NetEngine. Init must be called before acquiring handles.
func New(cfg Config) *NetEngine {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = DefaultChunkSize
	}

	if cfg.CAPoolCacheSize <= 0 {
		cfg.CAPoolCacheSize = DefaultCAPoolCacheSize
	}

	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = DefaultConnectTimeout
	}

	return &NetEngine{cfg: cfg}
}

// Init performs the process-wide setup: it loads the system certificate pool
// and prepares the CA bundle cache. It is not safe to call concurrently with itself.
func (e *NetEngine) Init() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == stateInitialized {
		return ErrAlreadyInitialized
	}

	caPools, err := lru.New[string, *x509.CertPool](e.cfg.CAPoolCacheSize)
	if err != nil {
		return fmt.Errorf("failed to create CA pool cache: %w", err)
	}

	systemRoots, err := x509.SystemCertPool()
	if err != nil {
		// crypto/tls falls back to the platform verifier when RootCAs is nil.
		logger.Warnf(context.Background(), "System certificate pool is unavailable: %v", err)

		systemRoots = nil
	}

	e.caPools = caPools
	e.systemRoots = systemRoots
	e.state = stateInitialized

	return nil
}

// Teardown releases the process-wide state. Handles must not be acquired afterwards
// until Init runs again.
func (e *NetEngine) Teardown() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != stateInitialized {
		return ErrNotInitialized
	}

	if e.liveHandles > 0 {
		return fmt.Errorf("%w: %d", ErrHandlesOutstanding, e.liveHandles)
	}

	e.caPools.Purge()
	e.caPools = nil
	e.systemRoots = nil
	e.state = stateUninitialized

	return nil
}

// AcquireHandle returns a fresh handle with default settings.
func (e *NetEngine) AcquireHandle() (*Handle, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != stateInitialized {
		return nil, ErrNotInitialized
	}

	e.liveHandles++

	return newHandle(), nil
}

// ReleaseHandle frees the handle. Releasing an already released handle is a no-op.
func (e *NetEngine) ReleaseHandle(h *Handle) {
	if h == nil || h.released {
		return
	}

	if h.transport != nil {
		h.transport.CloseIdleConnections()
		h.transport = nil
	}

	h.released = true
	h.sink = nil
	h.progress = nil
	h.headers = nil
	h.body = nil

	e.mu.Lock()
	e.liveHandles--
	e.mu.Unlock()
}

// SetString sets a string option.
func (e *NetEngine) SetString(h *Handle, opt Option, value string) Code {
	if !isUsable(h) {
		return CodeBadFunctionArgument
	}

	if !opt.isString() {
		return CodeUnknownOption
	}

	switch opt {
	case OptURL:
		h.url = value
	case OptCustomRequest:
		h.method = value
	case OptUserAgent:
		h.userAgent = value
	case OptCAInfo:
		h.caInfo = value
	default:
		return CodeUnknownOption
	}

	return CodeOK
}

// SetLong sets an integer option.
//
//nolint:cyclop // A flat switch over options reads better than a dispatch table.
func (e *NetEngine) SetLong(h *Handle, opt Option, value int64) Code {
	if !isUsable(h) {
		return CodeBadFunctionArgument
	}

	if !opt.isLong() {
		return CodeUnknownOption
	}

	switch opt {
	case OptNoSignal:
		if !isBoolValue(value) {
			return CodeBadFunctionArgument
		}

		h.noSignal = value == 1
	case OptHTTPVersion:
		switch value {
		case HTTPVersionNone, HTTPVersion11, HTTPVersion2:
			h.httpVersion = value
		case HTTPVersion10:
			return CodeUnsupportedProtocol
		default:
			return CodeBadFunctionArgument
		}
	case OptSSLVerifyPeer:
		if !isBoolValue(value) {
			return CodeBadFunctionArgument
		}

		h.verifyPeer = value == 1
	case OptSSLVerifyHost:
		if value < VerifyHostNone || value > VerifyHostStrict {
			return CodeBadFunctionArgument
		}

		h.verifyHost = value != VerifyHostNone
	case OptTimeoutMS:
		if value < 0 {
			return CodeBadFunctionArgument
		}

		h.timeout = time.Duration(value) * time.Millisecond
	case OptFollowLocation:
		if !isBoolValue(value) {
			return CodeBadFunctionArgument
		}

		h.followLocation = value == 1
	case OptMaxRedirs:
		if value < -1 {
			return CodeBadFunctionArgument
		}

		h.maxRedirs = value
	default:
		return CodeUnknownOption
	}

	return CodeOK
}

// SetSink sets the body write target. A nil sink discards the body.
func (e *NetEngine) SetSink(h *Handle, sink Sink) Code {
	if !isUsable(h) {
		return CodeBadFunctionArgument
	}

	h.sink = sink

	return CodeOK
}

// SetBody attaches a request body. The length is taken from the slice,
// so bodies with embedded zero bytes are sent in full.
func (e *NetEngine) SetBody(h *Handle, body []byte) Code {
	if !isUsable(h) {
		return CodeBadFunctionArgument
	}

	h.body = body
	h.hasBody = body != nil

	return CodeOK
}

// SetHeaders attaches a header list. Passing nil detaches it.
func (e *NetEngine) SetHeaders(h *Handle, list *HeaderList) Code {
	if !isUsable(h) {
		return CodeBadFunctionArgument
	}

	h.headers = list

	return CodeOK
}

// SetProgress sets the progress callback.
func (e *NetEngine) SetProgress(h *Handle, fn ProgressFunc) Code {
	if !isUsable(h) {
		return CodeBadFunctionArgument
	}

	h.progress = fn

	return CodeOK
}

// GetInfo returns metadata of the last transfer.
func (e *NetEngine) GetInfo(h *Handle) Info {
	if h == nil {
		return Info{}
	}

	return h.info
}

// AppendHeader appends a raw header line to the list.
func (e *NetEngine) AppendHeader(list *HeaderList, line string) *HeaderList {
	return appendHeaderLine(list, line)
}

// ReleaseHeaderList frees every entry of the list.
func (e *NetEngine) ReleaseHeaderList(list *HeaderList) {
	freeHeaderList(list)
}

// DescribeError returns a human-readable description of a code.
func (e *NetEngine) DescribeError(code Code) string {
	return Describe(code)
}

func isUsable(h *Handle) bool {
	return h != nil && !h.released
}

func isBoolValue(value int64) bool {
	return value == 0 || value == 1
}
