package engine

// Option identifies a handle setting configured through SetString or SetLong.
type Option int

// String options.
const (
	// OptURL is the target URL.
	OptURL Option = iota + 1
	// OptCustomRequest overrides the request method.
	OptCustomRequest
	// OptUserAgent sets the User-Agent header unless the header list already carries one.
	OptUserAgent
	// OptCAInfo is the path to a PEM bundle used instead of the system roots.
	OptCAInfo
)

// Integer options.
const (
	// OptNoSignal disables signal usage. Go never raises signals for timeouts, so only 0 and 1 are validated.
	OptNoSignal Option = iota + 100
	// OptHTTPVersion pins the protocol version, see HTTPVersion* values.
	OptHTTPVersion
	// OptSSLVerifyPeer enables (1) or disables (0) certificate chain verification.
	OptSSLVerifyPeer
	// OptSSLVerifyHost sets hostname verification: 0 disables it, 1 and 2 require a full match.
	OptSSLVerifyHost
	// OptTimeoutMS bounds the whole transfer in milliseconds, 0 means no limit.
	OptTimeoutMS
	// OptFollowLocation toggles redirect following.
	OptFollowLocation
	// OptMaxRedirs limits followed redirects, -1 means unlimited.
	OptMaxRedirs
)

// Values accepted by OptHTTPVersion.
const (
	HTTPVersionNone int64 = 0
	HTTPVersion10   int64 = 1
	HTTPVersion11   int64 = 2
	HTTPVersion2    int64 = 3
)

// Values accepted by OptSSLVerifyHost.
const (
	VerifyHostNone   int64 = 0
	VerifyHostStrict int64 = 2
)

//nolint:gochecknoglobals // Immutable lookup table.
var optionNames = map[Option]string{
	OptURL:            "url",
	OptCustomRequest:  "custom_request",
	OptUserAgent:      "user_agent",
	OptCAInfo:         "ca_info",
	OptNoSignal:       "no_signal",
	OptHTTPVersion:    "http_version",
	OptSSLVerifyPeer:  "ssl_verify_peer",
	OptSSLVerifyHost:  "ssl_verify_host",
	OptTimeoutMS:      "timeout_ms",
	OptFollowLocation: "follow_location",
	OptMaxRedirs:      "max_redirs",
}

// String implements fmt.Stringer.
func (o Option) String() string {
	if name, ok := optionNames[o]; ok {
		return name
	}

	return "unknown"
}

func (o Option) isString() bool {
	return o >= OptURL && o <= OptCAInfo
}

func (o Option) isLong() bool {
	return o >= OptNoSignal && o <= OptMaxRedirs
}
