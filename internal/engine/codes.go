package engine

import "fmt"

// Code is the result of an engine operation.
// Values follow the numbering used by libcurl so that codes stay recognizable in logs.
type Code int

// Result codes.
const (
	CodeOK                     Code = 0
	CodeUnsupportedProtocol    Code = 1
	CodeFailedInit             Code = 2
	CodeURLMalformat           Code = 3
	CodeCouldntResolveHost     Code = 6
	CodeCouldntConnect         Code = 7
	CodeWriteError             Code = 23
	CodeOutOfMemory            Code = 27
	CodeOperationTimedout      Code = 28
	CodeSSLConnectError        Code = 35
	CodeAbortedByCallback      Code = 42
	CodeBadFunctionArgument    Code = 43
	CodeTooManyRedirects       Code = 47
	CodeUnknownOption          Code = 48
	CodeGotNothing             Code = 52
	CodeSendError              Code = 55
	CodeRecvError              Code = 56
	CodePeerFailedVerification Code = 60
	CodeSSLCACertBadFile       Code = 77
)

//nolint:gochecknoglobals // Immutable lookup table.
var codeDescriptions = map[Code]string{
	CodeOK:                     "No error",
	CodeUnsupportedProtocol:    "Unsupported protocol",
	CodeFailedInit:             "Failed initialization",
	CodeURLMalformat:           "URL using bad/illegal format or missing URL",
	CodeCouldntResolveHost:     "Couldn't resolve host name",
	CodeCouldntConnect:         "Couldn't connect to server",
	CodeWriteError:             "Failed writing received data to disk/application",
	CodeOutOfMemory:            "Out of memory",
	CodeOperationTimedout:      "Timeout was reached",
	CodeSSLConnectError:        "SSL connect error",
	CodeAbortedByCallback:      "Operation was aborted by an application callback",
	CodeBadFunctionArgument:    "A libcurl function was given a bad argument",
	CodeTooManyRedirects:       "Number of redirects hit maximum amount",
	CodeUnknownOption:          "An unknown option was passed in to libcurl",
	CodeGotNothing:             "Server returned nothing (no headers, no data)",
	CodeSendError:              "Failed sending data to the peer",
	CodeRecvError:              "Failure when receiving data from the peer",
	CodePeerFailedVerification: "SSL peer certificate or SSH remote key was not OK",
	CodeSSLCACertBadFile:       "Problem with the SSL CA cert (path? access rights?)",
}

// Describe returns a human-readable description of the code.
func Describe(code Code) string {
	if description, ok := codeDescriptions[code]; ok {
		return description
	}

	return fmt.Sprintf("Unknown error (%d)", int(code))
}

// String implements fmt.Stringer.
func (c Code) String() string {
	return Describe(c)
}

// OK reports whether the code signals success.
func (c Code) OK() bool {
	return c == CodeOK
}
