package engine

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"io"
	"net"
	"strings"
)

// classifyError maps a net/http error onto a result code.
//
//nolint:cyclop // The checks are ordered from the most to the least specific.
func classifyError(err error) Code {
	if err == nil {
		return CodeOK
	}

	var (
		dnsErr          *net.DNSError
		verificationErr *tls.CertificateVerificationError
		unknownAuthErr  x509.UnknownAuthorityError
		hostnameErr     x509.HostnameError
		invalidCertErr  x509.CertificateInvalidError
		recordErr       tls.RecordHeaderError
		alertErr        tls.AlertError
		netErr          net.Error
		opErr           *net.OpError
	)

	switch {
	case errors.Is(err, errTooManyRedirects):
		return CodeTooManyRedirects
	case errors.Is(err, context.Canceled):
		return CodeAbortedByCallback
	case errors.Is(err, context.DeadlineExceeded):
		return CodeOperationTimedout
	case errors.As(err, &dnsErr):
		return CodeCouldntResolveHost
	case errors.As(err, &verificationErr),
		errors.As(err, &unknownAuthErr),
		errors.As(err, &hostnameErr),
		errors.As(err, &invalidCertErr):
		return CodePeerFailedVerification
	case errors.As(err, &netErr) && netErr.Timeout():
		return CodeOperationTimedout
	case errors.As(err, &recordErr), errors.As(err, &alertErr):
		return CodeSSLConnectError
	case errors.As(err, &opErr):
		return classifyOpError(opErr)
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return CodeGotNothing
	case strings.Contains(err.Error(), "unsupported protocol scheme"):
		return CodeUnsupportedProtocol
	default:
		return CodeRecvError
	}
}

func classifyOpError(opErr *net.OpError) Code {
	switch opErr.Op {
	case "dial":
		return CodeCouldntConnect
	case "write":
		return CodeSendError
	case "remote error":
		return CodeSSLConnectError
	default:
		return CodeRecvError
	}
}
