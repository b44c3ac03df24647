package engine

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// errNoCertificates indicates a CA bundle without any PEM certificate.
var errNoCertificates = errors.New("no certificates found in CA bundle")

// tlsConfigFor builds the TLS settings of a handle.
// With peer verification on and host verification off, the chain is still checked
// but the certificate name is not compared with the requested host.
func (e *NetEngine) tlsConfigFor(h *Handle) (*tls.Config, Code, error) {
	roots, code, err := e.rootsFor(h)
	if err != nil {
		return nil, code, err
	}

	tlsConfig := &tls.Config{
		MinVersion: tls.VersionTLS12,
		RootCAs:    roots,
	}

	switch {
	case !h.verifyPeer:
		tlsConfig.InsecureSkipVerify = true //nolint:gosec // Explicitly requested through OptSSLVerifyPeer.
	case !h.verifyHost:
		tlsConfig.InsecureSkipVerify = true //nolint:gosec // The chain is verified in VerifyConnection.
		tlsConfig.VerifyConnection = verifyChainOnly(roots)
	}

	return tlsConfig, CodeOK, nil
}

// rootsFor returns the CA pool of the handle, parsing and caching custom bundles by path.
func (e *NetEngine) rootsFor(h *Handle) (*x509.CertPool, Code, error) {
	e.mu.Lock()
	systemRoots, caPools := e.systemRoots, e.caPools
	e.mu.Unlock()

	if h.caInfo == "" {
		return systemRoots, CodeOK, nil
	}

	if caPools == nil {
		return nil, CodeFailedInit, ErrNotInitialized
	}

	if pool, ok := caPools.Get(h.caInfo); ok {
		return pool, CodeOK, nil
	}

	bundle, err := os.ReadFile(filepath.Clean(h.caInfo))
	if err != nil {
		return nil, CodeSSLCACertBadFile, fmt.Errorf("failed to read CA bundle: %w", err)
	}

	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(bundle) {
		return nil, CodeSSLCACertBadFile, fmt.Errorf("%w: %s", errNoCertificates, h.caInfo)
	}

	caPools.Add(h.caInfo, pool)

	return pool, CodeOK, nil
}

func verifyChainOnly(roots *x509.CertPool) func(tls.ConnectionState) error {
	return func(state tls.ConnectionState) error {
		if len(state.PeerCertificates) == 0 {
			return errors.New("peer presented no certificates")
		}

		intermediates := x509.NewCertPool()
		for _, certificate := range state.PeerCertificates[1:] {
			intermediates.AddCert(certificate)
		}

		_, err := state.PeerCertificates[0].Verify(x509.VerifyOptions{
			Roots:         roots,
			Intermediates: intermediates,
		})
		if err != nil {
			return &tls.CertificateVerificationError{
				UnverifiedCertificates: state.PeerCertificates,
				Err:                    err,
			}
		}

		return nil
	}
}
