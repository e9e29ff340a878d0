package checker

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"net"
	"time"

	"go.uber.org/zap"
)

// DefaultHTTPSPort is the port both sub-probes connect to.
const DefaultHTTPSPort = "443"

// IdentitySource returns the certificate common name a host presents, or ""
// when none could be obtained.
type IdentitySource interface {
	Fetch(ctx context.Context, host string) string
}

// IdentityFetcher opens a TLS connection and reads the leaf certificate's
// subject common name.
type IdentityFetcher struct {
	Timeout    time.Duration
	Port       string         // defaults to 443
	RootCAs    *x509.CertPool // nil uses the system pool
	SkipVerify bool           // read the CN even from untrusted chains
	Logger     *zap.Logger
}

// Fetch performs one handshake with host as both dial target and SNI. Every
// failure (resolution, refusal, timeout, handshake) yields "".
func (f *IdentityFetcher) Fetch(ctx context.Context, host string) string {
	logger := f.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	port := f.Port
	if port == "" {
		port = DefaultHTTPSPort
	}

	fetchCtx, cancel := context.WithTimeout(ctx, f.Timeout)
	defer cancel()

	dialer := &tls.Dialer{
		NetDialer: &net.Dialer{Timeout: f.Timeout},
		Config: &tls.Config{
			ServerName:         host,
			RootCAs:            f.RootCAs,
			InsecureSkipVerify: f.SkipVerify, //nolint:gosec // operator opt-in, identity is pinned by CN
		},
	}

	conn, err := dialer.DialContext(fetchCtx, "tcp", net.JoinHostPort(host, port))
	if err != nil {
		logger.Debug("identity fetch failed", zap.String("host", host), zap.Error(err))
		return ""
	}
	defer conn.Close()

	tlsConn, ok := conn.(*tls.Conn)
	if !ok {
		return ""
	}

	state := tlsConn.ConnectionState()
	if len(state.PeerCertificates) == 0 {
		logger.Debug("no peer certificates presented", zap.String("host", host))
		return ""
	}

	cn := state.PeerCertificates[0].Subject.CommonName
	logger.Debug("identity fetched", zap.String("host", host), zap.String("cn", cn))
	return cn
}
