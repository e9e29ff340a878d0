package checker

import (
	"crypto/x509"

	"go.uber.org/zap"
)

// Option customizes the sub-probes built by NewPinChecker.
type Option func(*options)

type options struct {
	port    string
	rootCAs *x509.CertPool
	logger  *zap.Logger
}

// WithPort overrides the HTTPS port, mostly for local test servers.
func WithPort(port string) Option {
	return func(o *options) { o.port = port }
}

// WithRootCAs sets the trust pool used while fetching identities.
func WithRootCAs(pool *x509.CertPool) Option {
	return func(o *options) { o.rootCAs = pool }
}

// WithLogger attaches a logger to both sub-probes.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}
