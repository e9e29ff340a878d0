package checker

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptrace"
	"os"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/khanhnv2901/seca-pin/internal/domain/probe"
	consts "github.com/khanhnv2901/seca-pin/internal/shared/constants"
)

// TransportSource classifies why a host is (un)reachable over HTTPS.
type TransportSource interface {
	Probe(ctx context.Context, host string) probe.TransportOutcome
}

// TransportProber issues an HTTPS GET to the host root. Certificates are not
// verified: the request exists only to classify connection failures.
type TransportProber struct {
	Timeout time.Duration
	Port    string // defaults to 443
	Logger  *zap.Logger
}

// Probe returns Success for any HTTP response, otherwise the failure code.
func (p *TransportProber) Probe(ctx context.Context, host string) probe.TransportOutcome {
	logger := p.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	probeCtx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	// the transport may still be dialing when Do returns
	var (
		hsMu         sync.Mutex
		handshakeErr error
	)
	trace := &httptrace.ClientTrace{
		TLSHandshakeDone: func(_ tls.ConnectionState, err error) {
			hsMu.Lock()
			defer hsMu.Unlock()
			if err != nil && handshakeErr == nil {
				handshakeErr = err
			}
		},
	}
	probeCtx = httptrace.WithClientTrace(probeCtx, trace)

	client := &http.Client{
		Timeout: p.Timeout,
		Transport: &http.Transport{
			TLSClientConfig:     &tls.Config{InsecureSkipVerify: true}, //nolint:gosec // classification only
			DisableKeepAlives:   true,
			TLSHandshakeTimeout: p.Timeout,
			Proxy:               http.ProxyFromEnvironment,
		},
	}
	defer client.CloseIdleConnections()

	req, err := http.NewRequestWithContext(probeCtx, http.MethodGet, HTTPSRootURL(host, p.Port), nil)
	if err != nil {
		logger.Debug("build request failed", zap.String("host", host), zap.Error(err))
		return probe.TransportFailure(probe.ReasonRequestError)
	}

	resp, err := client.Do(req)
	if err != nil {
		hsMu.Lock()
		code := classifyTransportError(err, handshakeErr)
		hsMu.Unlock()
		logger.Debug("transport probe failed",
			zap.String("host", host),
			zap.String("reason", string(code)),
			zap.Error(err))
		return probe.TransportFailure(code)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, consts.TransportBodyLimitBytes))

	finalURL := ""
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}
	logger.Debug("transport probe succeeded",
		zap.String("host", host),
		zap.Int("status", resp.StatusCode),
		zap.String("final_url", finalURL))
	return probe.TransportSuccess(resp.StatusCode, finalURL)
}

// ClassifyTransportError maps a request error onto the reason taxonomy.
func ClassifyTransportError(err error) probe.ReasonCode {
	return classifyTransportError(err, nil)
}

// classifyTransportError checks, in order: resolution, refusal, reset, other
// dial errors, timeouts, TLS handshake failures. handshakeErr is the error
// reported by the TLS handshake trace hook, if any.
func classifyTransportError(err, handshakeErr error) probe.ReasonCode {
	if err == nil {
		return ""
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return probe.ReasonNoDNS
	}

	if errors.Is(err, syscall.ECONNREFUSED) {
		return probe.ReasonConnectionRefused
	}

	if errors.Is(err, syscall.ECONNRESET) {
		return probe.ReasonConnectionReset
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return probe.ReasonConnectionError
	}

	if isTimeout(err) {
		return probe.ReasonTimeout
	}

	if handshakeErr != nil || isTLSError(err) {
		return probe.ReasonTLSHandshakeFailed
	}

	return probe.ReasonRequestError
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func isTLSError(err error) bool {
	var recordErr tls.RecordHeaderError
	if errors.As(err, &recordErr) {
		return true
	}
	var verifyErr *tls.CertificateVerificationError
	if errors.As(err, &verifyErr) {
		return true
	}
	var alertErr tls.AlertError
	if errors.As(err, &alertErr) {
		return true
	}
	var unknownAuthority x509.UnknownAuthorityError
	if errors.As(err, &unknownAuthority) {
		return true
	}
	var hostnameErr x509.HostnameError
	if errors.As(err, &hostnameErr) {
		return true
	}
	var certInvalid x509.CertificateInvalidError
	if errors.As(err, &certInvalid) {
		return true
	}
	// crypto/tls reports alerts as *net.OpError with these ops
	var opErr *net.OpError
	if errors.As(err, &opErr) && (opErr.Op == "remote error" || opErr.Op == "local error") {
		return true
	}
	return false
}
