package probe

// Verdict is the pass/fail result for a domain.
type Verdict string

const (
	VerdictPass Verdict = "PASS"
	VerdictFail Verdict = "FAIL"
)

// ReasonCode is a member of the probe reason taxonomy. Every code is terminal
// for its domain; nothing is retried.
type ReasonCode string

const (
	ReasonCertificatePinned    ReasonCode = "certificate_pinned"
	ReasonUntrustedCertificate ReasonCode = "untrusted_certificate"
	ReasonNoDNS                ReasonCode = "no_dns"
	ReasonConnectionRefused    ReasonCode = "connection_refused"
	ReasonConnectionReset      ReasonCode = "connection_reset"
	ReasonConnectionError      ReasonCode = "connection_error"
	ReasonTimeout              ReasonCode = "timeout"
	ReasonTLSHandshakeFailed   ReasonCode = "tls_handshake_failed"
	ReasonRequestError         ReasonCode = "request_error"
	ReasonNoTLSAvailable       ReasonCode = "no_tls_available"
)

var reasonTexts = map[ReasonCode]string{
	ReasonCertificatePinned:    "certificate pinned",
	ReasonUntrustedCertificate: "untrusted cert",
	ReasonNoDNS:                "no dns",
	ReasonConnectionRefused:    "connection refused",
	ReasonConnectionReset:      "connection reset",
	ReasonConnectionError:      "connection error",
	ReasonTimeout:              "timeout",
	ReasonTLSHandshakeFailed:   "tls handshake failed",
	ReasonRequestError:         "request error",
	ReasonNoTLSAvailable:       "no tls available",
}

// Text returns the human-readable form of the code.
func (c ReasonCode) Text() string {
	if text, ok := reasonTexts[c]; ok {
		return text
	}
	return string(c)
}

// Valid reports whether c belongs to the taxonomy.
func (c ReasonCode) Valid() bool {
	_, ok := reasonTexts[c]
	return ok
}

// IsTransportFailure reports whether c can be produced by the transport prober.
func (c ReasonCode) IsTransportFailure() bool {
	switch c {
	case ReasonNoDNS, ReasonConnectionRefused, ReasonConnectionReset,
		ReasonConnectionError, ReasonTimeout, ReasonTLSHandshakeFailed, ReasonRequestError:
		return true
	}
	return false
}

// Reason is a reason code plus the offending identity for untrusted certificates.
type Reason struct {
	Code     ReasonCode
	Identity string
}

// String renders the reason the way reports show it.
func (r Reason) String() string {
	if r.Code == ReasonUntrustedCertificate {
		return r.Code.Text() + ": " + r.Identity
	}
	return r.Code.Text()
}
