package probe

// Classify combines the certificate identity and the transport outcome into a
// verdict. The certificate check always runs first: a pinned identity passes
// even when the classification request failed, and an unpinned identity fails
// as untrusted even when the request succeeded. Only when no identity was
// obtained does the transport failure become the reason.
func Classify(identity string, transport TransportOutcome, pinned PinnedIdentitySet) (Verdict, Reason) {
	if identity != "" {
		if pinned.Contains(identity) {
			return VerdictPass, Reason{Code: ReasonCertificatePinned}
		}
		return VerdictFail, Reason{Code: ReasonUntrustedCertificate, Identity: identity}
	}

	if !transport.Success() {
		code := transport.Failure
		if !code.IsTransportFailure() {
			code = ReasonRequestError
		}
		return VerdictFail, Reason{Code: code}
	}

	return VerdictFail, Reason{Code: ReasonNoTLSAvailable}
}
