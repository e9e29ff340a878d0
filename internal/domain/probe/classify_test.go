package probe

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var testPinned = NewPinnedIdentitySet("ibkr.eu", "interactivebrokers.com")

func allTransportOutcomes() []TransportOutcome {
	return []TransportOutcome{
		TransportSuccess(200, "https://example/"),
		TransportFailure(ReasonNoDNS),
		TransportFailure(ReasonConnectionRefused),
		TransportFailure(ReasonConnectionReset),
		TransportFailure(ReasonConnectionError),
		TransportFailure(ReasonTimeout),
		TransportFailure(ReasonTLSHandshakeFailed),
		TransportFailure(ReasonRequestError),
	}
}

func TestClassify_PinnedIdentityAlwaysPasses(t *testing.T) {
	for _, transport := range allTransportOutcomes() {
		verdict, reason := Classify("ibkr.eu", transport, testPinned)
		require.Equal(t, VerdictPass, verdict, "transport %q", transport.Failure)
		require.Equal(t, ReasonCertificatePinned, reason.Code)
		require.Equal(t, "certificate pinned", reason.String())
	}
}

func TestClassify_UnpinnedIdentityAlwaysUntrusted(t *testing.T) {
	for _, transport := range allTransportOutcomes() {
		verdict, reason := Classify("some-other-cn.example", transport, testPinned)
		require.Equal(t, VerdictFail, verdict)
		require.Equal(t, ReasonUntrustedCertificate, reason.Code)
		require.Equal(t, "some-other-cn.example", reason.Identity)
		require.Equal(t, "untrusted cert: some-other-cn.example", reason.String())
	}
}

func TestClassify_AbsentIdentityUsesTransportFailure(t *testing.T) {
	tests := []struct {
		name      string
		transport TransportOutcome
		wantCode  ReasonCode
		wantText  string
	}{
		{name: "no dns", transport: TransportFailure(ReasonNoDNS), wantCode: ReasonNoDNS, wantText: "no dns"},
		{name: "refused", transport: TransportFailure(ReasonConnectionRefused), wantCode: ReasonConnectionRefused, wantText: "connection refused"},
		{name: "reset", transport: TransportFailure(ReasonConnectionReset), wantCode: ReasonConnectionReset, wantText: "connection reset"},
		{name: "connection error", transport: TransportFailure(ReasonConnectionError), wantCode: ReasonConnectionError, wantText: "connection error"},
		{name: "timeout", transport: TransportFailure(ReasonTimeout), wantCode: ReasonTimeout, wantText: "timeout"},
		{name: "tls", transport: TransportFailure(ReasonTLSHandshakeFailed), wantCode: ReasonTLSHandshakeFailed, wantText: "tls handshake failed"},
		{name: "request", transport: TransportFailure(ReasonRequestError), wantCode: ReasonRequestError, wantText: "request error"},
		{name: "success without tls", transport: TransportSuccess(301, "https://x/"), wantCode: ReasonNoTLSAvailable, wantText: "no tls available"},
		{name: "non transport code", transport: TransportFailure(ReasonCertificatePinned), wantCode: ReasonRequestError, wantText: "request error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict, reason := Classify("", tt.transport, testPinned)
			require.Equal(t, VerdictFail, verdict)
			require.Equal(t, tt.wantCode, reason.Code)
			require.Equal(t, tt.wantText, reason.String())
		})
	}
}

func TestClassify_Idempotent(t *testing.T) {
	for _, identity := range []string{"", "ibkr.eu", "evil.example"} {
		for _, transport := range allTransportOutcomes() {
			v1, r1 := Classify(identity, transport, testPinned)
			v2, r2 := Classify(identity, transport, testPinned)
			require.Equal(t, v1, v2)
			require.Equal(t, r1, r2)
		}
	}
}

func TestClassify_EmptyPinnedSetNeverPasses(t *testing.T) {
	verdict, reason := Classify("ibkr.eu", TransportSuccess(200, ""), PinnedIdentitySet{})
	require.Equal(t, VerdictFail, verdict)
	require.Equal(t, ReasonUntrustedCertificate, reason.Code)
}

func TestPinnedIdentitySet(t *testing.T) {
	set := NewPinnedIdentitySet("b", "", "a", "b")
	require.Equal(t, 2, set.Len())
	require.True(t, set.Contains("a"))
	require.False(t, set.Contains(""))
	require.False(t, set.Contains("A"))
	require.Equal(t, []string{"a", "b"}, set.Identities())
}

func TestReasonCode_Text(t *testing.T) {
	require.Equal(t, "no dns", ReasonNoDNS.Text())
	require.Equal(t, "mystery", ReasonCode("mystery").Text())
	require.False(t, ReasonCode("mystery").Valid())
	require.True(t, ReasonNoTLSAvailable.Valid())
	require.False(t, ReasonNoTLSAvailable.IsTransportFailure())
}
