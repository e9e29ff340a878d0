package probe

import (
	"encoding/json"
	"sort"
	"strings"
	"time"
)

// Scope tells whether a domain belongs to the known (production) suffix set
// or the exploratory extended set.
type Scope int

const (
	ScopeKnown Scope = iota
	ScopeExtended
)

// String returns the label used in reports.
func (s Scope) String() string {
	switch s {
	case ScopeKnown:
		return "KNOWN"
	case ScopeExtended:
		return "EXTENDED"
	default:
		return "UNKNOWN"
	}
}

// MarshalText renders the scope label for JSON/YAML reports.
func (s Scope) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Domain is a hostname with its precomputed scope.
type Domain struct {
	Host  string
	Scope Scope
}

// NewDomain normalizes host and tags it with scope.
func NewDomain(host string, scope Scope) Domain {
	return Domain{
		Host:  NormalizeHost(host),
		Scope: scope,
	}
}

// NormalizeHost lower-cases host and drops a trailing root dot.
func NormalizeHost(host string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(host)), ".")
}

// PinnedIdentitySet is the immutable set of certificate common names accepted
// as the target organization. The zero value is an empty set.
type PinnedIdentitySet struct {
	ids map[string]struct{}
}

// NewPinnedIdentitySet copies identities into a new set. Empty entries are skipped.
func NewPinnedIdentitySet(identities ...string) PinnedIdentitySet {
	ids := make(map[string]struct{}, len(identities))
	for _, id := range identities {
		if id == "" {
			continue
		}
		ids[id] = struct{}{}
	}
	return PinnedIdentitySet{ids: ids}
}

// Contains reports whether identity is pinned.
func (p PinnedIdentitySet) Contains(identity string) bool {
	if identity == "" {
		return false
	}
	_, ok := p.ids[identity]
	return ok
}

// Len returns the number of pinned identities.
func (p PinnedIdentitySet) Len() int {
	return len(p.ids)
}

// Identities returns a sorted copy of the pinned identities.
func (p PinnedIdentitySet) Identities() []string {
	out := make([]string, 0, len(p.ids))
	for id := range p.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// TransportOutcome is what the transport prober learned about a host.
// An empty Failure means an HTTP response was received.
type TransportOutcome struct {
	Failure    ReasonCode
	StatusCode int
	FinalURL   string
}

// TransportSuccess builds a successful outcome.
func TransportSuccess(statusCode int, finalURL string) TransportOutcome {
	return TransportOutcome{StatusCode: statusCode, FinalURL: finalURL}
}

// TransportFailure builds a failed outcome carrying code.
func TransportFailure(code ReasonCode) TransportOutcome {
	return TransportOutcome{Failure: code}
}

// Success reports whether any HTTP response was received.
func (t TransportOutcome) Success() bool {
	return t.Failure == ""
}

// NoCertLabel is printed in place of an absent certificate identity.
const NoCertLabel = "NO_CERT"

// Outcome is the verdict for one probed domain.
type Outcome struct {
	Domain     string        `json:"domain" yaml:"domain"`
	Scope      Scope         `json:"scope" yaml:"scope"`
	Identity   string        `json:"cn" yaml:"cn"`
	Verdict    Verdict       `json:"verdict" yaml:"verdict"`
	Reason     Reason        `json:"-" yaml:"-"`
	ReasonCode ReasonCode    `json:"reason_code" yaml:"reason_code"`
	ReasonText string        `json:"reason" yaml:"reason"`
	HTTPStatus int           `json:"http_status,omitempty" yaml:"http_status,omitempty"`
	FinalURL   string        `json:"final_url,omitempty" yaml:"final_url,omitempty"`
	Duration   time.Duration `json:"-" yaml:"-"`
	DurationMS float64       `json:"duration_ms" yaml:"duration_ms"`
}

// NewOutcome classifies the sub-probe results for domain and assembles the row.
func NewOutcome(domain Domain, identity string, transport TransportOutcome, pinned PinnedIdentitySet, elapsed time.Duration) Outcome {
	verdict, reason := Classify(identity, transport, pinned)
	return Outcome{
		Domain:     domain.Host,
		Scope:      domain.Scope,
		Identity:   identity,
		Verdict:    verdict,
		Reason:     reason,
		ReasonCode: reason.Code,
		ReasonText: reason.String(),
		HTTPStatus: transport.StatusCode,
		FinalURL:   transport.FinalURL,
		Duration:   elapsed,
		DurationMS: float64(elapsed.Microseconds()) / 1000,
	}
}

// IdentityLabel returns the identity or NO_CERT.
func (o Outcome) IdentityLabel() string {
	if o.Identity == "" {
		return NoCertLabel
	}
	return o.Identity
}

// outcomeRow drops Outcome's marshal methods so they can encode the struct.
type outcomeRow Outcome

// MarshalJSON writes the row with NO_CERT standing in for an absent identity.
func (o Outcome) MarshalJSON() ([]byte, error) {
	row := outcomeRow(o)
	row.Identity = o.IdentityLabel()
	return json.Marshal(row)
}

// MarshalYAML mirrors MarshalJSON for YAML reports.
func (o Outcome) MarshalYAML() (interface{}, error) {
	row := outcomeRow(o)
	row.Identity = o.IdentityLabel()
	return row, nil
}

// Passed reports whether the domain presented a pinned identity.
func (o Outcome) Passed() bool {
	return o.Verdict == VerdictPass
}
