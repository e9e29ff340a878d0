// Package domainset builds the ordered list of candidate hostnames for a probe
// run from a base name and two suffix groups.
package domainset

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/net/publicsuffix"

	"github.com/khanhnv2901/seca-pin/internal/domain/probe"
	sharedErrors "github.com/khanhnv2901/seca-pin/internal/shared/errors"
)

// DefaultBaseName is the label every suffix is appended to.
const DefaultBaseName = "interactivebrokers"

// DefaultPinnedIdentities are the certificate common names accepted as genuine.
var DefaultPinnedIdentities = []string{"ibkr.eu", "interactivebrokers.com"}

// DefaultKnownSuffixes are the production suffixes.
var DefaultKnownSuffixes = []string{
	"ch", "co.uk", "com", "de", "ee", "es", "eu", "fr", "ie", "it", "lu",
}

// DefaultExtendedSuffixes are probed only on request.
var DefaultExtendedSuffixes = []string{
	"ad", "al", "am", "at", "az", "ba", "bg", "by", "cy", "cz", "dk", "fo", "ge", "gi", "gr",
	"hr", "hu", "il", "im", "is", "je", "li", "lt", "lv", "mc", "md", "me", "mk", "mt", "nl",
	"no", "pl", "pt", "ro", "rs", "se", "si", "sk", "tr", "ua", "va",
}

// Builder turns suffix groups into scoped domains.
type Builder struct {
	BaseName         string
	KnownSuffixes    []string
	ExtendedSuffixes []string
	IncludeExtended  bool

	known map[string]struct{}
}

// NewBuilder returns a builder loaded with the default suffix groups.
func NewBuilder() *Builder {
	return &Builder{
		BaseName:         DefaultBaseName,
		KnownSuffixes:    append([]string(nil), DefaultKnownSuffixes...),
		ExtendedSuffixes: append([]string(nil), DefaultExtendedSuffixes...),
	}
}

// Build returns the known group (sorted) followed, when IncludeExtended is
// set, by the extended group (sorted). A suffix present in both groups is
// treated as known.
func (b *Builder) Build() ([]probe.Domain, error) {
	base := strings.Trim(strings.ToLower(strings.TrimSpace(b.BaseName)), ".")
	if base == "" {
		return nil, sharedErrors.ErrEmptyBaseName
	}

	known, err := normalizeSuffixes(b.KnownSuffixes)
	if err != nil {
		return nil, fmt.Errorf("known suffixes: %w", err)
	}
	b.known = toSet(known)

	domains := make([]probe.Domain, 0, len(known)+len(b.ExtendedSuffixes))
	for _, suffix := range known {
		domains = append(domains, probe.NewDomain(base+"."+suffix, probe.ScopeKnown))
	}

	if b.IncludeExtended {
		extended, err := normalizeSuffixes(b.ExtendedSuffixes)
		if err != nil {
			return nil, fmt.Errorf("extended suffixes: %w", err)
		}
		for _, suffix := range extended {
			if _, dup := b.known[suffix]; dup {
				continue
			}
			domains = append(domains, probe.NewDomain(base+"."+suffix, probe.ScopeExtended))
		}
	}

	if len(domains) == 0 {
		return nil, sharedErrors.ErrNoDomains
	}
	return domains, nil
}

// Extra scopes arbitrary hostnames against the known suffix set and appends
// them after the generated ones. Duplicates of already listed hosts are rejected.
func (b *Builder) Extra(domains []probe.Domain, hosts ...string) ([]probe.Domain, error) {
	if b.known == nil {
		known, err := normalizeSuffixes(b.KnownSuffixes)
		if err != nil {
			return nil, fmt.Errorf("known suffixes: %w", err)
		}
		b.known = toSet(known)
	}

	seen := make(map[string]struct{}, len(domains)+len(hosts))
	for _, d := range domains {
		seen[d.Host] = struct{}{}
	}

	out := append([]probe.Domain(nil), domains...)
	for _, raw := range hosts {
		host := probe.NormalizeHost(raw)
		if host == "" || !strings.Contains(host, ".") || strings.ContainsAny(host, "/: ") || isBareSuffix(host) {
			return nil, fmt.Errorf("%w: %q", sharedErrors.ErrInvalidHost, raw)
		}
		if _, dup := seen[host]; dup {
			return nil, fmt.Errorf("%w: %s", sharedErrors.ErrDuplicateHost, host)
		}
		seen[host] = struct{}{}
		out = append(out, probe.NewDomain(host, ScopeOf(host, b.known)))
	}
	return out, nil
}

// ScopeOf derives a host's scope. The host is known when it equals a known
// suffix or ends in one at a label boundary, so private registry entries such
// as appspot.com still resolve to their ICANN suffix.
func ScopeOf(host string, known map[string]struct{}) probe.Scope {
	host = probe.NormalizeHost(host)

	for candidate := host; candidate != ""; {
		if _, ok := known[candidate]; ok {
			return probe.ScopeKnown
		}
		dot := strings.IndexByte(candidate, '.')
		if dot < 0 {
			break
		}
		candidate = candidate[dot+1:]
	}
	return probe.ScopeExtended
}

// isBareSuffix reports whether host is itself an ICANN public suffix such as
// co.uk, which cannot carry a certificate for one organization.
func isBareSuffix(host string) bool {
	suffix, icann := publicsuffix.PublicSuffix(host)
	return icann && suffix == host
}

// SuffixSet normalizes suffixes into a lookup set for ScopeOf.
func SuffixSet(suffixes []string) map[string]struct{} {
	out := make(map[string]struct{}, len(suffixes))
	for _, s := range suffixes {
		s = strings.Trim(strings.ToLower(strings.TrimSpace(s)), ".")
		if s != "" {
			out[s] = struct{}{}
		}
	}
	return out
}

func normalizeSuffixes(suffixes []string) ([]string, error) {
	seen := make(map[string]struct{}, len(suffixes))
	out := make([]string, 0, len(suffixes))
	for _, s := range suffixes {
		s = strings.Trim(strings.ToLower(strings.TrimSpace(s)), ".")
		if s == "" {
			return nil, sharedErrors.ErrEmptySuffix
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out, nil
}

func toSet(values []string) map[string]struct{} {
	out := make(map[string]struct{}, len(values))
	for _, v := range values {
		out[v] = struct{}{}
	}
	return out
}
