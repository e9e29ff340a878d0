package checker

import (
	"net"
	"net/url"
	"strings"
)

// TargetInfo contains parsed target information
type TargetInfo struct {
	Original string // Original target string
	Scheme   string // http, https, or empty
	Host     string // Hostname (without protocol, path, port)
	Port     string // Port if specified
	Path     string // Path if specified
}

// ParseTarget parses a target string into structured components.
// This handles various input formats:
//   - example.com
//   - https://example.com
//   - https://example.com:443/path
//   - example.com:8443
func ParseTarget(target string) *TargetInfo {
	target = strings.TrimSpace(target)
	info := &TargetInfo{
		Original: target,
	}

	// If parsing fails OR scheme is empty OR scheme doesn't look like a real scheme (contains dots)
	// then prepend https:// and parse again
	parsed, err := url.Parse(target)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" || strings.Contains(parsed.Scheme, ".") {
		parsed, err = url.Parse("https://" + target)
	}

	if err == nil && parsed != nil {
		info.Scheme = parsed.Scheme
		info.Host = parsed.Hostname()
		info.Port = parsed.Port()
		info.Path = parsed.Path
	}

	// Fallback: if URL parsing completely failed, extract host manually
	if info.Host == "" {
		host := strings.TrimPrefix(target, "http://")
		host = strings.TrimPrefix(host, "https://")
		host = strings.Split(host, "/")[0]
		parts := strings.Split(host, ":")
		info.Host = parts[0]
		if len(parts) > 1 {
			info.Port = parts[1]
		}
	}

	return info
}

// ExtractHost extracts just the hostname from a target, so operators can
// paste URLs where a domain is expected.
func ExtractHost(target string) string {
	return ParseTarget(target).Host
}

// HTTPSRootURL builds https://host[:port]/. The default port is omitted.
func HTTPSRootURL(host, port string) string {
	u := url.URL{Scheme: "https", Host: host, Path: "/"}
	if port != "" && port != DefaultHTTPSPort {
		u.Host = net.JoinHostPort(host, port)
	}
	return u.String()
}
