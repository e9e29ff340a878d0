package extension

import (
	"encoding/json"
	"fmt"
	"strings"

	sharedErrors "github.com/khanhnv2901/seca-pin/internal/shared/errors"
)

const (
	// DefaultName is the published extension name.
	DefaultName = "BrokerSiteHelper"
	// DefaultVersion is the manifest version string.
	DefaultVersion = "1.0.0"
	// DefaultDescription is shown in the browser's extension list.
	DefaultDescription = "Auto-select IE entity & reject cookies on Interactive Brokers EU/IE."

	iconPath          = "icons/icon.png"
	contentScriptPath = "content.js"
	manifestPath      = "manifest.json"
)

// Options describe the extension to package.
type Options struct {
	Name         string
	Version      string
	Description  string
	HostPatterns []string
}

// DefaultOptions targets every known suffix of baseName.
func DefaultOptions(baseName string, knownSuffixes []string) Options {
	return Options{
		Name:         DefaultName,
		Version:      DefaultVersion,
		Description:  DefaultDescription,
		HostPatterns: HostPatterns(baseName, knownSuffixes),
	}
}

// HostPatterns builds match patterns covering subdomains of baseName under each suffix.
func HostPatterns(baseName string, suffixes []string) []string {
	base := strings.Trim(strings.ToLower(baseName), ".")
	patterns := make([]string, 0, len(suffixes))
	for _, suffix := range suffixes {
		suffix = strings.Trim(strings.ToLower(strings.TrimSpace(suffix)), ".")
		if suffix == "" {
			continue
		}
		patterns = append(patterns, fmt.Sprintf("*://*.%s.%s/*", base, suffix))
	}
	return patterns
}

// Manifest is a browser extension manifest (version 3).
type Manifest struct {
	ManifestVersion int                  `json:"manifest_version"`
	Name            string               `json:"name"`
	Version         string               `json:"version"`
	Description     string               `json:"description"`
	Permissions     []string             `json:"permissions"`
	HostPermissions []string             `json:"host_permissions"`
	Icons           map[string]string    `json:"icons"`
	ContentScripts  []ContentScriptEntry `json:"content_scripts"`
}

// ContentScriptEntry declares where content.js is injected.
type ContentScriptEntry struct {
	Matches []string `json:"matches"`
	JS      []string `json:"js"`
	RunAt   string   `json:"run_at"`
}

// NewManifest fills a manifest from opts.
func NewManifest(opts Options) (Manifest, error) {
	if len(opts.HostPatterns) == 0 {
		return Manifest{}, sharedErrors.ErrNoHostPatterns
	}

	name := opts.Name
	if name == "" {
		name = DefaultName
	}
	version := opts.Version
	if version == "" {
		version = DefaultVersion
	}
	description := opts.Description
	if description == "" {
		description = DefaultDescription
	}

	hosts := append([]string(nil), opts.HostPatterns...)
	return Manifest{
		ManifestVersion: 3,
		Name:            name,
		Version:         version,
		Description:     description,
		Permissions:     []string{"scripting"},
		HostPermissions: hosts,
		Icons:           map[string]string{"48": iconPath},
		ContentScripts: []ContentScriptEntry{{
			Matches: hosts,
			JS:      []string{contentScriptPath},
			RunAt:   "document_idle",
		}},
	}, nil
}

// Marshal renders the manifest with two-space indentation.
func (m Manifest) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}
	return append(data, '\n'), nil
}
