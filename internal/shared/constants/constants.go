package constants

import (
	"io/fs"
	"time"
)

const (
	// DefaultDirPerm is the default permission used when creating directories.
	DefaultDirPerm fs.FileMode = 0o755
	// DefaultFilePerm is the default permission used when creating files.
	DefaultFilePerm fs.FileMode = 0o644
)

const (
	// TransportBodyLimitBytes caps how much of a response body the transport prober drains.
	TransportBodyLimitBytes = 64 << 10
	// ProgressRefreshInterval is how often the live progress line is redrawn.
	ProgressRefreshInterval = 300 * time.Millisecond
)

const (
	// ExtensionIconSize is the edge length of the generated extension icon.
	ExtensionIconSize = 48
	// ExtensionObserverTimeout bounds how long the content script watches the page.
	ExtensionObserverTimeout = 15 * time.Second
)
