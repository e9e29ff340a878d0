package errors

import "errors"

// Domain errors
var (
	// Probe configuration errors
	ErrInvalidTimeout   = errors.New("timeout must be positive")
	ErrInvalidWorkers   = errors.New("worker count must be at least 1")
	ErrInvalidRateLimit = errors.New("rate limit cannot be negative")
	ErrEmptyPinnedSet   = errors.New("pinned identity set cannot be empty")

	// Domain set errors
	ErrNoDomains     = errors.New("no domains to probe")
	ErrEmptyBaseName = errors.New("base name cannot be empty")
	ErrEmptySuffix   = errors.New("suffix cannot be empty")
	ErrInvalidHost   = errors.New("invalid hostname")
	ErrDuplicateHost = errors.New("hostname listed more than once")

	// Output errors
	ErrInvalidFormat = errors.New("unsupported output format")

	// Extension errors
	ErrEmptyExtensionDir = errors.New("extension directory cannot be empty")
	ErrEmptyZipPath      = errors.New("zip output path cannot be empty")
	ErrNoHostPatterns    = errors.New("extension needs at least one host pattern")
)
