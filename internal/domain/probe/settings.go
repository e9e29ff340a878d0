package probe

import (
	"fmt"
	"time"

	sharedErrors "github.com/khanhnv2901/seca-pin/internal/shared/errors"
)

const (
	DefaultTimeout = 5 * time.Second
	DefaultWorkers = 10
)

// Settings is the frozen run configuration handed to the orchestrator.
// Build it once at startup; nothing mutates it afterwards.
type Settings struct {
	Timeout     time.Duration
	Workers     int
	RateLimit   int
	Pinned      PinnedIdentitySet
	InsecureTLS bool
}

// Validate checks that settings can drive a run.
func (s Settings) Validate() error {
	if s.Timeout <= 0 {
		return fmt.Errorf("%w: %s", sharedErrors.ErrInvalidTimeout, s.Timeout)
	}
	if s.Workers < 1 {
		return fmt.Errorf("%w: %d", sharedErrors.ErrInvalidWorkers, s.Workers)
	}
	if s.RateLimit < 0 {
		return fmt.Errorf("%w: %d", sharedErrors.ErrInvalidRateLimit, s.RateLimit)
	}
	if s.Pinned.Len() == 0 {
		return sharedErrors.ErrEmptyPinnedSet
	}
	return nil
}
