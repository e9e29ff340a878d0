package checker

import (
	"context"
	"sync"
	"time"

	"github.com/khanhnv2901/seca-pin/internal/domain/probe"
)

// PinChecker verifies that a domain presents one of the pinned identities and
// explains the failure when it does not.
type PinChecker struct {
	Identity  IdentitySource
	Transport TransportSource
	Pinned    probe.PinnedIdentitySet
}

// NewPinChecker wires the default fetcher and prober from settings.
func NewPinChecker(settings probe.Settings, opts ...Option) *PinChecker {
	cfg := options{}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &PinChecker{
		Identity: &IdentityFetcher{
			Timeout:    settings.Timeout,
			Port:       cfg.port,
			RootCAs:    cfg.rootCAs,
			SkipVerify: settings.InsecureTLS,
			Logger:     cfg.logger,
		},
		Transport: &TransportProber{
			Timeout: settings.Timeout,
			Port:    cfg.port,
			Logger:  cfg.logger,
		},
		Pinned: settings.Pinned,
	}
}

// Check runs both sub-probes concurrently; each owns its timeout, so one
// slow sub-probe never cuts the other short.
func (c *PinChecker) Check(ctx context.Context, domain probe.Domain) probe.Outcome {
	start := time.Now()

	var (
		wg        sync.WaitGroup
		identity  string
		transport probe.TransportOutcome
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		identity = c.Identity.Fetch(ctx, domain.Host)
	}()
	go func() {
		defer wg.Done()
		transport = c.Transport.Probe(ctx, domain.Host)
	}()
	wg.Wait()

	return probe.NewOutcome(domain, identity, transport, c.Pinned, time.Since(start))
}

// Name returns the name of this checker
func (c *PinChecker) Name() string {
	return "check pin"
}
