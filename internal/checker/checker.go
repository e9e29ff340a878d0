package checker

import (
	"context"
	"sync"

	"golang.org/x/time/rate"

	"github.com/khanhnv2901/seca-pin/internal/domain/probe"
)

// Checker probes a single domain and always produces an outcome.
type Checker interface {
	// Check performs both sub-probes for domain and classifies the result
	Check(ctx context.Context, domain probe.Domain) probe.Outcome

	// Name returns the name of this checker (e.g., "check pin")
	Name() string
}

// OutcomeFunc is called once per finished domain, in completion order.
type OutcomeFunc func(outcome probe.Outcome)

// Runner orchestrates the execution of checks with a bounded worker pool
type Runner struct {
	Concurrency int // Maximum number of concurrent checks
	RateLimit   int // Check starts per second (global), 0 disables pacing
}

// RunChecks executes checker against every domain and returns the outcomes
// in completion order. Domains not started before ctx is done are skipped and
// outcomes that finish after cancellation are dropped, so a cancelled run
// returns fewer outcomes than domains.
func (r *Runner) RunChecks(ctx context.Context, domains []probe.Domain, checker Checker, onOutcome OutcomeFunc) []probe.Outcome {
	concurrency := r.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	var limiter *rate.Limiter
	if r.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(r.RateLimit), r.RateLimit)
	}

	// Worker pool
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup
	mu := sync.Mutex{}
	results := make([]probe.Outcome, 0, len(domains))

	for _, domain := range domains {
		wg.Add(1)
		go func(d probe.Domain) {
			defer wg.Done()

			// Acquire semaphore
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				return
			}
			defer func() { <-sem }()

			if ctx.Err() != nil {
				return
			}

			if limiter != nil {
				if err := limiter.Wait(ctx); err != nil {
					return
				}
			}

			outcome := checker.Check(ctx, d)
			if ctx.Err() != nil {
				return
			}

			// Append result
			mu.Lock()
			results = append(results, outcome)
			if onOutcome != nil {
				onOutcome(outcome)
			}
			mu.Unlock()
		}(domain)
	}

	wg.Wait()
	return results
}
