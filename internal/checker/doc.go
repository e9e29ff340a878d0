// Package checker holds the network side of a pin probe.
//
// Architecture overview:
//
//   - IdentityFetcher performs a TLS handshake on port 443 with the domain as
//     SNI and returns the leaf certificate's subject common name, folding every
//     failure into an absent identity.
//   - TransportProber issues an HTTPS GET to the domain root with certificate
//     verification disabled. It exists only to explain why no identity was
//     obtained, mapping structured network errors (DNS, refusal, reset, dial,
//     timeout, TLS) onto the reason taxonomy in that order.
//   - PinChecker runs both sub-probes concurrently for one domain, each under
//     its own timeout, and classifies the pair into an Outcome.
//   - Runner schedules one check per domain on a bounded worker pool with an
//     optional start-rate limiter and an append-only, mutex-guarded sink.
//
// No sub-probe ever returns an error: a domain's failure is data, never a
// reason to abort the run.
package checker
