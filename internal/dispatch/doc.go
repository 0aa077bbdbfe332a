// Package dispatch executes invocation requests against the capability
// registry with a bounded time budget and normalized error handling.
//
// # Lifecycle
//
// A request moves through resolve, execute, and one of three terminal
// outcomes: completed, failed, or timed out. Terminal outcomes are final;
// the dispatcher never retries. The Result always records which capability
// served the request and carries an ErrorKind on failure so callers can tell
// "not found" from "timed out" from "threw during execution".
//
// # Timeouts
//
// Execution races against a context deadline (30s default, per-request
// override). On expiry the in-flight call is abandoned: it may complete in
// the background and its result is discarded. Capabilities that honor
// context cancellation stop earlier; those that don't simply stop being
// waited on.
//
// # Observability
//
// Each dispatch emits a Record (capability, outcome, duration) to registered
// observers in a detached goroutine. Observers are notifications only and
// can never block or fail a dispatch.
package dispatch
