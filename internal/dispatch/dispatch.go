// ABOUTME: Executes invocation requests against the capability registry.
// ABOUTME: Bounds execution with a timeout and normalizes every outcome.

package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/beaconlabs/beacon-gateway/internal/capability"
	"github.com/beaconlabs/beacon-gateway/internal/provider"
)

// DefaultTimeout is the execution budget when a request carries none.
const DefaultTimeout = 30 * time.Second

// ErrorKind classifies a failed dispatch so callers can apply differentiated
// retry policies.
type ErrorKind string

// Error kinds a Result may carry.
const (
	ErrorKindNone              ErrorKind = ""
	ErrorKindNotFound          ErrorKind = "capability_not_found"
	ErrorKindProviderNotFound  ErrorKind = "provider_not_found"
	ErrorKindModelNotSupported ErrorKind = "model_not_supported"
	ErrorKindTimeout           ErrorKind = "timeout"
	ErrorKindExecutionFailed   ErrorKind = "execution_failed"
)

// Request is a single call into the gateway. Consumed synchronously, never
// persisted.
type Request struct {
	// ID correlates logs and observability records; assigned when empty.
	ID string
	// Target is the capability name to invoke.
	Target string
	// Operation optionally selects a sub-behavior or model.
	Operation string
	// Payload is the opaque structured input.
	Payload json.RawMessage
	// Timeout overrides the default execution budget when positive.
	Timeout time.Duration
}

// Result is the normalized outcome of one request.
type Result struct {
	Success bool `json:"success"`
	// Data is present iff Success.
	Data json.RawMessage `json:"data,omitempty"`
	// ErrorKind and ErrorMessage are present iff not Success.
	ErrorKind    ErrorKind `json:"errorKind,omitempty"`
	ErrorMessage string    `json:"errorMessage,omitempty"`
	// Provider is the resolved capability name, for observability.
	Provider string `json:"providerUsed,omitempty"`
	// Duration is how long the dispatch took.
	Duration time.Duration `json:"-"`
}

// Record is the observability notification emitted after each dispatch.
type Record struct {
	RequestID  string
	Capability string
	Outcome    string // "ok", "error", or "timeout"
	ErrorKind  ErrorKind
	Duration   time.Duration
	At         time.Time
}

// Observer receives dispatch records. Delivery is fire-and-forget: observers
// must not assume ordering and must tolerate concurrent calls.
type Observer interface {
	ObserveDispatch(rec Record)
}

// Dispatcher resolves targets in the registry and executes them with a
// bounded time budget. Safe for concurrent use; it holds no mutable state.
type Dispatcher struct {
	registry  *capability.Registry
	logger    *slog.Logger
	timeout   time.Duration
	observers []Observer
}

// Config configures a Dispatcher.
type Config struct {
	Registry *capability.Registry
	Logger   *slog.Logger
	// Timeout is the default execution budget; DefaultTimeout when zero.
	Timeout   time.Duration
	Observers []Observer
}

// NewDispatcher creates a Dispatcher from the configuration.
func NewDispatcher(cfg Config) (*Dispatcher, error) {
	if cfg.Registry == nil {
		return nil, errors.New("registry is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	return &Dispatcher{
		registry:  cfg.Registry,
		logger:    logger,
		timeout:   timeout,
		observers: cfg.Observers,
	}, nil
}

// invocation carries one execution attempt's outcome across the timeout race.
type invocation struct {
	data json.RawMessage
	err  error
}

// Dispatch executes one request. It always returns a Result: resolution
// failures, execution errors, panics, and timeouts are all mapped to failed
// Results rather than returned errors, so a capability failure can never
// crash the serving path.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) Result {
	if req.ID == "" {
		req.ID = uuid.New().String()
	}
	start := time.Now()

	impl, err := d.registry.Resolve(req.Target)
	if err != nil {
		d.logger.Debug("target not registered",
			"target", req.Target,
			"request_id", req.ID,
		)
		return d.finish(req, start, Result{
			ErrorKind:    ErrorKindNotFound,
			ErrorMessage: err.Error(),
		})
	}

	timeout := d.timeout
	if req.Timeout > 0 {
		timeout = req.Timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	d.logger.Debug("dispatching",
		"target", req.Target,
		"operation", req.Operation,
		"request_id", req.ID,
		"timeout", timeout,
	)

	// Race the invocation against the deadline. The buffered channel lets
	// an abandoned call finish in the background; its result is discarded.
	// Cancellation of the underlying call is cooperative at best.
	done := make(chan invocation, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- invocation{err: fmt.Errorf("capability panicked: %v", r)}
			}
		}()
		data, err := impl.Invoke(ctx, req.Operation, req.Payload)
		done <- invocation{data: data, err: err}
	}()

	select {
	case inv := <-done:
		if inv.err != nil {
			return d.finish(req, start, Result{
				ErrorKind:    classify(inv.err),
				ErrorMessage: inv.err.Error(),
				Provider:     req.Target,
			})
		}
		return d.finish(req, start, Result{
			Success:  true,
			Data:     inv.data,
			Provider: req.Target,
		})
	case <-ctx.Done():
		d.logger.Warn("dispatch timed out or cancelled",
			"target", req.Target,
			"request_id", req.ID,
			"timeout", timeout,
			"error", ctx.Err(),
		)
		return d.finish(req, start, Result{
			ErrorKind:    ErrorKindTimeout,
			ErrorMessage: ctx.Err().Error(),
			Provider:     req.Target,
		})
	}
}

// classify maps an execution error to an ErrorKind.
func classify(err error) ErrorKind {
	switch {
	case errors.Is(err, capability.ErrCapabilityNotFound):
		return ErrorKindNotFound
	case errors.Is(err, provider.ErrProviderNotFound):
		return ErrorKindProviderNotFound
	case errors.Is(err, provider.ErrModelNotSupported):
		return ErrorKindModelNotSupported
	case errors.Is(err, context.DeadlineExceeded):
		return ErrorKindTimeout
	default:
		return ErrorKindExecutionFailed
	}
}

// finish stamps the duration, notifies observers, and returns the result.
func (d *Dispatcher) finish(req Request, start time.Time, res Result) Result {
	res.Duration = time.Since(start)

	outcome := "error"
	switch {
	case res.Success:
		outcome = "ok"
	case res.ErrorKind == ErrorKindTimeout:
		outcome = "timeout"
	}

	rec := Record{
		RequestID:  req.ID,
		Capability: req.Target,
		Outcome:    outcome,
		ErrorKind:  res.ErrorKind,
		Duration:   res.Duration,
		At:         start,
	}

	if len(d.observers) > 0 {
		// Observers are a notification, not a blocking dependency.
		observers := d.observers
		go func() {
			for _, o := range observers {
				o.ObserveDispatch(rec)
			}
		}()
	}

	d.logger.Info("dispatch complete",
		"target", req.Target,
		"request_id", req.ID,
		"outcome", outcome,
		"duration", res.Duration,
	)
	return res
}
