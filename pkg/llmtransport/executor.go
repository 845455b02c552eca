package llmtransport

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"gtd-capture/pkg/log"
)

// RetryPolicy bounds the retry behavior of a single transport.
type RetryPolicy struct {
	MaxRetries int           // additional attempts after the first
	BaseDelay  time.Duration // backoff seed
	MaxDelay   time.Duration // backoff cap
}

// Config defines configuration for the Executor.
type Config struct {
	Retry          RetryPolicy
	RequestTimeout time.Duration // per-attempt bound, 0 disables
}

// Executor delivers requests through an explicit ordered transport
// strategy. A transient failure is retried on the same transport with
// exponential backoff; a non-retriable failure (most commonly a
// credential error) falls through to the next transport in the strategy.
type Executor struct {
	transports []Transport
	cfg        *Config
	limiter    *rate.Limiter
	l          log.Logger
}

// NewExecutor creates an Executor. The transport order is the fallback
// order; it is supplied by the composition root, never inferred from the
// runtime environment.
func NewExecutor(transports []Transport, cfg *Config, limiter *rate.Limiter, l log.Logger) *Executor {
	return &Executor{
		transports: transports,
		cfg:        cfg,
		limiter:    limiter,
		l:          l,
	}
}

// Do executes the request against the strategy and returns the first
// successful reply. Exhausting retries on the active transport ends the
// whole call with a *TransportError carrying the attempt count.
func (e *Executor) Do(ctx context.Context, req *Request) (*Reply, error) {
	if len(e.transports) == 0 {
		return nil, ErrNoTransports
	}

	var lastErr error

	for i, transport := range e.transports {
		reply, err := e.tryTransport(ctx, transport, req)
		if err == nil {
			reply.Transport = transport.Name()
			reply.Model = transport.Model()
			e.l.Infof(ctx, "llmtransport: %s/%s ok, tokens_in=%d tokens_out=%d",
				transport.Name(), transport.Model(),
				reply.Usage.InputTokens, reply.Usage.OutputTokens)
			return reply, nil
		}

		if _, exhausted := err.(*TransportError); exhausted {
			// Retries ran out on the active transport; no fallback.
			return nil, err
		}
		if ctx.Err() != nil {
			return nil, err
		}

		lastErr = err
		if i+1 < len(e.transports) {
			e.l.Warnf(ctx, "llmtransport: %s failed (%v), falling back to %s",
				transport.Name(), err, e.transports[i+1].Name())
		}
	}

	return nil, lastErr
}

// tryTransport runs the retry loop on a single transport. It returns the
// underlying error unchanged when it is non-retriable so the caller can
// decide on fallback, and a *TransportError when the budget is exhausted.
func (e *Executor) tryTransport(ctx context.Context, transport Transport, req *Request) (*Reply, error) {
	attempts := e.cfg.Retry.MaxRetries + 1
	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			delay := backoffDelay(e.cfg.Retry, attempt-1)
			e.l.Debugf(ctx, "llmtransport: %s retry %d/%d after %s",
				transport.Name(), attempt-1, e.cfg.Retry.MaxRetries, delay)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		if e.limiter != nil {
			if err := e.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		reply, err := e.attempt(ctx, transport, req)
		if err == nil {
			return reply, nil
		}

		lastErr = err
		if !IsRetriable(err) {
			return nil, err
		}
		e.l.Warnf(ctx, "llmtransport: %s attempt %d/%d failed: %v",
			transport.Name(), attempt, attempts, err)
	}

	return nil, &TransportError{
		Transport: transport.Name(),
		Attempts:  attempts,
		Err:       lastErr,
	}
}

// attempt bounds a single call with the per-request timeout.
func (e *Executor) attempt(ctx context.Context, transport Transport, req *Request) (*Reply, error) {
	if e.cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.RequestTimeout)
		defer cancel()
	}
	return transport.Generate(ctx, req)
}

// backoffDelay computes min(BaseDelay * 2^(retry-1), MaxDelay).
func backoffDelay(policy RetryPolicy, retry int) time.Duration {
	delay := policy.BaseDelay
	for i := 1; i < retry; i++ {
		delay *= 2
		if delay >= policy.MaxDelay {
			return policy.MaxDelay
		}
	}
	if policy.MaxDelay > 0 && delay > policy.MaxDelay {
		return policy.MaxDelay
	}
	return delay
}
