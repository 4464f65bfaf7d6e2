package assessor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"syscall"
	"time"
)

const defaultRetryDelay = 10 * time.Second

// RetryPolicy re-runs an operation after transient network failures
// with a fixed delay between attempts. MaxAttempts of 0 retries
// forever, which matches how flaky the assessor site's connections
// are in practice. Parse failures are returned immediately.
type RetryPolicy struct {
	Delay       time.Duration
	MaxAttempts int
}

func (p RetryPolicy) Do(ctx context.Context, op string, fn func() error) error {
	delay := p.Delay
	if delay <= 0 {
		delay = defaultRetryDelay
	}

	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		if !IsTransient(err) {
			return err
		}
		if p.MaxAttempts > 0 && attempt >= p.MaxAttempts {
			return fmt.Errorf("%s: giving up after %d attempts: %w", op, attempt, err)
		}

		slog.WarnContext(
			ctx, "transient failure, retrying",
			"op", op,
			"attempt", attempt,
			"delay", delay,
			"err", err,
		)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// transientStatusError marks a 5xx response, the site's frontend
// throws these under load and a later attempt usually goes through.
type transientStatusError struct {
	status int
}

func (e *transientStatusError) Error() string {
	return fmt.Sprintf("server returned status %d", e.status)
}

// IsTransient classifies a failure as network-level (retryable) or
// not. Structural mismatches and context cancellation are never
// transient.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	var structural *StructuralError
	if errors.As(err, &structural) {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}

	var status *transientStatusError
	if errors.As(err, &status) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	if errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.EPIPE) {
		return true
	}
	// the site drops connections mid-body occasionally
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr)
}
