package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"time"

	"github.com/phrazzld/lingodeck/internal/platform/logger"
)

// RetryPolicy controls how transient completion failures are retried.
type RetryPolicy struct {
	// MaxRetries is the number of attempts after the first one.
	MaxRetries int

	// BaseDelay is doubled on every retry and scaled by a random factor in [0.5, 1.0).
	BaseDelay time.Duration
}

type retryingCompleter struct {
	next   Completer
	policy RetryPolicy
	logger *slog.Logger
	sleep  func(ctx context.Context, d time.Duration) error
}

// WithRetry wraps next so that errors wrapping ErrTransientFailure are retried
// according to policy. Other errors are returned immediately.
func WithRetry(next Completer, policy RetryPolicy, log *slog.Logger) Completer {
	if log == nil {
		log = slog.Default()
	}
	if policy.MaxRetries < 0 {
		policy.MaxRetries = 0
	}
	if policy.BaseDelay <= 0 {
		policy.BaseDelay = time.Second
	}
	return &retryingCompleter{
		next:   next,
		policy: policy,
		logger: log.With(slog.String("component", "completer_retry")),
		sleep:  sleepContext,
	}
}

// Complete implements Completer.
func (r *retryingCompleter) Complete(ctx context.Context, prompt string) (*Completion, error) {
	log := logger.FromContextOrDefault(ctx, r.logger)

	for attempt := 0; ; attempt++ {
		completion, err := r.next.Complete(ctx, prompt)
		if err == nil {
			return completion, nil
		}

		if !errors.Is(err, ErrTransientFailure) {
			return nil, err
		}
		if attempt >= r.policy.MaxRetries {
			log.Warn("maximum retry attempts reached",
				slog.Int("max_retries", r.policy.MaxRetries),
				slog.String("error", err.Error()))
			return nil, err
		}

		delay := r.backoff(attempt)
		log.Info("retrying completion after transient failure",
			slog.Int("attempt", attempt+1),
			slog.Duration("delay", delay),
			slog.String("error", err.Error()))

		if sleepErr := r.sleep(ctx, delay); sleepErr != nil {
			return nil, fmt.Errorf("%w: %v", ErrProviderError, sleepErr)
		}
	}
}

// backoff returns baseDelay * 2^attempt * jitter, jitter in [0.5, 1.0).
func (r *retryingCompleter) backoff(attempt int) time.Duration {
	scale := math.Pow(2, float64(attempt)) * (0.5 + rand.Float64()*0.5)
	return time.Duration(float64(r.policy.BaseDelay) * scale)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
