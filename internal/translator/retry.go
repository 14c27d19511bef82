package translator

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// RetryOptions bounds how hard a failing backend is retried
type RetryOptions struct {
	MaxRetries      uint64
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

func DefaultRetryOptions() RetryOptions {
	return RetryOptions{
		MaxRetries:      2,
		InitialInterval: 300 * time.Millisecond,
		MaxInterval:     2 * time.Second,
	}
}

type retrying struct {
	next Translator
	opts RetryOptions
}

// WithRetry wraps next with exponential backoff. Client errors, missing
// credentials and empty answers are not retried.
func WithRetry(next Translator, opts RetryOptions) Translator {
	if opts.MaxRetries == 0 {
		return next
	}
	return &retrying{next: next, opts: opts}
}

func (r *retrying) Translate(ctx context.Context, text string, dir Direction) (string, error) {
	b := backoff.WithMaxRetries(backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(r.opts.InitialInterval),
		backoff.WithMaxInterval(r.opts.MaxInterval),
	), r.opts.MaxRetries)

	var out string
	op := func() error {
		var err error
		out, err = r.next.Translate(ctx, text, dir)
		if err != nil && !retryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	if err := backoff.Retry(op, backoff.WithContext(b, ctx)); err != nil {
		return "", err
	}
	return out, nil
}

func retryable(err error) bool {
	if errors.Is(err, ErrMissingAPIKey) || errors.Is(err, ErrEmptyTranslation) {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Temporary()
	}
	return true
}
