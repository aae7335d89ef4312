package retry

import (
	"context"
	"time"

	"github.com/avast/retry-go/v4"
)

const (
	defaultAttempts = 3
	defaultDelay    = 100 * time.Millisecond
	defaultMaxDelay = 2 * time.Second
)

type RetryConfig struct {
	Attempts uint          `env:"ATTEMPTS" envDefault:"3"`
	Delay    time.Duration `env:"DELAY" envDefault:"100ms"`
	MaxDelay time.Duration `env:"MAX_DELAY" envDefault:"2s"`
}

func (rc *RetryConfig) ToRetryOptions() []retry.Option {
	return []retry.Option{
		retry.Attempts(rc.Attempts),
		retry.MaxDelay(rc.MaxDelay),
		retry.Delay(rc.Delay),
		retry.LastErrorOnly(true),
	}
}

func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		Attempts: defaultAttempts,
		Delay:    defaultDelay,
		MaxDelay: defaultMaxDelay,
	}
}

// Do runs fn until it succeeds, the attempts run out, ctx is done or
// retryIf rejects the error.
func Do(ctx context.Context, rc RetryConfig, retryIf func(error) bool, fn func() error) error {
	if rc.Attempts == 0 {
		rc = *DefaultRetryConfig()
	}

	opts := append(rc.ToRetryOptions(),
		retry.Context(ctx),
		retry.RetryIf(retryIf),
	)

	return retry.Do(fn, opts...)
}
