package neural

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

const (
	defaultMaxFailures = 5
	defaultOpenTimeout = 30 * time.Second
)

type BreakerConfig struct {
	// MaxFailures is the number of consecutive failures after which the
	// engine is not asked until OpenTimeout passes
	MaxFailures uint32        `mapstructure:"max_failures"`
	OpenTimeout time.Duration `mapstructure:"open_timeout"`
}

// Breaker stops calling an engine that keeps failing.
type Breaker struct {
	next Translator
	cb   *gobreaker.CircuitBreaker
}

func NewBreaker(next Translator, config *BreakerConfig, logger *zap.Logger) *Breaker {
	if logger == nil {
		logger = zap.NewNop()
	}
	maxFailures := config.MaxFailures
	if maxFailures == 0 {
		maxFailures = defaultMaxFailures
	}
	openTimeout := config.OpenTimeout
	if openTimeout <= 0 {
		openTimeout = defaultOpenTimeout
	}
	settings := gobreaker.Settings{
		Name:    "neural",
		Timeout: openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker changed state",
				zap.String("name", name),
				zap.Stringer("from", from),
				zap.Stringer("to", to),
			)
			breakerState.Set(float64(to))
		},
		// empty translation is a valid answer of a healthy engine
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrEmptyTranslation)
		},
	}
	return &Breaker{
		next: next,
		cb:   gobreaker.NewCircuitBreaker(settings),
	}
}

func (b *Breaker) Translate(ctx context.Context, text string) (string, error) {
	result, err := b.cb.Execute(func() (interface{}, error) {
		return b.next.Translate(ctx, text)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

// State reports current state of the breaker.
func (b *Breaker) State() gobreaker.State {
	return b.cb.State()
}

func (b *Breaker) CheckHealth(ctx context.Context) error {
	if b.cb.State() == gobreaker.StateOpen {
		return ErrUnavailable
	}
	return CheckHealth(ctx, b.next)
}

func (b *Breaker) Close(ctx context.Context) error {
	return b.next.Close(ctx)
}
