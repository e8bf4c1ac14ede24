package neural

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v2"
	"go.uber.org/zap"
)

// Cached returns stored translations when possible and stores every
// successful translation of the next translator. Failures are never stored.
type Cached struct {
	next    Translator
	storage *Storage
	logger  *zap.Logger
}

func NewCached(next Translator, storage *Storage, logger *zap.Logger) *Cached {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cached{
		next:    next,
		storage: storage,
		logger:  logger,
	}
}

func (c *Cached) Translate(ctx context.Context, text string) (string, error) {
	cached, err := c.storage.Get(text)
	if err == nil {
		cacheLookupsTotal.WithLabelValues("hit").Inc()
		return cached, nil
	}
	cacheLookupsTotal.WithLabelValues("miss").Inc()
	if !errors.Is(err, badger.ErrKeyNotFound) {
		c.logger.Warn("cache lookup failed", zap.Error(err))
	}
	translation, err := c.next.Translate(ctx, text)
	if err != nil {
		return "", err
	}
	if err := c.storage.Put(text, translation); err != nil {
		c.logger.Warn("can not store translation", zap.Error(err))
	}
	return translation, nil
}

func (c *Cached) CheckHealth(ctx context.Context) error {
	return CheckHealth(ctx, c.next)
}

func (c *Cached) Close(ctx context.Context) error {
	var errs []error
	if err := c.next.Close(ctx); err != nil {
		errs = append(errs, fmt.Errorf("translator close failed: %w", err))
	}
	if err := c.storage.Close(); err != nil {
		errs = append(errs, fmt.Errorf("storage close failed: %w", err))
	}
	return errors.Join(errs...)
}
