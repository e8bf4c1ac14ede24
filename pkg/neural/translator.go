// Package neural wraps external machine translation engines. For the rest of
// the system an engine is an opaque capability: it either returns a translation
// or fails, and every failure means "unavailable".
package neural

import (
	"context"
	"errors"
)

//go:generate go run github.com/vektra/mockery/v2 --name Translator --output ../mocks/

var (
	ErrEmptyTranslation = errors.New("engine returned empty translation")
	ErrUnavailable      = errors.New("neural translator unavailable")
	ErrUnknownEngine    = errors.New("unknown neural engine")
)

type Translator interface {
	// Translate returns translation of text from the source language to the
	// target language.
	Translate(ctx context.Context, text string) (string, error)
	Close(ctx context.Context) error
}

// HealthChecker is implemented by engines that can tell if they are ready.
type HealthChecker interface {
	CheckHealth(ctx context.Context) error
}

// CheckHealth asks t about its health. Translators that can not tell are
// considered healthy.
func CheckHealth(ctx context.Context, t Translator) error {
	checker, ok := t.(HealthChecker)
	if !ok {
		return nil
	}
	return checker.CheckHealth(ctx)
}
