package neural

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/darkclainer/bilex/pkg/mocks"
)

func TestBreakerOpens(t *testing.T) {
	q := &mocks.Translator{}
	q.On("Translate", mock.Anything, "water").Return("", errors.New("connection refused")).Times(2)
	breaker := NewBreaker(q, &BreakerConfig{MaxFailures: 2, OpenTimeout: time.Minute}, nil)

	for i := 0; i < 2; i++ {
		_, err := breaker.Translate(context.TODO(), "water")
		assert.EqualError(t, err, "connection refused")
	}
	assert.Equal(t, gobreaker.StateOpen, breaker.State())

	_, err := breaker.Translate(context.TODO(), "water")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, CheckHealth(context.TODO(), breaker), ErrUnavailable)
	q.AssertExpectations(t)
}

func TestBreakerEmptyTranslationIsNotFailure(t *testing.T) {
	q := &mocks.Translator{}
	q.On("Translate", mock.Anything, "water").Return("", ErrEmptyTranslation).Times(3)
	breaker := NewBreaker(q, &BreakerConfig{MaxFailures: 1}, nil)

	for i := 0; i < 3; i++ {
		_, err := breaker.Translate(context.TODO(), "water")
		assert.ErrorIs(t, err, ErrEmptyTranslation)
	}
	assert.Equal(t, gobreaker.StateClosed, breaker.State())
	q.AssertExpectations(t)
}

func TestBreakerPassesTranslation(t *testing.T) {
	q := &mocks.Translator{}
	q.On("Translate", mock.Anything, "water").Return("bishaan", nil)
	q.On("Close", mock.Anything).Return(nil)
	breaker := NewBreaker(q, &BreakerConfig{}, nil)

	translation, err := breaker.Translate(context.TODO(), "water")
	assert.NoError(t, err)
	assert.Equal(t, "bishaan", translation)
	assert.NoError(t, CheckHealth(context.TODO(), breaker))
	assert.NoError(t, breaker.Close(context.TODO()))
	q.AssertExpectations(t)
}
