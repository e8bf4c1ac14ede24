package neural

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bilex_neural_requests_total",
			Help: "Total number of requests to the neural engine",
		},
		[]string{"engine", "status"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bilex_neural_request_duration_seconds",
			Help:    "Duration of neural engine requests in seconds",
			Buckets: []float64{0.05, 0.1, 0.5, 1.0, 2.0, 5.0, 10.0},
		},
		[]string{"engine", "status"},
	)

	cacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bilex_neural_cache_lookups_total",
			Help: "Neural translation cache lookups by result",
		},
		[]string{"result"},
	)

	breakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bilex_neural_breaker_state",
			Help: "State of the neural engine circuit breaker (0 closed, 1 half-open, 2 open)",
		},
	)
)

// instrumented records request metrics of the wrapped engine.
type instrumented struct {
	next   Translator
	engine string
}

func (i *instrumented) Translate(ctx context.Context, text string) (string, error) {
	start := time.Now()
	translation, err := i.next.Translate(ctx, text)
	status := "success"
	if err != nil {
		status = "error"
	}
	requestsTotal.WithLabelValues(i.engine, status).Inc()
	requestDuration.WithLabelValues(i.engine, status).Observe(time.Since(start).Seconds())
	return translation, err
}

func (i *instrumented) CheckHealth(ctx context.Context) error {
	return CheckHealth(ctx, i.next)
}

func (i *instrumented) Close(ctx context.Context) error {
	return i.next.Close(ctx)
}
