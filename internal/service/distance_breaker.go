package service

import (
	"context"

	"github.com/ovenline/bakeops/internal/circuitbreaker"
)

// breakerProvider guards an external distance provider with a circuit breaker.
// When the circuit is open the call fails fast, which the resilient wrapper
// then answers with the straight-line fallback.
type breakerProvider struct {
	inner   DistanceProvider
	breaker *circuitbreaker.CircuitBreaker
}

// NewBreakerProvider wraps inner with circuit breaker protection.
func NewBreakerProvider(inner DistanceProvider, cfg circuitbreaker.Config) DistanceProvider {
	return &breakerProvider{
		inner:   inner,
		breaker: circuitbreaker.New(cfg),
	}
}

func (p *breakerProvider) Distance(ctx context.Context, originLat, originLng, destLat, destLng float64) (Distance, error) {
	var d Distance
	err := p.breaker.Execute(ctx, func() error {
		var innerErr error
		d, innerErr = p.inner.Distance(ctx, originLat, originLng, destLat, destLng)
		return innerErr
	})
	return d, err
}
