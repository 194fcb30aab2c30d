package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovenline/bakeops/internal/circuitbreaker"
	"github.com/ovenline/bakeops/internal/service"
)

// countingProvider fails a set number of times before answering.
type countingProvider struct {
	failures int
	calls    int
	answer   service.Distance
}

func (p *countingProvider) Distance(context.Context, float64, float64, float64, float64) (service.Distance, error) {
	p.calls++
	if p.calls <= p.failures {
		return service.Distance{}, errors.New("routing api unavailable")
	}
	return p.answer, nil
}

func breakerConfig(threshold int) circuitbreaker.Config {
	return circuitbreaker.Config{
		FailureThreshold: threshold,
		SuccessThreshold: 1,
		Timeout:          time.Minute,
		Name:             "distance-test",
	}
}

func TestBreakerProvider_PassesThrough(t *testing.T) {
	inner := &countingProvider{answer: service.Distance{Miles: 12.4, Minutes: 25}}
	provider := service.NewBreakerProvider(inner, breakerConfig(3))

	d, err := provider.Distance(context.Background(), 40.0, -74.0, 41.0, -74.0)

	require.NoError(t, err)
	assert.Equal(t, 12.4, d.Miles)
	assert.Equal(t, 25.0, d.Minutes)
}

func TestBreakerProvider_OpensAndFailsFast(t *testing.T) {
	inner := &countingProvider{failures: 10}
	provider := service.NewBreakerProvider(inner, breakerConfig(2))

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		_, err := provider.Distance(ctx, 40.0, -74.0, 41.0, -74.0)
		assert.Error(t, err)
	}

	// Open circuit short-circuits without calling the routing service again.
	_, err := provider.Distance(ctx, 40.0, -74.0, 41.0, -74.0)
	assert.ErrorIs(t, err, circuitbreaker.ErrCircuitOpen)
	assert.Equal(t, 2, inner.calls)
}

func TestBreakerProvider_OpenCircuitDegradesToFallback(t *testing.T) {
	inner := &countingProvider{failures: 10}
	provider := service.NewResilientProvider(
		service.NewBreakerProvider(inner, breakerConfig(1)),
		time.Second, 30,
	)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		d, err := provider.Distance(ctx, 40.0, -74.0, 41.0, -74.0)
		require.NoError(t, err)
		assert.True(t, d.IsEstimate)
		assert.InDelta(t, service.Haversine(40.0, -74.0, 41.0, -74.0), d.Miles, 1e-9)
	}
	assert.Equal(t, 1, inner.calls)
}
