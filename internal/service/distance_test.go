package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ovenline/bakeops/internal/service"
)

// stubProvider returns a fixed answer or error.
type stubProvider struct {
	distance service.Distance
	err      error
}

func (s stubProvider) Distance(context.Context, float64, float64, float64, float64) (service.Distance, error) {
	return s.distance, s.err
}

func TestHaversine(t *testing.T) {
	// One degree of latitude is roughly 69 miles everywhere on the globe.
	assert.InDelta(t, 69.1, service.Haversine(40.0, -74.0, 41.0, -74.0), 0.5)

	// Zero distance between identical points.
	assert.Equal(t, 0.0, service.Haversine(40.7128, -74.0060, 40.7128, -74.0060))

	// Symmetric in its arguments.
	ab := service.Haversine(40.7128, -74.0060, 40.6782, -73.9442)
	ba := service.Haversine(40.6782, -73.9442, 40.7128, -74.0060)
	assert.InDelta(t, ab, ba, 1e-9)
}

func TestHaversineProvider_Distance(t *testing.T) {
	provider := service.HaversineProvider{AvgSpeedMPH: 30}

	d, err := provider.Distance(context.Background(), 40.0, -74.0, 41.0, -74.0)

	assert.NoError(t, err)
	assert.True(t, d.IsEstimate)
	assert.InDelta(t, 69.1, d.Miles, 0.5)
	assert.InDelta(t, d.Miles/30*60, d.Minutes, 1e-9)
}

func TestHaversineProvider_Distance_NoSpeed(t *testing.T) {
	provider := service.HaversineProvider{}

	d, err := provider.Distance(context.Background(), 40.0, -74.0, 41.0, -74.0)

	assert.NoError(t, err)
	assert.Equal(t, 0.0, d.Minutes)
}

func TestResilientProvider_Distance(t *testing.T) {
	tests := []struct {
		name             string
		primary          service.DistanceProvider
		expectedMiles    float64
		expectedEstimate bool
	}{
		{
			name:             "primary answer passes through",
			primary:          stubProvider{distance: service.Distance{Miles: 12.4, Minutes: 25}},
			expectedMiles:    12.4,
			expectedEstimate: false,
		},
		{
			name:             "primary failure falls back to straight line",
			primary:          stubProvider{err: errors.New("routing api unavailable")},
			expectedMiles:    service.Haversine(40.0, -74.0, 41.0, -74.0),
			expectedEstimate: true,
		},
		{
			name:             "nil primary always answers with the fallback",
			primary:          nil,
			expectedMiles:    service.Haversine(40.0, -74.0, 41.0, -74.0),
			expectedEstimate: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := service.NewResilientProvider(tt.primary, time.Second, 25)

			d, err := provider.Distance(context.Background(), 40.0, -74.0, 41.0, -74.0)

			assert.NoError(t, err)
			assert.InDelta(t, tt.expectedMiles, d.Miles, 1e-9)
			assert.Equal(t, tt.expectedEstimate, d.IsEstimate)
		})
	}
}
