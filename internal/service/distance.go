package service

import (
	"context"
	"math"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ovenline/bakeops/internal/metrics"
)

// Distance is a travel estimate between two coordinates.
type Distance struct {
	Miles      float64 `json:"miles"`
	Minutes    float64 `json:"minutes"`
	IsEstimate bool    `json:"is_estimate"`
}

// DistanceProvider computes travel distance between two lat/lng pairs.
// Implementations backed by external APIs may fail; callers should wrap them
// with NewResilientProvider so a failure degrades to a straight-line estimate
// instead of failing the costing call.
type DistanceProvider interface {
	Distance(ctx context.Context, originLat, originLng, destLat, destLng float64) (Distance, error)
}

const earthRadiusMiles = 3958.8

// Haversine returns the great-circle distance in miles between two points.
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	const degToRad = math.Pi / 180
	dLat := (lat2 - lat1) * degToRad
	dLng := (lng2 - lng1) * degToRad

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*degToRad)*math.Cos(lat2*degToRad)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMiles * c
}

// HaversineProvider is the straight-line fallback provider. It never fails and
// always marks its results as estimates.
type HaversineProvider struct {
	// AvgSpeedMPH converts distance into a drive-time estimate.
	AvgSpeedMPH float64
}

// Distance implements DistanceProvider.
func (p HaversineProvider) Distance(_ context.Context, originLat, originLng, destLat, destLng float64) (Distance, error) {
	miles := Haversine(originLat, originLng, destLat, destLng)
	d := Distance{Miles: miles, IsEstimate: true}
	if p.AvgSpeedMPH > 0 {
		d.Minutes = miles / p.AvgSpeedMPH * 60
	}
	return d, nil
}

// resilientProvider wraps a primary provider with a bounded timeout and a
// Haversine fallback. Its Distance never returns an error.
type resilientProvider struct {
	primary  DistanceProvider
	fallback HaversineProvider
	timeout  time.Duration
}

// NewResilientProvider wraps primary so that a provider failure or timeout
// falls back to the straight-line estimate. A nil primary yields a provider
// that always answers with the fallback.
func NewResilientProvider(primary DistanceProvider, timeout time.Duration, avgSpeedMPH float64) DistanceProvider {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &resilientProvider{
		primary:  primary,
		fallback: HaversineProvider{AvgSpeedMPH: avgSpeedMPH},
		timeout:  timeout,
	}
}

func (p *resilientProvider) Distance(ctx context.Context, originLat, originLng, destLat, destLng float64) (Distance, error) {
	if p.primary == nil {
		return p.fallback.Distance(ctx, originLat, originLng, destLat, destLng)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	d, err := p.primary.Distance(ctx, originLat, originLng, destLat, destLng)
	if err != nil {
		log.Warn().Err(err).Msg("Distance provider failed, using straight-line fallback")
		metrics.RecordDistanceFallback()
		return p.fallback.Distance(ctx, originLat, originLng, destLat, destLng)
	}
	return d, nil
}
